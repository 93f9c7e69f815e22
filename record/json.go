package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// MarshalJSON encodes r as a compact JSON object with keys in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendValue(&buf, r); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into r, replacing its contents and
// keeping the key order of data.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec, err := parseObject(data)
	if err != nil {
		return err
	}

	*r = *dec

	return nil
}

// parseObject decodes exactly one JSON object from data. Anything other than
// an object, or any non-whitespace content following it, is an error.
func parseObject(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if tok != json.Delim('{') {
		return nil, ErrNotObject.With(slogKind(tok))
	}

	r, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after object")
		}

		return nil, err
	}

	return r, nil
}

// decodeObject reads key/value pairs up to and including the closing brace.
// The opening brace must already have been consumed.
func decodeObject(dec *json.Decoder) (*Record, error) {
	r := New(0)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid object key %v", tok)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		r.Set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return r, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}

	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		arr = append(arr, v)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return arr, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	default:
		return t, nil
	}
}

// AppendJSON appends the compact JSON encoding of v to buf. Objects are
// written in insertion order and HTML characters are not escaped.
func AppendJSON(buf *bytes.Buffer, v any) error {
	return appendValue(buf, v)
}

func appendValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(t.String())
	case string:
		return appendString(buf, t)
	case *Record:
		if t == nil {
			buf.WriteString("null")

			return nil
		}

		buf.WriteByte('{')

		for i, k := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := appendString(buf, k); err != nil {
				return err
			}

			buf.WriteByte(':')

			if err := appendValue(buf, t.values[k]); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')

		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := appendValue(buf, e); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	default:
		return appendEncoded(buf, t)
	}

	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	return appendEncoded(buf, s)
}

// appendEncoded defers to encoding/json for anything without a dedicated
// case, trimming the newline the Encoder always adds.
func appendEncoded(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer

	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return err
	}

	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))

	return nil
}

// slogKind describes the JSON kind of a decoder token.
func slogKind(tok any) slog.Attr {
	kind := "unknown"

	switch t := tok.(type) {
	case nil:
		kind = "null"
	case bool:
		kind = "boolean"
	case json.Number:
		kind = "number"
	case string:
		kind = "string"
	case json.Delim:
		if t == '[' {
			kind = "array"
		}
	}

	return slog.String("found", kind)
}
