package lang

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/jdl/record"
)

// State is the mutable evaluation state shared by every evaluation in one
// run.
type State struct {
	serial uint64
}

// NewState returns a State whose serial counter starts at 1.
func NewState() *State {
	return &State{serial: 1}
}

// Peek returns the value the next serial() will produce without consuming it.
func (s *State) Peek() uint64 {
	return s.serial
}

// next returns the current serial value and advances the counter.
func (s *State) next() uint64 {
	n := s.serial
	s.serial++

	return n
}

// Evaluate computes the value of e against rec.
//
// The result is a string for every expression except [RawRecord], which
// yields a shallow copy of rec. Missing fields evaluate to the empty string
// and are not errors. Evaluation of [Serial] advances st.
func Evaluate(e Expr, rec *record.Record, st *State) (any, error) {
	switch e := e.(type) {
	case Literal:
		return Unescape(e.Text), nil

	case FieldPath:
		s, _ := lookup(rec, e.Path)

		return s, nil

	case FieldWithModifiers:
		return applyModifiers(rec, e), nil

	case Concat:
		var sb strings.Builder

		for _, part := range e.Parts {
			v, err := Evaluate(part, rec, st)
			if err != nil {
				return nil, err
			}

			if s, ok := v.(string); ok {
				sb.WriteString(s)
			}
		}

		return sb.String(), nil

	case RawRecord:
		if rec == nil {
			return record.New(0), nil
		}

		return rec.Clone(), nil

	case Serial:
		return strconv.FormatUint(st.next(), 10), nil

	default:
		return nil, ErrUnsupportedExpr.With(
			slog.String("type", fmt.Sprintf("%T", e)),
		)
	}
}

// lookup resolves path in rec and returns its string form. The boolean
// reports whether the path resolved to a value.
func lookup(rec *record.Record, path []string) (string, bool) {
	v, ok := rec.Lookup(path...)
	if !ok {
		return "", false
	}

	return Stringify(v), true
}

// applyModifiers resolves the field and applies its modifiers.
//
// Every default is applied first, in order, while the value is still missing
// or empty. An empty result is returned as is. Otherwise prefixes and
// suffixes are applied in the order written.
func applyModifiers(rec *record.Record, e FieldWithModifiers) string {
	value, _ := lookup(rec, e.Path)

	for _, m := range e.Modifiers {
		if m.Kind == ModDefault && value == "" {
			value = Unescape(m.Text)
		}
	}

	if value == "" {
		return ""
	}

	for _, m := range e.Modifiers {
		switch m.Kind {
		case ModPrefix:
			value = Unescape(m.Text) + value
		case ModSuffix:
			value += Unescape(m.Text)
		case ModDefault:
		}
	}

	return value
}

// Stringify returns the text form of a JSON value. Strings are returned
// unchanged; every other value is rendered as compact JSON.
func Stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	var buf bytes.Buffer
	if err := record.AppendJSON(&buf, v); err != nil {
		return fmt.Sprint(v)
	}

	return buf.String()
}
