package record

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/ardnew/jdl/pkg"
)

// MaxLineSize is the longest JSONL line [Decode] accepts.
const MaxLineSize = 64 << 20

// Compression identifies the codec applied to a JSONL file.
type Compression int

// Supported codecs, selected by file extension.
const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// String returns the file extension associated with c.
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	default:
		return ""
	}
}

// CompressionOf returns the codec implied by the extension of path.
func CompressionOf(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Decode reads one JSON object per line from r.
//
// Every line must hold exactly one object. An empty line, a non-object value,
// or malformed JSON aborts decoding with an error identifying the line.
func Decode(r io.Reader) ([]*Record, error) {
	return decode(r)
}

func decode(r io.Reader, attrs ...slog.Attr) ([]*Record, error) {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	var (
		out  []*Record
		line int
	)

	for scan.Scan() {
		line++

		text := scan.Bytes()
		if len(bytes.TrimSpace(text)) == 0 {
			return nil, ErrDecode.Wrap(errors.New("empty line")).
				With(append(attrs, slog.Int("line", line))...)
		}

		rec, err := parseObject(text)
		if err != nil {
			return nil, ErrDecode.Wrap(err).
				With(append(attrs, slog.Int("line", line))...)
		}

		out = append(out, rec)
	}

	if err := scan.Err(); err != nil {
		return nil, ErrDecode.Wrap(err).
			With(append(attrs, slog.Int("line", line+1))...)
	}

	return out, nil
}

// ReadFile loads every record in the JSONL file at path, decompressing it
// first if its extension names a supported codec.
func ReadFile(path string) ([]*Record, error) {
	attr := slog.String("path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(attr)
	}
	defer f.Close()

	var r io.Reader = f

	switch CompressionOf(path) {
	case CompressionGzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, ErrOpen.Wrap(err).With(attr)
		}
		defer zr.Close()

		r = zr

	case CompressionZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, ErrOpen.Wrap(err).With(attr)
		}
		defer zr.Close()

		r = zr

	case CompressionNone:
	}

	return decode(r, attr)
}

// Encode writes each record to w as one compact JSON object followed by a
// newline.
func Encode(w io.Writer, records []*Record) error {
	bw := bufio.NewWriter(w)

	var buf bytes.Buffer

	for i, rec := range records {
		buf.Reset()

		if err := appendValue(&buf, rec); err != nil {
			return ErrEncode.Wrap(err).With(slog.Int("index", i))
		}

		buf.WriteByte('\n')

		if _, err := bw.Write(buf.Bytes()); err != nil {
			return ErrWrite.Wrap(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// WriteFile creates or truncates the file at path and writes records to it
// as JSONL, compressing the stream if the extension names a supported codec.
func WriteFile(path string, records []*Record) (err error) {
	attr := slog.String("path", path)

	f, err := os.Create(path)
	if err != nil {
		return ErrWrite.Wrap(err).With(attr)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ErrWrite.Wrap(cerr).With(attr)
		}
	}()

	var w io.WriteCloser

	switch CompressionOf(path) {
	case CompressionGzip:
		w = gzip.NewWriter(f)

	case CompressionZstd:
		zw, zerr := zstd.NewWriter(f)
		if zerr != nil {
			return ErrWrite.Wrap(zerr).With(attr)
		}

		w = zw

	case CompressionNone:
		return withPath(Encode(f, records), attr)
	}

	if err := Encode(w, records); err != nil {
		_ = w.Close()

		return withPath(err, attr)
	}

	if err := w.Close(); err != nil {
		return ErrWrite.Wrap(err).With(attr)
	}

	return nil
}

func withPath(err error, attr slog.Attr) error {
	if err == nil {
		return nil
	}

	var e *pkg.Error
	if errors.As(err, &e) {
		return e.With(attr)
	}

	return err
}
