package record

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/jdl/pkg"
)

const sample = `{"id":"1","msg":"hello","meta":{"lvl":2}}
{"id":"2","msg":"<world>","tags":["a","b"]}
{"id":"3","empty":"","n":null}
`

func TestDecodeEncode(t *testing.T) {
	recs, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(recs) != 3 {
		t.Fatalf("Decode: got %d records, want 3", len(recs))
	}

	var buf bytes.Buffer
	if err := Encode(&buf, recs); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if buf.String() != sample {
		t.Errorf("Encode:\n got %q\nwant %q", buf.String(), sample)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	recs, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(recs) != 0 {
		t.Errorf("Decode(empty) = %d records", len(recs))
	}
}

func TestDecodeNoTrailingNewline(t *testing.T) {
	recs, err := Decode(strings.NewReader(`{"a":"1"}` + "\n" + `{"a":"2"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(recs) != 2 {
		t.Errorf("Decode: got %d records, want 2", len(recs))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int64
		target error
	}{
		{"blank line", "{\"a\":1}\n\n{\"a\":2}\n", 2, ErrDecode},
		{"whitespace line", "{\"a\":1}\n   \n", 2, ErrDecode},
		{"malformed", "{\"a\":1}\n{\"a\":2}\n{\"a\"\n", 3, ErrDecode},
		{"array", "[1]\n", 1, ErrNotObject},
		{"scalar", "{}\n7\n", 2, ErrNotObject},
		{"trailing", "{} {}\n", 1, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}

			if !errors.Is(err, ErrDecode) {
				t.Errorf("error %v is not ErrDecode", err)
			}

			if !errors.Is(err, tt.target) {
				t.Errorf("error %v is not %v", err, tt.target)
			}

			if got := attrInt(err, "line"); got != tt.line {
				t.Errorf("line = %d, want %d", got, tt.line)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	recs, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		file  string
		magic []byte
	}{
		{"plain", "out.jsonl", []byte(`{"id"`)},
		{"gzip", "out.jsonl.gz", []byte{0x1f, 0x8b}},
		{"zstd", "out.jsonl.zst", []byte{0x28, 0xb5, 0x2f, 0xfd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)

			if err := WriteFile(path, recs); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.HasPrefix(raw, tt.magic) {
				t.Errorf("file starts with % x, want % x", raw[:min(len(raw), 4)], tt.magic)
			}

			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}

			var buf bytes.Buffer
			if err := Encode(&buf, got); err != nil {
				t.Fatal(err)
			}

			if buf.String() != sample {
				t.Errorf("round trip:\n got %q\nwant %q", buf.String(), sample)
			}
		})
	}
}

func TestWriteFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")

	if err := os.WriteFile(path, []byte(strings.Repeat("x", 1024)), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(raw) != 0 {
		t.Errorf("file not truncated: %d bytes", len(raw))
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "nope.jsonl"))
		if !errors.Is(err, ErrOpen) {
			t.Errorf("ReadFile error = %v, want ErrOpen", err)
		}
	})

	t.Run("bad gzip", func(t *testing.T) {
		path := filepath.Join(dir, "bad.jsonl.gz")
		if err := os.WriteFile(path, []byte("not gzip"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := ReadFile(path); !errors.Is(err, ErrOpen) {
			t.Errorf("ReadFile error = %v, want ErrOpen", err)
		}
	})

	t.Run("decode carries path", func(t *testing.T) {
		path := filepath.Join(dir, "bad.jsonl")
		if err := os.WriteFile(path, []byte("{}\nnope\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, err := ReadFile(path)
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("ReadFile error = %v, want ErrDecode", err)
		}

		if got := attrString(err, "path"); got != path {
			t.Errorf("path attr = %q, want %q", got, path)
		}
	})
}

func TestWriteFileBadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.jsonl")

	err := WriteFile(path, nil)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("WriteFile error = %v, want ErrWrite", err)
	}
}

func TestCompressionOf(t *testing.T) {
	tests := map[string]Compression{
		"a.jsonl":      CompressionNone,
		"a.jsonl.gz":   CompressionGzip,
		"a.JSONL.GZ":   CompressionGzip,
		"a.jsonl.zst":  CompressionZstd,
		"a.jsonl.zstd": CompressionZstd,
		"gz":           CompressionNone,
	}

	for path, want := range tests {
		if got := CompressionOf(path); got != want {
			t.Errorf("CompressionOf(%q) = %v, want %v", path, got, want)
		}
	}
}

func attrs(err error) []slog.Attr {
	var e *pkg.Error
	if !errors.As(err, &e) {
		return nil
	}

	return e.Attrs()
}

func attrInt(err error, key string) int64 {
	for _, a := range attrs(err) {
		if a.Key == key {
			return a.Value.Int64()
		}
	}

	return -1
}

func attrString(err error, key string) string {
	for _, a := range attrs(err) {
		if a.Key == key {
			return a.Value.String()
		}
	}

	return ""
}
