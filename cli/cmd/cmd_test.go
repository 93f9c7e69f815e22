package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/jdl/pkg"
)

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func attrString(err error, key string) (string, bool) {
	var e *pkg.Error
	if !errors.As(err, &e) {
		return "", false
	}

	for _, a := range e.Attrs() {
		if a.Key == key {
			return a.Value.String(), true
		}
	}

	return "", false
}

func TestReadScript_JoinsSources(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jdl")
	b := filepath.Join(dir, "b.jdl")

	writeFile(t, a, `input "in.jsonl";`)
	writeFile(t, b, `print;`)

	sc, err := readScript(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("readScript: %v", err)
	}

	if want := "input \"in.jsonl\";\nprint;"; sc.text != want {
		t.Errorf("text = %q, want %q", sc.text, want)
	}

	if len(sc.files) != 2 || sc.stdin {
		t.Errorf("files = %v, stdin = %v", sc.files, sc.stdin)
	}
}

func TestReadScript_DeduplicatesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jdl")
	link := filepath.Join(dir, "link.jdl")

	writeFile(t, a, "print;")

	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	t.Chdir(dir)

	sc, err := readScript(context.Background(), []string{a, "a.jdl", link})
	if err != nil {
		t.Fatalf("readScript: %v", err)
	}

	if sc.text != "print;" {
		t.Errorf("text = %q, want single copy", sc.text)
	}

	if len(sc.files) != 1 {
		t.Errorf("files = %v, want 1", sc.files)
	}
}

func TestReadScript_StdinLast(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jdl")
	writeFile(t, a, "// file")

	ctx := WithStreams(context.Background(), strings.NewReader("print;"), io.Discard, io.Discard)

	sc, err := readScript(ctx, []string{"-", a, "-"})
	if err != nil {
		t.Fatalf("readScript: %v", err)
	}

	if want := "// file\nprint;"; sc.text != want {
		t.Errorf("text = %q, want %q", sc.text, want)
	}

	if !sc.stdin {
		t.Error("stdin not recorded")
	}
}

func TestReadScript_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.jdl")

	_, err := readScript(context.Background(), []string{missing})
	if !errors.Is(err, ErrReadScript) {
		t.Fatalf("err = %v, want ErrReadScript", err)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want to wrap os.ErrNotExist", err)
	}

	if got, _ := attrString(err, "path"); got != missing {
		t.Errorf("path attr = %q, want %q", got, missing)
	}
}

func TestWithStreams_KeepsUnsetStreams(t *testing.T) {
	var out bytes.Buffer

	ctx := WithStreams(context.Background(), nil, &out, nil)
	ctx = WithStreams(ctx, strings.NewReader(""), nil, nil)

	s := streamsFrom(ctx)
	if s.stdout != &out {
		t.Error("stdout replaced")
	}

	if s.stderr != os.Stderr {
		t.Error("stderr should default to os.Stderr")
	}
}
