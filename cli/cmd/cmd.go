package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/jdl/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type streamsKey struct{}

type streams struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

// WithStreams returns a new context.Context whose commands read scripts from
// stdin and write to stdout and stderr instead of the process streams. A nil
// argument keeps the corresponding process stream.
func WithStreams(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
) context.Context {
	s := streamsFrom(ctx)

	if stdin != nil {
		s.stdin = stdin
	}

	if stdout != nil {
		s.stdout = stdout
	}

	if stderr != nil {
		s.stderr = stderr
	}

	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) streams {
	if s, ok := ctx.Value(streamsKey{}).(streams); ok {
		return s
	}

	return streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// loggerFrom returns the default logger writing to the stderr stream of ctx.
func loggerFrom(ctx context.Context) log.Logger {
	return log.Default().Wrap(log.WithOutput(streamsFrom(ctx).stderr))
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// script is the concatenated text of one or more script sources.
type script struct {
	text  string
	files []string // resolved paths of the regular files read
	stdin bool
}

// readScript reads every source in order and joins them with newlines.
//
// A file named more than once (directly, through a relative path, or through
// a symlink) is read only once. Every "-" is read from stdin once, after all
// regular files.
func readScript(ctx context.Context, sources []string) (script, error) {
	var (
		sc    script
		parts []string
	)

	seen := make(map[fileKey]struct{})

	for _, src := range sources {
		if src == stdinSource {
			sc.stdin = true

			continue
		}

		path, data, ok, err := readUniqueFile(src, seen)
		if err != nil {
			return script{}, ErrReadScript.Wrap(err).With(slog.String("path", src))
		}

		if !ok {
			continue
		}

		sc.files = append(sc.files, path)
		parts = append(parts, string(data))
	}

	if sc.stdin {
		data, err := io.ReadAll(streamsFrom(ctx).stdin)
		if err != nil {
			return script{}, ErrReadScript.Wrap(err).With(slog.String("path", stdinSource))
		}

		parts = append(parts, string(data))
	}

	sc.text = strings.Join(parts, "\n")

	return sc, nil
}

// readUniqueFile reads the file at path unless it has been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func readUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (resolved string, data []byte, ok bool, err error) {
	resolved, err = filepath.Abs(path)
	if err != nil {
		return "", nil, false, err
	}

	resolved, err = filepath.EvalSymlinks(resolved)
	if err != nil {
		return "", nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", nil, false, err
	}

	if key, hasKey := makeFileKey(info); hasKey {
		if _, exists := seen[key]; exists {
			return resolved, nil, false, nil
		}

		seen[key] = struct{}{}
	}

	data, err = os.ReadFile(resolved)
	if err != nil {
		return "", nil, false, err
	}

	return resolved, data, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
