package cmd

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/jdl/interp"
	"github.com/ardnew/jdl/lang"
)

// watchDebounce is how long the watch loop waits for a burst of file events
// to settle before re-running.
const watchDebounce = 100 * time.Millisecond

// Run parses and executes a script.
type Run struct {
	Scripts []string `arg:"" default:"-" help:"Script file(s) to execute, or '-' for stdin." name:"script"`
	Watch   bool     `help:"Re-run whenever a script file changes." short:"w"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.Watch {
		return r.watch(ctx)
	}

	_, err = r.once(ctx)

	return err
}

// once reads, parses, and runs the scripts with a fresh interpreter.
func (r *Run) once(ctx context.Context) (script, error) {
	sc, err := readScript(ctx, r.Scripts)
	if err != nil {
		return sc, err
	}

	prog, err := lang.ParseString(sc.text)
	if err != nil {
		return sc, annotate(err, slog.String("command", "run"))
	}

	std := streamsFrom(ctx)

	it := interp.New(
		interp.WithStdout(std.stdout),
		interp.WithConsole(std.stderr),
		interp.WithLogger(loggerFrom(ctx)),
	)

	if err := it.Run(ctx, prog); err != nil {
		return sc, annotate(err, slog.String("command", "run"))
	}

	return sc, nil
}

// watch runs the scripts, then runs them again each time one of them is
// written, until ctx is canceled. Failed runs are logged and do not end the
// loop.
func (r *Run) watch(ctx context.Context) error {
	if slices.Contains(r.Scripts, stdinSource) {
		return ErrWatch.Wrap(errors.New("cannot watch stdin"))
	}

	logger := loggerFrom(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer w.Close()

	sc, err := r.once(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "run failed", slog.Any("error", err))
	}

	// The scripts are read again on every run, so watch their directories;
	// editors often replace a file rather than write it in place.
	targets := make(map[string]struct{})
	dirs := make(map[string]struct{})

	for _, src := range r.Scripts {
		abs, err := filepath.Abs(src)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", src))
		}

		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for _, f := range sc.files {
		targets[f] = struct{}{}
		dirs[filepath.Dir(f)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", dir))
		}

		logger.DebugContext(ctx, "watching", slog.String("dir", dir))
	}

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if _, ok := targets[filepath.Clean(event.Name)]; !ok {
				continue
			}

			logger.DebugContext(ctx, "script changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil

			logger.InfoContext(ctx, "re-running")

			if _, err := r.once(ctx); err != nil {
				logger.ErrorContext(ctx, "run failed", slog.Any("error", err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.WarnContext(ctx, "watcher error", slog.Any("error", err))
		}
	}
}
