package interp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/jdl/lang"
	"github.com/ardnew/jdl/log"
	"github.com/ardnew/jdl/record"
)

// Interpreter executes the commands of a program.
//
// input loads a collection of records, transform builds a new collection
// from the loaded one, print writes the current collection, and output names
// the file the current collection is written to after the last command.
//
// The current collection is the output of the most recent transform, or the
// loaded input if no transform has run. A later input changes what the next
// transform reads but does not discard an earlier transform's output.
//
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	stdout  io.Writer
	console io.Writer
	logger  log.Logger
	state   *lang.State

	input       []*record.Record
	transformed []*record.Record // nil until a transform runs
	output      string
}

// New returns an Interpreter with a fresh [lang.State].
//
// By default records are printed to os.Stdout, diagnostics to os.Stderr, and
// log messages go to [log.Default].
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		stdout:  os.Stdout,
		console: os.Stderr,
		logger:  log.Default(),
		state:   lang.NewState(),
	}

	for _, opt := range opts {
		opt(it)
	}

	return it
}

// Records returns the current collection: the output of the most recent
// transform, or the loaded input if no transform has run.
func (it *Interpreter) Records() []*record.Record {
	if it.transformed != nil {
		return it.transformed
	}

	return it.input
}

// State returns the evaluation state shared by every transform of the run.
func (it *Interpreter) State() *lang.State {
	return it.state
}

// Run executes prog in order, then writes the current collection to the
// output file if one was named. The first failing command aborts the run.
func (it *Interpreter) Run(ctx context.Context, prog lang.Program) error {
	for i, cmd := range prog {
		if err := ctx.Err(); err != nil {
			return ErrRun.Wrap(err)
		}

		it.logger.DebugContext(ctx, "exec",
			slog.Int("command", i+1),
			slog.String("statement", cmd.String()),
		)

		if err := it.exec(ctx, cmd); err != nil {
			return ErrRun.Wrap(err).With(
				slog.Int("command", i+1),
				slog.String("statement", cmd.String()),
			)
		}
	}

	if it.output == "" {
		return nil
	}

	recs := it.Records()

	if err := record.WriteFile(it.output, recs); err != nil {
		return ErrRun.Wrap(err)
	}

	it.logger.InfoContext(ctx, "output written",
		slog.String("path", it.output),
		slog.Int("records", len(recs)),
	)

	saved(it.console, it.output)

	return nil
}

func (it *Interpreter) exec(ctx context.Context, cmd lang.Command) error {
	switch c := cmd.(type) {
	case lang.Input:
		recs, err := record.ReadFile(c.Path)
		if err != nil {
			return err
		}

		it.input = recs

		it.logger.InfoContext(ctx, "input loaded",
			slog.String("path", c.Path),
			slog.Int("records", len(recs)),
		)

	case lang.Output:
		it.output = c.Path

	case lang.Print:
		return record.Encode(it.stdout, it.Records())

	case lang.PrintLine:
		recs := it.Records()

		n := c.Line
		if n == 0 || n > uint64(len(recs)) {
			warnf(it.console, "line %d is out of range (1-%d)", n, len(recs))
			it.logger.WarnContext(ctx, "print line out of range",
				slog.Uint64("line", n),
				slog.Int("records", len(recs)),
			)

			return nil
		}

		return record.Encode(it.stdout, recs[n-1:n])

	case lang.Transform:
		out, err := Transform(it.input, c, it.state)
		if err != nil {
			return err
		}

		it.transformed = out

		it.logger.DebugContext(ctx, "transform complete",
			slog.Int("records", len(out)),
			slog.Int("fields", len(c.Assignments)),
			slog.Uint64("serial", it.state.Peek()),
		)

	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}

	return nil
}

// Transform evaluates the assignments of t against each record of recs and
// returns one new record per input record, in input order. Keys of each new
// record follow the assignment order. st is advanced by every serial() call,
// in record order and then assignment order.
func Transform(
	recs []*record.Record,
	t lang.Transform,
	st *lang.State,
) ([]*record.Record, error) {
	out := make([]*record.Record, 0, len(recs))

	for i, in := range recs {
		rec := record.New(len(t.Assignments))

		for _, a := range t.Assignments {
			v, err := lang.Evaluate(a.Value, in, st)
			if err != nil {
				return nil, ErrTransform.Wrap(err).With(
					slog.Int("record", i+1),
					slog.String("field", a.Field),
				)
			}

			rec.Set(a.Field, v)
		}

		out = append(out, rec)
	}

	return out, nil
}
