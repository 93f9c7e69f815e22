package interp

import (
	"io"

	"github.com/ardnew/jdl/lang"
	"github.com/ardnew/jdl/log"
)

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithStdout sets the writer that print commands write records to.
func WithStdout(w io.Writer) Option {
	return func(it *Interpreter) {
		if w == nil {
			w = io.Discard
		}

		it.stdout = w
	}
}

// WithConsole sets the writer for human-readable diagnostics such as
// out-of-range warnings and the output confirmation.
func WithConsole(w io.Writer) Option {
	return func(it *Interpreter) {
		if w == nil {
			w = io.Discard
		}

		it.console = w
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) Option {
	return func(it *Interpreter) {
		it.logger = logger
	}
}

// WithState sets the evaluation state, allowing the serial counter to carry
// over between interpreters.
func WithState(st *lang.State) Option {
	return func(it *Interpreter) {
		if st != nil {
			it.state = st
		}
	}
}
