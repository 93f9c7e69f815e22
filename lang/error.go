package lang

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/jdl/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrParse           = pkg.NewError("parse error")
	ErrUnsupportedExpr = pkg.NewError("unsupported expression")
)

// errExpected reports a token that does not match what the grammar requires.
func errExpected(want string, found Token, candidates ...string) error {
	err := ErrParse.Wrap(fmt.Errorf("expected %s, found %s", want, found)).
		With(
			slog.String("expected", want),
			slog.String("found", found.String()),
		)

	return withHint(err, found, candidates)
}

// errUnexpected reports a token that cannot start the construct at hand.
func errUnexpected(found Token, where string, candidates ...string) error {
	err := ErrParse.Wrap(fmt.Errorf("unexpected %s in %s", found, where)).
		With(
			slog.String("found", found.String()),
			slog.String("context", where),
		)

	return withHint(err, found, candidates)
}

func withHint(err *pkg.Error, found Token, candidates []string) error {
	if h := hint(found, candidates...); h != "" {
		return err.With(slog.String("hint", "did you mean "+h+"?"))
	}

	return err
}
