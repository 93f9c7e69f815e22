package cmd

import (
	"errors"
	"log/slog"

	"github.com/ardnew/jdl/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrReadScript  = pkg.NewError("read script")
	ErrFormat      = pkg.NewError("format output")
	ErrWatch       = pkg.NewError("watch script")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)

// annotate attaches attrs to err if it is a [pkg.Error]. Other errors are
// returned unchanged.
func annotate(err error, attrs ...slog.Attr) error {
	var e *pkg.Error
	if errors.As(err, &e) {
		return e.With(attrs...)
	}

	return err
}
