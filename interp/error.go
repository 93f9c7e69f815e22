package interp

import "github.com/ardnew/jdl/pkg"

// Predefined errors (sentinel values).
var (
	ErrRun       = pkg.NewError("run script")
	ErrTransform = pkg.NewError("transform record")
)
