package record

import "github.com/ardnew/jdl/pkg"

// Predefined errors (sentinel values).
var (
	ErrOpen      = pkg.NewError("open record file")
	ErrDecode    = pkg.NewError("decode record")
	ErrNotObject = pkg.NewError("record is not a JSON object")
	ErrEncode    = pkg.NewError("encode record")
	ErrWrite     = pkg.NewError("write records")
)
