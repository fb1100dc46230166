package gen

import "github.com/vsforge/gram/grammar"

// Predefined errors (sentinel values) for the generator layer. These share
// the grammar package's error type so they carry structured attributes and
// match with errors.Is.
var (
	ErrPermissionDenied  = grammar.NewError("cannot write to output directory")
	ErrSamePath          = grammar.NewError("input and output paths must differ")
	ErrAbsolutePath      = grammar.NewError("absolute path requires the absolute option")
	ErrDuplicateGrammar  = grammar.NewError("duplicate grammar name")
	ErrMalformedDocument = grammar.NewError("malformed grammar document")
	ErrMissingApplyTo    = grammar.NewError("grammar entry must declare applyTo")
)
