package ddl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColumn is returned when a partition key or partition column is not
// declared in the relevant schema.
var ErrUnknownColumn = errors.New("unknown column")

// AmbiguousSourceError is returned by CreateTableFromFormat when not exactly one
// of example file, example table and schema is set.
type AmbiguousSourceError struct {
	Table   string
	Sources []string
}

func (e *AmbiguousSourceError) Error() string {
	if len(e.Sources) == 0 {
		return fmt.Sprintf("table %s: no source given, exactly one of example file, example table or schema is required", e.Table)
	}
	return fmt.Sprintf("table %s: ambiguous source (%s), exactly one of example file, example table or schema is required",
		e.Table, strings.Join(e.Sources, ", "))
}

// UnsupportedRuntimeError is returned when a scalar function's runtime cannot be
// declared with CREATE FUNCTION.
type UnsupportedRuntimeError struct {
	Runtime Runtime
}

func (e *UnsupportedRuntimeError) Error() string {
	return fmt.Sprintf("unsupported function runtime: %s", e.Runtime)
}

// UnsupportedLibraryKindError is returned when a function library is neither a
// file reference nor embedded module content, or when a statement only accepts
// file references.
type UnsupportedLibraryKindError struct {
	Function string
	Kind     LibraryKind
}

func (e *UnsupportedLibraryKindError) Error() string {
	return fmt.Sprintf("function %s: unsupported library kind: %s", e.Function, e.Kind)
}

// TooManyParametersError is returned when a signature has more inputs than
// there are single-letter parameter names.
type TooManyParametersError struct {
	Count int
	Max   int
}

func (e *TooManyParametersError) Error() string {
	return fmt.Sprintf("function has %d parameters, at most %d are supported", e.Count, e.Max)
}

// MissingFieldError is returned when a required descriptor field is empty.
type MissingFieldError struct {
	Statement Kind
	Field     string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Statement, e.Field)
}
