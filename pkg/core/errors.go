package core

import "fmt"

// UnsupportedTypeError is returned when a dialect has no spelling for a type.
type UnsupportedTypeError struct {
	Dialect string
	Type    DataType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("type %s is not supported by the %s dialect", e.Type, e.Dialect)
}

// DuplicateColumnError is returned when a schema names the same column twice.
type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q in schema", e.Name)
}
