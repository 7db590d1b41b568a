// Package ddl builds SingleStore DDL statements.
//
// Each statement kind is a small descriptor struct (CreateTableFromFormat,
// LoadData, AddPartition, CreateScalarFunction, ...) implementing Statement.
// Descriptors are permissive to construct; all validation happens in
// Compile, which returns either one complete SQL statement without a
// trailing semicolon or an error, never partial text.
//
// Rendering is pure: no I/O, no shared mutable state. Statements may be
// compiled concurrently.
package ddl
