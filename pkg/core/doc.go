// Package core defines the shared language of the leapddl system.
//
// This package contains:
//   - Abstract data types (DataType, TypeKind) and ParseType
//   - Table schemas (Column, Schema)
//   - Dialect configuration (DialectConfig, IdentifierConfig)
//   - Errors shared by dialects and statement builders
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
