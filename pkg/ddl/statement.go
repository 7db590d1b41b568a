package ddl

import (
	"fmt"
	"strings"
)

// Kind identifies a statement variant.
type Kind int

// Statement kinds.
const (
	KindInvalid Kind = iota
	KindCreateTableFromFormat
	KindCreateTableWithSchema
	KindCreateTableAvro
	KindLoadData
	KindAddPartition
	KindAlterPartition
	KindDropPartition
	KindCacheTable
	KindCreateScalarFunction
	KindCreateAggregateFunction
	KindDropFunction
	KindListFunctions
)

var kindNames = [...]string{
	KindInvalid:                 "statement",
	KindCreateTableFromFormat:   "create_table_like",
	KindCreateTableWithSchema:   "create_table",
	KindCreateTableAvro:         "create_table_avro",
	KindLoadData:                "load_data",
	KindAddPartition:            "add_partition",
	KindAlterPartition:          "alter_partition",
	KindDropPartition:           "drop_partition",
	KindCacheTable:              "cache_table",
	KindCreateScalarFunction:    "create_function",
	KindCreateAggregateFunction: "create_aggregate",
	KindDropFunction:            "drop_function",
	KindListFunctions:           "list_functions",
}

// String returns the snake_case name used in manifests.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind returns the kind with the given manifest name.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if Kind(k) != KindInvalid && n == name {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// Kinds returns every valid statement kind.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := KindCreateTableFromFormat; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Statement is a DDL statement descriptor. The set of implementations is
// closed: every variant lives in this package.
type Statement interface {
	// Kind identifies the variant.
	Kind() Kind
	// Compile renders one complete SQL statement without a trailing semicolon.
	Compile() (string, error)

	statementNode()
}

// CompileAll compiles statements in order, stopping at the first error.
func CompileAll(stmts ...Statement) ([]string, error) {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		sql, err := s.Compile()
		if err != nil {
			return nil, fmt.Errorf("statement %d (%s): %w", i, s.Kind(), err)
		}
		out[i] = sql
	}
	return out, nil
}

func required(kind Kind, field, value string) error {
	if value == "" {
		return &MissingFieldError{Statement: kind, Field: field}
	}
	return nil
}
