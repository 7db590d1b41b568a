// Package singlestore provides the SingleStore SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package singlestore

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the SingleStore dialect configuration.
var Config = &core.DialectConfig{
	Name: "singlestore",
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive,
	},
	DefaultDatabase: "",

	Keywords: []string{
		"add", "aggregate", "all", "alter", "and", "as", "asc", "between", "by",
		"cache", "cached", "case", "check", "column", "create", "cross", "database",
		"default", "delete", "desc", "distinct", "drop", "else", "exists", "external",
		"false", "from", "function", "functions", "group", "having", "in", "index",
		"infile", "inner", "insert", "into", "is", "join", "key", "left", "like",
		"limit", "load", "not", "null", "on", "or", "order", "partition", "primary",
		"references", "replace", "right", "row", "select", "set", "show", "table",
		"then", "true", "union", "unique", "update", "using", "values", "when",
		"where", "with",
	},

	DataTypes: []string{
		"BOOLEAN", "TINYINT", "SMALLINT", "INT", "BIGINT",
		"FLOAT", "DOUBLE", "DECIMAL", "VARCHAR", "BLOB",
		"DATE", "TIME", "TIMESTAMP", "JSON",
	},
}
