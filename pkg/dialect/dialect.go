// Package dialect provides SQL dialect descriptors and a global registry.
//
// A Dialect pairs the static configuration from pkg/core with the dialect's
// type translator. Concrete dialects register themselves from pkg/dialects/*/
// packages in their init() functions.
package dialect

import (
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

// TypeFormatter renders an abstract type in a dialect's spelling.
type TypeFormatter func(t core.DataType) (string, error)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name            string
	Identifiers     core.IdentifierConfig
	DefaultDatabase string

	keywords  map[string]struct{}
	dataTypes []string
	typeSQL   TypeFormatter
}

// New creates a dialect from its static config and type translator.
func New(cfg *core.DialectConfig, types TypeFormatter) *Dialect {
	d := &Dialect{
		Name:            cfg.Name,
		Identifiers:     cfg.Identifiers,
		DefaultDatabase: cfg.DefaultDatabase,
		keywords:        make(map[string]struct{}, len(cfg.Keywords)),
		dataTypes:       cfg.DataTypes,
		typeSQL:         types,
	}
	for _, kw := range cfg.Keywords {
		d.keywords[strings.ToLower(kw)] = struct{}{}
	}
	return d
}

// TypeSQL renders t in the dialect's spelling.
func (d *Dialect) TypeSQL(t core.DataType) (string, error) {
	return d.typeSQL(t)
}

// IsKeyword returns true if name is a reserved keyword (case-insensitive).
func (d *Dialect) IsKeyword(name string) bool {
	_, ok := d.keywords[strings.ToLower(name)]
	return ok
}

// DataTypes returns the dialect's type names.
func (d *Dialect) DataTypes() []string {
	return d.dataTypes
}

// QuoteIdentifier wraps name in the dialect's quote characters, escaping
// any embedded closing quote.
func (d *Dialect) QuoteIdentifier(name string) string {
	q := d.Identifiers
	end := q.QuoteEnd
	if end == "" {
		end = q.Quote
	}
	return q.Quote + strings.ReplaceAll(name, end, q.Escape) + end
}

// QuoteIdentifierIfNeeded quotes name only when it is a keyword or not a plain identifier.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsKeyword(name) || !isPlainIdentifier(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
