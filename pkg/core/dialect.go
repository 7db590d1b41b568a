package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data; the type translator lives in pkg/dialect.Dialect.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "singlestore")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultDatabase is used when a statement has no namespace and the caller asks for one.
	DefaultDatabase string

	// Keywords that must be quoted when used as identifiers
	Keywords []string

	// DataTypes lists the dialect's type names, for help output
	DataTypes []string
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, SingleStore table names).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison.
	NormCaseInsensitive
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
