package ddl

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

// createLine renders CREATE [EXTERNAL ]TABLE [IF NOT EXISTS ]<scoped-name>.
func createLine(kind Kind, name, database string, external, ifNotExists bool) (string, error) {
	if err := required(kind, "table name", name); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("CREATE ")
	if external {
		b.WriteString("EXTERNAL ")
	}
	b.WriteString("TABLE ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(ScopedName(name, database))
	return b.String(), nil
}

func formatClauses(f StorageFormat, location string) (string, error) {
	var (
		clauses []string
		err     error
	)
	if location != "" {
		clauses, err = f.clausesAt(location)
	} else {
		clauses, err = f.Clauses()
	}
	if err != nil {
		return "", err
	}
	return strings.Join(clauses, "\n"), nil
}

// CreateTableFromFormat creates a table whose columns come from exactly one of
// an example data file, an existing table or an explicit schema, stored in
// Format. Location, when set, replaces the format's own LOCATION.
type CreateTableFromFormat struct {
	Name         string
	Database     string
	Format       StorageFormat
	ExampleFile  string
	ExampleTable string
	Schema       *core.Schema
	Location     string
	External     bool
	IfNotExists  bool
}

// NewParquetTable returns an external table stored as Parquet at path.
// Set one of ExampleFile, ExampleTable or Schema before compiling.
func NewParquetTable(name, path string) *CreateTableFromFormat {
	return &CreateTableFromFormat{
		Name:     name,
		Format:   &ParquetFormat{Path: path},
		External: true,
	}
}

// Kind implements Statement.
func (s CreateTableFromFormat) Kind() Kind { return KindCreateTableFromFormat }

func (s CreateTableFromFormat) statementNode() {}

func (s CreateTableFromFormat) sources() []string {
	var set []string
	if s.ExampleFile != "" {
		set = append(set, "example file")
	}
	if s.ExampleTable != "" {
		set = append(set, "example table")
	}
	if s.Schema != nil {
		set = append(set, "schema")
	}
	return set
}

// Compile implements Statement.
func (s CreateTableFromFormat) Compile() (string, error) {
	head, err := createLine(s.Kind(), s.Name, s.Database, s.External, s.IfNotExists)
	if err != nil {
		return "", err
	}
	if s.Format == nil {
		return "", &MissingFieldError{Statement: s.Kind(), Field: "format"}
	}
	if src := s.sources(); len(src) != 1 {
		return "", &AmbiguousSourceError{Table: ScopedName(s.Name, s.Database), Sources: src}
	}

	var source string
	switch {
	case s.ExampleFile != "":
		source = fmt.Sprintf("LIKE %s %s", s.Format.FormatName(), QuoteLiteral(s.ExampleFile))
	case s.ExampleTable != "":
		source = "LIKE " + s.ExampleTable
	default:
		if source, err = FormatSchema(s.Schema); err != nil {
			return "", err
		}
	}

	storage, err := formatClauses(s.Format, s.Location)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{head, source, storage}, "\n"), nil
}

// CreateTableWithSchema creates a table from an explicit schema. Columns named
// in PartitionBy move out of the column list into a PARTITIONED BY clause.
// Format is optional; without it only Location is rendered.
type CreateTableWithSchema struct {
	Name        string
	Database    string
	Schema      *core.Schema
	Format      StorageFormat
	PartitionBy []string
	Location    string
	External    bool
	IfNotExists bool
}

// NewDelimitedTable returns an external table over a delimited file.
func NewDelimitedTable(name string, schema *core.Schema, format *DelimitedFormat) *CreateTableWithSchema {
	return &CreateTableWithSchema{
		Name:     name,
		Schema:   schema,
		Format:   format,
		External: true,
	}
}

// Kind implements Statement.
func (s CreateTableWithSchema) Kind() Kind { return KindCreateTableWithSchema }

func (s CreateTableWithSchema) statementNode() {}

// Compile implements Statement.
func (s CreateTableWithSchema) Compile() (string, error) {
	head, err := createLine(s.Kind(), s.Name, s.Database, s.External, s.IfNotExists)
	if err != nil {
		return "", err
	}
	if s.Schema == nil {
		return "", &MissingFieldError{Statement: s.Kind(), Field: "schema"}
	}

	pieces := []string{head}
	if len(s.PartitionBy) == 0 {
		cols, err := FormatSchema(s.Schema)
		if err != nil {
			return "", err
		}
		pieces = append(pieces, cols)
	} else {
		part := &core.Schema{}
		for _, name := range s.PartitionBy {
			col, ok := s.Schema.Lookup(name)
			if !ok {
				return "", fmt.Errorf("partition column %q: %w", name, ErrUnknownColumn)
			}
			part.Columns = append(part.Columns, col)
		}
		cols, err := FormatSchema(s.Schema.Without(s.PartitionBy...))
		if err != nil {
			return "", err
		}
		partCols, err := FormatSchema(part)
		if err != nil {
			return "", err
		}
		pieces = append(pieces, cols, "PARTITIONED BY "+partCols)
	}

	switch {
	case s.Format != nil:
		storage, err := formatClauses(s.Format, s.Location)
		if err != nil {
			return "", err
		}
		pieces = append(pieces, storage)
	case s.Location != "":
		pieces = append(pieces, locationClause(s.Location))
	}
	return strings.Join(pieces, "\n"), nil
}

// CreateTableAvro creates a table over an Avro file, embedding its schema.
type CreateTableAvro struct {
	Name        string
	Database    string
	Path        string
	Schema      any
	External    bool
	IfNotExists bool
}

// NewAvroTable returns an external Avro table.
func NewAvroTable(name, path string, schema any) *CreateTableAvro {
	return &CreateTableAvro{
		Name:     name,
		Path:     path,
		Schema:   schema,
		External: true,
	}
}

// Kind implements Statement.
func (s CreateTableAvro) Kind() Kind { return KindCreateTableAvro }

func (s CreateTableAvro) statementNode() {}

// Compile implements Statement.
func (s CreateTableAvro) Compile() (string, error) {
	head, err := createLine(s.Kind(), s.Name, s.Database, s.External, s.IfNotExists)
	if err != nil {
		return "", err
	}
	if err := required(s.Kind(), "path", s.Path); err != nil {
		return "", err
	}
	storage, err := formatClauses(&AvroFormat{Path: s.Path, Schema: s.Schema}, "")
	if err != nil {
		return "", err
	}
	return head + "\n" + storage, nil
}
