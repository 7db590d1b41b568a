package core

// Column is a single column of a table schema.
// NotNull adds a NOT NULL constraint when the column is rendered.
type Column struct {
	Name    string
	Type    DataType
	NotNull bool
}

// Schema is an ordered list of columns with unique names.
type Schema struct {
	Columns []Column
}

// NewSchema builds a schema and validates that column names are unique.
func NewSchema(columns ...Column) (*Schema, error) {
	s := &Schema{Columns: columns}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the uniqueness invariant.
func (s *Schema) Validate() error {
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if _, dup := seen[c.Name]; dup {
			return &DuplicateColumnError{Name: c.Name}
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Columns)
}

// Names returns the column names in order.
func (s *Schema) Names() []string {
	names := make([]string, 0, s.Len())
	if s == nil {
		return names
	}
	for _, c := range s.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Lookup returns the column with the given name.
func (s *Schema) Lookup(name string) (Column, bool) {
	if s == nil {
		return Column{}, false
	}
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Without returns a copy of the schema minus the named columns.
func (s *Schema) Without(names ...string) *Schema {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := &Schema{}
	for _, c := range s.Columns {
		if _, ok := drop[c.Name]; !ok {
			out.Columns = append(out.Columns, c)
		}
	}
	return out
}
