package ddl

import "strings"

// AddPartition adds a partition to a table, optionally at Location.
type AddPartition struct {
	Table     string
	Database  string
	Partition *PartitionSpec
	Location  string
}

// AlterPartition changes the storage properties of an existing partition.
type AlterPartition struct {
	Table           string
	Database        string
	Partition       *PartitionSpec
	Location        string
	FileFormat      string
	TableProperties *PropertyMap
	SerdeProperties *PropertyMap
}

// DropPartition removes a partition.
type DropPartition struct {
	Table     string
	Database  string
	Partition *PartitionSpec
}

// partitionProperties holds the optional storage fields shared by Add and Alter.
type partitionProperties struct {
	location   string
	fileFormat string
	tblProps   *PropertyMap
	serdeProps *PropertyMap
}

// render returns the property lines prefixed by a newline and prefix, or "" when
// nothing is set.
func (p partitionProperties) render(prefix string) string {
	var tokens []string
	if p.location != "" {
		tokens = append(tokens, locationClause(p.location))
	}
	if p.fileFormat != "" {
		tokens = append(tokens, "FILEFORMAT "+p.fileFormat)
	}
	if p.tblProps.Len() > 0 {
		tokens = append(tokens, FormatProperties(p.tblProps, "TBLPROPERTIES "))
	}
	if p.serdeProps.Len() > 0 {
		tokens = append(tokens, FormatProperties(p.serdeProps, "SERDEPROPERTIES "))
	}
	if len(tokens) == 0 {
		return ""
	}
	return "\n" + prefix + strings.Join(tokens, "\n")
}

func compilePartition(kind Kind, table, database, verb string, spec *PartitionSpec, props partitionProperties, prefix string) (string, error) {
	if err := required(kind, "table name", table); err != nil {
		return "", err
	}
	part, err := FormatPartition(spec)
	if err != nil {
		return "", err
	}
	if verb != "" {
		part = verb + " " + part
	}
	return "ALTER TABLE " + ScopedName(table, database) + " " + part + props.render(prefix), nil
}

// Kind implements Statement.
func (s AddPartition) Kind() Kind { return KindAddPartition }

func (s AddPartition) statementNode() {}

// Compile implements Statement.
func (s AddPartition) Compile() (string, error) {
	props := partitionProperties{location: s.Location}
	return compilePartition(s.Kind(), s.Table, s.Database, "ADD", s.Partition, props, "")
}

// Kind implements Statement.
func (s AlterPartition) Kind() Kind { return KindAlterPartition }

func (s AlterPartition) statementNode() {}

// Compile implements Statement.
func (s AlterPartition) Compile() (string, error) {
	props := partitionProperties{
		location:   s.Location,
		fileFormat: s.FileFormat,
		tblProps:   s.TableProperties,
		serdeProps: s.SerdeProperties,
	}
	return compilePartition(s.Kind(), s.Table, s.Database, "", s.Partition, props, "SET ")
}

// Kind implements Statement.
func (s DropPartition) Kind() Kind { return KindDropPartition }

func (s DropPartition) statementNode() {}

// Compile implements Statement.
func (s DropPartition) Compile() (string, error) {
	return compilePartition(s.Kind(), s.Table, s.Database, "DROP", s.Partition, partitionProperties{}, "")
}
