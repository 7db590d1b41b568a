// Package manifest reads YAML files describing DDL requests and turns them
// into ddl.Statement values.
//
// A manifest has an optional default database and a list of statements, each
// tagged with its kind:
//
//	database: analytics
//	statements:
//	  - kind: create_table_like
//	    name: trips
//	    example_file: /data/trips.csv
//	    format: {type: delimited, path: /data/trips.csv, delimiter: ",", null_format: "NULL"}
//
// Property and partition mappings keep the order they are written in.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// Manifest is a decoded manifest file.
type Manifest struct {
	Database   string    `yaml:"database"`
	Statements []Request `yaml:"statements"`

	// dir resolves relative module paths; empty for manifests parsed from memory.
	dir string
}

// Request is one statement entry. Only the fields relevant to Kind are read.
type Request struct {
	Kind     string `yaml:"kind"`
	Name     string `yaml:"name"`
	Database string `yaml:"database"`

	// Tables
	Format       *FormatSpec  `yaml:"format"`
	ExampleFile  string       `yaml:"example_file"`
	ExampleTable string       `yaml:"example_table"`
	Schema       []ColumnSpec `yaml:"schema"`
	PartitionBy  []string     `yaml:"partition_by"`
	Location     string       `yaml:"location"`
	External     *bool        `yaml:"external"`
	IfNotExists  bool         `yaml:"if_not_exists"`
	Path         string       `yaml:"path"`
	AvroSchema   any          `yaml:"avro_schema"`

	// Load, partitions, cache
	Overwrite       bool            `yaml:"overwrite"`
	PartitionSchema []ColumnSpec    `yaml:"partition_schema"`
	Partition       PartitionValues `yaml:"partition"`
	FileFormat      string          `yaml:"file_format"`
	TblProperties   Properties      `yaml:"tbl_properties"`
	SerdeProperties Properties      `yaml:"serde_properties"`
	Pool            string          `yaml:"pool"`

	// Functions
	Inputs    []string     `yaml:"inputs"`
	Output    string       `yaml:"output"`
	Runtime   string       `yaml:"runtime"`
	Library   *LibrarySpec `yaml:"library"`
	Hooks     HookSpec     `yaml:"hooks"`
	Aggregate bool         `yaml:"aggregate"`
	IfExists  bool         `yaml:"if_exists"`
	Like      string       `yaml:"like"`
}

// FormatSpec describes a storage format.
type FormatSpec struct {
	Type           string  `yaml:"type"`
	Path           string  `yaml:"path"`
	Delimiter      string  `yaml:"delimiter"`
	Escape         string  `yaml:"escape"`
	LineTerminator string  `yaml:"line_terminator"`
	NullFormat     *string `yaml:"null_format"`
	Schema         any     `yaml:"schema"`
}

// ColumnSpec is one schema column.
type ColumnSpec struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	NotNull bool   `yaml:"not_null"`
}

// LibrarySpec references function code. Exactly one field should be set:
// File is a server-side path, Source is inline text, and Module is a local file
// whose bytes are embedded.
type LibrarySpec struct {
	File   string `yaml:"file"`
	Source string `yaml:"source"`
	Module string `yaml:"module"`
}

// HookSpec names aggregate hook functions.
type HookSpec struct {
	Init      string `yaml:"init"`
	Update    string `yaml:"update"`
	Merge     string `yaml:"merge"`
	Serialize string `yaml:"serialize"`
	Finalize  string `yaml:"finalize"`
}

// Properties is a string mapping decoded in document order.
type Properties struct {
	*ddl.PropertyMap
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	p.PropertyMap = ddl.NewPropertyMap()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: property %q must be a scalar", value.Line, key.Value)
		}
		p.Set(key.Value, value.Value)
	}
	return nil
}

// PartitionValues is a key → value mapping decoded in document order.
type PartitionValues struct {
	Keys   []string
	Values map[string]any
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PartitionValues) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: partition must be a mapping", node.Line)
	}
	p.Keys = nil
	p.Values = make(map[string]any, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var v any
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: partition key %q: %w", value.Line, key.Value, err)
		}
		if _, dup := p.Values[key.Value]; !dup {
			p.Keys = append(p.Keys, key.Value)
		}
		p.Values[key.Value] = v
	}
	return nil
}

// Parse decodes a manifest from YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Load reads and parses a manifest file. Relative module paths in the file
// resolve against its directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}
