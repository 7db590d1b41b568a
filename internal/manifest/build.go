package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// BuildOptions supplies defaults for fields a manifest leaves empty.
type BuildOptions struct {
	// Database is used when neither the statement nor the manifest names one.
	Database string
	// CachePool is used by cache_table statements without a pool.
	CachePool string
}

// Build converts every request into a statement. The first invalid request
// aborts the build; the error names its index and kind.
func Build(m *Manifest, opts BuildOptions) ([]ddl.Statement, error) {
	db := m.Database
	if db == "" {
		db = opts.Database
	}

	stmts := make([]ddl.Statement, 0, len(m.Statements))
	for i := range m.Statements {
		req := &m.Statements[i]
		stmt, err := m.build(req, db, opts)
		if err != nil {
			return nil, fmt.Errorf("statement %d (%s): %w", i, req.Kind, err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (m *Manifest) build(r *Request, defaultDB string, opts BuildOptions) (ddl.Statement, error) {
	kind, ok := ddl.ParseKind(r.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown statement kind %q", r.Kind)
	}

	db := r.Database
	if db == "" {
		db = defaultDB
	}

	switch kind {
	case ddl.KindCreateTableFromFormat:
		format, err := r.Format.storage()
		if err != nil {
			return nil, err
		}
		schema, err := schemaOf(r.Schema)
		if err != nil {
			return nil, err
		}
		return ddl.CreateTableFromFormat{
			Name:         r.Name,
			Database:     db,
			Format:       format,
			ExampleFile:  r.ExampleFile,
			ExampleTable: r.ExampleTable,
			Schema:       schema,
			Location:     r.Location,
			External:     boolOr(r.External, true),
			IfNotExists:  r.IfNotExists,
		}, nil

	case ddl.KindCreateTableWithSchema:
		var format ddl.StorageFormat
		if r.Format != nil {
			f, err := r.Format.storage()
			if err != nil {
				return nil, err
			}
			format = f
		}
		schema, err := schemaOf(r.Schema)
		if err != nil {
			return nil, err
		}
		return ddl.CreateTableWithSchema{
			Name:        r.Name,
			Database:    db,
			Schema:      schema,
			Format:      format,
			PartitionBy: r.PartitionBy,
			Location:    r.Location,
			External:    boolOr(r.External, true),
			IfNotExists: r.IfNotExists,
		}, nil

	case ddl.KindCreateTableAvro:
		return ddl.CreateTableAvro{
			Name:        r.Name,
			Database:    db,
			Path:        r.Path,
			Schema:      r.AvroSchema,
			External:    boolOr(r.External, true),
			IfNotExists: r.IfNotExists,
		}, nil

	case ddl.KindLoadData:
		var part *ddl.PartitionSpec
		if len(r.PartitionSchema) > 0 || len(r.Partition.Keys) > 0 {
			p, err := r.partition()
			if err != nil {
				return nil, err
			}
			part = p
		}
		return ddl.LoadData{
			Path:      r.Path,
			Table:     r.Name,
			Database:  db,
			Partition: part,
			Overwrite: r.Overwrite,
		}, nil

	case ddl.KindAddPartition, ddl.KindAlterPartition, ddl.KindDropPartition:
		part, err := r.partition()
		if err != nil {
			return nil, err
		}
		switch kind {
		case ddl.KindAddPartition:
			return ddl.AddPartition{Table: r.Name, Database: db, Partition: part, Location: r.Location}, nil
		case ddl.KindAlterPartition:
			return ddl.AlterPartition{
				Table:           r.Name,
				Database:        db,
				Partition:       part,
				Location:        r.Location,
				FileFormat:      r.FileFormat,
				TableProperties: r.TblProperties.PropertyMap,
				SerdeProperties: r.SerdeProperties.PropertyMap,
			}, nil
		default:
			return ddl.DropPartition{Table: r.Name, Database: db, Partition: part}, nil
		}

	case ddl.KindCacheTable:
		pool := r.Pool
		if pool == "" {
			pool = opts.CachePool
		}
		return ddl.CacheTable{Table: r.Name, Database: db, Pool: pool}, nil

	case ddl.KindCreateScalarFunction:
		inputs, output, err := r.signature()
		if err != nil {
			return nil, err
		}
		runtime, err := ddl.ParseRuntime(r.Runtime)
		if err != nil {
			return nil, err
		}
		lib, err := m.library(r.Library)
		if err != nil {
			return nil, err
		}
		fn, err := ddl.NewFunction(r.Name, inputs, output, runtime, lib)
		if err != nil {
			return nil, err
		}
		return ddl.CreateScalarFunction{Func: *fn, Database: db}, nil

	case ddl.KindCreateAggregateFunction:
		inputs, output, err := r.signature()
		if err != nil {
			return nil, err
		}
		lib, err := m.library(r.Library)
		if err != nil {
			return nil, err
		}
		agg := ddl.Aggregate{
			Name:    r.Name,
			Inputs:  inputs,
			Output:  output,
			Library: lib,
			Hooks: ddl.AggregateHooks{
				Init:      r.Hooks.Init,
				Update:    r.Hooks.Update,
				Merge:     r.Hooks.Merge,
				Serialize: r.Hooks.Serialize,
				Finalize:  r.Hooks.Finalize,
			},
		}
		if err := agg.Validate(); err != nil {
			return nil, err
		}
		return ddl.CreateAggregateFunction{Func: agg, Database: db}, nil

	case ddl.KindDropFunction:
		inputs, err := core.ParseTypes(r.Inputs)
		if err != nil {
			return nil, err
		}
		return ddl.DropFunction{
			Name:      r.Name,
			Database:  db,
			Inputs:    inputs,
			Aggregate: r.Aggregate,
			IfExists:  r.IfExists,
		}, nil

	case ddl.KindListFunctions:
		return ddl.ListFunctions{Database: db, Like: r.Like, Aggregate: r.Aggregate}, nil
	}

	return nil, fmt.Errorf("unhandled statement kind %s", kind)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (f *FormatSpec) storage() (ddl.StorageFormat, error) {
	if f == nil {
		return nil, errors.New("format is required")
	}
	switch strings.ToLower(f.Type) {
	case "delimited", "csv":
		return &ddl.DelimitedFormat{
			Path:           f.Path,
			Delimiter:      f.Delimiter,
			Escape:         f.Escape,
			LineTerminator: f.LineTerminator,
			NullFormat:     f.NullFormat,
		}, nil
	case "parquet":
		return &ddl.ParquetFormat{Path: f.Path}, nil
	case "avro":
		return &ddl.AvroFormat{Path: f.Path, Schema: f.Schema}, nil
	default:
		return nil, fmt.Errorf("unknown format type %q (want delimited, parquet or avro)", f.Type)
	}
}

func schemaOf(cols []ColumnSpec) (*core.Schema, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	columns := make([]core.Column, len(cols))
	for i, c := range cols {
		typ, err := core.ParseType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		columns[i] = core.Column{Name: c.Name, Type: typ, NotNull: c.NotNull}
	}
	return core.NewSchema(columns...)
}

func (r *Request) partition() (*ddl.PartitionSpec, error) {
	schema, err := schemaOf(r.PartitionSchema)
	if err != nil {
		return nil, fmt.Errorf("partition_schema: %w", err)
	}
	if schema == nil {
		return nil, errors.New("partition_schema is required")
	}
	spec := ddl.NewPartition(schema)
	for _, key := range r.Partition.Keys {
		spec.Set(key, r.Partition.Values[key])
	}
	return spec, nil
}

func (r *Request) signature() ([]core.DataType, core.DataType, error) {
	inputs, err := core.ParseTypes(r.Inputs)
	if err != nil {
		return nil, core.DataType{}, fmt.Errorf("inputs: %w", err)
	}
	output, err := core.ParseType(r.Output)
	if err != nil {
		return nil, core.DataType{}, fmt.Errorf("output: %w", err)
	}
	return inputs, output, nil
}

// library resolves a library spec. Module files ending in .wasm are embedded
// as binary; anything else is embedded as source text.
func (m *Manifest) library(spec *LibrarySpec) (ddl.Library, error) {
	if spec == nil {
		return ddl.Library{}, nil
	}

	set := 0
	for _, v := range []string{spec.File, spec.Source, spec.Module} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return ddl.Library{}, errors.New("library: set exactly one of file, source or module")
	}

	switch {
	case spec.File != "":
		return ddl.FileLibrary(spec.File), nil
	case spec.Source != "":
		return ddl.SourceLibrary(spec.Source), nil
	}

	path := spec.Module
	if !filepath.IsAbs(path) && m.dir != "" {
		path = filepath.Join(m.dir, path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // module path comes from the manifest author
	if err != nil {
		return ddl.Library{}, fmt.Errorf("library: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".wasm") {
		return ddl.BinaryLibrary(data), nil
	}
	return ddl.SourceLibrary(string(data)), nil
}
