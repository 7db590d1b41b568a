package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapddl/internal/manifest"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// kindDoc documents one statement kind with a manifest snippet.
type kindDoc struct {
	Description string
	Example     string
}

var kindDocs = map[ddl.Kind]kindDoc{
	ddl.KindCreateTableFromFormat: {
		Description: "Create a table whose schema is inferred from an example file or table",
		Example: `- kind: create_table_like
  name: raw_trips
  example_file: /landing/trips/sample.csv
  format: {type: delimited, path: /landing/trips, delimiter: ","}`,
	},
	ddl.KindCreateTableWithSchema: {
		Description: "Create a table from an explicit column list",
		Example: `- kind: create_table
  name: trips
  partition_by: [trip_date]
  schema:
    - {name: trip_id, type: int64, not_null: true}
    - {name: trip_date, type: date}
  format: {type: parquet, path: /warehouse/trips}`,
	},
	ddl.KindCreateTableAvro: {
		Description: "Create an Avro table from an inline Avro schema",
		Example: `- kind: create_table_avro
  name: events
  path: /landing/events
  avro_schema: {type: record, name: event, fields: [{name: id, type: long}]}`,
	},
	ddl.KindLoadData: {
		Description: "Move files into a table, optionally into a partition",
		Example: `- kind: load_data
  name: trips
  path: /incoming/trips.parquet
  overwrite: true`,
	},
	ddl.KindAddPartition: {
		Description: "Add a partition to a table",
		Example: `- kind: add_partition
  name: trips
  partition_schema: [{name: trip_date, type: date}]
  partition: {trip_date: "2024-01-02"}`,
	},
	ddl.KindAlterPartition: {
		Description: "Change the location, format or properties of a partition",
		Example: `- kind: alter_partition
  name: trips
  partition_schema: [{name: trip_date, type: date}]
  partition: {trip_date: "2024-01-02"}
  file_format: PARQUET`,
	},
	ddl.KindDropPartition: {
		Description: "Drop a partition from a table",
		Example: `- kind: drop_partition
  name: trips
  partition_schema: [{name: trip_date, type: date}]
  partition: {trip_date: "2023-12-31"}`,
	},
	ddl.KindCacheTable: {
		Description: "Pin a table in a cache pool",
		Example: `- kind: cache_table
  name: trips
  pool: hot`,
	},
	ddl.KindCreateScalarFunction: {
		Description: "Create a scalar user-defined function",
		Example: `- kind: create_function
  name: add_one
  inputs: [int64]
  output: int64
  runtime: python
  library: {source: "def add_one(x): return x + 1"}`,
	},
	ddl.KindCreateAggregateFunction: {
		Description: "Create a user-defined aggregate function",
		Example: `- kind: create_aggregate
  name: approx_median
  inputs: [float64]
  output: float64
  library: {file: /udf/median.so}
  hooks: {init: median_init, update: median_update, merge: median_merge, finalize: median_finalize}`,
	},
	ddl.KindDropFunction: {
		Description: "Drop a function by signature",
		Example: `- kind: drop_function
  name: add_one
  if_exists: true
  inputs: [int64]`,
	},
	ddl.KindListFunctions: {
		Description: "List functions in a database",
		Example: `- kind: list_functions
  like: "add_%"`,
	},
}

// generateManifestDocs writes the statement kind reference. Every example is
// rendered so the page shows the SQL leapddl produces for it.
func generateManifestDocs(outDir string) error {
	log.Printf("Generating manifest docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Manifest Reference", "Statement kinds accepted in leapddl manifests")
	w.GeneratedMarker()

	w.Header(1, "Manifest Reference")
	w.Paragraph("A manifest names an optional default database and a list of statements. Each statement is tagged with its kind.")

	var rows [][]string
	for _, k := range ddl.Kinds() {
		rows = append(rows, []string{InlineCode(k.String()), kindDocs[k].Description})
	}
	w.Table([]string{"Kind", "Description"}, rows)

	for _, k := range ddl.Kinds() {
		doc, ok := kindDocs[k]
		if !ok {
			return fmt.Errorf("no documentation for kind %s", k)
		}
		sql, err := renderExample(doc.Example)
		if err != nil {
			return fmt.Errorf("example for %s: %w", k, err)
		}

		w.Header(2, k.String())
		w.Paragraph(doc.Description + ".")
		w.CodeBlock("yaml", doc.Example)
		w.CodeBlock("sql", sql+";")
	}

	filename := filepath.Join(outDir, "manifest.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

func renderExample(example string) (string, error) {
	m, err := manifest.Parse([]byte("database: warehouse\nstatements:\n" + indent(example)))
	if err != nil {
		return "", err
	}
	stmts, err := manifest.Build(m, manifest.BuildOptions{CachePool: ddl.DefaultCachePool})
	if err != nil {
		return "", err
	}
	results, err := manifest.Render(context.Background(), stmts, manifest.RenderOptions{Concurrency: 1})
	if err != nil {
		return "", err
	}
	return results[0].SQL, nil
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
