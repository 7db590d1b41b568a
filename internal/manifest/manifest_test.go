package manifest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/internal/testutil"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

const fullManifest = `
database: analytics
statements:
  - kind: create_table_like
    name: t
    database: ""
    example_file: /data/t.csv
    format: {type: delimited, path: /data/t.csv, delimiter: ",", null_format: "NULL"}
  - kind: create_table
    name: trips
    external: false
    if_not_exists: true
    partition_by: [year]
    schema:
      - {name: id, type: int64, not_null: true}
      - {name: fare, type: "decimal(10, 2)"}
      - {name: year, type: int32}
    format: {type: parquet, path: /warehouse/trips}
  - kind: create_table_avro
    name: events
    path: /data/events.avro
    avro_schema:
      type: record
      name: event
      fields: []
  - kind: load_data
    name: trips
    path: /incoming/2024.parquet
    overwrite: true
    partition_schema:
      - {name: year, type: int32}
    partition: {year: 2024}
  - kind: alter_partition
    name: trips
    partition_schema:
      - {name: year, type: int32}
      - {name: region, type: string}
    partition: {region: eu, year: 2023}
    location: /archive/2023/eu
    tbl_properties:
      zeta: "1"
      alpha: "2"
  - kind: cache_table
    name: trips
  - kind: create_function
    name: add_one
    inputs: [int32]
    output: int32
    runtime: wasm
    library: {file: /udf/add.wasm}
  - kind: create_aggregate
    name: my_sum
    database: udfs
    inputs: [int64]
    output: int64
    library: {file: /udf/sum.so}
    hooks: {update: sum_update, finalize: sum_finalize}
  - kind: drop_function
    name: my_fn
    database: db
    inputs: [int32, string]
  - kind: list_functions
    database: db
    aggregate: true
    like: "sum_%"
`

func TestBuildAndRender(t *testing.T) {
	m, err := Parse([]byte(fullManifest))
	require.NoError(t, err)
	require.Len(t, m.Statements, 10)

	stmts, err := Build(m, BuildOptions{CachePool: "hot"})
	require.NoError(t, err)

	results, err := Render(context.Background(), stmts, RenderOptions{
		Concurrency: 3,
		Logger:      testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	want := []string{
		"CREATE EXTERNAL TABLE analytics.t\n" +
			"LIKE DELIMITED '/data/t.csv'\n" +
			"ROW FORMAT DELIMITED\n" +
			"FIELDS TERMINATED BY ','\n" +
			"LOCATION '/data/t.csv'\n" +
			"TBLPROPERTIES ('serialization.null.format'='NULL')",
		"CREATE TABLE IF NOT EXISTS analytics.trips\n" +
			"(`id` BIGINT NOT NULL,\n `fare` DECIMAL(10, 2))\n" +
			"PARTITIONED BY (`year` INT)\n" +
			"STORED AS PARQUET\n" +
			"LOCATION '/warehouse/trips'",
		"CREATE EXTERNAL TABLE analytics.events\n" +
			"STORED AS AVRO\n" +
			"LOCATION '/data/events.avro'\n" +
			"TBLPROPERTIES ('avro.schema.literal'='{\n  \"fields\": [],\n  \"name\": \"event\",\n  \"type\": \"record\"\n}')",
		"LOAD DATA INPATH '/incoming/2024.parquet' OVERWRITE INTO TABLE analytics.trips PARTITION (year=2024)",
		"ALTER TABLE analytics.trips PARTITION (year=2023, region='eu')\n" +
			"SET LOCATION '/archive/2023/eu'\n" +
			"TBLPROPERTIES ('zeta'='1', 'alpha'='2')",
		"ALTER TABLE analytics.trips SET CACHED IN 'hot'",
		"CREATE OR REPLACE FUNCTION analytics.add_one(a INT NOT NULL) RETURNS INT NOT NULL AS WASM INFILE '/udf/add.wasm'",
		"CREATE OR REPLACE AGGREGATE FUNCTION udfs.my_sum(a BIGINT NOT NULL) RETURNS BIGINT NOT NULL AS INFILE '/udf/sum.so'\n" +
			"update_fn=\"sum_update\"\n" +
			"finalize_fn=\"sum_finalize\"",
		"DROP FUNCTION db.my_fn(a INT NOT NULL, b VARCHAR NOT NULL)",
		"SHOW AGGREGATE FUNCTIONS IN db LIKE 'sum_%'",
	}

	require.Len(t, results, len(want))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, stmts[i].Kind().String(), r.Kind)
		assert.Equal(t, want[i], r.SQL, "statement %d", i)
	}
}

func TestBuild_DefaultDatabase(t *testing.T) {
	m, err := Parse([]byte(`
statements:
  - kind: list_functions
  - kind: cache_table
    name: t
`))
	require.NoError(t, err)

	stmts, err := Build(m, BuildOptions{Database: "fallback"})
	require.NoError(t, err)

	sql, err := ddl.CompileAll(stmts...)
	require.NoError(t, err)
	assert.Equal(t, []string{"SHOW FUNCTIONS IN fallback", "ALTER TABLE fallback.t SET CACHED IN 'default'"}, sql)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "unknown kind",
			manifest: "statements:\n  - kind: create_view\n",
			wantErr:  `statement 0 (create_view): unknown statement kind "create_view"`,
		},
		{
			name: "bad type name",
			manifest: `statements:
  - kind: list_functions
    database: db
  - kind: drop_function
    name: f
    inputs: [int32, varchar2]
`,
			wantErr: `statement 1 (drop_function): invalid type "varchar2"`,
		},
		{
			name:     "unknown format",
			manifest: "statements:\n  - kind: create_table_like\n    name: t\n    example_table: x\n    format: {type: orc, path: /p}\n",
			wantErr:  `unknown format type "orc"`,
		},
		{
			name:     "missing format",
			manifest: "statements:\n  - kind: create_table_like\n    name: t\n    example_table: x\n",
			wantErr:  "format is required",
		},
		{
			name:     "unsupported runtime at construction",
			manifest: "statements:\n  - kind: create_function\n    name: f\n    output: int32\n    runtime: native\n    library: {file: /f.so}\n",
			wantErr:  "unsupported function runtime: native",
		},
		{
			name:     "two library sources",
			manifest: "statements:\n  - kind: create_function\n    name: f\n    output: int32\n    runtime: python\n    library: {file: /f.py, source: 'x'}\n",
			wantErr:  "set exactly one of file, source or module",
		},
		{
			name:     "aggregate from source",
			manifest: "statements:\n  - kind: create_aggregate\n    name: f\n    output: int32\n    library: {source: 'x'}\n",
			wantErr:  "unsupported library kind: module",
		},
		{
			name:     "partition values without schema",
			manifest: "statements:\n  - kind: add_partition\n    name: t\n    partition: {year: 2024}\n",
			wantErr:  "partition_schema is required",
		},
		{
			name:     "duplicate column",
			manifest: "statements:\n  - kind: create_table\n    name: t\n    schema:\n      - {name: a, type: int32}\n      - {name: a, type: string}\n",
			wantErr:  `duplicate column "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.manifest))
			require.NoError(t, err)
			_, err = Build(m, BuildOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("statements:\n  - kind: alter_partition\n    tbl_properties: [a, b]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "properties must be a mapping")

	_, err = Parse([]byte("statements:\n  - kind: load_data\n    partition: 2024\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partition must be a mapping")
}

func TestLoad_ModuleLibrary(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "udf.py"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "udf.wasm"), []byte{0x00, 'a', 's', 'm'}, 0o600))

	path := filepath.Join(dir, "ddl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
statements:
  - kind: create_function
    name: py
    output: string
    runtime: python
    library: {module: udf.py}
  - kind: create_function
    name: wasm
    output: int32
    runtime: wasm
    library: {module: udf.wasm}
`), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	stmts, err := Build(m, BuildOptions{})
	require.NoError(t, err)

	sql, err := ddl.CompileAll(stmts...)
	require.NoError(t, err)
	assert.Equal(t, "CREATE OR REPLACE FUNCTION py() RETURNS VARCHAR NOT NULL AS PYTHON 'J3gn'", sql[0])
	// b'\x00asm'
	assert.Equal(t, "CREATE OR REPLACE FUNCTION wasm() RETURNS INT NOT NULL AS WASM 'YidceDAwYXNtJw=='", sql[1])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRender_LowestIndexErrorWins(t *testing.T) {
	stmts := []ddl.Statement{
		ddl.ListFunctions{Database: "db"},
		ddl.CacheTable{},
		ddl.ListFunctions{},
	}
	_, err := Render(context.Background(), stmts, RenderOptions{Concurrency: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 1 (cache_table)")
}

func TestRender_LowestIndexErrorWinsConcurrently(t *testing.T) {
	stmts := make([]ddl.Statement, 64)
	for i := range stmts {
		stmts[i] = ddl.ListFunctions{}
	}

	for range 200 {
		_, err := Render(context.Background(), stmts, RenderOptions{Concurrency: 8})
		require.Error(t, err)
		require.Contains(t, err.Error(), "statement 0 (list_functions)")
	}
}

func TestRender_FailureDoesNotStopOthers(t *testing.T) {
	stmts := []ddl.Statement{
		ddl.ListFunctions{Database: "db"},
		ddl.ListFunctions{},
		ddl.ListFunctions{Database: "db"},
		ddl.CacheTable{Table: "t"},
	}
	logger, logs := testutil.NewCaptureLogger()

	_, err := Render(context.Background(), stmts, RenderOptions{Concurrency: 4, Logger: logger})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 1 (list_functions)")
	assert.Equal(t, 3, logs.Count("statement compiled"))
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, []ddl.Statement{ddl.ListFunctions{Database: "db"}}, RenderOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_Empty(t *testing.T) {
	results, err := Render(context.Background(), nil, RenderOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRender_LogsEachStatement(t *testing.T) {
	m, err := Parse([]byte(fullManifest))
	require.NoError(t, err)
	stmts, err := Build(m, BuildOptions{})
	require.NoError(t, err)

	logger, logs := testutil.NewCaptureLogger()
	_, err = Render(context.Background(), stmts, RenderOptions{Concurrency: 2, Logger: logger})
	require.NoError(t, err)

	assert.Equal(t, len(stmts), logs.Count("statement compiled"))
	assert.Equal(t, 1, logs.Count("render complete"))
	for _, line := range logs.Lines() {
		assert.NotContains(t, line, "time=")
		assert.Contains(t, line, "level=DEBUG")
	}
}
