package ddl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

func TestKindNames(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 12)
	assert.NotContains(t, kinds, KindInvalid)

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			got, ok := ParseKind(k.String())
			require.True(t, ok)
			assert.Equal(t, k, got)
		})
	}

	_, ok := ParseKind("statement")
	assert.False(t, ok)
	_, ok = ParseKind("create_view")
	assert.False(t, ok)
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestStatementKinds(t *testing.T) {
	stmts := map[Kind]Statement{
		KindCreateTableFromFormat:   CreateTableFromFormat{},
		KindCreateTableWithSchema:   &CreateTableWithSchema{},
		KindCreateTableAvro:         CreateTableAvro{},
		KindLoadData:                LoadData{},
		KindAddPartition:            AddPartition{},
		KindAlterPartition:          AlterPartition{},
		KindDropPartition:           DropPartition{},
		KindCacheTable:              CacheTable{},
		KindCreateScalarFunction:    CreateScalarFunction{},
		KindCreateAggregateFunction: CreateAggregateFunction{},
		KindDropFunction:            DropFunction{},
		KindListFunctions:           ListFunctions{},
	}
	for kind, stmt := range stmts {
		assert.Equal(t, kind, stmt.Kind())
	}
}

func TestCompileAll(t *testing.T) {
	out, err := CompileAll(
		ListFunctions{Database: "db"},
		CacheTable{Table: "t"},
		DropFunction{Name: "f", Inputs: []core.DataType{core.String}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SHOW FUNCTIONS IN db",
		"ALTER TABLE t SET CACHED IN 'default'",
		"DROP FUNCTION f(a VARCHAR NOT NULL)",
	}, out)

	out, err = CompileAll(
		ListFunctions{Database: "db"},
		CreateTableFromFormat{Name: "t", Format: &ParquetFormat{Path: "/p"}},
	)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "statement 1 (create_table_like)")

	var ambiguous *AmbiguousSourceError
	assert.True(t, errors.As(err, &ambiguous))
}

// The six reference statements the renderer must reproduce exactly.
func TestGoldenStatements(t *testing.T) {
	t.Run("delimited like example file", func(t *testing.T) {
		got, err := CreateTableFromFormat{
			Name:        "t",
			Format:      &DelimitedFormat{Path: "/data/t.csv", Delimiter: ",", NullFormat: Ptr("NULL")},
			ExampleFile: "/data/t.csv",
			External:    true,
		}.Compile()
		require.NoError(t, err)
		assert.Contains(t, got, "LIKE DELIMITED '/data/t.csv'")
		assert.Contains(t, got, "FIELDS TERMINATED BY ','")
		assert.Contains(t, got, "LOCATION '/data/t.csv'")
		assert.True(t, len(got) > 0 && got[len(got)-1] == ')')
		assert.Contains(t, got, "('serialization.null.format'='NULL')")
	})

	t.Run("example file and table", func(t *testing.T) {
		_, err := CreateTableFromFormat{
			Name:         "t",
			Format:       &ParquetFormat{Path: "/p"},
			ExampleFile:  "/p/a.parquet",
			ExampleTable: "src",
		}.Compile()
		var ambiguous *AmbiguousSourceError
		assert.True(t, errors.As(err, &ambiguous))
	})

	t.Run("unsupported runtime", func(t *testing.T) {
		_, err := CreateScalarFunction{
			Func: Function{Name: "f", Output: core.Int32, Runtime: RuntimeNative, Library: FileLibrary("/f.so")},
		}.Compile()
		var runtimeErr *UnsupportedRuntimeError
		require.True(t, errors.As(err, &runtimeErr))
		assert.Contains(t, err.Error(), "native")
	})

	t.Run("aggregate hooks", func(t *testing.T) {
		got, err := CreateAggregateFunction{Func: Aggregate{
			Name:    "s",
			Inputs:  []core.DataType{core.Int64},
			Output:  core.Int64,
			Library: FileLibrary("/s.so"),
			Hooks:   AggregateHooks{Update: "u", Finalize: "f"},
		}}.Compile()
		require.NoError(t, err)
		assert.Equal(t, "CREATE OR REPLACE AGGREGATE FUNCTION s(a BIGINT NOT NULL) RETURNS BIGINT NOT NULL AS INFILE '/s.so'\nupdate_fn=\"u\"\nfinalize_fn=\"f\"", got)
	})

	t.Run("drop function", func(t *testing.T) {
		got, err := DropFunction{Name: "fn", Database: "db", Inputs: []core.DataType{core.Int32, core.String}}.Compile()
		require.NoError(t, err)
		assert.Equal(t, "DROP FUNCTION db.fn(a INT NOT NULL, b VARCHAR NOT NULL)", got)
	})

	t.Run("list functions", func(t *testing.T) {
		got, err := ListFunctions{Database: "db", Aggregate: true, Like: "sum_%"}.Compile()
		require.NoError(t, err)
		assert.Equal(t, "SHOW AGGREGATE FUNCTIONS IN db LIKE 'sum_%'", got)
	})
}
