package singlestore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func TestBuild(t *testing.T) {
	d := SingleStore

	require.NotNil(t, d)
	assert.Equal(t, "singlestore", d.Name)
	assert.Equal(t, "`", d.Identifiers.Quote)
	assert.Equal(t, core.NormCaseSensitive, d.Identifiers.Normalization)
	assert.Contains(t, d.DataTypes(), "VARCHAR")
}

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("SingleStore")
	require.True(t, ok, "singlestore dialect should be registered")
	assert.Same(t, SingleStore, d)
	assert.Contains(t, dialect.List(), "singlestore")
}

func TestIdentifierQuoting(t *testing.T) {
	assert.Equal(t, "`my_table`", QuoteIdentifier("my_table"))
	assert.Equal(t, "`odd``name`", QuoteIdentifier("odd`name"))

	assert.Equal(t, "trips", SingleStore.QuoteIdentifierIfNeeded("trips"))
	assert.Equal(t, "`TABLE`", SingleStore.QuoteIdentifierIfNeeded("TABLE"))
	assert.Equal(t, "`2024_data`", SingleStore.QuoteIdentifierIfNeeded("2024_data"))
	assert.Equal(t, "`has space`", SingleStore.QuoteIdentifierIfNeeded("has space"))
}

func TestTypeToSQL(t *testing.T) {
	tests := []struct {
		typ  core.DataType
		want string
	}{
		{core.Boolean, "BOOLEAN"},
		{core.Int8, "TINYINT"},
		{core.Int16, "SMALLINT"},
		{core.Int32, "INT"},
		{core.Int64, "BIGINT"},
		{core.UInt32, "INT UNSIGNED"},
		{core.Float32, "FLOAT"},
		{core.Float64, "DOUBLE"},
		{core.Decimal(0, 0), "DECIMAL"},
		{core.Decimal(12, 4), "DECIMAL(12, 4)"},
		{core.String, "VARCHAR"},
		{core.Binary, "BLOB"},
		{core.Date, "DATE"},
		{core.Time, "TIME"},
		{core.Timestamp, "TIMESTAMP"},
		{core.JSON, "JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, err := TypeToSQL(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			viaDialect, err := SingleStore.TypeSQL(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, got, viaDialect)
		})
	}
}

func TestTypeToSQL_Unsupported(t *testing.T) {
	unsupported := []core.DataType{
		core.UUID,
		core.Interval,
		core.Null,
		core.Array(core.Int32),
		core.Map(core.String, core.String),
		core.Struct(core.StructField{Name: "a", Type: core.Int32}),
		{},
	}
	for _, typ := range unsupported {
		t.Run(typ.String(), func(t *testing.T) {
			got, err := TypeToSQL(typ)
			assert.Empty(t, got)
			var typeErr *core.UnsupportedTypeError
			require.True(t, errors.As(err, &typeErr))
			assert.Equal(t, "singlestore", typeErr.Dialect)
		})
	}
}
