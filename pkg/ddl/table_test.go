package ddl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

func TestCreateTableFromFormat(t *testing.T) {
	schema := &core.Schema{Columns: []core.Column{
		{Name: "id", Type: core.Int64, NotNull: true},
		{Name: "city", Type: core.String},
	}}

	tests := []struct {
		name    string
		stmt    CreateTableFromFormat
		want    string
		wantErr string
	}{
		{
			name: "delimited like example file",
			stmt: CreateTableFromFormat{
				Name: "t",
				Format: &DelimitedFormat{
					Path:       "/data/t.csv",
					Delimiter:  ",",
					NullFormat: Ptr("NULL"),
				},
				ExampleFile: "/data/t.csv",
				External:    true,
			},
			want: "CREATE EXTERNAL TABLE t\n" +
				"LIKE DELIMITED '/data/t.csv'\n" +
				"ROW FORMAT DELIMITED\n" +
				"FIELDS TERMINATED BY ','\n" +
				"LOCATION '/data/t.csv'\n" +
				"TBLPROPERTIES ('serialization.null.format'='NULL')",
		},
		{
			name: "parquet like table with location override",
			stmt: CreateTableFromFormat{
				Name:         "trips",
				Database:     "analytics",
				Format:       &ParquetFormat{Path: "/warehouse/raw"},
				ExampleTable: "staging.trips",
				Location:     "/warehouse/trips",
				IfNotExists:  true,
			},
			want: "CREATE TABLE IF NOT EXISTS analytics.trips\n" +
				"LIKE staging.trips\n" +
				"STORED AS PARQUET\n" +
				"LOCATION '/warehouse/trips'",
		},
		{
			name: "explicit schema",
			stmt: CreateTableFromFormat{
				Name:   "trips",
				Format: &ParquetFormat{Path: "/warehouse/trips"},
				Schema: schema,
			},
			want: "CREATE TABLE trips\n" +
				"(`id` BIGINT NOT NULL,\n `city` VARCHAR)\n" +
				"STORED AS PARQUET\n" +
				"LOCATION '/warehouse/trips'",
		},
		{
			name: "example file and example table",
			stmt: CreateTableFromFormat{
				Name:         "t",
				Format:       &ParquetFormat{Path: "/p"},
				ExampleFile:  "/p/part-0.parquet",
				ExampleTable: "other",
			},
			wantErr: "ambiguous source (example file, example table)",
		},
		{
			name: "no source",
			stmt: CreateTableFromFormat{
				Name:   "t",
				Format: &ParquetFormat{Path: "/p"},
			},
			wantErr: "no source given",
		},
		{
			name:    "missing name",
			stmt:    CreateTableFromFormat{Format: &ParquetFormat{Path: "/p"}, ExampleTable: "x"},
			wantErr: "create_table_like: table name is required",
		},
		{
			name:    "missing format",
			stmt:    CreateTableFromFormat{Name: "t", ExampleTable: "x"},
			wantErr: "create_table_like: format is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.stmt.Compile()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateTableFromFormat_AmbiguousSourceIsTyped(t *testing.T) {
	stmt := NewParquetTable("t", "/p")
	stmt.ExampleFile = "/p/a.parquet"
	stmt.ExampleTable = "other"
	stmt.Schema = &core.Schema{Columns: []core.Column{{Name: "id", Type: core.Int32}}}

	_, err := stmt.Compile()
	var ambiguous *AmbiguousSourceError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, "t", ambiguous.Table)
	assert.Equal(t, []string{"example file", "example table", "schema"}, ambiguous.Sources)
}

func TestCreateTableWithSchema(t *testing.T) {
	schema := &core.Schema{Columns: []core.Column{
		{Name: "id", Type: core.Int64, NotNull: true},
		{Name: "name", Type: core.String},
		{Name: "year", Type: core.Int32},
	}}

	tests := []struct {
		name    string
		stmt    *CreateTableWithSchema
		want    string
		wantErr string
	}{
		{
			name: "delimited constructor",
			stmt: NewDelimitedTable("people", schema, &DelimitedFormat{Path: "/data/people.csv", Delimiter: "|"}),
			want: "CREATE EXTERNAL TABLE people\n" +
				"(`id` BIGINT NOT NULL,\n `name` VARCHAR,\n `year` INT)\n" +
				"ROW FORMAT DELIMITED\n" +
				"FIELDS TERMINATED BY '|'\n" +
				"LOCATION '/data/people.csv'",
		},
		{
			name: "partitioned parquet",
			stmt: &CreateTableWithSchema{
				Name:        "t",
				Database:    "db",
				Schema:      schema,
				Format:      &ParquetFormat{Path: "/p"},
				PartitionBy: []string{"year"},
				External:    true,
				IfNotExists: true,
			},
			want: "CREATE EXTERNAL TABLE IF NOT EXISTS db.t\n" +
				"(`id` BIGINT NOT NULL,\n `name` VARCHAR)\n" +
				"PARTITIONED BY (`year` INT)\n" +
				"STORED AS PARQUET\n" +
				"LOCATION '/p'",
		},
		{
			name: "no format, location only",
			stmt: &CreateTableWithSchema{Name: "t", Schema: schema, Location: "/data/t"},
			want: "CREATE TABLE t\n" +
				"(`id` BIGINT NOT NULL,\n `name` VARCHAR,\n `year` INT)\n" +
				"LOCATION '/data/t'",
		},
		{
			name: "no format, no location",
			stmt: &CreateTableWithSchema{Name: "t", Schema: schema},
			want: "CREATE TABLE t\n(`id` BIGINT NOT NULL,\n `name` VARCHAR,\n `year` INT)",
		},
		{
			name:    "unknown partition column",
			stmt:    &CreateTableWithSchema{Name: "t", Schema: schema, PartitionBy: []string{"month"}},
			wantErr: `partition column "month": unknown column`,
		},
		{
			name:    "missing schema",
			stmt:    &CreateTableWithSchema{Name: "t"},
			wantErr: "create_table: schema is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.stmt.Compile()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateTableAvro(t *testing.T) {
	got, err := NewAvroTable("events", "/data/events.avro", `{"type":"record","name":"e","fields":[]}`).Compile()
	require.NoError(t, err)
	assert.Equal(t, "CREATE EXTERNAL TABLE events\n"+
		"STORED AS AVRO\n"+
		"LOCATION '/data/events.avro'\n"+
		"TBLPROPERTIES ('avro.schema.literal'='{\n"+
		"  \"fields\": [],\n"+
		"  \"name\": \"e\",\n"+
		"  \"type\": \"record\"\n"+
		"}')", got)

	_, err = (&CreateTableAvro{Name: "events", Schema: "{}"}).Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create_table_avro: path is required")
}
