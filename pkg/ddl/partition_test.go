package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionStatements(t *testing.T) {
	schema := partitionSchema(t)
	spec := PartitionValues(schema, 2024, 5, "eu")

	tests := []struct {
		name    string
		stmt    Statement
		want    string
		wantErr string
	}{
		{
			name: "add",
			stmt: AddPartition{Table: "events", Database: "db", Partition: spec},
			want: "ALTER TABLE db.events ADD PARTITION (year=2024, month=5, region='eu')",
		},
		{
			name: "add with location",
			stmt: AddPartition{Table: "events", Partition: spec, Location: "/data/2024/05/eu"},
			want: "ALTER TABLE events ADD PARTITION (year=2024, month=5, region='eu')\nLOCATION '/data/2024/05/eu'",
		},
		{
			name: "alter everything",
			stmt: AlterPartition{
				Table:           "events",
				Partition:       spec,
				Location:        "/archive/2024/05/eu",
				FileFormat:      "PARQUET",
				TableProperties: Properties("compressed", "true"),
				SerdeProperties: Properties("field.delim", "|"),
			},
			want: "ALTER TABLE events PARTITION (year=2024, month=5, region='eu')\n" +
				"SET LOCATION '/archive/2024/05/eu'\n" +
				"FILEFORMAT PARQUET\n" +
				"TBLPROPERTIES ('compressed'='true')\n" +
				"SERDEPROPERTIES ('field.delim'='|')",
		},
		{
			name: "alter properties only",
			stmt: AlterPartition{Table: "events", Partition: spec, TableProperties: Properties("owner", "etl")},
			want: "ALTER TABLE events PARTITION (year=2024, month=5, region='eu')\nSET TBLPROPERTIES ('owner'='etl')",
		},
		{
			name: "alter with nothing to set",
			stmt: AlterPartition{Table: "events", Partition: spec, TableProperties: NewPropertyMap()},
			want: "ALTER TABLE events PARTITION (year=2024, month=5, region='eu')",
		},
		{
			name: "drop",
			stmt: DropPartition{Table: "events", Database: "db", Partition: spec},
			want: "ALTER TABLE db.events DROP PARTITION (year=2024, month=5, region='eu')",
		},
		{
			name:    "drop without partition",
			stmt:    DropPartition{Table: "events"},
			wantErr: "partition schema is required",
		},
		{
			name:    "add without table",
			stmt:    AddPartition{Partition: spec},
			wantErr: "add_partition: table name is required",
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

func TestLoadData(t *testing.T) {
	schema := partitionSchema(t)

	tests := []struct {
		name    string
		stmt    LoadData
		want    string
		wantErr string
	}{
		{
			name: "append",
			stmt: LoadData{Path: "/incoming/t.csv", Table: "t"},
			want: "LOAD DATA INPATH '/incoming/t.csv' INTO TABLE t",
		},
		{
			name: "overwrite partition",
			stmt: LoadData{
				Path:      "/incoming/2024.csv",
				Table:     "events",
				Database:  "db",
				Partition: NewPartition(schema).Set("year", 2024),
				Overwrite: true,
			},
			want: "LOAD DATA INPATH '/incoming/2024.csv' OVERWRITE INTO TABLE db.events PARTITION (year=2024, month, region)",
		},
		{
			name:    "missing path",
			stmt:    LoadData{Table: "t"},
			wantErr: "load_data: path is required",
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

func TestCacheTable(t *testing.T) {
	got, err := CacheTable{Table: "t", Database: "db"}.Compile()
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE db.t SET CACHED IN 'default'", got)

	got, err = CacheTable{Table: "t", Pool: "hot"}.Compile()
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE t SET CACHED IN 'hot'", got)

	_, err = CacheTable{}.Compile()
	assert.Error(t, err)
}
