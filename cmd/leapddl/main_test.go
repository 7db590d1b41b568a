// Package main provides tests for the leapddl CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/internal/cli"
	"github.com/leapstack-labs/leapddl/internal/cli/commands"
	"github.com/leapstack-labs/leapddl/internal/cli/config"
)

func testdataManifest(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "..", "testdata", "warehouse.yaml")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leapddl v")
}

func TestRenderExampleManifest(t *testing.T) {
	manifestPath := testdataManifest(t)
	t.Chdir(t.TempDir())

	out, err := run(t, "render", manifestPath, "--output", "json")
	require.NoError(t, err)

	var got commands.RenderOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Statements, 12)

	sqlByKind := make(map[string]string, len(got.Statements))
	for i, s := range got.Statements {
		assert.Equal(t, i, s.Index)
		sqlByKind[s.Kind] = s.SQL
	}

	assert.True(t, strings.HasPrefix(sqlByKind["create_table_like"], "CREATE EXTERNAL TABLE warehouse.raw_trips\nLIKE DELIMITED '/landing/trips/sample.csv'"))
	assert.Contains(t, sqlByKind["create_table_like"], "TBLPROPERTIES ('serialization.null.format'='')")
	assert.Contains(t, sqlByKind["create_table"], "PARTITIONED BY (`trip_date` DATE)")
	assert.Equal(t, "ALTER TABLE warehouse.trips DROP PARTITION (trip_date='2023-12-31')", sqlByKind["drop_partition"])
	assert.Equal(t, "ALTER TABLE warehouse.trips SET CACHED IN 'default'", sqlByKind["cache_table"])
	assert.Equal(t, "DROP FUNCTION IF EXISTS warehouse.fare_bucket(a DOUBLE NOT NULL)", sqlByKind["drop_function"])
	assert.Equal(t, "SHOW FUNCTIONS IN warehouse LIKE 'fare_%'", sqlByKind["list_functions"])
	assert.Contains(t, sqlByKind["create_aggregate"], "init_fn=\"median_init\"\nupdate_fn=\"median_update\"\nmerge_fn=\"median_merge\"\nfinalize_fn=\"median_finalize\"")
}

func TestValidateExampleManifest(t *testing.T) {
	manifestPath := testdataManifest(t)
	t.Chdir(t.TempDir())

	out, err := run(t, "validate", manifestPath, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "warehouse.yaml: 12 statements compile")
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
