package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	"github.com/leapstack-labs/leapddl/internal/cli/config"
)

// configField describes one leapddl.yaml key.
type configField struct {
	Name        string
	Type        string
	Default     string
	Description string
	EnvVar      bool
}

var configDescriptions = map[string]string{
	"database":     "Database for statements whose manifest names none",
	"cache_pool":   "Cache pool used by cache_table statements without a pool",
	"output":       "Output format: auto, text, markdown or json",
	"concurrency":  "Number of statements compiled in parallel",
	"verbose":      "Enable debug logging on stderr",
	"environment":  "Name of the environment section to apply",
	"environments": "Per-environment overrides of database and cache_pool",
}

var configDefaults = map[string]string{
	"cache_pool":  config.DefaultCachePool,
	"output":      config.DefaultOutput,
	"concurrency": strconv.Itoa(config.DefaultConcurrency),
	"verbose":     "false",
}

// getConfigSchema lists the config keys in declaration order.
func getConfigSchema() []configField {
	t := reflect.TypeOf(config.Config{})
	fields := make([]configField, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		name := f.Tag.Get("koanf")
		if name == "" {
			continue
		}
		fields = append(fields, configField{
			Name:        name,
			Type:        typeName(f.Type),
			Default:     configDefaults[name],
			Description: configDescriptions[name],
			EnvVar:      f.Type.Kind() != reflect.Map,
		})
	}
	return fields
}

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Map:
		return "map"
	case reflect.Int:
		return "integer"
	case reflect.Bool:
		return "boolean"
	default:
		return t.Kind().String()
	}
}

// generateConfigDocs writes the leapddl.yaml reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "leapddl.yaml reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("leapddl reads leapddl.yaml (or leapddl.yml) from the working directory, or the file given with --config.")

	var rows [][]string
	for _, f := range getConfigSchema() {
		def := f.Default
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, def, f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `database: warehouse
cache_pool: default
output: auto
concurrency: 4

environments:
  prod:
    database: warehouse_prod
    cache_pool: hot`)

	w.Paragraph("Values of the form ${VAR} in database and cache_pool are expanded from the process environment.")

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
