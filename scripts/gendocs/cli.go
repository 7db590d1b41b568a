package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leapddl/internal/cli"
	"github.com/leapstack-labs/leapddl/internal/cli/config"
)

// generateCLIDocs writes index.md plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()
	keys := configKeys()

	if err := writePage(outDir, "index.md", cliIndex(rootCmd, keys)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	for _, cmd := range visibleCommands(rootCmd) {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd, keys)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}
	return nil
}

func writePage(outDir, name string, w *MarkdownWriter) error {
	return os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600)
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// configKeys indexes the config schema by key.
func configKeys() map[string]configField {
	keys := make(map[string]configField)
	for _, f := range getConfigSchema() {
		keys[f.Name] = f
	}
	return keys
}

// flagConfigKey returns the config key a flag overrides. Flags map to keys by
// replacing dashes with underscores; --env selects the environment key.
func flagConfigKey(f *pflag.Flag, keys map[string]configField) (configField, bool) {
	name := strings.ReplaceAll(f.Name, "-", "_")
	if name == "env" {
		name = "environment"
	}
	field, ok := keys[name]
	return field, ok
}

func envVarName(f configField) string {
	return config.EnvPrefix + strings.ToUpper(f.Name)
}

func cliIndex(rootCmd *cobra.Command, keys map[string]configField) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for leapddl")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("leapddl renders SingleStore DDL from YAML manifests. It never connects to a database.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leapddl/cmd/leapddl@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "leapddl <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(rootCmd) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands. A flag that maps to a config key overrides leapddl.yaml and the environment variable.")
	writeFlagsTable(w, rootCmd.PersistentFlags(), keys)

	w.Header(2, "Environment Variables")
	var envRows [][]string
	for _, f := range getConfigSchema() {
		if f.EnvVar {
			envRows = append(envRows, []string{InlineCode(envVarName(f)), f.Description})
		}
	}
	w.Table([]string{"Variable", "Description"}, envRows)
	w.Paragraph("Precedence, highest first: command-line flags, LEAPDDL_* variables, the --env section of leapddl.yaml, the rest of leapddl.yaml, built-in defaults.")

	w.Header(2, "Output Modes")
	w.BulletList([]string{
		InlineCode("text") + ": SQL script, one statement per paragraph",
		InlineCode("markdown") + ": one fenced sql block per statement",
		InlineCode("json") + ": machine-readable results",
		InlineCode("auto") + ": text on a terminal, markdown when piped",
	})

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, printed to stderr"},
	})
	return w
}

func commandPage(cmd *cobra.Command, keys map[string]configField) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	w.Header(2, "Usage")
	w.CodeBlock("bash", "leapddl "+strings.TrimPrefix(cmd.UseLine(), "leapddl "))

	if len(cmd.ValidArgs) > 0 {
		w.Header(2, "Arguments")
		args := make([]string, len(cmd.ValidArgs))
		for i, a := range cmd.ValidArgs {
			args[i] = InlineCode(a)
		}
		w.BulletList(args)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags(), keys)
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		w.Paragraph("See the [CLI reference](/cli/) for precedence rules.")
		writeFlagsTable(w, cmd.InheritedFlags(), keys)
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
	return w
}

// writeFlagsTable lists flags with the config key and variable each one
// overrides, if any.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet, keys map[string]configField) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		option := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			option += ", " + InlineCode("-"+f.Shorthand)
		}

		key, env := "", ""
		def := f.DefValue
		if field, ok := flagConfigKey(f, keys); ok {
			key = InlineCode(field.Name)
			if field.EnvVar {
				env = InlineCode(envVarName(field))
			}
			// Flag zero values stand in for "unset"; the config default applies.
			def = field.Default
		}
		if def != "" {
			def = InlineCode(def)
		}

		rows = append(rows, []string{option, def, key, env, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Default", "Config key", "Environment", "Description"}, rows)
}

// dedent strips the indentation shared by every non-blank line.
func dedent(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
