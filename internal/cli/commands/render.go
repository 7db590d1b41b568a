package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/internal/manifest"
)

// RenderOutput is the JSON shape of the render command.
type RenderOutput struct {
	Manifest   string            `json:"manifest"`
	Statements []manifest.Result `json:"statements"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "render <manifest>",
		Short: "Render SingleStore DDL for a manifest",
		Long: `Render every statement in a YAML manifest as SingleStore DDL.

Statements are compiled concurrently and printed in manifest order. Nothing
is executed against a database.

Output adapts to environment:
  - Terminal: Plain SQL, one statement per block terminated by ';'
  - Piped/Scripted: Markdown with one code block per statement`,
		Example: `  # Render a manifest
  leapddl render ddl.yaml

  # Render into a SQL script
  leapddl render ddl.yaml --out-file build/ddl.sql

  # Qualify unqualified statements with a database
  leapddl render ddl.yaml --database analytics

  # Read the manifest from stdin and emit JSON
  cat ddl.yaml | leapddl render - --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], outFile)
		},
	}

	cmd.Flags().StringVarP(&outFile, "out-file", "f", "", "Write the SQL script to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, path, outFile string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	stmts, err := cc.loadStatements(cmd, path)
	if err != nil {
		return err
	}

	results, err := manifest.Render(cmd.Context(), stmts, manifest.RenderOptions{
		Concurrency: cc.Cfg.Concurrency,
		Logger:      cc.Logger,
	})
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := writeFile(outFile, []byte(sqlScript(results))); err != nil {
			return err
		}
		r.Success(fmt.Sprintf("Wrote %d statements to %s", len(results), outFile))
		return nil
	}

	return writeResults(r, path, results)
}

// writeResults prints results in the renderer's effective mode.
func writeResults(r *output.Renderer, path string, results []manifest.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(RenderOutput{Manifest: path, Statements: results})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "DDL: "+manifestTitle(path)))
		for _, res := range results {
			r.Println("")
			r.Println(output.FormatHeader(2, fmt.Sprintf("%d. %s", res.Index+1, res.Kind)))
			r.Println("")
			r.Println(output.FormatCodeBlock("sql", res.SQL+";"))
		}
	default:
		r.Printf("%s", sqlScript(results))
	}
	return nil
}

// sqlScript joins results into a script: each statement ends with ';' and
// statements are separated by a blank line.
func sqlScript(results []manifest.Result) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(res.SQL)
		b.WriteString(";\n")
	}
	return b.String()
}
