package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/internal/manifest"
)

// ValidateOutput is the JSON shape of the validate command.
type ValidateOutput struct {
	Manifest   string         `json:"manifest"`
	Valid      bool           `json:"valid"`
	Statements int            `json:"statements"`
	Kinds      map[string]int `json:"kinds"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check that every statement in a manifest compiles",
		Long: `Build and compile every statement in a manifest without printing SQL.

The first failing statement is reported with its index and kind, and the
command exits non-zero.`,
		Example: `  leapddl validate ddl.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
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

	kinds := make(map[string]int)
	for _, res := range results {
		kinds[res.Kind]++
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(ValidateOutput{
			Manifest:   path,
			Valid:      true,
			Statements: len(results),
			Kinds:      kinds,
		})
	}
	r.Success(fmt.Sprintf("%s: %d statements compile", manifestTitle(path), len(results)))
	return nil
}
