package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/dialects/singlestore"
)

// TypeMapping is one row of the types command.
type TypeMapping struct {
	Type      string `json:"type"`
	SQL       string `json:"sql,omitempty"`
	Supported bool   `json:"supported"`
	Error     string `json:"error,omitempty"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types [type...]",
		Short: "Show how abstract types map to SingleStore column types",
		Long: `Show the SingleStore spelling of abstract column types.

Without arguments every type family is listed. Arguments are parsed as type
expressions, such as int64 or "decimal(10, 2)".`,
		Example: `  leapddl types
  leapddl types "decimal(18, 4)" varchar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(cmd, args)
		},
	}
}

func runTypes(cmd *cobra.Command, args []string) error {
	r := NewCommandContext(cmd).Renderer

	var mappings []TypeMapping
	if len(args) == 0 {
		for k := core.TypeBoolean; k <= core.TypeNull; k++ {
			mappings = append(mappings, mapType(k.String(), core.DataType{Kind: k}, singlestore.SingleStore))
		}
	} else {
		for _, arg := range args {
			t, err := core.ParseType(arg)
			if err != nil {
				mappings = append(mappings, TypeMapping{Type: arg, Error: err.Error()})
				continue
			}
			mappings = append(mappings, mapType(t.String(), t, singlestore.SingleStore))
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(mappings)
	}

	rows := make([][]string, len(mappings))
	for i, m := range mappings {
		sql := m.SQL
		if !m.Supported {
			sql = "unsupported"
		}
		rows[i] = []string{m.Type, sql}
	}
	r.Table([]string{"Type", singlestore.Config.Name}, rows)
	return nil
}

func mapType(name string, t core.DataType, d *dialect.Dialect) TypeMapping {
	sql, err := d.TypeSQL(t)
	if err != nil {
		return TypeMapping{Type: name, Error: err.Error()}
	}
	return TypeMapping{Type: name, SQL: sql, Supported: true}
}
