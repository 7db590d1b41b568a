package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary. Fields are set at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display leapddl version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "leapddl v%s\n", info.Version)
			if info.Commit != "" && info.Commit != "unknown" {
				_, _ = fmt.Fprintf(w, "commit: %s\n", info.Commit)
			}
			if info.Date != "" && info.Date != "unknown" {
				_, _ = fmt.Fprintf(w, "built:  %s\n", info.Date)
			}
			_, _ = fmt.Fprintf(w, "SingleStore DDL generator built with %s\n", runtime.Version())
		},
	}
}
