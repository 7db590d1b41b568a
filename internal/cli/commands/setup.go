package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/config"
	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/internal/manifest"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer stored in the
// command context by the root command. Commands executed on their own fall
// back to the last loaded config and a renderer on the command's writers.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	r, ok := output.FromContext(ctx)
	if !ok {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: r,
	}
}

// loadStatements reads the manifest at path ("-" for stdin) and builds its
// statements with the configured defaults.
func (cc *CommandContext) loadStatements(cmd *cobra.Command, path string) ([]ddl.Statement, error) {
	var (
		m   *manifest.Manifest
		err error
	)
	if path == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return nil, fmt.Errorf("read manifest from stdin: %w", readErr)
		}
		m, err = manifest.Parse(data)
	} else {
		m, err = manifest.Load(path)
	}
	if err != nil {
		return nil, err
	}

	stmts, err := manifest.Build(m, manifest.BuildOptions{
		Database:  cc.Cfg.Database,
		CachePool: cc.Cfg.CachePool,
	})
	if err != nil {
		return nil, err
	}
	cc.Logger.Debug("manifest loaded", "path", path, "statements", len(stmts))
	return stmts, nil
}

// manifestTitle names a manifest in headers.
func manifestTitle(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0600)
}
