// Package commands implements the leapddl subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/catalog"
	"github.com/leapstack-labs/leapddl/internal/cli/config"
	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// CommandContext holds common dependencies for command execution.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the values the root
// command stored in cmd's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	if cfg.NoColor {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// ParserConfig returns the parse options selected by configuration.
func (c *CommandContext) ParserConfig() parser.Config {
	return parser.Config{
		Dialect:       c.Cfg.Dialect,
		GroupByType:   c.Cfg.GroupByType,
		NormalizeCase: c.Cfg.NormalizeCase,
		Strict:        c.Cfg.Strict,
		Logger:        c.Logger,
	}
}

// OpenCatalog opens the configured catalog.
func (c *CommandContext) OpenCatalog() (*catalog.SQLiteStore, error) {
	if c.Cfg.Catalog == "" {
		return nil, fmt.Errorf("no catalog configured\nHint: pass --catalog or set catalog in leapddl.yaml")
	}
	return catalog.Open(c.Cfg.Catalog, c.Logger)
}
