package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/catalog"
	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/core"
)

// shortIDLen is how much of a run ID the history table shows.
const shortIDLen = 8

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List parse runs recorded in the catalog",
		Example: `  leapddl history --catalog ddl.db
  leapddl history --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			store, err := cc.OpenCatalog()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return renderRuns(cc.Renderer, runs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func renderRuns(r *output.Renderer, runs []*catalog.Run) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(runs)
	case output.ModeYAML:
		return r.YAML(runs)
	}

	if len(runs) == 0 {
		r.Println("No runs recorded.")
		return nil
	}

	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		id := run.ID
		if len(id) > shortIDLen {
			id = id[:shortIDLen]
		}
		rows = append(rows, table.Row{
			id,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Dialect,
			strings.Join(run.Sources, ", "),
			run.EntityCount,
			run.ErrorCount,
			run.WarningCount,
		})
	}
	r.Table(table.Row{"Run", "Started", "Dialect", "Sources", "Entities", "Errors", "Warnings"}, rows)
	return nil
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the IR recorded for a catalog run",
		Long: `Print the entities recorded for a run, exactly as they were extracted,
followed by its diagnostics on stderr. The run may be given by any unique
prefix of its ID.`,
		Example: `  leapddl show 3f2a9c1e --catalog ddl.db
  leapddl show 3f2a --group-by-type -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			store, err := cc.OpenCatalog()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			entities, err := store.Entities(ctx, run.ID)
			if err != nil {
				return err
			}
			diags, err := store.Diagnostics(ctx, run.ID)
			if err != nil {
				return err
			}

			renderStoredDiagnostics(cc.Renderer, run, diags)
			return renderStoredEntities(cc.Renderer, entities, cc.Cfg.GroupByType)
		},
	}

	cmd.Flags().BoolP("group-by-type", "g", false, "Group entities by kind")
	return cmd
}

// renderStoredEntities prints stored entity bodies without decoding them,
// so a run reads back byte-for-byte as it was recorded.
func renderStoredEntities(r *output.Renderer, entities []catalog.Entity, grouped bool) error {
	if r.EffectiveMode() == output.ModeTable {
		rows := make([]table.Row, 0, len(entities))
		for _, e := range entities {
			rows = append(rows, table.Row{e.Kind, e.Name})
		}
		r.Table(table.Row{"Kind", "Name"}, rows)
		return nil
	}

	var v any
	if grouped {
		groups := make(map[string][]json.RawMessage, len(core.GroupKeys))
		for _, key := range core.GroupKeys {
			groups[key] = []json.RawMessage{}
		}
		for _, e := range entities {
			groups[e.Kind] = append(groups[e.Kind], e.Body)
		}
		v = orderedGroups(groups)
	} else {
		bodies := make([]json.RawMessage, 0, len(entities))
		for _, e := range entities {
			bodies = append(bodies, e.Body)
		}
		v = bodies
	}

	if r.EffectiveMode() == output.ModeYAML {
		return r.YAML(v)
	}
	return r.JSON(v)
}

// orderedGroups marshals grouped entities with keys in group order.
type orderedGroups map[string][]json.RawMessage

// MarshalJSON implements json.Marshaler.
func (g orderedGroups) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, key := range core.GroupKeys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(g[key])
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func renderStoredDiagnostics(r *output.Renderer, run *catalog.Run, diags []catalog.Diagnostic) {
	source := strings.Join(run.Sources, ",")
	if len(run.Sources) != 1 {
		source = ""
	}
	s := r.Styles()
	for _, d := range diags {
		sev := d.Severity
		switch sev {
		case "error":
			sev = s.Error.Render(sev)
		case "warning":
			sev = s.Warning.Render(sev)
		default:
			sev = s.Info.Render(sev)
		}
		prefix := fmt.Sprintf("%d:%d", d.Line, d.Column)
		if source != "" {
			prefix = source + ":" + prefix
		}
		_, _ = fmt.Fprintf(r.ErrOut(), "%s: %s: %s\n", prefix, sev, d.Message)
	}
}

// NewForgetCommand creates the forget command.
func NewForgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forget <run-id>",
		Short: "Delete a run from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			store, err := cc.OpenCatalog()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteRun(ctx, run.ID); err != nil {
				return err
			}
			cc.Renderer.Success("forgot run %s", run.ID)
			return nil
		},
	}
	return cmd
}
