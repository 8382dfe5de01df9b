// Package systems implements the command that lists the platform pages
// discovered on the index page, displayed in a formatted table.
package systems

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/rommap/cmd/common"
	"github.com/jonesrussell/rommap/internal/logger"
	"github.com/jonesrussell/rommap/internal/sources"
)

// TableRenderer handles the display of system data in a table format.
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance.
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{logger: log}
}

// RenderTable formats and displays the systems in a table format.
func (r *TableRenderer) RenderTable(systems []sources.System) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Key", "Title", "URL"})
	for _, sys := range systems {
		t.AppendRow(table.Row{sys.Key, sys.Title, sys.URL})
	}

	t.Render()
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available platform systems",
		Long:  `Fetch the index page and list every per-platform table page it links to.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return runList(cmd.Context(), deps)
		},
	}
}

func runList(ctx context.Context, deps common.CommandDeps) error {
	systems, err := deps.DiscoverSystems(ctx)
	if err != nil {
		return err
	}

	NewTableRenderer(deps.Logger).RenderTable(systems)
	return nil
}
