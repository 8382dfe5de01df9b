// Package lookup implements the lookup command: query the normalized
// mapping dataset by English or Chinese name.
package lookup

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/rommap/cmd/common"
	"github.com/jonesrussell/rommap/internal/lookup"
)

// Command returns the lookup command for use in the root command.
func Command() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "lookup [name]",
		Short: "Look up a ROM name mapping",
		Long: `Load the normalized per-system CSVs and resolve a name in either
direction: Chinese title to English name or English name to Chinese title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if dir == "" {
				dir = deps.Config.Scraper.NormalizedDir
			}

			return runLookup(deps, dir, args[0])
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of normalized CSVs (overrides config)")

	return cmd
}

func runLookup(deps common.CommandDeps, dir, name string) error {
	idx, err := lookup.LoadDir(dir)
	if err != nil {
		return err
	}
	deps.Logger.Debug("lookup index loaded", "entries", idx.Len(), "dir", dir)

	entry, found := idx.Find(name)
	if !found {
		return fmt.Errorf("no mapping found for %q", name)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"System", "English Name", "Chinese Name"})
	t.AppendRow(table.Row{entry.System, entry.EnglishName, entry.ChineseName})
	t.Render()

	return nil
}
