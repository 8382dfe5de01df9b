// Package scrape implements the scrape command: extract the ROM-name
// mapping table for one or more platform systems and export it as CSV
// plus a JSON snapshot.
package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/rommap/cmd/common"
	"github.com/jonesrussell/rommap/internal/exporter"
	"github.com/jonesrussell/rommap/internal/scraper"
	"github.com/jonesrussell/rommap/internal/sources"
)

// fileExporter adapts the exporter package to the scraper service.
type fileExporter struct {
	outDir string
}

func (e fileExporter) WriteScraped(sys sources.System, headers []string, rows [][]string) (string, error) {
	return exporter.WriteScraped(e.outDir, sys, headers, rows)
}

// Command returns the scrape command for use in the root command.
func Command() *cobra.Command {
	var (
		systemKeys []string
		all        bool
	)

	var outDir string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape ROM-name mapping tables",
		Long: `Scrape the CN/EN ROM-name mapping table for the selected platform
systems. Each system prefers its structured JSON endpoint and falls back
to parsing the page's HTML table. Results are written as {system}.csv and
{system}.json under the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(systemKeys) == 0 {
				return fmt.Errorf("no target specified: use --system <key> or --all (or the list command)")
			}

			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if outDir != "" {
				deps.Config.Scraper.OutDir = outDir
			}

			return runScrape(cmd.Context(), deps, systemKeys, all)
		},
	}

	cmd.Flags().StringArrayVar(&systemKeys, "system", nil, "system key to scrape (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "scrape every discovered system")
	cmd.Flags().StringVar(&outDir, "outdir", "", "output directory (overrides config)")

	return cmd
}

func runScrape(ctx context.Context, deps common.CommandDeps, systemKeys []string, all bool) error {
	log := deps.Logger.WithRunID(uuid.NewString())

	systems, err := deps.DiscoverSystems(ctx)
	if err != nil {
		return err
	}

	wanted, err := selectSystems(systems, systemKeys, all)
	if err != nil {
		return err
	}

	outDir := deps.Config.Scraper.OutDir
	log.Info("scrape run starting", "systems", len(wanted), "out_dir", outDir)

	svc := scraper.NewService(
		deps.NewFetcher(),
		fileExporter{outDir: outDir},
		log,
		deps.Config.Scraper.Delay,
	)

	summary, err := svc.Run(ctx, wanted)
	if err != nil {
		return err
	}

	log.Info("scrape run finished", "ok", summary.OK, "failed", summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d systems failed", summary.Failed, len(wanted))
	}
	return nil
}

// selectSystems resolves the requested keys against the discovered
// systems. With --all every discovered system is scraped in key order.
func selectSystems(systems []sources.System, keys []string, all bool) ([]sources.System, error) {
	if all {
		return systems, nil
	}

	byKey := make(map[string]sources.System, len(systems))
	for _, sys := range systems {
		byKey[sys.Key] = sys
	}

	wanted := make([]sources.System, 0, len(keys))
	for _, k := range keys {
		kk := strings.ToLower(strings.TrimSpace(k))
		sys, ok := byKey[kk]
		if !ok {
			return nil, fmt.Errorf("unknown system %q: use the list command to see available systems", kk)
		}
		wanted = append(wanted, sys)
	}
	return wanted, nil
}
