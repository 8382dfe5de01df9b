// Package normalize implements the normalize command: convert scraped
// per-system CSV exports into the canonical mapping schema and build the
// combined dataset.
package normalize

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/rommap/cmd/common"
	"github.com/jonesrussell/rommap/internal/normalizer"
)

// Command returns the normalize command for use in the root command.
func Command() *cobra.Command {
	var inDir, outDir string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize scraped exports into the canonical mapping schema",
		Long: `Read the scraped {system}.csv exports, standardize each one to
(english_name, chinese_name, source_id, extra_json) with mojibake repair
on Chinese names, and write per-system CSVs plus a combined all.csv.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			if inDir != "" {
				deps.Config.Scraper.OutDir = inDir
			}
			if outDir != "" {
				deps.Config.Scraper.NormalizedDir = outDir
			}

			return runNormalize(deps)
		},
	}

	cmd.Flags().StringVar(&inDir, "in", "", "input directory of scraped CSVs (overrides config)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for normalized CSVs (overrides config)")

	return cmd
}

func runNormalize(deps common.CommandDeps) error {
	inDir := deps.Config.Scraper.OutDir
	outDir := deps.Config.Scraper.NormalizedDir

	deps.Logger.Info("normalize run starting", "in_dir", inDir, "out_dir", outDir)

	summary, err := normalizer.NewService(deps.Logger).Run(inDir, outDir)
	if err != nil {
		return err
	}

	deps.Logger.Info("normalize run finished",
		"systems", summary.Systems,
		"records", summary.Records,
		"combined", summary.CombinedPath,
	)
	return nil
}
