package common

import (
	"context"
	"fmt"

	"github.com/jonesrussell/rommap/internal/sources"
)

// DiscoverSystems fetches the index page and enumerates the per-platform
// systems it links to.
func (d CommandDeps) DiscoverSystems(ctx context.Context) ([]sources.System, error) {
	baseURL := d.Config.Scraper.BaseURL

	indexHTML, err := d.NewFetcher().GetText(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index page: %w", err)
	}

	systems, err := sources.Discover(indexHTML, baseURL)
	if err != nil {
		return nil, err
	}
	if len(systems) == 0 {
		return nil, fmt.Errorf("no system links found on index page %s", baseURL)
	}

	d.Logger.Info("systems discovered", "count", len(systems), "base_url", baseURL)
	return systems, nil
}
