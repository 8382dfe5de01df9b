// Package scraper orchestrates extraction for each platform system: probe
// the structured JSON endpoint first, fall back to parsing the page's
// HTML table, and hand the resulting (headers, rows) to the exporter.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jonesrussell/rommap/internal/fetcher"
	"github.com/jonesrussell/rommap/internal/htmltable"
	"github.com/jonesrussell/rommap/internal/logger"
	"github.com/jonesrussell/rommap/internal/mapping"
	"github.com/jonesrussell/rommap/internal/reshape"
	"github.com/jonesrussell/rommap/internal/sources"
	"github.com/jonesrussell/rommap/internal/structured"
)

// ErrNoTableFound is returned when neither the structured endpoint nor
// any markup table yielded data for a system. Fatal for that system
// only; the run loop carries on with the rest.
var ErrNoTableFound = errors.New("no data table found")

// jsonNameOverrides maps system keys whose structured endpoint does not
// follow the {key}.json convention.
var jsonNameOverrides = map[string]string{
	"psvall": "psv_all.json",
	"psvdlc": "psv_dlc.json",
}

// progressInterval is how many written rows pass between progress logs.
const progressInterval = 5000

// TextFetcher fetches and decodes source payloads.
type TextFetcher interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
	GetText(ctx context.Context, url string) (string, error)
}

// Exporter persists one system's extraction result.
type Exporter interface {
	WriteScraped(sys sources.System, headers []string, rows [][]string) (string, error)
}

// Service runs extractions.
type Service struct {
	client TextFetcher
	export Exporter
	log    logger.Interface
	delay  time.Duration
}

// NewService creates a scrape service.
func NewService(client TextFetcher, export Exporter, log logger.Interface, delay time.Duration) *Service {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Service{client: client, export: export, log: log, delay: delay}
}

// Result summarizes one system's extraction.
type Result struct {
	System  string
	Path    string
	Rows    int
	Columns int
	Err     error
}

// Summary tallies a whole run.
type Summary struct {
	OK      int
	Failed  int
	Results []Result
}

// Run scrapes every system in order. A failure for one system is
// recorded and does not abort the rest; ctx cancellation does.
func (s *Service) Run(ctx context.Context, systems []sources.System) (Summary, error) {
	var summary Summary

	for i, sys := range systems {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		log := s.log.WithSystem(sys.Key)
		log.Info("scraping system", "title", sys.Title, "url", sys.URL, "progress", fmt.Sprintf("%d/%d", i+1, len(systems)))

		res := s.scrapeOne(ctx, sys)
		summary.Results = append(summary.Results, res)
		if res.Err != nil {
			summary.Failed++
			log.Error("system failed", "error", res.Err.Error())
		} else {
			summary.OK++
			log.Info("system done", "rows", res.Rows, "columns", res.Columns, "path", res.Path)
		}

		if s.delay > 0 && i < len(systems)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	return summary, nil
}

func (s *Service) scrapeOne(ctx context.Context, sys sources.System) Result {
	res := Result{System: sys.Key}

	headers, rows, err := s.Extract(ctx, sys)
	if err != nil {
		res.Err = err
		return res
	}

	path, err := s.export.WriteScraped(sys, headers, rows)
	if err != nil {
		res.Err = err
		return res
	}

	if len(rows) >= progressInterval {
		s.log.WithSystem(sys.Key).Info("large table written", "rows", len(rows))
	}

	res.Path = path
	res.Rows = len(rows)
	res.Columns = len(headers)
	return res
}

// Extract produces the (headers, rows) table for one system, preferring
// the structured endpoint and falling back to the markup chain.
func (s *Service) Extract(ctx context.Context, sys sources.System) (headers []string, rows [][]string, err error) {
	log := s.log.WithSystem(sys.Key)

	headers, rows, ok := s.tryStructured(ctx, sys)
	if !ok {
		headers, rows, err = s.extractFromMarkup(ctx, sys)
		if err != nil {
			return nil, nil, err
		}
	}

	// Composite-name tables reduce to exactly (english_name, chinese_name).
	headers, rows = mapping.ExtractPairColumn(headers, rows)

	log.Debug("extraction complete", "columns", len(headers), "rows", len(rows))
	return headers, rows, nil
}

// tryStructured probes the system's JSON endpoint candidates. Any
// failure, from a 404 through a malformed payload, means "no structured
// endpoint" rather than a hard error.
func (s *Service) tryStructured(ctx context.Context, sys sources.System) (headers []string, rows [][]string, ok bool) {
	log := s.log.WithSystem(sys.Key)

	for _, name := range jsonCandidates(sys.Key) {
		raw, err := s.client.GetBytes(ctx, joinURL(sys.URL, name))
		if errors.Is(err, fetcher.ErrNotFound) {
			log.Debug("structured endpoint absent", "file", name)
			continue
		}
		if err != nil {
			log.Debug("structured endpoint unavailable", "file", name, "error", err.Error())
			return nil, nil, false
		}

		headers, rows, err = structured.Read(fetcher.DecodeText(raw))
		if err != nil {
			log.Debug("structured payload rejected", "file", name, "error", err.Error())
			return nil, nil, false
		}

		log.Info("structured endpoint used", "file", name, "rows", len(rows), "columns", len(headers))
		return headers, rows, true
	}

	return nil, nil, false
}

func (s *Service) extractFromMarkup(ctx context.Context, sys sources.System) (headers []string, rows [][]string, err error) {
	log := s.log.WithSystem(sys.Key)

	doc, err := s.client.GetText(ctx, sys.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch page: %w", err)
	}

	tables := htmltable.Parse(doc)
	log.Debug("parsed page", "tables", len(tables))

	main, found := htmltable.SelectMain(tables)
	if !found {
		return nil, nil, fmt.Errorf("%w for %s (%s)", ErrNoTableFound, sys.Key, sys.URL)
	}

	headers, rows = htmltable.Normalize(main)
	rows = reshape.Expand(headers, rows)

	return headers, rows, nil
}

// jsonCandidates lists the structured endpoint filenames to probe, the
// known override first when one exists.
func jsonCandidates(key string) []string {
	if override, ok := jsonNameOverrides[key]; ok {
		return []string{override, key + ".json"}
	}
	return []string{key + ".json"}
}

func joinURL(base, name string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return base + name
	}
	ref, err := url.Parse(name)
	if err != nil {
		return base + name
	}
	return u.ResolveReference(ref).String()
}
