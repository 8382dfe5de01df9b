// Package fetcher performs the HTTP transport for the pipeline: plain GET
// requests with a bounded retry loop and legacy-encoding-aware decoding.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonesrussell/rommap/internal/logger"
)

// ErrNotFound is returned for 404 responses. The structured-endpoint
// probe uses it to fall back to the next candidate filename.
var ErrNotFound = errors.New("resource not found")

// maxResponseBodyBytes limits the size of fetched responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// retryBackoff is the pause between retry attempts. The source site is
// slow but not rate limited; a short fixed pause matches its behavior.
const retryBackoff = 800 * time.Millisecond

// DefaultUserAgent is sent on every request. The site serves a reduced
// page to unknown agents, so it mimics a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

// Config configures the HTTP client.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	Retries   int
}

// Client fetches source payloads over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
	retries    int
	log        logger.Interface
}

// NewClient creates a fetch client. A nil logger falls back to no-op.
func NewClient(cfg Config, log logger.Interface) *Client {
	if log == nil {
		log = logger.NewNoOp()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		retries:    cfg.Retries,
		log:        log,
	}
}

// GetBytes fetches a URL, retrying transport errors and retryable HTTP
// statuses. A 404 returns ErrNotFound immediately: the resource is
// absent, not flaky.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	attempts := c.retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		c.log.Debug("HTTP GET", "url", url, "attempt", attempt, "max_attempts", attempts)

		body, err := c.getOnce(ctx, url)
		if err == nil {
			c.log.Debug("HTTP response", "url", url, "bytes", len(body))
			return body, nil
		}
		if errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		c.log.Warn("HTTP fetch failed", "url", url, "attempt", attempt, "error", err.Error())

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff):
			}
		}
	}

	return nil, lastErr
}

// GetText fetches a URL and decodes the body to a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	raw, err := c.GetBytes(ctx, url)
	if err != nil {
		return "", err
	}
	return DecodeText(raw), nil
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// proceed to read
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	default:
		return nil, fmt.Errorf("unexpected http status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
