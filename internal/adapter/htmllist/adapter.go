// Package htmllist is the fallback source adapter: it pulls name/link pairs
// out of the incident-listing page's anchor tags. Records carry no numbers;
// the adapter exists only to surface a fire's name and detail link when the
// richer sources are unavailable.
package htmllist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

// SourceName tags raw incidents produced by this adapter.
const SourceName = "htmllist"

var (
	// anchorRe matches anchors whose href looks like an incident detail path
	// (".../incidents/<year>/...").
	anchorRe = regexp.MustCompile(`(?is)<a[^>]+href="([^"]*/incidents/\d{4}/[^"]*)"[^>]*>(.*?)</a>`)

	tagRe = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Client fetches and parses the incident-listing page.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a listing client with its own request timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch GETs the listing page and parses it. The error is advisory: callers
// treat a failed source as an empty one.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawIncident, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing page: %w", err)
	}
	return c.Parse(body), nil
}

// Source returns the adapter's tag for logging and metrics.
func (c *Client) Source() string { return SourceName }

// Parse extracts incident name/link pairs from anchor tags. Duplicate links
// are collapsed; anchors with no readable text are skipped. All numeric
// fields stay at their zero defaults.
func (c *Client) Parse(data []byte) []domain.RawIncident {
	matches := anchorRe.FindAllStringSubmatch(string(data), -1)
	seen := make(map[string]bool, len(matches))
	incidents := make([]domain.RawIncident, 0, len(matches))

	for _, m := range matches {
		href, text := m[1], anchorText(m[2])
		if text == "" || seen[href] {
			continue
		}
		seen[href] = true
		incidents = append(incidents, domain.RawIncident{
			Name:   text,
			Active: true,
			URL:    href,
			Source: SourceName,
		})
	}
	return incidents
}

// anchorText strips nested tags out of an anchor body and collapses whitespace.
func anchorText(inner string) string {
	text := tagRe.ReplaceAllString(inner, " ")
	return strings.Join(strings.Fields(text), " ")
}
