// Package rss parses the incident RSS feed with lightweight markup stripping
// and regex extraction. No feed library is involved: the upstream feed has no
// stable schema and the few fields needed are pulled straight out of the text.
package rss

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
const SourceName = "rss"

var (
	// itemRe scans item boundaries with a shortest-match pattern across
	// newlines so a malformed feed cannot produce a runaway match.
	itemRe = regexp.MustCompile(`(?s)<item[^>]*>(.*?)</item>`)

	titleRe       = regexp.MustCompile(`(?s)<title[^>]*>(.*?)</title>`)
	linkRe        = regexp.MustCompile(`(?s)<link[^>]*>(.*?)</link>`)
	descriptionRe = regexp.MustCompile(`(?s)<description[^>]*>(.*?)</description>`)
	cdataRe       = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	pubDateRe     = regexp.MustCompile(`(?s)<pubDate[^>]*>(.*?)</pubDate>`)

	// acresRe matches "<digits>[,digits]* acres" in free-text descriptions.
	acresRe = regexp.MustCompile(`(?i)([\d,]+)\s*acres`)
	// containRe matches "<digits>% contain..." ("contained", "containment").
	containRe = regexp.MustCompile(`(?i)(\d+)\s*%\s*contain`)

	// fireNameRe captures everything up to and including the word "Fire",
	// used to derive a clean fire name from verbose titles.
	fireNameRe = regexp.MustCompile(`(?i)^(.*?\bfire\b)`)
)

// Client fetches and parses the incident RSS feed.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client with its own request timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch GETs the feed and parses it. The error is advisory: callers treat a
// failed source as an empty one.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawIncident, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rss feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss feed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read rss feed: %w", err)
	}
	return c.Parse(body), nil
}

// Source returns the adapter's tag for logging and metrics.
func (c *Client) Source() string { return SourceName }

// Parse splits the feed into items and extracts one raw incident per item
// that yields a usable fire name. Items without one are skipped.
func (c *Client) Parse(data []byte) []domain.RawIncident {
	items := itemRe.FindAllStringSubmatch(string(data), -1)
	incidents := make([]domain.RawIncident, 0, len(items))

	for _, m := range items {
		item := m[1]
		title := extractField(item, titleRe)
		name := DeriveFireName(title)
		if name == "" {
			continue
		}

		description := extractField(item, descriptionRe)
		incidents = append(incidents, domain.RawIncident{
			Name:        name,
			AcresBurned: ExtractAcres(description),
			Containment: ExtractContainment(description),
			Active:      true,
			StartDate:   extractField(item, pubDateRe),
			Location:    locationFromDescription(description),
			URL:         extractField(item, linkRe),
			Source:      SourceName,
		})
	}
	return incidents
}

// DeriveFireName produces a fire name from an RSS title: cut at the first
// " - " delimiter, else keep everything up to and including the word "Fire".
// Returns "" when no name can be derived.
func DeriveFireName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if i := strings.Index(title, " - "); i > 0 {
		return strings.TrimSpace(title[:i])
	}
	if m := fireNameRe.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return title
}

// ExtractAcres pulls the first "<n> acres" figure out of free text; 0 when absent.
func ExtractAcres(text string) float64 {
	m := acresRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return domain.ParseFloatOrZero(m[1])
}

// ExtractContainment pulls the first "<n>% contain..." figure out of free
// text; 0 when absent.
func ExtractContainment(text string) float64 {
	m := containRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return domain.ParseFloatOrZero(m[1])
}

// locationFromDescription keeps a short leading fragment of the description
// as a human-readable location hint. Descriptions lead with the place line
// before the stats sentence.
func locationFromDescription(description string) string {
	description = strings.TrimSpace(description)
	if i := strings.IndexAny(description, ".\n"); i > 0 {
		description = description[:i]
	}
	if len(description) > 120 || acresRe.MatchString(description) {
		return ""
	}
	return description
}

// extractField applies a single-group regex to an item body and returns the
// trimmed, CDATA-unwrapped match.
func extractField(item string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(item)
	if m == nil {
		return ""
	}
	value := m[1]
	if inner := cdataRe.FindStringSubmatch(value); inner != nil {
		value = inner[1]
	}
	return strings.TrimSpace(value)
}
