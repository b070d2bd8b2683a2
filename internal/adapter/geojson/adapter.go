// Package geojson parses the structured incident feed: a GeoJSON-style
// feature collection where each feature carries a point geometry and a
// loosely-typed properties bag.
package geojson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

// SourceName tags raw incidents produced by this adapter.
const SourceName = "geojson"

// Property key candidates, in preference order. The feed has shipped several
// property spellings over time; all are still seen in archived payloads.
var (
	nameKeys        = []string{"Name", "name", "IncidentName", "incident_name"}
	acresKeys       = []string{"AcresBurned", "acres_burned", "Acres", "acres", "GISAcres"}
	containmentKeys = []string{"PercentContained", "percent_contained", "Containment", "containment"}
	activeKeys      = []string{"IsActive", "is_active", "Active", "active"}
	countyKeys      = []string{"County", "county", "Counties", "counties"}
	locationKeys    = []string{"Location", "location"}
	urlKeys         = []string{"Url", "URL", "url", "Link", "link"}
	startedKeys     = []string{"Started", "started", "StartedDateOnly", "start_date", "DateStarted"}
)

// Client fetches and parses the structured incident feed.
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
		return nil, fmt.Errorf("geojson feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geojson feed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read geojson feed: %w", err)
	}
	return c.Parse(body), nil
}

// Source returns the adapter's tag for logging and metrics.
func (c *Client) Source() string { return SourceName }

// Feed payload types.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry   geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}

// Parse converts a feature-collection payload into raw incidents. Individual
// malformed features are skipped, never fatal for the batch.
func (c *Client) Parse(data []byte) []domain.RawIncident {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		c.logger.Warn("geojson payload not parseable", "error", err)
		return nil
	}

	incidents := make([]domain.RawIncident, 0, len(fc.Features))
	for _, f := range fc.Features {
		raw, ok := c.parseFeature(f)
		if !ok {
			continue
		}
		incidents = append(incidents, raw)
	}
	return incidents
}

func (c *Client) parseFeature(f feature) (domain.RawIncident, bool) {
	name := firstString(f.Properties, nameKeys)
	if strings.TrimSpace(name) == "" {
		c.logger.Warn("geojson feature skipped", "reason", "missing name property")
		return domain.RawIncident{}, false
	}

	raw := domain.RawIncident{
		Name:        name,
		AcresBurned: firstFloat(f.Properties, acresKeys),
		Containment: firstFloat(f.Properties, containmentKeys),
		Active:      activeFlag(f.Properties),
		StartDate:   firstString(f.Properties, startedKeys),
		County:      firstString(f.Properties, countyKeys),
		Location:    firstString(f.Properties, locationKeys),
		URL:         firstString(f.Properties, urlKeys),
		Source:      SourceName,
	}

	// Geodata convention: longitude first, then latitude.
	if len(f.Geometry.Coordinates) >= 2 {
		raw.Longitude = f.Geometry.Coordinates[0]
		raw.Latitude = f.Geometry.Coordinates[1]
	}

	if stale(raw) {
		return domain.RawIncident{}, false
	}
	return raw, true
}

// stale filters features that are both inactive and started more than 30 days
// ago. An unparseable start date counts as recent.
func stale(raw domain.RawIncident) bool {
	if raw.Active {
		return false
	}
	started := domain.ParseStartDate(raw.StartDate)
	if started.IsZero() {
		return false
	}
	return domain.Now().Sub(started) > domain.RetentionWindow
}

// activeFlag reads the active property, defaulting to true when it is missing
// or unrecognizable. The conservative assumption is that a listed fire is
// still burning.
func activeFlag(props map[string]any) bool {
	for _, key := range activeKeys {
		v, ok := props[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case bool:
			return val
		case string:
			switch strings.ToLower(strings.TrimSpace(val)) {
			case "y", "yes", "true", "active", "1":
				return true
			case "n", "no", "false", "inactive", "0":
				return false
			}
		case float64:
			return val != 0
		}
	}
	return true
}

// firstString returns the first non-empty string-convertible value among the
// candidate keys.
func firstString(props map[string]any, keys []string) string {
	for _, key := range keys {
		v, ok := props[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			if strings.TrimSpace(val) != "" {
				return strings.TrimSpace(val)
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
		}
	}
	return ""
}

// firstFloat returns the first parseable numeric value among the candidate
// keys. String values go through tolerant parsing ("30,519", "5%").
func firstFloat(props map[string]any, keys []string) float64 {
	for _, key := range keys {
		v, ok := props[key]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case float64:
			return val
		case string:
			if f := domain.ParseFloatOrZero(val); f != 0 {
				return f
			}
		}
	}
	return 0
}
