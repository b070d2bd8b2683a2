package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RawIncident is a source-tagged candidate record produced by one of the
// source adapters. It is transient: raw incidents exist only between a fetch
// and the merge pass that folds them into the canonical catalog.
type RawIncident struct {
	Name        string
	AcresBurned float64
	Containment float64 // 0-100
	Active      bool
	StartDate   string // free-form, format varies by source
	County      string
	Location    string
	Latitude    float64
	Longitude   float64
	URL         string
	Source      string
}

// Incident is the canonical merged record: exactly one per real-world fire
// per refresh cycle.
type Incident struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AcresBurned  float64   `json:"acres_burned"`
	Containment  float64   `json:"percent_contained"` // 0-100
	Active       bool      `json:"is_active"`
	StartDate    time.Time `json:"start_date,omitempty"`
	RawStartDate string    `json:"raw_start_date,omitempty"`
	County       string    `json:"county"`
	Location     string    `json:"location"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	URL          string    `json:"url,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RetentionWindow is how long an inactive incident stays in the catalog past
// its start date.
const RetentionWindow = 30 * 24 * time.Hour

// startDateLayouts are tried in order when parsing free-form start dates.
// The geodata feed uses RFC 3339; the RSS feed uses US-style short dates.
var startDateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// IdentityKey normalizes an incident name into the key used to decide whether
// two raw records describe the same fire: lower-cased, with the literal
// substrings " fire" and " complex" removed, then trimmed.
//
// "Green Fire", "green fire" and "GREEN FIRE COMPLEX" all map to "green".
// Names differing by punctuation or inner whitespace intentionally do not
// merge; the matching scope mirrors the upstream feeds' naming conventions.
func IdentityKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " fire", "")
	key = strings.ReplaceAll(key, " complex", "")
	return strings.TrimSpace(key)
}

// Merge folds an incoming raw record into an existing one sharing the same
// identity key. The merge is monotone: numeric severity only grows, active
// never flips off. Missing data biases toward caution.
func Merge(existing, incoming RawIncident) RawIncident {
	merged := existing
	if incoming.AcresBurned > merged.AcresBurned {
		merged.AcresBurned = incoming.AcresBurned
	}
	if incoming.Containment > merged.Containment {
		merged.Containment = incoming.Containment
	}
	merged.Active = merged.Active || incoming.Active
	merged.Name = preferNonEmpty(merged.Name, incoming.Name)
	merged.StartDate = preferNonEmpty(merged.StartDate, incoming.StartDate)
	merged.County = preferNonEmpty(merged.County, incoming.County)
	merged.Location = preferNonEmpty(merged.Location, incoming.Location)
	merged.URL = preferNonEmpty(merged.URL, incoming.URL)
	merged.Source = preferNonEmpty(merged.Source, incoming.Source)
	if merged.Latitude == 0 && merged.Longitude == 0 {
		merged.Latitude = incoming.Latitude
		merged.Longitude = incoming.Longitude
	}
	return merged
}

// preferNonEmpty keeps the existing value on tie, per the merge rules.
func preferNonEmpty(existing, incoming string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	return incoming
}

// MergeAll deduplicates raw incidents from all sources into canonical
// incidents, sorted by acres burned descending. The ordering is a documented
// guarantee for consumers; equal values keep first-seen order.
func MergeAll(raws []RawIncident) []Incident {
	byKey := make(map[string]RawIncident)
	order := make([]string, 0, len(raws))

	for _, raw := range raws {
		if strings.TrimSpace(raw.Name) == "" {
			continue
		}
		key := IdentityKey(raw.Name)
		if existing, ok := byKey[key]; ok {
			byKey[key] = Merge(existing, raw)
			continue
		}
		byKey[key] = raw
		order = append(order, key)
	}

	incidents := make([]Incident, 0, len(order))
	for _, key := range order {
		incidents = append(incidents, Normalize(byKey[key]))
	}

	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].AcresBurned > incidents[j].AcresBurned
	})
	return incidents
}

// Normalize maps a merged raw record into the canonical Incident shape,
// filling typed defaults for missing fields. County and location are never
// left empty because the UI always displays them.
func Normalize(raw RawIncident) Incident {
	inc := Incident{
		ID:           incidentID(raw.Name),
		Name:         strings.TrimSpace(raw.Name),
		AcresBurned:  raw.AcresBurned,
		Containment:  clampPercent(raw.Containment),
		Active:       raw.Active,
		RawStartDate: raw.StartDate,
		County:       raw.County,
		Location:     raw.Location,
		Latitude:     raw.Latitude,
		Longitude:    raw.Longitude,
		URL:          raw.URL,
		UpdatedAt:    clock.Now(),
	}
	if inc.AcresBurned < 0 {
		inc.AcresBurned = 0
	}
	if strings.TrimSpace(inc.County) == "" {
		inc.County = "Unknown"
	}
	if strings.TrimSpace(inc.Location) == "" {
		inc.Location = "California"
	}
	inc.StartDate = ParseStartDate(raw.StartDate)
	return inc
}

// ParseStartDate tries the known source layouts; a zero time means the raw
// string stays the only record of the date.
func ParseStartDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// WithinRetention reports whether an incident should stay in the catalog:
// active fires always stay; inactive fires stay until 30 days past their
// start date. An unparseable start date never drops an incident.
func WithinRetention(inc Incident, now time.Time) bool {
	if inc.Active {
		return true
	}
	if inc.StartDate.IsZero() {
		return true
	}
	return now.Sub(inc.StartDate) <= RetentionWindow
}

// FilterRetained drops incidents outside the retention window, preserving order.
func FilterRetained(incidents []Incident) []Incident {
	now := clock.Now()
	kept := make([]Incident, 0, len(incidents))
	for _, inc := range incidents {
		if WithinRetention(inc, now) {
			kept = append(kept, inc)
		}
	}
	return kept
}

// ParseFloatOrZero parses a numeric string tolerantly, stripping thousands
// separators, percent signs, and unit suffixes. Empty or unparseable input
// normalizes to 0, never to a failure.
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// incidentID derives a stable surrogate id from the identity key, so the same
// fire keeps the same id across refresh cycles. A nameless record (possible
// only through direct construction) falls back to a random UUID.
func incidentID(name string) string {
	key := IdentityKey(name)
	if key == "" {
		return uuid.NewString()
	}
	hash := sha256.Sum256([]byte(key))
	return "fire-" + hex.EncodeToString(hash[:8])
}
