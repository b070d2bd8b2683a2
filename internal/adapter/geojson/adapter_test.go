package geojson

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

func newTestClient(url string) *Client {
	return NewClient(url, 5*time.Second, slog.Default())
}

const giffordFeature = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-120.1168, 35.1029]},
			"properties": {
				"Name": "Gifford Fire",
				"AcresBurned": 30519,
				"PercentContained": 5,
				"IsActive": true,
				"County": "San Luis Obispo",
				"Location": "Highway 166, east of Santa Maria",
				"Url": "https://incidents.example.gov/2026/gifford-fire/",
				"Started": "2026-08-01T10:30:00Z"
			}
		}
	]
}`

func TestParse_Feature(t *testing.T) {
	c := newTestClient("")
	incidents := c.Parse([]byte(giffordFeature))

	require.Len(t, incidents, 1)
	inc := incidents[0]
	assert.Equal(t, "Gifford Fire", inc.Name)
	assert.Equal(t, 30519.0, inc.AcresBurned)
	assert.Equal(t, 5.0, inc.Containment)
	assert.True(t, inc.Active)
	assert.Equal(t, "San Luis Obispo", inc.County)
	assert.Equal(t, "Highway 166, east of Santa Maria", inc.Location)
	assert.Equal(t, "https://incidents.example.gov/2026/gifford-fire/", inc.URL)
	// Longitude comes first in the coordinate pair.
	assert.Equal(t, 35.1029, inc.Latitude)
	assert.Equal(t, -120.1168, inc.Longitude)
	assert.Equal(t, SourceName, inc.Source)
}

func TestParse_SkipsFeatureWithoutName(t *testing.T) {
	payload := `{"features": [
		{"geometry": {"coordinates": [-120, 35]}, "properties": {"AcresBurned": 12}},
		{"geometry": {"coordinates": [-121, 36]}, "properties": {"Name": "Kept Fire"}}
	]}`

	incidents := newTestClient("").Parse([]byte(payload))
	require.Len(t, incidents, 1)
	assert.Equal(t, "Kept Fire", incidents[0].Name)
}

func TestParse_StringTypedNumbers(t *testing.T) {
	payload := `{"features": [{"properties": {"Name": "String Fire", "AcresBurned": "30,519", "PercentContained": "5%"}}]}`

	incidents := newTestClient("").Parse([]byte(payload))
	require.Len(t, incidents, 1)
	assert.Equal(t, 30519.0, incidents[0].AcresBurned)
	assert.Equal(t, 5.0, incidents[0].Containment)
}

func TestParse_MissingActiveFlagAssumesActive(t *testing.T) {
	payload := `{"features": [{"properties": {"Name": "Flagless Fire"}}]}`

	incidents := newTestClient("").Parse([]byte(payload))
	require.Len(t, incidents, 1)
	assert.True(t, incidents[0].Active)
}

func TestParse_FiltersStaleInactiveFeatures(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	old := now.Add(-60 * 24 * time.Hour).Format(time.RFC3339)
	recent := now.Add(-2 * 24 * time.Hour).Format(time.RFC3339)
	payload := `{"features": [
		{"properties": {"Name": "Old Out Fire", "IsActive": false, "Started": "` + old + `"}},
		{"properties": {"Name": "Recent Out Fire", "IsActive": false, "Started": "` + recent + `"}},
		{"properties": {"Name": "Old Active Fire", "IsActive": true, "Started": "` + old + `"}}
	]}`

	incidents := newTestClient("").Parse([]byte(payload))
	require.Len(t, incidents, 2)
	assert.Equal(t, "Recent Out Fire", incidents[0].Name)
	assert.Equal(t, "Old Active Fire", incidents[1].Name)
}

func TestParse_StaleBoundary(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	defer domain.SetClock(nil)

	exactly30d := now.Add(-domain.RetentionWindow).Format(time.RFC3339)
	payload := `{"features": [{"properties": {"Name": "Boundary Fire", "IsActive": false, "Started": "` + exactly30d + `"}}]}`

	incidents := newTestClient("").Parse([]byte(payload))
	require.Len(t, incidents, 1, "exactly 30 days old is still within the window")
}

func TestParse_MalformedPayload(t *testing.T) {
	assert.Empty(t, newTestClient("").Parse([]byte("<html>not json</html>")))
	assert.Empty(t, newTestClient("").Parse(nil))
}

func TestActiveFlag_StringVariants(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"yes", "Y", true},
		{"no", "N", false},
		{"bool true", true, true},
		{"bool false", false, false},
		{"numeric one", float64(1), true},
		{"numeric zero", float64(0), false},
		{"unrecognized string", "maybe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, activeFlag(map[string]any{"IsActive": tt.value}))
		})
	}
}

func TestFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(giffordFeature)) //nolint:errcheck
		}))
		defer srv.Close()

		incidents, err := newTestClient(srv.URL).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, incidents, 1)
		assert.Equal(t, "Gifford Fire", incidents[0].Name)
	})

	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		incidents, err := newTestClient(srv.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.Empty(t, incidents)
	})
}
