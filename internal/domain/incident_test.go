package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "Green Fire", "green"},
		{"lower case", "green fire", "green"},
		{"complex suffix", "GREEN FIRE COMPLEX", "green"},
		{"no suffix", "Gifford", "gifford"},
		{"surrounding whitespace", "  Gifford Fire ", "gifford"},
		{"multi word", "Rancho Viejo Fire", "rancho viejo"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IdentityKey(tt.input))
		})
	}
}

func TestMerge_Monotone(t *testing.T) {
	a := RawIncident{Name: "Gifford Fire", AcresBurned: 30519, Containment: 5, Active: true, Source: "geojson"}
	b := RawIncident{Name: "Gifford Fire - update", AcresBurned: 28000, Containment: 12, Active: false, County: "San Luis Obispo", Source: "rss"}

	merged := Merge(a, b)

	assert.GreaterOrEqual(t, merged.AcresBurned, a.AcresBurned)
	assert.GreaterOrEqual(t, merged.AcresBurned, b.AcresBurned)
	assert.GreaterOrEqual(t, merged.Containment, a.Containment)
	assert.GreaterOrEqual(t, merged.Containment, b.Containment)
	assert.Equal(t, 30519.0, merged.AcresBurned)
	assert.Equal(t, 12.0, merged.Containment)
	assert.True(t, merged.Active, "active must survive a stale inactive report")
	assert.Equal(t, "Gifford Fire", merged.Name, "existing name wins on tie")
	assert.Equal(t, "San Luis Obispo", merged.County, "non-empty side fills the gap")
}

func TestMerge_CoordinatesFilledWhenUnknown(t *testing.T) {
	a := RawIncident{Name: "Gifford Fire"}
	b := RawIncident{Name: "Gifford Fire", Latitude: 35.1029, Longitude: -120.1168}

	merged := Merge(a, b)
	assert.Equal(t, 35.1029, merged.Latitude)
	assert.Equal(t, -120.1168, merged.Longitude)

	// Known coordinates are not overwritten.
	merged = Merge(merged, RawIncident{Name: "Gifford Fire", Latitude: 1, Longitude: 1})
	assert.Equal(t, 35.1029, merged.Latitude)
}

func TestMergeAll(t *testing.T) {
	t.Run("cross-source dedup", func(t *testing.T) {
		// The rss adapter derives the bare fire name from titles like
		// "Gifford Fire - update" before records reach the merge.
		raws := []RawIncident{
			{Name: "Gifford Fire", AcresBurned: 30519, Active: true, Source: "geojson"},
			{Name: "Gifford Fire", Containment: 5, Active: true, County: "San Luis Obispo", Source: "rss"},
		}

		incidents := MergeAll(raws)
		require.Len(t, incidents, 1)
		assert.Equal(t, "Gifford Fire", incidents[0].Name)
		assert.Equal(t, 30519.0, incidents[0].AcresBurned)
		assert.Equal(t, 5.0, incidents[0].Containment)
		assert.Equal(t, "San Luis Obispo", incidents[0].County)
		assert.True(t, incidents[0].Active)
	})

	t.Run("suffix variants collapse to one incident", func(t *testing.T) {
		raws := []RawIncident{
			{Name: "Gifford Fire", AcresBurned: 30519},
			{Name: "GIFFORD FIRE COMPLEX", AcresBurned: 28000},
		}

		incidents := MergeAll(raws)
		require.Len(t, incidents, 1)
		assert.Equal(t, "Gifford Fire", incidents[0].Name)
		assert.Equal(t, 30519.0, incidents[0].AcresBurned)
	})

	t.Run("sorted by acres descending", func(t *testing.T) {
		raws := []RawIncident{
			{Name: "Small Fire", AcresBurned: 10},
			{Name: "Big Fire", AcresBurned: 50000},
			{Name: "Mid Fire", AcresBurned: 900},
		}

		incidents := MergeAll(raws)
		require.Len(t, incidents, 3)
		assert.Equal(t, "Big Fire", incidents[0].Name)
		assert.Equal(t, "Mid Fire", incidents[1].Name)
		assert.Equal(t, "Small Fire", incidents[2].Name)
	})

	t.Run("equal acres keep first-seen order", func(t *testing.T) {
		raws := []RawIncident{
			{Name: "Alpha Fire", AcresBurned: 100},
			{Name: "Beta Fire", AcresBurned: 100},
			{Name: "Gamma Fire", AcresBurned: 100},
		}

		incidents := MergeAll(raws)
		require.Len(t, incidents, 3)
		assert.Equal(t, "Alpha Fire", incidents[0].Name)
		assert.Equal(t, "Beta Fire", incidents[1].Name)
		assert.Equal(t, "Gamma Fire", incidents[2].Name)
	})

	t.Run("nameless records skipped", func(t *testing.T) {
		incidents := MergeAll([]RawIncident{{Name: "  "}, {Name: "Real Fire", AcresBurned: 1}})
		require.Len(t, incidents, 1)
		assert.Equal(t, "Real Fire", incidents[0].Name)
	})

	t.Run("stable surrogate id across refreshes", func(t *testing.T) {
		first := MergeAll([]RawIncident{{Name: "Gifford Fire"}})
		second := MergeAll([]RawIncident{{Name: "GIFFORD FIRE COMPLEX"}})
		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].ID, second[0].ID)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("defaults for missing fields", func(t *testing.T) {
		inc := Normalize(RawIncident{Name: "Gifford Fire"})

		assert.Equal(t, "Unknown", inc.County)
		assert.Equal(t, "California", inc.Location)
		assert.Equal(t, 0.0, inc.AcresBurned)
		assert.Equal(t, 0.0, inc.Containment)
		assert.True(t, inc.StartDate.IsZero())
	})

	t.Run("containment clamped to 0-100", func(t *testing.T) {
		assert.Equal(t, 100.0, Normalize(RawIncident{Name: "x", Containment: 140}).Containment)
		assert.Equal(t, 0.0, Normalize(RawIncident{Name: "x", Containment: -3}).Containment)
	})

	t.Run("negative acres floored", func(t *testing.T) {
		assert.Equal(t, 0.0, Normalize(RawIncident{Name: "x", AcresBurned: -5}).AcresBurned)
	})

	t.Run("start date parsed when recognizable", func(t *testing.T) {
		inc := Normalize(RawIncident{Name: "x", StartDate: "2026-08-01T10:30:00Z"})
		assert.Equal(t, time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC), inc.StartDate)
		assert.Equal(t, "2026-08-01T10:30:00Z", inc.RawStartDate)
	})

	t.Run("opaque start date kept raw", func(t *testing.T) {
		inc := Normalize(RawIncident{Name: "x", StartDate: "early August"})
		assert.True(t, inc.StartDate.IsZero())
		assert.Equal(t, "early August", inc.RawStartDate)
	})
}

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2026-08-01T10:30:00Z", time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)},
		{"date only", "2026-08-01", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"us short", "8/1/2026", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"long form", "August 1, 2026", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage", "soon", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStartDate(tt.input))
		})
	}
}

func TestWithinRetention(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	t.Run("active always kept", func(t *testing.T) {
		inc := Incident{Active: true, StartDate: now.Add(-90 * 24 * time.Hour)}
		assert.True(t, WithinRetention(inc, now))
	})

	t.Run("inactive recent kept", func(t *testing.T) {
		inc := Incident{StartDate: now.Add(-10 * 24 * time.Hour)}
		assert.True(t, WithinRetention(inc, now))
	})

	t.Run("inactive stale dropped", func(t *testing.T) {
		inc := Incident{StartDate: now.Add(-31 * 24 * time.Hour)}
		assert.False(t, WithinRetention(inc, now))
	})

	t.Run("unparseable date never dropped", func(t *testing.T) {
		inc := Incident{RawStartDate: "unclear"}
		assert.True(t, WithinRetention(inc, now))
	})
}

func TestFilterRetained(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(now))
	defer SetClock(nil)

	incidents := []Incident{
		{Name: "Old Fire", StartDate: now.Add(-60 * 24 * time.Hour)},
		{Name: "Current Fire", Active: true},
	}

	kept := FilterRetained(incidents)
	require.Len(t, kept, 1)
	assert.Equal(t, "Current Fire", kept[0].Name)
}

func TestParseFloatOrZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain", "30519", 30519},
		{"thousands separator", "30,519", 30519},
		{"percent suffix", "5%", 5},
		{"unit suffix", "12000 acres", 12000},
		{"empty", "", 0},
		{"garbage", "n/a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFloatOrZero(tt.input))
		})
	}
}
