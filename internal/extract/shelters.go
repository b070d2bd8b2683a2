package extract

import (
	"regexp"
	"strings"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

var (
	// addressLineRe: a street-type keyword plus a digit somewhere on the
	// line. "800 S Broadway" and "123 Main St, Santa Maria" both qualify.
	addressLineRe = regexp.MustCompile(`(?i)\d.*\b(st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|hwy|highway|way|lane|ln)\b|\b(st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|hwy|highway|way|lane|ln)\b.*\d`)

	hoursLineRe = regexp.MustCompile(`(?i)\d\s*(a\.?m\.?|p\.?m\.?)|\bhours\b|\bopen\b.*\d|24/7`)

	venueWordRe = regexp.MustCompile(`(?i)school|center|centre|hall|church|shelter|fairgrounds|college|gym`)
)

// Venue-name lines sit in a narrow length band: long enough to be a real
// name, short enough to not be prose.
const (
	minVenueLen = 15
	maxVenueLen = 80
)

// parseShelterEntries walks section text top to bottom assembling structured
// {name, address, note} records. The source text has no reliable delimiters
// between entries; the only signal is a small set of recognizable line
// shapes, so a new venue-name line closes out the previous record.
func parseShelterEntries(section string) []domain.ShelterEntry {
	var entries []domain.ShelterEntry
	var current *domain.ShelterEntry

	flush := func() {
		if current != nil && current.Name != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range splitLines(section) {
		switch {
		case isVenueNameLine(line):
			flush()
			current = &domain.ShelterEntry{Name: line}
		case isAddressLine(line):
			if current != nil && current.Address == "" {
				current.Address = line
			}
		case isHoursLine(line):
			if current != nil && current.Note == "" {
				current.Note = line
			}
		}
	}
	flush()
	if len(entries) > maxCategoryItems {
		entries = entries[:maxCategoryItems]
	}
	return entries
}

// isVenueNameLine recognizes lines naming a venue: mentions a venue word,
// sits in the name length band, and is neither an address nor an hours line.
func isVenueNameLine(line string) bool {
	if len(line) < minVenueLen || len(line) > maxVenueLen {
		return false
	}
	if !venueWordRe.MatchString(line) {
		return false
	}
	return !isAddressLine(line) && !isHoursLine(line)
}

// isAddressLine recognizes address-shaped lines: street-type keyword plus a
// digit.
func isAddressLine(line string) bool {
	return addressLineRe.MatchString(line)
}

// isHoursLine recognizes opening-hours or availability notes.
func isHoursLine(line string) bool {
	return hoursLineRe.MatchString(line)
}

// entriesFromNames wraps display names into name-only entries, used when the
// structured walk found nothing but the keyword filter did.
func entriesFromNames(names []string) []domain.ShelterEntry {
	if len(names) == 0 {
		return nil
	}
	entries := make([]domain.ShelterEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, domain.ShelterEntry{Name: name})
	}
	return entries
}

// dropUnnamed filters structured entries down to those whose name survives
// the venue-name regex; keeps the cleaner anchored name when it matches.
func dropUnnamed(entries []domain.ShelterEntry, re *regexp.Regexp) []domain.ShelterEntry {
	var kept []domain.ShelterEntry
	for _, e := range entries {
		m := re.FindStringSubmatch(e.Name)
		if m == nil {
			continue
		}
		e.Name = strings.TrimSpace(m[1])
		kept = append(kept, e)
	}
	return kept
}
