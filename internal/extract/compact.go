package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

// metricMapping ties a line keyword to the metric label it reports.
// Slices, not maps: label order in the output is part of the contract.
type metricMapping struct {
	keyword string
	label   string
}

var resourceMappings = []metricMapping{
	{"engines", "Engines"},
	{"hand crews", "Hand Crews"},
	{"crews", "Crews"},
	{"helicopters", "Helicopters"},
	{"dozers", "Dozers"},
	{"water tenders", "Water Tenders"},
	{"airtankers", "Air Tankers"},
	{"air tankers", "Air Tankers"},
	{"personnel", "Personnel"},
}

var damageMappings = []metricMapping{
	{"destroyed", "Structures Destroyed"},
	{"damaged", "Structures Damaged"},
	{"threatened", "Structures Threatened"},
	{"injuries", "Injuries"},
	{"fatalities", "Fatalities"},
}

var (
	firstIntRe = regexp.MustCompile(`\d[\d,]*`)

	// closureStatusRe: a road line only counts as a closure when it states
	// one of these statuses.
	closureStatusRe = regexp.MustCompile(`(?i)\bclosed\b|\bclosure\b|restricted|residents only`)

	// roadTypeRe anchors closure lines on an actual road reference.
	roadTypeRe = regexp.MustCompile(`(?i)\broad\b|\brd\b|\bhwy\b|highway|\broute\b|\blane\b|\bave\b|avenue|\bstreet\b|\bst\b|\bdrive\b|\bdr\b|\bblvd\b`)
)

// Road closure lines must be long enough to carry a road name and a status
// but short enough to not be a run-on paragraph.
const (
	minClosureLen = 20
	maxClosureLen = 200
)

// compactMetrics scans filtered lines against a keyword→label mapping and
// extracts the first integer on each hit. One metric per label, last write
// wins; labels appear in mapping order.
func compactMetrics(lines []string, mappings []metricMapping) []domain.Metric {
	counts := make(map[string]int)
	hit := make(map[string]bool)

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, m := range mappings {
			if !strings.Contains(lower, m.keyword) {
				continue
			}
			n, ok := firstInt(line)
			if !ok {
				continue
			}
			counts[m.label] = n
			hit[m.label] = true
			break // mappings are ordered most-specific first; one hit per line
		}
	}

	var metrics []domain.Metric
	for _, m := range mappings {
		if !hit[m.label] {
			continue
		}
		metrics = append(metrics, domain.Metric{Label: m.label, Count: counts[m.label]})
		delete(hit, m.label) // two keywords can share a label
	}
	if len(metrics) > maxCategoryItems {
		metrics = metrics[:maxCategoryItems]
	}
	return metrics
}

// firstInt extracts the first integer substring on a line, tolerating
// thousands separators.
func firstInt(line string) (int, bool) {
	m := firstIntRe.FindString(line)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// venueNameRe pulls a clean capitalized venue name out of a noisy line,
// anchored on a category-relevant suffix word ("... Shelter", "... High
// School", "... Community Center").
func venueNameRe(suffixes string) *regexp.Regexp {
	return regexp.MustCompile(`((?:[A-Z][A-Za-z'.]*\s+)+(?:` + suffixes + `))`)
}

var (
	shelterNameRe = venueNameRe(`Shelter|School|Center|Centre|Church|Hall|Fairgrounds|College|Gym|Gymnasium`)
	animalNameRe  = venueNameRe(`Shelter|Fairgrounds|Ranch|Stable|Stables|Arena|Center`)
	evacPointRe   = venueNameRe(`Point|Park|Lot|Station|Store|Plaza|Center|School`)
)

// compactVenueNames reduces filtered lines to clean venue names; lines where
// no name can be anchored are dropped.
func compactVenueNames(lines []string, re *regexp.Regexp) []string {
	seen := make(map[string]bool, len(lines))
	var names []string
	for _, line := range lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
		if len(names) == maxCategoryItems {
			break
		}
	}
	return names
}

// compactRoadClosures keeps lines that combine a road reference with a
// closure status and fall inside the sane length band.
func compactRoadClosures(lines []string) []string {
	var closures []string
	for _, line := range lines {
		if len(line) < minClosureLen || len(line) > maxClosureLen {
			continue
		}
		if !roadTypeRe.MatchString(line) || !closureStatusRe.MatchString(line) {
			continue
		}
		closures = append(closures, line)
		if len(closures) == maxRoadClosures {
			break
		}
	}
	return closures
}
