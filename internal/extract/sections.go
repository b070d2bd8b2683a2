package extract

import "strings"

// knownHeadings bounds every section search. It covers the operational
// categories and the page chrome headings observed on incident pages, so a
// section ends at the next heading of any kind instead of swallowing
// unrelated content. This is a heuristic: an unseen page layout can defeat
// it, in which case extraction silently yields less.
var knownHeadings = []string{
	// Operational categories.
	"road closures",
	"road closure",
	"evacuation orders",
	"evacuation warnings",
	"evacuation shelters",
	"evacuation centers",
	"evacuation points",
	"temporary evacuation points",
	"animal shelters",
	"animal evacuation",
	"shelters",
	"resources assigned",
	"resources",
	"damage assessment",
	"current situation",
	"incident overview",
	// Page chrome.
	"quick links",
	"related links",
	"about us",
	"contact us",
	"news releases",
	"incident maps",
	"photos and videos",
	"maps",
	"subscribe",
	"follow us",
	"site map",
	"privacy policy",
	"accessibility",
	"conditions of use",
}

// sectionFor returns the lines between the first candidate heading line and
// the next known heading line. Only heading-shaped lines count: the whole
// trimmed line must be the heading, so a chrome word inside a prose line
// never ends a section early (the line deny-list handles those lines).
// Empty string when no candidate heading line occurs.
func sectionFor(text string, candidates []string) string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if isHeadingLine(line, candidates) {
			start = i + 1
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if isHeadingLine(lines[i], knownHeadings) {
			end = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// isHeadingLine reports whether the entire trimmed line, minus an optional
// trailing colon, equals one of the candidates case-insensitively. Comparing
// whole lines keeps the case fold local: byte offsets into the original text
// are never derived from the folded form.
func isHeadingLine(line string, candidates []string) bool {
	norm := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")))
	if norm == "" {
		return false
	}
	for _, candidate := range candidates {
		if norm == candidate {
			return true
		}
	}
	return false
}
