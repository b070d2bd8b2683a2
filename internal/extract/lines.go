package extract

import "strings"

// bulletMarkers are split points in addition to newlines. Hyphens are
// deliberately absent: they appear inside road names and date ranges.
const bulletMarkers = "•●▪‣·"

// splitLines breaks section text on newlines and bullet markers, trims each
// piece, drops fragments of length <= 2, and removes exact case-insensitive
// duplicates preserving first-seen order.
func splitLines(section string) []string {
	split := strings.FieldsFunc(section, func(r rune) bool {
		return r == '\n' || strings.ContainsRune(bulletMarkers, r)
	})

	seen := make(map[string]bool, len(split))
	lines := make([]string, 0, len(split))
	for _, piece := range split {
		line := strings.TrimSpace(piece)
		if len(line) <= 2 {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		lines = append(lines, line)
	}
	return lines
}

// containsAny reports whether the lower-cased line contains any keyword.
func containsAny(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// filterLines keeps lines matching the category allow-list and drops lines
// hitting the global deny-list.
func filterLines(lines []string, allow []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if containsAny(line, denyKeywords) {
			continue
		}
		if !containsAny(line, allow) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}
