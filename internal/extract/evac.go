package extract

import (
	"regexp"
	"strings"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

var (
	// countyLineRe matches "San Luis Obispo County: ..." style lines inside
	// the evacuation sections.
	countyLineRe = regexp.MustCompile(`(?i)^([A-Za-z .]+?)\s+county\b[:\s-]*(.*)$`)

	// zoneCodeRe matches zone identifiers like "SLC-145", "TLR-001A", "Zone 7".
	zoneCodeRe = regexp.MustCompile(`[A-Z]{2,5}-\d+[A-Z]?|(?i)\bzone\s+\d+[A-Z]?`)
)

// EvacuationZones derives the county→zone mapping for evacuation orders
// (Level 3) and warnings (Level 2) straight from raw markup. The result is
// computed per request and never cached; maps are nil when a level has no
// zones.
func EvacuationZones(markup []byte) domain.EvacZones {
	text := StripMarkup(string(markup))
	return domain.EvacZones{
		Orders:   zonesByCounty(sectionFor(text, evacOrderHeadings)),
		Warnings: zonesByCounty(sectionFor(text, evacWarningHeadings)),
	}
}

// zonesByCounty walks section lines tracking the current county. Zone codes
// on a county line belong to that county; bare zone lines belong to the most
// recently named county.
func zonesByCounty(section string) map[string][]string {
	if section == "" {
		return nil
	}

	zones := make(map[string][]string)
	seen := make(map[string]bool)
	county := ""

	for _, line := range splitLines(section) {
		rest := line
		if m := countyLineRe.FindStringSubmatch(line); m != nil {
			county = strings.TrimSpace(m[1])
			rest = m[2]
		}
		if county == "" {
			continue
		}
		for _, code := range zoneCodeRe.FindAllString(rest, -1) {
			code = normalizeZone(code)
			key := county + "|" + code
			if seen[key] {
				continue
			}
			seen[key] = true
			zones[county] = append(zones[county], code)
		}
	}

	if len(zones) == 0 {
		return nil
	}
	return zones
}

func normalizeZone(code string) string {
	code = strings.Join(strings.Fields(code), " ")
	if strings.HasPrefix(strings.ToLower(code), "zone ") {
		return "Zone " + code[5:]
	}
	return code
}
