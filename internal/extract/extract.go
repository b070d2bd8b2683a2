// Package extract turns free-form incident-page markup into structured
// operational detail: road closures, shelters, evacuation points, resource
// and damage metrics.
//
// There is no scraping framework and no NLP here. Extraction is layered
// heuristics tuned to the source pages: markup stripping, heading-bounded
// section isolation, keyword filtering, and per-category regex compaction.
// The engine never fails outward; the worst case is a near-empty detail
// record with every category absent.
package extract

import (
	"log/slog"
	"regexp"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

// Engine extracts structured detail from incident pages.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an extraction engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Detail runs the full extraction pipeline over raw page markup. Every list
// field of the result is nil when its category yielded nothing.
func (e *Engine) Detail(markup []byte) domain.IncidentDetail {
	text := StripMarkup(string(markup))

	detail := domain.IncidentDetail{
		RoadClosures:   RoadClosures(text),
		Shelters:       shelterCategory(text, shelterHeadings, shelterKeywords, shelterNameRe),
		AnimalShelters: shelterCategory(text, animalHeadings, animalKeywords, animalNameRe),
		EvacPoints:     shelterCategory(text, evacPointHeadings, evacPointKeywords, evacPointRe),
		Resources:      Resources(text),
		Damage:         Damage(text),
	}

	if detail.Empty() {
		e.logger.Debug("extraction yielded no categories", "text_len", len(text))
	}
	return detail
}

// RoadClosures extracts closure lines from the road-closures section of
// stripped page text. Nil when the section is absent or yields nothing.
func RoadClosures(text string) []string {
	section := sectionFor(text, roadClosureHeadings)
	if section == "" {
		return nil
	}
	lines := filterLines(splitLines(section), roadKeywords)
	closures := compactRoadClosures(lines)
	if len(closures) == 0 {
		return nil
	}
	return closures
}

// Resources extracts resource-count metrics ("Engines: 12") from stripped
// page text. Nil when nothing qualifies.
func Resources(text string) []domain.Metric {
	return metricCategory(text, resourceHeadings, resourceKeywords, resourceMappings)
}

// Damage extracts damage-assessment metrics ("Structures Destroyed: 3") from
// stripped page text. Nil when nothing qualifies.
func Damage(text string) []domain.Metric {
	return metricCategory(text, damageHeadings, damageKeywords, damageMappings)
}

func metricCategory(text string, headings, allow []string, mappings []metricMapping) []domain.Metric {
	section := sectionFor(text, headings)
	if section == "" {
		return nil
	}
	lines := filterLines(splitLines(section), allow)
	metrics := compactMetrics(lines, mappings)
	if len(metrics) == 0 {
		return nil
	}
	return metrics
}

// shelterCategory runs the two-pass shelter extraction: a stateful walk for
// structured {name, address, note} records, falling back to the
// keyword-filtered name compaction when the walk recognizes nothing. The two
// passes exist because the source text has no delimiters between entries;
// the walk needs recognizable line shapes, the bag-of-lines pass only needs
// an anchorable name.
func shelterCategory(text string, headings, allow []string, nameRe *regexp.Regexp) []domain.ShelterEntry {
	section := sectionFor(text, headings)
	if section == "" {
		return nil
	}

	entries := dropUnnamed(parseShelterEntries(section), nameRe)
	if len(entries) == 0 {
		names := compactVenueNames(filterLines(splitLines(section), allow), nameRe)
		entries = entriesFromNames(names)
	}
	if len(entries) == 0 {
		return nil
	}
	return entries
}
