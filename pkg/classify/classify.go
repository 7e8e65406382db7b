// Package classify assigns a role to every OCR element using row context
// (spec §4.2).
package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// RowGapPoints is the max Y-gap between consecutive elements that still
// belong to the same row.
const RowGapPoints = 15.0

// StatusBarFraction is §4.2 rule 1's own status-bar boundary: "Y < 10% of
// screen height", spec-pinned as a proportion here (unlike fingerprint's
// fixed-height strip, which exists to keep S1's structural-set example
// correct; the two packages' notions of "status bar" are distinct concerns
// that happen to share a number).
const StatusBarFraction = 0.10

// MinTextLength is the configured minimum trimmed length below which text
// is decoration (§4.2 rule 4).
const MinTextLength = 2

// Forward-navigation chevron glyphs: >, U+203A (›), U+276F (❯).
var chevrons = map[string]struct{}{
	">": {}, "›": {}, "❯": {},
}

var punctuationRe = regexp.MustCompile(`^[[:punct:]\s]+$`)

var valuePatternRe = regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*(gb|mb|kb|tb|%)$`)
var timePatternRe = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

var stateWords = map[string]struct{}{
	"on": {}, "off": {},
}

// conjunctionPhrases are the short English/French connective phrases used
// by rule 8 to detect sentence-like help text.
var conjunctionPhrases = []string{
	", and", ", or", ", but", ", et", ", ou", ", mais",
}

var learnMorePhrases = []string{
	"learn more", "en savoir plus",
}

type row struct {
	elements          []model.TapPoint
	hasChevron        bool
	hasStateIndicator bool
}

// Classify assigns exactly one Role to every element (§8 property 3).
// skipPatterns is the caller's merged budget-skip-pattern list (built-in
// safety list + any budget-configured additions; see pkg/budget) used by
// rule 5 to mark destructive elements.
func Classify(elements []model.TapPoint, screenHeight float64, skipPatterns []string) []model.ClassifiedElement {
	rows := groupRows(elements)

	out := make([]model.ClassifiedElement, 0, len(elements))
	for _, r := range rows {
		for _, e := range r.elements {
			out = append(out, classifyElement(e, r, screenHeight, skipPatterns))
		}
	}
	return out
}

func groupRows(elements []model.TapPoint) []row {
	grouped := GroupRows(elements)
	rows := make([]row, 0, len(grouped))
	for _, g := range grouped {
		rows = append(rows, buildRow(g))
	}
	return rows
}

// GroupRows sorts elements by Y and accumulates them into rows while the
// Y-gap to the last element stays within RowGapPoints (§4.2). Exported so
// pkg/component can share the same row boundaries the classifier uses.
func GroupRows(elements []model.TapPoint) [][]model.TapPoint {
	sorted := append([]model.TapPoint(nil), elements...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TapY < sorted[j].TapY })

	var rows [][]model.TapPoint
	var current []model.TapPoint
	lastY := 0.0
	for i, e := range sorted {
		if i > 0 && e.TapY-lastY > RowGapPoints {
			rows = append(rows, current)
			current = nil
		}
		current = append(current, e)
		lastY = e.TapY
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

func buildRow(elements []model.TapPoint) row {
	r := row{elements: elements}
	for _, e := range elements {
		text := strings.TrimSpace(e.Text)
		if endsWithChevron(text) {
			r.hasChevron = true
		}
		if _, ok := stateWords[strings.ToLower(text)]; ok {
			r.hasStateIndicator = true
		}
	}
	return r
}

// endsWithChevron reports whether text ends with one of the forward-nav
// chevron glyphs (§4.2: "any element text ends with one of {>, ›, ❯}").
func endsWithChevron(text string) bool {
	for c := range chevrons {
		if strings.HasSuffix(text, c) {
			return true
		}
	}
	return false
}

// isChevron reports whether text is, on its own, purely a chevron glyph
// (used by rule 2's decoration check).
func isChevron(text string) bool {
	_, ok := chevrons[strings.TrimSpace(text)]
	return ok
}

func classifyElement(e model.TapPoint, r row, screenHeight float64, skipPatterns []string) model.ClassifiedElement {
	text := strings.TrimSpace(e.Text)
	lower := strings.ToLower(text)

	// Rule 1: status-bar strip.
	if screenHeight > 0 && e.TapY < screenHeight*StatusBarFraction {
		return decorate(e, false)
	}

	// Rule 2: chevron or pure punctuation.
	if isChevron(text) || (text != "" && punctuationRe.MatchString(text)) {
		return decorate(e, false)
	}

	// Rule 3: known state word, value pattern, or time pattern -> info.
	if _, ok := stateWords[lower]; ok {
		return info(e)
	}
	if valuePatternRe.MatchString(text) || timePatternRe.MatchString(text) {
		return info(e)
	}

	// Rule 4: below minimum length -> decoration.
	if len(text) < MinTextLength {
		return decorate(e, false)
	}

	// Rule 5: destructive skip pattern (budget-configured + built-in safety list).
	if matchesAny(lower, skipPatterns) {
		return model.ClassifiedElement{TapPoint: e, Role: model.RoleDestructive}
	}

	// Rule 6: row has a state indicator and this element isn't it.
	if r.hasStateIndicator {
		if _, ok := stateWords[lower]; !ok {
			return model.ClassifiedElement{TapPoint: e, Role: model.RoleStateChange}
		}
	}

	// Rule 7: row has a chevron and this element isn't it.
	if r.hasChevron && !isChevron(text) {
		return model.ClassifiedElement{TapPoint: e, Role: model.RoleNavigation, HasChevronContext: true}
	}

	// Rule 8: long or sentence-like text, or a help link.
	if len(text) > 50 || containsConjunctionPhrase(lower) || containsLearnMore(lower) {
		return info(e)
	}

	// Rule 9: default.
	return model.ClassifiedElement{TapPoint: e, Role: model.RoleNavigation}
}

func decorate(e model.TapPoint, chevron bool) model.ClassifiedElement {
	return model.ClassifiedElement{TapPoint: e, Role: model.RoleDecoration, HasChevronContext: chevron}
}

func info(e model.TapPoint) model.ClassifiedElement {
	return model.ClassifiedElement{TapPoint: e, Role: model.RoleInfo}
}

func containsConjunctionPhrase(lower string) bool {
	for _, p := range conjunctionPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func containsLearnMore(lower string) bool {
	for _, p := range learnMorePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func matchesAny(lower string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
