// Package strategy implements ExplorationStrategy (spec §4.10): a
// plug-in contract with mobile, desktop, and social variants, plus a
// detector that picks among them. Every method is pure.
package strategy

import (
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/budget"
	"github.com/corvid-labs/skillwalk/pkg/classify"
	"github.com/corvid-labs/skillwalk/pkg/fingerprint"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/planner"
)

// BacktrackMethod is Strategy.BacktrackMethod's result.
type BacktrackMethod int

const (
	BacktrackTapBack BacktrackMethod = iota
	BacktrackPressBack
	BacktrackSwipeBack
	BacktrackPressHome
	BacktrackNone
)

// Strategy is the ExplorationStrategy contract (§4.10).
type Strategy interface {
	ClassifyScreen(elements []model.TapPoint, hints model.ScreenHints) model.ScreenType
	RankElements(elements []model.TapPoint, icons int, visited map[string]struct{}, depth int, screenType model.ScreenType, screenHeight float64) []model.TapPoint
	BacktrackMethod(hints model.ScreenHints, depth int) BacktrackMethod
	ShouldSkip(text string, b model.ExplorationBudget) bool
	IsTerminal(elements []model.TapPoint, depth int, b model.ExplorationBudget, screenType model.ScreenType) bool
	ExtractFingerprint(elements []model.TapPoint, icons int) string
}

func rankByPlanner(elements []model.TapPoint, icons int, visited map[string]struct{}, screenHeight float64, skipPatterns []string) []model.TapPoint {
	classified := classify.Classify(elements, screenHeight, skipPatterns)
	cands := planner.PlanElements(classified, visited, nil, screenHeight)
	out := make([]model.TapPoint, 0, len(cands))
	for _, c := range cands {
		out = append(out, model.TapPoint{Text: c.Text, TapX: c.TapX, TapY: c.TapY})
	}
	return out
}

func shouldSkipDefault(text string, b model.ExplorationBudget) bool {
	return budget.ShouldSkip(text, budget.Resolve(b))
}

func extractFingerprintDefault(elements []model.TapPoint, icons int) string {
	fp, _ := fingerprint.Compute(elements, 0, icons)
	return fp
}

func countShortLabelsInBottomBand(elements []model.TapPoint, screenHeight float64) int {
	if screenHeight <= 0 {
		return 0
	}
	count := 0
	for _, e := range elements {
		if e.TapY >= screenHeight*0.88 && len(e.Text) <= 12 {
			count++
		}
	}
	return count
}

func hasBackChevronHint(hints model.ScreenHints) bool {
	return hints.HasBackChevron
}

func containsAny(lower string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
