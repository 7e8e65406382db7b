package strategy

import (
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// Mobile recognizes tab bars, list/settings screens, and modals by the
// layout conventions of iOS-style apps (§4.10).
type Mobile struct{}

func (Mobile) ClassifyScreen(elements []model.TapPoint, hints model.ScreenHints) model.ScreenType {
	h := hints.WindowHeight
	if countShortLabelsInBottomBand(elements, h) >= 3 {
		return model.ScreenTabRoot
	}
	if isModalByCloseWords(elements, h) {
		return model.ScreenModal
	}
	if len(elements) >= 4 && hasBackChevronHint(hints) {
		return model.ScreenSettings
	}
	if len(elements) >= 4 {
		return model.ScreenList
	}
	return model.ScreenDetail
}

func (Mobile) RankElements(elements []model.TapPoint, icons int, visited map[string]struct{}, depth int, screenType model.ScreenType, screenHeight float64) []model.TapPoint {
	return rankByPlanner(elements, icons, visited, screenHeight, nil)
}

func (Mobile) BacktrackMethod(hints model.ScreenHints, depth int) BacktrackMethod {
	return BacktrackTapBack
}

func (Mobile) ShouldSkip(text string, b model.ExplorationBudget) bool {
	return shouldSkipDefault(text, b)
}

func (Mobile) IsTerminal(elements []model.TapPoint, depth int, b model.ExplorationBudget, screenType model.ScreenType) bool {
	return depth >= b.MaxDepth || len(elements) == 0
}

func (Mobile) ExtractFingerprint(elements []model.TapPoint, icons int) string {
	return extractFingerprintDefault(elements, icons)
}

var closeWords = []string{"close", "done", "cancel"}

func isModalByCloseWords(elements []model.TapPoint, screenHeight float64) bool {
	if screenHeight <= 0 {
		return false
	}
	for _, e := range elements {
		if e.TapY > screenHeight*0.2 {
			continue
		}
		lower := strings.ToLower(e.Text)
		if containsAny(lower, closeWords) {
			return true
		}
	}
	return false
}
