package strategy

import (
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// Desktop recognizes sidebars and modal dialogs by the layout conventions
// of windowed desktop apps (§4.10).
type Desktop struct{}

func (Desktop) ClassifyScreen(elements []model.TapPoint, hints model.ScreenHints) model.ScreenType {
	sidebarCount := 0
	for _, e := range elements {
		if e.TapX < 200 {
			sidebarCount++
		}
	}
	if sidebarCount >= 3 {
		return model.ScreenTabRoot
	}
	if len(elements) <= 6 && hasDismissButton(elements) {
		return model.ScreenModal
	}
	if len(elements) >= 4 {
		return model.ScreenList
	}
	return model.ScreenDetail
}

func (Desktop) RankElements(elements []model.TapPoint, icons int, visited map[string]struct{}, depth int, screenType model.ScreenType, screenHeight float64) []model.TapPoint {
	return rankByPlanner(elements, icons, visited, screenHeight, nil)
}

func (Desktop) BacktrackMethod(hints model.ScreenHints, depth int) BacktrackMethod {
	return BacktrackPressBack
}

func (Desktop) ShouldSkip(text string, b model.ExplorationBudget) bool {
	return shouldSkipDefault(text, b)
}

func (Desktop) IsTerminal(elements []model.TapPoint, depth int, b model.ExplorationBudget, screenType model.ScreenType) bool {
	return depth >= b.MaxDepth || len(elements) == 0
}

func (Desktop) ExtractFingerprint(elements []model.TapPoint, icons int) string {
	return extractFingerprintDefault(elements, icons)
}

var dismissWords = []string{"close", "done", "cancel", "dismiss", "ok"}

func hasDismissButton(elements []model.TapPoint) bool {
	for _, e := range elements {
		if containsAny(strings.ToLower(e.Text), dismissWords) {
			return true
		}
	}
	return false
}
