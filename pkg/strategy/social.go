package strategy

import (
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/classify"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/planner"
)

// Social behaves like Mobile but also skips feed-interrupting items
// (sponsored posts, suggestions, invite and notification prompts) and ranks
// them last (§4.10). Its only purchase terms are those of the shared safety
// list in pkg/budget.
type Social struct {
	Mobile
}

var feedInterruptWords = []string{"sponsored", "suggested for you", "invite friends", "turn on notifications"}

func (Social) ShouldSkip(text string, b model.ExplorationBudget) bool {
	if shouldSkipDefault(text, b) {
		return true
	}
	return containsAny(strings.ToLower(text), feedInterruptWords)
}

func (Social) RankElements(elements []model.TapPoint, icons int, visited map[string]struct{}, depth int, screenType model.ScreenType, screenHeight float64) []model.TapPoint {
	classified := classify.Classify(elements, screenHeight, nil)
	cands := planner.PlanElements(classified, visited, nil, screenHeight)

	ordinary := make([]planner.Candidate, 0, len(cands))
	interrupting := make([]planner.Candidate, 0)
	for _, c := range cands {
		if containsAny(strings.ToLower(c.Text), feedInterruptWords) {
			interrupting = append(interrupting, c)
		} else {
			ordinary = append(ordinary, c)
		}
	}
	ordinary = append(ordinary, interrupting...)

	out := make([]model.TapPoint, 0, len(ordinary))
	for _, c := range ordinary {
		out = append(out, model.TapPoint{Text: c.Text, TapX: c.TapX, TapY: c.TapY})
	}
	return out
}
