// Package planner produces an ordered, scored list of candidate
// interactions for the current screen (spec §4.4).
package planner

import (
	"sort"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// HomeGestureMarginPoints is the bottom strip reserved for the iOS home
// indicator gesture, excluded from both element- and component-level
// ranking.
const HomeGestureMarginPoints = 34.0

const (
	weightChevronPresent  = 3.0
	weightNoChevron       = -1.0
	weightShortLabel      = 2.0
	weightLongLabel       = -1.0
	weightMidScreenBand   = 1.0
	weightScoutNavigated  = 5.0
	weightScoutNoChange   = -10.0
)

// Candidate is one ranked, plannable interaction.
type Candidate struct {
	Text       string
	TapX, TapY float64
	Score      float64
	Component  *model.ScreenComponent
}

// PlanElements ranks navigation-role elements that are unvisited and
// outside the home-gesture zone (§4.4, element-level scoring).
func PlanElements(elements []model.ClassifiedElement, visited map[string]struct{}, scouts map[string]model.ScoutResult, screenHeight float64) []Candidate {
	var candidates []Candidate
	for _, e := range elements {
		if e.Role != model.RoleNavigation {
			continue
		}
		if _, seen := visited[e.Text]; seen {
			continue
		}
		if inHomeGestureZone(e.TapY, screenHeight) {
			continue
		}
		score := scoreElement(e, scouts, screenHeight)
		candidates = append(candidates, Candidate{Text: e.Text, TapX: e.TapX, TapY: e.TapY, Score: score})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	return candidates
}

func scoreElement(e model.ClassifiedElement, scouts map[string]model.ScoutResult, screenHeight float64) float64 {
	score := 0.0
	if e.HasChevronContext {
		score += weightChevronPresent
	} else {
		score += weightNoChevron
	}
	if len(e.Text) <= 20 && !containsSpace(e.Text) {
		score += weightShortLabel
	} else if len(e.Text) > 30 {
		score += weightLongLabel
	}
	if inMidScreenBand(e.TapY, screenHeight) {
		score += weightMidScreenBand
	}
	if r, ok := scouts[e.Text]; ok {
		if r == model.ScoutNavigated {
			score += weightScoutNavigated
		} else {
			score += weightScoutNoChange
		}
	}
	return score
}

// PlanComponents ranks clickable components with an unvisited tap target,
// outside the home-gesture zone (§4.4, component-level scoring). Bonuses
// mirror the element-level weights; clickResult "navigates" gets the
// chevron-style bonus, otherwise the no-chevron penalty applies.
func PlanComponents(components []model.ScreenComponent, visited map[string]struct{}, scouts map[string]model.ScoutResult, screenHeight float64) []Candidate {
	var candidates []Candidate
	for i := range components {
		c := components[i]
		if !c.Clickable {
			continue
		}
		text := c.Text()
		if _, seen := visited[text]; seen {
			continue
		}
		if inHomeGestureZone(c.TapY, screenHeight) {
			continue
		}
		score := 0.0
		if c.ClickResult == model.ClickNavigates {
			score += weightChevronPresent
		} else {
			score += weightNoChevron
		}
		if len(text) <= 20 && !containsSpace(text) {
			score += weightShortLabel
		} else if len(text) > 30 {
			score += weightLongLabel
		}
		if inMidScreenBand(c.TapY, screenHeight) {
			score += weightMidScreenBand
		}
		if r, ok := scouts[text]; ok {
			if r == model.ScoutNavigated {
				score += weightScoutNavigated
			} else {
				score += weightScoutNoChange
			}
		}
		comp := components[i]
		candidates = append(candidates, Candidate{Text: text, TapX: c.TapX, TapY: c.TapY, Score: score, Component: &comp})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	return candidates
}

func inHomeGestureZone(y, screenHeight float64) bool {
	if screenHeight <= 0 {
		return false
	}
	return y > screenHeight-HomeGestureMarginPoints
}

func inMidScreenBand(y, screenHeight float64) bool {
	if screenHeight <= 0 {
		return false
	}
	frac := y / screenHeight
	return frac >= 0.25 && frac <= 0.75
}

func containsSpace(s string) bool {
	for _, r := range s {
		if r == ' ' {
			return true
		}
	}
	return false
}
