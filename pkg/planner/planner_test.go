package planner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/planner"
)

func navEl(text string, y float64, chevron bool) model.ClassifiedElement {
	return model.ClassifiedElement{
		TapPoint:          model.TapPoint{Text: text, TapX: 10, TapY: y},
		Role:              model.RoleNavigation,
		HasChevronContext: chevron,
	}
}

func TestChevronElementsRankAboveNonChevron(t *testing.T) {
	els := []model.ClassifiedElement{
		navEl("General", 400, true),
		navEl("About", 400, false),
	}
	cands := planner.PlanElements(els, nil, nil, 890)
	require.Len(t, cands, 2)
	require.Equal(t, "General", cands[0].Text)
}

func TestVisitedElementsExcluded(t *testing.T) {
	els := []model.ClassifiedElement{navEl("General", 400, true)}
	visited := map[string]struct{}{"General": {}}
	require.Empty(t, planner.PlanElements(els, visited, nil, 890))
}

func TestHomeGestureZoneExcluded(t *testing.T) {
	els := []model.ClassifiedElement{navEl("General", 880, true)}
	require.Empty(t, planner.PlanElements(els, nil, nil, 890))
}

func TestScoutResultsAdjustScore(t *testing.T) {
	els := []model.ClassifiedElement{
		navEl("A", 400, true),
		navEl("B", 400, true),
	}
	scouts := map[string]model.ScoutResult{
		"A": model.ScoutNoChange,
		"B": model.ScoutNavigated,
	}
	cands := planner.PlanElements(els, nil, scouts, 890)
	require.Equal(t, "B", cands[0].Text)
}

func TestNonNavigationRoleExcluded(t *testing.T) {
	els := []model.ClassifiedElement{
		{TapPoint: model.TapPoint{Text: "5", TapX: 10, TapY: 400}, Role: model.RoleInfo},
	}
	require.Empty(t, planner.PlanElements(els, nil, nil, 890))
}
