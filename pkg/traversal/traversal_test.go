package traversal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/boundary"
	"github.com/corvid-labs/skillwalk/pkg/clock"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/session"
	"github.com/corvid-labs/skillwalk/pkg/strategy"
	"github.com/corvid-labs/skillwalk/pkg/traversal"
)

func mobileClassify(elements []model.TapPoint, hints model.ScreenHints) model.ScreenType {
	return strategy.Mobile{}.ClassifyScreen(elements, hints)
}

// TestExplorerDiscoversOneChildAndReturnsToRoot drives a full cycle: root
// has one navigable element ("Privacy"); tapping it reveals a childless
// detail screen; the explorer backtracks, exhausts the frontier, and
// finishes, producing a bundle with two screens logged.
func TestExplorerDiscoversOneChildAndReturnsToRoot(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 400, WindowHeight: 890}
	rootDesc := boundary.Description{
		Elements: []model.TapPoint{{Text: "Privacy", TapX: 50, TapY: 260}},
		Hints:    hints,
	}
	childDesc := boundary.Description{
		Elements: nil,
		Hints:    hints,
	}

	describer := &boundary.FakeDescriber{Script: []boundary.Description{
		rootDesc, childDesc, rootDesc, rootDesc, rootDesc, rootDesc,
		childDesc, childDesc, childDesc, childDesc, rootDesc,
	}}
	input := &boundary.FakeInput{}
	fakeClock := clock.NewFake(time.Unix(0, 0))

	sess := session.New(mobileClassify)
	sess.Start("Settings", "", nil)
	_, _, accepted := sess.Capture(rootDesc.Elements, rootDesc.Hints, 0, model.ActionLaunch, "", "")
	require.True(t, accepted)

	b := model.ExplorationBudget{
		MaxDepth: 2, MaxScreens: 10, MaxWallClock: time.Hour,
		MaxInteractionsPer: 5, ScrollAttemptsPer: 1,
	}

	ex := traversal.New(sess, describer, input, fakeClock, strategy.Mobile{}, b)
	ex.Start()

	ctx := context.Background()
	var last traversal.StepResult
	for i := 0; i < 20; i++ {
		last = ex.Step(ctx)
		if last.Kind == traversal.ResultFinished {
			break
		}
	}

	require.Equal(t, traversal.ResultFinished, last.Kind)
	require.Equal(t, 2, sess.Graph().NodeCount())
	require.Len(t, last.Bundle.Screens, 2)
	require.GreaterOrEqual(t, len(input.Taps), 2)
}

func desktopClassify(elements []model.TapPoint, hints model.ScreenHints) model.ScreenType {
	return strategy.Desktop{}.ClassifyScreen(elements, hints)
}

// Desktop's BacktrackMethod prefers a back key press over a tap coordinate
// (§4.10); this drives the same discover-then-return cycle as
// TestExplorerDiscoversOneChildAndReturnsToRoot but asserts the backtrack
// itself goes through Strategy.BacktrackMethod instead of always tapping.
func TestDesktopBacktrackPressesBackKeyInsteadOfTapping(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 1200, WindowHeight: 800}
	rootDesc := boundary.Description{
		Elements: []model.TapPoint{{Text: "Preferences", TapX: 600, TapY: 400}},
		Hints:    hints,
	}
	childDesc := boundary.Description{Elements: nil, Hints: hints}

	describer := &boundary.FakeDescriber{Script: []boundary.Description{
		rootDesc, childDesc, rootDesc, rootDesc, rootDesc, rootDesc,
		childDesc, childDesc, childDesc, childDesc, rootDesc,
	}}
	input := &boundary.FakeInput{}
	fakeClock := clock.NewFake(time.Unix(0, 0))

	sess := session.New(desktopClassify)
	sess.Start("App", "", nil)
	sess.Capture(rootDesc.Elements, rootDesc.Hints, 0, model.ActionLaunch, "", "")

	b := model.ExplorationBudget{
		MaxDepth: 2, MaxScreens: 10, MaxWallClock: time.Hour,
		MaxInteractionsPer: 5, ScrollAttemptsPer: 1,
	}
	ex := traversal.New(sess, describer, input, fakeClock, strategy.Desktop{}, b)
	ex.Start()

	ctx := context.Background()
	var last traversal.StepResult
	for i := 0; i < 20; i++ {
		last = ex.Step(ctx)
		if last.Kind == traversal.ResultFinished {
			break
		}
	}

	require.Equal(t, traversal.ResultFinished, last.Kind)
	require.Contains(t, input.KeyPress, "back")
}

func TestExplorerPausesOnOCRFailure(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 400, WindowHeight: 890}
	rootDesc := boundary.Description{
		Elements: []model.TapPoint{{Text: "Privacy", TapX: 50, TapY: 260}},
		Hints:    hints,
	}
	describer := &boundary.FakeDescriber{Err: context.DeadlineExceeded}
	input := &boundary.FakeInput{}
	fakeClock := clock.NewFake(time.Unix(0, 0))

	sess := session.New(mobileClassify)
	sess.Start("Settings", "", nil)
	sess.Capture(rootDesc.Elements, rootDesc.Hints, 0, model.ActionLaunch, "", "")

	ex := traversal.New(sess, describer, input, fakeClock, strategy.Mobile{}, model.DefaultBudget())
	ex.Start()

	ctx := context.Background()
	// the first tick only pops the root and enters exploring; the OCR call
	// happens on the second.
	require.Equal(t, traversal.ResultContinue, ex.Step(ctx).Kind)
	result := ex.Step(ctx)
	require.Equal(t, traversal.ResultPaused, result.Kind)
}

func TestExplorerFinishesImmediatelyAtScreenCap(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 400, WindowHeight: 890}
	root := []model.TapPoint{{Text: "Only", TapX: 50, TapY: 400}}
	describer := &boundary.FakeDescriber{}
	input := &boundary.FakeInput{}
	fakeClock := clock.NewFake(time.Unix(0, 0))

	sess := session.New(mobileClassify)
	sess.Start("App", "", nil)
	sess.Capture(root, hints, 0, model.ActionLaunch, "", "")

	b := model.DefaultBudget()
	b.MaxScreens = 1 // already at the cap: traversal should finish on the first tick
	ex := traversal.New(sess, describer, input, fakeClock, strategy.Mobile{}, b)
	ex.Start()

	result := ex.Step(context.Background())
	require.Equal(t, traversal.ResultFinished, result.Kind)
}
