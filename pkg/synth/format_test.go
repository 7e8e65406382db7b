package synth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/synth"
)

func TestFormatStepMapsEveryActionType(t *testing.T) {
	cases := []struct {
		action model.ActionType
		kind   model.StepKind
	}{
		{model.ActionLaunch, model.StepLaunch},
		{model.ActionTypeText, model.StepType},
		{model.ActionPressKey, model.StepPressKey},
		{model.ActionSwipe, model.StepSwipe},
		{model.ActionScrollTo, model.StepScrollTo},
		{model.ActionScreenshot, model.StepScreenshot},
		{model.ActionAssertVisible, model.StepAssertVisible},
		{model.ActionAssertNot, model.StepAssertNotVisible},
		{model.ActionOpenURL, model.StepOpenURL},
		{model.ActionTap, model.StepTap},
	}
	for _, c := range cases {
		step := synth.FormatStep(c.action, "target")
		require.Equal(t, c.kind, step.Kind, "action %s", c.action)
	}
}

func TestFormatStepLongPressCarriesNote(t *testing.T) {
	step := synth.FormatStep(model.ActionLongPress, "Icon")
	require.Equal(t, model.StepSwipe, step.Kind)
	require.Equal(t, "long_press", step.Note)
}

func TestFormatStepPressHomeIgnoresTarget(t *testing.T) {
	step := synth.FormatStep(model.ActionPressHome, "whatever")
	require.Equal(t, model.StepHome, step.Kind)
	require.Empty(t, step.Target)
}

func TestFormatStepUnknownDefaultsToTap(t *testing.T) {
	step := synth.FormatStep(model.ActionType(""), "Settings")
	require.Equal(t, model.StepTap, step.Kind)
	require.Equal(t, "Settings", step.Target)
}

func TestRenderStepProducesReadableLines(t *testing.T) {
	require.Equal(t, `Tap "Save"`, synth.RenderStep(model.SkillStep{Kind: model.StepTap, Target: "Save"}))
	require.Equal(t, `Type "hello"`, synth.RenderStep(model.SkillStep{Kind: model.StepType, Target: "hello"}))
	require.Equal(t, "Press Home", synth.RenderStep(model.SkillStep{Kind: model.StepHome}))
	require.Equal(t, `Scroll until "Billing" is visible`, synth.RenderStep(model.SkillStep{Kind: model.StepScrollTo, Target: "Billing"}))
}

func TestStepsForPathSkipsFirstScreen(t *testing.T) {
	screens := []synth.ExploredScreen{
		{Node: model.ScreenNode{Fingerprint: "root"}},
		{Node: model.ScreenNode{Fingerprint: "a"}, Action: model.ActionTap, ElementText: "Privacy"},
	}
	steps := synth.StepsForPath(screens)
	require.Len(t, steps, 1)
	require.Equal(t, "Privacy", steps[0].Target)
}
