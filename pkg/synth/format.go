package synth

import "github.com/corvid-labs/skillwalk/pkg/model"

// FormatStep implements ActionStepFormatter's (actionType, arrivedVia) to
// SkillStep mapping, authoritative per §6's table. Unknown action types
// default to tap.
func FormatStep(action model.ActionType, target string) model.SkillStep {
	switch action {
	case model.ActionLaunch:
		return model.SkillStep{Kind: model.StepLaunch, Target: target}
	case model.ActionTypeText:
		return model.SkillStep{Kind: model.StepType, Target: target}
	case model.ActionPressKey:
		return model.SkillStep{Kind: model.StepPressKey, Target: target}
	case model.ActionSwipe:
		return model.SkillStep{Kind: model.StepSwipe, Target: target}
	case model.ActionScrollTo:
		return model.SkillStep{Kind: model.StepScrollTo, Target: target}
	case model.ActionLongPress:
		return model.SkillStep{Kind: model.StepSwipe, Target: target, Note: "long_press"}
	case model.ActionRemember:
		return model.SkillStep{Kind: model.StepAssertVisible, Target: target, Note: "remember"}
	case model.ActionScreenshot:
		return model.SkillStep{Kind: model.StepScreenshot, Target: target}
	case model.ActionAssertVisible:
		return model.SkillStep{Kind: model.StepAssertVisible, Target: target}
	case model.ActionAssertNot:
		return model.SkillStep{Kind: model.StepAssertNotVisible, Target: target}
	case model.ActionOpenURL:
		return model.SkillStep{Kind: model.StepOpenURL, Target: target}
	case model.ActionPressHome:
		return model.SkillStep{Kind: model.StepHome}
	case model.ActionTap, "":
		return model.SkillStep{Kind: model.StepTap, Target: target}
	default:
		return model.SkillStep{Kind: model.StepTap, Target: target}
	}
}

// RenderStep renders a SkillStep as the human-readable line from §6's
// table.
func RenderStep(s model.SkillStep) string {
	switch s.Kind {
	case model.StepLaunch:
		return "Launch **" + s.Target + "**"
	case model.StepType:
		return `Type "` + s.Target + `"`
	case model.StepPressKey:
		return "Press **" + s.Target + "**"
	case model.StepSwipe:
		if s.Note == "long_press" {
			return `long_press: "` + s.Target + `"`
		}
		return `swipe: "` + s.Target + `"`
	case model.StepScrollTo:
		return `Scroll until "` + s.Target + `" is visible`
	case model.StepAssertVisible:
		if s.Note == "remember" {
			return "Remember: " + s.Target
		}
		return `Verify "` + s.Target + `" is visible`
	case model.StepAssertNotVisible:
		return `Verify "` + s.Target + `" is not visible`
	case model.StepScreenshot:
		return `Screenshot: "` + s.Target + `"`
	case model.StepOpenURL:
		return "Open URL: " + s.Target
	case model.StepHome:
		return "Press Home"
	case model.StepSkipped:
		return "Skipped: " + s.Note
	case model.StepTap:
		fallthrough
	default:
		return `Tap "` + s.Target + `"`
	}
}

// StepsForPath formats every screen in screens after the first (which has
// no entry step, §4.9 step 3) into an ordered SkillStep list.
func StepsForPath(screens []ExploredScreen) []model.SkillStep {
	steps := make([]model.SkillStep, 0, len(screens))
	for i, s := range screens {
		if i == 0 {
			continue
		}
		steps = append(steps, FormatStep(s.Action, s.ElementText))
	}
	return steps
}
