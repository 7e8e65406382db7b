package component

import (
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// bestMatch scores every definition against props; hard constraints rule a
// definition out entirely, soft ones add a bonus. Highest score wins; ties
// favor the definition earlier in defs. Returns ok=false if no definition
// satisfies every hard constraint.
func bestMatch(props rowProps, defs []Definition) (Definition, bool) {
	var best Definition
	bestScore := -1.0
	found := false

	for _, d := range defs {
		score, ok := scoreDefinition(props, d)
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore, found = d, score, true
		}
	}
	return best, found
}

func scoreDefinition(p rowProps, d Definition) (float64, bool) {
	if p.zone != d.Zone {
		return 0, false
	}
	if p.count < d.MinCount {
		return 0, false
	}
	if d.MaxCount > 0 && p.count > d.MaxCount {
		return 0, false
	}
	if d.MaxRowHeight > 0 && (p.yMax-p.yMin) > d.MaxRowHeight {
		return 0, false
	}
	switch d.Chevron {
	case ChevronRequired:
		if !p.hasChevron {
			return 0, false
		}
	case ChevronForbidden:
		if p.hasChevron {
			return 0, false
		}
	}
	if d.RequireNumeric && !p.hasNumeric {
		return 0, false
	}
	if d.RequireLongText && !p.hasLongText {
		return 0, false
	}
	if d.RequireDismiss && !p.hasDismiss {
		return 0, false
	}
	if d.MinAvgConfidence > 0 && p.avgConfidence < d.MinAvgConfidence {
		return 0, false
	}
	if d.TextPattern != nil {
		matched := false
		for _, e := range p.elements {
			if d.TextPattern.MatchString(strings.TrimSpace(e.Text)) {
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}

	score := 1.0
	switch d.Chevron {
	case ChevronRequired, ChevronForbidden:
		score += 2 // explicit mode is a stronger signal than "preferred"
	case ChevronPreferred:
		if p.hasChevron {
			score += 1
		}
	}
	// Specificity bonus: a tight count range is more specific than an
	// unbounded one.
	if d.MaxCount > 0 {
		score += 1.0 / float64(d.MaxCount-d.MinCount+1)
	}
	if d.Zone == ZoneNavBar || d.Zone == ZoneTabBar {
		score += 1
	}
	return score, true
}

func buildComponent(d Definition, p rowProps) model.ScreenComponent {
	tapX, tapY := 0.0, 0.0
	if len(p.elements) > 0 {
		tapX, tapY = p.elements[0].TapX, p.elements[0].TapY
	}
	clickable := d.ClickResultKind != "none" && d.ClickResultKind != ""
	return model.ScreenComponent{
		Kind:                       d.Name,
		Elements:                   p.elements,
		TapX:                       tapX,
		TapY:                       tapY,
		YMin:                       p.yMin,
		YMax:                       p.yMax,
		Clickable:                  clickable,
		ClickResult:                clickResultFromKind(d.ClickResultKind),
		AbsorbsBelow:               d.AbsorbsBelowWithinPt,
		AbsorbInfoOrDecorationOnly: d.AbsorbCondition == AbsorbInfoOrDecorationOnly,
	}
}

func clickResultFromKind(kind string) model.ClickResult {
	switch kind {
	case "navigates":
		return model.ClickNavigates
	case "toggles":
		return model.ClickToggles
	case "dismisses":
		return model.ClickDismisses
	default:
		return model.ClickNone
	}
}

// fallbackComponents turns an unmatched row into one component per element,
// so the planner always has a uniform ScreenComponent surface to rank.
func fallbackComponents(elements []model.ClassifiedElement) []model.ScreenComponent {
	out := make([]model.ScreenComponent, 0, len(elements))
	for _, e := range elements {
		clickable := e.Role == model.RoleNavigation || e.Role == model.RoleStateChange
		result := model.ClickNone
		if e.Role == model.RoleNavigation {
			result = model.ClickNavigates
		} else if e.Role == model.RoleStateChange {
			result = model.ClickToggles
		}
		out = append(out, model.ScreenComponent{
			Kind:        "element",
			Elements:    []model.ClassifiedElement{e},
			TapX:        e.TapX,
			TapY:        e.TapY,
			YMin:        e.TapY,
			YMax:        e.TapY,
			Clickable:   clickable,
			ClickResult: result,
		})
	}
	return out
}

// absorb applies each component's AbsorbsBelow rule: a component with a
// positive AbsorbsBelow swallows components below it, within that many
// points, whose elements all satisfy the absorb condition.
func absorb(components []model.ScreenComponent) []model.ScreenComponent {
	absorbedIdx := make(map[int]bool)
	for i := range components {
		c := &components[i]
		if c.AbsorbsBelow <= 0 {
			continue
		}
		for j := range components {
			if i == j || absorbedIdx[j] {
				continue
			}
			other := components[j]
			if other.YMin <= c.YMax {
				continue
			}
			if other.YMin-c.YMax > c.AbsorbsBelow {
				continue
			}
			if c.AbsorbInfoOrDecorationOnly && !satisfiesAbsorbCondition(other) {
				continue
			}
			c.Elements = append(c.Elements, other.Elements...)
			if other.YMax > c.YMax {
				c.YMax = other.YMax
			}
			absorbedIdx[j] = true
		}
	}

	out := make([]model.ScreenComponent, 0, len(components))
	for i, c := range components {
		if absorbedIdx[i] {
			continue
		}
		out = append(out, c)
	}
	return out
}

func satisfiesAbsorbCondition(c model.ScreenComponent) bool {
	for _, e := range c.Elements {
		if e.Role != model.RoleInfo && e.Role != model.RoleDecoration {
			return false
		}
	}
	return true
}
