package component

import (
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/classify"
	"github.com/corvid-labs/skillwalk/pkg/model"
)

// rowProps is the per-row feature vector scored against each Definition.
type rowProps struct {
	elements       []model.ClassifiedElement
	count          int
	hasChevron     bool
	hasNumeric     bool
	hasLongText    bool
	hasDismiss     bool
	zone           Zone
	avgConfidence  float64
	bareDigitCount int
	yMin, yMax     float64
}

var dismissWords = map[string]struct{}{
	"done": {}, "close": {}, "cancel": {}, "dismiss": {}, "x": {}, "ok": {},
}

// Detect groups classified elements into rows, scores each row against defs,
// and returns one ScreenComponent per row (a per-element fallback component
// for rows that match no definition), with absorption applied afterward.
// An empty defs slice makes Detect a no-op (the planner then ranks
// elements directly).
func Detect(elements []model.ClassifiedElement, defs []Definition, screenWidth, screenHeight float64) []model.ScreenComponent {
	if len(defs) == 0 {
		return nil
	}

	points := make([]model.TapPoint, len(elements))
	for i, e := range elements {
		points[i] = e.TapPoint
	}
	rowGroups := classify.GroupRows(points)

	byText := make(map[string]model.ClassifiedElement, len(elements))
	for _, e := range elements {
		byText[e.Text] = e
	}

	components := make([]model.ScreenComponent, 0, len(rowGroups))
	for _, g := range rowGroups {
		rowEls := make([]model.ClassifiedElement, 0, len(g))
		for _, p := range g {
			if ce, ok := byText[p.Text]; ok {
				rowEls = append(rowEls, ce)
			}
		}
		props := buildRowProps(rowEls, screenWidth, screenHeight)

		best, ok := bestMatch(props, defs)
		if !ok {
			components = append(components, fallbackComponents(rowEls)...)
			continue
		}
		components = append(components, buildComponent(best, props))
	}

	return absorb(components)
}

func buildRowProps(elements []model.ClassifiedElement, screenWidth, screenHeight float64) rowProps {
	p := rowProps{elements: elements, count: len(elements)}
	if len(elements) == 0 {
		return p
	}
	var sumConf float64
	yMin, yMax := elements[0].TapY, elements[0].TapY
	for _, e := range elements {
		text := strings.TrimSpace(e.Text)
		if endsWithAnyChevron(text) {
			p.hasChevron = true
		}
		if isBareDigits(text) {
			p.bareDigitCount++
		}
		if len(text) > 50 {
			p.hasLongText = true
		}
		if _, ok := dismissWords[strings.ToLower(text)]; ok {
			p.hasDismiss = true
		}
		if e.Role == model.RoleInfo && hasDigit(text) {
			p.hasNumeric = true
		}
		sumConf += e.Confidence
		if e.TapY < yMin {
			yMin = e.TapY
		}
		if e.TapY > yMax {
			yMax = e.TapY
		}
	}
	p.avgConfidence = sumConf / float64(len(elements))
	p.yMin, p.yMax = yMin, yMax
	p.zone = zoneFor(yMin, screenHeight)
	return p
}

// zoneFor classifies a row's zone from its top Y relative to screen height:
// the bottom 12% is the tab bar, the top 15% (status-bar strip included) is
// the nav bar, everything else is content.
func zoneFor(y, screenHeight float64) Zone {
	if screenHeight <= 0 {
		return ZoneContent
	}
	if y >= screenHeight*0.88 {
		return ZoneTabBar
	}
	if y < screenHeight*0.15 {
		return ZoneNavBar
	}
	return ZoneContent
}

func endsWithAnyChevron(text string) bool {
	for _, c := range []string{">", "›", "❯"} {
		if strings.HasSuffix(text, c) {
			return true
		}
	}
	return false
}

func isBareDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(text) <= 3
}

func hasDigit(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
