// Package alert implements AlertDetector (spec §4.8): recognizing and
// dismissing system/app alert dialogs encountered mid-traversal.
package alert

import "strings"

// MaxDismissAttempts bounds the dismiss-retry loop.
const MaxDismissAttempts = 3

// priorityButtons is ordered lowest-priority-number-first: the most
// conservative dismissal wins when more than one candidate is present.
var priorityButtons = []string{
	"don't allow",
	"ask app not to track",
	"not now",
	"cancel",
	"dismiss",
	"no thanks",
	"later",
	"close",
	"ok",
	"allow",
}

var titlePatterns = []string{
	"would like to",
	"wants to access",
	"allow tracking",
	"rate",
	"enjoying",
	"how would you rate",
	"tap a star",
}

// IsAlert reports whether elements looks like an alert dialog: fewer than
// 10 elements, at least 2, and either ≥2 priority buttons or ≥1 priority
// button plus a title pattern.
func IsAlert(elements []string) bool {
	if len(elements) < 2 || len(elements) >= 10 {
		return false
	}
	buttons := 0
	hasTitle := false
	for _, e := range elements {
		lower := strings.ToLower(strings.TrimSpace(e))
		if matchesButton(lower) {
			buttons++
		}
		if containsTitlePattern(lower) {
			hasTitle = true
		}
	}
	if buttons >= 2 {
		return true
	}
	return buttons >= 1 && hasTitle
}

// DismissTarget returns the element matching the lowest-priority button in
// elements, i.e. the most conservative dismissal (§4.8; property 10: given
// the same element set, the chosen target never changes).
func DismissTarget(elements []string) (string, bool) {
	bestIdx := -1
	var best string
	for _, e := range elements {
		lower := strings.ToLower(strings.TrimSpace(e))
		for i, p := range priorityButtons {
			if lower == p {
				if bestIdx == -1 || i < bestIdx {
					bestIdx = i
					best = e
				}
				break
			}
		}
	}
	return best, bestIdx != -1
}

func matchesButton(lower string) bool {
	for _, p := range priorityButtons {
		if lower == p {
			return true
		}
	}
	return false
}

func containsTitlePattern(lower string) bool {
	for _, p := range titlePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
