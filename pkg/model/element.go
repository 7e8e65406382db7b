// Package model holds the data types shared by every exploration-core
// package: the OCR-derived element types, the graph's node/edge shapes, the
// exploration budget, and the skill-step vocabulary (spec §3).
package model

// TapPoint is a single OCR-detected text element. Coordinates are window
// points with the origin top-left. Immutable once constructed.
type TapPoint struct {
	Text       string
	TapX       float64
	TapY       float64
	Confidence float64
}

// Role is the classifier's verdict on an element's function.
type Role int

const (
	RoleNavigation Role = iota
	RoleStateChange
	RoleInfo
	RoleDestructive
	RoleDecoration
)

func (r Role) String() string {
	switch r {
	case RoleNavigation:
		return "navigation"
	case RoleStateChange:
		return "stateChange"
	case RoleInfo:
		return "info"
	case RoleDestructive:
		return "destructive"
	case RoleDecoration:
		return "decoration"
	default:
		return "unknown"
	}
}

// ClassifiedElement augments a TapPoint with the classifier's verdict.
// Immutable once constructed.
type ClassifiedElement struct {
	TapPoint
	Role              Role
	HasChevronContext bool
}

// ClickResult is what tapping a ScreenComponent is expected to do.
type ClickResult int

const (
	ClickNavigates ClickResult = iota
	ClickToggles
	ClickDismisses
	ClickNone
)

// ScreenComponent is an optional group of ClassifiedElements matched
// against a named component definition (§4.3).
type ScreenComponent struct {
	Kind                       string
	Elements                   []ClassifiedElement
	TapX, TapY                 float64
	YMin, YMax                 float64
	Clickable                  bool
	ClickResult                ClickResult
	AbsorbsBelow               float64
	AbsorbInfoOrDecorationOnly bool
}

// Text returns the primary label used for ranking/visited-set bookkeeping:
// the first element's text, or the component kind if it has none.
func (c ScreenComponent) Text() string {
	if len(c.Elements) > 0 {
		return c.Elements[0].Text
	}
	return c.Kind
}
