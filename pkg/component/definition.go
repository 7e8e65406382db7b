// Package component optionally groups classified elements into matched UI
// components (spec §4.3): a loadable table of definitions, a per-row
// scorer, and absorption post-processing. The detector is optional — when
// no definitions are loaded, pkg/planner falls back to element-level
// ranking.
package component

import "regexp"

// Zone is where on screen a row sits.
type Zone int

const (
	ZoneContent Zone = iota
	ZoneNavBar
	ZoneTabBar
)

// ChevronMode constrains whether a definition wants, forbids, or merely
// prefers a chevron in the row.
type ChevronMode int

const (
	ChevronIndifferent ChevronMode = iota
	ChevronRequired
	ChevronForbidden
	ChevronPreferred
)

// AbsorbCondition gates which rows below an absorbing component get pulled
// in.
type AbsorbCondition int

const (
	AbsorbAny AbsorbCondition = iota
	AbsorbInfoOrDecorationOnly
)

// Definition describes one named component shape (table-row-disclosure,
// tab-bar-item, dismiss-button, etc.).
type Definition struct {
	Name string
	Zone Zone

	MinCount int
	MaxCount int // 0 means unbounded

	Chevron ChevronMode

	MaxRowHeight float64 // 0 means unbounded

	RequireNumeric  bool
	RequireLongText bool
	RequireDismiss  bool

	MinAvgConfidence float64
	TextPattern      *regexp.Regexp

	ClickResultKind string // "navigates" | "toggles" | "dismisses" | "none"

	AbsorbsBelowWithinPt float64
	AbsorbCondition      AbsorbCondition
}

// DefaultDefinitions is a small built-in catalog covering the component
// kinds spec §4.3 names by example. Loaded once into an immutable slice at
// session start (Design Notes: "static catalog singletons... load into an
// immutable vector... pass by reference to the detector").
func DefaultDefinitions() []Definition {
	dismissRe := regexp.MustCompile(`(?i)^(done|close|cancel|dismiss|x|ok)$`)
	return []Definition{
		{
			Name:            "table-row-disclosure",
			Zone:            ZoneContent,
			MinCount:        1,
			MaxCount:        4,
			Chevron:         ChevronRequired,
			ClickResultKind: "navigates",
		},
		{
			Name:            "tab-bar-item",
			Zone:            ZoneTabBar,
			MinCount:        1,
			MaxCount:        2,
			Chevron:         ChevronForbidden,
			MaxRowHeight:    60,
			ClickResultKind: "navigates",
		},
		{
			Name:                 "dismiss-button",
			Zone:                 ZoneNavBar,
			MinCount:             1,
			MaxCount:             1,
			Chevron:              ChevronForbidden,
			RequireDismiss:       true,
			TextPattern:          dismissRe,
			ClickResultKind:      "dismisses",
			AbsorbsBelowWithinPt: 0,
		},
		{
			Name:            "toggle-row",
			Zone:            ZoneContent,
			MinCount:        2,
			MaxCount:        3,
			Chevron:         ChevronForbidden,
			ClickResultKind: "toggles",
		},
		{
			Name:                 "section-header",
			Zone:                 ZoneContent,
			MinCount:             1,
			MaxCount:             1,
			Chevron:              ChevronForbidden,
			RequireLongText:      false,
			ClickResultKind:      "none",
			AbsorbsBelowWithinPt: 40,
			AbsorbCondition:      AbsorbInfoOrDecorationOnly,
		},
	}
}
