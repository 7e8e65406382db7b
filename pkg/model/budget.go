package model

import "time"

// ScrollDedup selects the scroll-merge deduplication strategy (spec §9 open
// question 2). Only ScrollDedupExact is implemented by the traversal's
// scroll path; the others are accepted as configuration, but the scroll
// merge does not read this field and always matches element text exactly
// (see DESIGN.md).
type ScrollDedup string

const (
	ScrollDedupExact        ScrollDedup = "exact"
	ScrollDedupEditDistance ScrollDedup = "editDistance"
	ScrollDedupSpatial      ScrollDedup = "spatial"
)

// ExplorationBudget bounds a traversal (§3).
type ExplorationBudget struct {
	MaxDepth             int
	MaxScreens           int
	MaxWallClock         time.Duration
	MaxInteractionsPer   int
	ScrollAttemptsPer    int
	ScoutTapsPerScreen   int
	SkipPatterns         []string
	ScrollDedup          ScrollDedup
	ReplayVerify         bool
}

// DefaultBudget returns sensible defaults, merged with the built-in safety
// list in the budget package at construction time (not here, to avoid an
// import cycle back into pkg/budget's pattern tables).
func DefaultBudget() ExplorationBudget {
	return ExplorationBudget{
		MaxDepth:           6,
		MaxScreens:         200,
		MaxWallClock:       10 * time.Minute,
		MaxInteractionsPer: 25,
		ScrollAttemptsPer:  3,
		ScoutTapsPerScreen: 5,
		ScrollDedup:        ScrollDedupExact,
		ReplayVerify:       false,
	}
}
