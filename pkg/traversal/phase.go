// Package traversal implements the breadth-first explorer (spec §4.7): a
// phase machine driven one tick at a time, synthesizing a small number of
// input events (a tap plus any alert-dismissal and back taps it triggers)
// and OCR calls per step.
package traversal

import "github.com/corvid-labs/skillwalk/pkg/model"

// PhaseKind tags the explorer's current phase. Go has no sum types, so the
// four working phases, the terminal PhaseFinished, and their payloads live
// in one State struct with only the
// fields relevant to Kind populated — the same tagged-variant idiom used
// throughout this module.
type PhaseKind int

const (
	PhaseAtRoot PhaseKind = iota
	PhaseNavigating
	PhaseExploring
	PhaseReturning
	PhaseFinished
)

// State is the explorer's current phase and its payload.
type State struct {
	Kind           PhaseKind
	Target         model.FrontierScreen // navigating, exploring
	PathIndex      int                  // navigating
	DepthRemaining int                  // returning
}

// ResultKind tags a Step's outcome.
type ResultKind int

const (
	ResultContinue ResultKind = iota
	ResultBacktracked
	ResultPaused
	ResultFinished
)

// StepResult is what one Step call returns (§6: "advance by one tick").
type StepResult struct {
	Kind        ResultKind
	Description string
	From, To    string // ResultBacktracked
	Reason      string // ResultPaused
	Bundle      model.SessionBundle // ResultFinished
}
