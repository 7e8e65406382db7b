// Package session implements ExplorationSession (spec §4.6): the
// accumulator that owns a NavigationGraph, a goal queue, and the
// append-only screen and action logs for one exploration run.
package session

import (
	"sync"

	"github.com/corvid-labs/skillwalk/pkg/fingerprint"
	"github.com/corvid-labs/skillwalk/pkg/graph"
	"github.com/corvid-labs/skillwalk/pkg/model"
)

// ScreenClassifier assigns a ScreenType to a freshly-captured screen. The
// concrete mobile/desktop/social variants live in pkg/strategy; Session
// only depends on this narrow function type to avoid an import cycle.
type ScreenClassifier func(elements []model.TapPoint, hints model.ScreenHints) model.ScreenType

// Session is the ExplorationSession. Zero value is not usable; use New.
type Session struct {
	mu sync.Mutex

	classify ScreenClassifier
	graph    *graph.Graph

	appName string
	goal    string
	goals   []string
	mode    model.SessionMode

	screens []model.ScreenLogEntry
	actions []model.ActionLogEntry

	baseline       []model.TapPoint
	prevStructural []string
	hasPrevious    bool
	started        bool
	active         bool
	tick           int
}

// New constructs a Session bound to classify, not yet started.
func New(classify ScreenClassifier) *Session {
	return &Session{classify: classify, graph: graph.New()}
}

// Start begins a run (or a new goal within one): appName, the current
// goal, and an optional queue of further goals.
func (s *Session) Start(appName, goal string, goals []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(appName, goal, goals)
}

func (s *Session) resetLocked(appName, goal string, goals []string) {
	s.appName = appName
	s.goal = goal
	s.goals = append([]string(nil), goals...)
	if goal != "" || len(goals) > 0 {
		s.mode = model.ModeGoalDriven
	} else {
		s.mode = model.ModeDiscovery
	}
	s.graph = graph.New()
	s.screens = nil
	s.actions = nil
	s.baseline = nil
	s.prevStructural = nil
	s.hasPrevious = false
	s.started = false
	s.active = true
	s.tick = 0
}

// Capture ingests one OCR pass. It is the sole entry point onto the
// graph (§4.6): every tick, whether it lands on the flow-start screen,
// a fresh screen, a revisit, or a rejected duplicate, goes through here
// so the screen log and action log stay the session's source of truth
// for "stuck" detection (§3, §5), not just the graph's node count.
//
// It returns the transition result, the landed fingerprint, and whether
// the capture was accepted. On a rejected duplicate it records the
// action-log entry itself and returns (ResultDuplicate, currentFingerprint, false).
func (s *Session) Capture(elements []model.TapPoint, hints model.ScreenHints, icons int, actionType model.ActionType, arrivedVia, screenshotPNG string) (model.TransitionResult, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, newStructural := fingerprint.Compute(elements, hints.WindowHeight, icons)

	if s.hasPrevious && fingerprint.Equivalent(newStructural, s.prevStructural) {
		s.actions = append(s.actions, model.ActionLogEntry{
			Tick: s.tick, ActionType: actionType, ElementText: arrivedVia,
			Accepted: false, Result: model.ResultDuplicate,
		})
		s.tick++
		return model.ResultDuplicate, s.graph.CurrentFingerprint(), false
	}

	screenType := s.classify(elements, hints)

	var fp string
	var result model.TransitionResult
	if !s.started {
		s.baseline = append([]model.TapPoint(nil), elements...)
		fp = s.graph.Start(elements, icons, hints, screenshotPNG, screenType)
		s.started = true
		result = model.ResultNewScreen
	} else {
		result, fp = s.graph.RecordTransition(elements, icons, hints, screenshotPNG, actionType, arrivedVia, screenType)
	}

	node, _ := s.graph.Node(fp)
	s.screens = append(s.screens, model.ScreenLogEntry{
		Fingerprint: fp, ScreenType: screenType, Depth: node.Depth,
		ElementText: arrivedVia, ArrivedVia: actionType,
	})
	s.actions = append(s.actions, model.ActionLogEntry{
		Tick: s.tick, ActionType: actionType, ElementText: arrivedVia,
		Accepted: true, Result: result,
	})
	s.prevStructural = newStructural
	s.hasPrevious = true
	s.tick++
	return result, fp, true
}

// Finalize returns the current bundle. If further goals are queued it
// advances to the next one (clearing screens, actions, baseline, and
// graph) and remains active; otherwise it deactivates the session.
func (s *Session) Finalize() model.SessionBundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	bundle := model.SessionBundle{
		AppName:  s.appName,
		Goal:     s.goal,
		Screens:  append([]model.ScreenLogEntry(nil), s.screens...),
		Snapshot: s.graph.Finalize(),
	}

	if len(s.goals) > 0 {
		next := s.goals[0]
		rest := s.goals[1:]
		s.resetLocked(s.appName, next, rest)
	} else {
		s.active = false
	}
	return bundle
}

// Active reports whether the session still has work to do.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Mode returns goalDriven or discovery.
func (s *Session) Mode() model.SessionMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Goal returns the current goal (empty string in discovery mode).
func (s *Session) Goal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goal
}

// RemainingGoals returns a copy of the not-yet-started goal queue.
func (s *Session) RemainingGoals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.goals...)
}

// ScreenCount returns the number of screens logged for the current goal.
func (s *Session) ScreenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.screens)
}

// Actions returns a copy of the action log, including rejected duplicates.
func (s *Session) Actions() []model.ActionLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ActionLogEntry(nil), s.actions...)
}

// Screens returns a copy of the screen log.
func (s *Session) Screens() []model.ScreenLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ScreenLogEntry(nil), s.screens...)
}

// Baseline returns the flow-start element set captured on first Capture.
func (s *Session) Baseline() []model.TapPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TapPoint(nil), s.baseline...)
}

// Graph exposes the NavigationGraph under construction. Graph itself is
// mutex-guarded, so sharing the pointer across the step loop and
// introspection endpoints is safe.
func (s *Session) Graph() *graph.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph
}

// AppName returns the app name supplied to Start.
func (s *Session) AppName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appName
}
