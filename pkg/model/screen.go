package model

// ScreenType classifies the overall shape of a screen (§3).
type ScreenType int

const (
	ScreenUnknown ScreenType = iota
	ScreenTabRoot
	ScreenList
	ScreenDetail
	ScreenModal
	ScreenSettings
)

func (t ScreenType) String() string {
	switch t {
	case ScreenTabRoot:
		return "tabRoot"
	case ScreenList:
		return "list"
	case ScreenDetail:
		return "detail"
	case ScreenModal:
		return "modal"
	case ScreenSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ActionType tags how a transition or skill step was synthesized.
type ActionType string

const (
	ActionTap           ActionType = "tap"
	ActionTypeText      ActionType = "type"
	ActionPressKey      ActionType = "press_key"
	ActionSwipe         ActionType = "swipe"
	ActionScrollTo      ActionType = "scroll_to"
	ActionLongPress     ActionType = "long_press"
	ActionRemember      ActionType = "remember"
	ActionScreenshot    ActionType = "screenshot"
	ActionAssertVisible ActionType = "assert_visible"
	ActionAssertNot     ActionType = "assert_not_visible"
	ActionOpenURL       ActionType = "open_url"
	ActionPressHome     ActionType = "press_home"
	ActionLaunch        ActionType = "launch"
)

// TraversalPhase is the per-screen exhaustion state kept on a ScreenNode
// (distinct from the explorer's own top-level Phase in pkg/traversal).
type TraversalPhase int

const (
	PhaseScout TraversalPhase = iota
	PhaseDive
	PhaseExhausted
)

// ScoutResult records what happened the one time an element was scouted.
type ScoutResult int

const (
	ScoutNavigated ScoutResult = iota
	ScoutNoChange
)

// PathSegment is one hop of a replayable path from the root.
type PathSegment struct {
	ElementText string
	TapX, TapY  float64
}

// FrontierScreen is a queue entry in the breadth-first explorer: a
// discovered-but-unexplored screen with its replay path from the root.
type FrontierScreen struct {
	Fingerprint    string
	PathFromRoot   []PathSegment
	DiscoveryDepth int
}

// ScreenNode is a discovered screen. Icons/Hints/Screenshot are captured at
// first discovery and never change; Elements starts as the first-discovery
// set and grows only by scroll merges; VisitedElements, ScrollCount,
// ScoutResults, Phase, and Plan mutate as exploration proceeds. NavigationGraph
// owns all mutation under its mutex; this struct itself has no lock.
type ScreenNode struct {
	Fingerprint     string
	Elements        []TapPoint
	Icons           int
	Hints           ScreenHints
	Depth           int
	ScreenType      ScreenType
	ScreenshotPNG   string // base64
	VisitedElements map[string]struct{}
	ScrollCount     int
	ScoutResults    map[string]ScoutResult
	Phase           TraversalPhase
	Plan            []PlannedInteraction
	HasPlan         bool
}

// ScreenHints are structural signals passed alongside OCR elements by the
// external ScreenDescriber (back-chevron visibility, bounding hints, etc.)
// that the core's classifiers/strategies use but never produce themselves.
type ScreenHints struct {
	HasBackChevron bool
	BackChevronX   float64
	BackChevronY   float64
	WindowWidth    float64
	WindowHeight   float64
}

// PlannedInteraction is one ranked candidate in a ScreenNode's cached plan.
type PlannedInteraction struct {
	Text       string
	TapX, TapY float64
	Score      float64
	Component  *ScreenComponent
}

// NavigationEdge connects two nodes by fingerprint, in discovery order.
type NavigationEdge struct {
	FromFingerprint string
	ToFingerprint   string
	Action          ActionType
	ElementText     string
}

// TransitionResult is recordTransition's result tag (§4.5).
type TransitionResult int

const (
	ResultNewScreen TransitionResult = iota
	ResultRevisited
	ResultDuplicate
)

// GraphSnapshot is the immutable export produced by NavigationGraph.finalize.
type GraphSnapshot struct {
	Nodes map[string]*ScreenNode
	Edges []NavigationEdge
	Root  string
}
