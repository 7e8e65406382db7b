package traversal

import (
	"context"
	"sync"
	"time"

	"github.com/corvid-labs/skillwalk/pkg/alert"
	"github.com/corvid-labs/skillwalk/pkg/boundary"
	"github.com/corvid-labs/skillwalk/pkg/clock"
	"github.com/corvid-labs/skillwalk/pkg/component"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/session"
	"github.com/corvid-labs/skillwalk/pkg/strategy"
)

// CanonicalBackX and CanonicalBackY are the canonical iOS back-button
// position as a fraction of window width/height (§4.7.2), used when no
// back-chevron element is visible.
const (
	CanonicalBackX = 0.112
	CanonicalBackY = 0.135
)

// SettleDelay is the default wait between a synthesized event and the next
// OCR pass.
const SettleDelay = 400 * time.Millisecond

// Explorer drives one ExplorationSession's traversal, one tick at a time.
// Zero value is not usable; use New.
type Explorer struct {
	mu sync.Mutex

	sess       *session.Session
	describer  boundary.ScreenDescriber
	input      boundary.InputProvider
	clk        clock.Clock
	strat      strategy.Strategy
	budgetCfg  model.ExplorationBudget
	defs       []component.Definition
	settle     time.Duration

	frontier    []model.FrontierScreen
	state       State
	startTime   time.Time
	actionCount map[string]int
}

// New constructs an Explorer that has not yet run; call Start before Step.
func New(sess *session.Session, describer boundary.ScreenDescriber, input boundary.InputProvider, clk clock.Clock, strat strategy.Strategy, b model.ExplorationBudget) *Explorer {
	return &Explorer{
		sess: sess, describer: describer, input: input, clk: clk, strat: strat,
		budgetCfg: b, defs: component.DefaultDefinitions(), settle: SettleDelay,
		actionCount: make(map[string]int),
	}
}

// Start seeds the frontier with the root at depth 0 and enters atRoot.
func (e *Explorer) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frontier = []model.FrontierScreen{{Fingerprint: e.sess.Graph().Root(), DiscoveryDepth: 0}}
	e.state = State{Kind: PhaseAtRoot}
	e.startTime = e.clk.Now()
	e.actionCount = make(map[string]int)
}

// Step advances the explorer by one tick (§4.7).
func (e *Explorer) Step(ctx context.Context) StepResult {
	e.mu.Lock()
	elapsed := e.clk.Now().Sub(e.startTime)
	exhausted := elapsed >= e.budgetCfg.MaxWallClock || e.sess.Graph().NodeCount() >= e.budgetCfg.MaxScreens
	kind := e.state.Kind
	e.mu.Unlock()

	if exhausted {
		return e.finish()
	}

	switch kind {
	case PhaseAtRoot:
		return e.stepAtRoot(ctx)
	case PhaseNavigating:
		return e.stepNavigating(ctx)
	case PhaseExploring:
		return e.stepExploring(ctx)
	case PhaseReturning:
		return e.stepReturning(ctx)
	default:
		return e.finish()
	}
}

func (e *Explorer) stepAtRoot(ctx context.Context) StepResult {
	e.mu.Lock()
	if len(e.frontier) == 0 {
		e.mu.Unlock()
		return e.finish()
	}
	target := e.frontier[0]
	e.frontier = e.frontier[1:]

	if len(target.PathFromRoot) == 0 {
		e.sess.Graph().SetCurrentFingerprint(target.Fingerprint)
		e.state = State{Kind: PhaseExploring, Target: target}
		e.mu.Unlock()
		return StepResult{Kind: ResultContinue, Description: "exploring root"}
	}
	e.state = State{Kind: PhaseNavigating, Target: target, PathIndex: 0}
	e.mu.Unlock()
	return e.stepNavigating(ctx)
}

func (e *Explorer) stepNavigating(ctx context.Context) StepResult {
	e.mu.Lock()
	target := e.state.Target
	i := e.state.PathIndex
	e.mu.Unlock()

	seg := target.PathFromRoot[i]
	if err := e.input.Tap(ctx, seg.TapX, seg.TapY); err != nil {
		return e.navigateFailed(i)
	}
	e.clk.Sleep(ctx, e.settle)

	desc, err := e.describer.Describe(ctx)
	if err != nil {
		return e.navigateFailed(i)
	}
	e.dismissAlerts(ctx, &desc)

	if i+1 == len(target.PathFromRoot) {
		e.sess.Graph().SetCurrentFingerprint(target.Fingerprint)
		e.mu.Lock()
		e.state = State{Kind: PhaseExploring, Target: target}
		e.mu.Unlock()
		return StepResult{Kind: ResultContinue, Description: "arrived at " + target.Fingerprint}
	}

	e.mu.Lock()
	e.state.PathIndex = i + 1
	e.mu.Unlock()
	return StepResult{Kind: ResultContinue, Description: "navigating"}
}

// navigateFailed implements §4.7 step 3's OCR-failure handling: on the first
// hop it skips the frontier entry and returns to atRoot without backing out
// of that hop's tap; deeper, it backtracks the i+1 taps already made.
func (e *Explorer) navigateFailed(i int) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i == 0 {
		e.state = State{Kind: PhaseAtRoot}
	} else {
		e.state = State{Kind: PhaseReturning, DepthRemaining: i + 1}
	}
	return StepResult{Kind: ResultPaused, Reason: "ocr failure during navigation"}
}

func (e *Explorer) finish() StepResult {
	e.mu.Lock()
	e.state = State{Kind: PhaseFinished}
	e.mu.Unlock()
	return StepResult{Kind: ResultFinished, Bundle: e.sess.Finalize()}
}

// dismissAlerts runs the OCR/dismiss retry loop (§4.8) and overwrites desc
// with the alert-free result.
func (e *Explorer) dismissAlerts(ctx context.Context, desc *boundary.Description) {
	for attempt := 0; attempt < alert.MaxDismissAttempts; attempt++ {
		texts := elementTexts(desc.Elements)
		if !alert.IsAlert(texts) {
			return
		}
		target, ok := alert.DismissTarget(texts)
		if !ok {
			return
		}
		x, y := tapPointFor(desc.Elements, target)
		if err := e.input.Tap(ctx, x, y); err != nil {
			return
		}
		e.clk.Sleep(ctx, e.settle)
		next, err := e.describer.Describe(ctx)
		if err != nil {
			return
		}
		*desc = next
	}
}

func elementTexts(elements []model.TapPoint) []string {
	out := make([]string, len(elements))
	for i, e := range elements {
		out[i] = e.Text
	}
	return out
}

func tapPointFor(elements []model.TapPoint, text string) (float64, float64) {
	for _, e := range elements {
		if e.Text == text {
			return e.TapX, e.TapY
		}
	}
	return 0, 0
}

