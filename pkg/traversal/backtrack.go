package traversal

import (
	"context"
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/fingerprint"
	"github.com/corvid-labs/skillwalk/pkg/graph"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/strategy"
)

// backChevrons holds the three back-chevron glyphs recognized by §4.7.2:
// "<", U+2039 (single angle quote), and U+276E (heavy angle ornament).
var backChevrons = map[string]struct{}{
	"<":      {},
	"‹": {},
	"❮": {},
}

// findBackChevron looks for a trimmed back-chevron glyph in the top ~15%
// of the screen (§4.7.2's preferred backtrack strategy).
func findBackChevron(elements []model.TapPoint, screenHeight float64) (model.TapPoint, bool) {
	if screenHeight <= 0 {
		return model.TapPoint{}, false
	}
	for _, e := range elements {
		if _, ok := backChevrons[strings.TrimSpace(e.Text)]; !ok {
			continue
		}
		if e.TapY <= screenHeight*0.15 {
			return e, true
		}
	}
	return model.TapPoint{}, false
}

// tapBack performs the Strategy's preferred backtrack method (§4.10),
// falling back to the chevron-or-canonical tap for BacktrackTapBack (and
// for any method the boundary can't otherwise express).
func (e *Explorer) tapBack(ctx context.Context, elements []model.TapPoint, hints model.ScreenHints, depth int) error {
	switch e.strat.BacktrackMethod(hints, depth) {
	case strategy.BacktrackPressBack:
		if _, err := e.input.PressKey(ctx, "back", nil); err != nil {
			return err
		}
	case strategy.BacktrackPressHome:
		if _, err := e.input.PressKey(ctx, "home", nil); err != nil {
			return err
		}
	case strategy.BacktrackSwipeBack:
		fromX, toX := 0.0, hints.WindowWidth*0.8
		y := hints.WindowHeight * 0.5
		if err := e.input.Swipe(ctx, fromX, y, toX, y, 250); err != nil {
			return err
		}
	case strategy.BacktrackNone:
		// no gesture to perform; still settle before the next OCR pass.
	default:
		if chevron, ok := findBackChevron(elements, hints.WindowHeight); ok {
			if err := e.input.Tap(ctx, chevron.TapX, chevron.TapY); err != nil {
				return err
			}
		} else {
			x := hints.WindowWidth * CanonicalBackX
			y := hints.WindowHeight * CanonicalBackY
			if err := e.input.Tap(ctx, x, y); err != nil {
				return err
			}
		}
	}
	e.clk.Sleep(ctx, e.settle)
	return nil
}

// verifyAgainst reports whether elements is structurally equivalent to the
// node at expectedFP.
func verifyAgainst(g *graph.Graph, expectedFP string, elements []model.TapPoint, screenHeight float64, icons int) bool {
	node, ok := g.Node(expectedFP)
	if !ok {
		return false
	}
	_, want := fingerprint.Compute(node.Elements, node.Hints.WindowHeight, node.Icons)
	_, got := fingerprint.Compute(elements, screenHeight, icons)
	return fingerprint.Equivalent(want, got)
}

// backtrackOnce performs a single back tap and verifies the landing
// against expectedFP (§4.7.2's backtrack verification). On mismatch it
// retries the tap once; if still mismatched it asks the graph for a
// matching node, falling back to trusting expectedFP.
func (e *Explorer) backtrackOnce(ctx context.Context, visibleElements []model.TapPoint, hints model.ScreenHints, expectedFP string, depth int) string {
	if err := e.tapBack(ctx, visibleElements, hints, depth); err != nil {
		return expectedFP
	}
	desc, err := e.describer.Describe(ctx)
	if err != nil {
		return expectedFP
	}
	e.dismissAlerts(ctx, &desc)
	g := e.sess.Graph()
	if verifyAgainst(g, expectedFP, desc.Elements, desc.Hints.WindowHeight, desc.Icons) {
		return expectedFP
	}

	if err := e.tapBack(ctx, desc.Elements, desc.Hints, depth); err == nil {
		desc2, err2 := e.describer.Describe(ctx)
		if err2 == nil {
			e.dismissAlerts(ctx, &desc2)
			if verifyAgainst(g, expectedFP, desc2.Elements, desc2.Hints.WindowHeight, desc2.Icons) {
				return expectedFP
			}
			if fp, ok := g.FindMatchingNode(desc2.Elements, desc2.Icons, desc2.Hints.WindowHeight); ok {
				return fp
			}
		}
	}
	return expectedFP
}

func (e *Explorer) stepReturning(ctx context.Context) StepResult {
	e.mu.Lock()
	k := e.state.DepthRemaining
	e.mu.Unlock()

	g := e.sess.Graph()
	cur, _ := g.Node(g.CurrentFingerprint())
	if err := e.tapBack(ctx, cur.Elements, cur.Hints, cur.Depth); err != nil {
		return StepResult{Kind: ResultPaused, Reason: "back tap failed"}
	}

	k--
	if k > 0 {
		e.mu.Lock()
		e.state.DepthRemaining = k
		e.mu.Unlock()
		return StepResult{Kind: ResultBacktracked, From: cur.Fingerprint}
	}

	desc, err := e.describer.Describe(ctx)
	if err != nil {
		g.SetCurrentFingerprint(g.Root())
		e.mu.Lock()
		e.state = State{Kind: PhaseAtRoot}
		e.mu.Unlock()
		return StepResult{Kind: ResultBacktracked, From: cur.Fingerprint, To: g.Root()}
	}
	e.dismissAlerts(ctx, &desc)
	landedFP := g.Root()
	if !verifyAgainst(g, g.Root(), desc.Elements, desc.Hints.WindowHeight, desc.Icons) {
		if fp, ok := g.FindMatchingNode(desc.Elements, desc.Icons, desc.Hints.WindowHeight); ok {
			landedFP = fp
		}
	}
	g.SetCurrentFingerprint(landedFP)
	e.mu.Lock()
	e.state = State{Kind: PhaseAtRoot}
	e.mu.Unlock()
	return StepResult{Kind: ResultBacktracked, From: cur.Fingerprint, To: landedFP}
}
