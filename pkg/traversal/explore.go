package traversal

import (
	"context"

	"github.com/corvid-labs/skillwalk/pkg/boundary"
	"github.com/corvid-labs/skillwalk/pkg/budget"
	"github.com/corvid-labs/skillwalk/pkg/classify"
	"github.com/corvid-labs/skillwalk/pkg/component"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/planner"
)

func (e *Explorer) stepExploring(ctx context.Context) StepResult {
	e.mu.Lock()
	target := e.state.Target
	e.mu.Unlock()
	fp := target.Fingerprint
	g := e.sess.Graph()

	desc, err := e.describer.Describe(ctx)
	if err != nil {
		return StepResult{Kind: ResultPaused, Reason: "ocr failure while exploring"}
	}
	e.dismissAlerts(ctx, &desc)

	skipPatterns := budget.Resolve(e.budgetCfg)
	node, _ := g.Node(fp)

	plan, hasPlan := g.ScreenPlan(fp)
	if !hasPlan {
		plan = e.buildPlan(desc, skipPatterns, node.VisitedElements, g.ScoutResults(fp), node.Depth, node.ScreenType)
		g.SetScreenPlan(fp, plan)
	}

	next, hasNext := g.NextPlannedElement(fp)
	atCap := e.actionCount[fp] >= e.budgetCfg.MaxInteractionsPer

	if !hasNext || atCap {
		if g.ScrollCount(fp) < e.budgetCfg.ScrollAttemptsPer {
			return e.attemptScroll(ctx, fp, desc, skipPatterns)
		}
		return e.finishScreen(target)
	}

	if e.strat.ShouldSkip(next.Text, e.budgetCfg) {
		g.MarkElementVisited(fp, next.Text)
		return StepResult{Kind: ResultContinue, Description: "skipped " + next.Text}
	}

	g.MarkElementVisited(fp, next.Text)
	e.actionCount[fp]++
	if err := e.input.Tap(ctx, next.TapX, next.TapY); err != nil {
		return StepResult{Kind: ResultPaused, Reason: "tap failed"}
	}
	e.clk.Sleep(ctx, e.settle)

	after, err := e.describer.Describe(ctx)
	if err != nil {
		return StepResult{Kind: ResultPaused, Reason: "ocr failure after tap"}
	}
	e.dismissAlerts(ctx, &after)

	result, newFP, _ := e.sess.Capture(after.Elements, after.Hints, after.Icons, model.ActionTap, next.Text, after.ScreenshotB64)

	switch result {
	case model.ResultNewScreen:
		newNode, _ := g.Node(newFP)
		if newNode.Depth < e.budgetCfg.MaxDepth && g.NodeCount() < e.budgetCfg.MaxScreens {
			path := append(append([]model.PathSegment(nil), target.PathFromRoot...),
				model.PathSegment{ElementText: next.Text, TapX: next.TapX, TapY: next.TapY})
			e.mu.Lock()
			e.frontier = append(e.frontier, model.FrontierScreen{Fingerprint: newFP, PathFromRoot: path, DiscoveryDepth: newNode.Depth})
			e.mu.Unlock()
		}
		landed := e.backtrackOnce(ctx, after.Elements, after.Hints, fp, node.Depth)
		g.SetCurrentFingerprint(landed)
		return StepResult{Kind: ResultContinue, Description: "discovered " + newFP}
	case model.ResultRevisited:
		landed := e.backtrackOnce(ctx, after.Elements, after.Hints, fp, node.Depth)
		g.SetCurrentFingerprint(landed)
		return StepResult{Kind: ResultContinue, Description: "revisited " + newFP}
	default:
		return StepResult{Kind: ResultContinue, Description: "duplicate"}
	}
}

// buildPlan ranks the current screen's interactions (§4.4), preferring
// component-level candidates when any are clickable. The element-level
// fallback asks the Strategy to rank (§2, §4.10): Social interrupts its own
// ranking with feed content pushed last, Desktop and Mobile rank by the
// shared chevron/label/scout heuristics.
func (e *Explorer) buildPlan(desc boundary.Description, skipPatterns []string, visited map[string]struct{}, scouts map[string]model.ScoutResult, depth int, screenType model.ScreenType) []model.PlannedInteraction {
	classified := classify.Classify(desc.Elements, desc.Hints.WindowHeight, skipPatterns)
	components := component.Detect(classified, e.defs, desc.Hints.WindowWidth, desc.Hints.WindowHeight)

	if compCands := planner.PlanComponents(components, visited, scouts, desc.Hints.WindowHeight); len(compCands) > 0 {
		out := make([]model.PlannedInteraction, 0, len(compCands))
		for _, c := range compCands {
			out = append(out, model.PlannedInteraction{Text: c.Text, TapX: c.TapX, TapY: c.TapY, Score: c.Score, Component: c.Component})
		}
		return out
	}

	ranked := e.strat.RankElements(desc.Elements, desc.Icons, visited, depth, screenType, desc.Hints.WindowHeight)
	out := make([]model.PlannedInteraction, 0, len(ranked))
	for i, p := range ranked {
		out = append(out, model.PlannedInteraction{Text: p.Text, TapX: p.TapX, TapY: p.TapY, Score: float64(len(ranked) - i)})
	}
	return out
}

// attemptScroll implements scroll-to-reveal (§4.7.1): a center-X swipe from
// ~75% to ~25% down, merging any novel elements and clearing the cached
// plan so it rebuilds against the enlarged element set.
func (e *Explorer) attemptScroll(ctx context.Context, fp string, desc boundary.Description, skipPatterns []string) StepResult {
	g := e.sess.Graph()
	centerX := desc.Hints.WindowWidth / 2
	fromY := desc.Hints.WindowHeight * 0.75
	toY := desc.Hints.WindowHeight * 0.25

	if err := e.input.Swipe(ctx, centerX, fromY, centerX, toY, 300); err != nil {
		return StepResult{Kind: ResultPaused, Reason: "scroll failed"}
	}
	e.clk.Sleep(ctx, e.settle)
	g.IncrementScrollCount(fp)

	after, err := e.describer.Describe(ctx)
	if err != nil {
		return StepResult{Kind: ResultPaused, Reason: "ocr failure after scroll"}
	}
	e.dismissAlerts(ctx, &after)

	novel := g.MergeScrolledElements(fp, after.Elements)
	if novel > 0 {
		g.ClearScreenPlan(fp)
		delete(e.actionCount, fp)
		return StepResult{Kind: ResultContinue, Description: "scroll revealed new elements"}
	}
	return StepResult{Kind: ResultContinue, Description: "scroll revealed nothing new"}
}

func (e *Explorer) finishScreen(target model.FrontierScreen) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if target.DiscoveryDepth == 0 {
		e.state = State{Kind: PhaseAtRoot}
		return StepResult{Kind: ResultContinue, Description: "finished root"}
	}
	e.state = State{Kind: PhaseReturning, DepthRemaining: target.DiscoveryDepth}
	return StepResult{Kind: ResultContinue, Description: "finished screen, returning"}
}
