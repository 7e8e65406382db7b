// Package graph implements NavigationGraph (spec §4.5): a thread-safe
// screen graph with per-screen plans, scroll state, and scout bookkeeping.
// The mutex-guarded container follows the teacher's ServiceRegistry idiom
// (sync.Mutex + snapshot accessors, never holding the lock across an
// external call).
package graph

import (
	"sync"

	"github.com/corvid-labs/skillwalk/pkg/fingerprint"
	"github.com/corvid-labs/skillwalk/pkg/model"
)

// Graph is the NavigationGraph. Zero value is not usable; use New.
type Graph struct {
	mu       sync.Mutex
	nodes    map[string]*model.ScreenNode
	edges    []model.NavigationEdge
	root     string
	current  string
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*model.ScreenNode)}
}

// Start resets the graph and inserts the root node.
func (g *Graph) Start(elements []model.TapPoint, icons int, hints model.ScreenHints, screenshotPNG string, screenType model.ScreenType) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	fp, _ := fingerprint.Compute(elements, hints.WindowHeight, icons)
	g.nodes = map[string]*model.ScreenNode{
		fp: newNode(fp, elements, icons, hints, screenshotPNG, screenType, 0),
	}
	g.edges = nil
	g.root = fp
	g.current = fp
	return fp
}

func newNode(fp string, elements []model.TapPoint, icons int, hints model.ScreenHints, screenshotPNG string, screenType model.ScreenType, depth int) *model.ScreenNode {
	return &model.ScreenNode{
		Fingerprint:     fp,
		Elements:        elements,
		Icons:           icons,
		Hints:           hints,
		Depth:           depth,
		ScreenType:      screenType,
		ScreenshotPNG:   screenshotPNG,
		VisitedElements: make(map[string]struct{}),
		ScoutResults:    make(map[string]model.ScoutResult),
		Phase:           model.PhaseScout,
	}
}

// RecordTransition computes the fingerprint for a newly-captured screen and
// classifies the transition (§4.5). It always appends an edge except when
// the result is ResultDuplicate.
func (g *Graph) RecordTransition(elements []model.TapPoint, icons int, hints model.ScreenHints, screenshotPNG string, action model.ActionType, elementText string, screenType model.ScreenType) (model.TransitionResult, string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	newFP, newStructural := fingerprint.Compute(elements, hints.WindowHeight, icons)

	cur, ok := g.nodes[g.current]
	if ok {
		_, curStructural := fingerprint.Compute(cur.Elements, cur.Hints.WindowHeight, cur.Icons)
		if newFP == g.current || fingerprint.Equivalent(newStructural, curStructural) {
			return model.ResultDuplicate, g.current
		}
	}

	existingFP, found := g.findMatchingLocked(newStructural, newFP)
	if _, exact := g.nodes[newFP]; exact {
		existingFP, found = newFP, true
	}
	if found {
		g.edges = append(g.edges, model.NavigationEdge{
			FromFingerprint: g.current,
			ToFingerprint:   existingFP,
			Action:          action,
			ElementText:     elementText,
		})
		g.current = existingFP
		return model.ResultRevisited, existingFP
	}

	depth := 0
	if ok {
		depth = cur.Depth + 1
	}
	g.nodes[newFP] = newNode(newFP, elements, icons, hints, screenshotPNG, screenType, depth)
	g.edges = append(g.edges, model.NavigationEdge{
		FromFingerprint: g.current,
		ToFingerprint:   newFP,
		Action:          action,
		ElementText:     elementText,
	})
	g.current = newFP
	return model.ResultNewScreen, newFP
}

// findMatchingLocked searches all existing nodes (other than an exact hash
// match, already handled by the caller) for one whose structural set is
// Jaccard-equivalent to structural. Must be called with g.mu held.
func (g *Graph) findMatchingLocked(structural []string, excludeFP string) (string, bool) {
	for fp, n := range g.nodes {
		if fp == excludeFP {
			continue
		}
		_, nStructural := fingerprint.Compute(n.Elements, n.Hints.WindowHeight, n.Icons)
		if fingerprint.Equivalent(structural, nStructural) {
			return fp, true
		}
	}
	return "", false
}

// FindMatchingNode is the same Jaccard-≥-threshold search exposed for
// backtrack verification (§4.7.2).
func (g *Graph) FindMatchingNode(elements []model.TapPoint, icons int, windowHeight float64) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, structural := fingerprint.Compute(elements, windowHeight, icons)
	return g.findMatchingLocked(structural, "")
}

// MarkElementVisited adds text to fp's visited set.
func (g *Graph) MarkElementVisited(fp, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.VisitedElements[text] = struct{}{}
	}
}

// MergeScrolledElements appends elements whose text isn't already on the
// node, returning the count of novel elements merged.
func (g *Graph) MergeScrolledElements(fp string, newElements []model.TapPoint) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[fp]
	if !ok {
		return 0
	}
	existing := make(map[string]struct{}, len(n.Elements))
	for _, e := range n.Elements {
		existing[e.Text] = struct{}{}
	}
	novel := 0
	for _, e := range newElements {
		if _, ok := existing[e.Text]; ok {
			continue
		}
		n.Elements = append(n.Elements, e)
		existing[e.Text] = struct{}{}
		novel++
	}
	return novel
}

// SetScreenPlan caches a plan for fp.
func (g *Graph) SetScreenPlan(fp string, plan []model.PlannedInteraction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.Plan = plan
		n.HasPlan = true
	}
}

// ScreenPlan returns fp's cached plan, if any.
func (g *Graph) ScreenPlan(fp string) ([]model.PlannedInteraction, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[fp]
	if !ok || !n.HasPlan {
		return nil, false
	}
	return append([]model.PlannedInteraction(nil), n.Plan...), true
}

// NextPlannedElement returns the first plan entry whose text hasn't been
// visited yet.
func (g *Graph) NextPlannedElement(fp string) (model.PlannedInteraction, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[fp]
	if !ok || !n.HasPlan {
		return model.PlannedInteraction{}, false
	}
	for _, p := range n.Plan {
		if _, seen := n.VisitedElements[p.Text]; !seen {
			return p, true
		}
	}
	return model.PlannedInteraction{}, false
}

// ClearScreenPlan invalidates fp's cached plan.
func (g *Graph) ClearScreenPlan(fp string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.Plan = nil
		n.HasPlan = false
	}
}

// ScrollCount returns fp's scroll attempt count.
func (g *Graph) ScrollCount(fp string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		return n.ScrollCount
	}
	return 0
}

// IncrementScrollCount bumps fp's scroll attempt count.
func (g *Graph) IncrementScrollCount(fp string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.ScrollCount++
		return n.ScrollCount
	}
	return 0
}

// RecordScoutResult records the outcome of scouting text on fp.
func (g *Graph) RecordScoutResult(fp, text string, result model.ScoutResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.ScoutResults[text] = result
	}
}

// ScoutResults returns a copy of fp's scout-result map.
func (g *Graph) ScoutResults(fp string) map[string]model.ScoutResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[fp]
	if !ok {
		return nil
	}
	out := make(map[string]model.ScoutResult, len(n.ScoutResults))
	for k, v := range n.ScoutResults {
		out[k] = v
	}
	return out
}

// TraversalPhase returns fp's per-screen exhaustion phase.
func (g *Graph) TraversalPhase(fp string) model.TraversalPhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		return n.Phase
	}
	return model.PhaseScout
}

// SetTraversalPhase sets fp's per-screen exhaustion phase.
func (g *Graph) SetTraversalPhase(fp string, phase model.TraversalPhase) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n, ok := g.nodes[fp]; ok {
		n.Phase = phase
	}
}

// SetCurrentFingerprint moves the graph's notion of "current screen".
func (g *Graph) SetCurrentFingerprint(fp string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = fp
}

// CurrentFingerprint returns the graph's notion of "current screen".
func (g *Graph) CurrentFingerprint() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Root returns the root fingerprint.
func (g *Graph) Root() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.root
}

// Node returns a copy of the node for fp, or false if absent. Returning a
// copy (shallow on slices/maps, which callers must not mutate) keeps
// callers from holding a long-lived pointer into the node map.
func (g *Graph) Node(fp string) (model.ScreenNode, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[fp]
	if !ok {
		return model.ScreenNode{}, false
	}
	return *n, true
}

// NodeCount returns the number of discovered nodes.
func (g *Graph) NodeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// EdgeCount returns the number of recorded edges.
func (g *Graph) EdgeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.edges)
}

// Finalize returns an immutable GraphSnapshot.
func (g *Graph) Finalize() model.GraphSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	nodes := make(map[string]*model.ScreenNode, len(g.nodes))
	for fp, n := range g.nodes {
		cp := *n
		cp.Elements = append([]model.TapPoint(nil), n.Elements...)
		cp.VisitedElements = copyStringSet(n.VisitedElements)
		cp.ScoutResults = copyScoutMap(n.ScoutResults)
		cp.Plan = append([]model.PlannedInteraction(nil), n.Plan...)
		nodes[fp] = &cp
	}
	return model.GraphSnapshot{
		Nodes: nodes,
		Edges: append([]model.NavigationEdge(nil), g.edges...),
		Root:  g.root,
	}
}

func copyStringSet(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func copyScoutMap(m map[string]model.ScoutResult) map[string]model.ScoutResult {
	out := make(map[string]model.ScoutResult, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
