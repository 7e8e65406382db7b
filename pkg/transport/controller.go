// Package transport exposes the exploration core as MCP tools (spec §6's
// boundary, reimplemented over mark3labs/mcp-go instead of a bespoke
// line-delimited JSON-RPC loop): start_exploration, step, status, and
// finalize. One *session.Session plus *traversal.Explorer pair lives per
// MCP-visible session, matching §5's "single logical exploration thread per
// session" model.
package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/corvid-labs/skillwalk/pkg/boundary"
	"github.com/corvid-labs/skillwalk/pkg/clock"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/ocrcache"
	"github.com/corvid-labs/skillwalk/pkg/session"
	"github.com/corvid-labs/skillwalk/pkg/strategy"
	"github.com/corvid-labs/skillwalk/pkg/synth"
	"github.com/corvid-labs/skillwalk/pkg/traversal"
)

// BoundaryFactory builds the describer/input pair a new session drives
// through. The concrete window bridge, screen capture, OCR, and input
// synthesis implementations are out of the core's scope (spec §1); this
// indirection is how cmd/skillwalkd supplies them without pkg/transport
// depending on any one device backend.
type BoundaryFactory func(appName string) (boundary.ScreenDescriber, boundary.InputProvider, error)

type entry struct {
	sess     *session.Session
	explorer *traversal.Explorer
	strat    strategy.Strategy
}

// Controller owns every live exploration session, keyed by an opaque ID
// handed back from start_exploration.
type Controller struct {
	mu       sync.Mutex
	sessions map[string]*entry

	factory   BoundaryFactory
	clk       clock.Clock
	outputDir string
}

// NewController constructs a Controller. outputDir is where finalize
// persists skill bundles (§6 "Persisted state").
func NewController(factory BoundaryFactory, clk clock.Clock, outputDir string) *Controller {
	return &Controller{
		sessions:  make(map[string]*entry),
		factory:   factory,
		clk:       clk,
		outputDir: outputDir,
	}
}

// StartExplorationRequest is start_exploration's argument shape.
type StartExplorationRequest struct {
	AppName          string
	Goal             string
	Goals            []string
	ExplicitStrategy string
	TargetType       string
	BundleID         string
	Budget           model.ExplorationBudget
	InitialElements  []model.TapPoint
	InitialHints     model.ScreenHints
	InitialIcons     int
	InitialScreenPNG string
}

// StartExploration detects a Strategy, wires a fresh Session and Explorer,
// ingests the caller-supplied first screen (§4.6 step 1 always needs a
// baseline capture before traversal can begin), and returns the new
// session's ID.
func (c *Controller) StartExploration(ctx context.Context, req StartExplorationRequest) (string, error) {
	strat := strategy.Detect(req.ExplicitStrategy, req.TargetType, req.BundleID, req.AppName)

	describer, input, err := c.factory(req.AppName)
	if err != nil {
		return "", fmt.Errorf("constructing boundary collaborators: %w", err)
	}
	describer = ocrcache.Wrap(describer)

	sess := session.New(strat.ClassifyScreen)
	sess.Start(req.AppName, req.Goal, req.Goals)
	sess.Capture(req.InitialElements, req.InitialHints, req.InitialIcons, model.ActionLaunch, "", req.InitialScreenPNG)

	b := req.Budget
	if b.MaxScreens == 0 {
		b = model.DefaultBudget()
	}
	ex := traversal.New(sess, describer, input, c.clk, strat, b)
	ex.Start()

	id := uuid.NewString()
	c.mu.Lock()
	c.sessions[id] = &entry{sess: sess, explorer: ex, strat: strat}
	c.mu.Unlock()
	return id, nil
}

// Step advances one session by a single tick (§5: "the outer driver decides
// when to call it again").
func (c *Controller) Step(ctx context.Context, sessionID string) (traversal.StepResult, error) {
	e, err := c.lookup(sessionID)
	if err != nil {
		return traversal.StepResult{}, err
	}
	return e.explorer.Step(ctx), nil
}

// Status is status's result shape: a snapshot of the session's bookkeeping,
// safe to read concurrently with an in-flight Step (§5: reads return
// copies, never torn state).
type Status struct {
	Active         bool
	Mode           model.SessionMode
	Goal           string
	RemainingGoals []string
	ScreenCount    int
	NodeCount      int
}

func (c *Controller) Status(sessionID string) (Status, error) {
	e, err := c.lookup(sessionID)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Active:         e.sess.Active(),
		Mode:           e.sess.Mode(),
		Goal:           e.sess.Goal(),
		RemainingGoals: e.sess.RemainingGoals(),
		ScreenCount:    e.sess.ScreenCount(),
		NodeCount:      e.sess.Graph().NodeCount(),
	}, nil
}

// Finalize forces the current goal to completion, synthesizes and persists
// a skill bundle under the Controller's output directory, and removes the
// session once it has no further queued goals.
func (c *Controller) Finalize(sessionID, generatedAt string) (synth.Bundle, error) {
	e, err := c.lookup(sessionID)
	if err != nil {
		return synth.Bundle{}, err
	}

	bundle := e.sess.Finalize()
	skills := synth.Generate(bundle.Snapshot, bundle.Screens, bundle.AppName, bundle.Goal, generatedAt)
	if err := synth.Write(c.outputDir, skills); err != nil {
		return synth.Bundle{}, fmt.Errorf("persisting skill bundle: %w", err)
	}

	if !e.sess.Active() {
		c.mu.Lock()
		delete(c.sessions, sessionID)
		c.mu.Unlock()
	}
	return skills, nil
}

func (c *Controller) lookup(sessionID string) (*entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("unknown session %q", sessionID)
	}
	return e, nil
}
