package transport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/boundary"
	"github.com/corvid-labs/skillwalk/pkg/clock"
	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/transport"
	"github.com/corvid-labs/skillwalk/pkg/traversal"
)

func fixedFactory(describer boundary.ScreenDescriber, input boundary.InputProvider) transport.BoundaryFactory {
	return func(appName string) (boundary.ScreenDescriber, boundary.InputProvider, error) {
		return describer, input, nil
	}
}

func TestStartExplorationThenStepReachesFinished(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 400, WindowHeight: 890}
	root := boundary.Description{Elements: []model.TapPoint{{Text: "Only", TapX: 50, TapY: 400}}, Hints: hints}
	describer := &boundary.FakeDescriber{Script: []boundary.Description{root}}
	input := &boundary.FakeInput{}

	dir := t.TempDir()
	c := transport.NewController(fixedFactory(describer, input), clock.NewFake(time.Unix(0, 0)), dir)

	sessionID, err := c.StartExploration(context.Background(), transport.StartExplorationRequest{
		AppName:         "Settings",
		InitialElements: root.Elements,
		InitialHints:    hints,
		Budget:          model.ExplorationBudget{MaxDepth: 2, MaxScreens: 1, MaxWallClock: time.Hour, MaxInteractionsPer: 5, ScrollAttemptsPer: 1},
	})
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	st, err := c.Status(sessionID)
	require.NoError(t, err)
	require.True(t, st.Active)
	require.Equal(t, 1, st.NodeCount)

	// MaxScreens is already at the cap: the first tick should finish immediately.
	result, err := c.Step(context.Background(), sessionID)
	require.NoError(t, err)
	require.Equal(t, traversal.ResultFinished, result.Kind)
}

func TestFinalizeWritesBundleToOutputDir(t *testing.T) {
	hints := model.ScreenHints{WindowWidth: 400, WindowHeight: 890}
	root := boundary.Description{Elements: []model.TapPoint{{Text: "Only", TapX: 50, TapY: 400}}, Hints: hints}
	describer := &boundary.FakeDescriber{Script: []boundary.Description{root}}
	input := &boundary.FakeInput{}

	dir := t.TempDir()
	c := transport.NewController(fixedFactory(describer, input), clock.NewFake(time.Unix(0, 0)), dir)

	sessionID, err := c.StartExploration(context.Background(), transport.StartExplorationRequest{
		AppName:         "Settings",
		InitialElements: root.Elements,
		InitialHints:    hints,
	})
	require.NoError(t, err)

	bundle, err := c.Finalize(sessionID, "2026-07-31T00:00:00Z")
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Skills)

	manifest := filepath.Join(dir, "manifest.md")
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	require.Contains(t, string(data), bundle.Skills[0].Filename)

	_, err = c.Status(sessionID)
	require.Error(t, err, "session with no further goals should be removed after finalize")
}

func TestStepUnknownSessionErrors(t *testing.T) {
	c := transport.NewController(fixedFactory(&boundary.FakeDescriber{}, &boundary.FakeInput{}), clock.NewFake(time.Unix(0, 0)), t.TempDir())
	_, err := c.Step(context.Background(), "nope")
	require.Error(t, err)
}
