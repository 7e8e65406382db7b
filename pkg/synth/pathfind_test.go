package synth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/synth"
)

func node(fp string, depth int) *model.ScreenNode {
	return &model.ScreenNode{Fingerprint: fp, Depth: depth}
}

// linearSnapshot builds root -> a -> b, a single branchless path.
func linearSnapshot() model.GraphSnapshot {
	return model.GraphSnapshot{
		Root: "root",
		Nodes: map[string]*model.ScreenNode{
			"root": node("root", 0),
			"a":    node("a", 1),
			"b":    node("b", 2),
		},
		Edges: []model.NavigationEdge{
			{FromFingerprint: "root", ToFingerprint: "a", Action: model.ActionTap, ElementText: "Privacy"},
			{FromFingerprint: "a", ToFingerprint: "b", Action: model.ActionTap, ElementText: "Tracking"},
		},
	}
}

// branchingSnapshot builds root -> a, root -> c, a -> b, two leaves (b, c).
func branchingSnapshot() model.GraphSnapshot {
	return model.GraphSnapshot{
		Root: "root",
		Nodes: map[string]*model.ScreenNode{
			"root": node("root", 0),
			"a":    node("a", 1),
			"b":    node("b", 2),
			"c":    node("c", 1),
		},
		Edges: []model.NavigationEdge{
			{FromFingerprint: "root", ToFingerprint: "a", Action: model.ActionTap, ElementText: "Privacy"},
			{FromFingerprint: "a", ToFingerprint: "b", Action: model.ActionTap, ElementText: "Tracking"},
			{FromFingerprint: "root", ToFingerprint: "c", Action: model.ActionTap, ElementText: "Billing"},
		},
	}
}

func TestFindPathsSingleLeaf(t *testing.T) {
	paths := synth.FindPaths(linearSnapshot())
	require.Len(t, paths, 1)
	require.Len(t, paths[0].Edges, 2)
	require.Equal(t, "Privacy -> Tracking", paths[0].Name)
}

func TestFindPathsMultipleLeavesSortedByDepth(t *testing.T) {
	paths := synth.FindPaths(branchingSnapshot())
	require.Len(t, paths, 2)
	// deepest leaf (b, depth 2) must come first
	require.Len(t, paths[0].Edges, 2)
	require.Len(t, paths[1].Edges, 1)
}

func TestFindPathsNoEdgesReturnsRootOnlyPath(t *testing.T) {
	snap := model.GraphSnapshot{Root: "root", Nodes: map[string]*model.ScreenNode{"root": node("root", 0)}}
	paths := synth.FindPaths(snap)
	require.Len(t, paths, 1)
	require.Empty(t, paths[0].Edges)
	require.Equal(t, "root", paths[0].Name)
}

func TestRealizeScreensWalksEdges(t *testing.T) {
	snap := linearSnapshot()
	paths := synth.FindPaths(snap)
	require.Len(t, paths, 1)

	screens := synth.RealizeScreens(snap, paths[0])
	require.Len(t, screens, 3)
	require.Equal(t, "root", screens[0].Node.Fingerprint)
	require.Equal(t, "Privacy", screens[1].ElementText)
	require.Equal(t, "Tracking", screens[2].ElementText)
}
