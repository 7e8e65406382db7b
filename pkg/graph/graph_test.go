package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/skillwalk/pkg/graph"
	"github.com/corvid-labs/skillwalk/pkg/model"
)

func hints() model.ScreenHints { return model.ScreenHints{WindowHeight: 890, WindowWidth: 400} }

func root() []model.TapPoint {
	return []model.TapPoint{
		{Text: "Settings", TapX: 50, TapY: 80},
		{Text: "General", TapX: 50, TapY: 200},
		{Text: "Privacy", TapX: 50, TapY: 260},
	}
}

func TestStartInsertsRootNode(t *testing.T) {
	g := graph.New()
	fp := g.Start(root(), 0, hints(), "", model.ScreenSettings)
	require.Equal(t, fp, g.Root())
	require.Equal(t, 1, g.NodeCount())
}

// S3 from spec §8: near-duplicate capture returns duplicate, no new edge.
func TestRecordTransitionDuplicate(t *testing.T) {
	g := graph.New()
	g.Start(root(), 0, hints(), "", model.ScreenSettings)

	nearDup := []model.TapPoint{
		{Text: "Settings", TapX: 50, TapY: 80},
		{Text: "General", TapX: 50, TapY: 200},
		{Text: "Privacy", TapX: 51, TapY: 261}, // same text, jittered coords
	}
	result, fp := g.RecordTransition(nearDup, 0, hints(), "", model.ActionTap, "Privacy", model.ScreenSettings)
	require.Equal(t, model.ResultDuplicate, result)
	require.Equal(t, g.Root(), fp)
	require.Equal(t, 1, g.NodeCount())
	require.Equal(t, 0, g.EdgeCount())
}

// S4 from spec §8: tapping "Privacy" reveals a genuinely new screen.
func TestRecordTransitionNewScreen(t *testing.T) {
	g := graph.New()
	g.Start(root(), 0, hints(), "", model.ScreenSettings)

	privacyScreen := []model.TapPoint{
		{Text: "Location Services", TapX: 50, TapY: 200},
		{Text: "Tracking", TapX: 50, TapY: 260},
		{Text: "Analytics", TapX: 50, TapY: 320},
	}
	result, fp := g.RecordTransition(privacyScreen, 0, hints(), "", model.ActionTap, "Privacy", model.ScreenDetail)
	require.Equal(t, model.ResultNewScreen, result)
	require.NotEqual(t, g.Root(), fp)
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 1, g.EdgeCount())

	node, ok := g.Node(fp)
	require.True(t, ok)
	require.Equal(t, 1, node.Depth)
}

func TestRecordTransitionRevisited(t *testing.T) {
	g := graph.New()
	rootFP := g.Start(root(), 0, hints(), "", model.ScreenSettings)

	detail := []model.TapPoint{
		{Text: "Location Services", TapX: 50, TapY: 200},
		{Text: "Tracking", TapX: 50, TapY: 260},
	}
	_, detailFP := g.RecordTransition(detail, 0, hints(), "", model.ActionTap, "Privacy", model.ScreenDetail)
	g.SetCurrentFingerprint(rootFP)

	result, fp := g.RecordTransition(detail, 0, hints(), "", model.ActionTap, "Privacy2", model.ScreenDetail)
	require.Equal(t, model.ResultRevisited, result)
	require.Equal(t, detailFP, fp)
	require.Equal(t, 2, g.NodeCount())
	require.Equal(t, 2, g.EdgeCount())
}

func TestEveryEdgeReferencesKnownNodes(t *testing.T) {
	g := graph.New()
	g.Start(root(), 0, hints(), "", model.ScreenSettings)
	g.RecordTransition([]model.TapPoint{{Text: "A", TapX: 1, TapY: 200}}, 0, hints(), "", model.ActionTap, "A", model.ScreenDetail)
	g.RecordTransition([]model.TapPoint{{Text: "B", TapX: 1, TapY: 200}}, 0, hints(), "", model.ActionTap, "B", model.ScreenDetail)

	snap := g.Finalize()
	for _, e := range snap.Edges {
		_, fromOK := snap.Nodes[e.FromFingerprint]
		_, toOK := snap.Nodes[e.ToFingerprint]
		require.True(t, fromOK)
		require.True(t, toOK)
	}
}

func TestMergeScrolledElementsReturnsNovelCount(t *testing.T) {
	g := graph.New()
	fp := g.Start(root(), 0, hints(), "", model.ScreenSettings)

	novel := g.MergeScrolledElements(fp, []model.TapPoint{
		{Text: "Settings", TapX: 50, TapY: 80}, // already present
		{Text: "Accessibility", TapX: 50, TapY: 340},
	})
	require.Equal(t, 1, novel)

	node, _ := g.Node(fp)
	texts := make([]string, 0)
	for _, e := range node.Elements {
		texts = append(texts, e.Text)
	}
	require.Contains(t, texts, "Accessibility")
}

func TestScrollCountIncrementsBounded(t *testing.T) {
	g := graph.New()
	fp := g.Start(root(), 0, hints(), "", model.ScreenSettings)
	require.Equal(t, 0, g.ScrollCount(fp))
	g.IncrementScrollCount(fp)
	g.IncrementScrollCount(fp)
	require.Equal(t, 2, g.ScrollCount(fp))
}

func TestVisitedElementsSubsetInvariant(t *testing.T) {
	g := graph.New()
	fp := g.Start(root(), 0, hints(), "", model.ScreenSettings)
	g.MarkElementVisited(fp, "Settings")

	node, _ := g.Node(fp)
	texts := make(map[string]struct{})
	for _, e := range node.Elements {
		texts[e.Text] = struct{}{}
	}
	for v := range node.VisitedElements {
		_, ok := texts[v]
		require.True(t, ok)
	}
}

func TestCBORRoundTrip(t *testing.T) {
	g := graph.New()
	g.Start(root(), 0, hints(), "", model.ScreenSettings)
	g.RecordTransition([]model.TapPoint{{Text: "A", TapX: 1, TapY: 200}}, 0, hints(), "", model.ActionTap, "A", model.ScreenDetail)

	snap := g.Finalize()
	data, err := graph.MarshalSnapshot(snap)
	require.NoError(t, err)

	roundTripped, err := graph.UnmarshalSnapshot(data)
	require.NoError(t, err)
	require.Equal(t, snap.Root, roundTripped.Root)
	require.Len(t, roundTripped.Nodes, len(snap.Nodes))
	require.Len(t, roundTripped.Edges, len(snap.Edges))
}
