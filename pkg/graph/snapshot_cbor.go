package graph

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// cborNode mirrors model.ScreenNode with the VisitedElements set normalized
// to a slice; ScoutResults stays a map, since maps with non-string-typed
// values (ScoutResult) marshal fine under cbor. The cached plan is not
// persisted.
type cborSnapshot struct {
	Nodes []cborNode            `cbor:"nodes"`
	Edges []model.NavigationEdge `cbor:"edges"`
	Root  string                `cbor:"root"`
}

type cborNode struct {
	Fingerprint     string                       `cbor:"fp"`
	Elements        []model.TapPoint             `cbor:"elements"`
	Icons           int                          `cbor:"icons"`
	Hints           model.ScreenHints            `cbor:"hints"`
	Depth           int                          `cbor:"depth"`
	ScreenType      model.ScreenType             `cbor:"screen_type"`
	ScreenshotPNG   string                       `cbor:"screenshot"`
	VisitedElements []string                     `cbor:"visited"`
	ScrollCount     int                          `cbor:"scroll_count"`
	ScoutResults    map[string]model.ScoutResult `cbor:"scouts"`
	Phase           model.TraversalPhase         `cbor:"phase"`
}

// MarshalSnapshot encodes a GraphSnapshot compactly for crash-restart resume
// (grounded: seedhammer-seedhammer's use of fxamacker/cbor for compact
// device-bound state).
func MarshalSnapshot(snap model.GraphSnapshot) ([]byte, error) {
	out := cborSnapshot{Root: snap.Root}
	for _, n := range snap.Nodes {
		visited := make([]string, 0, len(n.VisitedElements))
		for t := range n.VisitedElements {
			visited = append(visited, t)
		}
		out.Nodes = append(out.Nodes, cborNode{
			Fingerprint:     n.Fingerprint,
			Elements:        n.Elements,
			Icons:           n.Icons,
			Hints:           n.Hints,
			Depth:           n.Depth,
			ScreenType:      n.ScreenType,
			ScreenshotPNG:   n.ScreenshotPNG,
			VisitedElements: visited,
			ScrollCount:     n.ScrollCount,
			ScoutResults:    n.ScoutResults,
			Phase:           n.Phase,
		})
	}
	return cbor.Marshal(out)
}

// UnmarshalSnapshot decodes bytes written by MarshalSnapshot back into a
// GraphSnapshot.
func UnmarshalSnapshot(data []byte) (model.GraphSnapshot, error) {
	var in cborSnapshot
	if err := cbor.Unmarshal(data, &in); err != nil {
		return model.GraphSnapshot{}, err
	}
	nodes := make(map[string]*model.ScreenNode, len(in.Nodes))
	for _, n := range in.Nodes {
		visited := make(map[string]struct{}, len(n.VisitedElements))
		for _, t := range n.VisitedElements {
			visited[t] = struct{}{}
		}
		scouts := n.ScoutResults
		if scouts == nil {
			scouts = make(map[string]model.ScoutResult)
		}
		nodes[n.Fingerprint] = &model.ScreenNode{
			Fingerprint:     n.Fingerprint,
			Elements:        n.Elements,
			Icons:           n.Icons,
			Hints:           n.Hints,
			Depth:           n.Depth,
			ScreenType:      n.ScreenType,
			ScreenshotPNG:   n.ScreenshotPNG,
			VisitedElements: visited,
			ScrollCount:     n.ScrollCount,
			ScoutResults:    scouts,
			Phase:           n.Phase,
		}
	}
	return model.GraphSnapshot{Nodes: nodes, Edges: in.Edges, Root: in.Root}, nil
}
