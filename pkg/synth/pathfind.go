// Package synth implements SkillSynthesizer (spec §4.9): turning a
// GraphSnapshot into one or more step-script "skills" plus an index
// manifest.
package synth

import (
	"sort"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// NamedPath is one reconstructed root-to-leaf path, named from its edge
// labels.
type NamedPath struct {
	Name  string
	Edges []model.NavigationEdge
}

// FindPaths implements §4.9 step 1: build an adjacency map by
// fromFingerprint, find leaf nodes (nodes whose outgoing edges all lead to
// shallower-or-equal depth), sort by descending depth, and reconstruct a
// shortest root path for each. Falls back to the single longest acyclic
// path if no leaves qualify.
func FindPaths(snap model.GraphSnapshot) []NamedPath {
	adjacency := buildAdjacency(snap.Edges)
	leaves := findLeaves(snap, adjacency)

	if len(leaves) == 0 {
		if longest, ok := longestAcyclicPath(snap, adjacency); ok {
			return []NamedPath{namePath(longest)}
		}
		return nil
	}

	var paths []NamedPath
	for _, leafFP := range leaves {
		edges, ok := shortestPathFromRoot(snap, adjacency, leafFP)
		if !ok {
			continue
		}
		paths = append(paths, namePath(edges))
	}
	return paths
}

func buildAdjacency(edges []model.NavigationEdge) map[string][]model.NavigationEdge {
	adjacency := make(map[string][]model.NavigationEdge)
	for _, e := range edges {
		adjacency[e.FromFingerprint] = append(adjacency[e.FromFingerprint], e)
	}
	return adjacency
}

// findLeaves returns node fingerprints whose outgoing edges make no
// forward progress, sorted by descending depth.
func findLeaves(snap model.GraphSnapshot, adjacency map[string][]model.NavigationEdge) []string {
	var leaves []string
	for fp, node := range snap.Nodes {
		outgoing := adjacency[fp]
		isLeaf := true
		for _, e := range outgoing {
			to, ok := snap.Nodes[e.ToFingerprint]
			if ok && to.Depth > node.Depth {
				isLeaf = false
				break
			}
		}
		if isLeaf {
			leaves = append(leaves, fp)
		}
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		return snap.Nodes[leaves[i]].Depth > snap.Nodes[leaves[j]].Depth
	})
	return leaves
}

// shortestPathFromRoot does a breadth-first search over the edge graph
// from snap.Root to target, returning the edge sequence of the first path
// found.
func shortestPathFromRoot(snap model.GraphSnapshot, adjacency map[string][]model.NavigationEdge, target string) ([]model.NavigationEdge, bool) {
	if target == snap.Root {
		return nil, true
	}
	type queued struct {
		fp    string
		edges []model.NavigationEdge
	}
	visited := map[string]struct{}{snap.Root: {}}
	queue := []queued{{fp: snap.Root}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range adjacency[cur.fp] {
			if _, seen := visited[e.ToFingerprint]; seen {
				continue
			}
			visited[e.ToFingerprint] = struct{}{}
			path := append(append([]model.NavigationEdge(nil), cur.edges...), e)
			if e.ToFingerprint == target {
				return path, true
			}
			queue = append(queue, queued{fp: e.ToFingerprint, edges: path})
		}
	}
	return nil, false
}

// longestAcyclicPath depth-first searches for the longest simple path from
// the root, used when no qualifying leaf exists.
func longestAcyclicPath(snap model.GraphSnapshot, adjacency map[string][]model.NavigationEdge) ([]model.NavigationEdge, bool) {
	var best []model.NavigationEdge
	visited := map[string]struct{}{snap.Root: {}}

	var walk func(fp string, path []model.NavigationEdge)
	walk = func(fp string, path []model.NavigationEdge) {
		if len(path) > len(best) {
			best = append([]model.NavigationEdge(nil), path...)
		}
		for _, e := range adjacency[fp] {
			if _, seen := visited[e.ToFingerprint]; seen {
				continue
			}
			visited[e.ToFingerprint] = struct{}{}
			walk(e.ToFingerprint, append(path, e))
			delete(visited, e.ToFingerprint)
		}
	}
	walk(snap.Root, nil)
	return best, len(best) > 0
}

func namePath(edges []model.NavigationEdge) NamedPath {
	if len(edges) == 0 {
		return NamedPath{Name: "root"}
	}
	name := ""
	for i, e := range edges {
		if i > 0 {
			name += " -> "
		}
		if e.ElementText != "" {
			name += e.ElementText
		} else {
			name += string(e.Action)
		}
	}
	return NamedPath{Name: name, Edges: edges}
}

// ExploredScreen is one screen realized along a path (§4.9 step 2).
type ExploredScreen struct {
	Node        model.ScreenNode
	Action      model.ActionType
	ElementText string
}

// RealizeScreens walks a path's edges starting from the root node,
// appending the destination node of each edge along with its action type
// and element text (§4.9 step 2).
func RealizeScreens(snap model.GraphSnapshot, path NamedPath) []ExploredScreen {
	root, ok := snap.Nodes[snap.Root]
	if !ok {
		return nil
	}
	screens := []ExploredScreen{{Node: *root}}
	for _, e := range path.Edges {
		to, ok := snap.Nodes[e.ToFingerprint]
		if !ok {
			continue
		}
		screens = append(screens, ExploredScreen{Node: *to, Action: e.Action, ElementText: e.ElementText})
	}
	return screens
}
