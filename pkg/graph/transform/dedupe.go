package transform

import (
	"maps"
	"slices"

	"github.com/argmaplab/argmap/pkg/graph"
)

// DedupeResult reports what the duplicate merge changed.
type DedupeResult struct {
	// Merged maps each removed node id to the id of the node that
	// absorbed it.
	Merged map[string]string
}

// Dedupe merges nodes whose labels are near-duplicates under
// [TextSimilarity]. Nodes are only compared within the same role; merging
// a premise into a claim would silently change the argument structure.
//
// Within a duplicate group the survivor is the node with the highest
// confidence, ties broken by the lexicographically smaller id. Edges of
// removed nodes are rewritten to the survivor; rewriting that would create
// a self-loop drops the edge, and duplicate edges collapse keeping the
// highest confidence.
func Dedupe(g *graph.Graph, threshold float64) DedupeResult {
	res := DedupeResult{Merged: make(map[string]string)}

	ids := g.NodeIDs()
	parent := make(map[string]string, len(ids))
	for _, id := range ids {
		parent[id] = id
	}
	var find func(string) string
	find = func(id string) string {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}

	for i := 0; i < len(ids); i++ {
		a, _ := g.Node(ids[i])
		for j := i + 1; j < len(ids); j++ {
			b, _ := g.Node(ids[j])
			if a.Role != b.Role {
				continue
			}
			if TextSimilarity(a.Label, b.Label) >= threshold {
				parent[find(ids[i])] = find(ids[j])
			}
		}
	}

	groups := make(map[string][]string)
	for _, id := range ids {
		root := find(id)
		groups[root] = append(groups[root], id)
	}

	for _, root := range slices.Sorted(maps.Keys(groups)) {
		members := groups[root]
		if len(members) < 2 {
			continue
		}
		survivor := pickSurvivor(g, members)
		for _, id := range members {
			if id == survivor {
				continue
			}
			mergeInto(g, id, survivor)
			res.Merged[id] = survivor
		}
	}
	return res
}

// pickSurvivor chooses the member with the highest confidence, breaking
// ties by smaller id. Members are sorted, so the scan is deterministic.
func pickSurvivor(g *graph.Graph, members []string) string {
	slices.Sort(members)
	best := members[0]
	bestNode, _ := g.Node(best)
	for _, id := range members[1:] {
		n, _ := g.Node(id)
		if n.Confidence > bestNode.Confidence {
			best, bestNode = id, n
		}
	}
	return best
}

// mergeInto rewires every edge touching removed onto survivor, then
// removes the node.
func mergeInto(g *graph.Graph, removed, survivor string) {
	for _, e := range g.Edges() {
		if e.Source != removed && e.Target != removed {
			continue
		}
		ne := e
		if ne.Source == removed {
			ne.Source = survivor
		}
		if ne.Target == removed {
			ne.Target = survivor
		}
		if ne.Source != ne.Target {
			g.AddEdge(ne)
		}
	}
	g.RemoveNode(removed)
}
