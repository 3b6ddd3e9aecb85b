package transform

import (
	"slices"

	"github.com/argmaplab/argmap/pkg/graph"
)

// ValidateResult reports the structural repairs made by [Validate].
type ValidateResult struct {
	// CycleEdgesRemoved lists support edges deleted to break cycles, in
	// removal order.
	CycleEdgesRemoved []graph.Edge
	// OrphansRemoved lists ids of edge-less non-claim nodes that were
	// dropped.
	OrphansRemoved []string
}

// Validate repairs the graph so the support sub-relation is a DAG and no
// stray nodes remain:
//
//  1. While a support cycle exists, remove the lowest-confidence edge on
//     it (ties keep the edge found first along the cycle walk).
//  2. Remove nodes with no edges at all, except claims and conclusions,
//     which stand on their own.
//
// Edges with unknown endpoints, self-loops, and parallel edges cannot
// occur here; [graph.Graph.AddEdge] rejects or collapses them at
// construction time. Validate is idempotent: a second run changes nothing.
//
// Attack edges are never touched. They may form cycles freely since only
// support edges define the hierarchy.
func Validate(g *graph.Graph) ValidateResult {
	var res ValidateResult

	for {
		cycle := findSupportCycle(g)
		if cycle == nil {
			break
		}
		weakest := cycle[0]
		for _, e := range cycle[1:] {
			if e.Confidence < weakest.Confidence {
				weakest = e
			}
		}
		g.RemoveEdge(weakest.Source, weakest.Target, graph.RelationSupport)
		res.CycleEdgesRemoved = append(res.CycleEdgesRemoved, weakest)
	}

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if g.Degree(id) == 0 && !n.Role.IsClaimLike() {
			g.RemoveNode(id)
			res.OrphansRemoved = append(res.OrphansRemoved, id)
		}
	}
	return res
}

// findSupportCycle runs a DFS over support edges and returns the edges of
// the first cycle encountered, or nil if the support sub-relation is
// acyclic. Nodes and neighbors are visited in sorted order so the same
// graph always yields the same cycle.
func findSupportCycle(g *graph.Graph) []graph.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var path []string
	var cycle []graph.Edge

	var dfs func(node string) bool
	dfs = func(node string) bool {
		color[node] = gray
		path = append(path, node)
		children := slices.Clone(g.SupportTargets(node))
		slices.Sort(children)
		for _, child := range children {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(path, child)
				for i := start; i+1 < len(path); i++ {
					e, _ := g.EdgeBetween(path[i], path[i+1], graph.RelationSupport)
					cycle = append(cycle, e)
				}
				e, _ := g.EdgeBetween(node, child, graph.RelationSupport)
				cycle = append(cycle, e)
				return true
			}
		}
		path = path[:len(path)-1]
		color[node] = black
		return false
	}

	for _, id := range g.NodeIDs() {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}
