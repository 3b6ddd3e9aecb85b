package layout

import (
	"github.com/argmaplab/argmap/pkg/graph"
)

// AssignLayers assigns every node to a horizontal layer based on its depth
// in the support hierarchy.
//
// Layers are computed with a longest-path algorithm via topological sort
// (Kahn's algorithm) over support edges only; attack edges carry no
// hierarchy and are ignored. Layer 0 is the top of the drawing and holds
// the support sinks (conclusions and anything that supports nothing).
// Every supporter lands at one plus the maximum layer of its support
// targets, so:
//
//   - nodes with no support edges at all are at layer 0,
//   - layer(u) > layer(v) for every support edge u → v: a supporter
//     always renders strictly below what it supports, and the deepest
//     layer holds the leaf premises.
//
// The graph's support sub-relation must be acyclic; nodes on a cycle
// never drain their degree counter and stay at layer 0.
func AssignLayers(g *graph.Graph) map[string]int {
	ids := g.NodeIDs()
	outDegree := make(map[string]int, len(ids))
	layers := make(map[string]int, len(ids))
	queue := make([]string, 0, len(ids))

	for _, id := range ids {
		degree := len(g.SupportTargets(id))
		outDegree[id] = degree
		layers[id] = 0
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	// Walk the support DAG from sinks toward sources, pushing each
	// supporter below everything it supports.
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, supporter := range g.Supporters(curr) {
			if layer := layers[curr] + 1; layer > layers[supporter] {
				layers[supporter] = layer
			}
			outDegree[supporter]--
			if outDegree[supporter] == 0 {
				queue = append(queue, supporter)
			}
		}
	}

	return layers
}
