package transform

import (
	"slices"
	"strings"

	"github.com/argmaplab/argmap/pkg/graph"
)

// Bridge confidences. Proximity bridges are trusted slightly more than
// blind fallback bridges, but both stay well below extracted edges so
// downstream stages prefer real structure.
const (
	bridgeConfidence         = 0.4
	fallbackBridgeConfidence = 0.3
)

// maxBridgeSeqGap is the document distance within which two nodes count
// as near each other for the proximity bridge.
const maxBridgeSeqGap = 3

// BridgeComponents connects secondary connected components to the main
// component with low-confidence support edges. For each stray component it
// tries, in order:
//
//  1. a premise near (by document position) a claim or conclusion in the
//     main component, bridged at confidence 0.4;
//  2. any premise to any claim or conclusion, bridged at confidence 0.3.
//
// At most one bridge is added per stray component and components are never
// re-examined, so the pass is bounded by the initial component count. A
// component with no premise stays disconnected.
//
// Returns the bridges added.
func BridgeComponents(g *graph.Graph) []graph.Edge {
	comps := connectedComponents(g)
	if len(comps) <= 1 {
		return nil
	}

	// Largest component is the main one; ties go to the component holding
	// the smallest id so the choice is stable.
	slices.SortFunc(comps, func(a, b []string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a[0], b[0])
	})
	main := comps[0]

	anchors := make([]string, 0, len(main))
	for _, id := range main {
		if n, _ := g.Node(id); n.Role.IsClaimLike() {
			anchors = append(anchors, id)
		}
	}
	if len(anchors) == 0 {
		return nil
	}

	var bridges []graph.Edge
	for _, comp := range comps[1:] {
		var premises []string
		for _, id := range comp {
			if n, _ := g.Node(id); n.Role == graph.RolePremise {
				premises = append(premises, id)
			}
		}
		if len(premises) == 0 {
			continue
		}

		e, ok := proximityBridge(g, premises, anchors)
		if !ok {
			e = graph.Edge{
				Source:     premises[0],
				Target:     anchors[0],
				Relation:   graph.RelationSupport,
				Confidence: fallbackBridgeConfidence,
			}
		}
		g.AddEdge(e)
		bridges = append(bridges, e)
	}
	return bridges
}

// proximityBridge finds the premise/anchor pair with the smallest document
// distance, bridging only if they are within maxBridgeSeqGap. Ties keep
// the earlier pair in sorted-id order.
func proximityBridge(g *graph.Graph, premises, anchors []string) (graph.Edge, bool) {
	bestGap := maxBridgeSeqGap + 1
	var best graph.Edge
	for _, pid := range premises {
		p, _ := g.Node(pid)
		for _, aid := range anchors {
			a, _ := g.Node(aid)
			gap := p.Seq - a.Seq
			if gap < 0 {
				gap = -gap
			}
			if gap < bestGap {
				bestGap = gap
				best = graph.Edge{
					Source:     pid,
					Target:     aid,
					Relation:   graph.RelationSupport,
					Confidence: bridgeConfidence,
				}
			}
		}
	}
	return best, bestGap <= maxBridgeSeqGap
}

// connectedComponents returns the weakly connected components of the
// graph over all relations. Each component's ids are sorted and the
// components themselves are discovered in sorted-id order.
func connectedComponents(g *graph.Graph) [][]string {
	seen := make(map[string]bool)
	var comps [][]string
	for _, id := range g.NodeIDs() {
		if seen[id] {
			continue
		}
		var comp []string
		stack := []string{id}
		seen[id] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, next := range append(slices.Clone(g.Children(cur)), g.Parents(cur)...) {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	return comps
}
