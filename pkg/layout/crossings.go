package layout

import (
	"slices"

	"github.com/argmaplab/argmap/pkg/graph"
)

// CountCrossings returns the total number of edge crossings between
// adjacent layers for the given orderings. Edges spanning more than one
// layer are ignored; only segments between consecutive layers can cross
// in the rendered drawing.
//
// This is a diagnostic metric. The ordering stage never consults it.
func CountCrossings(g *graph.Graph, layers map[string]int, orders map[int][]string) int {
	layerNums := make([]int, 0, len(orders))
	for l := range orders {
		layerNums = append(layerNums, l)
	}
	slices.Sort(layerNums)

	total := 0
	for i := 0; i+1 < len(layerNums); i++ {
		total += countLayerCrossings(g, layers, orders[layerNums[i]], orders[layerNums[i+1]], layerNums[i], layerNums[i+1])
	}
	return total
}

// countLayerCrossings counts crossings between two adjacent layers with a
// Fenwick tree (binary indexed tree) in O(E log V), where E is the edges
// between the layers and V the lower layer's width.
//
// Two segments (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and
// pos(v1) > pos(v2), which is an inversion count over target positions
// once segments are sorted by source position. Edge direction is
// irrelevant here; every edge between the two layers is treated as a
// segment anchored in the upper layer.
func countLayerCrossings(g *graph.Graph, layers map[string]int, upper, lower []string, upperLayer, lowerLayer int) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}
	lowerPos := graph.PosMap(lower)

	type segment struct{ upper, lower int }
	var segments []segment
	for i, id := range upper {
		for _, nbr := range g.Children(id) {
			if layers[nbr] == lowerLayer {
				segments = append(segments, segment{i, lowerPos[nbr]})
			}
		}
		for _, nbr := range g.Parents(id) {
			if layers[nbr] == lowerLayer {
				segments = append(segments, segment{i, lowerPos[nbr]})
			}
		}
	}
	if len(segments) < 2 {
		return 0
	}

	slices.SortFunc(segments, func(a, b segment) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, s := range segments {
		// Count already-placed segments whose target is right of ours.
		lessOrEqual := 0
		for q := s.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := s.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
