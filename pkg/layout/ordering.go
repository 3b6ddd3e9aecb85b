package layout

import (
	"cmp"
	"hash/fnv"
	"math"
	"slices"
	"strings"

	"github.com/argmaplab/argmap/pkg/graph"
)

// DefaultIterations is the number of barycenter sweep rounds. Argument
// graphs are small; the heuristic converges well before eight rounds.
const DefaultIterations = 8

// hashFallbackRange quantizes the hash fallback key into [0, 1).
const hashFallbackRange = 10000

// Order computes the left-to-right ordering of every layer.
//
// Each layer starts in sorted-id order. For the configured number of
// iterations, a top-down sweep reorders each layer by the barycenter of
// its neighbors in the layer above, then a bottom-up sweep does the same
// against the layer below. Neighbors count over all relations; a node
// with no neighbors in the adjacent layer keeps a stable fractional key
// derived from an FNV hash of its id. Sorting is stable, so barycenter
// ties keep the previous relative order.
//
// After the sweeps the deepest layer is reordered by [groupLeaves]: its
// barycenter order is discarded in favor of contiguous blocks per
// support-target set, because the readability of the leaf layer depends
// on which premises belong together, not on residual crossings.
func Order(g *graph.Graph, layers map[string]int, iterations int) map[int][]string {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	byLayer := make(map[int][]string)
	for _, id := range g.NodeIDs() {
		l := layers[id]
		byLayer[l] = append(byLayer[l], id)
	}
	layerNums := make([]int, 0, len(byLayer))
	for l := range byLayer {
		layerNums = append(layerNums, l)
	}
	slices.Sort(layerNums)
	if len(layerNums) == 0 {
		return byLayer
	}

	// Positions of every node within its layer, kept in sync with byLayer.
	pos := make(map[string]int)
	for _, l := range layerNums {
		slices.Sort(byLayer[l])
		for i, id := range byLayer[l] {
			pos[id] = i
		}
	}

	reorder := func(l, adjacent int) {
		row := byLayer[l]
		if len(row) <= 1 {
			return
		}
		bc := make(map[string]float64, len(row))
		for _, id := range row {
			bc[id] = barycenter(g, id, adjacent, layers, pos)
		}
		slices.SortStableFunc(row, func(a, b string) int {
			return cmp.Compare(bc[a], bc[b])
		})
		for i, id := range row {
			pos[id] = i
		}
	}

	for it := 0; it < iterations; it++ {
		for i := 1; i < len(layerNums); i++ {
			reorder(layerNums[i], layerNums[i-1])
		}
		for i := len(layerNums) - 2; i >= 0; i-- {
			reorder(layerNums[i], layerNums[i+1])
		}
	}

	if len(layerNums) > 1 {
		deepest := layerNums[len(layerNums)-1]
		if len(byLayer[deepest]) > 1 {
			byLayer[deepest] = groupLeaves(g, byLayer[deepest], pos)
		}
	}
	return byLayer
}

// barycenter returns the mean position of the node's neighbors in the
// adjacent layer, or a stable hash-derived key when it has none there.
func barycenter(g *graph.Graph, id string, adjacent int, layers map[string]int, pos map[string]int) float64 {
	var sum, count float64
	for _, nbr := range g.Children(id) {
		if layers[nbr] == adjacent {
			sum += float64(pos[nbr])
			count++
		}
	}
	for _, nbr := range g.Parents(id) {
		if layers[nbr] == adjacent {
			sum += float64(pos[nbr])
			count++
		}
	}
	if count == 0 {
		return hashKey(id)
	}
	return sum / count
}

// hashKey maps an id to a stable fraction in [0, 1) so neighbor-less
// nodes sort deterministically instead of drifting between runs.
func hashKey(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return float64(h.Sum32()%hashFallbackRange) / hashFallbackRange
}

// groupLeaves reorders the deepest layer into contiguous blocks of nodes
// sharing a support-target set.
//
// Blocks are ordered by the mean position of their targets (ties by the
// block's key), nodes without any support target come last, and members
// within a block sort by id. The result assigns each block a contiguous
// run of order values.
func groupLeaves(g *graph.Graph, leaves []string, pos map[string]int) []string {
	type block struct {
		key     string
		mean    float64
		members []string
	}

	byKey := make(map[string]*block)
	for _, id := range leaves {
		targets := slices.Clone(g.SupportTargets(id))
		slices.Sort(targets)
		key := strings.Join(targets, "\x1f")
		b, ok := byKey[key]
		if !ok {
			mean := math.Inf(1) // orphans sink to the end
			if len(targets) > 0 {
				var sum float64
				for _, t := range targets {
					sum += float64(pos[t])
				}
				mean = sum / float64(len(targets))
			}
			b = &block{key: key, mean: mean}
			byKey[key] = b
		}
		b.members = append(b.members, id)
	}

	blocks := make([]*block, 0, len(byKey))
	for _, b := range byKey {
		slices.Sort(b.members)
		blocks = append(blocks, b)
	}
	slices.SortFunc(blocks, func(a, b *block) int {
		if c := cmp.Compare(a.mean, b.mean); c != 0 {
			return c
		}
		return strings.Compare(a.key, b.key)
	})

	out := make([]string, 0, len(leaves))
	for _, b := range blocks {
		out = append(out, b.members...)
	}
	return out
}
