package layout

import (
	"github.com/argmaplab/argmap/pkg/graph"
)

// Default geometry constants.
const (
	DefaultNodeSpacing  = 250.0
	DefaultLayerSpacing = 200.0
)

// Options configures layout geometry and the ordering heuristic.
type Options struct {
	// NodeSpacing is the horizontal distance between layer siblings.
	NodeSpacing float64
	// LayerSpacing is the vertical distance between layers.
	LayerSpacing float64
	// Iterations is the number of barycenter sweep rounds.
	Iterations int
}

func (o Options) withDefaults() Options {
	if o.NodeSpacing == 0 {
		o.NodeSpacing = DefaultNodeSpacing
	}
	if o.LayerSpacing == 0 {
		o.LayerSpacing = DefaultLayerSpacing
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	return o
}

// Position is a node's final drawing coordinate.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Result is the complete layout of a graph plus quality diagnostics.
type Result struct {
	// Layers maps node id to layer index (0 = top).
	Layers map[string]int
	// Orders maps layer index to node ids in left-to-right order.
	Orders map[int][]string
	// Positions maps node id to its coordinate.
	Positions map[string]Position
	// Crossings is the diagnostic crossing count of the final ordering.
	Crossings int
	// LayerCount is the number of occupied layers.
	LayerCount int
	// MaxLayerWidth is the widest layer's node count.
	MaxLayerWidth int
}

// Positions converts per-layer orderings into coordinates. Each layer is
// centered on x = 0:
//
//	x = -(w-1)*spacing/2 + order*spacing
//	y = layer*separation
//
// y depends on the layer alone and is strictly monotonic in it, so any
// downstream adjustment of x can never break the hierarchy.
func Positions(orders map[int][]string, opts Options) map[string]Position {
	opts = opts.withDefaults()
	positions := make(map[string]Position)
	for layer, row := range orders {
		startX := -float64(len(row)-1) * opts.NodeSpacing / 2
		for i, id := range row {
			positions[id] = Position{
				X: startX + float64(i)*opts.NodeSpacing,
				Y: float64(layer) * opts.LayerSpacing,
			}
		}
	}
	return positions
}

// Compute runs the full layout: layer assignment, barycenter ordering
// with leaf grouping, and position assignment, plus diagnostics.
func Compute(g *graph.Graph, opts Options) Result {
	opts = opts.withDefaults()

	layers := AssignLayers(g)
	orders := Order(g, layers, opts.Iterations)

	res := Result{
		Layers:     layers,
		Orders:     orders,
		Positions:  Positions(orders, opts),
		LayerCount: len(orders),
	}
	for _, row := range orders {
		if len(row) > res.MaxLayerWidth {
			res.MaxLayerWidth = len(row)
		}
	}
	res.Crossings = CountCrossings(g, layers, orders)
	return res
}
