package layout_test

import (
	"fmt"

	"github.com/argmaplab/argmap/pkg/graph"
	"github.com/argmaplab/argmap/pkg/layout"
)

func ExampleCompute() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim, Label: "expand the tram network", Confidence: 0.9})
	_ = g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise, Label: "ridership grew", Confidence: 0.8, Seq: 1})
	_ = g.AddNode(graph.Node{ID: "p2", Role: graph.RolePremise, Label: "congestion doubled", Confidence: 0.7, Seq: 2})
	_ = g.AddEdge(graph.Edge{Source: "p1", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.8})
	_ = g.AddEdge(graph.Edge{Source: "p2", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.7})

	res := layout.Compute(g, layout.Options{})

	fmt.Println("layers:", res.LayerCount)
	for _, id := range []string{"c1", "p1", "p2"} {
		pos := res.Positions[id]
		fmt.Printf("%s layer=%d x=%.0f y=%.0f\n", id, res.Layers[id], pos.X, pos.Y)
	}
	// Output:
	// layers: 2
	// c1 layer=0 x=0 y=0
	// p1 layer=1 x=-125 y=200
	// p2 layer=1 x=125 y=200
}
