package graph_test

import (
	"fmt"

	"github.com/argmaplab/argmap/pkg/graph"
)

func ExampleGraph() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim, Label: "the claim", Confidence: 0.9})
	_ = g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise, Label: "a premise", Confidence: 0.8})
	_ = g.AddEdge(graph.Edge{Source: "p1", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.8})

	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("edges:", g.EdgeCount())
	fmt.Println("supporters of c1:", g.Supporters("c1"))
	// Output:
	// nodes: 2
	// edges: 1
	// supporters of c1: [p1]
}
