package layout

import (
	"testing"

	"github.com/argmaplab/argmap/pkg/graph"
)

func chainGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleConclusion})
	g.AddNode(graph.Node{ID: "m1", Role: graph.RoleClaim})
	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise})
	g.AddNode(graph.Node{ID: "p2", Role: graph.RolePremise})
	g.AddEdge(graph.Edge{Source: "m1", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.9})
	g.AddEdge(graph.Edge{Source: "p1", Target: "m1", Relation: graph.RelationSupport, Confidence: 0.8})
	g.AddEdge(graph.Edge{Source: "p2", Target: "m1", Relation: graph.RelationSupport, Confidence: 0.8})
	return g
}

func TestAssignLayersChain(t *testing.T) {
	g := chainGraph(t)

	layers := AssignLayers(g)

	want := map[string]int{"c1": 0, "m1": 1, "p1": 2, "p2": 2}
	for id, l := range want {
		if layers[id] != l {
			t.Errorf("layer(%s) = %d, want %d", id, layers[id], l)
		}
	}
}

func TestAssignLayersSupportMonotonic(t *testing.T) {
	g := chainGraph(t)
	// Long edge: p1 also supports the conclusion directly.
	g.AddEdge(graph.Edge{Source: "p1", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.5})

	layers := AssignLayers(g)

	for _, e := range g.Edges() {
		if e.Relation != graph.RelationSupport {
			continue
		}
		if layers[e.Source] <= layers[e.Target] {
			t.Errorf("layer(%s)=%d not below layer(%s)=%d", e.Source, layers[e.Source], e.Target, layers[e.Target])
		}
	}
}

func TestAssignLayersAttackIgnored(t *testing.T) {
	g := chainGraph(t)
	g.AddNode(graph.Node{ID: "o1", Role: graph.RoleObjection})
	// Attack edges never push nodes down the hierarchy.
	g.AddEdge(graph.Edge{Source: "o1", Target: "p1", Relation: graph.RelationAttack, Confidence: 0.9})
	g.AddNode(graph.Node{ID: "z1", Role: graph.RoleOther})

	layers := AssignLayers(g)

	if layers["o1"] != 0 {
		t.Errorf("layer(o1) = %d, want 0 for attack-only node", layers["o1"])
	}
	if layers["z1"] != 0 {
		t.Errorf("layer(z1) = %d, want 0 for isolated node", layers["z1"])
	}
}
