package layout

import (
	"testing"

	"github.com/argmaplab/argmap/pkg/graph"
)

func TestPositionsCentered(t *testing.T) {
	orders := map[int][]string{
		0: {"c1"},
		1: {"p1", "p2", "p3"},
	}

	pos := Positions(orders, Options{})

	if got := pos["c1"]; got.X != 0 || got.Y != 0 {
		t.Errorf("c1 = %+v, want (0, 0)", got)
	}
	wantX := map[string]float64{"p1": -250, "p2": 0, "p3": 250}
	for id, x := range wantX {
		got := pos[id]
		if got.X != x {
			t.Errorf("%s.X = %v, want %v", id, got.X, x)
		}
		if got.Y != 200 {
			t.Errorf("%s.Y = %v, want 200", id, got.Y)
		}
	}
}

func TestPositionsCustomSpacing(t *testing.T) {
	orders := map[int][]string{2: {"a", "b"}}

	pos := Positions(orders, Options{NodeSpacing: 100, LayerSpacing: 50})

	if got := pos["a"]; got.X != -50 || got.Y != 100 {
		t.Errorf("a = %+v, want (-50, 100)", got)
	}
	if got := pos["b"]; got.X != 50 || got.Y != 100 {
		t.Errorf("b = %+v, want (50, 100)", got)
	}
}

func TestCountCrossings(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"ca", "cb", "pa", "pb"} {
		role := graph.RoleClaim
		if id[0] == 'p' {
			role = graph.RolePremise
		}
		g.AddNode(graph.Node{ID: id, Role: role})
	}
	g.AddEdge(graph.Edge{Source: "pa", Target: "cb", Relation: graph.RelationSupport, Confidence: 0.8})
	g.AddEdge(graph.Edge{Source: "pb", Target: "ca", Relation: graph.RelationSupport, Confidence: 0.8})
	layers := map[string]int{"ca": 0, "cb": 0, "pa": 1, "pb": 1}

	crossed := map[int][]string{0: {"ca", "cb"}, 1: {"pa", "pb"}}
	if got := CountCrossings(g, layers, crossed); got != 1 {
		t.Errorf("crossings = %d, want 1", got)
	}
	uncrossed := map[int][]string{0: {"ca", "cb"}, 1: {"pb", "pa"}}
	if got := CountCrossings(g, layers, uncrossed); got != 0 {
		t.Errorf("crossings = %d, want 0", got)
	}
}

func TestComputeMetrics(t *testing.T) {
	g := chainGraph(t)

	res := Compute(g, Options{})

	if res.LayerCount != 3 {
		t.Errorf("LayerCount = %d, want 3", res.LayerCount)
	}
	if res.MaxLayerWidth != 2 {
		t.Errorf("MaxLayerWidth = %d, want 2", res.MaxLayerWidth)
	}
	if res.Crossings != 0 {
		t.Errorf("Crossings = %d, want 0", res.Crossings)
	}
	if len(res.Positions) != g.NodeCount() {
		t.Errorf("positions = %d entries, want %d", len(res.Positions), g.NodeCount())
	}
	// y strictly increases with layer depth.
	c, m, p := res.Positions["c1"], res.Positions["m1"], res.Positions["p1"]
	if !(c.Y < m.Y && m.Y < p.Y) {
		t.Errorf("y not monotonic: c1=%v m1=%v p1=%v", c.Y, m.Y, p.Y)
	}
}
