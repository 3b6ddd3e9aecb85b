package transform

import (
	"testing"

	"github.com/argmaplab/argmap/pkg/graph"
)

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "remote work boosts productivity", "remote work boosts productivity", 1.0, 1.0},
		{"word order ignored", "boosts productivity remote work", "remote work boosts productivity", 1.0, 1.0},
		{"punctuation and case ignored", "Remote work BOOSTS productivity!", "remote work boosts productivity", 1.0, 1.0},
		{"unrelated", "remote work boosts productivity", "cats are mammals", 0.0, 0.5},
		{"empty is never similar", "", "remote work", 0.0, 0.0},
		{"punctuation only is never similar", "?!...", "remote work", 0.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextSimilarity(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("TextSimilarity(%q, %q) = %v, want in [%v, %v]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestDedupeMergesNearDuplicates(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim, Label: "Remote work boosts productivity", Confidence: 0.9})
	g.AddNode(graph.Node{ID: "c2", Role: graph.RoleClaim, Label: "Remote work boosts productivity.", Confidence: 0.6})
	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise, Label: "Commute time drops to zero", Confidence: 0.8})
	g.AddEdge(graph.Edge{Source: "p1", Target: "c2", Relation: graph.RelationSupport, Confidence: 0.7})

	res := Dedupe(g, 0.8)

	if got := res.Merged["c2"]; got != "c1" {
		t.Fatalf("Merged[c2] = %q, want c1", got)
	}
	if _, ok := g.Node("c2"); ok {
		t.Error("c2 still present after merge")
	}
	// Edge rewritten to the survivor.
	if _, ok := g.EdgeBetween("p1", "c1", graph.RelationSupport); !ok {
		t.Error("support edge was not redirected to survivor c1")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestDedupeSurvivorSelection(t *testing.T) {
	tests := []struct {
		name  string
		confA float64
		confB float64
		want  string
	}{
		{"higher confidence wins", 0.6, 0.9, "b1"},
		{"tie goes to smaller id", 0.7, 0.7, "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			g.AddNode(graph.Node{ID: "a1", Role: graph.RoleClaim, Label: "taxes should rise", Confidence: tt.confA})
			g.AddNode(graph.Node{ID: "b1", Role: graph.RoleClaim, Label: "taxes should rise", Confidence: tt.confB})

			Dedupe(g, 0.8)

			if _, ok := g.Node(tt.want); !ok {
				t.Errorf("survivor %s missing", tt.want)
			}
			if g.NodeCount() != 1 {
				t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
			}
		})
	}
}

func TestDedupeRespectsRoleAndThreshold(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim, Label: "exercise improves health", Confidence: 0.9})
	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise, Label: "exercise improves health", Confidence: 0.8})
	g.AddNode(graph.Node{ID: "c2", Role: graph.RoleClaim, Label: "sugar taxes reduce consumption", Confidence: 0.8})

	res := Dedupe(g, 0.8)

	if len(res.Merged) != 0 {
		t.Errorf("Merged = %v, want no merges across roles or below threshold", res.Merged)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
}

func TestDedupeMergedEdgeSelfLoopDropped(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim, Label: "city air is cleaner now", Confidence: 0.9})
	g.AddNode(graph.Node{ID: "c2", Role: graph.RoleClaim, Label: "city air is cleaner now", Confidence: 0.5})
	g.AddEdge(graph.Edge{Source: "c2", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.7})

	Dedupe(g, 0.8)

	// The edge between the merged pair would be a self-loop; it must go.
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}
