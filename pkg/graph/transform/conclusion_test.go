package transform

import (
	"testing"

	"github.com/argmaplab/argmap/pkg/graph"
)

// Claim supported by three premises, no outgoing support: classic
// conclusion shape.
func supportedClaim(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim, Label: "We should adopt a four day week"})
	for _, id := range []string{"p1", "p2", "p3"} {
		g.AddNode(graph.Node{ID: id, Role: graph.RolePremise})
		g.AddEdge(graph.Edge{Source: id, Target: "c1", Relation: graph.RelationSupport, Confidence: 0.8})
	}
	return g
}

func TestInferConclusionsPromotesTopClaim(t *testing.T) {
	g := supportedClaim(t)

	res := InferConclusions(g, ConclusionConfig{})

	if len(res.Promoted) != 1 || res.Promoted[0] != "c1" {
		t.Fatalf("Promoted = %v, want [c1]", res.Promoted)
	}
	n, _ := g.Node("c1")
	if n.Role != graph.RoleConclusion {
		t.Errorf("c1 role = %v, want conclusion", n.Role)
	}
	// 3 support * 2.0 + 3 sources * 1.5 + sink 1.0
	if got := res.Scores[0].Score; got != 11.5 {
		t.Errorf("score = %v, want 11.5", got)
	}
	if !res.Scores[0].Selected {
		t.Error("top score not marked selected")
	}
}

func TestInferConclusionsRequiresIncomingSupport(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim})
	g.AddNode(graph.Node{ID: "o1", Role: graph.RoleObjection})
	// Attack edges do not make a claim eligible.
	g.AddEdge(graph.Edge{Source: "o1", Target: "c1", Relation: graph.RelationAttack, Confidence: 0.9})

	res := InferConclusions(g, ConclusionConfig{})

	if len(res.Promoted) != 0 {
		t.Errorf("Promoted = %v, want none without incoming support", res.Promoted)
	}
}

func TestInferConclusionsTieBreaksByID(t *testing.T) {
	g := graph.New()
	for _, id := range []string{"cb", "ca"} {
		g.AddNode(graph.Node{ID: id, Role: graph.RoleClaim})
	}
	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise})
	g.AddNode(graph.Node{ID: "p2", Role: graph.RolePremise})
	g.AddEdge(graph.Edge{Source: "p1", Target: "ca", Relation: graph.RelationSupport, Confidence: 0.8})
	g.AddEdge(graph.Edge{Source: "p2", Target: "cb", Relation: graph.RelationSupport, Confidence: 0.8})

	res := InferConclusions(g, ConclusionConfig{MaxConclusions: 1})

	if len(res.Promoted) != 1 || res.Promoted[0] != "ca" {
		t.Errorf("Promoted = %v, want [ca] on tied scores", res.Promoted)
	}
}

func TestInferConclusionsSinkBonus(t *testing.T) {
	// cb supports another node, ca does not; the sink bonus must break
	// the otherwise equal scores in favor of ca.
	g := graph.New()
	for _, id := range []string{"ca", "cb", "cc"} {
		g.AddNode(graph.Node{ID: id, Role: graph.RoleClaim})
	}
	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise})
	g.AddNode(graph.Node{ID: "p2", Role: graph.RolePremise})
	g.AddEdge(graph.Edge{Source: "p1", Target: "ca", Relation: graph.RelationSupport, Confidence: 0.8})
	g.AddEdge(graph.Edge{Source: "p2", Target: "cb", Relation: graph.RelationSupport, Confidence: 0.8})
	g.AddEdge(graph.Edge{Source: "cb", Target: "cc", Relation: graph.RelationSupport, Confidence: 0.8})

	res := InferConclusions(g, ConclusionConfig{MaxConclusions: 1})

	if len(res.Promoted) != 1 || res.Promoted[0] != "ca" {
		t.Fatalf("Promoted = %v, want [ca]", res.Promoted)
	}
	for _, s := range res.Scores {
		if s.NodeID == "cb" && s.IsSink {
			t.Error("cb marked as sink despite outgoing support")
		}
	}
}

func TestInferConclusionsRemovesOutgoingEdges(t *testing.T) {
	g := supportedClaim(t)
	g.AddNode(graph.Node{ID: "x1", Role: graph.RoleOther})
	g.AddEdge(graph.Edge{Source: "c1", Target: "x1", Relation: graph.RelationAttack, Confidence: 0.6})

	res := InferConclusions(g, ConclusionConfig{})

	if len(res.EdgesRemoved) != 1 {
		t.Fatalf("EdgesRemoved = %v, want the conclusion's outgoing edge", res.EdgesRemoved)
	}
	if _, ok := g.EdgeBetween("c1", "x1", graph.RelationAttack); ok {
		t.Error("edge from conclusion to non-conclusion still present")
	}
}

func TestInferConclusionsThreshold(t *testing.T) {
	g := supportedClaim(t)

	res := InferConclusions(g, ConclusionConfig{Threshold: 100})

	if len(res.Promoted) != 0 {
		t.Errorf("Promoted = %v, want none above threshold 100", res.Promoted)
	}
	if len(res.Scores) != 0 {
		t.Errorf("Scores = %v, want no eligible candidates", res.Scores)
	}
}
