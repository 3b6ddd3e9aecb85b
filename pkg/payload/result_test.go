package payload

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/argmaplab/argmap/pkg/graph"
	"github.com/argmaplab/argmap/pkg/layout"
)

func layoutFixture(t *testing.T) (*graph.Graph, layout.Result) {
	t.Helper()
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleConclusion, Label: "main claim", Confidence: 0.9})
	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise, Label: "evidence", Confidence: 0.8, Seq: 1})
	g.AddEdge(graph.Edge{Source: "p1", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.8})
	return g, layout.Compute(g, layout.Options{})
}

func TestBuildResult(t *testing.T) {
	g, lay := layoutFixture(t)

	res := BuildResult(g, lay, Meta{Warnings: []string{"note"}})

	if res.RunID == "" {
		t.Error("RunID not assigned")
	}
	if res.Meta.RunID != res.RunID {
		t.Errorf("Meta.RunID = %q, want %q", res.Meta.RunID, res.RunID)
	}
	if res.Meta.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not assigned")
	}
	if res.Meta.LayerCount != lay.LayerCount || res.Meta.Crossings != lay.Crossings {
		t.Errorf("layout metrics not copied: %+v", res.Meta)
	}

	if len(res.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(res.Nodes))
	}
	// Sorted by id.
	if res.Nodes[0].ID != "c1" || res.Nodes[1].ID != "p1" {
		t.Errorf("node order = [%s %s], want [c1 p1]", res.Nodes[0].ID, res.Nodes[1].ID)
	}
	c1 := res.Nodes[0]
	if c1.Layer != 0 || c1.Y != 0 {
		t.Errorf("c1 layer/y = %d/%v, want 0/0", c1.Layer, c1.Y)
	}
	p1 := res.Nodes[1]
	if p1.Layer != 1 || p1.Y != layout.DefaultLayerSpacing {
		t.Errorf("p1 layer/y = %d/%v, want 1/%v", p1.Layer, p1.Y, layout.DefaultLayerSpacing)
	}
	if len(res.Edges) != 1 || res.Edges[0].Relation != "support" {
		t.Errorf("edges = %+v, want one support edge", res.Edges)
	}
}

func TestResultEncodeDecodable(t *testing.T) {
	g, lay := layoutFixture(t)
	res := BuildResult(g, lay, Meta{})

	var buf bytes.Buffer
	if err := res.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var back Result
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.RunID != res.RunID || len(back.Nodes) != len(res.Nodes) {
		t.Errorf("round-trip mismatch: %+v vs %+v", back, res)
	}
}

func TestResultDocumentRoundTrip(t *testing.T) {
	g, lay := layoutFixture(t)
	res := BuildResult(g, lay, Meta{})

	doc := res.Document()
	g2, warnings, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}
	if g2.NodeCount() != g.NodeCount() || g2.EdgeCount() != g.EdgeCount() {
		t.Errorf("round-trip graph = %d nodes/%d edges, want %d/%d",
			g2.NodeCount(), g2.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	// The inferred conclusion re-enters as a claim, with a warning.
	n, _ := g2.Node("c1")
	if n.Role != graph.RoleClaim {
		t.Errorf("c1 role = %v, want claim after round trip", n.Role)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "downgraded") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want conclusion downgrade note", warnings)
	}
	// Seq survives explicitly rather than reverting to array order.
	p1, _ := g2.Node("p1")
	if p1.Seq != 1 {
		t.Errorf("p1.Seq = %d, want 1", p1.Seq)
	}
}

func TestWriteResultFile(t *testing.T) {
	g, lay := layoutFixture(t)
	res := BuildResult(g, lay, Meta{})

	path := t.TempDir() + "/out.json"
	if err := WriteResultFile(res, path); err != nil {
		t.Fatalf("WriteResultFile() error = %v", err)
	}
	back, _, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error = %v", err)
	}
	if back.NodeCount() != 2 {
		t.Errorf("nodes = %d, want 2", back.NodeCount())
	}
}
