package render

import (
	"strings"
	"testing"

	"github.com/argmaplab/argmap/pkg/graph"
	"github.com/argmaplab/argmap/pkg/layout"
)

func renderFixture(t *testing.T) (*graph.Graph, layout.Result) {
	t.Helper()
	g := graph.New()
	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleConclusion, Label: "main claim", Confidence: 0.9})
	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise, Label: "evidence", Confidence: 0.8})
	g.AddNode(graph.Node{ID: "o1", Role: graph.RoleObjection, Label: "but actually", Confidence: 0.7})
	g.AddNode(graph.Node{ID: "syn_ab12cd34", Role: graph.RoleClaim, Label: "summary", Synthetic: true})
	g.AddEdge(graph.Edge{Source: "p1", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.8})
	g.AddEdge(graph.Edge{Source: "o1", Target: "c1", Relation: graph.RelationAttack, Confidence: 0.7})
	return g, layout.Compute(g, layout.Options{})
}

func TestToDOT(t *testing.T) {
	g, lay := renderFixture(t)

	dot := ToDOT(g, lay, Options{})

	for _, want := range []string{
		"digraph argmap {",
		"rankdir=BT;",
		`"c1" [label="main claim", fillcolor="gold", penwidth=2];`,
		`"p1" -> "c1";`,
		`"o1" -> "c1" [color=red, style=dashed];`,
		"rank=same;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTSyntheticDashed(t *testing.T) {
	g, lay := renderFixture(t)

	dot := ToDOT(g, lay, Options{})

	line := ""
	for _, l := range strings.Split(dot, "\n") {
		if strings.Contains(l, "syn_ab12cd34") && strings.Contains(l, "label=") {
			line = l
		}
	}
	if line == "" {
		t.Fatal("synthetic node missing from DOT")
	}
	if !strings.Contains(line, "dashed") {
		t.Errorf("synthetic node not dashed: %s", line)
	}
}

func TestToDOTDetailed(t *testing.T) {
	g, lay := renderFixture(t)

	dot := ToDOT(g, lay, Options{Detailed: true})

	if !strings.Contains(dot, "conclusion, conf 0.90, layer 0") {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)

	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("width/height not rewritten: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg><g/></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("normalizeViewBox changed input without viewBox: %s", got)
	}
}
