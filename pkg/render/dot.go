// Package render turns a laid-out argument graph into Graphviz DOT and
// SVG. The DOT output encodes the computed layers as rank groups, so
// Graphviz reproduces the hierarchy instead of inventing its own.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/argmaplab/argmap/pkg/graph"
	"github.com/argmaplab/argmap/pkg/layout"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes role, confidence, and layer in node labels.
	// When false, only the label text is shown.
	Detailed bool
}

// role-dependent node attributes
var roleAttrs = map[graph.Role]string{
	graph.RoleConclusion: `fillcolor="gold", penwidth=2`,
	graph.RoleClaim:      `fillcolor="lightblue"`,
	graph.RolePremise:    `fillcolor="white"`,
	graph.RoleObjection:  `fillcolor="mistyrose"`,
	graph.RoleReply:      `fillcolor="honeydew"`,
	graph.RoleOther:      `fillcolor="lightgrey"`,
}

// ToDOT converts a laid-out graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Support edges are drawn solid, attack edges red and dashed.
// Synthetic claims get dashed outlines to mark them as generated
// rather than extracted.
func ToDOT(g *graph.Graph, lay layout.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph argmap {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		label := fmtLabel(n, lay.Layers[id], opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	// Pin each computed layer to one rank, top layer first.
	buf.WriteString("\n")
	for _, l := range slices.Sorted(maps.Keys(lay.Orders)) {
		buf.WriteString("  { rank=same;")
		for _, id := range lay.Orders[l] {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Relation == graph.RelationAttack {
			fmt.Fprintf(&buf, "  %q -> %q [color=red, style=dashed];\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, layer int, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\n%s, conf %.2f, layer %d", label, n.Role, n.Confidence, layer)
}

func fmtAttrs(n *graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if ra, ok := roleAttrs[n.Role]; ok {
		attrs = append(attrs, ra)
	}
	if n.Synthetic {
		attrs = append(attrs, `style="rounded,filled,dashed"`)
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox
// so embedding contexts can scale it without clipping.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
