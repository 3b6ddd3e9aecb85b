package transform

import "github.com/argmaplab/argmap/pkg/graph"

// FilterConfig bounds the confidence range a node or edge must fall in
// to stay in the graph. Zero maxima default to 1, so the zero value
// admits everything the decoder produced.
type FilterConfig struct {
	// MinNodeConfidence excludes nodes below this confidence.
	MinNodeConfidence float64 `json:"min_node_confidence,omitempty"`
	// MaxNodeConfidence excludes nodes above this confidence.
	MaxNodeConfidence float64 `json:"max_node_confidence,omitempty"`
	// MinEdgeConfidence excludes edges below this confidence.
	MinEdgeConfidence float64 `json:"min_edge_confidence,omitempty"`
	// MaxEdgeConfidence excludes edges above this confidence.
	MaxEdgeConfidence float64 `json:"max_edge_confidence,omitempty"`
}

func (c FilterConfig) withDefaults() FilterConfig {
	if c.MaxNodeConfidence == 0 {
		c.MaxNodeConfidence = 1
	}
	if c.MaxEdgeConfidence == 0 {
		c.MaxEdgeConfidence = 1
	}
	return c
}

// FilterResult reports what confidence filtering removed.
type FilterResult struct {
	// NodesRemoved lists excluded node ids in ascending order.
	NodesRemoved []string
	// EdgesRemoved lists edges excluded on their own confidence. Edges
	// that disappeared with a removed endpoint are not listed.
	EdgesRemoved []graph.Edge
}

// FilterByConfidence removes nodes and edges whose confidence falls
// outside the configured inclusion range. Removing a node takes its
// incident edges with it; orphans this creates are the validator's
// problem, keeping the stage order unchanged.
func FilterByConfidence(g *graph.Graph, cfg FilterConfig) FilterResult {
	cfg = cfg.withDefaults()
	var res FilterResult

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if n.Confidence < cfg.MinNodeConfidence || n.Confidence > cfg.MaxNodeConfidence {
			g.RemoveNode(id)
			res.NodesRemoved = append(res.NodesRemoved, id)
		}
	}

	for _, e := range g.Edges() {
		if e.Confidence < cfg.MinEdgeConfidence || e.Confidence > cfg.MaxEdgeConfidence {
			g.RemoveEdge(e.Source, e.Target, e.Relation)
			res.EdgesRemoved = append(res.EdgesRemoved, e)
		}
	}
	return res
}
