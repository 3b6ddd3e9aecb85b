package payload

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/argmaplab/argmap/pkg/errors"
	"github.com/argmaplab/argmap/pkg/graph"
	"github.com/argmaplab/argmap/pkg/graph/transform"
	"github.com/argmaplab/argmap/pkg/layout"
)

// NodeOutput is one node of the final map, with its layout assignment.
type NodeOutput struct {
	ID               string   `json:"id" bson:"id"`
	Role             string   `json:"role" bson:"role"`
	Label            string   `json:"label" bson:"label"`
	Span             string   `json:"span,omitempty" bson:"span,omitempty"`
	Confidence       float64  `json:"confidence" bson:"confidence"`
	Seq              int      `json:"seq" bson:"seq"`
	Synthetic        bool     `json:"synthetic,omitempty" bson:"synthetic,omitempty"`
	SourcePremiseIDs []string `json:"source_premise_ids,omitempty" bson:"source_premise_ids,omitempty"`

	Layer int     `json:"layer" bson:"layer"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// EdgeOutput is one edge of the final map.
type EdgeOutput struct {
	Source     string  `json:"source" bson:"source"`
	Target     string  `json:"target" bson:"target"`
	Relation   string  `json:"relation" bson:"relation"`
	Confidence float64 `json:"confidence" bson:"confidence"`
}

// NewEdgeOutputs converts graph edges to their wire form, preserving
// order.
func NewEdgeOutputs(edges []graph.Edge) []EdgeOutput {
	if len(edges) == 0 {
		return nil
	}
	out := make([]EdgeOutput, len(edges))
	for i, e := range edges {
		out[i] = EdgeOutput{
			Source:     e.Source,
			Target:     e.Target,
			Relation:   string(e.Relation),
			Confidence: e.Confidence,
		}
	}
	return out
}

// Meta records everything a pipeline run did to the graph, for
// diagnostics and storage. All slices are in deterministic order.
type Meta struct {
	RunID       string    `json:"run_id" bson:"run_id"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`

	// Warnings aggregates decode coercions, bridging notes, and
	// synthesis findings.
	Warnings []string `json:"warnings,omitempty" bson:"warnings,omitempty"`

	// Merges maps each removed duplicate node id to its survivor.
	Merges map[string]string `json:"merges,omitempty" bson:"merges,omitempty"`

	CycleEdgesRemoved []EdgeOutput `json:"cycle_edges_removed,omitempty" bson:"cycle_edges_removed,omitempty"`
	OrphansRemoved    []string     `json:"orphans_removed,omitempty" bson:"orphans_removed,omitempty"`
	Bridges           []EdgeOutput `json:"bridges,omitempty" bson:"bridges,omitempty"`

	ConclusionScores []transform.ConclusionScore `json:"conclusion_scores,omitempty" bson:"conclusion_scores,omitempty"`
	ClusterStats     *transform.ClusterStats     `json:"cluster_stats,omitempty" bson:"cluster_stats,omitempty"`
	SyntheticNodes   []string                    `json:"synthetic_nodes,omitempty" bson:"synthetic_nodes,omitempty"`
	SynthesisSkips   map[string]int              `json:"synthesis_skips,omitempty" bson:"synthesis_skips,omitempty"`

	Crossings     int `json:"crossings" bson:"crossings"`
	LayerCount    int `json:"layer_count" bson:"layer_count"`
	MaxLayerWidth int `json:"max_layer_width" bson:"max_layer_width"`

	// CacheHit reports whether the result was served from the cache
	// rather than computed.
	CacheHit bool `json:"cache_hit,omitempty" bson:"cache_hit,omitempty"`
}

// Result is the output wire format: the laid-out graph plus the meta
// block describing the run.
type Result struct {
	RunID string       `json:"run_id" bson:"_id"`
	Nodes []NodeOutput `json:"nodes" bson:"nodes"`
	Edges []EdgeOutput `json:"edges" bson:"edges"`
	Meta  Meta         `json:"meta" bson:"meta"`
}

// BuildResult assembles the output document from the final graph and
// its layout. Nodes are emitted sorted by id; edges in the graph's
// stored order. A missing RunID is filled with a fresh UUID and a zero
// GeneratedAt with the current time.
func BuildResult(g *graph.Graph, lay layout.Result, meta Meta) Result {
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}
	meta.Crossings = lay.Crossings
	meta.LayerCount = lay.LayerCount
	meta.MaxLayerWidth = lay.MaxLayerWidth

	res := Result{
		RunID: meta.RunID,
		Edges: NewEdgeOutputs(g.Edges()),
		Meta:  meta,
	}
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		pos := lay.Positions[id]
		res.Nodes = append(res.Nodes, NodeOutput{
			ID:               n.ID,
			Role:             string(n.Role),
			Label:            n.Label,
			Span:             n.Span,
			Confidence:       n.Confidence,
			Seq:              n.Seq,
			Synthetic:        n.Synthetic,
			SourcePremiseIDs: n.SourcePremiseIDs,
			Layer:            lay.Layers[id],
			X:                pos.X,
			Y:                pos.Y,
		})
	}
	return res
}

// Document converts the result back into an input document. Feeding it
// to [FromDocument] reproduces the graph content, with inferred
// conclusions arriving as claims again.
func (r Result) Document() Document {
	doc := Document{}
	for _, n := range r.Nodes {
		seq := n.Seq
		doc.Nodes = append(doc.Nodes, NodeInput{
			ID:         n.ID,
			Role:       n.Role,
			Label:      n.Label,
			Span:       n.Span,
			Confidence: n.Confidence,
			Seq:        &seq,
		})
	}
	for _, e := range r.Edges {
		doc.Edges = append(doc.Edges, EdgeInput(e))
	}
	return doc
}

// Encode writes the result as indented JSON to w.
func (r Result) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	return nil
}

// WriteResultFile writes the result to a JSON file at path.
func WriteResultFile(r Result, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return r.Encode(f)
}
