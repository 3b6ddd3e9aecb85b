package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/argmaplab/argmap/pkg/errors"
	"github.com/argmaplab/argmap/pkg/graph"
)

// Document is the input wire format: extracted argument components and
// the relations between them.
type Document struct {
	Nodes []NodeInput `json:"nodes"`
	Edges []EdgeInput `json:"edges"`
}

// NodeInput is one extracted component as it arrives on the wire.
type NodeInput struct {
	ID         string  `json:"id"`
	Role       string  `json:"role"`
	Label      string  `json:"label"`
	Span       string  `json:"span,omitempty"`
	Confidence float64 `json:"confidence"`
	// Seq is the component's position in the source document. When
	// omitted, the array index is used.
	Seq *int `json:"seq,omitempty"`
}

// EdgeInput is one extracted relation as it arrives on the wire.
type EdgeInput struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Relation   string  `json:"relation"`
	Confidence float64 `json:"confidence"`
}

// Decode reads an input document from r and builds a graph from it.
//
// Decoding is lenient: entries that cannot be used are dropped or
// coerced, and each such decision is reported as a warning string.
// Decode fails only when the JSON itself cannot be parsed.
//
// Coercion rules:
//   - node with an invalid id or empty label: dropped
//   - duplicate node id: later occurrence dropped
//   - unknown role: coerced to "other"
//   - asserted "conclusion" role: downgraded to "claim"
//   - confidence outside [0,1]: clamped; NaN becomes 0.5
//   - missing seq: defaults to the node's array index
//   - edge with an unknown relation, unknown endpoint, or identical
//     endpoints: dropped
//
// Duplicate edges on the same (source, target, relation) triple collapse
// silently, keeping the highest confidence.
func Decode(r io.Reader) (*graph.Graph, []string, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}
	return FromDocument(doc)
}

// FromDocument builds a graph from an already-parsed document, applying
// the same coercion rules as [Decode].
func FromDocument(doc Document) (*graph.Graph, []string, error) {
	g := graph.New()
	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for i, n := range doc.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			warnf("node %d dropped: %s", i, errors.UserMessage(err))
			continue
		}
		if err := errors.ValidateLabel(n.Label); err != nil {
			warnf("node %q dropped: %s", n.ID, errors.UserMessage(err))
			continue
		}

		role, known := graph.ParseRole(n.Role)
		if !known {
			warnf("node %q: unknown role %q treated as other", n.ID, n.Role)
		}
		if role == graph.RoleConclusion {
			warnf("node %q: asserted conclusion downgraded to claim", n.ID)
			role = graph.RoleClaim
		}

		conf := n.Confidence
		if math.IsNaN(conf) {
			warnf("node %q: confidence is not a number, using 0.5", n.ID)
			conf = 0.5
		} else if clamped := clamp01(conf); clamped != conf {
			warnf("node %q: confidence %v clamped to %v", n.ID, conf, clamped)
			conf = clamped
		}

		seq := i
		if n.Seq != nil {
			seq = *n.Seq
		}

		err := g.AddNode(graph.Node{
			ID:         n.ID,
			Role:       role,
			Label:      n.Label,
			Span:       n.Span,
			Confidence: conf,
			Seq:        seq,
		})
		if err != nil {
			warnf("node %q dropped: %s", n.ID, errors.UserMessage(err))
		}
	}

	for _, e := range doc.Edges {
		rel, known := graph.ParseRelation(e.Relation)
		if !known {
			warnf("edge %s->%s dropped: unknown relation %q", e.Source, e.Target, e.Relation)
			continue
		}
		conf := e.Confidence
		if math.IsNaN(conf) {
			warnf("edge %s->%s: confidence is not a number, using 0.5", e.Source, e.Target)
			conf = 0.5
		} else if clamped := clamp01(conf); clamped != conf {
			warnf("edge %s->%s: confidence %v clamped to %v", e.Source, e.Target, conf, clamped)
			conf = clamped
		}
		err := g.AddEdge(graph.Edge{
			Source:     e.Source,
			Target:     e.Target,
			Relation:   rel,
			Confidence: conf,
		})
		if err != nil {
			warnf("edge %s->%s dropped: %s", e.Source, e.Target, errors.UserMessage(err))
		}
	}

	return g, warnings, nil
}

// ReadDocumentFile reads and decodes an input document at path.
func ReadDocumentFile(path string) (*graph.Graph, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
