package transform

import (
	"slices"
	"strings"

	"github.com/argmaplab/argmap/pkg/graph"
)

// Default conclusion scoring parameters.
const (
	DefaultSupportWeight       = 2.0
	DefaultSourcesWeight       = 1.5
	DefaultSinkWeight          = 1.0
	DefaultConclusionThreshold = 1.0
	DefaultMaxConclusions      = 1
)

// ConclusionConfig controls conclusion inference scoring and selection.
type ConclusionConfig struct {
	// SupportWeight scales the incoming support edge count.
	SupportWeight float64
	// SourcesWeight scales the number of distinct supporting nodes.
	SourcesWeight float64
	// SinkWeight is added once when the node supports nothing itself.
	// Rewarding sinks rather than penalizing every outgoing edge keeps a
	// claim that also raises an objection eligible.
	SinkWeight float64
	// Threshold is the minimum score for eligibility.
	Threshold float64
	// MaxConclusions bounds how many claims are promoted. Zero means the
	// default of one.
	MaxConclusions int
}

// withDefaults fills zero fields with the package defaults.
func (c ConclusionConfig) withDefaults() ConclusionConfig {
	if c.SupportWeight == 0 {
		c.SupportWeight = DefaultSupportWeight
	}
	if c.SourcesWeight == 0 {
		c.SourcesWeight = DefaultSourcesWeight
	}
	if c.SinkWeight == 0 {
		c.SinkWeight = DefaultSinkWeight
	}
	if c.Threshold == 0 {
		c.Threshold = DefaultConclusionThreshold
	}
	if c.MaxConclusions == 0 {
		c.MaxConclusions = DefaultMaxConclusions
	}
	return c
}

// ConclusionScore is the per-candidate score breakdown, kept for the
// output meta block.
type ConclusionScore struct {
	NodeID          string  `json:"node_id" bson:"node_id"`
	Score           float64 `json:"score" bson:"score"`
	IncomingSupport int     `json:"incoming_support" bson:"incoming_support"`
	DistinctSources int     `json:"distinct_sources" bson:"distinct_sources"`
	IsSink          bool    `json:"is_sink" bson:"is_sink"`
	Selected        bool    `json:"selected" bson:"selected"`
}

// ConclusionResult reports what conclusion inference decided.
type ConclusionResult struct {
	// Promoted lists the claim ids promoted to conclusions, in selection
	// order (score descending, ties by id ascending).
	Promoted []string
	// Scores holds the breakdown for every eligible candidate, selected
	// or not, sorted the same way.
	Scores []ConclusionScore
	// EdgesRemoved lists edges deleted because they ran from a conclusion
	// to a non-conclusion.
	EdgesRemoved []graph.Edge
}

// InferConclusions scores every claim node and promotes the top scorers to
// conclusions.
//
// score = SupportWeight*incomingSupport + SourcesWeight*distinctSources +
// SinkWeight*sinkBonus, where sinkBonus is 1 when the claim supports no
// other node. A claim with no incoming support edge is never eligible
// regardless of score. Candidates at or above Threshold are ranked by
// score descending with ties broken by id ascending, and the top
// MaxConclusions are promoted.
//
// After promotion, edges from a conclusion to a non-conclusion are
// removed; conclusion-to-conclusion edges stay.
func InferConclusions(g *graph.Graph, cfg ConclusionConfig) ConclusionResult {
	cfg = cfg.withDefaults()
	var res ConclusionResult

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if n.Role != graph.RoleClaim {
			continue
		}
		supporters := g.Supporters(id)
		if len(supporters) == 0 {
			continue
		}
		distinct := make(map[string]bool, len(supporters))
		for _, s := range supporters {
			distinct[s] = true
		}
		sink := len(g.SupportTargets(id)) == 0

		score := cfg.SupportWeight*float64(len(supporters)) +
			cfg.SourcesWeight*float64(len(distinct))
		if sink {
			score += cfg.SinkWeight
		}
		if score < cfg.Threshold {
			continue
		}
		res.Scores = append(res.Scores, ConclusionScore{
			NodeID:          id,
			Score:           score,
			IncomingSupport: len(supporters),
			DistinctSources: len(distinct),
			IsSink:          sink,
		})
	}

	slices.SortFunc(res.Scores, func(a, b ConclusionScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return strings.Compare(a.NodeID, b.NodeID)
	})

	limit := min(cfg.MaxConclusions, len(res.Scores))
	for i := 0; i < limit; i++ {
		id := res.Scores[i].NodeID
		if err := g.PromoteToConclusion(id); err != nil {
			continue
		}
		res.Scores[i].Selected = true
		res.Promoted = append(res.Promoted, id)
	}

	if len(res.Promoted) > 0 {
		for _, e := range g.Edges() {
			src, _ := g.Node(e.Source)
			if src == nil || src.Role != graph.RoleConclusion {
				continue
			}
			tgt, _ := g.Node(e.Target)
			if tgt != nil && tgt.Role == graph.RoleConclusion {
				continue
			}
			g.RemoveEdge(e.Source, e.Target, e.Relation)
			res.EdgesRemoved = append(res.EdgesRemoved, e)
		}
	}
	return res
}
