package transform

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/argmaplab/argmap/pkg/graph"
)

// Default synthesis parameters.
const (
	DefaultMinSynthConfidence = 0.5
	DefaultConfidencePenalty  = 0.95
	DefaultSynthTimeout       = 30 * time.Second
)

// Synthesizer produces a short claim summarizing a premise cluster. The
// production implementation wraps an LLM; tests use a stub.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (SynthesisReply, error)
}

// SynthesisRequest carries one cluster to the synthesizer.
type SynthesisRequest struct {
	// PremiseSpans are the original text spans of the cluster members.
	PremiseSpans []string
	// PremiseLabels are the short paraphrases of the cluster members.
	PremiseLabels []string
	// TargetLabel is the label of the claim the cluster supports.
	TargetLabel string
}

// SynthesisReply is the synthesizer's answer for one cluster.
type SynthesisReply struct {
	// Text is the synthesized claim.
	Text string
	// Label is an optional short form; Text is truncated when empty.
	Label string
	// Coherent reports whether the premises actually share a theme.
	Coherent bool
	// Confidence is the synthesizer's self-assessment in [0,1].
	Confidence float64
}

// SynthesisConfig controls synthetic claim acceptance and rewiring.
type SynthesisConfig struct {
	// MinConfidence rejects replies the synthesizer itself doubts.
	MinConfidence float64
	// ConfidencePenalty scales the confidence of synthetic-to-target
	// edges below the premise edges they replace.
	ConfidencePenalty float64
	// Timeout bounds each synthesizer call.
	Timeout time.Duration
}

func (c SynthesisConfig) withDefaults() SynthesisConfig {
	if c.MinConfidence == 0 {
		c.MinConfidence = DefaultMinSynthConfidence
	}
	if c.ConfidencePenalty == 0 {
		c.ConfidencePenalty = DefaultConfidencePenalty
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultSynthTimeout
	}
	return c
}

// SynthesisResult reports what the rewiring stage did.
type SynthesisResult struct {
	// AddedNodes lists the ids of inserted synthetic claims, in cluster
	// order.
	AddedNodes []string
	// ClustersProcessed counts the clusters offered to the synthesizer.
	ClustersProcessed int
	// ClustersSkipped counts clusters dropped for any reason.
	ClustersSkipped int
	// SkipReasons counts skips by reason (error, timeout, incoherent,
	// low_confidence, hallucination).
	SkipReasons map[string]int
	// Warnings holds non-fatal findings, such as new proper nouns in a
	// synthetic claim.
	Warnings []string
}

// Synthesize inserts a synthetic claim for each qualifying premise
// cluster and rewires the graph around it.
//
// For each cluster the synthesizer is called with a per-call timeout. A
// failed, timed-out, incoherent, or low-confidence reply skips that
// cluster only; synthesis never aborts the stage. Accepted replies pass a
// hallucination guard: a summary introducing digits absent from the
// source premises is rejected, while new proper nouns only produce a
// warning since capitalization is a weak entity signal.
//
// On acceptance a claim node with a stable id derived from the sorted
// premise ids is inserted, each member's outgoing edges are replaced by
// premise→synthetic edges, and the synthetic node takes over the old
// targets with confidence scaled by ConfidencePenalty.
func Synthesize(ctx context.Context, g *graph.Graph, clusters []Cluster, synth Synthesizer, cfg SynthesisConfig) SynthesisResult {
	cfg = cfg.withDefaults()
	res := SynthesisResult{SkipReasons: make(map[string]int)}

	for _, cluster := range clusters {
		res.ClustersProcessed++

		req := SynthesisRequest{}
		for _, pid := range cluster.PremiseIDs {
			n, _ := g.Node(pid)
			req.PremiseSpans = append(req.PremiseSpans, n.Span)
			req.PremiseLabels = append(req.PremiseLabels, n.Label)
		}
		if t, ok := g.Node(cluster.TargetID); ok {
			req.TargetLabel = t.Label
		}

		callCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		reply, err := synth.Synthesize(callCtx, req)
		ctxErr := callCtx.Err() // read before cancel, which always sets Err
		cancel()
		switch {
		case err != nil:
			reason := "error"
			if ctxErr != nil {
				reason = "timeout"
			}
			res.skip(reason)
			continue
		case !reply.Coherent:
			res.skip("incoherent")
			continue
		case reply.Confidence < cfg.MinConfidence:
			res.skip("low_confidence")
			continue
		}

		if newDigits := hallucinatedDigits(reply.Text, req.PremiseSpans); len(newDigits) > 0 {
			res.skip("hallucination")
			continue
		}
		if nouns := newProperNouns(reply.Text, req.PremiseSpans); len(nouns) > 0 {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("synthetic claim for %v introduces proper nouns %v", cluster.PremiseIDs, nouns))
		}

		id := syntheticNodeID(cluster.PremiseIDs)
		if _, exists := g.Node(id); exists {
			res.skip("duplicate")
			continue
		}
		label := reply.Label
		if label == "" {
			label = truncate(reply.Text, 80)
		}
		seq := 0
		for _, pid := range cluster.PremiseIDs {
			if n, _ := g.Node(pid); n.Seq > seq {
				seq = n.Seq
			}
		}
		g.AddNode(graph.Node{
			ID:               id,
			Role:             graph.RoleClaim,
			Label:            label,
			Span:             reply.Text,
			Confidence:       reply.Confidence,
			Seq:              seq,
			Synthetic:        true,
			SourcePremiseIDs: cluster.PremiseIDs,
		})

		for _, pid := range cluster.PremiseIDs {
			for _, e := range g.Edges() {
				if e.Source != pid {
					continue
				}
				g.RemoveEdge(e.Source, e.Target, e.Relation)
				g.AddEdge(graph.Edge{
					Source: pid, Target: id,
					Relation: e.Relation, Confidence: e.Confidence,
				})
				if e.Target != id {
					g.AddEdge(graph.Edge{
						Source: id, Target: e.Target,
						Relation: e.Relation, Confidence: e.Confidence * cfg.ConfidencePenalty,
					})
				}
			}
		}
		res.AddedNodes = append(res.AddedNodes, id)
	}
	return res
}

func (r *SynthesisResult) skip(reason string) {
	r.ClustersSkipped++
	r.SkipReasons[reason]++
}

// syntheticNodeID derives a stable id from the sorted premise ids, so the
// same cluster always yields the same node across runs.
func syntheticNodeID(premiseIDs []string) string {
	sum := sha256.Sum256([]byte(strings.Join(premiseIDs, ":")))
	return "syn_" + hex.EncodeToString(sum[:])[:8]
}

var (
	digitRE      = regexp.MustCompile(`\d+`)
	properNounRE = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// sentence starters that capitalize without naming anything
var commonCapitalized = map[string]bool{
	"The": true, "A": true, "An": true,
	"This": true, "These": true, "That": true, "Those": true,
}

// hallucinatedDigits returns numbers present in the claim but absent from
// every source premise.
func hallucinatedDigits(claim string, premises []string) []string {
	source := make(map[string]bool)
	for _, p := range premises {
		for _, d := range digitRE.FindAllString(p, -1) {
			source[d] = true
		}
	}
	var out []string
	for _, d := range digitRE.FindAllString(claim, -1) {
		if !source[d] {
			out = append(out, d)
		}
	}
	return out
}

// newProperNouns returns capitalized words in the claim that no source
// premise contains.
func newProperNouns(claim string, premises []string) []string {
	source := make(map[string]bool)
	for _, p := range premises {
		for _, w := range properNounRE.FindAllString(p, -1) {
			source[w] = true
		}
	}
	var out []string
	seen := make(map[string]bool)
	for _, w := range properNounRE.FindAllString(claim, -1) {
		if source[w] || commonCapitalized[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
