// Package pipeline runs the complete argument-map construction flow:
// decode → confidence filter → dedupe → validate → bridge →
// conclusions → cluster → synthesize → layout. CLI and API share this
// package, so stage order and defaults are identical across all entry
// points.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	payload.WriteResultFile(result.Output, "map.json")
//
// Every stage but synthesis is deterministic; identical documents and
// options yield identical graph content, which is what makes result
// caching sound.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/argmaplab/argmap/pkg/errors"
	"github.com/argmaplab/argmap/pkg/graph/transform"
	"github.com/argmaplab/argmap/pkg/layout"
)

// DefaultDedupeThreshold is the similarity above which two same-role
// nodes are considered duplicates.
const DefaultDedupeThreshold = 0.8

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests; the
// serialized form doubles as the cache key fingerprint.
type Options struct {
	// DedupeThreshold is the similarity cutoff for merging nodes.
	DedupeThreshold float64 `json:"dedupe_threshold,omitempty"`
	// SkipDedupe disables the duplicate merge stage.
	SkipDedupe bool `json:"skip_dedupe,omitempty"`
	// SkipBridging leaves stray components disconnected.
	SkipBridging bool `json:"skip_bridging,omitempty"`
	// SkipSynthesis disables synthetic claim insertion even when a
	// synthesizer is configured.
	SkipSynthesis bool `json:"skip_synthesis,omitempty"`

	// Inclusion bounds the confidence range for keeping decoded nodes
	// and edges. The zero value admits everything.
	Inclusion transform.FilterConfig `json:"inclusion,omitempty"`

	// Conclusions configures conclusion inference scoring.
	Conclusions transform.ConclusionConfig `json:"conclusions,omitempty"`
	// Clustering configures premise grouping.
	Clustering transform.ClusterConfig `json:"clustering,omitempty"`
	// Synthesis configures synthetic claim acceptance.
	Synthesis transform.SynthesisConfig `json:"synthesis,omitempty"`
	// Layout configures geometry and ordering iterations.
	Layout layout.Options `json:"layout,omitempty"`

	// Refresh bypasses the cache and recomputes. It does not change the
	// result, so it stays out of the cache key fingerprint.
	Refresh bool `json:"-"`

	// Runtime options (not serialized)
	Logger      *log.Logger           `json:"-"`
	Synthesizer transform.Synthesizer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent; calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DedupeThreshold == 0 {
		o.DedupeThreshold = DefaultDedupeThreshold
	}
	if o.DedupeThreshold < 0 || o.DedupeThreshold > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"dedupe threshold %v out of range [0,1]", o.DedupeThreshold)
	}
	for _, b := range []float64{
		o.Inclusion.MinNodeConfidence, o.Inclusion.MaxNodeConfidence,
		o.Inclusion.MinEdgeConfidence, o.Inclusion.MaxEdgeConfidence,
	} {
		if b < 0 || b > 1 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"confidence inclusion bound %v out of range [0,1]", b)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	DecodeTime    time.Duration
	TransformTime time.Duration
	LayoutTime    time.Duration
}

// CacheInfo tracks whether the run was served from cache.
type CacheInfo struct {
	ResultHit bool
}
