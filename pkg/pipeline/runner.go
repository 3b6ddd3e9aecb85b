package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/argmaplab/argmap/pkg/cache"
	"github.com/argmaplab/argmap/pkg/graph"
	"github.com/argmaplab/argmap/pkg/graph/transform"
	"github.com/argmaplab/argmap/pkg/layout"
	"github.com/argmaplab/argmap/pkg/payload"
)

// Runner encapsulates pipeline execution with result caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store run results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Output is the wire-format result, ready to write or store.
	Output payload.Result

	// Graph is the final in-memory graph, for rendering.
	Graph *graph.Graph

	// Clusters are the premise groups found before synthesis.
	Clusters []transform.Cluster

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the result came from cache.
	CacheInfo CacheInfo
}

// Execute runs the complete pipeline on a document, consulting the
// cache first. A cached result is returned with Meta.CacheHit set and
// without a graph (the caller has the full wire form).
func (r *Runner) Execute(ctx context.Context, doc payload.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cacheKey, err := r.resultKey(doc, opts)
	if err == nil && !opts.Refresh {
		if data, hit, cerr := r.Cache.Get(ctx, cacheKey); cerr == nil && hit {
			var cached payload.Result
			if json.Unmarshal(data, &cached) == nil {
				cached.Meta.CacheHit = true
				opts.Logger.Info("result served from cache", "run_id", cached.RunID)
				return &Result{Output: cached, CacheInfo: CacheInfo{ResultHit: true}}, nil
			}
			// Corrupt entry, fall through to recompute.
		}
	}

	res, err := r.run(ctx, doc, opts)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if data, merr := json.Marshal(res.Output); merr == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLResult)
		}
	}
	return res, nil
}

// run executes the stages without touching the cache.
func (r *Runner) run(ctx context.Context, doc payload.Document, opts Options) (*Result, error) {
	logger := opts.Logger
	result := &Result{}
	meta := payload.Meta{}

	decodeStart := time.Now()
	g, warnings, err := payload.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	meta.Warnings = warnings
	result.Stats.DecodeTime = time.Since(decodeStart)
	logger.Info("decoded document",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"warnings", len(warnings))

	transformStart := time.Now()

	filt := transform.FilterByConfidence(g, opts.Inclusion)
	for _, id := range filt.NodesRemoved {
		meta.Warnings = append(meta.Warnings,
			fmt.Sprintf("node %s excluded: confidence outside inclusion range", id))
	}
	for _, e := range filt.EdgesRemoved {
		meta.Warnings = append(meta.Warnings,
			fmt.Sprintf("edge %s -> %s excluded: confidence outside inclusion range", e.Source, e.Target))
	}
	if len(filt.NodesRemoved) > 0 || len(filt.EdgesRemoved) > 0 {
		logger.Debug("applied confidence filter",
			"nodes_removed", len(filt.NodesRemoved),
			"edges_removed", len(filt.EdgesRemoved))
	}

	if !opts.SkipDedupe {
		dedup := transform.Dedupe(g, opts.DedupeThreshold)
		if len(dedup.Merged) > 0 {
			meta.Merges = dedup.Merged
		}
		logger.Debug("merged duplicates", "merged", len(dedup.Merged))
	}

	valid := transform.Validate(g)
	meta.CycleEdgesRemoved = payload.NewEdgeOutputs(valid.CycleEdgesRemoved)
	meta.OrphansRemoved = valid.OrphansRemoved
	logger.Debug("validated graph",
		"cycle_edges_removed", len(valid.CycleEdgesRemoved),
		"orphans_removed", len(valid.OrphansRemoved))

	if !opts.SkipBridging {
		bridges := transform.BridgeComponents(g)
		meta.Bridges = payload.NewEdgeOutputs(bridges)
		if len(bridges) > 0 {
			logger.Debug("bridged components", "bridges", len(bridges))
		}
	}

	conc := transform.InferConclusions(g, opts.Conclusions)
	meta.ConclusionScores = conc.Scores
	logger.Debug("inferred conclusions", "promoted", conc.Promoted)

	result.Clusters = transform.ClusterPremises(g, opts.Clustering)
	if len(result.Clusters) > 0 {
		stats := transform.ComputeClusterStats(result.Clusters)
		meta.ClusterStats = &stats
	}

	if opts.Synthesizer != nil && !opts.SkipSynthesis && len(result.Clusters) > 0 {
		synth := transform.Synthesize(ctx, g, result.Clusters, opts.Synthesizer, opts.Synthesis)
		meta.SyntheticNodes = synth.AddedNodes
		if len(synth.SkipReasons) > 0 {
			meta.SynthesisSkips = synth.SkipReasons
		}
		meta.Warnings = append(meta.Warnings, synth.Warnings...)
		logger.Info("synthesized claims",
			"added", len(synth.AddedNodes),
			"skipped", synth.ClustersSkipped)
	}

	result.Stats.TransformTime = time.Since(transformStart)

	layoutStart := time.Now()
	lay := layout.Compute(g, opts.Layout)
	result.Stats.LayoutTime = time.Since(layoutStart)
	logger.Info("computed layout",
		"layers", lay.LayerCount,
		"crossings", lay.Crossings,
		"duration", result.Stats.LayoutTime)

	result.Graph = g
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Output = payload.BuildResult(g, lay, meta)
	return result, nil
}

// resultKey derives the cache key from the document content and the
// serializable options.
func (r *Runner) resultKey(doc payload.Document, opts Options) (string, error) {
	docData, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	optsData, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	return r.Keyer.ResultKey(cache.Hash(docData), cache.Hash(optsData)), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
