package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/argmaplab/argmap/pkg/payload"
	"github.com/argmaplab/argmap/pkg/pipeline"
)

// newLayoutCmd creates the layout command, the main entry point of the CLI.
func newLayoutCmd() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	var flags stageFlags

	cmd := &cobra.Command{
		Use:   "layout [document.json]",
		Short: "Build and lay out an argument map from a document",
		Long: `Build and lay out an argument map from a document.

The layout command takes a document of extracted argument components
(nodes and edges in JSON) and runs the full pipeline: duplicate
merging, consistency validation, component bridging, conclusion
inference, premise clustering, and hierarchical layout. The output is
a result JSON with positioned nodes and a meta block describing every
change the pipeline made.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), args[0], output, noCache, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.map.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// stageFlags carries the per-stage overrides shared by layout and render.
type stageFlags struct {
	refresh         bool
	dedupeThreshold float64
	skipDedupe      bool
	skipBridging    bool
	maxConclusions  int
	nodeSpacing     float64
	layerSpacing    float64
	iterations      int
}

func (f *stageFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().Float64Var(&f.dedupeThreshold, "dedupe-threshold", 0, "similarity cutoff for merging duplicates (default 0.8)")
	cmd.Flags().BoolVar(&f.skipDedupe, "skip-dedupe", false, "disable duplicate merging")
	cmd.Flags().BoolVar(&f.skipBridging, "skip-bridging", false, "leave stray components disconnected")
	cmd.Flags().IntVar(&f.maxConclusions, "max-conclusions", 0, "maximum claims promoted to conclusions (default 1)")
	cmd.Flags().Float64Var(&f.nodeSpacing, "node-spacing", 0, "horizontal distance between siblings (default 250)")
	cmd.Flags().Float64Var(&f.layerSpacing, "layer-spacing", 0, "vertical distance between layers (default 200)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "barycenter sweep rounds (default 8)")
}

// apply overlays the flag values on config-derived options. Flags win
// over the config file; zero flags leave the config value in place.
func (f *stageFlags) apply(opts *pipeline.Options) {
	opts.Refresh = f.refresh
	if f.dedupeThreshold != 0 {
		opts.DedupeThreshold = f.dedupeThreshold
	}
	if f.skipDedupe {
		opts.SkipDedupe = true
	}
	if f.skipBridging {
		opts.SkipBridging = true
	}
	if f.maxConclusions != 0 {
		opts.Conclusions.MaxConclusions = f.maxConclusions
	}
	if f.nodeSpacing != 0 {
		opts.Layout.NodeSpacing = f.nodeSpacing
	}
	if f.layerSpacing != 0 {
		opts.Layout.LayerSpacing = f.layerSpacing
	}
	if f.iterations != 0 {
		opts.Layout.Iterations = f.iterations
	}
}

// runLayout loads the document, runs the pipeline, and writes output.
func runLayout(ctx context.Context, input, output string, noCache bool, flags stageFlags) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}

	runner, err := newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := configFromContext(ctx).Options()
	flags.apply(&opts)
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Building argument map...")
	spinner.Start()

	res, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("run pipeline: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".map.json"
	}

	if err := payload.WriteResultFile(res.Output, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Argument map complete")
	printFile(outputPath)
	printStats(len(res.Output.Nodes), len(res.Output.Edges), res.CacheInfo.ResultHit)
	for _, w := range res.Output.Meta.Warnings {
		printWarning("%s", w)
	}
	printNewline()
	printNextStep("Render", "argmap render "+input+" -o map.svg")

	return nil
}

// readDocument parses an input document file without building the graph,
// so the pipeline sees the raw content for cache keying.
func readDocument(path string) (payload.Document, error) {
	var doc payload.Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("load document %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse document %s: %w", path, err)
	}
	return doc, nil
}
