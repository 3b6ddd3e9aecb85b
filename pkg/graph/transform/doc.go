// Package transform provides the graph-construction stages that run between
// decoding and layout: duplicate merging, structural validation, heuristic
// connectivity bridging, conclusion inference, premise clustering, and
// synthetic claim rewiring.
//
// Each stage is a pure function over a [graph.Graph]: it mutates the graph
// it is given and returns a result value describing what changed. The
// pipeline runner clones the graph before each stage so a failed stage can
// be discarded without corrupting the snapshot.
//
// All stages iterate nodes in sorted-id order, so a given input graph and
// configuration always produce the same output graph.
//
// [graph.Graph]: github.com/argmaplab/argmap/pkg/graph
package transform
