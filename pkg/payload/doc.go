// Package payload defines the wire contracts of the argmap pipeline:
// the input document of extracted argument components and the output
// document carrying the laid-out graph plus run diagnostics.
//
// # Input
//
// An input document is a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "p1", "role": "premise", "label": "...", "confidence": 0.9}],
//	  "edges": [{"source": "p1", "target": "c1", "relation": "support", "confidence": 0.8}]
//	}
//
// Decoding is lenient. Malformed entries are dropped or coerced with a
// recorded warning instead of failing the run: nodes without an id or
// label are dropped, unknown roles become "other", an asserted
// "conclusion" role is downgraded to "claim" (conclusions are inferred,
// never asserted), confidences are clamped to [0,1], and edges with
// missing endpoints or self-loops are dropped. Only unparseable JSON is
// a hard error.
//
// # Output
//
// The output document carries the final nodes with their coordinates,
// the final edges, and a meta block recording everything the pipeline
// did: merges, removed edges, bridges, conclusion scores, cluster
// statistics, synthesis skips, and layout diagnostics. Node order is
// deterministic (sorted by id), so identical inputs produce identical
// graph content; only the run id and timestamp vary between runs.
//
// A result converts back into a valid input document via
// [Result.Document] for round-trip processing.
package payload
