// Package graph provides the core argument-graph model: typed nodes
// (claims, premises, objections, replies, conclusions), directed support
// and attack edges, and an id-indexed container the pipeline stages
// transform.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode], and edges with
// [Graph.AddEdge]. Nodes must have unique non-empty IDs and edges can only
// connect existing nodes:
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "c1", Role: graph.RoleClaim, Label: "Remote work boosts productivity"})
//	g.AddNode(graph.Node{ID: "p1", Role: graph.RolePremise, Label: "Commute time drops to zero"})
//	g.AddEdge(graph.Edge{Source: "p1", Target: "c1", Relation: graph.RelationSupport, Confidence: 0.9})
//
// Query structure with [Graph.Children], [Graph.Parents], and the
// support-only views [Graph.Supporters] and [Graph.SupportTargets]. The
// support views matter because layering and acyclicity constraints apply to
// support edges only; attack edges may point anywhere.
//
// # Edge Policy
//
// At most one edge exists per (source, target, relation) triple. When a
// duplicate is added the graph keeps the higher confidence. Self-loops are
// rejected outright.
//
// # Role Transitions
//
// Node roles are fixed at creation with one exception: a claim may be
// promoted to a conclusion via [Graph.PromoteToConclusion]. Conclusions are
// never provided as input; they are always inferred.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. A fully built graph
// may be read from multiple goroutines.
//
// The [transform] subpackage provides the construction stages (dedup,
// validation, conclusion inference, synthetic rewiring) and the layout
// package assigns layers, orders, and positions.
//
// [transform]: github.com/argmaplab/argmap/pkg/graph/transform
package graph
