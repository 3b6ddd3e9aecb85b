// Package layout computes hierarchical positions for a validated argument
// graph using Sugiyama-style layered drawing.
//
// The stages run in order:
//
//  1. [AssignLayers] places every node in a layer via longest-path
//     topological sort over support edges, so each supporter sits strictly
//     below what it supports: conclusions at the top, leaf premises in
//     the deepest layer.
//  2. [Order] minimizes edge crossings inside each layer with the
//     barycenter heuristic, then groups the deepest layer's leaves under
//     their shared support targets.
//  3. [Positions] converts layer and order into centered x/y coordinates.
//
// [Compute] chains the three and attaches quality metrics, including a
// Fenwick-tree crossing count.
//
// Every function here is deterministic: identical graphs and options
// yield identical coordinates, down to sorted-id initial orders and a
// hash-based fractional key for nodes without neighbors.
//
// The package assumes the support sub-relation is acyclic. Run the
// transform package's Validate first; nodes left on a support cycle would
// all land in layer 0.
package layout
