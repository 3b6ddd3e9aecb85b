package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with
	// the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the edge
	// source does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the edge
	// target does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [Graph.AddEdge] for edges whose source
	// and target are the same node.
	ErrSelfLoop = errors.New("self-loop edge")

	// ErrInvalidPromotion is returned by [Graph.PromoteToConclusion] when
	// the node is not a claim. Only the claim → conclusion transition is
	// legal; anything else indicates a bug in the calling stage.
	ErrInvalidPromotion = errors.New("only claim nodes can become conclusions")
)

// Graph owns a set of argument nodes and the edges between them. Edges
// reference nodes by ID only - there are no embedded pointers, so a cyclic
// edge structure can never create an ownership cycle, and a finished graph
// can be shared read-only across goroutines.
//
// The zero value is not usable - use [New]. Graph is not safe for
// concurrent mutation without external synchronization.
type Graph struct {
	nodes map[string]*Node
	edges []Edge

	outgoing map[string][]string // all relations: source -> targets
	incoming map[string][]string // all relations: target -> sources

	supportOut map[string][]string // support only: source -> targets
	supportIn  map[string][]string // support only: target -> sources
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]*Node),
		outgoing:   make(map[string][]string),
		incoming:   make(map[string][]string),
		supportOut: make(map[string][]string),
		supportIn:  make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID for an empty
// ID or ErrDuplicateNodeID if the ID is already taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := n
	g.nodes[node.ID] = &node
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
//
// Multi-edges are disallowed: if an edge with the same (source, target,
// relation) triple already exists, the higher-confidence instance wins and
// the other is discarded. This keeps duplicate collapsing in one place so
// no stage can reintroduce parallel edges.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Source == e.Target {
		return ErrSelfLoop
	}

	for i := range g.edges {
		ex := &g.edges[i]
		if ex.Source == e.Source && ex.Target == e.Target && ex.Relation == e.Relation {
			if e.Confidence > ex.Confidence {
				ex.Confidence = e.Confidence
			}
			return nil
		}
	}

	g.edges = append(g.edges, e)
	g.outgoing[e.Source] = append(g.outgoing[e.Source], e.Target)
	g.incoming[e.Target] = append(g.incoming[e.Target], e.Source)
	if e.Relation == RelationSupport {
		g.supportOut[e.Source] = append(g.supportOut[e.Source], e.Target)
		g.supportIn[e.Target] = append(g.supportIn[e.Target], e.Source)
	}
	return nil
}

// RemoveEdge removes the edge (source, target, relation) if it exists.
// Removing a missing edge is a no-op.
func (g *Graph) RemoveEdge(source, target string, relation Relation) {
	before := len(g.edges)
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return e.Source == source && e.Target == target && e.Relation == relation
	})
	if len(g.edges) == before {
		return
	}
	g.outgoing[source] = deleteOne(g.outgoing[source], target)
	g.incoming[target] = deleteOne(g.incoming[target], source)
	if relation == RelationSupport {
		g.supportOut[source] = deleteOne(g.supportOut[source], target)
		g.supportIn[target] = deleteOne(g.supportIn[target], source)
	}
}

// RemoveNode removes a node and every edge referencing it.
// Removing a missing node is a no-op.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, e := range g.Edges() {
		if e.Source == id || e.Target == id {
			g.RemoveEdge(e.Source, e.Target, e.Relation)
		}
	}
	delete(g.nodes, id)
	delete(g.outgoing, id)
	delete(g.incoming, id)
	delete(g.supportOut, id)
	delete(g.supportIn, id)
}

// PromoteToConclusion flips a claim's role to conclusion. This is the only
// role mutation the graph permits; any other transition returns
// ErrInvalidPromotion.
func (g *Graph) PromoteToConclusion(id string) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownSourceNode
	}
	if n.Role != RoleClaim {
		return ErrInvalidPromotion
	}
	n.Role = RoleConclusion
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
// The pointer refers to the graph's own node; the ID field must not be
// modified through it.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in unspecified order. Use [Graph.NodeIDs] when
// deterministic iteration is required.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// NodeIDs returns all node IDs in ascending order. Every stage that
// iterates the node set goes through this to keep output deterministic.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of all edges leaving the node, any relation.
// The returned slice is a read-only view.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the sources of all edges entering the node, any relation.
// The returned slice is a read-only view.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// SupportTargets returns the nodes this node supports.
func (g *Graph) SupportTargets(id string) []string { return g.supportOut[id] }

// Supporters returns the nodes supporting this node.
func (g *Graph) Supporters(id string) []string { return g.supportIn[id] }

// Degree returns the total number of edges touching the node.
func (g *Graph) Degree(id string) int {
	return len(g.outgoing[id]) + len(g.incoming[id])
}

// EdgeBetween returns the edge (source, target, relation) and true if it
// exists.
func (g *Graph) EdgeBetween(source, target string, relation Relation) (Edge, bool) {
	for _, e := range g.edges {
		if e.Source == source && e.Target == target && e.Relation == relation {
			return e, true
		}
	}
	return Edge{}, false
}

// Clone returns a deep copy of the graph. The copy shares nothing with the
// original, so a stage can transform a clone and commit or discard it
// atomically.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.nodes {
		cp := *n
		cp.SourcePremiseIDs = slices.Clone(n.SourcePremiseIDs)
		c.nodes[cp.ID] = &cp
	}
	for _, e := range g.edges {
		c.edges = append(c.edges, e)
		c.outgoing[e.Source] = append(c.outgoing[e.Source], e.Target)
		c.incoming[e.Target] = append(c.incoming[e.Target], e.Source)
		if e.Relation == RelationSupport {
			c.supportOut[e.Source] = append(c.supportOut[e.Source], e.Target)
			c.supportIn[e.Target] = append(c.supportIn[e.Target], e.Source)
		}
	}
	return c
}

// PosMap creates a position lookup map from a slice of node IDs,
// mapping each ID to its index. Used to turn layer orderings into fast
// position lookups for barycenter and crossing computations.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func deleteOne(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			return slices.Delete(s, i, i+1)
		}
	}
	return s
}
