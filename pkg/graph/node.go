package graph

// Role is the argumentative function of a node.
//
// Roles arrive from the extraction collaborator and are immutable with one
// exception: a claim may be promoted to a conclusion by the conclusion
// inferencer. That transition is enforced by [Graph.PromoteToConclusion];
// no other role change is possible through this package's API.
type Role string

const (
	RoleClaim      Role = "claim"
	RolePremise    Role = "premise"
	RoleObjection  Role = "objection"
	RoleReply      Role = "reply"
	RoleConclusion Role = "conclusion"
	RoleOther      Role = "other"
)

// ParseRole maps a wire-format role string to a Role.
// Unknown strings report ok=false; callers typically coerce those to
// RoleOther with a recorded warning rather than failing.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClaim, RolePremise, RoleObjection, RoleReply, RoleConclusion, RoleOther:
		return Role(s), true
	}
	return RoleOther, false
}

// IsClaimLike reports whether the role can anchor support structure
// (claims and conclusions are always retained even when isolated).
func (r Role) IsClaimLike() bool { return r == RoleClaim || r == RoleConclusion }

// Relation is the directed semantic of an edge.
type Relation string

const (
	// RelationSupport means the source provides evidence for the target.
	// The support sub-relation must be acyclic after validation.
	RelationSupport Relation = "support"
	// RelationAttack means the source challenges the target. Attack edges
	// may point in either direction and are never cycle-checked.
	RelationAttack Relation = "attack"
)

// ParseRelation maps a wire-format relation string to a Relation.
func ParseRelation(s string) (Relation, bool) {
	switch Relation(s) {
	case RelationSupport, RelationAttack:
		return Relation(s), true
	}
	return "", false
}

// Node represents one argument component: a typed text span with a
// classification confidence. Identity (ID) is immutable once assigned.
//
// Synthetic nodes are claims inserted by the rewiring stage rather than
// extracted from text; they carry provenance in SourcePremiseIDs.
type Node struct {
	ID         string
	Role       Role
	Label      string  // short paraphrase used for display and dedup
	Span       string  // original text span
	Confidence float64 // classification confidence in [0,1]

	// Seq is the node's position in the source document (0-based input
	// order). It drives the proximity heuristic in premise clustering and
	// is never used for layout.
	Seq int

	Synthetic        bool
	SourcePremiseIDs []string // premise IDs summarized by a synthetic node
}

// Edge is a directed arc between two nodes, referenced by ID only.
// At most one edge exists per (Source, Target, Relation) triple; the
// graph keeps the highest-confidence instance when duplicates are added.
type Edge struct {
	Source     string
	Target     string
	Relation   Relation
	Confidence float64
}
