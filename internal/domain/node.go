package domain

// NodeID is the host's opaque stable identifier for a document node.
type NodeID string

// NodeKind classifies the document nodes the relink core cares about.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindPage
	KindContainer
	KindInstance
	KindDefinition
)

func (k NodeKind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindContainer:
		return "container"
	case KindInstance:
		return "instance"
	case KindDefinition:
		return "definition"
	default:
		return "other"
	}
}

// Node is a value snapshot of a document node as reported by the host.
// Parent is nil when the node has been detached from the tree.
type Node struct {
	ID      NodeID
	Name    string
	Kind    NodeKind
	Parent  *NodeID
	Removed bool
	Remote  bool
}

// PageRef identifies a page without carrying its subtree.
type PageRef struct {
	ID   NodeID
	Name string
}

// Scope selects the subtree a scan operates over.
type Scope int

const (
	ScopeCurrentPage Scope = iota
	ScopeEntireDocument
)

func (s Scope) String() string {
	if s == ScopeEntireDocument {
		return "document"
	}
	return "page"
}

// Unlinked reports whether a resolved backing definition is a dangling
// local definition: still reachable by reference, but detached from the
// tree, not removed, not from an external library, and still a plain
// definition node. Instances pointing at remote library definitions are
// not fixable locally and are excluded.
func Unlinked(def *Node) bool {
	return def != nil &&
		def.Parent == nil &&
		!def.Removed &&
		!def.Remote &&
		def.Kind == KindDefinition
}
