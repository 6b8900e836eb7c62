// Package memory provides a synthetic in-memory document implementing
// ports.DocumentProvider. It exists for tests and demos: trees are built
// programmatically, link state can be broken on demand, and failures can
// be injected per node.
package memory

import (
	"context"
	"fmt"

	"relinker/internal/domain"
)

type node struct {
	id       domain.NodeID
	name     string
	kind     domain.NodeKind
	parent   *node
	children []*node
	removed  bool
	remote   bool
}

// Document is a mutable synthetic document. It is not safe for
// concurrent use; the core runs one operation at a time.
type Document struct {
	pages   []*node
	nodes   map[domain.NodeID]*node
	backing map[domain.NodeID]domain.NodeID
	current *node
	nextID  int

	focused domain.NodeID
	loaded  bool

	loadErr     error
	resolveErrs map[domain.NodeID]error
	repointErrs map[domain.NodeID]error
	enumErr     error
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		nodes:       make(map[domain.NodeID]*node),
		backing:     make(map[domain.NodeID]domain.NodeID),
		resolveErrs: make(map[domain.NodeID]error),
		repointErrs: make(map[domain.NodeID]error),
	}
}

func (d *Document) newNode(name string, kind domain.NodeKind, parent *node) *node {
	d.nextID++
	n := &node{
		id:     domain.NodeID(fmt.Sprintf("%s-%d", kind, d.nextID)),
		name:   name,
		kind:   kind,
		parent: parent,
	}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	d.nodes[n.id] = n
	return n
}

// AddPage appends a page. The first page becomes the current page.
func (d *Document) AddPage(name string) domain.NodeID {
	p := d.newNode(name, domain.KindPage, nil)
	d.pages = append(d.pages, p)
	if d.current == nil {
		d.current = p
	}
	return p.id
}

// AddContainer appends a container (frame, group) under parent.
func (d *Document) AddContainer(parent domain.NodeID, name string) domain.NodeID {
	return d.newNode(name, domain.KindContainer, d.nodes[parent]).id
}

// AddDefinition appends a live definition under parent.
func (d *Document) AddDefinition(parent domain.NodeID, name string) domain.NodeID {
	return d.newNode(name, domain.KindDefinition, d.nodes[parent]).id
}

// AddDetachedDefinition creates a definition that was deleted from the
// tree but is still reachable by reference, the dangling state scans
// look for.
func (d *Document) AddDetachedDefinition(name string) domain.NodeID {
	return d.newNode(name, domain.KindDefinition, nil).id
}

// AddInstance appends an instance under parent, backed by def. Pass ""
// for an instance with no backing reference at all.
func (d *Document) AddInstance(parent domain.NodeID, name string, def domain.NodeID) domain.NodeID {
	inst := d.newNode(name, domain.KindInstance, d.nodes[parent])
	if def != "" {
		d.backing[inst.id] = def
	}
	return inst.id
}

// SetCurrentPage changes which page current-page scans see.
func (d *Document) SetCurrentPage(page domain.NodeID) {
	if p, ok := d.nodes[page]; ok && p.kind == domain.KindPage {
		d.current = p
	}
}

// Detach removes a node from its parent's children while keeping it
// resolvable by reference, simulating a deletion that left dangling
// references behind.
func (d *Document) Detach(id domain.NodeID) {
	n, ok := d.nodes[id]
	if !ok || n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// MarkRemoved flags a node as removed.
func (d *Document) MarkRemoved(id domain.NodeID) {
	if n, ok := d.nodes[id]; ok {
		n.removed = true
	}
}

// MarkRemote flags a node as belonging to an external library.
func (d *Document) MarkRemote(id domain.NodeID) {
	if n, ok := d.nodes[id]; ok {
		n.remote = true
	}
}

// FailLoad makes LoadAllPages fail with err.
func (d *Document) FailLoad(err error) { d.loadErr = err }

// FailResolve makes BackingDefinition fail for one instance.
func (d *Document) FailResolve(inst domain.NodeID, err error) { d.resolveErrs[inst] = err }

// FailRepoint makes Repoint fail for one instance.
func (d *Document) FailRepoint(inst domain.NodeID, err error) { d.repointErrs[inst] = err }

// FailEnumeration makes Instances and Definitions fail with err.
func (d *Document) FailEnumeration(err error) { d.enumErr = err }

// Focused returns the node last revealed, if any.
func (d *Document) Focused() domain.NodeID { return d.focused }

// Backing returns the current backing definition id for an instance.
func (d *Document) Backing(inst domain.NodeID) domain.NodeID { return d.backing[inst] }

// Loaded reports whether LoadAllPages has been called.
func (d *Document) Loaded() bool { return d.loaded }

func (d *Document) snapshot(n *node) *domain.Node {
	if n == nil {
		return nil
	}
	s := &domain.Node{
		ID:      n.id,
		Name:    n.name,
		Kind:    n.kind,
		Removed: n.removed,
		Remote:  n.remote,
	}
	if n.parent != nil {
		pid := n.parent.id
		s.Parent = &pid
	}
	return s
}

func (d *Document) walk(n *node, visit func(*node)) {
	visit(n)
	for _, c := range n.children {
		d.walk(c, visit)
	}
}

// LoadAllPages implements ports.DocumentProvider.
func (d *Document) LoadAllPages(ctx context.Context) error {
	if d.loadErr != nil {
		return d.loadErr
	}
	d.loaded = true
	return nil
}

// CurrentPage implements ports.DocumentProvider.
func (d *Document) CurrentPage(ctx context.Context) (domain.PageRef, error) {
	if d.current == nil {
		return domain.PageRef{}, fmt.Errorf("document has no pages")
	}
	return domain.PageRef{ID: d.current.id, Name: d.current.name}, nil
}

// Pages implements ports.DocumentProvider.
func (d *Document) Pages(ctx context.Context, scope domain.Scope) ([]domain.PageRef, error) {
	if scope == domain.ScopeCurrentPage {
		ref, err := d.CurrentPage(ctx)
		if err != nil {
			return nil, err
		}
		return []domain.PageRef{ref}, nil
	}
	refs := make([]domain.PageRef, 0, len(d.pages))
	for _, p := range d.pages {
		refs = append(refs, domain.PageRef{ID: p.id, Name: p.name})
	}
	return refs, nil
}

// Instances implements ports.DocumentProvider.
func (d *Document) Instances(ctx context.Context, pageID domain.NodeID) ([]domain.Node, error) {
	if d.enumErr != nil {
		return nil, d.enumErr
	}
	page, ok := d.nodes[pageID]
	if !ok || page.kind != domain.KindPage {
		return nil, fmt.Errorf("no such page: %s", pageID)
	}
	var out []domain.Node
	d.walk(page, func(n *node) {
		if n.kind == domain.KindInstance {
			out = append(out, *d.snapshot(n))
		}
	})
	return out, nil
}

// BackingDefinition implements ports.DocumentProvider.
func (d *Document) BackingDefinition(ctx context.Context, instanceID domain.NodeID) (*domain.Node, error) {
	if err := d.resolveErrs[instanceID]; err != nil {
		return nil, err
	}
	defID, ok := d.backing[instanceID]
	if !ok {
		return nil, nil
	}
	return d.snapshot(d.nodes[defID]), nil
}

// Definitions implements ports.DocumentProvider. Only live local
// definitions are reported, in traversal order across all pages.
func (d *Document) Definitions(ctx context.Context) ([]domain.Node, error) {
	if d.enumErr != nil {
		return nil, d.enumErr
	}
	var out []domain.Node
	for _, p := range d.pages {
		d.walk(p, func(n *node) {
			if n.kind == domain.KindDefinition && !n.removed && !n.remote {
				out = append(out, *d.snapshot(n))
			}
		})
	}
	return out, nil
}

// NodeByID implements ports.DocumentProvider.
func (d *Document) NodeByID(ctx context.Context, id domain.NodeID) (*domain.Node, error) {
	return d.snapshot(d.nodes[id]), nil
}

// Repoint implements ports.DocumentProvider.
func (d *Document) Repoint(ctx context.Context, instanceID, definitionID domain.NodeID) error {
	if err := d.repointErrs[instanceID]; err != nil {
		return err
	}
	inst, ok := d.nodes[instanceID]
	if !ok || inst.kind != domain.KindInstance {
		return fmt.Errorf("not an instance: %s", instanceID)
	}
	def, ok := d.nodes[definitionID]
	if !ok || def.kind != domain.KindDefinition {
		return fmt.Errorf("not a definition: %s", definitionID)
	}
	d.backing[instanceID] = definitionID
	return nil
}

// Reveal implements ports.DocumentProvider.
func (d *Document) Reveal(ctx context.Context, id domain.NodeID) error {
	if _, ok := d.nodes[id]; !ok {
		return fmt.Errorf("no such node: %s", id)
	}
	d.focused = id
	return nil
}
