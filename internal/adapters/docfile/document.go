// Package docfile adapts an exported design-document JSON file to the
// DocumentProvider port. The export carries the page trees plus a
// "detached" pool: components that were deleted from the tree while
// instances still reference them, exactly the dangling state the relink
// core looks for.
package docfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"relinker/internal/domain"
)

type fileDocument struct {
	Name        string      `json:"name,omitempty"`
	CurrentPage string      `json:"currentPage,omitempty"`
	Pages       []*fileNode `json:"pages"`
	Detached    []*fileNode `json:"detached,omitempty"`
}

type fileNode struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	ComponentID string      `json:"componentId,omitempty"`
	Remote      bool        `json:"remote,omitempty"`
	Removed     bool        `json:"removed,omitempty"`
	Children    []*fileNode `json:"children,omitempty"`
}

func (n *fileNode) kind() domain.NodeKind {
	switch n.Type {
	case "PAGE":
		return domain.KindPage
	case "FRAME", "GROUP", "SECTION":
		return domain.KindContainer
	case "INSTANCE":
		return domain.KindInstance
	case "COMPONENT":
		return domain.KindDefinition
	default:
		return domain.KindOther
	}
}

// Document is a DocumentProvider over one exported file. Repoints are
// applied in memory; Save writes them back out.
type Document struct {
	doc     *fileDocument
	nodes   map[string]*fileNode
	parents map[string]*fileNode
	current *fileNode
	focused domain.NodeID
}

// Load reads and parses an exported document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}

// Parse builds a Document from exported JSON.
func Parse(data []byte) (*Document, error) {
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	d := &Document{
		doc:     &doc,
		nodes:   make(map[string]*fileNode),
		parents: make(map[string]*fileNode),
	}
	for _, page := range doc.Pages {
		page.Type = "PAGE"
		d.index(page, nil)
	}
	for _, det := range doc.Detached {
		if _, dup := d.nodes[det.ID]; dup {
			return nil, fmt.Errorf("detached node %s duplicates a tree node", det.ID)
		}
		d.nodes[det.ID] = det
	}

	d.current = doc.Pages[0]
	if doc.CurrentPage != "" {
		page, ok := d.nodes[doc.CurrentPage]
		if !ok || page.kind() != domain.KindPage {
			return nil, fmt.Errorf("currentPage %s is not a page", doc.CurrentPage)
		}
		d.current = page
	}
	return d, nil
}

func (d *Document) index(n *fileNode, parent *fileNode) {
	d.nodes[n.ID] = n
	if parent != nil {
		d.parents[n.ID] = parent
	}
	for _, c := range n.Children {
		d.index(c, n)
	}
}

// Save writes the document, including applied repoints, to path.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func (d *Document) toDomain(n *fileNode) *domain.Node {
	if n == nil {
		return nil
	}
	node := &domain.Node{
		ID:      domain.NodeID(n.ID),
		Name:    n.Name,
		Kind:    n.kind(),
		Removed: n.Removed,
		Remote:  n.Remote,
	}
	if p, ok := d.parents[n.ID]; ok {
		pid := domain.NodeID(p.ID)
		node.Parent = &pid
	}
	return node
}

// LoadAllPages implements ports.DocumentProvider. A parsed export is
// fully resident already, so there is nothing to page in.
func (d *Document) LoadAllPages(ctx context.Context) error {
	return nil
}

// CurrentPage implements ports.DocumentProvider.
func (d *Document) CurrentPage(ctx context.Context) (domain.PageRef, error) {
	return domain.PageRef{ID: domain.NodeID(d.current.ID), Name: d.current.Name}, nil
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
	refs := make([]domain.PageRef, 0, len(d.doc.Pages))
	for _, p := range d.doc.Pages {
		refs = append(refs, domain.PageRef{ID: domain.NodeID(p.ID), Name: p.Name})
	}
	return refs, nil
}

// Instances implements ports.DocumentProvider.
func (d *Document) Instances(ctx context.Context, pageID domain.NodeID) ([]domain.Node, error) {
	page, ok := d.nodes[string(pageID)]
	if !ok || page.kind() != domain.KindPage {
		return nil, fmt.Errorf("no such page: %s", pageID)
	}
	var out []domain.Node
	var walk func(*fileNode)
	walk = func(n *fileNode) {
		if n.kind() == domain.KindInstance {
			out = append(out, *d.toDomain(n))
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(page)
	return out, nil
}

// BackingDefinition implements ports.DocumentProvider. A reference to an
// identifier that resolves to nothing at all reports no backing, which
// scans classify as "never linked" rather than unlinked.
func (d *Document) BackingDefinition(ctx context.Context, instanceID domain.NodeID) (*domain.Node, error) {
	inst, ok := d.nodes[string(instanceID)]
	if !ok || inst.kind() != domain.KindInstance {
		return nil, fmt.Errorf("not an instance: %s", instanceID)
	}
	if inst.ComponentID == "" {
		return nil, nil
	}
	return d.toDomain(d.nodes[inst.ComponentID]), nil
}

// Definitions implements ports.DocumentProvider.
func (d *Document) Definitions(ctx context.Context) ([]domain.Node, error) {
	var out []domain.Node
	var walk func(*fileNode)
	walk = func(n *fileNode) {
		if n.kind() == domain.KindDefinition && !n.Removed && !n.Remote {
			out = append(out, *d.toDomain(n))
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, p := range d.doc.Pages {
		walk(p)
	}
	return out, nil
}

// NodeByID implements ports.DocumentProvider.
func (d *Document) NodeByID(ctx context.Context, id domain.NodeID) (*domain.Node, error) {
	return d.toDomain(d.nodes[string(id)]), nil
}

// Repoint implements ports.DocumentProvider. Instance overrides live on
// the instance node in this format and survive the reference change
// untouched, which is as close as a file adapter gets to the host's
// override-preserving swap.
func (d *Document) Repoint(ctx context.Context, instanceID, definitionID domain.NodeID) error {
	inst, ok := d.nodes[string(instanceID)]
	if !ok || inst.kind() != domain.KindInstance {
		return fmt.Errorf("not an instance: %s", instanceID)
	}
	def, ok := d.nodes[string(definitionID)]
	if !ok || def.kind() != domain.KindDefinition {
		return fmt.Errorf("not a component: %s", definitionID)
	}
	inst.ComponentID = string(definitionID)
	return nil
}

// Reveal implements ports.DocumentProvider. A file has no viewport;
// the selection is just remembered for callers to report.
func (d *Document) Reveal(ctx context.Context, id domain.NodeID) error {
	if _, ok := d.nodes[string(id)]; !ok {
		return fmt.Errorf("no such node: %s", id)
	}
	d.focused = id
	return nil
}

// Focused returns the last revealed node.
func (d *Document) Focused() domain.NodeID {
	return d.focused
}
