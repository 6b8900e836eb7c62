package ports

import (
	"context"

	"relinker/internal/domain"
)

// DocumentProvider is the boundary to the host that owns the document.
// The core never caches document state across calls; every scan, match,
// or replace re-reads through this interface.
type DocumentProvider interface {
	// LoadAllPages makes lazily-paged content resident. Required before
	// any full-document enumeration.
	LoadAllPages(ctx context.Context) error

	// CurrentPage returns the page a current-page-scoped scan operates on.
	CurrentPage(ctx context.Context) (domain.PageRef, error)

	// Pages lists the pages covered by scope, in document order.
	Pages(ctx context.Context, scope domain.Scope) ([]domain.PageRef, error)

	// Instances yields every instance node in a page's subtree, in
	// traversal order. That order determines scan result ordering.
	Instances(ctx context.Context, pageID domain.NodeID) ([]domain.Node, error)

	// BackingDefinition resolves an instance's backing definition
	// reference. Returns nil with no error when the instance has no
	// backing reference at all. The reference can point into unloaded
	// content, so resolution may block.
	BackingDefinition(ctx context.Context, instanceID domain.NodeID) (*domain.Node, error)

	// Definitions enumerates every local definition node in the whole
	// document, in traversal order.
	Definitions(ctx context.Context) ([]domain.Node, error)

	// NodeByID resolves a live node, or nil when the identifier no
	// longer resolves.
	NodeByID(ctx context.Context, id domain.NodeID) (*domain.Node, error)

	// Repoint changes an instance's backing reference to another
	// definition. The host preserves property overrides with its own
	// heuristics; the core treats that as a black box.
	Repoint(ctx context.Context, instanceID, definitionID domain.NodeID) error

	// Reveal selects and focuses a node in the host's viewport.
	Reveal(ctx context.Context, id domain.NodeID) error
}

// ProgressSink receives a notification after every scan batch. Calls
// arrive with non-decreasing Current values within one scan.
type ProgressSink func(domain.Progress)
