package application

import "relinker/internal/domain"

// Re-export scope values for use by adapters
const (
	ScopeCurrentPage    = domain.ScopeCurrentPage
	ScopeEntireDocument = domain.ScopeEntireDocument
)

// Re-export domain types for use by adapters
type (
	Scope            = domain.Scope
	NodeID           = domain.NodeID
	UnlinkedInstance = domain.UnlinkedInstance
	Progress         = domain.Progress
)

// ParseScope maps the external scope spelling ("page" or "document")
// to a domain scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "page", "current-page", "":
		return domain.ScopeCurrentPage, nil
	case "document", "all", "entire-document":
		return domain.ScopeEntireDocument, nil
	}
	return domain.ScopeCurrentPage, &ValidationError{
		Field:   "scope",
		Message: "must be \"page\" or \"document\"",
	}
}
