package commands

import (
	"context"

	"relinker/internal/application"
	"relinker/internal/domain"
	"relinker/internal/ports"
)

// MatchCommand annotates unlinked-instance records with a replacement
// candidate found by exact case-insensitive name match against every
// valid definition in the document. The whole document is searched
// regardless of the scan scope, since a candidate may live on a page
// that was never scanned.
//
// The match key falls back to the instance's display name when the
// deleted definition's name is unknown, which can coincidentally hit an
// unrelated definition of the same name. That fallback is deliberate
// and matches the record's MatchKey rule.
type MatchCommand struct {
	provider ports.DocumentProvider
	Records  []domain.UnlinkedInstance
}

// NewMatchCommand creates a new MatchCommand
func NewMatchCommand(provider ports.DocumentProvider, records []domain.UnlinkedInstance) *MatchCommand {
	return &MatchCommand{
		provider: provider,
		Records:  records,
	}
}

// Execute returns a new slice of the same length and order as the input,
// each record annotated with a candidate or left unmatched. The input
// slice is not modified and the document is not mutated.
func (c *MatchCommand) Execute(ctx context.Context) ([]domain.UnlinkedInstance, error) {
	idx, err := buildIndex(ctx, c.provider)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UnlinkedInstance, len(c.Records))
	for i, rec := range c.Records {
		if def, ok := idx.Lookup(rec.MatchKey()); ok {
			rec.MatchedDefinitionID = def.ID
			rec.MatchedDefinitionName = def.Name
		}
		out[i] = rec
	}
	return out, nil
}

// buildIndex loads the full document and indexes every definition,
// first traversal occurrence winning on duplicate names.
func buildIndex(ctx context.Context, provider ports.DocumentProvider) (*domain.DefinitionIndex, error) {
	if err := provider.LoadAllPages(ctx); err != nil {
		return nil, &application.ScanError{Err: err}
	}
	defs, err := provider.Definitions(ctx)
	if err != nil {
		return nil, &application.ScanError{Err: err}
	}
	return domain.NewDefinitionIndex(defs), nil
}
