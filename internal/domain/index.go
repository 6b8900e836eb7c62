package domain

import "strings"

// DefinitionIndex maps lower-cased definition names to one representative
// definition node. It is built fresh for each match or replace pass and
// discarded afterwards; nothing is persisted between operations.
//
// On duplicate names the first definition in traversal order wins and
// later ones are silently unreachable through the index. Which one is
// "first" depends on traversal order, so results are deterministic per
// document state but not across documents with duplicate names.
type DefinitionIndex struct {
	byName map[string]Node
}

// NewDefinitionIndex builds an index over defs in the order given.
func NewDefinitionIndex(defs []Node) *DefinitionIndex {
	idx := &DefinitionIndex{byName: make(map[string]Node, len(defs))}
	for _, d := range defs {
		key := strings.ToLower(d.Name)
		if _, taken := idx.byName[key]; taken {
			continue
		}
		idx.byName[key] = d
	}
	return idx
}

// Lookup finds a definition by exact case-insensitive name match. No
// trimming, no normalization beyond case folding, no fuzzy distance.
func (idx *DefinitionIndex) Lookup(name string) (Node, bool) {
	d, ok := idx.byName[strings.ToLower(name)]
	return d, ok
}

// Len returns the number of distinct names in the index.
func (idx *DefinitionIndex) Len() int {
	return len(idx.byName)
}
