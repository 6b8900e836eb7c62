package domain

// RootParentName is the sentinel parent for instances with no named
// container ancestor.
const RootParentName = "Root"

// UnlinkedInstance describes one instance whose backing definition was
// deleted. It is an immutable snapshot taken at scan time; it does not
// track the document afterwards. Optional fields use "" for absence:
// DeletedDefinitionName when the orphaned definition's name could not be
// retrieved, MatchedDefinitionID/Name when no candidate exists.
type UnlinkedInstance struct {
	InstanceID   NodeID
	InstanceName string
	PageName     string
	ParentName   string

	DeletedDefinitionName string

	MatchedDefinitionID   NodeID
	MatchedDefinitionName string
}

// MatchKey returns the name used to look up a replacement candidate:
// the deleted definition's recorded name when available, otherwise the
// instance's own display name. The fallback can coincidentally match an
// unrelated definition that happens to share the instance's display
// name; that is accepted behavior.
func (u UnlinkedInstance) MatchKey() string {
	if u.DeletedDefinitionName != "" {
		return u.DeletedDefinitionName
	}
	return u.InstanceName
}

// Matched reports whether a replacement candidate was found.
func (u UnlinkedInstance) Matched() bool {
	return u.MatchedDefinitionID != ""
}

// Progress is emitted after each scan batch. Current is the cumulative
// number of instances processed; Total is a running count of instances
// enumerated so far in scope, not necessarily the final figure.
type Progress struct {
	Current  int
	Total    int
	PageName string
}
