package commands

import (
	"context"
	"log"

	"relinker/internal/domain"
	"relinker/internal/ports"
)

// ReplaceResult contains the outcome of a replace pass. SuccessCount is
// how many instances were actually repointed; TotalCount is how many
// were requested. The two differ whenever an instance vanished, had no
// candidate at replace time, or failed to repoint.
type ReplaceResult struct {
	SuccessCount int
	TotalCount   int
}

// ReplaceCommand repoints a caller-chosen set of instances at same-named
// live definitions. Caller-supplied scan results are never trusted: the
// document may have changed since the scan, so the command re-derives
// deleted-definition names from a fresh current-page scan and rebuilds
// the definition index before touching anything. Each repoint commits
// independently; the batch is not transactional.
type ReplaceCommand struct {
	provider ports.DocumentProvider

	InstanceIDs []domain.NodeID

	// Progress and Scheduler are forwarded to the staleness-guard
	// re-scan.
	Progress  ports.ProgressSink
	Scheduler ports.Scheduler

	// Logf receives per-instance failures that were skipped. Defaults
	// to log.Printf.
	Logf func(format string, args ...any)
}

// NewReplaceCommand creates a new ReplaceCommand
func NewReplaceCommand(provider ports.DocumentProvider, instanceIDs []domain.NodeID) *ReplaceCommand {
	return &ReplaceCommand{
		provider:    provider,
		InstanceIDs: instanceIDs,
	}
}

// Execute runs the replace pass. A failure on one instance is logged and
// skipped, never aborting the rest. Callers should re-scan afterwards:
// a pass may resolve fewer than all requested instances.
func (c *ReplaceCommand) Execute(ctx context.Context) (*ReplaceResult, error) {
	result := &ReplaceResult{TotalCount: len(c.InstanceIDs)}
	if len(c.InstanceIDs) == 0 {
		return result, nil
	}

	fresh, err := c.freshRecords(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := buildIndex(ctx, c.provider)
	if err != nil {
		return nil, err
	}

	for _, id := range c.InstanceIDs {
		node, err := c.provider.NodeByID(ctx, id)
		if err != nil {
			c.logf("relink: skipping %s: %v", id, err)
			continue
		}
		if node == nil || node.Kind != domain.KindInstance {
			continue
		}

		key := node.Name
		if rec, ok := fresh[id]; ok {
			key = rec.MatchKey()
		}

		def, ok := idx.Lookup(key)
		if !ok {
			continue
		}
		if err := c.provider.Repoint(ctx, id, def.ID); err != nil {
			c.logf("relink: repointing %s to %s failed: %v", id, def.ID, err)
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

// freshRecords re-scans the current page and keys the unlinked set by
// instance identifier, giving replace ground truth instead of the
// caller's possibly stale view.
func (c *ReplaceCommand) freshRecords(ctx context.Context) (map[domain.NodeID]domain.UnlinkedInstance, error) {
	scan := NewScanCommand(c.provider, domain.ScopeCurrentPage)
	scan.Progress = c.Progress
	scan.Scheduler = c.Scheduler
	scan.Logf = c.Logf

	records, err := scan.Execute(ctx)
	if err != nil {
		return nil, err
	}

	fresh := make(map[domain.NodeID]domain.UnlinkedInstance, len(records))
	for _, rec := range records {
		fresh[rec.InstanceID] = rec
	}
	return fresh, nil
}

func (c *ReplaceCommand) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
