package commands

import (
	"context"
	"log"
	"time"

	"relinker/internal/application"
	"relinker/internal/domain"
	"relinker/internal/ports"
)

// DefaultBatchSize is how many instances are classified between
// cooperative yields back to the host scheduler.
const DefaultBatchSize = 50

// ScanCommand walks a document scope and collects every instance whose
// backing definition was deleted. It only reads through the provider;
// nothing is mutated.
type ScanCommand struct {
	provider ports.DocumentProvider

	Scope domain.Scope

	// BatchSize overrides DefaultBatchSize when positive.
	BatchSize int

	// Scheduler is yielded to between batches. Nil falls back to a
	// zero-delay timer, which parks the goroutine just long enough for
	// the host's event loop to run.
	Scheduler ports.Scheduler

	// Progress, when set, receives one notification per batch.
	Progress ports.ProgressSink

	// Logf receives per-instance resolution failures that were skipped.
	// Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(provider ports.DocumentProvider, scope domain.Scope) *ScanCommand {
	return &ScanCommand{
		provider: provider,
		Scope:    scope,
	}
}

// Validate checks if the scan scope is valid
func (c *ScanCommand) Validate() error {
	switch c.Scope {
	case domain.ScopeCurrentPage, domain.ScopeEntireDocument:
		return nil
	}
	return application.ErrInvalidScope
}

// Execute runs the scan and returns one record per unlinked instance,
// in traversal order. A failure resolving a single instance's reference
// skips that instance; a failure of the host enumeration itself aborts
// the scan.
func (c *ScanCommand) Execute(ctx context.Context) ([]domain.UnlinkedInstance, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Scope == domain.ScopeEntireDocument {
		if err := c.provider.LoadAllPages(ctx); err != nil {
			return nil, &application.ScanError{Err: err}
		}
	}

	pages, err := c.provider.Pages(ctx, c.Scope)
	if err != nil {
		return nil, &application.ScanError{Err: err}
	}

	var (
		records   []domain.UnlinkedInstance
		processed int
		total     int
	)

	for _, page := range pages {
		instances, err := c.provider.Instances(ctx, page.ID)
		if err != nil {
			return nil, &application.ScanError{PageName: page.Name, Err: err}
		}
		total += len(instances)

		// Strictly ordered batches, one in flight at a time.
		for start := 0; start < len(instances); start += c.batchSize() {
			end := min(start+c.batchSize(), len(instances))

			for _, inst := range instances[start:end] {
				rec, ok := c.classify(ctx, inst, page)
				if ok {
					records = append(records, rec)
				}
				processed++
			}

			c.notify(domain.Progress{
				Current:  processed,
				Total:    total,
				PageName: page.Name,
			})
			if err := c.yield(ctx); err != nil {
				return nil, &application.ScanError{PageName: page.Name, Err: err}
			}
		}
	}

	return records, nil
}

// classify resolves one instance's backing reference and builds its
// record when the reference is dangling.
func (c *ScanCommand) classify(ctx context.Context, inst domain.Node, page domain.PageRef) (domain.UnlinkedInstance, bool) {
	def, err := c.provider.BackingDefinition(ctx, inst.ID)
	if err != nil {
		c.logf("relink scan: skipping instance %s (%q): %v", inst.ID, inst.Name, err)
		return domain.UnlinkedInstance{}, false
	}
	if !domain.Unlinked(def) {
		return domain.UnlinkedInstance{}, false
	}

	return domain.UnlinkedInstance{
		InstanceID:            inst.ID,
		InstanceName:          inst.Name,
		PageName:              page.Name,
		ParentName:            c.parentName(ctx, inst),
		DeletedDefinitionName: def.Name,
	}, true
}

// parentName walks ancestors up to the page boundary and returns the
// first named container, or the Root sentinel.
func (c *ScanCommand) parentName(ctx context.Context, inst domain.Node) string {
	for id := inst.Parent; id != nil; {
		node, err := c.provider.NodeByID(ctx, *id)
		if err != nil || node == nil || node.Kind == domain.KindPage {
			break
		}
		if node.Kind == domain.KindContainer && node.Name != "" {
			return node.Name
		}
		id = node.Parent
	}
	return domain.RootParentName
}

func (c *ScanCommand) batchSize() int {
	if c.BatchSize > 0 {
		return c.BatchSize
	}
	return DefaultBatchSize
}

func (c *ScanCommand) notify(p domain.Progress) {
	if c.Progress != nil {
		c.Progress(p)
	}
}

func (c *ScanCommand) yield(ctx context.Context) error {
	if c.Scheduler != nil {
		return c.Scheduler.Yield(ctx)
	}
	select {
	case <-time.After(0):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *ScanCommand) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
