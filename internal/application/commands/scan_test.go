package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"relinker/internal/adapters/memory"
	"relinker/internal/application"
	"relinker/internal/domain"
)

// recordingScheduler counts yields instead of parking the goroutine.
type recordingScheduler struct {
	yields int
}

func (s *recordingScheduler) Yield(ctx context.Context) error {
	s.yields++
	return ctx.Err()
}

func discardLogf(string, ...any) {}

func TestScanClassification(t *testing.T) {
	// One instance per link-state combination; only the dangling local
	// definition must produce a record.
	doc := memory.NewDocument()
	page := doc.AddPage("Page 1")

	live := doc.AddDefinition(page, "Live")
	dangling := doc.AddDetachedDefinition("Dangling")
	removed := doc.AddDetachedDefinition("Removed")
	doc.MarkRemoved(removed)
	remote := doc.AddDetachedDefinition("Library")
	doc.MarkRemote(remote)
	frame := doc.AddContainer(page, "Frame")
	doc.Detach(frame)

	doc.AddInstance(page, "never linked", "")
	doc.AddInstance(page, "healthy", live)
	unlinked := doc.AddInstance(page, "dangling", dangling)
	doc.AddInstance(page, "removed def", removed)
	doc.AddInstance(page, "library def", remote)
	doc.AddInstance(page, "reused id", frame)

	records, err := NewScanCommand(doc, domain.ScopeCurrentPage).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(records), records)
	}
	rec := records[0]
	if rec.InstanceID != unlinked {
		t.Errorf("InstanceID = %s, want %s", rec.InstanceID, unlinked)
	}
	if rec.DeletedDefinitionName != "Dangling" {
		t.Errorf("DeletedDefinitionName = %q, want %q", rec.DeletedDefinitionName, "Dangling")
	}
	if rec.PageName != "Page 1" {
		t.Errorf("PageName = %q, want %q", rec.PageName, "Page 1")
	}
}

func TestScanParentName(t *testing.T) {
	doc := memory.NewDocument()
	page := doc.AddPage("Page 1")
	ghost := doc.AddDetachedDefinition("Ghost")

	named := doc.AddContainer(page, "Header")
	unnamed := doc.AddContainer(named, "")

	onPage := doc.AddInstance(page, "on page", ghost)
	inNamed := doc.AddInstance(named, "in header", ghost)
	inUnnamed := doc.AddInstance(unnamed, "nested", ghost)

	records, err := NewScanCommand(doc, domain.ScopeCurrentPage).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := map[domain.NodeID]string{
		onPage:    domain.RootParentName,
		inNamed:   "Header",
		inUnnamed: "Header",
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for _, rec := range records {
		if rec.ParentName != want[rec.InstanceID] {
			t.Errorf("ParentName for %s = %q, want %q", rec.InstanceID, rec.ParentName, want[rec.InstanceID])
		}
	}
}

func TestScanScopeCoversAllPages(t *testing.T) {
	doc := memory.NewDocument()
	p1 := doc.AddPage("First")
	p2 := doc.AddPage("Second")
	ghost := doc.AddDetachedDefinition("Ghost")
	doc.AddInstance(p1, "a", ghost)
	doc.AddInstance(p2, "b", ghost)

	pageScoped, err := NewScanCommand(doc, domain.ScopeCurrentPage).Execute(context.Background())
	if err != nil {
		t.Fatalf("page scan error: %v", err)
	}
	if len(pageScoped) != 1 || pageScoped[0].PageName != "First" {
		t.Fatalf("page scan = %+v, want one record on First", pageScoped)
	}

	docScoped, err := NewScanCommand(doc, domain.ScopeEntireDocument).Execute(context.Background())
	if err != nil {
		t.Fatalf("document scan error: %v", err)
	}
	if len(docScoped) != 2 {
		t.Fatalf("document scan found %d records, want 2", len(docScoped))
	}
	if !doc.Loaded() {
		t.Error("document scan did not load all pages")
	}
}

func TestScanBatchingProgress(t *testing.T) {
	doc := memory.NewDocument()
	page := doc.AddPage("Big Page")
	ghost := doc.AddDetachedDefinition("Ghost")
	for i := 0; i < 120; i++ {
		doc.AddInstance(page, fmt.Sprintf("inst %d", i), ghost)
	}

	sched := &recordingScheduler{}
	var progress []domain.Progress

	cmd := NewScanCommand(doc, domain.ScopeCurrentPage)
	cmd.Scheduler = sched
	cmd.Progress = func(p domain.Progress) { progress = append(progress, p) }

	records, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(records) != 120 {
		t.Fatalf("got %d records, want 120", len(records))
	}

	if len(progress) != 3 {
		t.Fatalf("got %d progress notifications, want 3: %+v", len(progress), progress)
	}
	finalSeen := 0
	prev := 0
	for _, p := range progress {
		if p.Current < prev {
			t.Errorf("progress went backwards: %+v", progress)
		}
		prev = p.Current
		if p.Current == 120 {
			finalSeen++
		}
		if p.PageName != "Big Page" {
			t.Errorf("PageName = %q, want %q", p.PageName, "Big Page")
		}
	}
	if finalSeen != 1 {
		t.Errorf("final total reported %d times, want exactly once", finalSeen)
	}
	if sched.yields < 2 {
		t.Errorf("only %d yields before completion, want at least 2", sched.yields)
	}
}

func TestScanSkipsUnresolvableInstance(t *testing.T) {
	doc := memory.NewDocument()
	page := doc.AddPage("Page 1")
	ghost := doc.AddDetachedDefinition("Ghost")
	broken := doc.AddInstance(page, "broken", ghost)
	ok := doc.AddInstance(page, "fine", ghost)
	doc.FailResolve(broken, errors.New("reference lookup failed"))

	cmd := NewScanCommand(doc, domain.ScopeCurrentPage)
	cmd.Logf = discardLogf
	records, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(records) != 1 || records[0].InstanceID != ok {
		t.Fatalf("got %+v, want only the resolvable instance", records)
	}
}

func TestScanEnumerationFailureAborts(t *testing.T) {
	doc := memory.NewDocument()
	doc.AddPage("Page 1")
	doc.FailEnumeration(errors.New("host unavailable"))

	records, err := NewScanCommand(doc, domain.ScopeCurrentPage).Execute(context.Background())
	if err == nil {
		t.Fatal("expected scan to fail")
	}
	var scanErr *application.ScanError
	if !errors.As(err, &scanErr) {
		t.Errorf("error type = %T, want *application.ScanError", err)
	}
	if records != nil {
		t.Errorf("partial records returned on operation failure: %+v", records)
	}
}

func TestScanValidate(t *testing.T) {
	doc := memory.NewDocument()
	cmd := NewScanCommand(doc, domain.Scope(42))
	if _, err := cmd.Execute(context.Background()); !errors.Is(err, application.ErrInvalidScope) {
		t.Errorf("error = %v, want ErrInvalidScope", err)
	}
}
