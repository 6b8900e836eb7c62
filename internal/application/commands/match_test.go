package commands

import (
	"context"
	"reflect"
	"testing"

	"relinker/internal/adapters/memory"
	"relinker/internal/domain"
)

func TestMatchAnnotation(t *testing.T) {
	doc := memory.NewDocument()
	page := doc.AddPage("Page 1")
	card := doc.AddDefinition(page, "Card")
	doc.AddDefinition(page, "Badge")

	tests := []struct {
		name     string
		record   domain.UnlinkedInstance
		wantID   domain.NodeID
		wantName string
	}{
		{
			name:     "deleted name matches case-insensitively",
			record:   domain.UnlinkedInstance{InstanceID: "instance-1", DeletedDefinitionName: "card"},
			wantID:   card,
			wantName: "Card",
		},
		{
			name:     "upper case variant",
			record:   domain.UnlinkedInstance{InstanceID: "instance-2", DeletedDefinitionName: "CARD"},
			wantID:   card,
			wantName: "Card",
		},
		{
			name:   "prefix does not match",
			record: domain.UnlinkedInstance{InstanceID: "instance-3", DeletedDefinitionName: "Car"},
		},
		{
			name:     "instance name fallback",
			record:   domain.UnlinkedInstance{InstanceID: "instance-4", InstanceName: "Card"},
			wantID:   card,
			wantName: "Card",
		},
		{
			name:   "no candidate",
			record: domain.UnlinkedInstance{InstanceID: "instance-5", DeletedDefinitionName: "Gone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewMatchCommand(doc, []domain.UnlinkedInstance{tt.record}).Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if len(out) != 1 {
				t.Fatalf("got %d records, want 1", len(out))
			}
			if out[0].MatchedDefinitionID != tt.wantID {
				t.Errorf("MatchedDefinitionID = %q, want %q", out[0].MatchedDefinitionID, tt.wantID)
			}
			if out[0].MatchedDefinitionName != tt.wantName {
				t.Errorf("MatchedDefinitionName = %q, want %q", out[0].MatchedDefinitionName, tt.wantName)
			}
		})
	}
}

func TestMatchIsPureAndOrderStable(t *testing.T) {
	doc := memory.NewDocument()
	page := doc.AddPage("Page 1")
	doc.AddDefinition(page, "Card")
	doc.AddDefinition(page, "Badge")

	records := []domain.UnlinkedInstance{
		{InstanceID: "instance-10", DeletedDefinitionName: "Badge"},
		{InstanceID: "instance-11", DeletedDefinitionName: "missing"},
		{InstanceID: "instance-12", DeletedDefinitionName: "card"},
	}
	input := make([]domain.UnlinkedInstance, len(records))
	copy(input, records)

	first, err := NewMatchCommand(doc, records).Execute(context.Background())
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	second, err := NewMatchCommand(doc, records).Execute(context.Background())
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("match is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if !reflect.DeepEqual(records, input) {
		t.Errorf("input records were modified: %+v", records)
	}
	for i := range first {
		if first[i].InstanceID != records[i].InstanceID {
			t.Errorf("record order changed at %d: %s != %s", i, first[i].InstanceID, records[i].InstanceID)
		}
	}
}

func TestMatchFirstOccurrenceWins(t *testing.T) {
	doc := memory.NewDocument()
	p1 := doc.AddPage("First")
	p2 := doc.AddPage("Second")
	winner := doc.AddDefinition(p1, "Badge")
	doc.AddDefinition(p2, "Badge")

	out, err := NewMatchCommand(doc, []domain.UnlinkedInstance{
		{InstanceID: "instance-1", DeletedDefinitionName: "badge"},
	}).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out[0].MatchedDefinitionID != winner {
		t.Errorf("matched %s, want first traversal occurrence %s", out[0].MatchedDefinitionID, winner)
	}
}

func TestMatchSearchesWholeDocument(t *testing.T) {
	// The candidate lives on a page the scan never touched.
	doc := memory.NewDocument()
	doc.AddPage("Scanned")
	other := doc.AddPage("Elsewhere")
	def := doc.AddDefinition(other, "Icon/Check")

	out, err := NewMatchCommand(doc, []domain.UnlinkedInstance{
		{InstanceID: "instance-1", DeletedDefinitionName: "icon/check"},
	}).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if out[0].MatchedDefinitionID != def {
		t.Errorf("MatchedDefinitionID = %q, want %q", out[0].MatchedDefinitionID, def)
	}
	if !doc.Loaded() {
		t.Error("match did not load the full document")
	}
}
