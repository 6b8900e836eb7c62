package domain

import "testing"

func TestDefinitionIndexLookup(t *testing.T) {
	idx := NewDefinitionIndex([]Node{
		{ID: "d1", Name: "Card", Kind: KindDefinition},
		{ID: "d2", Name: "Icon/Check", Kind: KindDefinition},
	})

	tests := []struct {
		name   string
		key    string
		wantID NodeID
		wantOK bool
	}{
		{name: "exact", key: "Card", wantID: "d1", wantOK: true},
		{name: "lower case", key: "card", wantID: "d1", wantOK: true},
		{name: "upper case", key: "CARD", wantID: "d1", wantOK: true},
		{name: "prefix is not a match", key: "Car", wantOK: false},
		{name: "no trimming", key: " Card", wantOK: false},
		{name: "slash names fold too", key: "icon/check", wantID: "d2", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Lookup(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("Lookup(%q) = %s, want %s", tt.key, got.ID, tt.wantID)
			}
		})
	}
}

func TestDefinitionIndexFirstOccurrenceWins(t *testing.T) {
	idx := NewDefinitionIndex([]Node{
		{ID: "first", Name: "Badge", Kind: KindDefinition},
		{ID: "second", Name: "badge", Kind: KindDefinition},
	})

	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	got, ok := idx.Lookup("BADGE")
	if !ok {
		t.Fatal("Lookup(BADGE) found nothing")
	}
	if got.ID != "first" {
		t.Errorf("Lookup(BADGE) = %s, want first occurrence", got.ID)
	}
}
