package application

import (
	"errors"
	"testing"

	"relinker/internal/domain"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scope
		wantErr bool
	}{
		{name: "page", input: "page", want: domain.ScopeCurrentPage},
		{name: "current-page alias", input: "current-page", want: domain.ScopeCurrentPage},
		{name: "empty defaults to page", input: "", want: domain.ScopeCurrentPage},
		{name: "document", input: "document", want: domain.ScopeEntireDocument},
		{name: "all alias", input: "all", want: domain.ScopeEntireDocument},
		{name: "unknown", input: "everything", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if tt.wantErr {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScope(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
