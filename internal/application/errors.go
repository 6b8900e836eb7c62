package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrBusy         = errors.New("another operation is in flight")
	ErrInvalidScope = errors.New("invalid scan scope")
	ErrNotFound     = errors.New("not found")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ScanError represents an operation-level scan failure. Per-item
// resolution failures are skipped inside the scan and never surface
// through this type.
type ScanError struct {
	PageName string
	Err      error
}

func (e *ScanError) Error() string {
	if e.PageName == "" {
		return fmt.Sprintf("scan failed: %v", e.Err)
	}
	return fmt.Sprintf("scan failed on page %q: %v", e.PageName, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
