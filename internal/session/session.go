// Package session is the in-process message boundary between a
// presentation layer and the relink core. Requests and responses are
// closed tagged variants dispatched by type switch, so adding a message
// kind is a compile-time-visible change everywhere it matters.
package session

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"relinker/internal/application"
	"relinker/internal/application/commands"
	"relinker/internal/domain"
	"relinker/internal/ports"
)

// Request is a sealed variant: exactly the four request kinds below.
type Request interface{ isRequest() }

// ScanRequest asks for a scan of scope, with matching applied.
type ScanRequest struct {
	Scope domain.Scope
}

// ReplaceRequest asks to repoint the given instances.
type ReplaceRequest struct {
	InstanceIDs []domain.NodeID
}

// RevealRequest asks the host to select and focus one node.
type RevealRequest struct {
	InstanceID domain.NodeID
}

// CancelRequest ends the interactive session.
type CancelRequest struct{}

func (ScanRequest) isRequest()    {}
func (ReplaceRequest) isRequest() {}
func (RevealRequest) isRequest()  {}
func (CancelRequest) isRequest()  {}

// Response is a sealed variant: exactly the five response kinds below.
type Response interface{ isResponse() }

// ScanResult carries the matched scan records.
type ScanResult struct {
	Records []domain.UnlinkedInstance
}

// ReplaceDone reports how many requested instances were repointed.
// Callers should follow up with a fresh ScanRequest; a pass may resolve
// fewer than all requested instances.
type ReplaceDone struct {
	SuccessCount int
	TotalCount   int
}

// Ack is the empty success response for side-effect-only requests.
type Ack struct{}

// Closed confirms the session ended.
type Closed struct{}

// ErrorResponse carries a human-readable operation-level failure.
// Zero-result outcomes are not errors and never take this form.
type ErrorResponse struct {
	Message string
}

func (ScanResult) isResponse()    {}
func (ReplaceDone) isResponse()   {}
func (Ack) isResponse()           {}
func (Closed) isResponse()        {}
func (ErrorResponse) isResponse() {}

// Session serves one presentation collaborator. One operation runs at a
// time; a request arriving while another is in flight is answered with
// an ErrorResponse rather than interleaved.
type Session struct {
	provider ports.DocumentProvider

	// Progress receives batch notifications during scans, including the
	// re-scan a replace implies.
	Progress ports.ProgressSink

	// Scheduler overrides the default between-batch yield.
	Scheduler ports.Scheduler

	// Logf receives skipped-item diagnostics. Defaults to log.Printf.
	Logf func(format string, args ...any)

	busy   atomic.Bool
	closed atomic.Bool
}

// New creates a session over the given document provider.
func New(provider ports.DocumentProvider) *Session {
	return &Session{provider: provider}
}

// Handle dispatches one request and always returns a response: internal
// failures and panics become ErrorResponse, never a crash of the
// message loop. Instances repointed before a mid-replace failure stay
// repointed; each repoint commits independently.
func (s *Session) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logf("session: panic handling %T: %v", req, r)
			resp = ErrorResponse{Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	if s.closed.Load() {
		return ErrorResponse{Message: "session is closed"}
	}
	if _, isCancel := req.(CancelRequest); !isCancel {
		if !s.busy.CompareAndSwap(false, true) {
			return ErrorResponse{Message: application.ErrBusy.Error()}
		}
		defer s.busy.Store(false)
	}

	switch req := req.(type) {
	case ScanRequest:
		return s.scan(ctx, req)
	case ReplaceRequest:
		return s.replace(ctx, req)
	case RevealRequest:
		return s.reveal(ctx, req)
	case CancelRequest:
		s.closed.Store(true)
		return Closed{}
	default:
		return ErrorResponse{Message: fmt.Sprintf("unknown request type %T", req)}
	}
}

func (s *Session) scan(ctx context.Context, req ScanRequest) Response {
	scan := commands.NewScanCommand(s.provider, req.Scope)
	scan.Progress = s.Progress
	scan.Scheduler = s.Scheduler
	scan.Logf = s.Logf

	records, err := scan.Execute(ctx)
	if err != nil {
		return ErrorResponse{Message: err.Error()}
	}

	records, err = commands.NewMatchCommand(s.provider, records).Execute(ctx)
	if err != nil {
		return ErrorResponse{Message: err.Error()}
	}
	return ScanResult{Records: records}
}

func (s *Session) replace(ctx context.Context, req ReplaceRequest) Response {
	replace := commands.NewReplaceCommand(s.provider, req.InstanceIDs)
	replace.Progress = s.Progress
	replace.Scheduler = s.Scheduler
	replace.Logf = s.Logf

	res, err := replace.Execute(ctx)
	if err != nil {
		return ErrorResponse{Message: err.Error()}
	}
	return ReplaceDone{SuccessCount: res.SuccessCount, TotalCount: res.TotalCount}
}

func (s *Session) reveal(ctx context.Context, req RevealRequest) Response {
	if err := commands.NewRevealCommand(s.provider, req.InstanceID).Execute(ctx); err != nil {
		return ErrorResponse{Message: err.Error()}
	}
	return Ack{}
}

func (s *Session) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}
