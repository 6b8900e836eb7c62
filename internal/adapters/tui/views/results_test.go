package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"relinker/internal/adapters/memory"
	"relinker/internal/domain"
	"relinker/internal/session"
)

func newTestModel() (*ResultsModel, *memory.Document) {
	doc := memory.NewDocument()
	page := doc.AddPage("Page 1")
	doc.AddDefinition(page, "Icon/Check")
	ghost := doc.AddDetachedDefinition("icon/check")
	stray := doc.AddDetachedDefinition("Icon/Missing")
	doc.AddInstance(page, "check", ghost)
	doc.AddInstance(page, "stray", stray)

	sess := session.New(doc)
	return NewResultsModel(sess, make(chan domain.Progress, 16), nil), doc
}

func scanResult(m *ResultsModel) tea.Msg {
	return m.scanCmd()()
}

func TestResultsScanFinished(t *testing.T) {
	m, _ := newTestModel()

	m.Update(scanResult(m))
	if m.scanning {
		t.Error("still scanning after ScanFinishedMsg")
	}
	if len(m.records) != 2 {
		t.Fatalf("got %d records, want 2", len(m.records))
	}

	view := m.View()
	if !strings.Contains(view, "icon/check") {
		t.Errorf("view does not list the deleted definition name:\n%s", view)
	}
	if !strings.Contains(view, "no match") {
		t.Errorf("view does not flag the unmatched instance:\n%s", view)
	}
}

func TestResultsErrorKeepsRecords(t *testing.T) {
	m, _ := newTestModel()
	m.Update(scanResult(m))

	m.Update(ScanFinishedMsg{Resp: session.ErrorResponse{Message: "host connection dropped"}})
	if len(m.records) != 2 {
		t.Errorf("error response discarded previous records")
	}
	if !strings.Contains(m.View(), "host connection dropped") {
		t.Error("error banner not rendered")
	}
}

func TestResultsSelectionAndRelink(t *testing.T) {
	m, doc := newTestModel()
	m.Update(scanResult(m))

	// Select everything with a candidate, then relink.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	ids := m.selectedIDs()
	if len(ids) != 1 {
		t.Fatalf("selected %d instances, want 1 matched", len(ids))
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if !m.replacing {
		t.Fatal("relink key did not start a replace")
	}
	// The returned batch contains the replace command; run the session
	// call directly instead of unpacking tea internals.
	if cmd == nil {
		t.Fatal("no command returned")
	}
	done := m.replaceCmd(ids)()
	msg, ok := done.(ReplaceFinishedMsg)
	if !ok {
		t.Fatalf("replace command returned %T", done)
	}
	m.replacing = false // the batch delivered its own state change

	resp, ok := msg.Resp.(session.ReplaceDone)
	if !ok {
		t.Fatalf("response = %T, want ReplaceDone", msg.Resp)
	}
	if resp.SuccessCount != 1 || resp.TotalCount != 1 {
		t.Errorf("result = %+v, want 1/1", resp)
	}
	if doc.Backing(ids[0]) == "" {
		t.Error("instance was not repointed")
	}
}

func TestResultsIgnoresActionKeysWhileBusy(t *testing.T) {
	m, _ := newTestModel()
	// Initial state is scanning.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil || m.replacing {
		t.Error("action key accepted during an in-flight scan")
	}
}

func TestResultsSelectionPrunedOnRescan(t *testing.T) {
	m, _ := newTestModel()
	m.Update(scanResult(m))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	kept := m.records[1]
	m.setRecords([]domain.UnlinkedInstance{kept})
	if len(m.selectedIDs()) != 0 {
		t.Error("selection kept instances that disappeared from results")
	}
	if m.cursor > 0 {
		t.Errorf("cursor = %d out of range", m.cursor)
	}
}
