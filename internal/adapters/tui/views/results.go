package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"relinker/internal/adapters/tui/styles"
	"relinker/internal/domain"
	"relinker/internal/session"
)

// ResultsKeyMap defines key bindings for the results view
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	AllMatch key.Binding
	Relink   key.Binding
	Rescan   key.Binding
	Scope    key.Binding
	Reveal   key.Binding
	Quit     key.Binding
}

var ResultsKeys = ResultsKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	AllMatch: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select matched")),
	Relink:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "relink selected")),
	Rescan:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "rescan")),
	Scope:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle scope")),
	Reveal:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reveal")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScanFinishedMsg carries the session's response to a scan request
type ScanFinishedMsg struct{ Resp session.Response }

// ReplaceFinishedMsg carries the session's response to a replace request
type ReplaceFinishedMsg struct{ Resp session.Response }

// RevealFinishedMsg carries the session's response to a reveal request
type RevealFinishedMsg struct{ Resp session.Response }

// ProgressMsg carries one batch progress notification
type ProgressMsg struct{ Progress domain.Progress }

// ResultsModel shows scan results and drives relinking. All document
// work goes through the session; the view never issues a second request
// while one is in flight.
type ResultsModel struct {
	sess     *session.Session
	progress chan domain.Progress
	commit   func() error

	scope    domain.Scope
	records  []domain.UnlinkedInstance
	selected map[domain.NodeID]bool
	cursor   int

	scanning  bool
	replacing bool
	spin      spinner.Model
	progLine  string
	status    string
	banner    string

	width  int
	height int
}

// NewResultsModel creates the results view. commit, when non-nil, is
// called after a successful relink pass to persist the repoints.
func NewResultsModel(sess *session.Session, progress chan domain.Progress, commit func() error) *ResultsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &ResultsModel{
		sess:     sess,
		progress: progress,
		commit:   commit,
		scope:    domain.ScopeCurrentPage,
		selected: make(map[domain.NodeID]bool),
		scanning: true,
		spin:     sp,
	}
}

// SetSize updates the view dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init starts the first scan and the progress subscription
func (m *ResultsModel) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), m.listenProgress(), m.spin.Tick)
}

func (m *ResultsModel) scanCmd() tea.Cmd {
	scope := m.scope
	return func() tea.Msg {
		return ScanFinishedMsg{Resp: m.sess.Handle(context.Background(), session.ScanRequest{Scope: scope})}
	}
}

func (m *ResultsModel) replaceCmd(ids []domain.NodeID) tea.Cmd {
	return func() tea.Msg {
		return ReplaceFinishedMsg{Resp: m.sess.Handle(context.Background(), session.ReplaceRequest{InstanceIDs: ids})}
	}
}

func (m *ResultsModel) revealCmd(id domain.NodeID) tea.Cmd {
	return func() tea.Msg {
		return RevealFinishedMsg{Resp: m.sess.Handle(context.Background(), session.RevealRequest{InstanceID: id})}
	}
}

// listenProgress re-arms itself from Update on every ProgressMsg, so
// exactly one reader drains the channel for the life of the view.
func (m *ResultsModel) listenProgress() tea.Cmd {
	return func() tea.Msg {
		return ProgressMsg{Progress: <-m.progress}
	}
}

func (m *ResultsModel) busy() bool {
	return m.scanning || m.replacing
}

// Update handles messages for the results view
func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ProgressMsg:
		p := msg.Progress
		m.progLine = fmt.Sprintf("scanning %s… %d/%d", p.PageName, p.Current, p.Total)
		return m, m.listenProgress()

	case ScanFinishedMsg:
		m.scanning = false
		m.progLine = ""
		switch resp := msg.Resp.(type) {
		case session.ScanResult:
			m.banner = ""
			m.setRecords(resp.Records)
			m.status = fmt.Sprintf("%d unlinked instance(s)", len(m.records))
		case session.ErrorResponse:
			// Keep whatever was on screen; just surface the failure.
			m.banner = resp.Message
		}
		return m, nil

	case ReplaceFinishedMsg:
		m.replacing = false
		switch resp := msg.Resp.(type) {
		case session.ReplaceDone:
			m.status = fmt.Sprintf("%d of %d instances replaced", resp.SuccessCount, resp.TotalCount)
			if m.commit != nil {
				if err := m.commit(); err != nil {
					m.banner = fmt.Sprintf("failed to save document: %v", err)
					return m, nil
				}
			}
			// A pass may not resolve every requested instance; rescan
			// to show what remains.
			m.scanning = true
			return m, tea.Batch(m.scanCmd(), m.spin.Tick)
		case session.ErrorResponse:
			m.banner = resp.Message
		}
		return m, nil

	case RevealFinishedMsg:
		if resp, ok := msg.Resp.(session.ErrorResponse); ok {
			m.banner = resp.Message
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ResultsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, ResultsKeys.Quit) {
		m.sess.Handle(context.Background(), session.CancelRequest{})
		return m, tea.Quit
	}
	if m.busy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, ResultsKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, ResultsKeys.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case key.Matches(msg, ResultsKeys.Toggle):
		if rec, ok := m.current(); ok {
			m.selected[rec.InstanceID] = !m.selected[rec.InstanceID]
		}
	case key.Matches(msg, ResultsKeys.AllMatch):
		for _, rec := range m.records {
			if rec.Matched() {
				m.selected[rec.InstanceID] = true
			}
		}
	case key.Matches(msg, ResultsKeys.Relink):
		ids := m.selectedIDs()
		if len(ids) == 0 {
			m.status = "nothing selected"
			return m, nil
		}
		m.replacing = true
		m.banner = ""
		return m, tea.Batch(m.replaceCmd(ids), m.spin.Tick)
	case key.Matches(msg, ResultsKeys.Rescan):
		m.scanning = true
		m.banner = ""
		return m, tea.Batch(m.scanCmd(), m.spin.Tick)
	case key.Matches(msg, ResultsKeys.Scope):
		if m.scope == domain.ScopeCurrentPage {
			m.scope = domain.ScopeEntireDocument
		} else {
			m.scope = domain.ScopeCurrentPage
		}
		m.scanning = true
		m.banner = ""
		return m, tea.Batch(m.scanCmd(), m.spin.Tick)
	case key.Matches(msg, ResultsKeys.Reveal):
		if rec, ok := m.current(); ok {
			return m, m.revealCmd(rec.InstanceID)
		}
	}
	return m, nil
}

func (m *ResultsModel) current() (domain.UnlinkedInstance, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return domain.UnlinkedInstance{}, false
	}
	return m.records[m.cursor], true
}

func (m *ResultsModel) selectedIDs() []domain.NodeID {
	var ids []domain.NodeID
	for _, rec := range m.records {
		if m.selected[rec.InstanceID] {
			ids = append(ids, rec.InstanceID)
		}
	}
	return ids
}

// setRecords installs fresh scan results, dropping selections for
// instances that no longer appear.
func (m *ResultsModel) setRecords(records []domain.UnlinkedInstance) {
	m.records = records
	keep := make(map[domain.NodeID]bool, len(m.selected))
	for _, rec := range records {
		if m.selected[rec.InstanceID] {
			keep[rec.InstanceID] = true
		}
	}
	m.selected = keep
	if m.cursor >= len(records) {
		m.cursor = max(0, len(records)-1)
	}
}

// View renders the results view
func (m *ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Relinker"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("scope: %s", m.scope)))
	b.WriteString("\n\n")

	if m.banner != "" {
		b.WriteString(styles.Banner.Render(m.banner))
		b.WriteString("\n\n")
	}

	switch {
	case m.scanning:
		line := m.progLine
		if line == "" {
			line = "scanning…"
		}
		b.WriteString(m.spin.View() + " " + styles.StatusProgress.Render(line))
		b.WriteString("\n")
	case m.replacing:
		b.WriteString(m.spin.View() + " " + styles.StatusProgress.Render("relinking…"))
		b.WriteString("\n")
	case len(m.records) == 0:
		b.WriteString(styles.StatusOK.Render("No unlinked instances."))
		b.WriteString("\n")
	default:
		for i, rec := range m.records {
			b.WriteString(m.renderRow(i, rec))
			b.WriteString("\n")
		}
	}

	if m.status != "" && !m.busy() {
		b.WriteString("\n")
		b.WriteString(styles.StatusOK.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("space select · a select matched · r relink · s rescan · tab scope · enter reveal · q quit"))
	return styles.App.Render(b.String())
}

func (m *ResultsModel) renderRow(i int, rec domain.UnlinkedInstance) string {
	box := styles.Checkbox
	if m.selected[rec.InstanceID] {
		box = styles.CheckboxChecked
	}

	name := rec.DeletedDefinitionName
	if name == "" {
		name = rec.InstanceName
	}
	where := styles.Location.Render(fmt.Sprintf("%s / %s", rec.PageName, rec.ParentName))

	var candidate string
	if rec.Matched() {
		candidate = styles.RowMatched.Render(fmt.Sprintf("→ %s", rec.MatchedDefinitionName))
	} else {
		candidate = styles.RowUnmatched.Render("→ no match")
	}

	line := fmt.Sprintf("%s%s  %s  %s", box, name, where, candidate)
	if i == m.cursor {
		return styles.RowSelected.Render(line)
	}
	return line
}
