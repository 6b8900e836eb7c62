package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"relinker/internal/adapters/tui/views"
	"relinker/internal/domain"
	"relinker/internal/ports"
	"relinker/internal/session"
)

// App is the main TUI application model. It owns the session and feeds
// its progress notifications to the results view through a channel, so
// batch updates render while a scan is still running.
type App struct {
	sess    *session.Session
	results *views.ResultsModel

	width  int
	height int
}

// NewApp creates a new TUI application over a document provider.
// commit, when non-nil, persists repoints after a relink pass.
func NewApp(provider ports.DocumentProvider, commit func() error) *App {
	sess := session.New(provider)

	progress := make(chan domain.Progress, 16)
	sess.Progress = func(p domain.Progress) {
		// Never block a scan batch on rendering; drop the update if
		// the view is behind.
		select {
		case progress <- p:
		default:
		}
	}

	return &App{
		sess:    sess,
		results: views.NewResultsModel(sess, progress, commit),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.results.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
		a.results.SetSize(size.Width, size.Height)
		return a, nil
	}

	_, cmd := a.results.Update(msg)
	return a, cmd
}

// View renders the application
func (a *App) View() string {
	return a.results.View()
}
