package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/biaslens/internal/analysis"
	"github.com/studiowebux/biaslens/internal/analytics"
	"github.com/studiowebux/biaslens/internal/executor"
	"github.com/studiowebux/biaslens/internal/export"
	"github.com/studiowebux/biaslens/internal/filter"
	"github.com/studiowebux/biaslens/internal/keybinds"
	"github.com/studiowebux/biaslens/internal/session"
	"github.com/studiowebux/biaslens/internal/types"
)

// ViewMode represents the current TUI screen
type ViewMode int

const (
	ViewNormal ViewMode = iota
	ViewSearch
	ViewProfileSwitch
	ViewAnalytics
	ViewAnalyticsClearConfirm
	ViewHelp
)

// Focus selects which pane receives keys in ViewNormal
type Focus int

const (
	FocusInput Focus = iota
	FocusResults
)

// Model represents the TUI state
type Model struct {
	// Core state
	sessionMgr       *session.Manager
	analyticsManager *analytics.Manager
	client           *executor.Client
	clientErr        error
	clipboard        export.Clipboard
	keys             *keybinds.Registry
	options          Options
	view             ViewMode
	focus            Focus
	version          string
	updateAvailable  bool
	latestVersion    string
	updateURL        string

	// Analysis session
	state    *analysis.State
	criteria types.FilterCriteria
	search   string
	selected int // index into visibleRecords()

	// Widgets
	lineInput   textinput.Model // url, video and audio path
	textInput   textarea.Model  // pasted text
	searchInput textinput.Model
	spinner     spinner.Model
	resultsView viewport.Model
	modalView   viewport.Model

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string

	// Profile switch state
	profileIndex int

	// Analytics state
	analyticsStats []analytics.Stats
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.options.CheckUpdates {
		cmds = append(cmds, checkVersionCmd(m.version))
	}
	return tea.Batch(cmds...)
}

// Cleanup closes database connections
func (m *Model) Cleanup() {
	if m.analyticsManager != nil {
		if err := m.analyticsManager.Close(); err != nil {
			slog.Error("failed to close analytics database", slog.String("error", err.Error()))
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case spinner.TickMsg:
		if m.state.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	case analyzeResultMsg:
		m.handleAnalyzeResult(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
		} else {
			m.setStatus(msg.message)
		}

	case exportMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
		} else {
			m.setStatus(fmt.Sprintf("CSV saved to %s", msg.path))
		}

	case analyticsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			break
		}
		m.analyticsStats = msg.stats
		m.updateAnalyticsView()

	case versionCheckMsg:
		if msg.err == nil && msg.update.Available {
			m.updateAvailable = true
			m.latestVersion = msg.update.Latest
			m.updateURL = msg.update.URL
		}

	default:
		cmd = m.updateFocusedWidget(msg)
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case ViewProfileSwitch:
		return m.renderProfileSwitch()
	case ViewAnalytics, ViewAnalyticsClearConfirm:
		return m.renderAnalytics()
	case ViewHelp:
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleAnalyzeResult applies a finished submission. Responses to an
// abandoned submission (mode switched meanwhile) are dropped.
func (m *Model) handleAnalyzeResult(msg analyzeResultMsg) {
	if msg.err != nil {
		if !m.state.Fail(msg.ticket, msg.err.Error()) {
			slog.Debug("dropping stale error", slog.Uint64("generation", msg.ticket.Generation))
			return
		}
		m.recordSubmission(msg)
		m.setError(msg.err.Error())
		return
	}

	if !m.state.Complete(msg.ticket, msg.result.Records) {
		slog.Debug("dropping stale response", slog.Uint64("generation", msg.ticket.Generation))
		return
	}
	m.recordSubmission(msg)

	m.selected = 0
	m.criteria = types.FilterCriteria{}
	m.search = ""
	m.errorMsg = ""
	if msg.result.Malformed {
		m.setStatus("The service returned an unreadable response")
	} else {
		m.setStatus(fmt.Sprintf("Analyzed %d sentences (%s) in %s",
			len(msg.result.Records), executor.FormatSize(msg.result.ResponseSize),
			executor.FormatDuration(msg.result.Duration)))
	}
	if len(msg.result.Records) > 0 {
		m.setFocus(FocusResults)
	}
	m.updateResultsView()
}

// switchMode activates a mode. Inputs, results, filters and errors are
// cleared and an in-flight response will be ignored.
func (m *Model) switchMode(mode types.Mode) tea.Cmd {
	m.state.SetMode(mode)
	m.lineInput.Reset()
	m.textInput.Reset()
	m.lineInput.Placeholder = placeholderFor(mode)
	m.criteria = types.FilterCriteria{}
	m.search = ""
	m.searchInput.Reset()
	m.selected = 0
	m.errorMsg = ""
	m.statusMsg = ""
	m.updateResultsView()
	return m.setFocus(FocusInput)
}

// visibleRecords is the filter view over the result store plus the search
func (m *Model) visibleRecords() []types.AnalysisRecord {
	return filter.Search(m.state.Filtered(m.criteria), m.search)
}

// selectedRecord returns the highlighted record, if any
func (m *Model) selectedRecord() (types.AnalysisRecord, bool) {
	records := m.visibleRecords()
	if m.selected < 0 || m.selected >= len(records) {
		return types.AnalysisRecord{}, false
	}
	return records[m.selected], true
}

// updateFocusedWidget forwards non-key messages (cursor blink) to the active input
func (m *Model) updateFocusedWidget(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.view == ViewSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.state.Mode() == types.ModeText:
		m.textInput, cmd = m.textInput.Update(msg)
	default:
		m.lineInput, cmd = m.lineInput.Update(msg)
	}
	return cmd
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.errorMsg = ""
}

func (m *Model) setError(msg string) {
	m.errorMsg = msg
	m.statusMsg = ""
}

type analyzeResultMsg struct {
	ticket analysis.Ticket
	result *executor.Result
	err    error
}

type clipboardMsg struct {
	message string
	err     error
}

type exportMsg struct {
	path string
	err  error
}

type analyticsLoadedMsg struct {
	stats []analytics.Stats
	err   error
}
