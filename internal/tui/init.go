package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/biaslens/internal/analysis"
	"github.com/studiowebux/biaslens/internal/analytics"
	"github.com/studiowebux/biaslens/internal/config"
	"github.com/studiowebux/biaslens/internal/executor"
	"github.com/studiowebux/biaslens/internal/export"
	"github.com/studiowebux/biaslens/internal/keybinds"
	"github.com/studiowebux/biaslens/internal/session"
	"github.com/studiowebux/biaslens/internal/types"
)

// Options carries command-line overrides into the TUI
type Options struct {
	BaseURL      string            // overrides profile and environment
	EnvVars      map[string]string // values read from --env-file
	Timeout      time.Duration
	CheckUpdates bool
	Clipboard    export.Clipboard // nil selects the system clipboard
	KeybindsFile string           // user keybindings; empty uses the defaults
}

// New creates a new TUI model
func New(mgr *session.Manager, version string, opts Options) (Model, error) {
	lineInput := textinput.New()
	lineInput.Prompt = "› "
	lineInput.CharLimit = 2048
	lineInput.Width = 80
	lineInput.Placeholder = placeholderFor(types.ModeURL)
	lineInput.Focus()

	textInput := textarea.New()
	textInput.Placeholder = "Paste or type the text to analyze..."
	textInput.ShowLineNumbers = false
	textInput.CharLimit = 0
	textInput.SetWidth(80)
	textInput.SetHeight(TextAreaHeight)

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.Placeholder = "search sentences"
	searchInput.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(colorCyan)

	clip := opts.Clipboard
	if clip == nil {
		clip = export.NewSystemClipboard()
	}

	keys, err := keybinds.Load(opts.KeybindsFile)
	if err != nil {
		slog.Warn("using default keybindings", slog.String("error", err.Error()))
	}

	m := Model{
		sessionMgr:  mgr,
		clipboard:   clip,
		keys:        keys,
		options:     opts,
		version:     version,
		view:        ViewNormal,
		focus:       FocusInput,
		state:       analysis.NewState(),
		lineInput:   lineInput,
		textInput:   textInput,
		searchInput: searchInput,
		spinner:     spin,
		resultsView: viewport.New(80, 20),
		modalView:   viewport.New(80, 20),
	}

	m.rebuildClient()
	m.openAnalytics()

	return m, nil
}

// rebuildClient configures the dispatcher for the active profile
func (m *Model) rebuildClient() {
	profile := m.sessionMgr.GetActiveProfile()

	timeout := m.options.Timeout
	if timeout <= 0 {
		timeout = session.Timeout(profile)
	}

	m.client, m.clientErr = executor.NewClient(executor.Options{
		BaseURL: config.ResolveBaseURL(m.options.BaseURL, m.options.EnvVars, profile.BaseURL),
		Timeout: timeout,
		Headers: profile.Headers,
		TLS:     profile.TLS,
	})
	if m.clientErr != nil {
		m.setError(m.clientErr.Error())
		return
	}
	slog.Info("analysis endpoint", slog.String("profile", profile.Name), slog.String("endpoint", m.client.Endpoint()))
}

// openAnalytics opens the submission log when the active profile enables it
func (m *Model) openAnalytics() {
	if m.analyticsManager != nil {
		return
	}
	if !m.sessionMgr.GetActiveProfile().IsAnalyticsEnabled() {
		return
	}
	mgr, err := analytics.NewManager(config.DatabasePath)
	if err != nil {
		slog.Warn("analytics unavailable", slog.String("error", err.Error()))
		return
	}
	m.analyticsManager = mgr
}

// Run starts the TUI
func Run(mgr *session.Manager, version string, opts Options) error {
	m, err := New(mgr, version, opts)
	if err != nil {
		return err
	}
	defer m.Cleanup()

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

func placeholderFor(mode types.Mode) string {
	switch mode {
	case types.ModeURL:
		return "https://example.com/article"
	case types.ModeVideo:
		return "https://youtube.com/watch?v=..."
	case types.ModeAudio:
		return "path/to/recording.mp3"
	}
	return ""
}
