package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/biaslens/internal/analysis"
	"github.com/studiowebux/biaslens/internal/analytics"
	"github.com/studiowebux/biaslens/internal/executor"
	"github.com/studiowebux/biaslens/internal/export"
	"github.com/studiowebux/biaslens/internal/types"
	"github.com/studiowebux/biaslens/internal/version"
)

type versionCheckMsg struct {
	update version.Update
	err    error
}

// submit starts an analysis of the active mode's input
func (m *Model) submit() tea.Cmd {
	if m.state.Mode() == types.ModeOther {
		m.setError("This input type is not supported yet")
		return nil
	}
	if m.clientErr != nil {
		m.setError(m.clientErr.Error())
		return nil
	}

	ticket, ok := m.state.Begin()
	if !ok {
		if !m.state.Loading() {
			m.setError("Nothing to analyze")
		}
		return nil
	}

	m.errorMsg = ""
	m.statusMsg = fmt.Sprintf("Analyzing %s...", ticket.Mode)
	slog.Debug("submitting analysis", slog.String("mode", ticket.Mode.String()), slog.Uint64("generation", ticket.Generation))

	return tea.Batch(m.spinner.Tick, analyzeCmd(m.client, ticket))
}

// analyzeCmd builds the payload and posts it off the event loop
func analyzeCmd(client *executor.Client, ticket analysis.Ticket) tea.Cmd {
	return func() tea.Msg {
		req, err := executor.BuildRequest(ticket.Mode, ticket.Input)
		if err != nil {
			return analyzeResultMsg{ticket: ticket, err: err}
		}
		result, err := client.Analyze(context.Background(), req)
		return analyzeResultMsg{ticket: ticket, result: result, err: err}
	}
}

// recordSubmission logs submission metadata when analytics is enabled
func (m *Model) recordSubmission(msg analyzeResultMsg) {
	if m.analyticsManager == nil {
		return
	}
	profile := m.sessionMgr.GetActiveProfile()
	if !profile.IsAnalyticsEnabled() {
		return
	}

	entry := analytics.Entry{
		Mode:        msg.ticket.Mode.String(),
		Endpoint:    m.client.Endpoint(),
		Timestamp:   time.Now(),
		ProfileName: profile.Name,
	}
	if msg.result != nil {
		entry.StatusCode = msg.result.Status
		entry.DurationMs = msg.result.Duration
		entry.RequestSize = int64(msg.result.RequestSize)
		entry.ResponseSize = int64(msg.result.ResponseSize)
		entry.RecordCount = len(msg.result.Records)
	}
	if msg.err != nil {
		entry.ErrorMessage = msg.err.Error()
		var serverErr *executor.ServerError
		if errors.As(msg.err, &serverErr) {
			entry.StatusCode = serverErr.Status
		}
	}

	if err := m.analyticsManager.Save(entry); err != nil {
		slog.Warn("failed to save analytics", slog.String("error", err.Error()))
	}
}

// copyAllCmd copies every sentence of the result store
func copyAllCmd(clip export.Clipboard, records []types.AnalysisRecord) tea.Cmd {
	return func() tea.Msg {
		if err := export.CopyAllSentences(clip, records); err != nil {
			return clipboardMsg{err: err}
		}
		return clipboardMsg{message: fmt.Sprintf("Copied %d sentences", len(records))}
	}
}

// copyOneCmd copies a single sentence
func copyOneCmd(clip export.Clipboard, sentence string) tea.Cmd {
	return func() tea.Msg {
		if err := export.CopyOneSentence(clip, sentence); err != nil {
			return clipboardMsg{err: err}
		}
		return clipboardMsg{message: "Sentence copied"}
	}
}

// exportCmd writes analysis.csv for the result store
func exportCmd(dir string, records []types.AnalysisRecord) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Save(dir, export.ExportCSV(records))
		return exportMsg{path: path, err: err}
	}
}

// loadAnalyticsCmd aggregates per-mode stats for a profile
func loadAnalyticsCmd(mgr *analytics.Manager, profileName string) tea.Cmd {
	return func() tea.Msg {
		stats, err := mgr.GetStatsPerMode(profileName)
		return analyticsLoadedMsg{stats: stats, err: err}
	}
}

// checkVersionCmd looks for a newer release in the background
func checkVersionCmd(current string) tea.Cmd {
	return func() tea.Msg {
		update, err := version.CheckForUpdate(context.Background(), current)
		if err != nil {
			slog.Debug("update check failed", slog.String("error", err.Error()))
		}
		return versionCheckMsg{update: update, err: err}
	}
}
