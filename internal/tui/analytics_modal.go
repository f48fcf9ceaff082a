package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/biaslens/internal/executor"
	"github.com/studiowebux/biaslens/internal/keybinds"
)

// openAnalyticsView shows per-mode submission statistics
func (m *Model) openAnalyticsView() tea.Cmd {
	m.view = ViewAnalytics
	m.analyticsStats = nil
	m.modalView.GotoTop()
	m.updateAnalyticsView()

	if m.analyticsManager == nil {
		return nil
	}
	return loadAnalyticsCmd(m.analyticsManager, m.sessionMgr.GetActiveProfile().Name)
}

// handleAnalyticsKeys handles the statistics modal
func (m *Model) handleAnalyticsKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keys.Match(keybinds.ContextAnalytics, msg.String())
	switch action {
	case keybinds.ActionClose:
		m.view = ViewNormal
	case keybinds.ActionNavigateUp:
		m.modalView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.modalView.ScrollDown(1)
	case keybinds.ActionRefresh:
		return m.openAnalyticsView()
	case keybinds.ActionClearAnalytics:
		if m.analyticsManager != nil {
			m.view = ViewAnalyticsClearConfirm
		}
	}
	return nil
}

func (m *Model) handleAnalyticsClearConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keys.Match(keybinds.ContextConfirm, msg.String())
	switch action {
	case keybinds.ActionConfirm:
		if err := m.analyticsManager.Clear(); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus("Analytics cleared")
		}
		return m.openAnalyticsView()
	case keybinds.ActionCancel:
		m.view = ViewAnalytics
	}
	return nil
}

// updateAnalyticsView renders the loaded stats into the modal viewport
func (m *Model) updateAnalyticsView() {
	var sb strings.Builder

	switch {
	case m.analyticsManager == nil:
		sb.WriteString(styleSubtle.Render("Analytics is disabled for this profile.\n"))
		sb.WriteString(styleSubtle.Render("Set \"analyticsEnabled\": true in profiles.jsonc to record submissions."))
	case len(m.analyticsStats) == 0:
		sb.WriteString(styleSubtle.Render("No submissions recorded yet."))
	default:
		for i, s := range m.analyticsStats {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(styleWarning.Render(s.Mode) + "\n")
			sb.WriteString(fmt.Sprintf("  Calls: %d  OK: %s  Errors: %s  Network: %s\n",
				s.TotalCalls,
				styleSuccess.Render(fmt.Sprint(s.SuccessCount)),
				styleError.Render(fmt.Sprint(s.ErrorCount)),
				styleError.Render(fmt.Sprint(s.NetworkErrors))))
			sb.WriteString(fmt.Sprintf("  Sentences: %d\n", s.TotalRecords))
			sb.WriteString(fmt.Sprintf("  Duration: avg %s  min %s  max %s\n",
				executor.FormatDuration(int64(s.AvgDurationMs)),
				executor.FormatDuration(s.MinDurationMs),
				executor.FormatDuration(s.MaxDurationMs)))
			sb.WriteString("  Status: " + formatStatusCodes(s.StatusCodes) + "\n")
			if !s.LastCalled.IsZero() {
				sb.WriteString(styleSubtle.Render("  Last: "+s.LastCalled.Format(time.DateTime)) + "\n")
			}
		}
	}

	m.modalView.SetContent(sb.String())
}

func formatStatusCodes(codes map[int]int) string {
	keys := make([]int, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, code := range keys {
		label := fmt.Sprint(code)
		if code == 0 {
			label = "network"
		}
		parts = append(parts, fmt.Sprintf("%s×%d", label, codes[code]))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// renderAnalytics renders the statistics modal
func (m *Model) renderAnalytics() string {
	footer := m.footer(keybinds.ContextAnalytics,
		keybinds.ActionNavigateDown, keybinds.ActionRefresh, keybinds.ActionClearAnalytics, keybinds.ActionClose)
	if m.view == ViewAnalyticsClearConfirm {
		footer = styleError.Render(fmt.Sprintf("Delete all recorded submissions? %s: yes | %s: no",
			m.keys.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirm),
			m.keys.GetBindingString(keybinds.ContextConfirm, keybinds.ActionCancel)))
	}
	title := fmt.Sprintf("Statistics: %s", m.sessionMgr.GetActiveProfile().Name)
	return m.renderModalWithFooter(title, "", footer, m.width-ModalWidthMargin, m.height-ModalHeightMargin)
}
