package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/biaslens/internal/filter"
	"github.com/studiowebux/biaslens/internal/keybinds"
	"github.com/studiowebux/biaslens/internal/types"
)

// handleKeyPress routes key presses based on current view
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all views)
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.view {
	case ViewSearch:
		return m.handleSearchKeys(msg)
	case ViewProfileSwitch:
		return m.handleProfileSwitchKeys(msg)
	case ViewAnalytics:
		return m.handleAnalyticsKeys(msg)
	case ViewAnalyticsClearConfirm:
		return m.handleAnalyticsClearConfirmKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	}

	if m.focus == FocusResults {
		return m.handleResultsKeys(msg)
	}
	return m.handleInputKeys(msg)
}

// handleSharedAction runs actions available from both panes
func (m *Model) handleSharedAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionNextMode:
		return m.switchMode(nextMode(m.state.Mode(), 1)), true
	case keybinds.ActionPrevMode:
		return m.switchMode(nextMode(m.state.Mode(), -1)), true
	case keybinds.ActionSubmit:
		return m.submit(), true
	case keybinds.ActionCopyAll:
		return copyAllCmd(m.clipboard, m.state.Results()), true
	case keybinds.ActionExport:
		return m.exportCSV(), true
	case keybinds.ActionOpenProfiles:
		m.openProfileSwitch()
		return nil, true
	case keybinds.ActionOpenAnalytics:
		return m.openAnalyticsView(), true
	case keybinds.ActionOpenHelp:
		m.openHelp()
		return nil, true
	}
	return nil, false
}

// handleInputKeys edits the active mode's input
func (m *Model) handleInputKeys(msg tea.KeyMsg) tea.Cmd {
	mode := m.state.Mode()

	if action, ok := m.keys.Match(keybinds.ContextInput, msg.String()); ok {
		switch {
		case action == keybinds.ActionFocusResults:
			if len(m.state.Results()) > 0 {
				return m.setFocus(FocusResults)
			}
			return nil
		// enter inserts a newline in the text area
		case action == keybinds.ActionSubmit && mode == types.ModeText && msg.String() == "enter":
		default:
			if cmd, handled := m.handleSharedAction(action); handled {
				return cmd
			}
		}
	}

	if mode == types.ModeOther {
		return nil
	}

	var cmd tea.Cmd
	if mode == types.ModeText {
		m.textInput, cmd = m.textInput.Update(msg)
		m.state.SetInput(mode, m.textInput.Value())
	} else {
		m.lineInput, cmd = m.lineInput.Update(msg)
		m.state.SetInput(mode, m.lineInput.Value())
	}
	return cmd
}

// handleResultsKeys navigates, filters and exports the result list
func (m *Model) handleResultsKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextResults, msg.String())
	if !ok {
		return nil
	}

	records := m.visibleRecords()

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionFocusInput:
		return m.setFocus(FocusInput)

	case keybinds.ActionNavigateUp:
		if m.selected > 0 {
			m.selected--
			m.updateResultsView()
		}

	case keybinds.ActionNavigateDown:
		if m.selected < len(records)-1 {
			m.selected++
			m.updateResultsView()
		}

	case keybinds.ActionGoToTop:
		m.selected = 0
		m.updateResultsView()

	case keybinds.ActionGoToBottom:
		if len(records) > 0 {
			m.selected = len(records) - 1
			m.updateResultsView()
		}

	case keybinds.ActionPageDown:
		m.resultsView.HalfViewDown()

	case keybinds.ActionPageUp:
		m.resultsView.HalfViewUp()

	case keybinds.ActionCycleBias:
		m.criteria.Bias = cycleLabel(filter.BiasLabels(m.state.Results()), m.criteria.Bias)
		m.selected = 0
		m.updateResultsView()

	case keybinds.ActionCycleSentiment:
		m.criteria.Sentiment = cycleLabel(filter.SentimentLabels(m.state.Results()), m.criteria.Sentiment)
		m.selected = 0
		m.updateResultsView()

	case keybinds.ActionClearFilters:
		m.criteria = types.FilterCriteria{}
		m.search = ""
		m.searchInput.Reset()
		m.selected = 0
		m.updateResultsView()
		m.setStatus("Filters cleared")

	case keybinds.ActionSearch:
		m.view = ViewSearch
		m.searchInput.SetValue(m.search)
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()

	case keybinds.ActionCopyOne:
		sentence := ""
		if record, ok := m.selectedRecord(); ok {
			sentence = record.Sentence
		}
		return copyOneCmd(m.clipboard, sentence)

	default:
		cmd, _ := m.handleSharedAction(action)
		return cmd
	}

	return nil
}

// handleSearchKeys edits the fuzzy sentence search live
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keys.Match(keybinds.ContextSearch, msg.String())
	switch action {
	case keybinds.ActionConfirm:
		m.view = ViewNormal
		m.searchInput.Blur()
		return nil
	case keybinds.ActionCancel:
		m.view = ViewNormal
		m.search = ""
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.selected = 0
		m.updateResultsView()
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.search = m.searchInput.Value()
	m.selected = 0
	m.updateResultsView()
	return cmd
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keys.Match(keybinds.ContextHelp, msg.String())
	switch action {
	case keybinds.ActionClose:
		m.view = ViewNormal
	case keybinds.ActionNavigateUp:
		m.modalView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.modalView.ScrollDown(1)
	}
	return nil
}

// setFocus moves keyboard focus between the input and the results
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	if f == FocusResults {
		m.lineInput.Blur()
		m.textInput.Blur()
		m.updateResultsView()
		return nil
	}
	m.updateResultsView()
	if m.state.Mode() == types.ModeText {
		m.lineInput.Blur()
		return m.textInput.Focus()
	}
	m.textInput.Blur()
	return m.lineInput.Focus()
}

// exportCSV saves analysis.csv into the profile's export directory
func (m *Model) exportCSV() tea.Cmd {
	dir := m.sessionMgr.GetActiveProfile().ExportDir
	return exportCmd(dir, m.state.Results())
}

// nextMode returns the neighbouring tab, wrapping around
func nextMode(current types.Mode, step int) types.Mode {
	modes := types.Modes()
	for i, mode := range modes {
		if mode == current {
			return modes[(i+step+len(modes))%len(modes)]
		}
	}
	return modes[0]
}

// cycleLabel steps "" -> labels[0] -> ... -> labels[n-1] -> ""
func cycleLabel(labels []string, current string) string {
	if current == "" {
		if len(labels) == 0 {
			return ""
		}
		return labels[0]
	}
	for i, label := range labels {
		if label == current {
			if i+1 < len(labels) {
				return labels[i+1]
			}
			return ""
		}
	}
	return ""
}
