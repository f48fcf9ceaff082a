package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/biaslens/internal/keybinds"
)

// openProfileSwitch shows the profile list with the active profile selected
func (m *Model) openProfileSwitch() {
	active := m.sessionMgr.GetActiveProfile().Name
	m.profileIndex = 0
	for i, p := range m.sessionMgr.GetProfiles() {
		if p.Name == active {
			m.profileIndex = i
			break
		}
	}
	m.view = ViewProfileSwitch
	m.modalView.GotoTop()
}

// handleProfileSwitchKeys handles profile switching
func (m *Model) handleProfileSwitchKeys(msg tea.KeyMsg) tea.Cmd {
	profiles := m.sessionMgr.GetProfiles()

	action, _ := m.keys.Match(keybinds.ContextProfiles, msg.String())
	switch action {
	case keybinds.ActionClose:
		m.view = ViewNormal

	case keybinds.ActionNavigateUp:
		if m.profileIndex > 0 {
			m.profileIndex--
		}

	case keybinds.ActionNavigateDown:
		if m.profileIndex < len(profiles)-1 {
			m.profileIndex++
		}

	case keybinds.ActionSelect:
		if m.profileIndex < len(profiles) {
			selected := profiles[m.profileIndex]
			m.view = ViewNormal
			if err := m.sessionMgr.SetActiveProfile(selected.Name); err != nil {
				m.setError(err.Error())
				return nil
			}
			m.rebuildClient()
			if m.clientErr == nil {
				m.setStatus(fmt.Sprintf("Switched to profile: %s", selected.Name))
			}
			m.openAnalytics()
		}
	}
	return nil
}

// renderProfileSwitch renders the profile list
func (m *Model) renderProfileSwitch() string {
	profiles := m.sessionMgr.GetProfiles()
	active := m.sessionMgr.GetActiveProfile().Name

	var sb strings.Builder
	for i, p := range profiles {
		line := p.Name
		if p.BaseURL != "" {
			line += styleSubtle.Render("  " + p.BaseURL)
		}
		if p.Name == active {
			line += styleSuccess.Render("  (active)")
		}
		if i == m.profileIndex {
			line = styleSelected.Render("› " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	return m.renderModalWithFooterAndScroll("Profiles", sb.String(), m.footer(keybinds.ContextProfiles, keybinds.ActionNavigateDown, keybinds.ActionSelect, keybinds.ActionClose),
		m.width/2+20, len(profiles)+10, m.profileIndex)
}
