package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/biaslens/internal/keybinds"
)

var helpSections = []struct {
	title   string
	context keybinds.Context
}{
	{"Anywhere", keybinds.ContextGlobal},
	{"Input", keybinds.ContextInput},
	{"Results", keybinds.ContextResults},
	{"Search", keybinds.ContextSearch},
}

func (m *Model) openHelp() {
	var sb strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(styleWarning.Render(section.title) + "\n")
		for _, action := range keybinds.Actions(section.context) {
			keys := m.keys.GetBinding(section.context, action)
			if len(keys) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %-18s %s\n", strings.Join(keys, " / "), keybinds.Describe(action)))
		}
	}
	sb.WriteString(fmt.Sprintf("  %-18s %s\n", "ctrl+c", "quit"))
	if m.updateAvailable {
		sb.WriteString("\n" + styleSuccess.Render(fmt.Sprintf("Update available: %s  %s", m.latestVersion, m.updateURL)) + "\n")
	}

	m.view = ViewHelp
	m.modalView.SetContent(sb.String())
	m.modalView.GotoTop()
}

// renderHelp renders the help screen
func (m *Model) renderHelp() string {
	footer := m.footer(keybinds.ContextHelp, keybinds.ActionNavigateDown, keybinds.ActionClose)
	return m.renderModalWithFooter("Keyboard Shortcuts", "", footer,
		m.width-ModalWidthMargin, m.height-ModalHeightMargin)
}

// footer lists the current keys for actions as "keys: description" pairs
func (m *Model) footer(context keybinds.Context, actions ...keybinds.Action) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		parts = append(parts, fmt.Sprintf("%s: %s", m.keys.GetBindingString(context, action), keybinds.Describe(action)))
	}
	return strings.Join(parts, " | ")
}

// renderModalWithFooter renders a modal around the modal viewport.
// When content is non-empty it replaces the viewport content first.
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, footer, width, height, -1)
}

// renderModalWithFooterAndScroll renders a modal and auto-scrolls to keep selectedLine visible.
// Pass selectedLine=-1 to preserve the scroll position.
func (m *Model) renderModalWithFooterAndScroll(title, content, footer string, width, height, selectedLine int) string {
	if width > m.width-2 {
		width = m.width - 2
	}
	if height > m.height-1 {
		height = m.height - 1
	}

	// title (2) + padding (2) + border (2), footer (2)
	contentHeight := height - 6
	if footer != "" {
		contentHeight -= 2
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.modalView.Width = width - ViewportPaddingHorizontal
	if m.modalView.Width < 10 {
		m.modalView.Width = 10
	}
	m.modalView.Height = contentHeight

	if content != "" {
		savedOffset := m.modalView.YOffset
		m.modalView.SetContent(content)
		m.modalView.SetYOffset(savedOffset)
	}

	if selectedLine >= 0 {
		if selectedLine < m.modalView.YOffset {
			m.modalView.SetYOffset(selectedLine)
		} else if selectedLine >= m.modalView.YOffset+m.modalView.Height {
			m.modalView.SetYOffset(selectedLine - m.modalView.Height + 1)
		}
	}

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalBox)
}
