package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/studiowebux/biaslens/internal/keybinds"
	"github.com/studiowebux/biaslens/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5f5f"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTab = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorGray)

	styleActiveTab = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Underline(true).
			Foreground(colorCyan)

	styleBadge = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true)
)

// renderMain renders tabs, the input box, the filter line and the results
func (m *Model) renderMain() string {
	header := m.renderHeader()
	input := m.renderInput()
	filters := m.renderFilterLine()

	resultsBorder := colorGray
	if m.focus == FocusResults {
		resultsBorder = colorGreen
	}
	results := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(resultsBorder).
		Width(m.width - ViewportBorderWidth).
		Render(m.resultsView.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		input,
		filters,
		results,
		m.renderStatusBar(),
	)
}

// renderHeader renders the title line and the mode tabs
func (m *Model) renderHeader() string {
	title := styleTitle.Render("BiasLens")
	if m.version != "" {
		title += styleSubtle.Render(" " + m.version)
	}
	if m.updateAvailable {
		title += styleWarning.Render(fmt.Sprintf("  update available: %s (%s)", m.latestVersion, m.updateURL))
	}

	var tabs []string
	for _, mode := range types.Modes() {
		label := tabLabel(mode)
		if mode == m.state.Mode() {
			tabs = append(tabs, styleActiveTab.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}

	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func tabLabel(mode types.Mode) string {
	switch mode {
	case types.ModeURL:
		return "Article URL"
	case types.ModeText:
		return "Text"
	case types.ModeVideo:
		return "Video"
	case types.ModeAudio:
		return "Audio"
	}
	return "Other"
}

// renderInput renders the active mode's input widget
func (m *Model) renderInput() string {
	var content string
	switch m.state.Mode() {
	case types.ModeText:
		content = m.textInput.View()
	case types.ModeOther:
		content = styleSubtle.Render("This input type is not supported yet.")
	default:
		content = m.lineInput.View()
	}

	border := colorGray
	if m.focus == FocusInput {
		border = colorGreen
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(m.width - ViewportBorderWidth).
		Render(content)
}

// renderFilterLine shows the active filters and the visible count
func (m *Model) renderFilterLine() string {
	if m.state.Loading() {
		return m.spinner.View() + " Analyzing..."
	}

	bias := m.criteria.Bias
	if bias == "" {
		bias = "all"
	}
	sentiment := m.criteria.Sentiment
	if sentiment == "" {
		sentiment = "all"
	}

	line := fmt.Sprintf("Bias: %s  Sentiment: %s", bias, sentiment)
	if m.search != "" || m.view == ViewSearch {
		if m.view == ViewSearch {
			line += "  " + m.searchInput.View()
		} else {
			line += "  Search: " + m.search
		}
	}
	total := len(m.state.Results())
	if total > 0 {
		line += styleSubtle.Render(fmt.Sprintf("  (%d of %d)", len(m.visibleRecords()), total))
	}
	return line
}

// renderStatusBar renders the profile, errors and status messages
func (m *Model) renderStatusBar() string {
	profile := m.sessionMgr.GetActiveProfile()
	left := fmt.Sprintf("Profile: %s", profile.Name)

	right := ""
	switch {
	case m.errorMsg != "":
		right = styleError.Render(truncate(m.errorMsg, MaxStatusWidth))
	case m.state.Err() != "":
		right = styleError.Render(truncate(m.state.Err(), MaxStatusWidth))
	case m.statusMsg != "":
		right = styleSuccess.Render(truncate(m.statusMsg, MaxStatusWidth))
	default:
		right = styleSubtle.Render(m.footer(keybinds.ContextGlobal,
			keybinds.ActionNextMode, keybinds.ActionSubmit, keybinds.ActionOpenHelp) + " | ctrl+c: quit")
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// updateViewport recalculates widget sizes after a resize or mode switch
func (m *Model) updateViewport() {
	if m.width == 0 {
		return
	}

	inputWidth := m.width - ViewportPaddingHorizontal
	m.lineInput.Width = inputWidth - lipgloss.Width(m.lineInput.Prompt) - 1
	m.textInput.SetWidth(inputWidth)
	m.searchInput.Width = m.width / 3

	inputLines := 1
	if m.state.Mode() == types.ModeText {
		inputLines = TextAreaHeight
	}

	resultsHeight := m.height - HeaderLines - inputLines - 2 - FilterLines - StatusLines - ViewportBorderWidth
	if resultsHeight < 3 {
		resultsHeight = 3
	}

	m.resultsView.Width = m.width - ViewportPaddingHorizontal
	m.resultsView.Height = resultsHeight
	m.modalView.Width = m.width - ModalWidthMargin - ViewportPaddingHorizontal
	m.modalView.Height = m.height - ModalHeightMargin - 4

	m.updateResultsView()
}

// updateResultsView renders the filtered records into the results viewport
// and keeps the selected record on screen
func (m *Model) updateResultsView() {
	records := m.visibleRecords()

	if len(records) == 0 {
		var msg string
		switch {
		case m.state.Loading():
			msg = "Waiting for the analysis service..."
		case !m.criteria.IsEmpty() || m.search != "":
			msg = "No sentences match the current filters. Press c to clear them."
		default:
			msg = "No results yet. Enter something to analyze and press ctrl+s."
		}
		m.resultsView.SetContent(styleSubtle.Render(msg))
		m.resultsView.GotoTop()
		return
	}

	if m.selected >= len(records) {
		m.selected = len(records) - 1
	}

	width := m.resultsView.Width - 5
	if width < 10 {
		width = 10
	}

	var sb strings.Builder
	selectedStart, selectedEnd := 0, 0
	line := 0
	for i, r := range records {
		card := renderRecord(i, r, width, i == m.selected && m.focus == FocusResults)
		if i == m.selected {
			selectedStart = line
		}
		line += strings.Count(card, "\n") + 1
		if i == m.selected {
			selectedEnd = line
		}
		sb.WriteString(card)
		if i < len(records)-1 {
			sb.WriteString("\n")
			line++
		}
	}

	m.resultsView.SetContent(sb.String())

	if selectedStart < m.resultsView.YOffset {
		m.resultsView.SetYOffset(selectedStart)
	} else if selectedEnd > m.resultsView.YOffset+m.resultsView.Height {
		m.resultsView.SetYOffset(selectedEnd - m.resultsView.Height)
	}
}

// renderRecord renders one sentence with its bias and sentiment badges
func renderRecord(index int, r types.AnalysisRecord, width int, selected bool) string {
	marker := "  "
	if selected {
		marker = "› "
	}

	prefix := fmt.Sprintf("%s%d. ", marker, index+1)
	indent := strings.Repeat(" ", lipgloss.Width(prefix))

	lines := strings.Split(wordwrap.String(r.Sentence, width), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = indent + lines[i]
		}
		if selected {
			lines[i] = styleSelected.Render(lines[i])
		}
	}

	badges := indent +
		styleBadge.Foreground(biasColor(r.Bias)).Render(r.Bias) + " " +
		styleBadge.Foreground(sentimentColor(r.Sentiment)).Render(r.Sentiment)

	return strings.Join(lines, "\n") + "\n" + badges
}

// biasColor matches on substrings since labels arrive as "left-leaning bias"
// or "loaded language" as well as the bare forms
func biasColor(bias string) lipgloss.AdaptiveColor {
	label := strings.ToLower(bias)
	switch {
	case strings.Contains(label, "left"):
		return colorBlue
	case strings.Contains(label, "right"):
		return colorRed
	case strings.Contains(label, "loaded"):
		return colorYellow
	case strings.Contains(label, "center"), strings.Contains(label, "neutral"):
		return colorGreen
	}
	return colorGray
}

func sentimentColor(sentiment string) lipgloss.AdaptiveColor {
	switch strings.ToLower(sentiment) {
	case "positive":
		return colorGreen
	case "negative":
		return colorRed
	case "neutral":
		return colorYellow
	}
	return colorGray
}

// truncate cuts s to n display cells without splitting a rune
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}
