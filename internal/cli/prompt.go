package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/biaslens/internal/types"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	mode        types.Mode
	unsupported bool
}

func (i item) FilterValue() string {
	return i.mode.String()
}

func (i item) Title() string {
	title := i.mode.String()
	if i.unsupported {
		title += " (not supported yet)"
	}
	return title
}

func (i item) Description() string { return "" }

type selectorModel struct {
	list     list.Model
	choice   *types.Mode
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.choice = nil
			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(item); ok {
				mode := i.mode
				m.choice = &mode
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • enter: select • q/ctrl+c: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

func newSelector() selectorModel {
	modes := types.Modes()
	items := make([]list.Item, 0, len(modes))
	for _, mode := range modes {
		items = append(items, item{mode: mode, unsupported: mode == types.ModeOther})
	}

	const defaultWidth = 60
	const listHeight = 10

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "What do you want to analyze?"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return selectorModel{list: l}
}

// PromptForInput asks for a mode and then reads the input from in.
// Text mode reads until EOF; the other modes read a single line.
func PromptForInput(in io.Reader, out io.Writer) (types.Mode, string, error) {
	p := tea.NewProgram(newSelector(), tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return types.ModeURL, "", fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if result.choice == nil {
		return types.ModeURL, "", fmt.Errorf("selection cancelled")
	}

	mode := *result.choice
	if mode == types.ModeOther {
		return mode, "", nil
	}

	value, err := readValue(in, out, mode)
	if err != nil {
		return mode, "", err
	}
	return mode, value, nil
}

// readValue prompts for the input of the chosen mode
func readValue(in io.Reader, out io.Writer, mode types.Mode) (string, error) {
	reader := bufio.NewReader(in)

	if mode == types.ModeText {
		fmt.Fprintln(out, "\nPaste the text to analyze, then press ctrl+d:")
		data, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	label := "URL"
	if mode == types.ModeAudio {
		label = "audio file"
	}
	fmt.Fprintf(out, "\nEnter %s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
