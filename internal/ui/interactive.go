package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels an interactive prompt.
// Callers treat it as a terminal condition: nothing gets written.
var ErrAborted = errors.New("operation cancelled")

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().MarginTop(2).MarginLeft(4)
)

// Choice is one selectable entry in a picker.
type Choice struct {
	Name        string
	Description string
}

type item struct {
	title, desc string
}

func (i item) FilterValue() string { return i.title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.title)
	if i.desc != "" {
		str = fmt.Sprintf("%s — %s", str, i.desc)
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

type selectionModel struct {
	list    list.Model
	choice  string
	aborted bool
}

func (m selectionModel) Init() tea.Cmd {
	return nil
}

func (m selectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(item)
			if ok {
				m.choice = i.title
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectionModel) View() string {
	if m.choice != "" || m.aborted {
		return ""
	}
	return "\n" + m.list.View()
}

// Select shows a picker over choices and returns the chosen name. A
// cancelled picker returns ErrAborted, never a silent default.
func Select(title string, choices []Choice, selected string) (string, error) {
	items := make([]list.Item, len(choices))
	selectedIndex := 0

	for i, c := range choices {
		items[i] = item{title: c.Name, desc: c.Description}
		if c.Name == selected {
			selectedIndex = i
		}
	}

	l := list.New(items, itemDelegate{}, 80, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = lipgloss.NewStyle()
	l.Styles.HelpStyle = helpStyle
	l.Select(selectedIndex)

	p := tea.NewProgram(selectionModel{list: l})

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run UI: %w", err)
	}

	m, ok := finalModel.(selectionModel)
	if !ok || m.aborted || m.choice == "" {
		return "", ErrAborted
	}
	return m.choice, nil
}

type inputModel struct {
	textInput textinput.Model
	prompt    string
	value     string
	done      bool
	aborted   bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit

		case "enter":
			m.done = true
			m.value = m.textInput.Value()
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return fmt.Sprintf(
		"\n%s\n\n%s\n\n%s\n",
		m.prompt,
		m.textInput.View(),
		"(enter to confirm, esc to cancel)",
	)
}

func runInput(prompt, placeholder, initial string, secret bool) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(initial)
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 80
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	p := tea.NewProgram(inputModel{textInput: ti, prompt: prompt})

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run UI: %w", err)
	}

	m, ok := finalModel.(inputModel)
	if !ok || m.aborted || !m.done {
		return "", ErrAborted
	}
	return strings.TrimSpace(m.value), nil
}

// Input prompts for one line of text, pre-filled with initial.
func Input(prompt, placeholder, initial string) (string, error) {
	return runInput(prompt, placeholder, initial, false)
}

// SecretInput prompts for a secret with masked echo.
func SecretInput(prompt string) (string, error) {
	return runInput(prompt, "", "", true)
}

// Confirm asks a y/N question on stdin. Only "y"/"yes" answer true; EOF or
// a read failure counts as cancellation.
func Confirm(question string) (bool, error) {
	fmt.Printf("%s (y/N): ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, ErrAborted
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
