package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// pickerModel lets the user choose one module from a numbered list.
type pickerModel struct {
	ids     []string
	input   string
	errMsg  string
	choice  string
	aborted bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		n, err := strconv.Atoi(strings.TrimSpace(m.input))
		if err != nil || n < 1 || n > len(m.ids) {
			m.errMsg = fmt.Sprintf("enter a number between 1 and %d", len(m.ids))
			m.input = ""
			return m, nil
		}
		m.choice = m.ids[n-1]
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyRunes:
		s := string(keyMsg.Runes)
		if s == "q" {
			m.aborted = true
			return m, tea.Quit
		}
		m.input += s
		return m, nil
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.choice != "" || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString("Available modules:\n")
	for i, id := range m.ids {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, id)
	}
	fmt.Fprintf(&b, "\nSelect module to remove (1-%d) or 'q' to quit: %s", len(m.ids), m.input)
	if m.errMsg != "" {
		b.WriteString("\n" + m.errMsg)
	}
	b.WriteString("\n")
	return b.String()
}

// PickModule shows a numbered list of module identifiers and returns the
// chosen one. The second return is false when the user cancelled.
func PickModule(ids []string) (string, bool, error) {
	if len(ids) == 0 {
		return "", false, fmt.Errorf("no modules to choose from")
	}
	final, err := tea.NewProgram(pickerModel{ids: ids}).Run()
	if err != nil {
		return "", false, err
	}
	m := final.(pickerModel)
	if m.aborted || m.choice == "" {
		return "", false, nil
	}
	return m.choice, true, nil
}

// confirmModel asks a destructive yes/no question.
type confirmModel struct {
	question string
	answered bool
	yes      bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.answered = true
		m.yes = true
		return m, tea.Quit
	case "n", "N", "q", "esc", "ctrl+c":
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return m.question + " (y/n): \n"
}

// Confirm asks a destructive yes/no question and returns the answer.
func Confirm(question string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question}).Run()
	if err != nil {
		return false, err
	}
	return final.(confirmModel).yes, nil
}

// ConfirmRemoval warns about a destructive module removal and asks for
// confirmation.
func ConfirmRemoval(id, dir string) (bool, error) {
	return Confirm(fmt.Sprintf(
		"WARNING: this will permanently delete module '%s'\n"+
			"Directory to be removed: %s\n"+
			"The CMakeLists.txt entry will also be removed.\n"+
			"This action cannot be undone!\n\n"+
			"Remove module '%s'?", id, dir, id))
}
