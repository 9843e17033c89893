package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssp-tools/rnbokit/internal/modules"
)

// promptField is one line of the create questionnaire. Defaults may depend
// on answers already given, so they are computed against the partial info.
type promptField struct {
	label     string
	defaultOf func(info modules.ModuleInfo) string
	assign    func(info *modules.ModuleInfo, v string)
	validate  func(v string) error
}

var createFields = []promptField{
	{
		label:     "Module ID (4 uppercase letters/numbers, starts with letter)",
		defaultOf: func(modules.ModuleInfo) string { return "" },
		assign:    func(info *modules.ModuleInfo, v string) { info.ID = v },
		validate:  modules.ValidateID,
	},
	{
		label:     "Module Name",
		defaultOf: func(info modules.ModuleInfo) string { return info.ID },
		assign:    func(info *modules.ModuleInfo, v string) { info.Name = v },
	},
	{
		label:     "Description",
		defaultOf: func(info modules.ModuleInfo) string { return info.Name },
		assign:    func(info *modules.ModuleInfo, v string) { info.Description = v },
	},
	{
		label:     "Brand/Company",
		defaultOf: func(modules.ModuleInfo) string { return "YourBrand" },
		assign:    func(info *modules.ModuleInfo, v string) { info.Brand = v },
	},
	{
		label:     "Author Name",
		defaultOf: func(modules.ModuleInfo) string { return "Unknown" },
		assign:    func(info *modules.ModuleInfo, v string) { info.Author = v },
	},
	{
		label:     "Email",
		defaultOf: func(modules.ModuleInfo) string { return "unknown@example.com" },
		assign:    func(info *modules.ModuleInfo, v string) { info.Email = v },
	},
	{
		label:     "Website",
		defaultOf: func(modules.ModuleInfo) string { return "https://example.com" },
		assign:    func(info *modules.ModuleInfo, v string) { info.Website = v },
	},
}

// promptModel is a minimal Bubble Tea model walking the field list. Plain
// text only, no icons.
type promptModel struct {
	fields  []promptField
	idx     int
	input   string
	errMsg  string
	info    modules.ModuleInfo
	done    bool
	aborted bool
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		field := m.fields[m.idx]
		v := m.input
		if v == "" {
			v = field.defaultOf(m.info)
		}
		if field.validate != nil {
			if err := field.validate(v); err != nil {
				m.errMsg = err.Error()
				m.input = ""
				return m, nil
			}
		}
		field.assign(&m.info, v)
		m.errMsg = ""
		m.input = ""
		m.idx++
		if m.idx >= len(m.fields) {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)
		return m, nil
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	header := "Creating new RNBO module (esc to cancel)\n\n"
	field := m.fields[m.idx]
	prompt := field.label
	if def := field.defaultOf(m.info); def != "" {
		prompt += fmt.Sprintf(" [%s]", def)
	}
	body := fmt.Sprintf("%s: %s", prompt, m.input)
	footer := ""
	if m.errMsg != "" {
		footer = "\n\nError: " + m.errMsg
	}
	return header + body + footer + "\n"
}

// PromptModuleInfo interactively collects module attributes, re-prompting
// until the identifier validates. The second return is false when the user
// cancelled.
func PromptModuleInfo() (modules.ModuleInfo, bool, error) {
	initial := promptModel{fields: createFields}
	final, err := tea.NewProgram(initial).Run()
	if err != nil {
		return modules.ModuleInfo{}, false, err
	}
	m := final.(promptModel)
	if m.aborted {
		return modules.ModuleInfo{}, false, nil
	}
	return m.info, true, nil
}
