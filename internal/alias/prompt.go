package alias

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the prompt is quit before every group was
// answered.
var ErrAborted = errors.New("alias prompt aborted")

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// PromptModel asks for an alias for each group in turn. An empty answer
// keeps the current alias, if any, or leaves the group unaliased.
type PromptModel struct {
	groups  []Group
	current map[string]string
	answers map[string]string

	index    int
	input    textinput.Model
	aborted  bool
	finished bool
}

// NewPromptModel creates a prompt over groups. current holds existing
// aliases shown as placeholders.
func NewPromptModel(groups []Group, current map[string]string) *PromptModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	m := &PromptModel{
		groups:  groups,
		current: current,
		answers: make(map[string]string),
		input:   ti,
	}
	m.finished = len(groups) == 0
	m.resetInput()
	return m
}

func (m *PromptModel) resetInput() {
	m.input.SetValue("")
	m.input.Placeholder = "skip"
	if m.index < len(m.groups) {
		if a := m.existing(m.groups[m.index]); a != "" {
			m.input.Placeholder = a
		}
	}
}

func (m *PromptModel) existing(g Group) string {
	for _, k := range g.Keys {
		if a := m.current[k]; a != "" {
			return a
		}
	}
	return ""
}

// Init starts the cursor blinking.
func (m *PromptModel) Init() tea.Cmd {
	if m.finished {
		return tea.Quit
	}
	return textinput.Blink
}

// Update handles key presses.
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.answer(strings.TrimSpace(m.input.Value()))
			if m.finished {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *PromptModel) answer(value string) {
	g := m.groups[m.index]
	if value == "" {
		value = m.existing(g)
	}
	if value != "" {
		for _, k := range g.Keys {
			m.answers[k] = value
		}
	}
	m.index++
	if m.index >= len(m.groups) {
		m.finished = true
		return
	}
	m.resetInput()
}

// View renders the current question.
func (m *PromptModel) View() string {
	if m.finished || m.aborted {
		return ""
	}
	g := m.groups[m.index]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Player %d of %d", m.index+1, len(m.groups))))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s (id %s)\n", nameStyle.Render(g.Label()), g.ID)
	if !g.Seen.IsZero() {
		line := "first seen " + g.Seen.Format("2006/01/02 15:04:05")
		if len(g.With) > 0 {
			line += " with " + strings.Join(g.With, ", ")
		}
		b.WriteString(hintStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter to accept • esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// Answers returns the aliases chosen so far, keyed by composite key.
func (m *PromptModel) Answers() map[string]string {
	return m.answers
}

// Prompt runs the interactive prompt and returns the chosen aliases.
func Prompt(groups []Group, current map[string]string, opts ...tea.ProgramOption) (map[string]string, error) {
	model := NewPromptModel(groups, current)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("alias prompt: %w", err)
	}
	m := final.(*PromptModel)
	if m.aborted {
		return m.answers, ErrAborted
	}
	return m.answers, nil
}
