package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/casworks/giacbridge/cas"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD787"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxShown bounds how many past exchanges the view renders.
const maxShown = 12

type exchange struct {
	input    string
	output   string
	warnings []string
	failed   bool
}

type replModel struct {
	ctx      *cas.Context
	input    textinput.Model
	history  []exchange
	recall   int // index into history while browsing with up/down
	warnings []string
}

func newReplModel(ctx *cas.Context) *replModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "expression, e.g. factor(x^2-1)"
	ti.Width = 60
	ti.Focus()

	m := &replModel{
		ctx:    ctx,
		input:  ti,
		recall: -1,
	}
	ctx.SetWarningHandler(func(msg string) {
		m.warnings = append(m.warnings, msg)
	})
	return m
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			m.evaluate(line)
			m.input.SetValue("")
			m.recall = -1
			return m, nil

		case "up":
			if len(m.history) > 0 {
				if m.recall < 0 {
					m.recall = len(m.history) - 1
				} else if m.recall > 0 {
					m.recall--
				}
				m.input.SetValue(m.history[m.recall].input)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.recall >= 0 {
				m.recall++
				if m.recall >= len(m.history) {
					m.recall = -1
					m.input.SetValue("")
				} else {
					m.input.SetValue(m.history[m.recall].input)
					m.input.CursorEnd()
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) evaluate(line string) {
	m.warnings = nil
	out, err := m.ctx.Eval(line)
	ex := exchange{input: line, warnings: m.warnings}
	if err != nil {
		ex.output = err.Error()
		ex.failed = true
	} else {
		ex.output = out
	}
	m.history = append(m.history, ex)
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("giacalc"))
	b.WriteString("\n\n")

	start := 0
	if len(m.history) > maxShown {
		start = len(m.history) - maxShown
	}
	for _, ex := range m.history[start:] {
		b.WriteString(promptStyle.Render("> " + ex.input))
		b.WriteString("\n")
		for _, w := range ex.warnings {
			b.WriteString(warnStyle.Render("  ! " + w))
			b.WriteString("\n")
		}
		if ex.failed {
			b.WriteString(errorStyle.Render("  " + ex.output))
		} else {
			b.WriteString(resultStyle.Render("  " + ex.output))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/↓ history • enter evaluate • esc quit"))
	return b.String()
}

func runRepl(ctx *cas.Context) error {
	p := tea.NewProgram(newReplModel(ctx))
	_, err := p.Run()
	return err
}
