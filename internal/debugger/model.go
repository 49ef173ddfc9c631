package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// Model is the bubbletea front end over a Debugger: a scrollback of
// command output plus a textinput.Model for entering the next command.
//
// Grounded on the teacher's cpu.model (same tea.Model shape, same
// pageTable/status/View composition via lipgloss.JoinVertical/Horizontal),
// generalized from a fixed single-program stepper driven by spacebar
// presses into a full line-oriented command REPL.
type Model struct {
	Debugger *Debugger
	input    textinput.Model
	history  []string
	quitting bool
}

// NewModel wraps d in a bubbletea Model ready to Run.
func NewModel(d *Debugger) Model {
	ti := textinput.New()
	ti.Placeholder = "s"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	return Model{Debugger: d, input: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			out := m.Debugger.Execute(line)
			m.history = append(m.history, fmt.Sprintf("(froot1) %s", line))
			if out != "" {
				m.history = append(m.history, strings.TrimRight(out, "\n"))
			}
			m.input.SetValue("")
			if m.Debugger.State == Off {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

var (
	regStyle = lipgloss.NewStyle().Bold(true)
	boxStyle = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
)

func (m Model) registers() string {
	c := m.Debugger.Cpu
	return regStyle.Render(fmt.Sprintf(
		"PC=$%04x A=$%02x X=$%02x Y=$%02x SP=$%02x P=$%02x",
		c.ProgramCounter, c.Accumulator, c.X, c.Y, c.Stack, c.Flags.Byte(),
	))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	scrollback := strings.Join(m.history, "\n")
	return lipgloss.JoinVertical(
		lipgloss.Left,
		boxStyle.Render(m.registers()),
		scrollback,
		m.input.View(),
	)
}

// dumpState is a diagnostic helper that renders the full Debugger value
// with go-spew, matching the teacher's use of spew.Sdump for ad hoc
// structural inspection. No command path calls it.
func dumpState(d *Debugger) string {
	return spew.Sdump(d)
}
