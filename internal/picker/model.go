// Package picker implements the interactive checkbox file picker
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Rows kept around the cursor when the list is taller than the terminal
const listHeightMargin = 4

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// choice is one selectable row
type choice struct {
	label   string
	checked bool
}

// Model is the bubbletea model behind the picker. Every choice starts
// checked.
type Model struct {
	title     string
	choices   []choice
	cursor    int
	offset    int
	height    int
	confirmed bool
	cancelled bool
}

// NewModel creates a picker model over labels
func NewModel(title string, labels []string) *Model {
	choices := make([]choice, len(labels))
	for i, l := range labels {
		choices[i] = choice{label: l, checked: true}
	}
	return &Model{title: title, choices: choices}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - listHeightMargin
		if m.height < 1 {
			m.height = 1
		}
		m.scroll()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case " ", "x":
			if len(m.choices) > 0 {
				m.choices[m.cursor].checked = !m.choices[m.cursor].checked
			}
		case "a":
			m.toggleAll()
		}
		m.scroll()
	}
	return m, nil
}

// toggleAll checks every choice, or unchecks all when all are checked
func (m *Model) toggleAll() {
	all := true
	for _, c := range m.choices {
		if !c.checked {
			all = false
			break
		}
	}
	for i := range m.choices {
		m.choices[i].checked = !all
	}
}

func (m *Model) scroll() {
	if m.height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	end := len(m.choices)
	if m.height > 0 && m.offset+m.height < end {
		end = m.offset + m.height
	}
	for i := m.offset; i < end; i++ {
		c := m.choices[i]
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if c.checked {
			box = checkedStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, c.label)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d selected • space: toggle • a: all • enter: confirm • esc: cancel",
		len(m.Selected()), len(m.choices))))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the checked labels in their original order
func (m *Model) Selected() []string {
	out := make([]string, 0, len(m.choices))
	for _, c := range m.choices {
		if c.checked {
			out = append(out, c.label)
		}
	}
	return out
}

// Result returns the checked labels, or nil if the user cancelled
func (m *Model) Result() []string {
	if m.cancelled || !m.confirmed {
		return nil
	}
	return m.Selected()
}
