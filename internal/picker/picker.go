package picker

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Picker runs the checkbox prompt as a full bubbletea program
type Picker struct {
	options []tea.ProgramOption
}

// New creates a Picker. Program options are passed through to bubbletea,
// e.g. tea.WithOutput for tests.
func New(opts ...tea.ProgramOption) *Picker {
	return &Picker{options: opts}
}

// Pick shows labels and returns the ones the user confirmed. It returns
// nil when the prompt is cancelled.
func (p *Picker) Pick(title string, labels []string) ([]string, error) {
	model := NewModel(title, labels)

	final, err := tea.NewProgram(model, p.options...).Run()
	if err != nil {
		return nil, fmt.Errorf("picker: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("picker: unexpected model type %T", final)
	}
	return m.Result(), nil
}
