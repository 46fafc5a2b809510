package reporter

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type projectStatus struct {
	status EventStatus
	detail string
}

// model is the bubbletea model for the interactive dashboard: a spinner
// plus a status list, with no cursor navigation, view-mode switching or
// confirmation machinery — there is exactly one thing to watch, a single
// build, start to finish.
type model struct {
	spinner spinner.Model
	order   []string
	status  map[string]projectStatus
	done    bool
	start   time.Time
}

type eventMsg Event
type doneMsg struct{}
type tickMsg time.Time

func newModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return model{
		spinner: s,
		status:  make(map[string]projectStatus),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if _, ok := m.status[msg.Project]; !ok {
			m.order = append(m.order, msg.Project)
		}
		m.status[msg.Project] = projectStatus{status: msg.Status, detail: msg.Detail}
		return m, nil

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}
