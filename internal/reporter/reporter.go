// Package reporter renders live build progress, preserving the insertion
// order projects were first scheduled in. It offers a bubbletea
// dashboard for interactive terminals and a plain line-per-event
// fallback otherwise, styled with lipgloss.
package reporter

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// EventStatus is the lifecycle state a project-status Event carries.
type EventStatus int

const (
	Scheduled EventStatus = iota
	Running
	PickleReady
	Ok
	Failed
	Blocked
)

// Event is one project's progress update, emitted as the scheduling core
// advances a node through its lifecycle.
type Event struct {
	Project string
	Status  EventStatus
	Detail  string
}

// Config selects how a Reporter renders.
type Config struct {
	Writer      io.Writer
	ForcePlain  bool
	PreserveTTY bool
}

// Reporter consumes a stream of Events until the channel closes.
type Reporter interface {
	Run(ctx context.Context, events <-chan Event) error
}

// New picks the bubbletea dashboard when stdout is a terminal and plain
// rendering is not forced, falling back to a plain line-per-event
// reporter otherwise (piped output, CI logs, --plain).
func New(cfg Config) Reporter {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	isTTY := false
	if f, ok := writer.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	if cfg.ForcePlain || !isTTY {
		return &plainReporter{writer: writer}
	}
	return &ttyReporter{writer: writer}
}

type ttyReporter struct {
	writer io.Writer
}

func (r *ttyReporter) Run(ctx context.Context, events <-chan Event) error {
	model := newModel()
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(r.writer))

	go func() {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					program.Send(doneMsg{})
					return
				}
				program.Send(eventMsg(ev))
			case <-ctx.Done():
				program.Send(doneMsg{})
				return
			}
		}
	}()

	_, err := program.Run()
	return err
}
