package reporter

import (
	"context"
	"fmt"
	"io"
)

// plainReporter writes one line per Event with no cursor control, for
// piped output, CI logs, or --plain invocations.
type plainReporter struct {
	writer io.Writer
}

func (r *plainReporter) Run(ctx context.Context, events <-chan Event) error {
	var ok, failed, blocked int
	for {
		select {
		case ev, open := <-events:
			if !open {
				fmt.Fprintf(r.writer, "%d ok, %d failed, %d blocked\n", ok, failed, blocked)
				return nil
			}
			fmt.Fprintln(r.writer, plainLine(ev))
			switch ev.Status {
			case Ok:
				ok++
			case Failed:
				failed++
			case Blocked:
				blocked++
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func plainLine(ev Event) string {
	label := plainLabel(ev.Status)
	if ev.Detail == "" {
		return fmt.Sprintf("[%s] %s", label, ev.Project)
	}
	return fmt.Sprintf("[%s] %s: %s", label, ev.Project, ev.Detail)
}

func plainLabel(s EventStatus) string {
	switch s {
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	case PickleReady:
		return "pickle"
	case Ok:
		return "ok"
	case Failed:
		return "failed"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}
