package reporter

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	var b strings.Builder

	for _, name := range m.order {
		st := m.status[name]
		glyph := statusGlyph(st.status)
		if !m.done && (st.status == Scheduled || st.status == Running) {
			glyph = m.spinner.View()
		}

		line := fmt.Sprintf("%s %s", glyph, name)
		if st.detail != "" {
			line += "  " + detailStyle.Render(st.detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString(summaryStyle.Render(summaryLine(m)))
		b.WriteString("\n")
	}

	return b.String()
}

func summaryLine(m model) string {
	var ok, failed, blocked int
	for _, st := range m.status {
		switch st.status {
		case Ok:
			ok++
		case Failed:
			failed++
		case Blocked:
			blocked++
		}
	}
	return fmt.Sprintf("%d ok, %d failed, %d blocked", ok, failed, blocked)
}
