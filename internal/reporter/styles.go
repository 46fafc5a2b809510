package reporter

import "github.com/charmbracelet/lipgloss"

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	summaryStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

func statusGlyph(s EventStatus) string {
	switch s {
	case Ok:
		return okStyle.Render("✓")
	case Failed:
		return failStyle.Render("✗")
	case Blocked:
		return blockedStyle.Render("⊘")
	case PickleReady:
		return mutedStyle.Render("◆")
	default:
		return mutedStyle.Render("·")
	}
}
