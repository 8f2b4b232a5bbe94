package widgets

import "github.com/charmbracelet/lipgloss"

// Box draws rounded chrome with a title line around content.
type Box struct {
	Title   string
	Content string
	Focused bool
}

func (b Box) Render(width, height int) string {
	if width <= 2 || height <= 2 {
		return ""
	}
	border := lipgloss.Color(colorBorder)
	if b.Focused {
		border = lipgloss.Color(colorAccent)
	}
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true).Render(b.Title)
	inner := fitCanvas(title+"\n"+b.Content, max(1, width-4), max(1, height-2))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(inner)
}
