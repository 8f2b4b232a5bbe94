package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderPopup draws popup as a bordered card centred over base, leaving the
// base visible around it.
func RenderPopup(base, popup string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorAccent)).
		Padding(0, 2).
		Render(popup)
	overlay := fitCanvas(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	return overlayOntoBase(fitCanvas(base, width, height), overlay, width, height)
}

func overlayOntoBase(base, overlay string, width, height int) string {
	baseLines := splitToLines(base, height)
	overLines := splitToLines(overlay, height)
	out := make([]string, height)
	for i := range out {
		under := padRightANSI(baseLines[i], width)
		over := padRightANSI(overLines[i], width)
		start, end, ok := segmentBounds(over, width)
		if !ok {
			out[i] = under
			continue
		}
		left := ansi.Truncate(under, start, "")
		mid := ansi.Truncate(dropColumns(over, start), end-start, "")
		out[i] = padRightANSI(left+mid+dropColumns(under, end), width)
	}
	return strings.Join(out, "\n")
}

// segmentBounds finds the non-blank column span of an overlay line.
func segmentBounds(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	for start < len(trimmed) && trimmed[start] == ' ' {
		start++
	}
	return start, ansi.StringWidth(trimmed), true
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
