package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom. Heights gives fixed row counts; a
// zero entry (or a missing one) shares whatever is left.
type VStack struct {
	Widgets []Widget
	Heights []int
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	heights := distribute(height, len(v.Widgets), v.Heights)
	parts := make([]string, 0, len(v.Widgets))
	for i, w := range v.Widgets {
		if heights[i] <= 0 {
			continue
		}
		parts = append(parts, fitCanvas(w.Render(width, heights[i]), width, heights[i]))
	}
	return strings.Join(parts, "\n")
}

// HStack places widgets side by side with Gap columns between them. Widths
// works like VStack.Heights.
type HStack struct {
	Widgets []Widget
	Widths  []int
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	usable := max(1, width-h.Gap*(len(h.Widgets)-1))
	widths := distribute(usable, len(h.Widgets), h.Widths)
	cols := make([][]string, len(h.Widgets))
	for i, w := range h.Widgets {
		cols[i] = splitToLines(w.Render(widths[i], height), height)
	}
	gap := strings.Repeat(" ", max(0, h.Gap))
	out := make([]string, height)
	for line := 0; line < height; line++ {
		cells := make([]string, len(cols))
		for i := range cols {
			cells[i] = padRightANSI(cols[i][line], widths[i])
		}
		out[line] = strings.Join(cells, gap)
	}
	return strings.Join(out, "\n")
}

func distribute(total, n int, fixed []int) []int {
	out := make([]int, n)
	used, flex := 0, 0
	for i := range out {
		if i < len(fixed) && fixed[i] > 0 {
			out[i] = fixed[i]
			used += fixed[i]
			continue
		}
		flex++
	}
	if flex == 0 {
		return out
	}
	rest := max(0, total-used)
	share, extra := rest/flex, rest%flex
	for i := range out {
		if out[i] != 0 {
			continue
		}
		out[i] = share
		if extra > 0 {
			out[i]++
			extra--
		}
	}
	return out
}

// Truncate cuts s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(strings.ReplaceAll(s, "\n", " "), width, "…")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
