package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// tableChrome is the rows a bordered table spends on borders and the header.
const tableChrome = 4

// Table renders record rows with a highlighted cursor. Rows beyond the
// available height are windowed so the cursor stays visible.
type Table struct {
	Headers  []string
	Rows     [][]string
	Cursor   int
	Empty    string
	MaxCellW int
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Rows) == 0 {
		empty := t.Empty
		if empty == "" {
			empty = "No records"
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render(empty)
	}
	start, end := Window(len(t.Rows), t.Cursor, max(1, height-tableChrome))
	cellW := t.MaxCellW
	if cellW <= 0 {
		cellW = 40
	}
	rows := make([][]string, 0, end-start)
	for _, r := range t.Rows[start:end] {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = Truncate(c, cellW)
		}
		rows = append(rows, cells)
	}

	header := lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Padding(0, 1)
	selected := cell.Background(lipgloss.Color(colorSurface)).Bold(true)
	cursor := t.Cursor - start

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == cursor:
				return selected
			default:
				return cell
			}
		})
	return tbl.String()
}

// Window returns the [start, end) slice of n rows that fits size rows and
// contains cursor.
func Window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= 0 {
		return 0, 0
	}
	if n <= size {
		return 0, n
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= n {
		cursor = n - 1
	}
	start := 0
	if cursor >= size {
		start = cursor - size + 1
	}
	return start, start + size
}
