package listing

import (
	"github.com/jask/teachdesk/internal/model"
)

// Labeler resolves a referenced id to its display label.
type Labeler interface {
	Label(table string, id int64) (string, bool)
}

// Cells renders one row for display and export. Values are shown verbatim,
// booleans as yes/no and references through labels (blank when unresolved).
func Cells(t model.Table, rec model.Record, labels Labeler, yes, no string) []string {
	out := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		out = append(out, Cell(col, rec, labels, yes, no))
	}
	return out
}

// Cell renders a single column of rec.
func Cell(col model.Column, rec model.Record, labels Labeler, yes, no string) string {
	switch col.Kind {
	case model.KindBool:
		if rec.Bool(col.Name) {
			return yes
		}
		return no
	case model.KindRef:
		if labels == nil {
			return ""
		}
		l, _ := labels.Label(col.Ref, rec.Int(col.Name))
		return l
	}
	return rec.Format(col.Name)
}

// Headers returns the column labels of t.
func Headers(t model.Table) []string {
	out := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		out = append(out, col.Label)
	}
	return out
}
