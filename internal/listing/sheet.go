package listing

import (
	"context"

	"github.com/jask/teachdesk/internal/export"
	"github.com/jask/teachdesk/internal/lookup"
	"github.com/jask/teachdesk/internal/model"
)

// Rows renders recs the way the table shows them.
func Rows(t model.Table, recs []model.Record, labels Labeler, yes, no string) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, Cells(t, rec, labels, yes, no))
	}
	return rows
}

// Sheet builds the export sheet for recs.
func Sheet(t model.Table, recs []model.Record, labels Labeler, yes, no string) export.Sheet {
	return export.Sheet{
		Table:   t.Name,
		Title:   t.Title,
		Headers: Headers(t),
		Rows:    Rows(t, recs, labels, yes, no),
	}
}

// LoadSheet lists the whole table, resolves its references and builds the
// export sheet.
func LoadSheet(ctx context.Context, store lookup.Lister, t model.Table, yes, no string) (export.Sheet, error) {
	recs, err := store.List(ctx, t.Name, t.OrderByID)
	if err != nil {
		return export.Sheet{}, err
	}
	labels := lookup.NewCache()
	for _, ref := range t.Refs() {
		m, err := lookup.Fetch(ctx, store, ref)
		if err != nil {
			return export.Sheet{}, err
		}
		labels.Put(m)
	}
	return Sheet(t, recs, labels, yes, no), nil
}
