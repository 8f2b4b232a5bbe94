// Package listing holds the list, filter and edit state shared by every
// record screen. It is pure state: loading and persistence happen in the
// screens, which feed results back through the methods here.
package listing

import (
	"strings"

	"github.com/jask/teachdesk/internal/model"
)

// Collection is the displayed list of one table plus the snapshot it was
// filtered from.
type Collection struct {
	Table    model.Table
	items    []model.Record
	original []model.Record
	loading  bool
	gen      uint64
	query    string
}

func NewCollection(t model.Table) *Collection {
	return &Collection{Table: t}
}

// BeginLoad marks the collection as loading and returns the generation the
// response must carry back.
func (c *Collection) BeginLoad() uint64 {
	c.gen++
	c.loading = true
	return c.gen
}

// FinishLoad applies a load response. Responses from superseded generations
// are ignored and reported as false. On error the previous rows stay.
func (c *Collection) FinishLoad(gen uint64, recs []model.Record, err error) bool {
	if gen != c.gen {
		return false
	}
	c.loading = false
	if err != nil {
		return true
	}
	if recs == nil {
		recs = []model.Record{}
	}
	c.original = recs
	c.items = recs
	c.query = ""
	return true
}

// Generation is the latest issued load generation.
func (c *Collection) Generation() uint64 { return c.gen }

func (c *Collection) Loading() bool { return c.loading }

// Items are the rows currently displayed.
func (c *Collection) Items() []model.Record { return c.items }

// Original is the last loaded snapshot.
func (c *Collection) Original() []model.Record { return c.original }

// Query is the last applied search text.
func (c *Collection) Query() string { return c.query }

// Search filters the snapshot to rows where any string-typed column contains
// q, ignoring case. Row order follows the snapshot. An empty q matches all.
func (c *Collection) Search(q string) {
	c.query = q
	c.items = Filter(c.Table, c.original, q)
}

// Clear shows the whole snapshot again.
func (c *Collection) Clear() {
	c.query = ""
	c.items = c.original
}

// Find returns the displayed row with the given id.
func (c *Collection) Find(id int64) (model.Record, bool) {
	for _, r := range c.items {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Filter is the search predicate applied over recs.
func Filter(t model.Table, recs []model.Record, q string) []model.Record {
	needle := strings.ToLower(q)
	out := make([]model.Record, 0, len(recs))
	for _, r := range recs {
		if matches(t, r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(t model.Table, r model.Record, needle string) bool {
	for _, col := range t.Columns {
		if !col.Kind.Textual() {
			continue
		}
		s, ok := r[col.Name].(string)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
