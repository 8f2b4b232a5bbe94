// Package lookup resolves foreign-key ids to display labels.
package lookup

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/teachdesk/internal/model"
)

// Lister is the slice of the record store lookups need.
type Lister interface {
	List(ctx context.Context, table string, orderByID bool) ([]model.Record, error)
}

// Option is one selectable referenced record.
type Option struct {
	ID    int64
	Label string
}

// Map is the id -> label view of one referenced table.
type Map struct {
	Table   string
	labels  map[int64]string
	options []Option
}

// Build indexes records of t by id using t's label column.
func Build(t model.Table, recs []model.Record) Map {
	m := Map{Table: t.Name, labels: make(map[int64]string, len(recs)), options: make([]Option, 0, len(recs))}
	for _, r := range recs {
		label := r.Format(t.LabelColumn)
		m.labels[r.ID()] = label
		m.options = append(m.options, Option{ID: r.ID(), Label: label})
	}
	sort.Slice(m.options, func(i, j int) bool { return m.options[i].ID < m.options[j].ID })
	return m
}

// Fetch lists the referenced table and builds its Map.
func Fetch(ctx context.Context, store Lister, table string) (Map, error) {
	t, ok := model.Lookup(table)
	if !ok {
		return Map{}, fmt.Errorf("lookup: unknown table %q", table)
	}
	recs, err := store.List(ctx, table, false)
	if err != nil {
		return Map{}, err
	}
	return Build(t, recs), nil
}

// Label returns the label for id.
func (m Map) Label(id int64) (string, bool) {
	l, ok := m.labels[id]
	return l, ok
}

// Options returns the referenced records ordered by id.
func (m Map) Options() []Option {
	out := make([]Option, len(m.options))
	copy(out, m.options)
	return out
}

// Cache holds one Map per referenced table for the lifetime of a mount.
type Cache struct {
	maps map[string]Map
}

func NewCache() *Cache {
	return &Cache{maps: map[string]Map{}}
}

// Put stores m, replacing any previous map for the same table.
func (c *Cache) Put(m Map) {
	c.maps[m.Table] = m
}

// Has reports whether table has been loaded.
func (c *Cache) Has(table string) bool {
	_, ok := c.maps[table]
	return ok
}

// Missing filters tables down to the ones not yet loaded.
func (c *Cache) Missing(tables []string) []string {
	var out []string
	for _, t := range tables {
		if !c.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Label resolves id in table. Unloaded tables and stale ids give "", false.
func (c *Cache) Label(table string, id int64) (string, bool) {
	m, ok := c.maps[table]
	if !ok {
		return "", false
	}
	return m.Label(id)
}

// Options lists the referenced records of table, or nil when not loaded.
func (c *Cache) Options(table string) []Option {
	m, ok := c.maps[table]
	if !ok {
		return nil
	}
	return m.Options()
}

// Reset forgets every map; called when a screen is mounted again.
func (c *Cache) Reset() {
	c.maps = map[string]Map{}
}

// Rank orders options for a picker: those containing filter (case-insensitive,
// matching label or id) keep id order and come first, the rest follow by edit
// distance to filter.
func Rank(options []Option, filter string) []Option {
	q := strings.ToLower(strings.TrimSpace(filter))
	if q == "" {
		out := make([]Option, len(options))
		copy(out, options)
		return out
	}
	var hits, rest []Option
	for _, o := range options {
		label := strings.ToLower(o.Label)
		if strings.Contains(label, q) || strconv.FormatInt(o.ID, 10) == q {
			hits = append(hits, o)
			continue
		}
		rest = append(rest, o)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return levenshtein.ComputeDistance(q, strings.ToLower(rest[i].Label)) <
			levenshtein.ComputeDistance(q, strings.ToLower(rest[j].Label))
	})
	return append(hits, rest...)
}
