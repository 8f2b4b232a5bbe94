package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/jask/teachdesk/internal/model"
)

type fakeLister struct {
	recs  map[string][]model.Record
	err   error
	calls int
}

func (f *fakeLister) List(_ context.Context, table string, _ bool) ([]model.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recs[table], nil
}

func TestFetchBuildsLabels(t *testing.T) {
	store := &fakeLister{recs: map[string][]model.Record{
		model.Courses: {
			{"id": int64(2), "course_name": "Databases", "description": "SQL"},
			{"id": int64(1), "course_name": "Programming", "description": "Go"},
		},
	}}
	m, err := Fetch(context.Background(), store, model.Courses)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if l, ok := m.Label(2); !ok || l != "Databases" {
		t.Fatalf("label(2) = %q, %v", l, ok)
	}
	opts := m.Options()
	if len(opts) != 2 || opts[0].ID != 1 {
		t.Fatalf("options should be ordered by id: %+v", opts)
	}
}

func TestFetchPropagatesError(t *testing.T) {
	store := &fakeLister{err: errors.New("offline")}
	if _, err := Fetch(context.Background(), store, model.Courses); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCacheLabelBlankWhenMissing(t *testing.T) {
	c := NewCache()
	if l, ok := c.Label(model.Courses, 1); ok || l != "" {
		t.Fatalf("unloaded table should resolve blank, got %q", l)
	}
	c.Put(Build(model.MustLookup(model.Courses), []model.Record{{"id": int64(1), "course_name": "Art"}}))
	if l, _ := c.Label(model.Courses, 1); l != "Art" {
		t.Fatalf("label = %q", l)
	}
	if l, ok := c.Label(model.Courses, 99); ok || l != "" {
		t.Fatalf("stale id should resolve blank, got %q", l)
	}
	if got := c.Missing([]string{model.Courses, model.CourseTopics}); len(got) != 1 || got[0] != model.CourseTopics {
		t.Fatalf("missing = %v", got)
	}
	c.Reset()
	if c.Has(model.Courses) {
		t.Fatalf("reset should drop maps")
	}
}

func TestRankPutsMatchesFirstThenClosest(t *testing.T) {
	opts := []Option{
		{ID: 1, Label: "Variables"},
		{ID: 2, Label: "Control flow"},
		{ID: 3, Label: "Normal forms"},
		{ID: 4, Label: "Controllers"},
	}
	got := Rank(opts, "contr")
	if got[0].ID != 2 || got[1].ID != 4 {
		t.Fatalf("substring matches should lead in id order: %+v", got)
	}
	if len(got) != len(opts) {
		t.Fatalf("rank must not drop options")
	}

	got = Rank(opts, "normal form")
	if got[0].ID != 3 {
		t.Fatalf("expected Normal forms first, got %+v", got)
	}

	got = Rank(opts, "variabels")
	if got[0].ID != 1 {
		t.Fatalf("typo should still rank Variables first, got %+v", got)
	}
}
