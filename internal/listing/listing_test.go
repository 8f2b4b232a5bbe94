package listing

import (
	"errors"
	"strings"
	"testing"

	"github.com/jask/teachdesk/internal/model"
)

func teachers() []model.Record {
	return []model.Record{
		{"id": int64(1), "name": "Ana", "email": "a@x.com"},
		{"id": int64(2), "name": "Leo", "email": "l@x.com"},
	}
}

func loaded(t *testing.T, table string, recs []model.Record) *Collection {
	t.Helper()
	c := NewCollection(model.MustLookup(table))
	gen := c.BeginLoad()
	if !c.FinishLoad(gen, recs, nil) {
		t.Fatalf("FinishLoad rejected current generation")
	}
	return c
}

func ids(recs []model.Record) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID())
	}
	return out
}

func TestSearchScenario(t *testing.T) {
	c := loaded(t, model.Teachers, teachers())

	c.Search("ana")
	if got := ids(c.Items()); len(got) != 1 || got[0] != 1 {
		t.Fatalf("search(ana) = %v", got)
	}

	c.Search("x.com")
	if got := ids(c.Items()); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("search(x.com) = %v", got)
	}
	if len(c.Original()) != 2 {
		t.Fatalf("search must not touch the snapshot")
	}
}

func TestSearchIsExactSubset(t *testing.T) {
	recs := []model.Record{
		{"id": int64(1), "course_topic_id": int64(12), "description": "Read chapter 12", "status": "pending"},
		{"id": int64(2), "course_topic_id": int64(3), "description": "Quiz", "status": "done"},
		{"id": int64(3), "course_topic_id": int64(12), "description": "Lab", "status": "pending"},
	}
	c := loaded(t, model.Activities, recs)

	for _, q := range []string{"12", "PEND", "qu", "zzz", "d"} {
		c.Search(q)
		in := map[int64]bool{}
		for _, r := range c.Items() {
			in[r.ID()] = true
		}
		for _, r := range c.Original() {
			hit := strings.Contains(strings.ToLower(r.String("description")), strings.ToLower(q)) ||
				strings.Contains(strings.ToLower(r.String("status")), strings.ToLower(q))
			if hit != in[r.ID()] {
				t.Fatalf("q=%q id=%d: match=%v included=%v", q, r.ID(), hit, in[r.ID()])
			}
		}
	}
}

func TestSearchIgnoresNonStringColumns(t *testing.T) {
	recs := []model.Record{
		{"id": int64(7), "course_topic_id": int64(1), "description": "Essay", "class_taught": true, "pending_activity": false, "notes": ""},
	}
	c := loaded(t, model.Tasks, recs)
	c.Search("7")
	if len(c.Items()) != 0 {
		t.Fatalf("id must not be searched")
	}
	c.Search("true")
	if len(c.Items()) != 0 {
		t.Fatalf("booleans must not be searched")
	}
}

func TestEmptySearchAndClearRestoreOriginalOrder(t *testing.T) {
	c := loaded(t, model.Teachers, teachers())
	c.Search("leo")
	c.Search("")
	if got := ids(c.Items()); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("search(\"\") = %v", got)
	}
	c.Search("leo")
	c.Clear()
	if got := ids(c.Items()); len(got) != 2 || got[0] != 1 {
		t.Fatalf("clear = %v", got)
	}
}

func TestFinishLoadDropsStaleGeneration(t *testing.T) {
	c := NewCollection(model.MustLookup(model.Teachers))
	first := c.BeginLoad()
	second := c.BeginLoad()

	if !c.FinishLoad(second, teachers(), nil) {
		t.Fatalf("latest generation rejected")
	}
	if c.FinishLoad(first, []model.Record{{"id": int64(9), "name": "Old"}}, nil) {
		t.Fatalf("stale generation applied")
	}
	if got := ids(c.Items()); len(got) != 2 {
		t.Fatalf("items overwritten by stale load: %v", got)
	}
	if c.Loading() {
		t.Fatalf("loading should clear on latest response")
	}
}

func TestFinishLoadErrorKeepsRows(t *testing.T) {
	c := loaded(t, model.Teachers, teachers())
	gen := c.BeginLoad()
	c.FinishLoad(gen, nil, errors.New("down"))
	if len(c.Items()) != 2 || c.Loading() {
		t.Fatalf("failed load should keep rows and stop loading")
	}
}

func TestFinishLoadEmpty(t *testing.T) {
	c := loaded(t, model.Teachers, nil)
	if c.Items() == nil || len(c.Items()) != 0 {
		t.Fatalf("empty load should give an empty, non-nil list")
	}
}

func TestEditBufferIsACopy(t *testing.T) {
	rec := teachers()[1]
	ed := OpenEdit(rec)
	ed.UpdateField(model.Record{"name": "Leonor", "id": int64(99)})

	if rec.String("name") != "Leo" {
		t.Fatalf("source record mutated")
	}
	if ed.Buffer.String("name") != "Leonor" || ed.Buffer.ID() != 2 {
		t.Fatalf("buffer = %v", ed.Buffer)
	}
	if ed.Record.String("name") != "Leo" {
		t.Fatalf("selected record mutated by edit: %v", ed.Record)
	}
}

func TestDetailIsReadOnlyCopy(t *testing.T) {
	rec := teachers()[0]
	m := OpenDetail(rec)
	v, ok := m.(Viewing)
	if !ok {
		t.Fatalf("OpenDetail returned %T", m)
	}
	v.Record["name"] = "changed"
	if rec.String("name") != "Ana" {
		t.Fatalf("detail view shares the source record")
	}
}

func TestValidateBlankNameBlocks(t *testing.T) {
	tbl := model.MustLookup(model.Teachers)
	ed := OpenEdit(teachers()[1])
	ed.UpdateField(model.Record{"name": ""})

	errs := Validate(tbl, ed.Buffer)
	if len(errs) != 1 || errs[0].Field != "name" {
		t.Fatalf("errors = %+v", errs)
	}
	if !strings.Contains(errs[0].Message, "Name") {
		t.Fatalf("message should name the field: %q", errs[0].Message)
	}

	ed.UpdateField(model.Record{"name": "   "})
	if errs := Validate(tbl, ed.Buffer); len(errs) != 1 {
		t.Fatalf("whitespace should count as blank")
	}

	ed.UpdateField(model.Record{"name": "Leonor"})
	if errs := Validate(tbl, ed.Buffer); len(errs) != 0 {
		t.Fatalf("unexpected errors %+v", errs)
	}
}

func TestValidateRefAndOptionalColumns(t *testing.T) {
	tbl := model.MustLookup(model.Tasks)
	buf := model.Record{"id": int64(1), "course_topic_id": int64(0), "description": "x", "class_taught": false, "notes": ""}
	errs := Validate(tbl, buf)
	if len(errs) != 1 || errs[0].Field != "course_topic_id" {
		t.Fatalf("errors = %+v", errs)
	}
	if !strings.Contains(errs[0].Message, "required") {
		t.Fatalf("message = %q", errs[0].Message)
	}
}

func TestUpdateFieldClearsFieldError(t *testing.T) {
	ed := OpenEdit(model.Record{"id": int64(1), "name": "", "email": ""})
	ed.Errors = Validate(model.MustLookup(model.Teachers), ed.Buffer)
	if len(ed.Errors) != 2 {
		t.Fatalf("errors = %+v", ed.Errors)
	}
	ed.UpdateField(model.Record{"name": "Ana"})
	if ed.ErrorFor("name") != "" || ed.ErrorFor("email") == "" {
		t.Fatalf("errors after edit = %+v", ed.Errors)
	}
}

type labels map[int64]string

func (l labels) Label(_ string, id int64) (string, bool) {
	s, ok := l[id]
	return s, ok
}

func TestCells(t *testing.T) {
	tbl := model.MustLookup(model.Tasks)
	rec := model.Record{"id": int64(3), "course_topic_id": int64(5), "description": "Essay", "class_taught": true, "pending_activity": false, "notes": "n"}

	got := Cells(tbl, rec, labels{5: "Loops"}, "Yes", "No")
	want := []string{"3", "Loops", "Essay", "Yes", "No", "n"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("cells = %v, want %v", got, want)
	}

	got = Cells(tbl, rec, labels{}, "Sí", "No")
	if got[1] != "" || got[3] != "Sí" {
		t.Fatalf("missing label should be blank: %v", got)
	}
	if h := Headers(tbl); len(h) != len(want) || h[0] != "ID" {
		t.Fatalf("headers = %v", h)
	}
}
