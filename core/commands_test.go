package core

import "testing"

func TestSearchFiltersByScopeAndDisabled(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "a", Name: "Alpha", Scopes: []string{"tab:a"}},
		{ID: "b", Name: "Beta", Scopes: []string{"tab:b"}, Disabled: func(m *Model) (bool, string) { return true, "blocked" }},
	})
	m := NewModel("t", nil, NewKeyRegistry(nil), reg)
	resA := reg.Search("", "tab:a", &m)
	if len(resA) != 1 || resA[0].CommandID != "a" {
		t.Fatalf("expected only command a in tab:a, got %+v", resA)
	}
	resB := reg.Search("", "tab:b", &m)
	if len(resB) != 1 || !resB[0].Disabled || resB[0].Reason != "blocked" {
		t.Fatalf("expected disabled command in tab:b, got %+v", resB)
	}
}

func TestSearchPrefersNamePrefix(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "reload", Name: "Reload records", Description: "fetch the export table again"},
		{ID: "pdf", Name: "Export PDF"},
	})
	m := NewModel("t", nil, nil, reg)
	res := reg.Search("exp", "any", &m)
	if len(res) != 2 || res[0].CommandID != "pdf" {
		t.Fatalf("got %+v", res)
	}
}

func TestExecuteDisabledReportsReason(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "x", Name: "X", Disabled: func(*Model) (bool, string) { return true, "nope" }},
	})
	m := NewModel("t", nil, nil, reg)
	msg := reg.Execute("x", &m)()
	if s, ok := msg.(StatusMsg); !ok || s.Text != "nope" {
		t.Fatalf("got %#v", msg)
	}
}
