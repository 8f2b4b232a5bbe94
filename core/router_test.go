package core

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/widgets"
)

type routerTab struct {
	id        string
	hits      int
	mounts    int
	unmounts  int
	capturing bool
	seen      []tea.Msg
}

type mountedMsg struct{ id string }

func (t *routerTab) ID() string                    { return t.id }
func (t *routerTab) Title() string                 { return t.id }
func (t *routerTab) Scope() string                 { return ScopeRecords }
func (t *routerTab) Build(m *Model) widgets.Widget { return widgets.Box{Title: t.id, Content: "x"} }
func (t *routerTab) CapturingInput() bool          { return t.capturing }
func (t *routerTab) Mount() tea.Cmd {
	t.mounts++
	return func() tea.Msg { return mountedMsg{id: t.id} }
}
func (t *routerTab) Unmount() { t.unmounts++ }
func (t *routerTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.hits++
	}
	t.seen = append(t.seen, msg)
	return nil
}

type fakeScreen struct{ hits int }

func (s *fakeScreen) Title() string        { return "Screen" }
func (s *fakeScreen) Scope() string        { return "screen:test" }
func (s *fakeScreen) View(int, int) string { return "screen" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		s.hits++
		if km.String() == "esc" {
			return s, nil, true
		}
	}
	return s, nil, false
}

func newTestModel(tabs ...Tab) Model {
	return NewModel("test", tabs, NewKeyRegistry(DefaultKeyBindings(len(tabs))), NewCommandRegistry(nil))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScreenGetsKeyBeforeTab(t *testing.T) {
	tab := &routerTab{id: "a"}
	m := newTestModel(tab)
	screen := &fakeScreen{}
	m.PushScreen(screen)

	next, _ := m.Update(runes("x"))
	updated := next.(Model)
	if screen.hits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if tab.hits != 0 {
		t.Fatalf("tab should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	m := newTestModel(&routerTab{id: "a"})
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestAsyncMessagesReachTabUnderScreen(t *testing.T) {
	tab := &routerTab{id: "a"}
	m := newTestModel(tab)
	m.PushScreen(&fakeScreen{})
	m.Update(mountedMsg{id: "a"})
	if len(tab.seen) != 1 {
		t.Fatalf("tab should see async results while a screen is open")
	}
}

func TestInitMountsActiveTab(t *testing.T) {
	a, b := &routerTab{id: "a"}, &routerTab{id: "b"}
	m := newTestModel(a, b)
	cmd := m.Init()
	if a.mounts != 1 || b.mounts != 0 {
		t.Fatalf("only the active tab mounts: a=%d b=%d", a.mounts, b.mounts)
	}
	if msg := cmd(); msg.(mountedMsg).id != "a" {
		t.Fatalf("unexpected init msg %#v", msg)
	}
}

func TestSwitchTabUnmountsAndMounts(t *testing.T) {
	a, b := &routerTab{id: "a"}, &routerTab{id: "b"}
	m := newTestModel(a, b)

	next, cmd := m.Update(runes("2"))
	updated := next.(Model)
	if updated.ActiveIndex() != 1 {
		t.Fatalf("active = %d", updated.ActiveIndex())
	}
	if a.unmounts != 1 || b.mounts != 1 {
		t.Fatalf("a.unmounts=%d b.mounts=%d", a.unmounts, b.mounts)
	}
	if cmd == nil || cmd().(mountedMsg).id != "b" {
		t.Fatalf("switch should return the mount command")
	}

	_, cmd = updated.Update(runes("2"))
	if cmd != nil || b.mounts != 1 {
		t.Fatalf("switching to the active tab is a no-op")
	}
}

func TestCapturingTabGetsQuitKey(t *testing.T) {
	tab := &routerTab{id: "a", capturing: true}
	m := newTestModel(tab)
	next, cmd := m.Update(runes("q"))
	if next.(Model).quitting || cmd != nil {
		t.Fatalf("q should be typed, not quit")
	}
	if tab.hits != 1 {
		t.Fatalf("tab should receive the key")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(&routerTab{id: "a"})
	next, cmd := m.Update(runes("q"))
	if !next.(Model).quitting || cmd == nil {
		t.Fatalf("q should quit")
	}
}

func TestErrorStatusPersistsUntilDismissed(t *testing.T) {
	tab := &routerTab{id: "a"}
	m := newTestModel(tab)
	m.SetError(errors.New("update teachers #2: not found"))

	next, _ := m.Update(StatusMsg{Text: "Loaded 2 teachers"})
	m = next.(Model)
	if text, isErr := m.Status(); !isErr || text != "update teachers #2: not found" {
		t.Fatalf("info replaced a pending error: %q", text)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if _, isErr := m.Status(); isErr {
		t.Fatalf("esc should dismiss the error")
	}
	if tab.hits != 0 {
		t.Fatalf("dismissing esc should not reach the tab")
	}

	m.SetStatus("Saved")
	if text, _ := m.Status(); text != "Saved" {
		t.Fatalf("status = %q", text)
	}
}

func TestPopScreenChecksScope(t *testing.T) {
	m := newTestModel(&routerTab{id: "a"})
	m.PushScreen(&fakeScreen{})
	if m.PopScreen("screen:other") {
		t.Fatalf("wrong scope popped")
	}
	if !m.PopScreen("screen:test") || m.TopScreen() != nil {
		t.Fatalf("expected pop")
	}
}
