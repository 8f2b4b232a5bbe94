package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/widgets"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

type Tab interface {
	ID() string
	Title() string
	Scope() string
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

// Mounter is implemented by tabs that load data when they become visible and
// must forget in-flight work when they are left.
type Mounter interface {
	Mount() tea.Cmd
	Unmount()
}

// InputCapturer is implemented by tabs with a focused text input; while it
// reports true every key goes to the tab.
type InputCapturer interface {
	CapturingInput() bool
}

type Model struct {
	title            string
	width            int
	height           int
	tabs             []Tab
	activeTab        int
	screens          ScreenStack
	keys             *KeyRegistry
	commands         *CommandRegistry
	status           string
	statusErr        bool
	quitting         bool
	OpenCommandModal func(m *Model, scope string) Screen
}

func NewModel(title string, tabs []Tab, keys *KeyRegistry, commands *CommandRegistry) Model {
	if keys == nil {
		keys = NewKeyRegistry(nil)
	}
	if commands == nil {
		commands = NewCommandRegistry(nil)
	}
	return Model{
		title:    title,
		tabs:     tabs,
		keys:     keys,
		commands: commands,
		status:   "Ready",
		width:    100,
		height:   32,
	}
}

func (m Model) Init() tea.Cmd {
	return m.mountActive()
}

func (m *Model) mountActive() tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	if mt, ok := m.tabs[m.activeTab].(Mounter); ok {
		return mt.Mount()
	}
	return nil
}

// SetStatus shows an informational notification unless an error is pending.
func (m *Model) SetStatus(msg string) {
	m.applyStatus(StatusMsg{Text: msg})
}

func (m *Model) SetError(err error) {
	if err == nil {
		return
	}
	m.applyStatus(StatusMsg{Text: err.Error(), IsErr: true})
}

func (m *Model) applyStatus(s StatusMsg) {
	if m.statusErr && !s.IsErr {
		return
	}
	m.status = s.Text
	m.statusErr = s.IsErr
}

// DismissStatus clears the notification line, including a pending error.
func (m *Model) DismissStatus() {
	m.status = ""
	m.statusErr = false
}

func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

func (m Model) ActiveTab() Tab {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.activeTab]
}

func (m Model) ActiveIndex() int {
	return m.activeTab
}

// SwitchTab unmounts the current tab, closes any open screens and mounts the
// tab at index.
func (m *Model) SwitchTab(index int) tea.Cmd {
	if index < 0 || index >= len(m.tabs) || index == m.activeTab {
		return nil
	}
	if mt, ok := m.tabs[m.activeTab].(Mounter); ok {
		mt.Unmount()
	}
	m.screens.Clear()
	m.activeTab = index
	return m.mountActive()
}

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

// PopScreen closes the top screen if it has the given scope.
func (m *Model) PopScreen(scope string) bool {
	top := m.screens.Top()
	if top == nil || top.Scope() != scope {
		return false
	}
	m.screens.Pop()
	return true
}

func (m Model) TopScreen() Screen {
	return m.screens.Top()
}

func (m *Model) CommandRegistry() *CommandRegistry {
	return m.commands
}

func (m *Model) Keys() *KeyRegistry {
	return m.keys
}

func (m Model) Size() (int, int) {
	return m.width, m.height
}
