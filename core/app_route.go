package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.applyStatus(msg)
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case PopScreenMsg:
		m.screens.Pop()
		return m, nil
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case TabSwitchMsg:
		return m, m.SwitchTab(msg.Index)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Async results go to the active tab; the top screen also sees them so
	// its inputs keep blinking.
	var cmds []tea.Cmd
	if m.screens.Top() != nil {
		cmds = append(cmds, m.screens.update(msg))
	}
	if tab := m.ActiveTab(); tab != nil {
		cmds = append(cmds, tab.Update(&m, msg))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.screens.Top() != nil {
		return m, m.screens.update(msg)
	}
	tab := m.ActiveTab()
	if tab == nil {
		return m, nil
	}
	if c, ok := tab.(InputCapturer); ok && c.CapturingInput() {
		return m, tab.Update(&m, msg)
	}

	scope := m.ActiveScope()
	switch {
	case m.keys.IsAction(msg, "quit", scope):
		m.quitting = true
		return m, tea.Quit
	case m.keys.IsAction(msg, "dismiss", scope) && m.statusErr:
		m.DismissStatus()
		return m, nil
	case m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil:
		m.screens.Push(m.OpenCommandModal(&m, scope))
		return m, nil
	case m.keys.IsAction(msg, "next-tab", scope):
		return m, m.SwitchTab((m.activeTab + 1) % len(m.tabs))
	case m.keys.IsAction(msg, "prev-tab", scope):
		return m, m.SwitchTab((m.activeTab - 1 + len(m.tabs)) % len(m.tabs))
	}
	for i := range m.tabs {
		if m.keys.IsAction(msg, fmt.Sprintf("switch-tab-%d", i+1), scope) {
			return m, m.SwitchTab(i)
		}
	}
	return m, tab.Update(&m, msg)
}
