package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/core"
)

// ConfirmModal asks a yes/no question. onYes runs only on an explicit yes.
type ConfirmModal struct {
	title  string
	prompt string
	onYes  func() tea.Msg
}

func NewConfirmModal(title, prompt string, onYes func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{title: title, prompt: prompt, onYes: onYes}
}

func (s *ConfirmModal) Title() string { return s.title }
func (s *ConfirmModal) Scope() string { return core.ScopeConfirm }

func (s *ConfirmModal) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch strings.ToLower(km.String()) {
	case "y", "enter":
		if s.onYes == nil {
			return s, nil, true
		}
		return s, func() tea.Msg { return s.onYes() }, true
	case "n", "esc":
		return s, nil, true
	}
	return s, nil, false
}

func (s *ConfirmModal) View(width, height int) string {
	lines := []string{
		titleStyle.Render(s.title),
		"",
		s.prompt,
		"",
		hintStyle.Render("y/enter confirm · n/esc cancel"),
	}
	return core.ClipHeight(core.TrimToWidth(strings.Join(lines, "\n"), width), height)
}
