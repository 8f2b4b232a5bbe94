package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/core"
)

type CommandOption struct {
	ID       string
	Name     string
	Desc     string
	Hint     string
	Disabled bool
	Reason   string
}

func (i CommandOption) Title() string {
	title := i.Name
	if i.Hint != "" {
		title += " [" + i.Hint + "]"
	}
	if i.Disabled && i.Reason != "" {
		return fmt.Sprintf("%s (%s)", title, i.Reason)
	}
	return title
}
func (i CommandOption) Description() string { return i.Desc }
func (i CommandOption) FilterValue() string { return i.Name + " " + i.Desc + " " + i.ID }

// CommandScreen is the command palette.
type CommandScreen struct {
	scope  string
	search func(query string) []CommandOption
	input  textinput.Model
	list   list.Model
}

func NewCommandScreen(scope string, search func(query string) []CommandOption) *CommandScreen {
	inp := textinput.New()
	inp.Placeholder = "Search commands"
	inp.Prompt = "cmd> "
	inp.Focus()
	lst := list.New(nil, list.NewDefaultDelegate(), 64, 14)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowTitle(false)
	s := &CommandScreen{scope: scope, search: search, input: inp, list: lst}
	s.refresh()
	return s
}

// OpenCommandPalette is the core.Model hook that builds the palette for
// the current scope from the model's command registry.
func OpenCommandPalette(m *core.Model, scope string) core.Screen {
	reg := m.CommandRegistry()
	return NewCommandScreen(scope, func(query string) []CommandOption {
		results := reg.Search(query, scope, m)
		out := make([]CommandOption, 0, len(results))
		for _, r := range results {
			out = append(out, CommandOption{ID: r.CommandID, Name: r.Name, Desc: r.Desc, Hint: r.Hint, Disabled: r.Disabled, Reason: r.Reason})
		}
		return out
	})
}

func (s *CommandScreen) Title() string { return "Command Palette" }
func (s *CommandScreen) Scope() string { return core.ScopeCommand }

func (s *CommandScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return s, nil, true
		case "enter":
			it, ok := s.list.SelectedItem().(CommandOption)
			if !ok {
				return s, nil, true
			}
			if it.Disabled {
				return s, core.StatusCmd(it.Reason), true
			}
			id := it.ID
			return s, func() tea.Msg { return core.CommandExecuteMsg{CommandID: id} }, true
		case "up", "down", "ctrl+n", "ctrl+p":
			var cmd tea.Cmd
			s.list, cmd = s.list.Update(navKey(km))
			return s, cmd, false
		}
	}
	var cmd tea.Cmd
	before := s.input.Value()
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refresh()
	}
	return s, cmd, false
}

func navKey(km tea.KeyMsg) tea.KeyMsg {
	switch km.String() {
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return km
}

func (s *CommandScreen) refresh() {
	query := strings.TrimSpace(s.input.Value())
	items := s.search(query)
	ls := make([]list.Item, 0, len(items))
	for _, it := range items {
		ls = append(ls, it)
	}
	_ = s.list.SetItems(ls)
	s.list.ResetSelected()
}

func (s *CommandScreen) View(width, height int) string {
	s.list.SetWidth(width)
	s.list.SetHeight(max(6, height-3))
	return titleStyle.Render("Commands") + "\n" + s.input.View() + "\n" + s.list.View()
}
