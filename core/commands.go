package core

import (
	"cmp"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Command is a palette entry. Scopes limit where it is offered; Disabled
// may veto it with a reason shown in the palette.
type Command struct {
	ID          string
	Name        string
	Description string
	Hint        string
	Scopes      []string
	Execute     func(m *Model) tea.Cmd
	Disabled    func(m *Model) (bool, string)
}

type CommandResult struct {
	CommandID string
	Name      string
	Desc      string
	Hint      string
	Disabled  bool
	Reason    string
	rank      int
}

type CommandRegistry struct {
	commands map[string]Command
}

func NewCommandRegistry(cmds []Command) *CommandRegistry {
	reg := &CommandRegistry{commands: map[string]Command{}}
	for _, c := range cmds {
		reg.Register(c)
	}
	return reg
}

func (r *CommandRegistry) Register(c Command) {
	if c.ID == "" {
		return
	}
	r.commands[c.ID] = c
}

// Search returns the commands offered in scope matching query. Enabled
// commands come first, then name-prefix matches, then by name.
func (r *CommandRegistry) Search(query, scope string, m *Model) []CommandResult {
	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]CommandResult, 0, len(r.commands))
	for _, c := range r.commands {
		if !scopeMatch(scope, c.Scopes) {
			continue
		}
		rank := 1
		if q != "" {
			name := strings.ToLower(c.Name)
			switch {
			case strings.HasPrefix(name, q):
				rank = 0
			case strings.Contains(name+" "+strings.ToLower(c.Description)+" "+c.ID, q):
			default:
				continue
			}
		}
		res := CommandResult{CommandID: c.ID, Name: c.Name, Desc: c.Description, Hint: c.Hint, rank: rank}
		if c.Disabled != nil {
			res.Disabled, res.Reason = c.Disabled(m)
		}
		results = append(results, res)
	}
	slices.SortFunc(results, func(a, b CommandResult) int {
		if a.Disabled != b.Disabled {
			if !a.Disabled {
				return -1
			}
			return 1
		}
		if a.rank != b.rank {
			return cmp.Compare(a.rank, b.rank)
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return results
}

func (r *CommandRegistry) Execute(id string, m *Model) tea.Cmd {
	c, ok := r.commands[id]
	if !ok {
		return StatusCmd("Unknown command: " + id)
	}
	if c.Disabled != nil {
		if disabled, reason := c.Disabled(m); disabled {
			if reason == "" {
				reason = "command is disabled"
			}
			return StatusCmd(reason)
		}
	}
	if c.Execute == nil {
		return nil
	}
	return c.Execute(m)
}
