package screens

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/core"
	"github.com/jask/teachdesk/internal/lookup"
)

// OptionPickedMsg reports the value chosen for a column. ID is the option
// id for references and the value itself for enums.
type OptionPickedMsg struct {
	Column string
	ID     string
}

// PickerModal is a filterable single-choice list.
type PickerModal struct {
	title  string
	column string
	picker *core.Picker
}

func NewPickerModal(title, column string, items []core.PickerItem, current string) *PickerModal {
	p := core.NewPicker(title, items)
	p.SetRanker(LookupRank)
	p.Select(current)
	return &PickerModal{title: title, column: column, picker: p}
}

// RefItems turns lookup options into picker items keyed by id.
func RefItems(opts []lookup.Option) []core.PickerItem {
	out := make([]core.PickerItem, 0, len(opts))
	for _, o := range opts {
		id := strconv.FormatInt(o.ID, 10)
		out = append(out, core.PickerItem{ID: id, Label: o.Label, Meta: "#" + id})
	}
	return out
}

// EnumItems turns allowed values into picker items.
func EnumItems(values []string) []core.PickerItem {
	out := make([]core.PickerItem, 0, len(values))
	for _, v := range values {
		out = append(out, core.PickerItem{ID: v, Label: v})
	}
	return out
}

// LookupRank keeps every item: substring hits first, the rest by edit
// distance to the query.
func LookupRank(query string, items []core.PickerItem) []core.PickerItem {
	opts := make([]lookup.Option, len(items))
	for i, it := range items {
		opts[i] = lookup.Option{ID: int64(i), Label: it.Label}
	}
	ranked := lookup.Rank(opts, query)
	out := make([]core.PickerItem, 0, len(ranked))
	for _, o := range ranked {
		out = append(out, items[o.ID])
	}
	return out
}

func (s *PickerModal) Title() string { return s.title }
func (s *PickerModal) Scope() string { return core.ScopePicker }

func (s *PickerModal) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	result := s.picker.HandleKey(keyMsg.String())
	switch result.Action {
	case core.PickerActionCancelled:
		return s, nil, true
	case core.PickerActionSelected:
		picked := OptionPickedMsg{Column: s.column, ID: result.Item.ID}
		return s, func() tea.Msg { return picked }, true
	default:
		return s, nil, false
	}
}

func (s *PickerModal) View(width, height int) string {
	lines := []string{titleStyle.Render(s.title)}
	filter := s.picker.Query()
	if filter == "" {
		filter = hintStyle.Render("(type to filter)")
	}
	lines = append(lines, "Filter: "+filter, "")
	items := s.picker.Items()
	room := max(1, height-5)
	start := 0
	if c := s.picker.Cursor(); c >= room {
		start = c - room + 1
	}
	if len(items) == 0 {
		lines = append(lines, "  No options")
	}
	for idx := start; idx < len(items) && idx < start+room; idx++ {
		item := items[idx]
		label := item.Label
		if item.Meta != "" {
			label += " " + hintStyle.Render(item.Meta)
		}
		if idx == s.picker.Cursor() {
			lines = append(lines, focusStyle.Render("> ")+label)
			continue
		}
		lines = append(lines, "  "+label)
	}
	lines = append(lines, "", hintStyle.Render("enter select · esc cancel"))
	return core.ClipHeight(core.TrimToWidth(strings.Join(lines, "\n"), width), height)
}
