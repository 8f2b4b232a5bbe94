package screens

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/core"
	"github.com/jask/teachdesk/internal/listing"
	"github.com/jask/teachdesk/internal/lookup"
	"github.com/jask/teachdesk/internal/model"
)

// RecordHooks connects a RecordModal to the screen that owns the record.
type RecordHooks struct {
	// OnChange merges a field change into the edit buffer.
	OnChange func(patch model.Record)
	// OnConfirm submits the buffer. The owner closes the modal on success.
	OnConfirm func() tea.Cmd
	// OnCancel closes the modal, discarding any buffer.
	OnCancel func()
	// OnEdit switches a read-only view to editing.
	OnEdit func() tea.Cmd
	// Options lists the records a reference column may point at.
	Options func(table string) []lookup.Option
}

// Display controls how values are rendered.
type Display struct {
	Labels listing.Labeler
	Yes    string
	No     string
}

type field struct {
	col      model.Column
	input    textinput.Model
	hasInput bool
}

// RecordModal shows one record read-only, or an edit form bound to a
// listing.Editing session.
type RecordModal struct {
	table   model.Table
	view    model.Record
	edit    *listing.Editing
	fields  []field
	focus   int
	hooks   RecordHooks
	display Display
}

func NewRecordView(t model.Table, rec model.Record, display Display, hooks RecordHooks) *RecordModal {
	return &RecordModal{table: t, view: rec, display: display, hooks: hooks}
}

func NewRecordEditor(t model.Table, ed *listing.Editing, display Display, hooks RecordHooks) *RecordModal {
	s := &RecordModal{table: t, edit: ed, display: display, hooks: hooks}
	for _, col := range t.Editable() {
		f := field{col: col}
		if col.Kind == model.KindString || col.Kind == model.KindText {
			inp := textinput.New()
			inp.Prompt = ""
			inp.SetValue(ed.Buffer.String(col.Name))
			f.input = inp
			f.hasInput = true
		}
		s.fields = append(s.fields, f)
	}
	s.setFocus(0)
	return s
}

func (s *RecordModal) Title() string {
	if s.edit != nil {
		return fmt.Sprintf("Edit %s #%d", strings.ToLower(s.table.Singular), s.edit.Record.ID())
	}
	return fmt.Sprintf("%s #%d", s.table.Singular, s.view.ID())
}

func (s *RecordModal) Scope() string {
	if s.edit != nil {
		return core.ScopeRecordEdit
	}
	return core.ScopeRecordView
}

// Editing reports whether this modal is the edit form.
func (s *RecordModal) Editing() bool { return s.edit != nil }

func (s *RecordModal) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if s.edit == nil {
		return s.updateView(msg)
	}
	switch msg := msg.(type) {
	case OptionPickedMsg:
		s.applyPicked(msg)
		return s, nil, false
	case tea.KeyMsg:
		return s.updateEditKey(msg)
	}
	return s, s.updateInput(msg), false
}

func (s *RecordModal) updateView(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch km.String() {
	case "esc", "q":
		if s.hooks.OnCancel != nil {
			s.hooks.OnCancel()
		}
		return s, nil, true
	case "e":
		if s.hooks.OnEdit != nil {
			return s, s.hooks.OnEdit(), true
		}
	}
	return s, nil, false
}

func (s *RecordModal) updateEditKey(km tea.KeyMsg) (core.Screen, tea.Cmd, bool) {
	if s.edit.Submitting {
		return s, nil, false
	}
	f := s.current()
	switch km.String() {
	case "esc":
		if s.hooks.OnCancel != nil {
			s.hooks.OnCancel()
		}
		return s, nil, true
	case "enter":
		if s.hooks.OnConfirm != nil {
			return s, s.hooks.OnConfirm(), false
		}
		return s, nil, false
	case "tab", "down":
		s.setFocus(s.focus + 1)
		return s, nil, false
	case "shift+tab", "up":
		s.setFocus(s.focus - 1)
		return s, nil, false
	}
	if f == nil {
		return s, nil, false
	}
	switch f.col.Kind {
	case model.KindBool:
		switch km.String() {
		case " ", "space", "left", "right":
			s.change(f.col.Name, !s.edit.Buffer.Bool(f.col.Name))
		}
		return s, nil, false
	case model.KindEnum, model.KindRef:
		switch km.String() {
		case "left":
			s.cycle(f.col, -1)
		case "right":
			s.cycle(f.col, 1)
		case " ", "space":
			return s, s.openPicker(f.col), false
		}
		return s, nil, false
	}
	return s, s.updateInput(km), false
}

func (s *RecordModal) updateInput(msg tea.Msg) tea.Cmd {
	f := s.current()
	if f == nil || !f.hasInput {
		return nil
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before {
		s.change(f.col.Name, v)
	}
	return cmd
}

func (s *RecordModal) change(col string, value any) {
	if s.hooks.OnChange != nil {
		s.hooks.OnChange(model.Record{col: value})
	}
}

func (s *RecordModal) current() *field {
	if s.focus < 0 || s.focus >= len(s.fields) {
		return nil
	}
	return &s.fields[s.focus]
}

func (s *RecordModal) setFocus(i int) {
	if len(s.fields) == 0 {
		return
	}
	s.focus = (i + len(s.fields)) % len(s.fields)
	for idx := range s.fields {
		if !s.fields[idx].hasInput {
			continue
		}
		if idx == s.focus {
			s.fields[idx].input.Focus()
		} else {
			s.fields[idx].input.Blur()
		}
	}
}

// cycle steps a reference or enum column through its allowed values.
func (s *RecordModal) cycle(col model.Column, dir int) {
	ids := s.choices(col)
	if len(ids) == 0 {
		return
	}
	cur := slices.Index(ids, s.choiceID(col))
	next := 0
	if cur >= 0 {
		next = (cur + dir + len(ids)) % len(ids)
	} else if dir < 0 {
		next = len(ids) - 1
	}
	s.applyPicked(OptionPickedMsg{Column: col.Name, ID: ids[next]})
}

func (s *RecordModal) choices(col model.Column) []string {
	if col.Kind == model.KindEnum {
		return col.Options
	}
	if s.hooks.Options == nil {
		return nil
	}
	opts := s.hooks.Options(col.Ref)
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, strconv.FormatInt(o.ID, 10))
	}
	return out
}

func (s *RecordModal) choiceID(col model.Column) string {
	if col.Kind == model.KindEnum {
		return s.edit.Buffer.String(col.Name)
	}
	return strconv.FormatInt(s.edit.Buffer.Int(col.Name), 10)
}

func (s *RecordModal) openPicker(col model.Column) tea.Cmd {
	var items []core.PickerItem
	if col.Kind == model.KindEnum {
		items = EnumItems(col.Options)
	} else if s.hooks.Options != nil {
		items = RefItems(s.hooks.Options(col.Ref))
	}
	picker := NewPickerModal("Choose "+strings.ToLower(col.Label), col.Name, items, s.choiceID(col))
	return func() tea.Msg { return core.PushScreenMsg{Screen: picker} }
}

func (s *RecordModal) applyPicked(msg OptionPickedMsg) {
	col, ok := s.table.Column(msg.Column)
	if !ok {
		return
	}
	switch col.Kind {
	case model.KindEnum:
		if slices.Contains(col.Options, msg.ID) {
			s.change(col.Name, msg.ID)
		}
	case model.KindRef:
		if id, err := strconv.ParseInt(msg.ID, 10, 64); err == nil {
			s.change(col.Name, id)
		}
	}
}

func (s *RecordModal) View(width, height int) string {
	lines := []string{titleStyle.Render(s.Title()), ""}
	if s.edit == nil {
		for _, col := range s.table.Columns {
			value := listing.Cell(col, s.view, s.display.Labels, s.display.Yes, s.display.No)
			lines = append(lines, labelStyle.Render(col.Label+":")+" "+value)
		}
		lines = append(lines, "", hintStyle.Render("e edit · esc close"))
		return core.ClipHeight(core.TrimToWidth(strings.Join(lines, "\n"), width), height)
	}

	labelW := 0
	for _, f := range s.fields {
		labelW = max(labelW, len(f.col.Label)+1)
	}
	for i, f := range s.fields {
		marker := "  "
		label := labelStyle.Render(fmt.Sprintf("%-*s", labelW, f.col.Label+":"))
		if i == s.focus {
			marker = focusStyle.Render("> ")
			label = focusStyle.Render(fmt.Sprintf("%-*s", labelW, f.col.Label+":"))
		}
		lines = append(lines, marker+label+" "+s.renderValue(f, width-labelW-3))
		if msg := s.edit.ErrorFor(f.col.Name); msg != "" {
			lines = append(lines, strings.Repeat(" ", labelW+3)+errStyle.Render(msg))
		}
	}
	lines = append(lines, "")
	if s.edit.Submitting {
		lines = append(lines, hintStyle.Render("Saving…"))
	} else {
		lines = append(lines, hintStyle.Render("enter save · esc cancel · tab next · ←/→ cycle · space pick/toggle"))
	}
	return core.ClipHeight(core.TrimToWidth(strings.Join(lines, "\n"), width), height)
}

func (s *RecordModal) renderValue(f field, width int) string {
	buf := s.edit.Buffer
	switch f.col.Kind {
	case model.KindBool:
		if buf.Bool(f.col.Name) {
			return "[x] " + s.display.Yes
		}
		return "[ ] " + s.display.No
	case model.KindEnum:
		return "‹ " + buf.String(f.col.Name) + " ›"
	case model.KindRef:
		label := listing.Cell(f.col, buf, s.display.Labels, s.display.Yes, s.display.No)
		id := buf.Int(f.col.Name)
		if id == 0 {
			return "‹ none ›"
		}
		return fmt.Sprintf("‹ %s #%d ›", label, id)
	}
	f.input.Width = max(10, width)
	return f.input.View()
}
