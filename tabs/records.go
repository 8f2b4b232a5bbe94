package tabs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/teachdesk/core"
	"github.com/jask/teachdesk/internal/export"
	"github.com/jask/teachdesk/internal/listing"
	"github.com/jask/teachdesk/internal/lookup"
	"github.com/jask/teachdesk/internal/model"
	"github.com/jask/teachdesk/screens"
	"github.com/jask/teachdesk/widgets"
)

var (
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
)

// RecordsTab lists one table and drives search, view, edit, delete and
// export for it.
type RecordsTab struct {
	deps      Deps
	table     model.Table
	coll      *listing.Collection
	lookups   *lookup.Cache
	modal     listing.Modal
	cursor    int
	epoch     uint64
	search    textinput.Model
	searching bool
	spinner   spinner.Model
}

func NewRecordsTab(t model.Table, deps Deps) *RecordsTab {
	inp := textinput.New()
	inp.Prompt = "/ "
	inp.Placeholder = "search " + strings.ToLower(t.Title)
	return &RecordsTab{
		deps:    deps,
		table:   t,
		coll:    listing.NewCollection(t),
		lookups: lookup.NewCache(),
		modal:   listing.Closed{},
		search:  inp,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (t *RecordsTab) ID() string    { return t.table.Name }
func (t *RecordsTab) Title() string { return t.table.Title }

func (t *RecordsTab) Scope() string {
	if t.searching {
		return core.ScopeRecordsSearch
	}
	return core.ScopeRecords
}

func (t *RecordsTab) CapturingInput() bool { return t.searching }

// Modal exposes the current overlay state.
func (t *RecordsTab) Modal() listing.Modal { return t.modal }

// Items are the rows currently displayed.
func (t *RecordsTab) Items() []model.Record { return t.coll.Items() }

func (t *RecordsTab) Loading() bool { return t.coll.Loading() }

// Mount starts a fresh lifetime: new epoch, empty lookup cache, full reload.
func (t *RecordsTab) Mount() tea.Cmd {
	t.epoch++
	t.lookups.Reset()
	t.modal = listing.Closed{}
	t.searching = false
	t.search.Blur()
	t.search.SetValue("")
	cmds := []tea.Cmd{t.load()}
	for _, ref := range t.lookups.Missing(t.table.Refs()) {
		cmds = append(cmds, t.loadLookup(ref))
	}
	return tea.Batch(cmds...)
}

// Unmount invalidates every request still in flight.
func (t *RecordsTab) Unmount() {
	t.epoch++
	t.modal = listing.Closed{}
	t.searching = false
	t.search.Blur()
}

func (t *RecordsTab) owns(table string, epoch uint64) bool {
	return table == t.table.Name && epoch == t.epoch
}

func (t *RecordsTab) load() tea.Cmd {
	gen := t.coll.BeginLoad()
	store, ctx := t.deps.Store, t.deps.ctx()
	name, orderByID, epoch := t.table.Name, t.table.OrderByID, t.epoch
	fetch := func() tea.Msg {
		recs, err := store.List(ctx, name, orderByID)
		return recordsLoadedMsg{table: name, epoch: epoch, gen: gen, recs: recs, err: err}
	}
	return tea.Batch(fetch, t.spinner.Tick)
}

func (t *RecordsTab) loadLookup(ref string) tea.Cmd {
	store, ctx := t.deps.Store, t.deps.ctx()
	name, epoch := t.table.Name, t.epoch
	return func() tea.Msg {
		m, err := lookup.Fetch(ctx, store, ref)
		return lookupLoadedMsg{table: name, epoch: epoch, ref: ref, m: m, err: err}
	}
}

func (t *RecordsTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if !t.owns(msg.table, msg.epoch) || !t.coll.FinishLoad(msg.gen, msg.recs, msg.err) {
			return nil
		}
		if msg.err != nil {
			t.fail(m, "load", 0, msg.err)
			return nil
		}
		if t.searching {
			// keep what the user is typing and filter the fresh rows with it
			if q := t.search.Value(); q != "" {
				t.coll.Search(q)
			}
		} else {
			t.search.SetValue("")
		}
		t.clampCursor()
		m.SetStatus(fmt.Sprintf("Loaded %d %s", len(msg.recs), strings.ToLower(t.table.Title)))
		return nil
	case lookupLoadedMsg:
		if !t.owns(msg.table, msg.epoch) {
			return nil
		}
		if msg.err != nil {
			t.fail(m, "lookup "+msg.ref, 0, msg.err)
			return nil
		}
		t.lookups.Put(msg.m)
		return nil
	case recordSavedMsg:
		if !t.owns(msg.table, msg.epoch) {
			return nil
		}
		return t.finishEdit(m, msg)
	case deleteConfirmedMsg:
		if !t.owns(msg.table, msg.epoch) {
			return nil
		}
		return t.deleteRecord(msg.id)
	case recordDeletedMsg:
		if !t.owns(msg.table, msg.epoch) {
			return nil
		}
		if msg.err != nil {
			t.fail(m, "delete", msg.id, msg.err)
			return nil
		}
		m.SetStatus(fmt.Sprintf("Deleted %s #%d", strings.ToLower(t.table.Singular), msg.id))
		return t.load()
	case editRequestedMsg:
		if !t.owns(msg.table, msg.epoch) {
			return nil
		}
		if rec, ok := t.coll.Find(msg.id); ok {
			t.openEdit(m, rec)
		}
		return nil
	case spinner.TickMsg:
		if !t.coll.Loading() {
			return nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if t.searching {
			return t.updateSearch(msg)
		}
		return t.handleKey(m, msg)
	}
	if t.searching {
		var cmd tea.Cmd
		t.search, cmd = t.search.Update(msg)
		return cmd
	}
	return nil
}

func (t *RecordsTab) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	action, ok := m.Keys().ActionFor(msg, t.Scope())
	if !ok {
		return nil
	}
	switch action {
	case "row-down":
		t.moveCursor(1)
	case "row-up":
		t.moveCursor(-1)
	case "search":
		t.searching = true
		return t.search.Focus()
	case "clear-search":
		return t.clear()
	case "reload":
		return t.load()
	case "view":
		if rec, ok := t.selected(); ok {
			t.openDetail(m, rec)
		}
	case "edit":
		if rec, ok := t.selected(); ok {
			t.openEdit(m, rec)
		}
	case "delete":
		if rec, ok := t.selected(); ok {
			t.confirmDelete(m, rec)
		}
	case "export-pdf":
		return t.exportVisibleTable(export.FormatPDF)
	case "export-xlsx":
		return t.exportVisibleTable(export.FormatXLSX)
	}
	return nil
}

func (t *RecordsTab) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		t.searching = false
		t.search.Blur()
		return nil
	}
	before := t.search.Value()
	var cmd tea.Cmd
	t.search, cmd = t.search.Update(msg)
	if v := t.search.Value(); v != before {
		t.Search(v)
	}
	return cmd
}

// Search filters the displayed rows.
func (t *RecordsTab) Search(q string) {
	t.coll.Search(q)
	t.cursor = 0
}

// clear drops the filter and fetches the table again.
func (t *RecordsTab) clear() tea.Cmd {
	t.search.SetValue("")
	t.coll.Clear()
	t.clampCursor()
	return t.load()
}

func (t *RecordsTab) selected() (model.Record, bool) {
	items := t.coll.Items()
	if t.cursor < 0 || t.cursor >= len(items) {
		return nil, false
	}
	return items[t.cursor], true
}

func (t *RecordsTab) moveCursor(delta int) {
	t.cursor += delta
	t.clampCursor()
}

func (t *RecordsTab) clampCursor() {
	n := len(t.coll.Items())
	if t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func (t *RecordsTab) display() screens.Display {
	yes, no := t.deps.labels()
	return screens.Display{Labels: t.lookups, Yes: yes, No: no}
}

func (t *RecordsTab) openDetail(m *core.Model, rec model.Record) {
	t.modal = listing.OpenDetail(rec)
	view := t.modal.(listing.Viewing)
	name, epoch, id := t.table.Name, t.epoch, rec.ID()
	m.PushScreen(screens.NewRecordView(t.table, view.Record, t.display(), screens.RecordHooks{
		OnEdit: func() tea.Cmd {
			return func() tea.Msg { return editRequestedMsg{table: name, epoch: epoch, id: id} }
		},
		OnCancel: t.closeModal,
	}))
}

func (t *RecordsTab) openEdit(m *core.Model, rec model.Record) {
	ed := listing.OpenEdit(rec)
	t.modal = ed
	m.PushScreen(screens.NewRecordEditor(t.table, ed, t.display(), screens.RecordHooks{
		OnChange:  t.updateField,
		OnConfirm: t.confirmEdit,
		OnCancel:  t.closeModal,
		Options:   t.lookups.Options,
	}))
}

func (t *RecordsTab) closeModal() {
	t.modal = listing.Closed{}
}

func (t *RecordsTab) updateField(patch model.Record) {
	if ed, ok := t.modal.(*listing.Editing); ok {
		ed.UpdateField(patch)
	}
}

// confirmEdit validates the buffer and, when it passes, submits it. Only
// the edit form can commit.
func (t *RecordsTab) confirmEdit() tea.Cmd {
	ed, ok := t.modal.(*listing.Editing)
	if !ok || ed.Submitting {
		return nil
	}
	ed.Errors = listing.Validate(t.table, ed.Buffer)
	if len(ed.Errors) > 0 {
		return nil
	}
	ed.Submitting = true

	patch := model.Record{}
	for _, col := range t.table.Editable() {
		if v, ok := ed.Buffer[col.Name]; ok {
			patch[col.Name] = v
		}
	}
	store, ctx := t.deps.Store, t.deps.ctx()
	name, epoch, id := t.table.Name, t.epoch, ed.Record.ID()
	return func() tea.Msg {
		_, err := store.Update(ctx, name, id, patch)
		return recordSavedMsg{table: name, epoch: epoch, id: id, err: err}
	}
}

func (t *RecordsTab) finishEdit(m *core.Model, msg recordSavedMsg) tea.Cmd {
	ed, ok := t.modal.(*listing.Editing)
	if !ok || ed.Record.ID() != msg.id {
		return nil
	}
	ed.Submitting = false
	if msg.err != nil {
		t.fail(m, "update", msg.id, msg.err)
		return nil
	}
	t.modal = listing.Closed{}
	m.PopScreen(core.ScopeRecordEdit)
	m.SetStatus(fmt.Sprintf("Saved %s #%d", strings.ToLower(t.table.Singular), msg.id))
	return t.load()
}

func (t *RecordsTab) confirmDelete(m *core.Model, rec model.Record) {
	name, epoch, id := t.table.Name, t.epoch, rec.ID()
	prompt := fmt.Sprintf("Delete %s #%d", strings.ToLower(t.table.Singular), id)
	if t.table.LabelColumn != "" {
		if label := rec.Format(t.table.LabelColumn); label != "" {
			prompt += " (" + widgets.Truncate(label, 40) + ")"
		}
	}
	m.PushScreen(screens.NewConfirmModal("Delete "+strings.ToLower(t.table.Singular), prompt+"?", func() tea.Msg {
		return deleteConfirmedMsg{table: name, epoch: epoch, id: id}
	}))
}

// deleteRecord removes one record; the list reloads only on success.
func (t *RecordsTab) deleteRecord(id int64) tea.Cmd {
	store, ctx := t.deps.Store, t.deps.ctx()
	name, epoch := t.table.Name, t.epoch
	return func() tea.Msg {
		err := store.Delete(ctx, name, id)
		return recordDeletedMsg{table: name, epoch: epoch, id: id, err: err}
	}
}

// Sheet renders the displayed rows exactly as the table shows them.
func (t *RecordsTab) Sheet() export.Sheet {
	yes, no := t.deps.labels()
	return listing.Sheet(t.table, t.coll.Items(), t.lookups, yes, no)
}

// exportVisibleTable writes the displayed rows in the background and
// reports the outcome on the notification line.
func (t *RecordsTab) exportVisibleTable(format export.Format) tea.Cmd {
	exporter, reporter := t.deps.Exporter, t.deps.Reporter
	if exporter == nil {
		return core.ErrorCmd(fmt.Errorf("export: no export directory configured"))
	}
	sheet := t.Sheet()
	return func() tea.Msg {
		path, err := exporter.Export(sheet, format)
		if err != nil {
			reporter.Error("export failed", err, map[string]any{"table": sheet.Table, "format": string(format)})
			return core.StatusMsg{Text: fmt.Sprintf("export %s: %v", sheet.Table, err), IsErr: true}
		}
		reporter.Info("exported", map[string]any{"table": sheet.Table, "path": path, "rows": len(sheet.Rows)})
		return core.StatusMsg{Text: fmt.Sprintf("Exported %d rows to %s", len(sheet.Rows), path)}
	}
}

func (t *RecordsTab) fail(m *core.Model, op string, id int64, err error) {
	fields := map[string]any{"table": t.table.Name, "op": op}
	if id != 0 {
		fields["id"] = id
	}
	t.deps.Reporter.Error("store call failed", err, fields)
	m.SetError(err)
}

func (t *RecordsTab) Build(m *core.Model) widgets.Widget {
	return widgetFunc(func(width, height int) string {
		yes, no := t.deps.labels()
		items := t.coll.Items()
		rows := listing.Rows(t.table, items, t.lookups, yes, no)
		empty := "No " + strings.ToLower(t.table.Title)
		if t.coll.Query() != "" {
			empty = fmt.Sprintf("No %s match %q", strings.ToLower(t.table.Title), t.coll.Query())
		}
		tbl := widgets.Table{Headers: listing.Headers(t.table), Rows: rows, Cursor: t.cursor, Empty: empty}

		title := fmt.Sprintf("%s (%d/%d)", t.table.Title, len(items), len(t.coll.Original()))
		box := widgets.Box{Title: title, Content: tbl.Render(max(1, width-4), max(1, height-4)), Focused: !t.searching}
		return widgets.VStack{
			Widgets: []widgets.Widget{widgets.Text(t.searchLine()), box},
			Heights: []int{1},
		}.Render(width, height)
	})
}

func (t *RecordsTab) searchLine() string {
	var line string
	switch {
	case t.searching:
		line = t.search.View()
	case t.coll.Query() != "":
		line = accentStyle.Render("/ "+t.coll.Query()) + mutedStyle.Render("  (x clears)")
	default:
		line = mutedStyle.Render("/ to search")
	}
	if t.coll.Loading() {
		line = t.spinner.View() + " Loading…  " + line
	}
	return line
}
