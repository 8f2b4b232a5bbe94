package tabs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/teachdesk/core"
	"github.com/jask/teachdesk/internal/database"
	"github.com/jask/teachdesk/internal/database/repository"
	"github.com/jask/teachdesk/internal/diag"
	"github.com/jask/teachdesk/internal/export"
	"github.com/jask/teachdesk/internal/listing"
	"github.com/jask/teachdesk/internal/model"
)

func newDeps(t *testing.T) (Deps, *repository.RecordRepo) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "tabs.db")
	require.NoError(t, database.RunMigrations(database.DriverSQLite, dbPath))
	db, err := database.Open(database.DriverSQLite, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	repo := repository.NewRecordRepo(db)
	return Deps{
		Ctx:      ctx,
		Store:    repo,
		Exporter: export.NewExporter(t.TempDir()),
		Reporter: diag.Discard(),
	}, repo
}

func newModel(tabs ...core.Tab) core.Model {
	keys := core.NewKeyRegistry(core.DefaultKeyBindings(len(tabs)))
	return core.NewModel("test", tabs, keys, nil)
}

// drain runs cmd and feeds every resulting message back into tab until the
// queue settles. Status messages are returned instead of delivered.
func drain(t *testing.T, m *core.Model, tab core.Tab, cmd tea.Cmd) []core.StatusMsg {
	t.Helper()
	var statuses []core.StatusMsg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatalf("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case core.StatusMsg:
			statuses = append(statuses, msg)
		default:
			queue = append(queue, tab.Update(m, msg))
		}
	}
	return statuses
}

func mountTeachers(t *testing.T) (*RecordsTab, *core.Model, *repository.RecordRepo) {
	t.Helper()
	deps, repo := newDeps(t)
	tab := NewRecordsTab(model.MustLookup(model.Teachers), deps)
	m := newModel(tab)
	drain(t, &m, tab, tab.Mount())
	return tab, &m, repo
}

func findByName(t *testing.T, recs []model.Record, name string) model.Record {
	t.Helper()
	for _, r := range recs {
		if r.String("name") == name {
			return r
		}
	}
	t.Fatalf("no record named %q", name)
	return nil
}

func TestRecordsTabMountLoadsTable(t *testing.T) {
	tab, m, _ := mountTeachers(t)

	require.False(t, tab.Loading())
	require.Len(t, tab.Items(), 2)
	status, isErr := m.Status()
	require.False(t, isErr)
	require.Equal(t, "Loaded 2 teachers", status)
}

func TestRecordsTabDropsMessagesFromEarlierMount(t *testing.T) {
	deps, _ := newDeps(t)
	tab := NewRecordsTab(model.MustLookup(model.Teachers), deps)
	m := newModel(tab)

	stale := tab.Mount()
	tab.Unmount()
	fresh := tab.Mount()

	drain(t, &m, tab, stale)
	require.Empty(t, tab.Items())
	require.True(t, tab.Loading())

	drain(t, &m, tab, fresh)
	require.Len(t, tab.Items(), 2)
}

func TestRecordsTabIgnoresOtherTables(t *testing.T) {
	tab, m, _ := mountTeachers(t)

	tab.Update(m, recordsLoadedMsg{table: model.Courses, epoch: tab.epoch, gen: tab.coll.Generation()})
	require.Len(t, tab.Items(), 2)
}

func TestRecordsTabSearchAndClear(t *testing.T) {
	tab, m, _ := mountTeachers(t)
	original := tab.Items()

	tab.Search("ANA")
	require.Len(t, tab.Items(), 1)
	require.Equal(t, "Ana Torres", tab.Items()[0].String("name"))

	tab.Search("school.edu")
	require.Len(t, tab.Items(), 2)

	tab.Search("nobody")
	require.Empty(t, tab.Items())

	drain(t, m, tab, tab.clear())
	require.Equal(t, original, tab.Items())
}

func TestRecordsTabSearchKeys(t *testing.T) {
	tab, m, _ := mountTeachers(t)

	tab.Update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, tab.CapturingInput())
	require.Equal(t, core.ScopeRecordsSearch, tab.Scope())

	for _, r := range "leo" {
		tab.Update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	require.Len(t, tab.Items(), 1)
	require.Equal(t, "Leo Herrera", tab.Items()[0].String("name"))

	tab.Update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, tab.CapturingInput())
	require.Len(t, tab.Items(), 1)
}

func TestConfirmEditWithBlankFieldKeepsModalOpen(t *testing.T) {
	tab, m, repo := mountTeachers(t)
	leo := findByName(t, tab.Items(), "Leo Herrera")

	tab.openEdit(m, leo)
	tab.updateField(model.Record{"name": ""})
	require.Nil(t, tab.confirmEdit())

	ed, ok := tab.Modal().(*listing.Editing)
	require.True(t, ok)
	require.False(t, ed.Submitting)
	require.Equal(t, "Name cannot be blank", ed.ErrorFor("name"))
	require.Equal(t, core.ScopeRecordEdit, m.TopScreen().Scope())

	stored, err := repo.Get(context.Background(), model.Teachers, leo.ID())
	require.NoError(t, err)
	require.Equal(t, "Leo Herrera", stored.String("name"))
}

func TestConfirmEditSavesAndReloads(t *testing.T) {
	tab, m, repo := mountTeachers(t)
	leo := findByName(t, tab.Items(), "Leo Herrera")

	tab.openEdit(m, leo)
	tab.updateField(model.Record{"name": "Leonel Herrera"})
	drain(t, m, tab, tab.confirmEdit())

	require.IsType(t, listing.Closed{}, tab.Modal())
	require.Nil(t, m.TopScreen())

	stored, err := repo.Get(context.Background(), model.Teachers, leo.ID())
	require.NoError(t, err)
	require.Equal(t, "Leonel Herrera", stored.String("name"))
	require.Equal(t, leo.String("email"), stored.String("email"))

	reloaded, ok := tab.coll.Find(leo.ID())
	require.True(t, ok)
	require.Equal(t, "Leonel Herrera", reloaded.String("name"))
}

func TestConfirmEditFailureKeepsBuffer(t *testing.T) {
	tab, m, repo := mountTeachers(t)
	leo := findByName(t, tab.Items(), "Leo Herrera")

	tab.openEdit(m, leo)
	tab.updateField(model.Record{"name": "Leonel"})
	require.NoError(t, repo.Delete(context.Background(), model.Teachers, leo.ID()))
	drain(t, m, tab, tab.confirmEdit())

	ed, ok := tab.Modal().(*listing.Editing)
	require.True(t, ok)
	require.False(t, ed.Submitting)
	require.Equal(t, "Leonel", ed.Buffer.String("name"))
	_, isErr := m.Status()
	require.True(t, isErr)
	require.Equal(t, core.ScopeRecordEdit, m.TopScreen().Scope())
}

func TestDetailViewCannotCommit(t *testing.T) {
	tab, m, _ := mountTeachers(t)
	ana := findByName(t, tab.Items(), "Ana Torres")

	tab.openDetail(m, ana)
	require.IsType(t, listing.Viewing{}, tab.Modal())
	require.Nil(t, tab.confirmEdit())
	require.Equal(t, core.ScopeRecordView, m.TopScreen().Scope())
}

func TestDeleteRemovesExactlyOneRecord(t *testing.T) {
	tab, m, repo := mountTeachers(t)
	ana := findByName(t, tab.Items(), "Ana Torres")

	tab.confirmDelete(m, ana)
	top := m.TopScreen()
	require.Equal(t, core.ScopeConfirm, top.Scope())
	_, cmd, pop := top.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.True(t, pop)
	drain(t, m, tab, cmd)

	n, err := repo.Count(context.Background(), model.Teachers)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, tab.Items(), 1)
	_, found := tab.coll.Find(ana.ID())
	require.False(t, found)
}

func TestDeleteMissingRecordReportsFailure(t *testing.T) {
	tab, m, repo := mountTeachers(t)

	drain(t, m, tab, tab.deleteRecord(9999))

	status, isErr := m.Status()
	require.True(t, isErr)
	require.Contains(t, status, "not found")
	require.Len(t, tab.Items(), 2)
	n, err := repo.Count(context.Background(), model.Teachers)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestReferenceColumnsRenderLabels(t *testing.T) {
	deps, _ := newDeps(t)
	tab := NewRecordsTab(model.MustLookup(model.CourseTopics), deps)
	m := newModel(tab)
	drain(t, &m, tab, tab.Mount())

	require.Len(t, tab.Items(), 3)
	sheet := tab.Sheet()
	require.Equal(t, []string{"ID", "Course", "Title", "Objective"}, sheet.Headers)
	require.Equal(t, "Programming I", sheet.Rows[0][1])
	require.Equal(t, "Variables and types", sheet.Rows[0][2])
}

func TestExportWritesVisibleRows(t *testing.T) {
	tab, m, _ := mountTeachers(t)
	tab.Search("ana")

	statuses := drain(t, m, tab, tab.exportVisibleTable(export.FormatXLSX))
	require.Len(t, statuses, 1)
	require.False(t, statuses[0].IsErr, statuses[0].Text)
	require.Contains(t, statuses[0].Text, "Exported 1 rows")

	entries, err := os.ReadDir(tab.deps.Exporter.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasPrefix(entries[0].Name(), "teachers-"))
	require.True(t, strings.HasSuffix(entries[0].Name(), ".xlsx"))
}

func TestHomeTabCountsTables(t *testing.T) {
	deps, _ := newDeps(t)
	home := NewHomeTab(model.All(), deps)
	m := newModel(home)
	drain(t, &m, home, home.Mount())

	counts := home.Counts()
	require.Equal(t, 2, counts[model.Teachers])
	require.Equal(t, 2, counts[model.Courses])
	require.Equal(t, 3, counts[model.CourseTopics])
	require.Equal(t, 3, counts[model.Activities])
	require.Equal(t, 3, counts[model.Tasks])
}

func TestCommandsSwitchTabs(t *testing.T) {
	deps, _ := newDeps(t)
	tables := model.All()
	tabs := []core.Tab{NewHomeTab(tables, deps)}
	for _, tbl := range tables {
		tabs = append(tabs, NewRecordsTab(tbl, deps))
	}
	reg := core.NewCommandRegistry(Commands(tables))
	m := newModel(tabs...)

	reg.Execute("goto-"+model.Courses, &m)
	require.Equal(t, model.Courses, m.ActiveTab().ID())

	results := reg.Search("export", core.ScopeRecords, &m)
	require.NotEmpty(t, results)
	for _, r := range results {
		require.False(t, r.Disabled, r.Name)
	}
}

func TestLoadWhileTypingKeepsSearchQuery(t *testing.T) {
	deps, _ := newDeps(t)
	tab := NewRecordsTab(model.MustLookup(model.Teachers), deps)
	m := newModel(tab)

	pending := tab.Mount()
	tab.Update(&m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	for _, r := range "leo" {
		tab.Update(&m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	drain(t, &m, tab, pending)

	require.True(t, tab.CapturingInput())
	require.Equal(t, "leo", tab.search.Value())
	require.Equal(t, "leo", tab.coll.Query())
	require.Len(t, tab.Items(), 1)
	require.Equal(t, "Leo Herrera", tab.Items()[0].String("name"))
	require.Len(t, tab.coll.Original(), 2)
}
