package tabs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/core"
	"github.com/jask/teachdesk/internal/export"
	"github.com/jask/teachdesk/internal/model"
)

// Commands builds the palette entries. tables must be in the same order
// as the records tabs, which follow the home tab.
func Commands(tables []model.Table) []core.Command {
	cmds := []core.Command{
		{
			ID:          "export-pdf",
			Name:        "Export PDF",
			Description: "Write the visible rows to a PDF file",
			Hint:        "p",
			Scopes:      []string{core.ScopeRecords},
			Execute:     onRecords(func(t *RecordsTab) tea.Cmd { return t.exportVisibleTable(export.FormatPDF) }),
			Disabled:    needsRecords,
		},
		{
			ID:          "export-xlsx",
			Name:        "Export spreadsheet",
			Description: "Write the visible rows to an XLSX file",
			Hint:        "s",
			Scopes:      []string{core.ScopeRecords},
			Execute:     onRecords(func(t *RecordsTab) tea.Cmd { return t.exportVisibleTable(export.FormatXLSX) }),
			Disabled:    needsRecords,
		},
		{
			ID:          "reload",
			Name:        "Reload",
			Description: "Fetch the table again",
			Hint:        "r",
			Scopes:      []string{core.ScopeRecords},
			Execute:     onRecords(func(t *RecordsTab) tea.Cmd { return t.load() }),
			Disabled:    needsRecords,
		},
		{
			ID:          "clear-search",
			Name:        "Clear search",
			Description: "Drop the filter and reload",
			Hint:        "x",
			Scopes:      []string{core.ScopeRecords},
			Execute:     onRecords(func(t *RecordsTab) tea.Cmd { return t.clear() }),
			Disabled: func(m *core.Model) (bool, string) {
				t, ok := m.ActiveTab().(*RecordsTab)
				if !ok {
					return true, "not a records tab"
				}
				if t.coll.Query() == "" {
					return true, "no search active"
				}
				return false, ""
			},
		},
		{
			ID:          "goto-home",
			Name:        "Go to Home",
			Description: "Show record counts",
			Hint:        "1",
			Scopes:      []string{"*"},
			Execute:     func(m *core.Model) tea.Cmd { return m.SwitchTab(0) },
		},
	}
	for i, t := range tables {
		index := i + 1
		cmds = append(cmds, core.Command{
			ID:          "goto-" + t.Name,
			Name:        "Go to " + t.Title,
			Description: fmt.Sprintf("List %s", strings.ToLower(t.Title)),
			Hint:        fmt.Sprintf("%d", index+1),
			Scopes:      []string{"*"},
			Execute:     func(m *core.Model) tea.Cmd { return m.SwitchTab(index) },
		})
	}
	return cmds
}

func onRecords(fn func(t *RecordsTab) tea.Cmd) func(m *core.Model) tea.Cmd {
	return func(m *core.Model) tea.Cmd {
		t, ok := m.ActiveTab().(*RecordsTab)
		if !ok {
			return nil
		}
		return fn(t)
	}
}

func needsRecords(m *core.Model) (bool, string) {
	if _, ok := m.ActiveTab().(*RecordsTab); !ok {
		return true, "not a records tab"
	}
	return false, ""
}
