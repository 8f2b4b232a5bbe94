package tabs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/teachdesk/core"
	"github.com/jask/teachdesk/internal/model"
	"github.com/jask/teachdesk/widgets"
)

// HomeTab is the landing page: one row per table with its record count.
type HomeTab struct {
	deps   Deps
	tables []model.Table
	counts map[string]int
	epoch  uint64
	err    error
}

func NewHomeTab(tables []model.Table, deps Deps) *HomeTab {
	return &HomeTab{deps: deps, tables: tables}
}

func (h *HomeTab) ID() string    { return "home" }
func (h *HomeTab) Title() string { return "Home" }
func (h *HomeTab) Scope() string { return core.ScopeHome }

// Counts returns the last loaded counts, nil before the first load.
func (h *HomeTab) Counts() map[string]int { return h.counts }

func (h *HomeTab) Mount() tea.Cmd {
	h.epoch++
	store, ctx, epoch := h.deps.Store, h.deps.ctx(), h.epoch
	tables := h.tables
	return func() tea.Msg {
		counts := make(map[string]int, len(tables))
		for _, t := range tables {
			n, err := store.Count(ctx, t.Name)
			if err != nil {
				return countsLoadedMsg{epoch: epoch, err: fmt.Errorf("count %s: %w", t.Name, err)}
			}
			counts[t.Name] = n
		}
		return countsLoadedMsg{epoch: epoch, counts: counts}
	}
}

func (h *HomeTab) Unmount() { h.epoch++ }

func (h *HomeTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case countsLoadedMsg:
		if msg.epoch != h.epoch {
			return nil
		}
		h.err = msg.err
		if msg.err != nil {
			h.deps.Reporter.Error("count failed", msg.err, nil)
			m.SetError(msg.err)
			return nil
		}
		h.counts = msg.counts
	case tea.KeyMsg:
		if action, ok := m.Keys().ActionFor(msg, core.ScopeHome); ok && action == "reload" {
			return h.Mount()
		}
	}
	return nil
}

func (h *HomeTab) Build(m *core.Model) widgets.Widget {
	return widgetFunc(func(width, height int) string {
		var b strings.Builder
		b.WriteString(accentStyle.Render("Teaching records"))
		b.WriteString("\n\n")
		if h.counts == nil && h.err == nil {
			b.WriteString(mutedStyle.Render("Counting…"))
		}
		for i, t := range h.tables {
			count := "-"
			if n, ok := h.counts[t.Name]; ok {
				count = fmt.Sprintf("%d", n)
			}
			fmt.Fprintf(&b, "  %d  %-16s %6s\n", i+2, t.Title, count)
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("tab/shift+tab or 1-9 to switch, ctrl+k for commands"))
		return widgets.Box{Title: "Home", Content: b.String(), Focused: true}.Render(width, height)
	})
}
