package tabs

import (
	"context"

	"github.com/jask/teachdesk/internal/database/repository"
	"github.com/jask/teachdesk/internal/diag"
	"github.com/jask/teachdesk/internal/export"
)

// Deps are the collaborators shared by every tab.
type Deps struct {
	Ctx      context.Context
	Store    repository.Store
	Exporter *export.Exporter
	Reporter *diag.Reporter
	YesLabel string
	NoLabel  string
}

func (d Deps) ctx() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

func (d Deps) labels() (string, string) {
	yes, no := d.YesLabel, d.NoLabel
	if yes == "" {
		yes = "Yes"
	}
	if no == "" {
		no = "No"
	}
	return yes, no
}

// widgetFunc adapts a render closure to widgets.Widget.
type widgetFunc func(width, height int) string

func (f widgetFunc) Render(width, height int) string { return f(width, height) }
