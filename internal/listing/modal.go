package listing

import "github.com/jask/teachdesk/internal/model"

// Modal is the overlay state of a record screen. It is exactly one of
// Closed, Viewing or Editing.
type Modal interface {
	isModal()
}

// Closed means no record is open.
type Closed struct{}

// Viewing shows a record read-only.
type Viewing struct {
	Record model.Record
}

// Editing holds the original record and the pending changes.
type Editing struct {
	Record     model.Record
	Buffer     model.Record
	Errors     []FieldError
	Submitting bool
}

func (Closed) isModal()   {}
func (Viewing) isModal()  {}
func (*Editing) isModal() {}

// OpenDetail returns a read-only view of a copy of rec.
func OpenDetail(rec model.Record) Modal {
	return Viewing{Record: rec.Clone()}
}

// OpenEdit returns an edit session whose buffer starts as a copy of rec.
func OpenEdit(rec model.Record) *Editing {
	return &Editing{Record: rec.Clone(), Buffer: rec.Clone()}
}

// UpdateField merges patch into the buffer. The primary key is never patched.
func (e *Editing) UpdateField(patch model.Record) {
	clean := make(model.Record, len(patch))
	for k, v := range patch {
		if k == model.IDColumn {
			continue
		}
		clean[k] = v
	}
	e.Buffer = e.Buffer.Merge(clean)
	e.Errors = pruneErrors(e.Errors, clean)
}

// ErrorFor returns the validation message for a column, if any.
func (e *Editing) ErrorFor(col string) string {
	for _, fe := range e.Errors {
		if fe.Field == col {
			return fe.Message
		}
	}
	return ""
}

func pruneErrors(errs []FieldError, touched model.Record) []FieldError {
	if len(errs) == 0 {
		return errs
	}
	out := errs[:0:0]
	for _, fe := range errs {
		if _, ok := touched[fe.Field]; ok {
			continue
		}
		out = append(out, fe)
	}
	return out
}
