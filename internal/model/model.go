// Package model describes the record tables the console manages.
//
// Every table is a flat set of columns; records are maps keyed by column name.
// The catalog in catalog.go is the single source of column names, so SQL built
// from it never interpolates user input.
package model

// Kind is the primitive type stored in a column.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindText
	KindBool
	KindEnum
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindRef:
		return "ref"
	}
	return "unknown"
}

// Textual reports whether values of this kind are strings (and so take part in search).
func (k Kind) Textual() bool {
	return k == KindString || k == KindText || k == KindEnum
}

// Column is one field of a table.
type Column struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Ref      string   // referenced table for KindRef
	Options  []string // allowed values for KindEnum
}

// Table is a record collection definition.
type Table struct {
	Name        string
	Title       string
	Singular    string
	Columns     []Column
	OrderByID   bool
	LabelColumn string
}

// IDColumn is the primary key every table carries.
const IDColumn = "id"

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Editable returns every column except the primary key.
func (t Table) Editable() []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == IDColumn {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ColumnNames lists column names in declaration order.
func (t Table) ColumnNames() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, c.Name)
	}
	return out
}

// Refs lists the distinct tables referenced by this table's columns.
func (t Table) Refs() []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range t.Columns {
		if c.Kind != KindRef || c.Ref == "" || seen[c.Ref] {
			continue
		}
		seen[c.Ref] = true
		out = append(out, c.Ref)
	}
	return out
}
