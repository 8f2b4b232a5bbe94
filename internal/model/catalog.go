package model

import "sort"

// Table names.
const (
	Teachers     = "teachers"
	Courses      = "courses"
	CourseTopics = "course_topics"
	Activities   = "activities"
	Tasks        = "tasks"
)

// Activity status values.
const (
	StatusDone    = "done"
	StatusPending = "pending"
)

var catalog = []Table{
	{
		Name:        Teachers,
		Title:       "Teachers",
		Singular:    "Teacher",
		LabelColumn: "name",
		Columns: []Column{
			{Name: IDColumn, Label: "ID", Kind: KindInt},
			{Name: "name", Label: "Name", Kind: KindString, Required: true},
			{Name: "email", Label: "Email", Kind: KindString, Required: true},
		},
	},
	{
		Name:        Courses,
		Title:       "Courses",
		Singular:    "Course",
		LabelColumn: "course_name",
		Columns: []Column{
			{Name: IDColumn, Label: "ID", Kind: KindInt},
			{Name: "course_name", Label: "Course name", Kind: KindString, Required: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
		},
	},
	{
		Name:        CourseTopics,
		Title:       "Course topics",
		Singular:    "Course topic",
		OrderByID:   true,
		LabelColumn: "title",
		Columns: []Column{
			{Name: IDColumn, Label: "ID", Kind: KindInt},
			{Name: "course_id", Label: "Course", Kind: KindRef, Ref: Courses, Required: true},
			{Name: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "objective", Label: "Objective", Kind: KindText, Required: true},
		},
	},
	{
		Name:        Activities,
		Title:       "Activities",
		Singular:    "Activity",
		OrderByID:   true,
		LabelColumn: "description",
		Columns: []Column{
			{Name: IDColumn, Label: "ID", Kind: KindInt},
			{Name: "course_topic_id", Label: "Course topic", Kind: KindRef, Ref: CourseTopics, Required: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
			{Name: "status", Label: "Status", Kind: KindEnum, Options: []string{StatusDone, StatusPending}, Required: true},
		},
	},
	{
		Name:        Tasks,
		Title:       "Tasks",
		Singular:    "Task",
		OrderByID:   true,
		LabelColumn: "description",
		Columns: []Column{
			{Name: IDColumn, Label: "ID", Kind: KindInt},
			{Name: "course_topic_id", Label: "Course topic", Kind: KindRef, Ref: CourseTopics, Required: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
			{Name: "class_taught", Label: "Class taught", Kind: KindBool},
			{Name: "pending_activity", Label: "Pending activity", Kind: KindBool},
			{Name: "notes", Label: "Notes", Kind: KindText},
		},
	},
}

var byName = func() map[string]Table {
	m := make(map[string]Table, len(catalog))
	for _, t := range catalog {
		m[t.Name] = t
	}
	return m
}()

// All returns every table in navigation order.
func All() []Table {
	out := make([]Table, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the table with the given name.
func Lookup(name string) (Table, bool) {
	t, ok := byName[name]
	return t, ok
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Table {
	t, ok := byName[name]
	if !ok {
		panic("model: unknown table " + name)
	}
	return t
}

// Names returns the sorted table names.
func Names() []string {
	out := make([]string, 0, len(byName))
	for n := range byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
