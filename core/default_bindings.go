package core

import (
	"fmt"
	"strings"
)

// Scopes used by the default bindings.
const (
	ScopeHome          = "tab:home"
	ScopeRecords       = "tab:records"
	ScopeRecordsSearch = "tab:records:search"
	ScopeRecordView    = "screen:record-view"
	ScopeRecordEdit    = "screen:record-edit"
	ScopeConfirm       = "screen:confirm"
	ScopePicker        = "screen:picker"
	ScopeCommand       = "screen:command"
)

func DefaultKeyBindings(tabCount int) []KeyBinding {
	records := []string{ScopeRecords}
	out := []KeyBinding{
		{Keys: []string{"j", "down"}, Action: "row-down", Description: "down", Scopes: records},
		{Keys: []string{"k", "up"}, Action: "row-up", Description: "up", Scopes: records},
		{Keys: []string{"/"}, Action: "search", Description: "search", Scopes: records},
		{Keys: []string{"x"}, Action: "clear-search", Description: "clear", Scopes: records},
		{Keys: []string{"enter", "v"}, Action: "view", Description: "view", Scopes: records},
		{Keys: []string{"e"}, Action: "edit", Description: "edit", Scopes: records},
		{Keys: []string{"d"}, Action: "delete", Description: "delete", Scopes: records},
		{Keys: []string{"p"}, Action: "export-pdf", Description: "pdf", Scopes: records},
		{Keys: []string{"s"}, Action: "export-xlsx", Description: "xlsx", Scopes: records},
		{Keys: []string{"r"}, Action: "reload", Description: "reload", Scopes: records},
		{Keys: []string{"r"}, Action: "reload", Description: "reload", Scopes: []string{ScopeHome}},
		{Keys: []string{"enter"}, Action: "search-done", Description: "apply", Scopes: []string{ScopeRecordsSearch}},
		{Keys: []string{"esc"}, Action: "search-done", Description: "leave search", Scopes: []string{ScopeRecordsSearch}},

		{Keys: []string{"e"}, Action: "edit", Description: "edit", Scopes: []string{ScopeRecordView}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{ScopeRecordView}},
		{Keys: []string{"tab", "down"}, Action: "field-next", Description: "next field", Scopes: []string{ScopeRecordEdit}},
		{Keys: []string{"shift+tab", "up"}, Action: "field-prev", Description: "prev field", Scopes: []string{ScopeRecordEdit}},
		{Keys: []string{"left", "right"}, Action: "cycle", Description: "cycle option", Scopes: []string{ScopeRecordEdit}},
		{Keys: []string{"space"}, Action: "pick", Description: "pick/toggle", Scopes: []string{ScopeRecordEdit}},
		{Keys: []string{"enter"}, Action: "confirm", Description: "save", Scopes: []string{ScopeRecordEdit}},
		{Keys: []string{"esc"}, Action: "close", Description: "cancel", Scopes: []string{ScopeRecordEdit}},
		{Keys: []string{"y", "enter"}, Action: "yes", Description: "yes", Scopes: []string{ScopeConfirm}},
		{Keys: []string{"n", "esc"}, Action: "no", Description: "no", Scopes: []string{ScopeConfirm}},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{ScopePicker, ScopeCommand}},
		{Keys: []string{"enter"}, Action: "select", Description: "select", Scopes: []string{ScopePicker, ScopeCommand}},

		{Keys: []string{"tab"}, Action: "next-tab", Description: "next tab", Scopes: []string{ScopeHome, ScopeRecords}},
		{Keys: []string{"shift+tab"}, Action: "prev-tab", Description: "prev tab", Scopes: []string{ScopeHome, ScopeRecords}},
		{Keys: []string{"esc"}, Action: "dismiss", Description: "dismiss", Scopes: []string{ScopeHome, ScopeRecords}, Hidden: true},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{ScopeHome, ScopeRecords}},
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Scopes: []string{ScopeHome, ScopeRecords}},
	}
	for i := 1; i <= tabCount && i <= 9; i++ {
		out = append(out, KeyBinding{
			Keys:        []string{fmt.Sprintf("%d", i)},
			Action:      fmt.Sprintf("switch-tab-%d", i),
			Description: "tab",
			Scopes:      []string{ScopeHome, ScopeRecords},
			Hidden:      true,
		})
	}
	return out
}

func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings overrides the keys of bound actions, e.g. from
// user configuration.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := b
		next.Keys = append([]string(nil), b.Keys...)
		next.Scopes = append([]string(nil), b.Scopes...)
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
