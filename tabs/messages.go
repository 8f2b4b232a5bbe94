package tabs

import (
	"github.com/jask/teachdesk/internal/lookup"
	"github.com/jask/teachdesk/internal/model"
)

// Every records message names its table and the mount epoch it was issued
// in; the tab drops messages from another table or an earlier mount.

type recordsLoadedMsg struct {
	table string
	epoch uint64
	gen   uint64
	recs  []model.Record
	err   error
}

type lookupLoadedMsg struct {
	table string
	epoch uint64
	ref   string
	m     lookup.Map
	err   error
}

type recordSavedMsg struct {
	table string
	epoch uint64
	id    int64
	err   error
}

type recordDeletedMsg struct {
	table string
	epoch uint64
	id    int64
	err   error
}

type deleteConfirmedMsg struct {
	table string
	epoch uint64
	id    int64
}

type editRequestedMsg struct {
	table string
	epoch uint64
	id    int64
}

type countsLoadedMsg struct {
	epoch  uint64
	counts map[string]int
	err    error
}
