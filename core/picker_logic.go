package core

import (
	"sort"
	"strings"
)

type PickerItem struct {
	ID     string
	Label  string
	Meta   string
	Search string
}

type PickerAction int

const (
	PickerActionNone PickerAction = iota
	PickerActionMoved
	PickerActionSelected
	PickerActionCancelled
)

type PickerResult struct {
	Action PickerAction
	Item   PickerItem
}

// Ranker orders items for a query. It may drop items that do not match.
type Ranker func(query string, items []PickerItem) []PickerItem

// Picker is the filter/cursor state machine behind picker screens.
type Picker struct {
	title    string
	items    []PickerItem
	filtered []PickerItem
	query    string
	cursor   int
	rank     Ranker
}

func NewPicker(title string, items []PickerItem) *Picker {
	p := &Picker{title: strings.TrimSpace(title), rank: FuzzyRank}
	p.SetItems(items)
	return p
}

func (p *Picker) Title() string { return p.title }
func (p *Picker) Query() string { return p.query }
func (p *Picker) Cursor() int   { return p.cursor }

func (p *Picker) Items() []PickerItem {
	return append([]PickerItem(nil), p.filtered...)
}

func (p *Picker) SetItems(items []PickerItem) {
	p.items = append([]PickerItem(nil), items...)
	p.rebuildFiltered()
}

// SetRanker replaces the default fuzzy ranking.
func (p *Picker) SetRanker(r Ranker) {
	if r == nil {
		r = FuzzyRank
	}
	p.rank = r
	p.rebuildFiltered()
}

func (p *Picker) SetQuery(q string) {
	p.query = q
	p.cursor = 0
	p.rebuildFiltered()
}

// Select moves the cursor onto the item with id, if it is listed.
func (p *Picker) Select(id string) {
	for i, it := range p.filtered {
		if it.ID == id {
			p.cursor = i
			return
		}
	}
}

func (p *Picker) CurrentItem() (PickerItem, bool) {
	if len(p.filtered) == 0 {
		return PickerItem{}, false
	}
	return p.filtered[min(max(p.cursor, 0), len(p.filtered)-1)], true
}

// HandleKey applies one key press. Letters always extend the query, so
// navigation uses the arrow keys and ctrl+n/ctrl+p.
func (p *Picker) HandleKey(keyName string) PickerResult {
	switch keyName {
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
			return PickerResult{Action: PickerActionMoved}
		}
		return PickerResult{Action: PickerActionNone}
	case "down", "ctrl+n":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
			return PickerResult{Action: PickerActionMoved}
		}
		return PickerResult{Action: PickerActionNone}
	case "enter":
		item, ok := p.CurrentItem()
		if !ok {
			return PickerResult{Action: PickerActionNone}
		}
		return PickerResult{Action: PickerActionSelected, Item: item}
	case "esc":
		return PickerResult{Action: PickerActionCancelled}
	case "backspace":
		if r := []rune(p.query); len(r) > 0 {
			p.SetQuery(string(r[:len(r)-1]))
		}
		return PickerResult{Action: PickerActionNone}
	case "space":
		p.SetQuery(p.query + " ")
		return PickerResult{Action: PickerActionNone}
	default:
		if isPrintableKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
		return PickerResult{Action: PickerActionNone}
	}
}

func (p *Picker) rebuildFiltered() {
	rank := p.rank
	if rank == nil {
		rank = FuzzyRank
	}
	p.filtered = rank(strings.TrimSpace(p.query), p.items)
	if p.cursor >= len(p.filtered) {
		p.cursor = max(0, len(p.filtered)-1)
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// FuzzyRank keeps items whose search text contains the query as a
// subsequence, best matches first.
func FuzzyRank(query string, items []PickerItem) []PickerItem {
	type scored struct {
		item  PickerItem
		score int
		index int
	}
	rows := make([]scored, 0, len(items))
	for idx, item := range items {
		search := strings.TrimSpace(item.Search)
		if search == "" {
			search = item.Label
		}
		matched, score := fuzzyMatchScore(search, query)
		if !matched {
			continue
		}
		rows = append(rows, scored{item: item, score: score, index: idx})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].index < rows[j].index
	})
	out := make([]PickerItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.item)
	}
	return out
}

func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := []rune(strings.ToLower(label))
	queryLower := []rune(strings.ToLower(query))

	matchIdx := make([]int, 0, len(queryLower))
	from := 0
	for _, ch := range queryLower {
		found := false
		for j := from; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				from = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(queryLower)
	if matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

func isPrintableKey(keyName string) bool {
	r := []rune(keyName)
	return len(r) == 1 && r[0] >= 32 && r[0] != 127
}
