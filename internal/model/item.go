package model

import "strings"

// CreatedAtLayout is the time layout of Item.CreatedAt (day.month.year hour:minute).
const CreatedAtLayout = "02.01.2006 15:04"

// Item is the domain model for a todo entry.
// ID and CreatedAt are set once at creation and never change.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"createdAt"`
}

// Filter selects which items a view shows.
type Filter string

const (
	FilterAll  Filter = "all"
	FilterOpen Filter = "open"
	FilterDone Filter = "done"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterOpen, FilterDone}

// ParseFilter accepts "all", "open" or "done" (any case, surrounding space ignored).
func ParseFilter(s string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return FilterAll, false
	}
	return f, true
}

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterOpen, FilterDone:
		return true
	}
	return false
}

// Match reports whether it belongs in a view under f.
func (f Filter) Match(it Item) bool {
	switch f {
	case FilterOpen:
		return !it.Done
	case FilterDone:
		return it.Done
	default:
		return true
	}
}

// Next cycles all -> open -> done -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterOpen
	case FilterOpen:
		return FilterDone
	default:
		return FilterAll
	}
}

// Label is the capitalised name used by the presentation layer.
func (f Filter) Label() string {
	switch f {
	case FilterOpen:
		return "Open"
	case FilterDone:
		return "Done"
	default:
		return "All"
	}
}
