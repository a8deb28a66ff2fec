// Package selector implements the searchable, paged popups used to pick master
// records: single select (Popup) and multi select (CheckboxPopup).
package selector

import (
	"context"

	"github.com/rs/zerolog"
)

// FetchFunc loads one page (1 based) of items matching term.
type FetchFunc[T any] func(ctx context.Context, page int, term string) ([]T, error)

// list is the paging state shared by both popups.
type list[T any] struct {
	fetch FetchFunc[T]
	log   zerolog.Logger

	open    bool
	items   []T
	page    int
	term    string
	loading bool

	// OnClose runs whenever the popup closes, by selection or cancel.
	OnClose func()
}

// IsOpen reports whether the popup is shown.
func (l *list[T]) IsOpen() bool { return l.open }

// Items the rows currently shown.
func (l *list[T]) Items() []T { return l.items }

// Page the page currently shown.
func (l *list[T]) Page() int { return l.page }

// Term the active search term.
func (l *list[T]) Term() string { return l.term }

// Loading reports a fetch in flight.
func (l *list[T]) Loading() bool { return l.loading }

// Search refetches page 1 with term, replacing the rows. Ignored while closed.
func (l *list[T]) Search(ctx context.Context, term string) {
	if !l.open {
		return
	}
	l.load(ctx, 1, term)
}

// NextPage shows the following page. An empty page leaves the current rows and
// returns false.
func (l *list[T]) NextPage(ctx context.Context) bool {
	if !l.open {
		return false
	}
	prev, prevPage := l.items, l.page
	l.load(ctx, l.page+1, l.term)
	if len(l.items) == 0 {
		l.items, l.page = prev, prevPage
		return false
	}
	return true
}

// PrevPage shows the previous page; false on page 1.
func (l *list[T]) PrevPage(ctx context.Context) bool {
	if !l.open || l.page <= 1 {
		return false
	}
	l.load(ctx, l.page-1, l.term)
	return true
}

// Escape closes without selecting.
func (l *list[T]) Escape() { l.close() }

// ClickOutside closes without selecting.
func (l *list[T]) ClickOutside() { l.close() }

func (l *list[T]) openAt(ctx context.Context) {
	l.open = true
	l.load(ctx, 1, "")
}

// load fetches a page. Failures leave the list empty and are logged; there is no retry.
func (l *list[T]) load(ctx context.Context, page int, term string) {
	l.loading = true
	items, err := l.fetch(ctx, page, term)
	l.loading = false
	l.page, l.term = page, term
	if err != nil {
		l.log.Error().Err(err).Int("page", page).Str("term", term).Msg("popup fetch failed")
		l.items = nil
		return
	}
	l.items = items
}

func (l *list[T]) close() {
	if !l.open {
		return
	}
	l.open = false
	if l.OnClose != nil {
		l.OnClose()
	}
}

// Popup picks one row.
type Popup[T any] struct {
	list[T]
	OnSelect func(T)
}

// NewPopup builds a closed single select popup.
func NewPopup[T any](fetch FetchFunc[T], onSelect func(T), log zerolog.Logger) *Popup[T] {
	return &Popup[T]{list: list[T]{fetch: fetch, log: log}, OnSelect: onSelect}
}

// Open shows the popup with the first unfiltered page.
func (p *Popup[T]) Open(ctx context.Context) { p.openAt(ctx) }

// Select closes the popup and hands row i to OnSelect exactly once.
func (p *Popup[T]) Select(i int) bool {
	if !p.open || i < 0 || i >= len(p.items) {
		return false
	}
	item := p.items[i]
	p.close()
	if p.OnSelect != nil {
		p.OnSelect(item)
	}
	return true
}

// CheckboxPopup picks a set of rows, identified by Code.
type CheckboxPopup[T any] struct {
	list[T]
	Code     func(T) string
	OnSelect func([]T)

	// InitialSelected is the selection restored on Open.
	InitialSelected []T

	selected map[string]T
	order    []string
}

// NewCheckboxPopup builds a closed multi select popup.
func NewCheckboxPopup[T any](fetch FetchFunc[T], code func(T) string, onSelect func([]T), log zerolog.Logger) *CheckboxPopup[T] {
	return &CheckboxPopup[T]{
		list:     list[T]{fetch: fetch, log: log},
		Code:     code,
		OnSelect: onSelect,
		selected: map[string]T{},
	}
}

// Open shows the first page with InitialSelected checked.
func (p *CheckboxPopup[T]) Open(ctx context.Context) {
	p.selected, p.order = map[string]T{}, nil
	for _, it := range p.InitialSelected {
		p.add(it)
	}
	p.openAt(ctx)
}

// IsSelected reports whether code is checked.
func (p *CheckboxPopup[T]) IsSelected(code string) bool {
	_, ok := p.selected[code]
	return ok
}

// Toggle flips code. Unknown codes that are not selected are ignored.
func (p *CheckboxPopup[T]) Toggle(code string) {
	if p.IsSelected(code) {
		p.remove(code)
		return
	}
	for _, it := range p.items {
		if p.Code(it) == code {
			p.add(it)
			return
		}
	}
}

// AllSelected is the "select all" box: true iff every visible row is checked.
func (p *CheckboxPopup[T]) AllSelected() bool {
	if len(p.items) == 0 {
		return false
	}
	for _, it := range p.items {
		if !p.IsSelected(p.Code(it)) {
			return false
		}
	}
	return true
}

// ToggleAll checks every visible row, or unchecks them when all are checked.
func (p *CheckboxPopup[T]) ToggleAll() {
	if p.AllSelected() {
		for _, it := range p.items {
			p.remove(p.Code(it))
		}
		return
	}
	for _, it := range p.items {
		p.add(it)
	}
}

// Selected the checked rows in the order they were checked.
func (p *CheckboxPopup[T]) Selected() []T {
	out := make([]T, 0, len(p.order))
	for _, code := range p.order {
		out = append(out, p.selected[code])
	}
	return out
}

// Clear empties the selection and tells the caller right away.
func (p *CheckboxPopup[T]) Clear() {
	p.selected, p.order = map[string]T{}, nil
	if p.OnSelect != nil {
		p.OnSelect([]T{})
	}
}

// Confirm hands the selection to OnSelect and closes. Ignored while closed.
func (p *CheckboxPopup[T]) Confirm() {
	if !p.open {
		return
	}
	sel := p.Selected()
	p.close()
	if p.OnSelect != nil {
		p.OnSelect(sel)
	}
}

func (p *CheckboxPopup[T]) add(it T) {
	code := p.Code(it)
	if _, ok := p.selected[code]; ok {
		return
	}
	p.selected[code] = it
	p.order = append(p.order, code)
}

func (p *CheckboxPopup[T]) remove(code string) {
	if _, ok := p.selected[code]; !ok {
		return
	}
	delete(p.selected, code)
	for i, c := range p.order {
		if c == code {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}
