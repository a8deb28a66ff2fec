// Package grid is the spreadsheet-like report view: cell cursor, inline
// editing, row append, confirmed cell clearing, date range filter and totals.
package grid

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout the DD-MM-YYYY form dates are shown and edited in.
const DateLayout = "02-01-2006"

// isoLayout the YYYY-MM-DD form of the date range inputs.
const isoLayout = "2006-01-02"

var numberPattern = regexp.MustCompile(`^-?\d*(\.\d{0,2})?$`)

// Key a key press the grid reacts to.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyF2
	KeyEscape
	KeyDelete
	KeyF4
)

// Column describes one grid column. Numeric columns are totalled.
type Column struct {
	Key     string
	Title   string
	Numeric bool
	Date    bool
}

// Cell a position in the displayed rows.
type Cell struct {
	Row int
	Col int
}

// Grid holds every row; Filter decides which of them are displayed.
type Grid struct {
	Columns []Column
	Rows    [][]string

	Cursor        Cell
	Editing       bool
	Draft         string
	PendingDelete *Cell
	Err           string

	shown    []int
	from, to time.Time
}

// New builds a grid showing all rows.
func New(cols []Column, rows [][]string) *Grid {
	g := &Grid{Columns: cols}
	for _, r := range rows {
		g.Rows = append(g.Rows, g.fit(r))
	}
	g.refilter()
	return g
}

func (g *Grid) fit(r []string) []string {
	row := make([]string, len(g.Columns))
	copy(row, r)
	return row
}

// Displayed the rows that pass the filter, in order.
func (g *Grid) Displayed() [][]string {
	out := make([][]string, len(g.shown))
	for i, idx := range g.shown {
		out[i] = g.Rows[idx]
	}
	return out
}

// Value the text of a displayed cell.
func (g *Grid) Value(c Cell) string {
	if !g.valid(c) {
		return ""
	}
	return g.Rows[g.shown[c.Row]][c.Col]
}

func (g *Grid) valid(c Cell) bool {
	return c.Row >= 0 && c.Row < len(g.shown) && c.Col >= 0 && c.Col < len(g.Columns)
}

// Filter narrows the displayed rows to dates in [fromISO, toISO]. Either bound
// may be empty. Rows with a blank date are always shown so new rows stay
// editable.
func (g *Grid) Filter(fromISO, toISO string) error {
	from, err := parseBound(fromISO)
	if err != nil {
		return fmt.Errorf("grid: from date: %w", err)
	}
	to, err := parseBound(toISO)
	if err != nil {
		return fmt.Errorf("grid: to date: %w", err)
	}
	g.from, g.to = from, to
	g.refilter()
	return nil
}

func parseBound(s string) (time.Time, error) {
	if s = strings.TrimSpace(s); s == "" {
		return time.Time{}, nil
	}
	return time.Parse(isoLayout, s)
}

func (g *Grid) refilter() {
	dateCol := g.dateColumn()
	g.shown = g.shown[:0]
	for i, r := range g.Rows {
		if dateCol < 0 || g.inRange(r[dateCol]) {
			g.shown = append(g.shown, i)
		}
	}
	g.clampCursor()
}

func (g *Grid) dateColumn() int {
	for i, c := range g.Columns {
		if c.Date {
			return i
		}
	}
	return -1
}

func (g *Grid) inRange(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return g.from.IsZero() && g.to.IsZero()
	}
	if !g.from.IsZero() && d.Before(g.from) {
		return false
	}
	if !g.to.IsZero() && d.After(g.to) {
		return false
	}
	return true
}

func (g *Grid) clampCursor() {
	if g.Cursor.Row >= len(g.shown) {
		g.Cursor.Row = len(g.shown) - 1
	}
	if g.Cursor.Row < 0 {
		g.Cursor.Row = 0
	}
	if g.Cursor.Col >= len(g.Columns) {
		g.Cursor.Col = len(g.Columns) - 1
	}
	if g.Cursor.Col < 0 {
		g.Cursor.Col = 0
	}
}

// Totals sums every numeric column over the displayed rows. Blank and
// unparsable cells count as zero.
func (g *Grid) Totals() map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for i, c := range g.Columns {
		if !c.Numeric {
			continue
		}
		sum := decimal.Zero
		for _, idx := range g.shown {
			if d, err := decimal.NewFromString(strings.TrimSpace(g.Rows[idx][i])); err == nil {
				sum = sum.Add(d)
			}
		}
		out[c.Key] = sum
	}
	return out
}

// Click moves the cursor; a pending edit is committed first.
func (g *Grid) Click(c Cell) {
	if !g.valid(c) {
		return
	}
	if g.Editing && !g.Commit() {
		return
	}
	g.Cursor = c
}

// DoubleClick starts editing the cell.
func (g *Grid) DoubleClick(c Cell) {
	g.Click(c)
	if g.Cursor == c {
		g.BeginEdit()
	}
}

// BeginEdit copies the cell into Draft.
func (g *Grid) BeginEdit() bool {
	if !g.valid(g.Cursor) {
		return false
	}
	g.Editing = true
	g.Draft = g.Value(g.Cursor)
	g.Err = ""
	return true
}

// Type replaces the draft while editing.
func (g *Grid) Type(s string) {
	if g.Editing {
		g.Draft = s
	}
}

// Commit writes the draft into the cell. Numeric cells take up to two
// decimals and date cells DD-MM-YYYY; a rejected draft keeps editing.
func (g *Grid) Commit() bool {
	if !g.Editing {
		return false
	}
	col := g.Columns[g.Cursor.Col]
	v := strings.TrimSpace(g.Draft)
	switch {
	case col.Numeric && !numberPattern.MatchString(v):
		g.Err = fmt.Sprintf("%s must be a number with up to 2 decimals.", col.Title)
		return false
	case col.Date && v != "":
		if _, err := time.Parse(DateLayout, v); err != nil {
			g.Err = fmt.Sprintf("%s must be a date as DD-MM-YYYY.", col.Title)
			return false
		}
	}
	g.Rows[g.shown[g.Cursor.Row]][g.Cursor.Col] = v
	g.Editing, g.Draft, g.Err = false, "", ""
	return true
}

// CancelEdit drops the draft.
func (g *Grid) CancelEdit() {
	g.Editing, g.Draft, g.Err = false, "", ""
}

// AppendRow adds a blank row and puts the cursor on its first cell.
func (g *Grid) AppendRow() {
	g.Rows = append(g.Rows, make([]string, len(g.Columns)))
	g.shown = append(g.shown, len(g.Rows)-1)
	g.Cursor = Cell{Row: len(g.shown) - 1}
}

// ConfirmDelete clears the cell awaiting confirmation.
func (g *Grid) ConfirmDelete() {
	if g.PendingDelete == nil {
		return
	}
	c := *g.PendingDelete
	g.PendingDelete = nil
	if g.valid(c) {
		g.Rows[g.shown[c.Row]][c.Col] = ""
	}
}

// CancelDelete keeps the cell.
func (g *Grid) CancelDelete() { g.PendingDelete = nil }

// HandleKey applies a key and reports whether it was used. While a delete
// confirmation is open only the dialog answers.
func (g *Grid) HandleKey(k Key) bool {
	if g.PendingDelete != nil {
		return false
	}
	if g.Editing {
		switch k {
		case KeyEnter:
			return g.Commit()
		case KeyEscape:
			g.CancelEdit()
			return true
		}
		return false
	}
	switch k {
	case KeyUp:
		return g.move(-1, 0)
	case KeyDown:
		return g.move(1, 0)
	case KeyLeft:
		return g.move(0, -1)
	case KeyRight:
		return g.move(0, 1)
	case KeyEnter, KeyF2:
		return g.BeginEdit()
	case KeyDelete:
		if !g.valid(g.Cursor) {
			return false
		}
		c := g.Cursor
		g.PendingDelete = &c
		return true
	case KeyF4:
		g.AppendRow()
		return true
	}
	return false
}

func (g *Grid) move(dr, dc int) bool {
	next := Cell{Row: g.Cursor.Row + dr, Col: g.Cursor.Col + dc}
	if !g.valid(next) {
		return false
	}
	g.Cursor = next
	return true
}
