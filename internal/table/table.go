// Package table models the rendered data table of an entity page: ordered
// rows keyed by their formatted identifier, a filtered view for search, and
// an in-place patch operation for post-edit updates.
package table

import (
	"strings"
	"sync"
)

// CellStyle drives how a cell renders and how exports color it.
type CellStyle int

const (
	// StylePlain renders bare text.
	StylePlain CellStyle = iota

	// StyleIDBadge renders a neutral identifier badge.
	StyleIDBadge

	// StyleCountSuccess renders a green numeric badge (available copies).
	StyleCountSuccess

	// StyleCountWarning renders an amber numeric badge (loaned copies).
	StyleCountWarning

	// StyleStatus renders the two-valued status badge; the visual follows
	// the value (Activo → success, Inactivo → danger).
	StyleStatus
)

// Cell is one rendered table cell. Text is what the filter and the exports
// see; Extra is a trailing identifier badge shown next to display names of
// foreign references.
type Cell struct {
	Text  string
	Style CellStyle
	Extra string
}

// Row is one rendered table row.
type Row struct {
	// Key is the backend-supplied formatted identifier; Patch matches it
	// exactly, never partially.
	Key string

	// ID is the raw primary key carried by the row's action controls.
	ID int64

	Cells []Cell

	// CanEdit reflects the viewer's role; read-only users see fewer actions.
	CanEdit bool
}

// Table is the mutable model behind one entity page.
type Table struct {
	mu      sync.RWMutex
	columns []string
	rows    []Row
	index   map[string]int
}

// New creates an empty table with the given column headers.
func New(columns ...string) *Table {
	return &Table{
		columns: columns,
		index:   make(map[string]int),
	}
}

// Columns returns the header names.
func (t *Table) Columns() []string {
	return t.columns
}

// Load replaces the table contents with the initial page load.
func (t *Table) Load(rows []Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = make([]Row, len(rows))
	copy(t.rows, rows)
	t.reindex()
}

// Append adds a freshly created row at the end of the table.
func (t *Table) Append(row Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
	t.index[row.Key] = len(t.rows) - 1
}

// Patch overwrites only the cells whose values can change, located by the
// row's formatted identifier. A missing row makes the patch a silent no-op
// (the row always exists after a successful edit of a listed entity);
// the return value reports whether a row was touched.
func (t *Table) Patch(key string, cells map[int]Cell) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[key]
	if !ok {
		return false
	}

	// Copy-on-write: snapshots handed out by Rows and Filter share the
	// cell backing arrays, so mutate a fresh slice instead.
	row := &t.rows[pos]
	patched := make([]Cell, len(row.Cells))
	copy(patched, row.Cells)
	for i, cell := range cells {
		if i >= 0 && i < len(patched) {
			patched[i] = cell
		}
	}
	row.Cells = patched
	return true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Rows returns a copy of all rows in order.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the row with the given formatted identifier.
func (t *Table) Row(key string) (Row, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	pos, ok := t.index[key]
	if !ok {
		return Row{}, false
	}
	return t.rows[pos], true
}

// Filter returns the rows matching a case-insensitive substring search over
// every cell's text, mirroring the table widget's search box. An empty query
// returns all rows. Exports read this filtered view, never the full set.
func (t *Table) Filter(query string) []Row {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return t.Rows()
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Row
	for _, row := range t.rows {
		if rowMatches(row, query) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row Row, query string) bool {
	for _, cell := range row.Cells {
		if strings.Contains(strings.ToLower(cell.Text), query) {
			return true
		}
		if cell.Extra != "" && strings.Contains(strings.ToLower(cell.Extra), query) {
			return true
		}
	}
	return false
}

// reindex rebuilds the key index; callers hold the write lock.
func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.rows))
	for i, row := range t.rows {
		t.index[row.Key] = i
	}
}
