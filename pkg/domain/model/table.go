package model

// Table is a column-ordered tabular dataset. Census APIs return every
// value as a string, so rows keep string cells and numeric conversion is
// left to the caller.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column, or nil if absent.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Head returns a table with the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// DropColumns removes the named columns from the table in place.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[int]bool, len(names))
	for _, n := range names {
		if idx := t.ColumnIndex(n); idx >= 0 {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	keepCols := make([]string, 0, len(t.Columns)-len(drop))
	for i, c := range t.Columns {
		if !drop[i] {
			keepCols = append(keepCols, c)
		}
	}
	for r, row := range t.Rows {
		keep := make([]string, 0, len(keepCols))
		for i, cell := range row {
			if !drop[i] {
				keep = append(keep, cell)
			}
		}
		t.Rows[r] = keep
	}
	t.Columns = keepCols
}

// AddColumn appends a column. Value count must match the row count.
func (t *Table) AddColumn(name string, values []string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		t.Rows[i] = append(t.Rows[i], v)
	}
}
