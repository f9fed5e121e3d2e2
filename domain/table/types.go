package table

import "strings"

// Row is an ordered sequence of cell values, one slot per column,
// aligned to its table's header sequence.
type Row []string

// Clone returns an independent copy of the row. Transformations during
// classification always operate on a clone; source rows are never mutated.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// Get returns the cell at position i, or "" when the row is ragged
// and shorter than the header sequence.
func (r Row) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Set writes the cell at position i, growing the row if needed so that
// ragged input rows can still receive overwrites at header positions.
func (r *Row) Set(i int, value string) {
	if i < 0 {
		return
	}
	for len(*r) <= i {
		*r = append(*r, "")
	}
	(*r)[i] = value
}

// Table is a rectangular block of cells with a header row.
type Table struct {
	Name    string
	Headers []string
	Rows    []Row
}

// IsEmpty reports whether the table has no data rows
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// HeaderIndex maps trimmed column names to their positions.
// Built once from the header row.
type HeaderIndex map[string]int

// NewHeaderIndex builds the column-name index from a header row.
// Names are trimmed; on duplicates the first occurrence wins.
func NewHeaderIndex(headers []string) HeaderIndex {
	ix := make(HeaderIndex, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if _, exists := ix[name]; !exists {
			ix[name] = i
		}
	}
	return ix
}

// Lookup returns the position of a column by its trimmed name
func (ix HeaderIndex) Lookup(name string) (int, bool) {
	i, ok := ix[strings.TrimSpace(name)]
	return i, ok
}
