package model

// Filters maps a source column name to the list of values a row may carry in
// that column. Columns without an entry pass all values; columns are
// AND-combined, values within a column OR-combined.
type Filters map[string][]string

// IsEmpty reports whether no column carries a non-empty inclusion list.
func (f Filters) IsEmpty() bool {
	for _, values := range f {
		if len(values) > 0 {
			return false
		}
	}
	return true
}
