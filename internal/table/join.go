package table

import (
	"strings"

	"tabkit/internal/lookup"
)

// Join looks every cell of column on in left up in column key of right and
// appends the matching cells of column value to left, XLOOKUP style. Blank
// cells are NA on both sides; unmatched rows get a blank cell. The new
// column takes value's original label (see AddColumn for collisions) and
// its repaired name is returned. Columns already in left are not renamed.
func Join(left *Table, on string, right *Table, key, value string, opts ...lookup.Option) (string, error) {
	queries, err := left.Column(on)
	if err != nil {
		return "", err
	}
	keys, err := right.Column(key)
	if err != nil {
		return "", err
	}
	values, err := right.Column(value)
	if err != nil {
		return "", err
	}
	vidx, _ := right.Index(value)

	opts = append([]lookup.Option{lookup.WithValues(cellValues(values))}, opts...)
	resolved, err := lookup.Lookup(cellValues(queries), cellValues(keys), opts...)
	if err != nil {
		return "", err
	}

	out := make([]string, len(resolved))
	for i, v := range resolved {
		if !lookup.IsNA(v) {
			out[i] = lookup.Key(v)
		}
	}
	return left.AddColumn(right.Original[vidx], out)
}

func cellValues(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			out[i] = lookup.NA
			continue
		}
		out[i] = c
	}
	return out
}
