// Package table loads tabular data with repaired headers, summarizes its
// columns and joins tables through lookup.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"tabkit/internal/header"
)

// ErrNoColumn is returned when a column name matches neither a repaired
// nor an original header.
var ErrNoColumn = errors.New("table: no such column")

// ErrAmbiguousColumn is returned when a partial column name fits several
// columns.
var ErrAmbiguousColumn = errors.New("table: ambiguous column")

// Table is a rectangular block of string cells. Header holds the repaired
// names and Original the labels they were repaired from, position by
// position. Blank cells stand for missing values.
type Table struct {
	Name     string
	Header   []string
	Original []string
	Rows     [][]string
}

// New builds a table from a raw header row and data rows. Rows are padded
// or truncated to the header width.
func New(name string, original []string, rows [][]string) *Table {
	width := len(original)
	fitted := make([][]string, 0, len(rows))
	for _, row := range rows {
		fitted = append(fitted, fit(row, width))
	}
	return &Table{
		Name:     name,
		Header:   header.Repair(original),
		Original: append([]string(nil), original...),
		Rows:     fitted,
	}
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Header) }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index resolves name to a column position. Repaired names match exactly;
// original labels match ignoring case and surrounding whitespace. Failing
// both, name may be part of a single label, so "pop" finds "Population %"
// unless another column contains "pop" too.
func (t *Table) Index(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	want := strings.TrimSpace(name)
	for i, o := range t.Original {
		if strings.EqualFold(strings.TrimSpace(o), want) {
			return i, nil
		}
	}
	if want != "" {
		find := header.NewFinder(want)
		for _, labels := range [][]string{t.Original, t.Header} {
			i := find(labels)
			if i < 0 {
				continue
			}
			if find(labels[i+1:]) >= 0 {
				return -1, fmt.Errorf("%w: %q matches more than one column in %s", ErrAmbiguousColumn, name, t.Name)
			}
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q in %s", ErrNoColumn, name, t.Name)
}

// Column returns a copy of the cells of column name.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.Index(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[idx])
	}
	return out, nil
}

// AddColumn appends a column labelled original and returns its repaired
// name. Existing columns keep their names: when the label would collide
// with one of them it becomes "original 2", "original 3" and so on.
func (t *Table) AddColumn(original string, cells []string) (string, error) {
	if len(cells) != len(t.Rows) {
		return "", fmt.Errorf("table: column %q has %d cells, table has %d rows", original, len(cells), len(t.Rows))
	}
	label := original
	repaired := header.Repair(append(append([]string(nil), t.Original...), label))
	for n := 2; !slices.Equal(repaired[:len(t.Header)], t.Header); n++ {
		label = fmt.Sprintf("%s %d", original, n)
		repaired = header.Repair(append(append([]string(nil), t.Original...), label))
	}
	t.Original = append(t.Original, label)
	t.Header = repaired
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], cells[i])
	}
	return repaired[len(repaired)-1], nil
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
