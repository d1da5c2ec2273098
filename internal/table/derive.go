package table

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tabkit/internal/util"
)

// ErrUnknownFunc is returned by Derive for a function it does not know.
var ErrUnknownFunc = errors.New("table: unknown function")

// Derive appends a column computed cell by cell from column with a
// spreadsheet function and returns the new column's name. fn is one of
// left:N, right:N, mid:START:N, trim, year, month, day, quarter, weekday
// or yearmonth. Date functions leave blank cells where the source is not a
// date.
func Derive(t *Table, column, fn string) (string, error) {
	apply, err := cellFunc(fn)
	if err != nil {
		return "", err
	}
	idx, err := t.Index(column)
	if err != nil {
		return "", err
	}

	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if strings.TrimSpace(row[idx]) == "" {
			continue
		}
		cells[i] = apply(row[idx])
	}
	name := strings.ReplaceAll(fn, ":", " ")
	return t.AddColumn(t.Original[idx]+" "+name, cells)
}

func cellFunc(fn string) (func(string) string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(fn)), ":")
	args := make([]int, 0, len(parts)-1)
	for _, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q has a non-numeric argument", ErrUnknownFunc, fn)
		}
		args = append(args, n)
	}
	arity := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s takes %d arguments", ErrUnknownFunc, parts[0], n)
		}
		return nil
	}
	datePart := func(part func(time.Time) string) (func(string) string, error) {
		if err := arity(0); err != nil {
			return nil, err
		}
		return func(s string) string {
			d, err := util.ParseDate(s)
			if err != nil {
				return ""
			}
			return part(d)
		}, nil
	}
	itoa := func(part func(time.Time) int) func(time.Time) string {
		return func(d time.Time) string { return strconv.Itoa(part(d)) }
	}

	switch parts[0] {
	case "left":
		if err := arity(1); err != nil {
			return nil, err
		}
		return func(s string) string { return util.Left(s, args[0]) }, nil
	case "right":
		if err := arity(1); err != nil {
			return nil, err
		}
		return func(s string) string { return util.Right(s, args[0]) }, nil
	case "mid":
		if err := arity(2); err != nil {
			return nil, err
		}
		return func(s string) string { return util.Mid(s, args[0], args[1]) }, nil
	case "trim":
		if err := arity(0); err != nil {
			return nil, err
		}
		return util.Trim, nil
	case "year":
		return datePart(itoa(util.Year))
	case "month":
		return datePart(itoa(util.Month))
	case "day":
		return datePart(itoa(util.Day))
	case "quarter":
		return datePart(itoa(util.Quarter))
	case "weekday":
		return datePart(itoa(util.Weekday))
	case "yearmonth":
		return datePart(util.YearMonth)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, fn)
}

// BlockMeans averages column over consecutive blocks of size rows. Blank
// and non-numeric cells are skipped; a block without numbers is NaN.
func BlockMeans(t *Table, column string, size int) ([]float64, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(cells))
	for i, c := range cells {
		v, err := util.ParseNumber(c)
		if err != nil {
			values[i] = math.NaN()
			continue
		}
		values[i] = v
	}
	return util.PiecewiseMean(values, size), nil
}
