package table

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"tabkit/internal/util"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindEmpty   Kind = "empty"
	KindNumeric Kind = "numeric"
	KindDate    Kind = "date"
	KindText    Kind = "text"
)

// ColumnSummary describes one column. Min and Max are numeric, date
// (2006-01-02) or lexical bounds depending on Kind; Mean is NaN unless the
// column is numeric.
type ColumnSummary struct {
	Name     string
	Original string
	Kind     Kind
	Count    int
	Missing  int
	Unique   int
	Min      string
	Max      string
	Mean     float64
	Top      string
	TopCount int
	Months   int
	Quarters int
}

// Summarize reports on every column of t, in header order.
func Summarize(t *Table) []ColumnSummary {
	out := make([]ColumnSummary, 0, t.Width())
	for i, name := range t.Header {
		cells := make([]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			cells = append(cells, row[i])
		}
		s := summarizeColumn(cells)
		s.Name = name
		s.Original = t.Original[i]
		out = append(out, s)
	}
	return out
}

func summarizeColumn(cells []string) ColumnSummary {
	s := ColumnSummary{Mean: math.NaN()}
	counts := map[string]int{}
	var present []string
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			s.Missing++
			continue
		}
		if counts[c] == 0 {
			present = append(present, c)
		}
		counts[c]++
	}
	s.Count = len(cells) - s.Missing
	s.Unique = len(present)
	if s.Count == 0 {
		s.Kind = KindEmpty
		return s
	}

	for _, c := range present {
		if counts[c] > s.TopCount {
			s.Top, s.TopCount = c, counts[c]
		}
	}

	if nums, ok := numbers(cells); ok {
		s.Kind = KindNumeric
		lo, hi := nums[0], nums[0]
		for _, v := range nums {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		s.Min = strconv.FormatFloat(lo, 'f', -1, 64)
		s.Max = strconv.FormatFloat(hi, 'f', -1, 64)
		s.Mean = util.Mean(nums)
		return s
	}

	if ds, ok := dates(cells); ok {
		s.Kind = KindDate
		sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
		s.Min = ds[0].Format("2006-01-02")
		s.Max = ds[len(ds)-1].Format("2006-01-02")
		months, quarters := map[string]bool{}, map[[2]int]bool{}
		for _, d := range ds {
			months[util.YearMonth(d)] = true
			quarters[[2]int{util.Year(d), util.Quarter(d)}] = true
		}
		s.Months, s.Quarters = len(months), len(quarters)
		return s
	}

	s.Kind = KindText
	sorted := append([]string(nil), present...)
	sort.Strings(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	return s
}

func numbers(cells []string) ([]float64, bool) {
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		v, err := util.ParseNumber(c)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func dates(cells []string) ([]time.Time, bool) {
	out := make([]time.Time, 0, len(cells))
	for _, c := range cells {
		if strings.TrimSpace(c) == "" {
			continue
		}
		d, err := util.ParseDate(c)
		if err != nil {
			return nil, false
		}
		out = append(out, d)
	}
	return out, true
}

var summaryHeader = []string{"column", "original", "kind", "count", "missing", "unique", "min", "max", "mean", "top", "span"}

func (s ColumnSummary) row() []string {
	mean := ""
	if !math.IsNaN(s.Mean) {
		mean = strconv.FormatFloat(s.Mean, 'f', 4, 64)
	}
	top := ""
	if s.TopCount > 0 {
		top = s.Top + " (" + strconv.Itoa(s.TopCount) + ")"
	}
	span := ""
	if s.Kind == KindDate {
		span = strconv.Itoa(s.Months) + " months, " + strconv.Itoa(s.Quarters) + " quarters"
	}
	return []string{
		s.Name, s.Original, string(s.Kind),
		strconv.Itoa(s.Count), strconv.Itoa(s.Missing), strconv.Itoa(s.Unique),
		s.Min, s.Max, mean, top, span,
	}
}

// WriteSummary renders summaries as a text table.
func WriteSummary(w io.Writer, summaries []ColumnSummary) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(summaryHeader)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, s := range summaries {
		tw.Append(s.row())
	}
	tw.Render()
}

// SummaryTable lays summaries out as a table so they can be exported like
// any other data.
func SummaryTable(name string, summaries []ColumnSummary) *Table {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, s.row())
	}
	return New(name, summaryHeader, rows)
}
