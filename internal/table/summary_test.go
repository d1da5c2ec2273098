package table

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tb := New("t", []string{"Age", "Name", "Joined", "Notes"}, [][]string{
		{"30", "bob", "2024-01-05", ""},
		{"1 000", "amy", "2023-12-31", ""},
		{"", "bob", "", ""},
		{"2,5", "Cy", "2024-02-01", ""},
	})
	got := Summarize(tb)
	require.Len(t, got, 4)

	age := got[0]
	assert.Equal(t, "AGE", age.Name)
	assert.Equal(t, "Age", age.Original)
	assert.Equal(t, KindNumeric, age.Kind)
	assert.Equal(t, 3, age.Count)
	assert.Equal(t, 1, age.Missing)
	assert.Equal(t, "2.5", age.Min)
	assert.Equal(t, "1000", age.Max)
	assert.InDelta(t, 344.1667, age.Mean, 1e-3)

	name := got[1]
	assert.Equal(t, KindText, name.Kind)
	assert.Equal(t, 3, name.Unique)
	assert.Equal(t, "bob", name.Top)
	assert.Equal(t, 2, name.TopCount)
	assert.Equal(t, "Cy", name.Min)
	assert.Equal(t, "bob", name.Max)
	assert.True(t, math.IsNaN(name.Mean))

	joined := got[2]
	assert.Equal(t, KindDate, joined.Kind)
	assert.Equal(t, "2023-12-31", joined.Min)
	assert.Equal(t, "2024-02-01", joined.Max)
	assert.Equal(t, 3, joined.Months)
	assert.Equal(t, 2, joined.Quarters)
	assert.Equal(t, "3 months, 2 quarters", joined.row()[10])

	notes := got[3]
	assert.Equal(t, KindEmpty, notes.Kind)
	assert.Equal(t, 4, notes.Missing)
	assert.Equal(t, 0, notes.Count)
}

func TestWriteSummary(t *testing.T) {
	tb := New("t", []string{"Gold%"}, [][]string{{"1"}, {"3"}})
	var buf bytes.Buffer
	WriteSummary(&buf, Summarize(tb))
	out := buf.String()
	assert.Contains(t, out, "GOLD_PERCENT_")
	assert.Contains(t, out, "Gold%")
	assert.Contains(t, out, "numeric")
	assert.Contains(t, out, "2.0000")
}

func TestSummaryTable(t *testing.T) {
	tb := New("t", []string{"a", "b"}, [][]string{{"x", "1"}})
	st := SummaryTable("summary", Summarize(tb))
	assert.Equal(t, "summary", st.Name)
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, "COLUMN", st.Header[0])
	assert.Equal(t, "A", st.Rows[0][0])
}
