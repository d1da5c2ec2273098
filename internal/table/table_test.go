package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepairsHeaderAndFitsRows(t *testing.T) {
	tb := New("people", []string{"Vict Age", "Vict Age", "100"}, [][]string{
		{"1", "2"},
		{"1", "2", "3", "4"},
	})
	assert.Equal(t, []string{"VICT_AGE___1", "VICT_AGE___2", "X___3"}, tb.Header)
	assert.Equal(t, []string{"Vict Age", "Vict Age", "100"}, tb.Original)
	assert.Equal(t, [][]string{{"1", "2", ""}, {"1", "2", "3"}}, tb.Rows)
	assert.Equal(t, 3, tb.Width())
	assert.Equal(t, 2, tb.Len())
}

func TestIndexAndColumn(t *testing.T) {
	tb := New("t", []string{"State Code", "Gold%"}, [][]string{{"CA", "1"}, {"FL", "2"}})

	idx, err := tb.Index("GOLD_PERCENT_")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = tb.Index(" state code ")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	col, err := tb.Column("STATE_CODE")
	require.NoError(t, err)
	assert.Equal(t, []string{"CA", "FL"}, col)

	_, err = tb.Column("missing")
	require.ErrorIs(t, err, ErrNoColumn)
}

func TestIndexPartialLabel(t *testing.T) {
	tb := New("t", []string{"Region", "Population %", "Pop. density", "Gold%"}, nil)

	idx, err := tb.Index("region")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = tb.Index("density")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = tb.Index("GOLD")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = tb.Index("pop")
	require.ErrorIs(t, err, ErrAmbiguousColumn)

	_, err = tb.Index("  ")
	require.ErrorIs(t, err, ErrNoColumn)
}

func TestAddColumn(t *testing.T) {
	tb := New("t", []string{"name", "Name 2"}, [][]string{{"a", "1"}, {"b", "2"}})

	got, err := tb.AddColumn("Name", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "NAME_3", got)
	assert.Equal(t, []string{"NAME", "NAME_2", "NAME_3"}, tb.Header)
	assert.Equal(t, []string{"name", "Name 2", "Name 3"}, tb.Original)
	assert.Equal(t, [][]string{{"a", "1", "x"}, {"b", "2", "y"}}, tb.Rows)

	got, err = tb.AddColumn("", []string{"", ""})
	require.NoError(t, err)
	assert.Equal(t, "X___4", got)
	assert.Equal(t, "NAME", tb.Header[0])

	_, err = tb.AddColumn("other", []string{"z"})
	require.Error(t, err)
}

func TestAddColumnKeepsDuplicatedNames(t *testing.T) {
	tb := New("t", []string{"a", "a"}, [][]string{{"1", "2"}})
	got, err := tb.AddColumn("A", []string{"3"})
	require.NoError(t, err)
	assert.Equal(t, "A___3", got)
	assert.Equal(t, []string{"A___1", "A___2", "A___3"}, tb.Header)
}
