package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		fn   string
		name string
		want []string
	}{
		{fn: "left:2", name: "CODE_LEFT_2", want: []string{"CA", "NY", "", "  "}},
		{fn: "right:3", name: "CODE_RIGHT_3", want: []string{"-01", "-02", "", "  y"}},
		{fn: "mid:4:2", name: "CODE_MID_4_2", want: []string{"01", "02", "", "  "}},
		{fn: "trim", name: "CODE_TRIM", want: []string{"CA-01", "NY-02", "", "x y"}},
	}
	for _, tc := range cases {
		t.Run(tc.fn, func(t *testing.T) {
			tb := New("t", []string{"Code"}, [][]string{{"CA-01"}, {"NY-02"}, {""}, {"  x   y"}})
			name, err := Derive(tb, "code", tc.fn)
			require.NoError(t, err)
			assert.Equal(t, tc.name, name)
			col, err := tb.Column(name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, col)
		})
	}
}

func TestDeriveDateParts(t *testing.T) {
	tb := New("t", []string{"Joined"}, [][]string{{"2024-11-03"}, {"n/a"}, {"05.03.2024"}})

	want := map[string][]string{
		"year":      {"2024", "", "2024"},
		"month":     {"11", "", "3"},
		"day":       {"3", "", "5"},
		"quarter":   {"4", "", "1"},
		"weekday":   {"7", "", "2"},
		"yearmonth": {"2024-11", "", "2024-03"},
	}
	for _, fn := range []string{"year", "month", "day", "quarter", "weekday", "yearmonth"} {
		name, err := Derive(tb, "Joined", fn)
		require.NoError(t, err)
		col, err := tb.Column(name)
		require.NoError(t, err)
		assert.Equal(t, want[fn], col, fn)
	}
	assert.Equal(t, "JOINED", tb.Header[0])
}

func TestDeriveErrors(t *testing.T) {
	tb := New("t", []string{"a"}, [][]string{{"x"}})
	for _, fn := range []string{"upper", "left", "left:x", "mid:1", "year:2"} {
		_, err := Derive(tb, "a", fn)
		require.ErrorIs(t, err, ErrUnknownFunc, fn)
	}
	_, err := Derive(tb, "b", "trim")
	require.ErrorIs(t, err, ErrNoColumn)
	assert.Equal(t, 1, tb.Width())
}

func TestBlockMeans(t *testing.T) {
	tb := New("t", []string{"Sales"}, [][]string{{"1"}, {"3"}, {""}, {"n/a"}, {"1 000"}})
	got, err := BlockMeans(tb, "sales", 2)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 2.0, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, 1000.0, got[2])

	_, err = BlockMeans(tb, "nope", 2)
	require.ErrorIs(t, err, ErrNoColumn)
}
