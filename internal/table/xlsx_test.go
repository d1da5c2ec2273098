package table

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func mkXLSX(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, f.SetCellValue(name, cell, v))
			}
		}
	}
	buf := bytes.NewBuffer(nil)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	blob := mkXLSX(t, map[string][][]any{
		"Data": {
			{},
			{"Product Name", "Qty #", "Unit"},
			{"Cable", 10, "pc"},
			{"Wire", 2},
		},
	})
	tables, err := ReadXLSX(bytes.NewReader(blob), "")
	require.NoError(t, err)
	require.Len(t, tables, 1)

	tb := tables[0]
	assert.Equal(t, "Data", tb.Name)
	assert.Equal(t, []string{"PRODUCT_NAME", "QTY_NUMBER_", "UNIT"}, tb.Header)
	assert.Equal(t, [][]string{{"Cable", "10", "pc"}, {"Wire", "2", ""}}, tb.Rows)
}

func TestReadXLSXSheet(t *testing.T) {
	blob := mkXLSX(t, map[string][][]any{"One": {{"a"}, {"1"}}})
	_, err := ReadXLSX(bytes.NewReader(blob), "Two")
	require.Error(t, err)

	tables, err := ReadXLSX(bytes.NewReader(blob), "One")
	require.NoError(t, err)
	require.Len(t, tables, 1)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out.xlsx")
	a := New("first table", []string{"Name", "Gold%"}, [][]string{{"x", "1"}, {"y", ""}})
	b := New("first table", []string{"k"}, [][]string{{"v"}})
	require.NoError(t, WriteXLSX(out, a, b))

	tables, err := LoadXLSX(out, "")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "FIRST_TABLE", tables[0].Name)
	assert.Equal(t, "SHEET2", tables[1].Name)
	assert.Equal(t, []string{"NAME", "GOLD_PERCENT_"}, tables[0].Header)
	assert.Equal(t, [][]string{{"x", "1"}, {"y", ""}}, tables[0].Rows)
}

func TestWriteXLSXSheetFallbackTaken(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.xlsx")
	a := New("sheet3", []string{"a"}, [][]string{{"1"}})
	b := New("a", []string{"b"}, [][]string{{"2"}})
	c := New("a", []string{"c"}, [][]string{{"3"}})
	require.NoError(t, WriteXLSX(out, a, b, c))

	tables, err := LoadXLSX(out, "")
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, "SHEET3", tables[0].Name)
	assert.Equal(t, "A", tables[1].Name)
	assert.Equal(t, "SHEET4", tables[2].Name)
	assert.Equal(t, [][]string{{"3"}}, tables[2].Rows)
}
