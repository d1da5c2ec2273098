package table

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tabkit/internal/header"
)

const maxSheetName = 31

// ReadXLSX reads every sheet of a workbook, or only sheet when it is not
// empty. The first non-empty row of a sheet is its header; sheets with no
// rows are skipped.
func ReadXLSX(r io.Reader, sheet string) ([]*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet != "" {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
		sheets = []string{sheet}
	}

	out := []*Table{}
	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		start := firstNonEmpty(rows)
		if start < 0 {
			continue
		}
		out = append(out, New(name, rows[start], rows[start+1:]))
	}
	return out, nil
}

// LoadXLSX reads the workbook at path.
func LoadXLSX(path, sheet string) ([]*Table, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadXLSX(bytes.NewReader(blob), sheet)
}

// WriteXLSX saves tables to one workbook, one sheet per table, with the
// repaired header as the first row.
func WriteXLSX(outputPath string, tables ...*Table) error {
	f := excelize.NewFile()
	defer f.Close()

	used := map[string]struct{}{}
	for i, t := range tables {
		sheet := sheetName(t.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		for c, h := range t.Header {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			_ = f.SetCellValue(sheet, cell, h)
		}
		for r, row := range t.Rows {
			for c, v := range row {
				if v == "" {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func sheetName(name string, i int, used map[string]struct{}) string {
	s := header.Repair([]string{name})[0]
	if len(s) > maxSheetName {
		s = s[:maxSheetName]
	}
	for n := i + 1; ; n++ {
		if _, ok := used[s]; !ok {
			break
		}
		s = fmt.Sprintf("SHEET%d", n)
	}
	used[s] = struct{}{}
	return s
}

func firstNonEmpty(rows [][]string) int {
	for i, row := range rows {
		for _, c := range row {
			if c != "" {
				return i
			}
		}
	}
	return -1
}
