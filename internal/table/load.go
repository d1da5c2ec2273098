package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options tune Load. Delimiter applies to delimited text, Sheet to
// workbooks.
type Options struct {
	Delimiter rune
	Sheet     string
}

// Load reads every table in the file at path, picking the reader by file
// extension.
func Load(path string, opts Options) ([]*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		t, err := LoadCSV(path, opts.Delimiter)
		if err != nil {
			return nil, err
		}
		return []*Table{t}, nil
	case ".tsv":
		t, err := LoadCSV(path, '\t')
		if err != nil {
			return nil, err
		}
		return []*Table{t}, nil
	case ".xlsx":
		return LoadXLSX(path, opts.Sheet)
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadHTML(f)
	case ".eml":
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ReadEmail(blob, opts.Delimiter)
	default:
		return nil, fmt.Errorf("unsupported input type: %s", path)
	}
}

// LoadOne is Load for callers that need exactly one table; it returns the
// first one found.
func LoadOne(path string, opts Options) (*Table, error) {
	tables, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no table found in %s", path)
	}
	return tables[0], nil
}
