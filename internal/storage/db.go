package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tabkit/internal/header"
	"tabkit/internal/table"
)

// ErrTableNotFound is returned when no table was saved under a name.
var ErrTableNotFound = errors.New("storage: table not found")

// ErrNameTaken is returned when a table name repairs to the stored name of
// a different table, as "a b" and "A-B" both do.
var ErrNameTaken = errors.New("storage: stored name taken by another table")

// rowColumn keeps row order. Repaired names never contain '#', so it
// cannot collide with a data column.
const rowColumn = "#row"

type DB struct {
	conn *sql.DB
}

// TableInfo describes a saved table.
type TableInfo struct {
	Name      string
	Source    string
	Columns   int
	Rows      int
	UpdatedAt string
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS tables (
  name TEXT PRIMARY KEY,
  source TEXT NOT NULL,
  columnCount INTEGER NOT NULL,
  rowCount INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS header_map (
  tableName TEXT NOT NULL,
  position INTEGER NOT NULL,
  original TEXT NOT NULL,
  repaired TEXT NOT NULL,
  PRIMARY KEY(tableName, position),
  FOREIGN KEY(tableName) REFERENCES tables(name)
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// TableName is the name a table is stored under: its own name, repaired
// and prefixed so it never clashes with the bookkeeping tables.
func TableName(name string) string {
	return "T_" + header.Repair([]string{name})[0]
}

// SaveTable stores t, replacing any table saved from the same name. Cells
// become TEXT columns named by the repaired header, blank cells become
// NULL, and the original header goes to header_map.
func (d *DB) SaveTable(t *table.Table) (string, error) {
	name := TableName(t.Name)

	tx, err := d.conn.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var source string
	err = tx.QueryRow(`SELECT source FROM tables WHERE name = ?`, name).Scan(&source)
	switch {
	case err == nil && source != t.Name:
		return "", fmt.Errorf("%w: %q and %q are both stored as %s", ErrNameTaken, source, t.Name, name)
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return "", err
	}

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + quote(name)); err != nil {
		return "", err
	}

	cols := make([]string, 0, t.Width()+1)
	cols = append(cols, quote(rowColumn)+" INTEGER PRIMARY KEY")
	for _, h := range t.Header {
		cols = append(cols, quote(h)+" TEXT")
	}
	if _, err := tx.Exec(fmt.Sprintf(`CREATE TABLE %s (%s)`, quote(name), strings.Join(cols, ", "))); err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if t.Width() > 0 && t.Len() > 0 {
		quoted := make([]string, 0, t.Width())
		for _, h := range t.Header {
			quoted = append(quoted, quote(h))
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", t.Width()), ", ")
		stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quote(name), strings.Join(quoted, ", "), placeholders))
		if err != nil {
			return "", err
		}
		defer stmt.Close()

		args := make([]any, t.Width())
		for _, row := range t.Rows {
			for i, cell := range row {
				if cell == "" {
					args[i] = nil
					continue
				}
				args[i] = cell
			}
			if _, err := stmt.Exec(args...); err != nil {
				return "", err
			}
		}
	}

	if _, err := tx.Exec(`DELETE FROM header_map WHERE tableName = ?`, name); err != nil {
		return "", err
	}
	for i := range t.Header {
		if _, err := tx.Exec(`INSERT INTO header_map (tableName, position, original, repaired) VALUES (?, ?, ?, ?)`,
			name, i, t.Original[i], t.Header[i]); err != nil {
			return "", err
		}
	}

	if _, err := tx.Exec(`
INSERT INTO tables (name, source, columnCount, rowCount)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  source=excluded.source,
  columnCount=excluded.columnCount,
  rowCount=excluded.rowCount,
  updatedAt=CURRENT_TIMESTAMP
`, name, t.Name, t.Width(), t.Len()); err != nil {
		return "", err
	}

	return name, tx.Commit()
}

// LoadTable reads back a table saved under name, which may be the stored
// name or the name it was saved from.
func (d *DB) LoadTable(name string) (*table.Table, error) {
	stored, source, err := d.resolve(name)
	if err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(`SELECT original, repaired FROM header_map WHERE tableName = ? ORDER BY position`, stored)
	if err != nil {
		return nil, err
	}
	var original, repaired []string
	for rows.Next() {
		var o, r string
		if err := rows.Scan(&o, &r); err != nil {
			_ = rows.Close()
			return nil, err
		}
		original = append(original, o)
		repaired = append(repaired, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	out := &table.Table{Name: source, Header: repaired, Original: original}
	if len(repaired) == 0 {
		return out, nil
	}

	quoted := make([]string, 0, len(repaired))
	for _, h := range repaired {
		quoted = append(quoted, quote(h))
	}
	data, err := d.conn.Query(fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, strings.Join(quoted, ", "), quote(stored), quote(rowColumn)))
	if err != nil {
		return nil, err
	}
	defer data.Close()

	for data.Next() {
		cells := make([]sql.NullString, len(repaired))
		ptrs := make([]any, len(cells))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := data.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, data.Err()
}

func (d *DB) ListTables() ([]TableInfo, error) {
	rows, err := d.conn.Query(`SELECT name, source, columnCount, rowCount, updatedAt FROM tables ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TableInfo
	for rows.Next() {
		var ti TableInfo
		if err := rows.Scan(&ti.Name, &ti.Source, &ti.Columns, &ti.Rows, &ti.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ti)
	}
	return out, rows.Err()
}

func (d *DB) DropTable(name string) error {
	stored, _, err := d.resolve(name)
	if err != nil {
		return err
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + quote(stored)); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM header_map WHERE tableName = ?`, stored); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM tables WHERE name = ?`, stored); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) resolve(name string) (stored, source string, err error) {
	for _, candidate := range []string{name, TableName(name)} {
		err = d.conn.QueryRow(`SELECT name, source FROM tables WHERE name = ?`, candidate).Scan(&stored, &source)
		if err == nil {
			return stored, source, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", "", err
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrTableNotFound, name)
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
