// internal/storage/table.go
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Table is one whole flat file: a header row and its records. Cells are
// strings; typing is the caller's job.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) Append(row map[string]string) {
	t.Rows = append(t.Rows, row)
}

func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// DB is the persistence gateway: one CSV file per entity under the data
// directory, loaded wholesale and rewritten wholesale on every save. There
// is no append or patch path.
type DB struct {
	dir string
}

func NewDB(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &DB{dir: dir}, nil
}

func (db *DB) path(table string) string {
	return filepath.Join(db.dir, table+".csv")
}

// Load reads a whole table. A missing file yields an empty table, not an
// error; a present but malformed file is an error.
func (db *DB) Load(table string) (*Table, error) {
	f, err := os.Open(db.path(table))
	if os.IsNotExist(err) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", table, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	t := &Table{Columns: records[0]}
	for _, record := range records[1:] {
		row := make(map[string]string, len(t.Columns))
		for i, column := range t.Columns {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Save rewrites the whole table file. The write goes to a temp file first
// and is renamed into place, so a crash mid-save cannot truncate the table.
func (db *DB) Save(table string, t *Table) error {
	tmp, err := os.CreateTemp(db.dir, table+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for table %s: %w", table, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header of table %s: %w", table, err)
	}
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, column := range t.Columns {
			record[i] = row[column]
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write row of table %s: %w", table, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush table %s: %w", table, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for table %s: %w", table, err)
	}

	if err := os.Rename(tmp.Name(), db.path(table)); err != nil {
		return fmt.Errorf("failed to replace table %s: %w", table, err)
	}

	logrus.WithFields(logrus.Fields{
		"table": table,
		"rows":  len(t.Rows),
	}).Debug("Table saved")
	return nil
}
