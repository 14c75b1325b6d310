package ioauthority

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nhmuk/bgap/internal/iotsv"
)

// txRows is the number of rows inserted per transaction.
const txRows = 10_000

const importProgressEvery = 100_000

// tableIndexes lists the lookup columns worth indexing per table.
// Indexes are only created for columns the dump actually has.
var tableIndexes = map[string][]string{
	"names": {
		"RECOMMENDED_TAXON_VERSION_KEY", "LANGUAGE", "RANK", "NAME_STATUS",
	},
	"taxa": {
		"PARENT_TVK", "ORGANISM_KEY", "PARENT_KEY", "RANK",
	},
}

// primaryKey is the column shared by both dump tables that uniquely
// identifies a name form.
const primaryKey = "TAXON_VERSION_KEY"

// ImportParams collects the inputs of one authority build.
type ImportParams struct {
	DBPath    string
	NamesPath string // names dump TSV
	TaxaPath  string // taxa dump TSV
}

// ImportStats reports how many rows each table received.
type ImportStats struct {
	Names int
	Taxa  int
}

// Import builds the authority database from the two dump tables. Each
// table is dropped and recreated, mirroring the dump columns exactly,
// so an import always reflects one dump and nothing older.
func Import(p ImportParams) (*ImportStats, error) {
	db, err := openDB(p.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	start := time.Now()
	stats := &ImportStats{}

	if stats.Names, err = importTable(db, "names", p.NamesPath); err != nil {
		return nil, err
	}
	if stats.Taxa, err = importTable(db, "taxa", p.TaxaPath); err != nil {
		return nil, err
	}

	slog.Info("Authority database built",
		"path", p.DBPath,
		"names", stats.Names,
		"taxa", stats.Taxa,
		"duration", time.Since(start).String(),
	)
	return stats, nil
}

// importTable loads one dump into its table, re-reading the dump as
// Latin-1 when it is not UTF-8. The table is dropped before either
// attempt, so a fallback never duplicates rows.
func importTable(db *sql.DB, table, path string) (int, error) {
	rows, err := loadTable(db, table, path, false)
	if err != nil && errors.Is(err, iotsv.ErrNotUTF8) {
		slog.Warn("Dump is not UTF-8, re-reading as Latin-1",
			"table", table, "path", path)
		return loadTable(db, table, path, true)
	}
	return rows, err
}

func loadTable(db *sql.DB, table, path string, latin1 bool) (int, error) {
	var r *iotsv.Reader
	var err error
	if latin1 {
		r, err = iotsv.NewLatin1Reader(path)
	} else {
		r, err = iotsv.NewReader(path)
	}
	if err != nil {
		return 0, err
	}
	defer r.Close()

	header := r.Header()
	if err := createTable(db, table, header); err != nil {
		return 0, err
	}

	insert := insertStatement(table, len(header))
	width := len(header)

	tx, err := db.Begin()
	if err != nil {
		return 0, DBImportError(table, err)
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		tx.Rollback()
		return 0, DBImportError(table, err)
	}

	var rows, inTx int
	args := make([]any, width)
	for r.Next() {
		// Pad or truncate to the header width.
		row := r.Row()
		for i := 0; i < width; i++ {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			stmt.Close()
			tx.Rollback()
			return 0, DBImportError(table, err)
		}
		rows++
		inTx++

		if rows%importProgressEvery == 0 {
			fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 40))
			fmt.Fprintf(os.Stderr, "\rImported %s rows into %s",
				humanize.Comma(int64(rows)), table)
		}

		if inTx == txRows {
			stmt.Close()
			if err := tx.Commit(); err != nil {
				return 0, DBImportError(table, err)
			}
			if tx, err = db.Begin(); err != nil {
				return 0, DBImportError(table, err)
			}
			if stmt, err = tx.Prepare(insert); err != nil {
				tx.Rollback()
				return 0, DBImportError(table, err)
			}
			inTx = 0
		}
	}
	if err := r.Err(); err != nil {
		stmt.Close()
		tx.Rollback()
		return 0, err
	}

	stmt.Close()
	if err := tx.Commit(); err != nil {
		return 0, DBImportError(table, err)
	}
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 40))

	if err := createIndexes(db, table, header); err != nil {
		return 0, err
	}

	slog.Info("Table imported", "table", table, "rows", rows)
	return rows, nil
}

// createTable drops and recreates the table with one TEXT column per
// dump column, spelled as in the dump header.
func createTable(db *sql.DB, table string, header []string) error {
	if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
		return DBCreateError(table, err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		col := fmt.Sprintf("%q TEXT", h)
		if h == primaryKey {
			col += " PRIMARY KEY"
		}
		cols[i] = col
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)",
		table, strings.Join(cols, ", "))
	if _, err := db.Exec(ddl); err != nil {
		return DBCreateError(table, err)
	}
	return nil
}

func createIndexes(db *sql.DB, table string, header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	for _, col := range tableIndexes[table] {
		if _, ok := present[col]; !ok {
			continue
		}
		ddl := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%q)",
			table, strings.ToLower(col), table, col)
		if _, err := db.Exec(ddl); err != nil {
			return DBCreateError(table, err)
		}
	}
	return nil
}

// insertStatement builds an INSERT OR REPLACE with one placeholder
// per column, so a repeated key in the dump keeps its last version.
func insertStatement(table string, width int) string {
	marks := make([]string, width)
	for i := range marks {
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT OR REPLACE INTO %s VALUES (%s)",
		table, strings.Join(marks, ", "))
}
