// Package ioauthority maintains the species-name authority: a
// single-file SQLite database built from the names and taxa dump
// tables of the source taxonomy, and the exporter that turns it into
// the species checklists the gap analysis consumes.
package ioauthority

import (
	"database/sql"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// openDB opens the authority database, creating the file when it
// does not exist yet. The pragmas favor bulk loading: the database is
// rebuilt from dumps, so durability on power loss is not a concern.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, DBOpenError(path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, DBOpenError(path, err)
		}
	}
	return db, nil
}
