package ioauthority

import (
	"database/sql"
	"log/slog"
	"strings"
)

// taxonRow is one row of the taxa table, trimmed to the columns the
// export needs.
type taxonRow struct {
	tvk       string
	name      string
	parentTVK string
	rank      string
	redundant bool
}

// cache holds the authority tables in memory. The export walks
// parent chains and child lists for every species, so map lookups
// beat per-taxon queries by orders of magnitude.
type cache struct {
	taxa     map[string]*taxonRow // by TVK
	children map[string][]string  // parent TVK -> child TVKs
	latin    map[string][]string  // TVK -> attached Latin names
}

// loadCache reads the taxa table and the Latin entries of the names
// table into memory.
func loadCache(db *sql.DB) (*cache, error) {
	c := &cache{
		taxa:     make(map[string]*taxonRow),
		children: make(map[string][]string),
		latin:    make(map[string][]string),
	}

	rows, err := db.Query(`
		SELECT TAXON_VERSION_KEY, TAXON_NAME, PARENT_TVK, RANK,
		       REDUNDANT_FLAG
		  FROM taxa`)
	if err != nil {
		return nil, DBQueryError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var tvk, name, parent, rank, redundant sql.NullString
		if err := rows.Scan(&tvk, &name, &parent, &rank, &redundant); err != nil {
			return nil, DBQueryError(err)
		}
		t := &taxonRow{
			tvk:       tvk.String,
			name:      strings.TrimSpace(name.String),
			parentTVK: strings.TrimSpace(parent.String),
			rank:      strings.TrimSpace(rank.String),
			redundant: strings.TrimSpace(redundant.String) != "",
		}
		c.taxa[t.tvk] = t
		if t.parentTVK != "" {
			c.children[t.parentTVK] = append(c.children[t.parentTVK], t.tvk)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, DBQueryError(err)
	}

	nameRows, err := db.Query(`
		SELECT RECOMMENDED_TAXON_VERSION_KEY, TAXON_NAME
		  FROM names
		 WHERE lower(LANGUAGE) = 'la'`)
	if err != nil {
		return nil, DBQueryError(err)
	}
	defer nameRows.Close()

	for nameRows.Next() {
		var tvk, name sql.NullString
		if err := nameRows.Scan(&tvk, &name); err != nil {
			return nil, DBQueryError(err)
		}
		n := strings.TrimSpace(name.String)
		if tvk.String == "" || n == "" {
			continue
		}
		c.latin[tvk.String] = append(c.latin[tvk.String], n)
	}
	if err := nameRows.Err(); err != nil {
		return nil, DBQueryError(err)
	}

	slog.Info("Authority cache loaded",
		"taxa", len(c.taxa),
		"latin_names", len(c.latin),
	)
	return c, nil
}
