//go:build cgo
// +build cgo

package refdb

import (
	"fmt"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v3"

	_ "github.com/mattn/go-sqlite3"

	"github.com/strlab/strmatch"
	"github.com/strlab/strmatch/profile"
)

type profileRow struct {
	Name   string      `db:"name"`
	Marker string      `db:"marker"`
	Value  null.String `db:"value"`
}

// loadSQLite reads the long layout: one row per (name, marker, value) in
// a table called profiles. NULL values mean the marker was not typed for
// that sample.
func loadSQLite(path string) (*DB, error) {
	path = strmatch.ExpandHome(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	sum, err := checksum(raw)
	if err != nil {
		return nil, err
	}

	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	uri := path
	if !strings.HasPrefix(uri, "file:") {
		uri = "file:" + uri
	}

	db, err := sqlx.Connect("sqlite3", uri)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer db.Close()

	var rows []profileRow
	if err := db.Select(&rows, "SELECT name, marker, value FROM profiles ORDER BY rowid"); err != nil {
		return nil, pfx.Err(err)
	}

	// Group rows into profiles, preserving first-appearance order so the
	// ranking tie-break sees the same order every load
	var order []string
	grouped := make(map[string]map[string]profile.Value)
	for _, row := range rows {
		values, ok := grouped[row.Name]
		if !ok {
			values = make(map[string]profile.Value)
			grouped[row.Name] = values
			order = append(order, row.Name)
		}

		if !row.Value.Valid {
			continue
		}

		v, err := profile.Parse(row.Value.String)
		if err != nil {
			return nil, fmt.Errorf("profile %s, marker %s: %v", row.Name, row.Marker, err)
		}
		values[row.Marker] = v
	}

	profiles := make([]profile.Profile, 0, len(order))
	for _, name := range order {
		profiles = append(profiles, profile.New(name, grouped[name]))
	}

	return &DB{Source: path, Checksum: sum, Profiles: profiles}, nil
}
