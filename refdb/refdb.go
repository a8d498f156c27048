// Package refdb loads reference profile databases. Sources may be
// delimited text (wide layout), SQLite (long layout), or XLS spreadsheets;
// text and spreadsheet sources may be compressed and may live locally, on
// Google Storage, or behind http(s).
package refdb

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/minio/blake2b-simd"

	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
)

// DB is a loaded reference database.
type DB struct {
	// Source is the path the database was loaded from.
	Source string
	// Checksum is the BLAKE2b-256 digest of the raw source bytes,
	// reported for provenance.
	Checksum string
	// Profiles preserves the source order, which downstream ranking uses
	// as its final tie-break.
	Profiles []profile.Profile
}

// Load reads the database at path, picking the loader by extension:
// .db/.sqlite/.sqlite3 open as SQLite and .xls as a spreadsheet; anything
// else parses as delimited text. A trailing compression suffix (.gz, .xz,
// .bz2, .zip, .z) is ignored when picking the loader. Every loaded
// profile is validated against the catalog.
func Load(ctx context.Context, c *catalog.Catalog, path string, client *storage.Client) (*DB, error) {
	var (
		db  *DB
		err error
	)

	name := strings.ToLower(filepath.Base(path))
	switch filepath.Ext(name) {
	case ".gz", ".xz", ".bz2", ".zip", ".z":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	switch filepath.Ext(name) {
	case ".db", ".sqlite", ".sqlite3":
		db, err = loadSQLite(path)
	case ".xls":
		db, err = loadXLS(ctx, path, client)
	default:
		db, err = loadDelimited(ctx, path, client)
	}
	if err != nil {
		return nil, err
	}

	for _, p := range db.Profiles {
		if err := p.Validate(c); err != nil {
			return nil, fmt.Errorf("%s: profile %s: %w", path, p.ID(), err)
		}
	}

	return db, nil
}

func checksum(raw []byte) (string, error) {
	h, err := blake2b.New(&blake2b.Config{Size: 32})
	if err != nil {
		return "", pfx.Err(err)
	}
	if _, err := h.Write(raw); err != nil {
		return "", pfx.Err(err)
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// profilesFromTable parses the wide layout: a header of marker names
// after the leading name column, then one profile per row. Empty cells
// mean the marker was not typed for that sample. Rows shorter than the
// header (as ragged spreadsheets produce) treat the missing trailing
// cells as empty.
func profilesFromTable(rows [][]string) ([]profile.Profile, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty database")
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("header needs a name column plus at least one marker column")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var profiles []profile.Profile
	for i, row := range rows[1:] {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d: %d fields exceed the %d header columns", i+2, len(row), len(header))
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			return nil, fmt.Errorf("row %d: empty profile name", i+2)
		}

		values := make(map[string]profile.Value)
		for col := 1; col < len(row); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			v, err := profile.Parse(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, marker %s: %v", i+2, header[col], err)
			}
			values[header[col]] = v
		}

		profiles = append(profiles, profile.New(name, values))
	}

	return profiles, nil
}
