//go:build cgo
// +build cgo

package refdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/strlab/strmatch/catalog"
)

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.db")

	db, err := sqlx.Connect("sqlite3", "file:"+path)
	if err != nil {
		t.Fatal(err)
	}

	stmts := []string{
		`CREATE TABLE profiles (name TEXT NOT NULL, marker TEXT NOT NULL, value TEXT)`,
		`INSERT INTO profiles VALUES ('Bob', 'TH01', '9')`,
		`INSERT INTO profiles VALUES ('Bob', 'FGA', '22')`,
		`INSERT INTO profiles VALUES ('Bob', 'AMEL', 'XY')`,
		`INSERT INTO profiles VALUES ('Alice', 'TH01', '6')`,
		`INSERT INTO profiles VALUES ('Alice', 'FGA', NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(context.Background(), testCatalog(t), path, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded.Profiles))
	}
	// First-appearance order from the table
	if loaded.Profiles[0].ID() != "Bob" || loaded.Profiles[1].ID() != "Alice" {
		t.Fatalf("expected [Bob Alice], got [%s %s]", loaded.Profiles[0].ID(), loaded.Profiles[1].ID())
	}

	bob := loaded.Profiles[0]
	if bob.Len() != 3 {
		t.Fatalf("expected Bob to carry 3 markers, got %d", bob.Len())
	}
	if v, _ := bob.Get(catalog.Amelogenin); v.String() != "XY" {
		t.Fatalf("expected Bob AMEL=XY, got %s", v)
	}

	// Alice's NULL FGA row means the marker is absent
	alice := loaded.Profiles[1]
	if _, ok := alice.Get("FGA"); ok {
		t.Fatal("a NULL value must leave the marker absent")
	}

	if len(loaded.Checksum) != 64 {
		t.Fatalf("expected a 64-character checksum, got %q", loaded.Checksum)
	}
}
