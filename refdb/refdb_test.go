package refdb

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/strlab/strmatch/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.Marker{Name: "TH01", Kind: catalog.KindNumeric, Motif: "AATG", P: 0.1},
		catalog.Marker{Name: "FGA", Kind: catalog.KindNumeric, Motif: "TTTC", P: 0.1},
		catalog.Marker{Name: catalog.Amelogenin, Kind: catalog.KindCategorical, P: 0.5},
	)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func writeFile(t *testing.T, name string, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDelimited(t *testing.T) {
	contents := "name,TH01,FGA,AMEL\nBob,9,22,XY\nAlice,6,,XX\n"
	path := writeFile(t, "refs.csv", []byte(contents))

	db, err := Load(context.Background(), testCatalog(t), path, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(db.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(db.Profiles))
	}
	if db.Profiles[0].ID() != "Bob" || db.Profiles[1].ID() != "Alice" {
		t.Fatalf("expected source order [Bob Alice], got [%s %s]", db.Profiles[0].ID(), db.Profiles[1].ID())
	}

	// 32-byte digest rendered as hex
	if len(db.Checksum) != 64 {
		t.Fatalf("expected a 64-character checksum, got %q", db.Checksum)
	}

	bob := db.Profiles[0]
	if v, ok := bob.Get("TH01"); !ok || v.String() != "9" {
		t.Fatalf("expected Bob TH01=9, got %v (ok=%v)", v, ok)
	}
	if v, ok := bob.Get(catalog.Amelogenin); !ok || v.String() != "XY" {
		t.Fatalf("expected Bob AMEL=XY, got %v (ok=%v)", v, ok)
	}

	// Alice's empty FGA cell means the marker is absent, not zero
	alice := db.Profiles[1]
	if _, ok := alice.Get("FGA"); ok {
		t.Fatal("an empty cell must leave the marker absent")
	}
	if alice.Len() != 2 {
		t.Fatalf("expected Alice to carry 2 markers, got %d", alice.Len())
	}
}

func TestLoadDelimitedSemicolon(t *testing.T) {
	contents := "name;TH01;FGA\nBob;9;22\n"
	path := writeFile(t, "refs.txt", []byte(contents))

	db, err := Load(context.Background(), testCatalog(t), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(db.Profiles) != 1 || db.Profiles[0].ID() != "Bob" {
		t.Fatalf("unexpected profiles: %+v", db.Profiles)
	}
}

func TestLoadGzip(t *testing.T) {
	contents := []byte("name,TH01\nBob,9\n")

	plainPath := writeFile(t, "refs.csv", contents)
	plain, err := Load(context.Background(), testCatalog(t), plainPath, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(contents); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	gzPath := writeFile(t, "refs.csv.gz", buf.Bytes())

	zipped, err := Load(context.Background(), testCatalog(t), gzPath, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(zipped.Profiles) != 1 || zipped.Profiles[0].ID() != "Bob" {
		t.Fatalf("unexpected profiles from the compressed source: %+v", zipped.Profiles)
	}

	// Provenance covers the bytes as stored, so the digests differ
	if plain.Checksum == zipped.Checksum {
		t.Fatal("expected distinct checksums for plain and compressed sources")
	}
}

func TestChecksumStable(t *testing.T) {
	contents := "name,TH01\nBob,9\n"
	path := writeFile(t, "refs.csv", []byte(contents))

	first, err := Load(context.Background(), testCatalog(t), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load(context.Background(), testCatalog(t), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.Checksum != second.Checksum {
		t.Fatal("checksums must be stable across loads")
	}

	otherPath := writeFile(t, "refs.csv", []byte("name,TH01\nBob,10\n"))
	other, err := Load(context.Background(), testCatalog(t), otherPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	if other.Checksum == first.Checksum {
		t.Fatal("different contents must yield different checksums")
	}
}

func TestLoadValidatesAgainstCatalog(t *testing.T) {
	// D99 is not in the catalog
	unknownPath := writeFile(t, "refs.csv", []byte("name,D99\nBob,9\n"))
	_, err := Load(context.Background(), testCatalog(t), unknownPath, nil)
	var unknown catalog.UnknownMarkerError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMarkerError, got %v", err)
	}

	// A repeat count where a call pair belongs
	invalidPath := writeFile(t, "refs.csv", []byte("name,AMEL\nBob,12\n"))
	_, err = Load(context.Background(), testCatalog(t), invalidPath, nil)
	var invalid catalog.InvalidMarkerError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidMarkerError, got %v", err)
	}
}

func TestProfilesFromTable(t *testing.T) {
	type expectations struct {
		Rows     [][]string
		Profiles int
		WantErr  bool
	}

	for i, v := range []expectations{
		{Rows: nil, WantErr: true},
		{Rows: [][]string{{"name"}}, WantErr: true},
		// A header with no data rows is an empty, legal database
		{Rows: [][]string{{"name", "TH01"}}, Profiles: 0},
		{Rows: [][]string{{"name", "TH01"}, {"Bob", "9"}}, Profiles: 1},
		{Rows: [][]string{{"name", "TH01"}, {"", "9"}}, WantErr: true},
		{Rows: [][]string{{"name", "TH01"}, {"Bob", "9", "extra"}}, WantErr: true},
		// Short rows treat missing trailing cells as absent markers
		{Rows: [][]string{{"name", "TH01", "FGA"}, {"Bob"}}, Profiles: 1},
		{Rows: [][]string{{"name", "TH01"}, {"Bob", "not-a-value!"}}, WantErr: true},
	} {
		profiles, err := profilesFromTable(v.Rows)
		if v.WantErr {
			if err == nil {
				t.Fatalf("case %d: expected an error", i)
			}
			continue
		}
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if len(profiles) != v.Profiles {
			t.Fatalf("case %d: expected %d profiles, got %d", i, v.Profiles, len(profiles))
		}
	}
}
