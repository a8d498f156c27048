package identify

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/strlab/strmatch/amelogenin"
	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.Marker{Name: "marker1", Kind: catalog.KindNumeric, Motif: "AGAT", P: 0.1},
		catalog.Marker{Name: "marker2", Kind: catalog.KindNumeric, Motif: "AATG", P: 0.05},
		catalog.Marker{Name: catalog.Amelogenin, Kind: catalog.KindCategorical, P: 0.5},
	)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestIdentify(t *testing.T) {
	c := testCatalog(t)

	refs := []profile.Profile{
		profile.New("Bob", map[string]profile.Value{
			"marker1":          profile.Repeats(12),
			"marker2":          profile.Repeats(15),
			catalog.Amelogenin: profile.CallPair("X", "Y"),
		}),
		profile.New("Alice", map[string]profile.Value{
			"marker1":          profile.Repeats(12),
			"marker2":          profile.Repeats(9),
			catalog.Amelogenin: profile.CallPair("X", "X"),
		}),
	}

	query := profile.New("scene", map[string]profile.Value{
		"marker1":          profile.Repeats(13),
		"marker2":          profile.Repeats(15),
		catalog.Amelogenin: profile.CallPair("X", "Y"),
	})

	v, err := Identify(c, refs, query, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if !v.Found {
		t.Fatal("expected a match")
	}
	if v.Best.Ref.ID() != "Bob" {
		t.Fatalf("expected Bob, got %s", v.Best.Ref.ID())
	}
	// Bob matches marker1, marker2, and amelogenin
	if v.Best.Matched != 3 || v.Best.Compared != 3 {
		t.Fatalf("expected 3 of 3, got %d of %d", v.Best.Matched, v.Best.Compared)
	}

	// 0.1 * 0.05 * 0.5
	if !scalar.EqualWithinAbs(v.P, 0.0025, 1e-12) {
		t.Fatalf("expected combined probability 0.0025, got %g", v.P)
	}
	if v.Rarity != "1 in 400" {
		t.Fatalf("expected rarity '1 in 400', got %q", v.Rarity)
	}

	if v.Sex != amelogenin.Male {
		t.Fatalf("expected male, got %s", v.Sex)
	}

	if len(v.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(v.Candidates))
	}
	if v.Candidates[1].Ref.ID() != "Alice" {
		t.Fatalf("expected Alice second, got %s", v.Candidates[1].Ref.ID())
	}
}

func TestIdentifyNoMatch(t *testing.T) {
	c := testCatalog(t)

	refs := []profile.Profile{
		profile.New("Bob", map[string]profile.Value{"marker1": profile.Repeats(12)}),
	}
	query := profile.New("scene", map[string]profile.Value{"marker1": profile.Repeats(50)})

	v, err := Identify(c, refs, query, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if v.Found {
		t.Fatal("expected the no-match outcome")
	}
	if v.P != 1 || v.Rarity != "" {
		t.Fatalf("an unmatched query should report P=1 and no rarity, got P=%g %q", v.P, v.Rarity)
	}
	// The full pool is still reported
	if len(v.Candidates) != 1 {
		t.Fatalf("expected the candidate table, got %d entries", len(v.Candidates))
	}
}

func TestIdentifyEmptyDatabase(t *testing.T) {
	c := testCatalog(t)

	v, err := Identify(c, nil, profile.New("scene", map[string]profile.Value{"marker1": profile.Repeats(5)}), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if v.Found {
		t.Fatal("expected no match against an empty database")
	}
	if len(v.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(v.Candidates))
	}
}

func TestIdentifySexUndetermined(t *testing.T) {
	c := testCatalog(t)

	query := profile.New("scene", map[string]profile.Value{"marker1": profile.Repeats(5)})
	v, err := Identify(c, nil, query, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if v.Sex != amelogenin.Undetermined {
		t.Fatalf("expected undetermined, got %s", v.Sex)
	}
}

func TestIdentifyInvalidQuery(t *testing.T) {
	c := testCatalog(t)

	query := profile.New("scene", map[string]profile.Value{"mystery": profile.Repeats(5)})
	_, err := Identify(c, nil, query, DefaultOptions())
	var unknown catalog.UnknownMarkerError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMarkerError, got %v", err)
	}
}

func TestIdentifyTopN(t *testing.T) {
	c := testCatalog(t)

	refs := []profile.Profile{
		profile.New("a", map[string]profile.Value{"marker1": profile.Repeats(10)}),
		profile.New("b", map[string]profile.Value{"marker1": profile.Repeats(11)}),
		profile.New("c", map[string]profile.Value{"marker1": profile.Repeats(12)}),
	}
	query := profile.New("scene", map[string]profile.Value{"marker1": profile.Repeats(10)})

	opts := DefaultOptions()
	opts.TopN = 2

	v, err := Identify(c, refs, query, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Top()) != 2 {
		t.Fatalf("expected the display cut at 2, got %d", len(v.Top()))
	}
	// The full pool stays on the verdict for the statistics
	if len(v.Candidates) != 3 {
		t.Fatalf("expected all 3 candidates retained, got %d", len(v.Candidates))
	}
}
