package epg

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		catalog.Marker{Name: "FGA", Kind: catalog.KindNumeric, Motif: "TTTC", P: 0.1},
		catalog.Marker{Name: "TH01", Kind: catalog.KindNumeric, Motif: "AATG", P: 0.1},
		catalog.Marker{Name: catalog.Amelogenin, Kind: catalog.KindCategorical, P: 0.5},
	)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTracePeaks(t *testing.T) {
	c := testCatalog(t)

	p := profile.New("s", map[string]profile.Value{
		"FGA":              profile.Repeats(10),
		"TH01":             profile.Repeats(5),
		catalog.Amelogenin: profile.CallPair("X", "Y"),
	})

	trace, names := Trace(c, p)

	// Categorical markers get no lane
	if len(names) != 2 || names[0] != "FGA" || names[1] != "TH01" {
		t.Fatalf("expected lanes [FGA TH01], got %v", names)
	}
	if len(trace) != 2*laneSamples {
		t.Fatalf("expected %d samples, got %d", 2*laneSamples, len(trace))
	}

	// The tallest peak reads maxRFU at its lane center
	fgaCenter := laneSamples / 2
	if got := trace[fgaCenter]; math.Abs(got-maxRFU) > 1e-6 {
		t.Fatalf("expected %g RFU at the FGA peak, got %g", float64(maxRFU), got)
	}

	// The second peak is proportional: 5/10 of the maximum
	th01Center := laneSamples + laneSamples/2
	if got := trace[th01Center]; math.Abs(got-maxRFU/2) > 1e-6 {
		t.Fatalf("expected %g RFU at the TH01 peak, got %g", maxRFU/2, got)
	}
}

func TestTraceAllZeroCounts(t *testing.T) {
	c := testCatalog(t)

	p := profile.New("s", map[string]profile.Value{
		"FGA": profile.Repeats(0),
	})

	trace, names := Trace(c, p)
	if len(names) != 1 {
		t.Fatalf("expected one lane, got %v", names)
	}
	for i, v := range trace {
		if v != 0 {
			t.Fatalf("expected a flat trace, got %g at sample %d", v, i)
		}
	}
}

func TestSmooth(t *testing.T) {
	vals := make([]float64, 100)
	vals[50] = 100

	smoothed, err := Smooth(vals, smoothWC)
	if err != nil {
		t.Fatal(err)
	}
	if len(smoothed) != len(vals) {
		t.Fatalf("expected %d samples, got %d", len(vals), len(smoothed))
	}

	// A first-order low-pass never overshoots the input
	for i, v := range smoothed {
		if v > 100+1e-9 {
			t.Fatalf("sample %d overshoots: %g", i, v)
		}
	}

	if _, err := Smooth(vals, 100); err == nil {
		t.Fatal("expected an error for an out-of-range corner frequency")
	}
}

func TestWritePNG(t *testing.T) {
	c := testCatalog(t)

	p := profile.New("s", map[string]profile.Value{
		"FGA":  profile.Repeats(22),
		"TH01": profile.Repeats(9),
	})

	var buf bytes.Buffer
	info := CaseInfo{ID: "DNA-2026-0001", Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Lab: "Westbridge Forensic Lab"}
	if err := WritePNG(&buf, c, p, info); err != nil {
		t.Fatal(err)
	}

	// PNG signature
	sig := []byte{0x89, 'P', 'N', 'G'}
	if buf.Len() < len(sig) || !bytes.Equal(buf.Bytes()[:len(sig)], sig) {
		t.Fatal("expected PNG output")
	}
}

func TestRenderRequiresPlottableMarkers(t *testing.T) {
	c := testCatalog(t)

	p := profile.New("s", map[string]profile.Value{
		catalog.Amelogenin: profile.CallPair("X", "X"),
	})

	if _, err := Render(c, p, CaseInfo{}); err == nil {
		t.Fatal("expected an error for a profile with no numeric markers")
	}
}
