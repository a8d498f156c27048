// Package match scores a query STR profile against reference profiles and
// ranks the candidates deterministically.
package match

import (
	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
	"github.com/strlab/strmatch/rmp"
)

// DefaultTolerance is the numeric match window in repeat units.
const DefaultTolerance = 2

// Options tunes a matching run.
type Options struct {
	// Tolerance is the maximum absolute repeat-count difference that
	// still matches at a numeric marker. Zero means exact matching.
	Tolerance int
	// Workers caps the scoring goroutines. Zero or less means one per
	// CPU.
	Workers int
}

// DefaultOptions carries the standard tolerance of two repeat units.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// Comparison records the outcome at one marker carried by both profiles.
type Comparison struct {
	Marker  string
	Query   profile.Value
	Ref     profile.Value
	Matched bool
}

// Result is the outcome of scoring one reference profile against the
// query.
type Result struct {
	// Ref is the reference profile that was scored.
	Ref profile.Profile
	// Matched counts the compared markers whose values agreed.
	Matched int
	// Compared counts the markers carried by both profiles. Markers
	// absent from either side are excluded, never penalized.
	Compared int
	// MatchedMarkers lists the agreeing markers, sorted.
	MatchedMarkers []string
	// Comparisons details every compared marker, sorted by name.
	Comparisons []Comparison
	// P is the combined random match probability of the matched set.
	P float64

	pos int
}

// Similarity is the matched share of compared markers, in [0, 1]. A
// result with nothing compared has similarity 0.
func (r Result) Similarity() float64 {
	if r.Compared == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Compared)
}

// Score compares the query against one reference, marker by marker.
// Numeric values match within opts.Tolerance repeat units; categorical
// values match only on normalized equality.
func Score(c *catalog.Catalog, query, ref profile.Profile, opts Options) (Result, error) {
	res := Result{Ref: ref}

	for _, name := range query.Markers() {
		qv, _ := query.Get(name)
		rv, ok := ref.Get(name)
		if !ok {
			continue
		}

		m, ok := c.Lookup(name)
		if !ok {
			return Result{}, catalog.UnknownMarkerError{Name: name}
		}

		matched, err := valuesMatch(m, qv, rv, opts.Tolerance)
		if err != nil {
			return Result{}, err
		}

		res.Compared++
		res.Comparisons = append(res.Comparisons, Comparison{
			Marker:  name,
			Query:   qv,
			Ref:     rv,
			Matched: matched,
		})
		if matched {
			res.Matched++
			res.MatchedMarkers = append(res.MatchedMarkers, name)
		}
	}

	p, err := rmp.Combined(c, res.MatchedMarkers)
	if err != nil {
		return Result{}, err
	}
	res.P = p

	return res, nil
}

func valuesMatch(m catalog.Marker, qv, rv profile.Value, tolerance int) (bool, error) {
	switch m.Kind {
	case catalog.KindNumeric:
		qn, qok := qv.Repeats()
		rn, rok := rv.Repeats()
		if !qok || !rok {
			return false, catalog.InvalidMarkerError{Name: m.Name, Reason: "numeric marker carries a call pair"}
		}
		if tolerance < 0 {
			tolerance = 0
		}
		return intAbs(qn-rn) <= tolerance, nil

	case catalog.KindCategorical:
		if qv.IsNumeric() || rv.IsNumeric() {
			return false, catalog.InvalidMarkerError{Name: m.Name, Reason: "categorical marker carries a repeat count"}
		}
		return qv.Equal(rv), nil
	}

	return false, catalog.InvalidMarkerError{Name: m.Name, Reason: "unrecognized kind " + string(m.Kind)}
}

func intAbs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
