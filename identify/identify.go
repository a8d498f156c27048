// Package identify runs the full identification pipeline: validate the
// query, rank it against every reference, attach the match statistics,
// and call sex from amelogenin.
package identify

import (
	"github.com/strlab/strmatch/amelogenin"
	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/match"
	"github.com/strlab/strmatch/profile"
	"github.com/strlab/strmatch/rmp"
)

// Options tunes an identification run.
type Options struct {
	Match match.Options
	// TopN caps the candidate table kept on the verdict. Zero keeps
	// every reference.
	TopN int
}

// DefaultOptions uses the standard tolerance and keeps the five best
// candidates.
func DefaultOptions() Options {
	return Options{Match: match.DefaultOptions(), TopN: 5}
}

// Verdict is the assembled outcome of one identification run.
type Verdict struct {
	// Found reports whether any reference matched at least one marker.
	// When false the query is unmatched; that is an outcome, not an
	// error.
	Found bool
	// Best is the winning result; meaningful only when Found.
	Best match.Result
	// P is the combined random match probability of the best candidate's
	// matched set, and Rarity its statement. An unmatched query reports
	// P = 1 with no statement.
	P      float64
	Rarity string
	// Sex is the query's amelogenin call, Undetermined when the query
	// does not carry the marker.
	Sex amelogenin.Sex
	// Candidates is the full ranked table, best first. Top applies the
	// display cut.
	Candidates []match.Result
	// TopN is the display cut requested for this run.
	TopN int
	// Separation is the best candidate's matched count expressed as
	// standard deviations above the candidate pool.
	Separation float64
}

// Top returns the leading TopN candidates. A zero TopN returns the whole
// table.
func (v Verdict) Top() []match.Result {
	if v.TopN <= 0 || len(v.Candidates) <= v.TopN {
		return v.Candidates
	}
	return v.Candidates[:v.TopN]
}

// Identify scores the query against the references and assembles the
// verdict.
func Identify(c *catalog.Catalog, refs []profile.Profile, query profile.Profile, opts Options) (Verdict, error) {
	results, err := match.Rank(c, query, refs, opts.Match)
	if err != nil {
		return Verdict{}, err
	}

	sex, err := amelogenin.FromProfile(query)
	if err != nil {
		return Verdict{}, err
	}

	v := Verdict{
		Sex:        sex,
		Separation: match.Separation(results),
		P:          1,
		Candidates: results,
		TopN:       opts.TopN,
	}

	if best, ok := match.Best(results); ok {
		v.Found = true
		v.Best = best
		v.P = best.P
		v.Rarity = rmp.Statement(best.P)
	}

	return v, nil
}
