// Package report writes the plain-text identification report: case
// header, query profile, ranked candidate table, pool statistics with a
// matched-count histogram, and the conclusion block.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"

	"github.com/strlab/strmatch/compileinfo"
	"github.com/strlab/strmatch/identify"
	"github.com/strlab/strmatch/profile"
	"github.com/strlab/strmatch/refdb"
	"github.com/strlab/strmatch/rmp"
)

const rule = "------------------------------------------------------------"

// Header is the case block printed at the top of a report.
type Header struct {
	CaseID string
	Date   time.Time
	Lab    string
}

// ParseDate reads a case date written in any common format.
func ParseDate(s string) (time.Time, error) {
	return dateparse.ParseAny(s)
}

// Write renders the full report for one identification run.
func Write(w io.Writer, h Header, db *refdb.DB, query profile.Profile, v identify.Verdict) error {
	date := h.Date
	if date.IsZero() {
		date = time.Now()
	}

	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, " FORENSIC STR IDENTIFICATION REPORT")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Case:      %s\n", h.CaseID)
	fmt.Fprintf(w, "Date:      %s\n", date.Format("2006-01-02"))
	fmt.Fprintf(w, "Lab:       %s\n", h.Lab)
	fmt.Fprintf(w, "Software:  %s\n", compileinfo.Get().Short())
	if db != nil {
		fmt.Fprintf(w, "Database:  %s (%d profiles)\n", db.Source, len(db.Profiles))
		fmt.Fprintf(w, "Checksum:  %s (BLAKE2b-256)\n", db.Checksum)
	}
	fmt.Fprintln(w)

	writeQuery(w, query)
	writeCandidates(w, v)

	if err := writePoolStatistics(w, v); err != nil {
		return err
	}

	writeConclusion(w, v)

	return nil
}

func writeQuery(w io.Writer, query profile.Profile) {
	fmt.Fprintf(w, "QUERY PROFILE  %s\n", query.ID())
	fmt.Fprintln(w, rule)
	if query.Len() == 0 {
		fmt.Fprintln(w, "  (no markers typed)")
	}
	for _, name := range query.Markers() {
		v, _ := query.Get(name)
		fmt.Fprintf(w, "  %-12s %s\n", name, v)
	}
	fmt.Fprintln(w)
}

func writeCandidates(w io.Writer, v identify.Verdict) {
	top := v.Top()

	fmt.Fprintf(w, "CANDIDATES (top %d of %d)\n", len(top), len(v.Candidates))
	fmt.Fprintln(w, rule)
	if len(top) == 0 {
		fmt.Fprintln(w, "  (reference database is empty)")
	} else {
		fmt.Fprintf(w, "  %3s  %-16s %8s %9s %11s  %s\n", "#", "name", "matched", "compared", "similarity", "probability")
		for i, r := range top {
			fmt.Fprintf(w, "  %3d  %-16s %8d %9d %10.1f%%  %s\n",
				i+1, r.Ref.ID(), r.Matched, r.Compared, 100*r.Similarity(), rmp.Statement(r.P))
		}
	}
	fmt.Fprintln(w)
}

func writePoolStatistics(w io.Writer, v identify.Verdict) error {
	if len(v.Candidates) == 0 {
		return nil
	}

	counts := make([]float64, len(v.Candidates))
	for i, r := range v.Candidates {
		counts[i] = float64(r.Matched)
	}

	data := stats.LoadRawData(counts)
	mean, err := data.Mean()
	if err != nil {
		return err
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "POOL STATISTICS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  matched counts: mean %.3f, sd %.3f\n", mean, sd)
	fmt.Fprintf(w, "  best-candidate separation: %.2f sd\n", v.Separation)
	fmt.Fprintln(w)

	// A pool without spread has nothing to plot.
	if sd > 0 {
		hist := histogram.Hist(histogramBuckets(counts), counts)
		if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	return nil
}

func writeConclusion(w io.Writer, v identify.Verdict) {
	fmt.Fprintln(w, "CONCLUSION")
	fmt.Fprintln(w, rule)

	if v.Found {
		fmt.Fprintf(w, "  Best match:        %s\n", v.Best.Ref.ID())
		fmt.Fprintf(w, "  Markers matched:   %d of %d (%.1f%%)\n", v.Best.Matched, v.Best.Compared, 100*v.Best.Similarity())
		fmt.Fprintf(w, "  Matched markers:   %s\n", strings.Join(v.Best.MatchedMarkers, ", "))
		fmt.Fprintf(w, "  Random match:      %s (p = %.3g)\n", v.Rarity, v.P)
	} else {
		fmt.Fprintln(w, "  Best match:        none (no reference matched any marker)")
	}

	fmt.Fprintf(w, "  Chromosomal sex:   %s\n", v.Sex)
}

// histogramBuckets spreads small integer counts one bucket per distinct
// value, capped at ten buckets.
func histogramBuckets(counts []float64) int {
	min, max := counts[0], counts[0]
	for _, c := range counts {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}

	buckets := int(max-min) + 1
	if buckets > 10 {
		buckets = 10
	}
	if buckets < 1 {
		buckets = 1
	}
	return buckets
}
