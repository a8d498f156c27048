package match

import (
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
)

// Rank scores the query against every reference and returns the results
// best-first. References are scored concurrently; the ordering is
// deterministic regardless of scheduling:
//
//  1. higher matched-marker count first,
//  2. then the matched set with the higher combined match probability,
//  3. then input order.
func Rank(c *catalog.Catalog, query profile.Profile, refs []profile.Profile, opts Options) ([]Result, error) {
	if err := query.Validate(c); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(refs) {
		workers = len(refs)
	}

	results := make([]Result, len(refs))
	errs := make([]error, len(refs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = Score(c, query, refs[i], opts)
			}
		}()
	}

	for i := range refs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Report the first failure in input order so reruns agree
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for i := range results {
		results[i].pos = i
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Matched != results[j].Matched {
			return results[i].Matched > results[j].Matched
		}
		if results[i].P != results[j].P {
			return results[i].P > results[j].P
		}
		return results[i].pos < results[j].pos
	})

	return results, nil
}

// Best returns the top-ranked result. The second return is false when no
// reference matched at least one marker, which is the no-match outcome
// rather than an error.
func Best(results []Result) (Result, bool) {
	if len(results) == 0 || results[0].Matched == 0 {
		return Result{}, false
	}
	return results[0], true
}

// Separation reports how far the best candidate's matched count sits
// above the pool, in standard deviations. Pools with fewer than two
// results or without spread report zero.
func Separation(results []Result) float64 {
	if len(results) < 2 {
		return 0
	}

	counts := make([]float64, len(results))
	for i, r := range results {
		counts[i] = float64(r.Matched)
	}

	mean, sd := stat.MeanStdDev(counts, nil)
	if sd == 0 {
		return 0
	}

	return (counts[0] - mean) / sd
}
