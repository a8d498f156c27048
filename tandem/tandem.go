// Package tandem counts short tandem repeats in raw DNA sequences and
// builds profiles from the counts.
package tandem

import (
	"fmt"
	"strings"

	"github.com/strlab/strmatch/amelogenin"
	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
)

// Count returns the length of the longest run of consecutive,
// non-overlapping copies of motif anywhere in sequence.
func Count(sequence, motif string) int {
	if motif == "" {
		return 0
	}

	longest := 0
	for i := 0; i < len(sequence); i++ {
		run := 0
		for {
			start := i + run*len(motif)
			end := start + len(motif)
			if end > len(sequence) || sequence[start:end] != motif {
				break
			}
			run++
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}

// Normalize validates a raw sequence and returns it uppercased. Sequences
// must be non-empty and drawn from the A, C, G, T alphabet.
func Normalize(sequence string) (string, error) {
	sequence = strings.ToUpper(strings.TrimSpace(sequence))
	if sequence == "" {
		return "", fmt.Errorf("empty sequence")
	}

	for i := 0; i < len(sequence); i++ {
		switch sequence[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return "", fmt.Errorf("sequence position %d: %q is outside the ACGT alphabet", i, sequence[i])
		}
	}

	return sequence, nil
}

// ProfileFromSequence types every numeric marker of the catalog against
// the sequence and, when the catalog carries amelogenin, calls sex from
// the read as well.
func ProfileFromSequence(c *catalog.Catalog, id, sequence string) (profile.Profile, error) {
	sequence, err := Normalize(sequence)
	if err != nil {
		return profile.Profile{}, err
	}

	values := make(map[string]profile.Value)
	for _, m := range c.Markers() {
		switch m.Kind {
		case catalog.KindNumeric:
			values[m.Name] = profile.Repeats(Count(sequence, m.Motif))
		case catalog.KindCategorical:
			if m.Name == catalog.Amelogenin {
				values[m.Name] = amelogenin.CallSequence(sequence)
			}
		}
	}

	return profile.New(id, values), nil
}
