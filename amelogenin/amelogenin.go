// Package amelogenin infers chromosomal sex from the amelogenin marker.
package amelogenin

import (
	"fmt"
	"strings"

	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
)

// Sex is the inferred chromosomal sex.
type Sex string

const (
	Female Sex = "female"
	Male   Sex = "male"
	// Undetermined is the sentinel reported when the query carries no
	// amelogenin value. It is not an error.
	Undetermined Sex = "undetermined"
)

// yMotif is the simplified Y-specific signature scanned for in raw reads.
const yMotif = "TAT"

// FromPair maps an amelogenin call pair to a sex: X,X is female and X,Y
// is male. Calls other than X and Y are invalid.
func FromPair(v profile.Value) (Sex, error) {
	a, b, ok := v.Calls()
	if !ok {
		return Undetermined, catalog.InvalidMarkerError{
			Name:   catalog.Amelogenin,
			Reason: "expected a call pair, got a repeat count",
		}
	}

	for _, call := range []string{a, b} {
		if call != "X" && call != "Y" {
			return Undetermined, catalog.InvalidMarkerError{
				Name:   catalog.Amelogenin,
				Reason: fmt.Sprintf("unrecognized call %q", call),
			}
		}
	}

	switch {
	case a == "X" && b == "X":
		return Female, nil
	case a == "X" && b == "Y":
		return Male, nil
	}

	// Only Y,Y remains after normalization, and no human sample types
	// that way.
	return Undetermined, catalog.InvalidMarkerError{
		Name:   catalog.Amelogenin,
		Reason: "implausible call pair YY",
	}
}

// FromProfile infers sex from a profile's amelogenin value. A profile
// without the marker yields Undetermined with no error.
func FromProfile(p profile.Profile) (Sex, error) {
	v, ok := p.Get(catalog.Amelogenin)
	if !ok {
		return Undetermined, nil
	}
	return FromPair(v)
}

// CallSequence types amelogenin from a raw read covering the region: the
// Y-specific motif present yields X,Y and its absence yields X,X.
func CallSequence(sequence string) profile.Value {
	if strings.Contains(strings.ToUpper(sequence), yMotif) {
		return profile.CallPair("X", "Y")
	}
	return profile.CallPair("X", "X")
}
