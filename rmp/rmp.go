// Package rmp computes combined random match probabilities by the product
// rule and renders them as rarity statements.
package rmp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/strlab/strmatch/catalog"
)

// EffectivelyUnique is the statement reported when the combined
// probability underflows to zero.
const EffectivelyUnique = "effectively unique"

// Combined multiplies the baseline match probabilities of the named
// markers. The empty set multiplies to exactly 1. Markers missing from
// the catalog are an UnknownMarkerError.
func Combined(c *catalog.Catalog, markers []string) (float64, error) {
	if len(markers) == 0 {
		return 1, nil
	}

	ps := make([]float64, 0, len(markers))
	for _, name := range markers {
		m, ok := c.Lookup(name)
		if !ok {
			return 0, catalog.UnknownMarkerError{Name: name}
		}
		ps = append(ps, m.P)
	}

	return floats.Prod(ps), nil
}

// Statement renders p as a rarity statement: "1 in N" with N rounded to
// the nearest integer, or EffectivelyUnique when p has underflowed to
// zero.
func Statement(p float64) string {
	if p == 0 {
		return EffectivelyUnique
	}
	return fmt.Sprintf("1 in %.0f", math.Round(1/p))
}
