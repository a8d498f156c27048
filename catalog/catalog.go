// Package catalog defines STR marker catalogs: the loci an identification
// run may consult, each with its comparison kind and its population
// baseline match probability.
package catalog

import (
	"sort"
	"strings"
)

// Kind discriminates how values at a marker are compared.
type Kind string

const (
	// KindNumeric markers carry tandem repeat counts and compare within a
	// tolerance.
	KindNumeric Kind = "numeric"
	// KindCategorical markers carry allele call pairs and compare exactly.
	KindCategorical Kind = "categorical"
)

// Amelogenin is the conventional name of the sex-typing marker.
const Amelogenin = "AMEL"

// Marker is one locus in a catalog.
type Marker struct {
	// Name is unique within a catalog. Lookups are exact; case is
	// preserved.
	Name string `csv:"name" koanf:"name"`
	Kind Kind   `csv:"kind" koanf:"kind"`
	// Motif is the repeat unit counted at a numeric marker, e.g. AGAT.
	// Categorical markers carry none.
	Motif string `csv:"motif" koanf:"motif"`
	// P is the baseline probability that two unrelated individuals match
	// at this marker, in (0, 1).
	P float64 `csv:"probability" koanf:"probability"`
}

// Catalog is an immutable set of markers keyed by name.
type Catalog struct {
	markers map[string]Marker
	names   []string
}

// New validates the given markers and assembles them into a Catalog.
func New(markers ...Marker) (*Catalog, error) {
	c := &Catalog{markers: make(map[string]Marker, len(markers))}

	for _, m := range markers {
		if m.Name == "" {
			return nil, InvalidMarkerError{Name: m.Name, Reason: "empty marker name"}
		}
		if _, exists := c.markers[m.Name]; exists {
			return nil, InvalidMarkerError{Name: m.Name, Reason: "duplicate marker name"}
		}
		if !(m.P > 0 && m.P < 1) {
			return nil, InvalidMarkerError{Name: m.Name, Reason: "baseline probability must be in (0, 1)"}
		}

		switch m.Kind {
		case KindNumeric:
			m.Motif = strings.ToUpper(m.Motif)
			if err := validMotif(m.Motif); err != nil {
				return nil, InvalidMarkerError{Name: m.Name, Reason: err.Error()}
			}
		case KindCategorical:
			// No motif to validate.
		default:
			return nil, InvalidMarkerError{Name: m.Name, Reason: "unrecognized kind " + string(m.Kind)}
		}

		c.markers[m.Name] = m
		c.names = append(c.names, m.Name)
	}

	sort.Strings(c.names)

	return c, nil
}

// Lookup fetches a marker by its exact name.
func (c *Catalog) Lookup(name string) (Marker, bool) {
	m, ok := c.markers[name]
	return m, ok
}

// Names lists the marker names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Markers lists the markers in name-sorted order.
func (c *Catalog) Markers() []Marker {
	out := make([]Marker, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.markers[name])
	}
	return out
}

// Len reports the number of markers.
func (c *Catalog) Len() int {
	return len(c.names)
}

func validMotif(motif string) error {
	if motif == "" {
		return errEmptyMotif
	}
	for _, b := range []byte(motif) {
		switch b {
		case 'A', 'C', 'G', 'T':
		default:
			return errMotifAlphabet
		}
	}
	return nil
}
