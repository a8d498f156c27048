package profile

import (
	"sort"

	"github.com/strlab/strmatch/catalog"
)

// Profile is one typed profile: an identifier plus the value observed at
// each marker. Any subset of a catalog's markers may be present.
type Profile struct {
	id     string
	values map[string]Value
}

// New builds a profile. The values map is copied; a nil map yields an
// empty profile, which is legal and simply matches nothing.
func New(id string, values map[string]Value) Profile {
	copied := make(map[string]Value, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Profile{id: id, values: copied}
}

// ID returns the sample or person identifier.
func (p Profile) ID() string {
	return p.id
}

// Get fetches the value at a marker.
func (p Profile) Get(marker string) (Value, bool) {
	v, ok := p.values[marker]
	return v, ok
}

// Markers lists the marker names present, sorted.
func (p Profile) Markers() []string {
	out := make([]string, 0, len(p.values))
	for name := range p.values {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len reports how many markers the profile carries.
func (p Profile) Len() int {
	return len(p.values)
}

// Validate checks the profile against a catalog: every marker must exist
// and its value kind must agree with the marker kind.
func (p Profile) Validate(c *catalog.Catalog) error {
	for _, name := range p.Markers() {
		m, ok := c.Lookup(name)
		if !ok {
			return catalog.UnknownMarkerError{Name: name}
		}

		v := p.values[name]
		switch m.Kind {
		case catalog.KindNumeric:
			n, ok := v.Repeats()
			if !ok {
				return catalog.InvalidMarkerError{Name: name, Reason: "numeric marker carries a call pair"}
			}
			if n < 0 {
				return catalog.InvalidMarkerError{Name: name, Reason: "negative repeat count"}
			}
		case catalog.KindCategorical:
			if v.IsNumeric() {
				return catalog.InvalidMarkerError{Name: name, Reason: "categorical marker carries a repeat count"}
			}
		}
	}

	return nil
}
