package catalog

import (
	"errors"
	"fmt"
)

var (
	errEmptyMotif    = errors.New("numeric marker requires a repeat motif")
	errMotifAlphabet = errors.New("motif may only contain A, C, G, T")
)

// UnknownMarkerError reports a reference to a marker name that the catalog
// does not carry.
type UnknownMarkerError struct {
	Name string
}

func (e UnknownMarkerError) Error() string {
	return fmt.Sprintf("unknown marker %q", e.Name)
}

// InvalidMarkerError reports a marker definition or value that fails
// validation.
type InvalidMarkerError struct {
	Name   string
	Reason string
}

func (e InvalidMarkerError) Error() string {
	return fmt.Sprintf("invalid marker %q: %s", e.Name, e.Reason)
}
