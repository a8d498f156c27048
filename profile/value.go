// Package profile models STR profiles: a sample or person identifier plus
// the typed value observed at each marker. Values are either tandem repeat
// counts (numeric markers) or allele call pairs (categorical markers such
// as amelogenin). Partial profiles, covering any subset of a catalog, are
// legal throughout.
package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the observation at one marker: a repeat count or a call pair,
// never both.
type Value struct {
	count   int
	calls   [2]string
	numeric bool
}

// Repeats builds a numeric value carrying a tandem repeat count.
func Repeats(n int) Value {
	return Value{count: n, numeric: true}
}

// CallPair builds a categorical value from two allele calls. Calls are
// uppercased and order-normalized, so CallPair("Y", "X") equals
// CallPair("X", "Y").
func CallPair(a, b string) Value {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if b < a {
		a, b = b, a
	}
	return Value{calls: [2]string{a, b}}
}

// Parse reads a value from its text form. Recognized shapes: "13" (repeat
// count), "X" (homozygous call, expands to X,X), "XY", "X,Y", "X/Y"
// (call pairs).
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("empty value")
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Value{}, fmt.Errorf("negative repeat count %d", n)
		}
		return Repeats(n), nil
	}

	var sep string
	for _, candidate := range []string{",", "/"} {
		if strings.Contains(s, candidate) {
			sep = candidate
			break
		}
	}

	if sep != "" {
		parts := strings.Split(s, sep)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Value{}, fmt.Errorf("malformed call pair %q", s)
		}
		return CallPair(parts[0], parts[1]), nil
	}

	// A bare token: one letter is a homozygous call, two letters a pair.
	switch len(s) {
	case 1:
		return CallPair(s, s), nil
	case 2:
		return CallPair(s[:1], s[1:]), nil
	}

	return Value{}, fmt.Errorf("unrecognized value %q", s)
}

// IsNumeric reports whether the value carries a repeat count.
func (v Value) IsNumeric() bool {
	return v.numeric
}

// Repeats returns the repeat count. The second return is false for
// categorical values.
func (v Value) Repeats() (int, bool) {
	if !v.numeric {
		return 0, false
	}
	return v.count, true
}

// Calls returns the normalized call pair. The third return is false for
// numeric values.
func (v Value) Calls() (string, string, bool) {
	if v.numeric {
		return "", "", false
	}
	return v.calls[0], v.calls[1], true
}

// Equal reports whether two values agree: numeric values compare counts,
// categorical values compare normalized pairs. A numeric value never
// equals a categorical one.
func (v Value) Equal(other Value) bool {
	if v.numeric != other.numeric {
		return false
	}
	if v.numeric {
		return v.count == other.count
	}
	return v.calls == other.calls
}

// String renders the value the way reports display it: the count for
// numeric values, the concatenated pair (e.g. XY) for single-letter calls.
func (v Value) String() string {
	if v.numeric {
		return strconv.Itoa(v.count)
	}
	if len(v.calls[0]) == 1 && len(v.calls[1]) == 1 {
		return v.calls[0] + v.calls[1]
	}
	return v.calls[0] + "/" + v.calls[1]
}
