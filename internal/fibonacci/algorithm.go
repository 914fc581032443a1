package fibonacci

import (
	"fmt"
	"strings"
)

// Algorithm identifies one of the Fibonacci computation strategies. The set is
// closed: every value outside the declared constants is rejected by Compute.
type Algorithm int

const (
	// Iterative advances the pair (F(i), F(i+1)) n times. O(n) additions.
	Iterative Algorithm = iota
	// Recursive is the textbook two-branch recursion. Exponential time, so it
	// is guarded by a recursion limit.
	Recursive
	// FastDoubling halves n at every level using the doubling identities.
	FastDoubling
	// Matrix raises [[1,1],[1,0]] to the (n-1)-th power by repeated squaring.
	Matrix
	// Memoized fills a table of every F(i) for i in [0, n].
	Memoized
)

// wireNames holds the identifiers used on the message boundary.
var wireNames = [...]string{
	Iterative:    "iterative",
	Recursive:    "recursive",
	FastDoubling: "fastDoubling",
	Matrix:       "matrix",
	Memoized:     "memo",
}

var descriptions = [...]string{
	Iterative:    "Iterative (O(n) additions)",
	Recursive:    "Naive recursion (O(φⁿ), n ≤ limit)",
	FastDoubling: "Fast Doubling (O(log n) multiplications)",
	Matrix:       "Matrix Exponentiation (O(log n) 2x2 products)",
	Memoized:     "Memoized table (O(n) additions, O(n) memory)",
}

// aliases maps accepted user spellings (lower-cased) to algorithms.
var aliases = map[string]Algorithm{
	"iterative":    Iterative,
	"iter":         Iterative,
	"recursive":    Recursive,
	"naive":        Recursive,
	"fastdoubling": FastDoubling,
	"fast":         FastDoubling,
	"doubling":     FastDoubling,
	"matrix":       Matrix,
	"memo":         Memoized,
	"memoized":     Memoized,
}

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{Iterative, Recursive, FastDoubling, Matrix, Memoized}
}

// Valid reports whether a is one of the declared algorithms.
func (a Algorithm) Valid() bool {
	return a >= Iterative && a <= Memoized
}

// String returns the wire identifier of the algorithm.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return wireNames[a]
}

// Description returns a human-readable label including the complexity class.
func (a Algorithm) Description() string {
	if !a.Valid() {
		return a.String()
	}
	return descriptions[a]
}

// ParseAlgorithm resolves a user or wire spelling to an Algorithm.
// Matching is case-insensitive and accepts a few short aliases.
func ParseAlgorithm(s string) (Algorithm, error) {
	if a, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return 0, &UnknownAlgorithmError{Name: s}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, &UnknownAlgorithmError{Name: a.String()}
	}
	return []byte(wireNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
