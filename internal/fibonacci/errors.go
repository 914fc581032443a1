package fibonacci

import (
	"errors"
	"fmt"
)

// ErrInputTooLarge is matched (via errors.Is) by every InputTooLargeError.
var ErrInputTooLarge = errors.New("input too large")

// ErrUnknownAlgorithm is matched (via errors.Is) by every UnknownAlgorithmError.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// InputTooLargeError is returned when an algorithm refuses an index that
// exceeds its configured limit.
type InputTooLargeError struct {
	Algorithm Algorithm
	N         uint64
	Limit     uint64
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("n=%d is too large for %s computation (limit %d)", e.N, e.Algorithm, e.Limit)
}

// Is makes errors.Is(err, ErrInputTooLarge) succeed.
func (e *InputTooLargeError) Is(target error) bool {
	return target == ErrInputTooLarge
}

// UnknownAlgorithmError is returned for identifiers outside the supported set.
type UnknownAlgorithmError struct {
	Name string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown algorithm %q (want one of iterative, recursive, fastDoubling, matrix, memo)", e.Name)
}

// Is makes errors.Is(err, ErrUnknownAlgorithm) succeed.
func (e *UnknownAlgorithmError) Is(target error) bool {
	return target == ErrUnknownAlgorithm
}
