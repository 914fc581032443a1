package orchestration

import (
	"strings"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// SelectAlgorithms resolves the --algo value. "all" selects every algorithm
// in declaration order; otherwise a comma-separated list is parsed, keeping
// the first occurrence of duplicates.
func SelectAlgorithms(list string) ([]fibonacci.Algorithm, error) {
	if strings.EqualFold(strings.TrimSpace(list), "all") {
		return fibonacci.Algorithms(), nil
	}

	var algos []fibonacci.Algorithm
	seen := make(map[fibonacci.Algorithm]bool)
	for _, part := range strings.Split(list, ",") {
		algo, err := fibonacci.ParseAlgorithm(part)
		if err != nil {
			return nil, err
		}
		if !seen[algo] {
			seen[algo] = true
			algos = append(algos, algo)
		}
	}
	return algos, nil
}
