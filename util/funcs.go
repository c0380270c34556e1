package util

import (
	"cmp"
	"hash/fnv"
	"iter"

	set "github.com/hashicorp/go-set/v3"
)

// HashString hashes s with the same fnv function the Hash methods use.
func HashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Cartesian yields every combination picking one element from each choice
// slice, in order. An empty choice slice anywhere yields nothing at all.
// The yielded slice is reused between iterations; copy it if you keep it.
func Cartesian[A any](choices [][]A) iter.Seq[[]A] {
	return func(yield func([]A) bool) {
		for _, choice := range choices {
			if len(choice) == 0 {
				return
			}
		}
		combo := make([]A, len(choices))
		var walk func(i int) bool
		walk = func(i int) bool {
			if i == len(choices) {
				return yield(combo)
			}
			for _, elem := range choices[i] {
				combo[i] = elem
				if !walk(i + 1) {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}

// ComparingHashable orders values by their hash, for deterministic printing
// of hash-keyed sets.
func ComparingHashable[A set.Hasher[B], B set.Hash](a, b A) int {
	return cmp.Compare(a.Hash(), b.Hash())
}
