// Package sample provides pure randomized selection helpers. Every function
// returns a fresh slice and leaves its input untouched, so callers can share
// pools between sessions safely.
package sample

import "math/rand"

// Shuffle returns a uniform-random permutation of items using Fisher-Yates.
// The input slice is not modified. A nil rng falls back to the global source.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng != nil {
		rng.Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}

// Take returns up to n items drawn uniformly at random without replacement.
// n <= 0 or n >= len(items) yields a full permutation.
func Take[T any](items []T, n int, rng *rand.Rand) []T {
	out := Shuffle(items, rng)
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
