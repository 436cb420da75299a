/*
NAME
  hash.go

DESCRIPTION
  A tiny integer hash providing the entire deterministic RNG surface for
  PRISM show generation. Output is bit-identical across platforms because
  all arithmetic is performed in wrapping 32-bit unsigned integers.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package rng provides deterministic, seedable pseudo-random floats and
// fractal value noise used by the show generators.
package rng

// HashInt hashes x under seed, returning a value uniformly distributed
// over the uint32 range. The computation is pure: no state is read or
// mutated, so it is safe to call concurrently from any number of
// goroutines.
func HashInt(x, seed uint32) uint32 {
	n := x*374761393 + seed*668265263
	n = (n ^ (n >> 13))
	n = n * 1274126177
	return n
}

// RandFloat returns HashInt(x, seed) normalised to [0, 1).
func RandFloat(x, seed uint32) float64 {
	return float64(HashInt(x, seed)) / 4294967296.0
}

// hash2D mixes two coordinates via a second hash, matching the reference
// tooling's `rand(ix, iy)` helper used inside 2-D value noise.
func hash2D(ix, iy int32, seed uint32) float64 {
	n := HashInt(uint32(ix), seed)
	n = HashInt(uint32(iy)^n, seed*1619+uint32(ix)*31337)
	return float64(n) / 4294967296.0
}
