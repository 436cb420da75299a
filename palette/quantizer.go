/*
NAME
  quantizer.go

DESCRIPTION
  Agglomerative nearest-pair palette quantizer: reduces an arbitrary RGB
  colour histogram to at most MaxSize entries.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package palette reduces a per-pixel RGB colour histogram to a bounded
// palette via nearest-pair agglomerative merging.
package palette

import (
	"math"

	"github.com/synqing/prism/color"
	"gonum.org/v1/gonum/floats"
)

// DefaultMaxSize is the default bound on palette entries (spec.md's
// ≤64-entry indexed-frame constraint).
const DefaultMaxSize = 64

// Histogram counts RGB colour occurrences in first-seen order, mirroring
// Python's insertion-ordered collections.Counter so that merge tie-breaks
// are reproducible from the order pixels were observed in, not from an
// incidental map iteration order.
type Histogram struct {
	order  []color.RGB
	counts map[color.RGB]int
}

// NewHistogram returns an empty colour histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[color.RGB]int)}
}

// Add records one occurrence of c.
func (h *Histogram) Add(c color.RGB) {
	if _, ok := h.counts[c]; !ok {
		h.order = append(h.order, c)
	}
	h.counts[c]++
}

// AddFrame records one occurrence of every pixel in frame.
func (h *Histogram) AddFrame(frame []color.RGB) {
	for _, c := range frame {
		h.Add(c)
	}
}

// entry is a working quantizer bucket: a representative colour, the
// number of input pixels it represents, and the set of original colours
// folded into it.
type entry struct {
	color     color.RGB
	count     int
	originals []color.RGB
}

// Stats summarises a quantization run.
type Stats struct {
	ColorsBefore int
	ColorsAfter  int
	Quantized    bool
}

// Result is the output of Quantize: the final palette (insertion order
// after merges), a colour-to-colour remap table covering every input
// colour, and summary stats.
type Result struct {
	Palette []color.RGB
	Remap   map[color.RGB]color.RGB
	Stats   Stats
}

// Quantize reduces h to at most maxSize palette entries. If maxSize <= 0,
// DefaultMaxSize is used.
//
// Every input colour maps to exactly one remap target and the remap is
// idempotent: Remap[Remap[c]] == Remap[c] for every palette colour c.
// When h already has maxSize or fewer distinct colours, the merge step is
// skipped and the identity remap is returned.
func Quantize(h *Histogram, maxSize int) Result {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	entries := make([]entry, len(h.order))
	for i, c := range h.order {
		entries[i] = entry{color: c, count: h.counts[c], originals: []color.RGB{c}}
	}

	stats := Stats{ColorsBefore: len(entries), ColorsAfter: len(entries)}

	if len(entries) <= maxSize {
		return buildResult(entries, stats)
	}

	for len(entries) > maxSize {
		bestI, bestJ := 0, 1
		bestDist := distanceSq(entries[0].color, entries[1].color)
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				d := distanceSq(entries[i].color, entries[j].color)
				if d < bestDist {
					bestDist = d
					bestI, bestJ = i, j
				}
			}
		}
		entries = mergeEntries(entries, bestI, bestJ)
	}

	stats.ColorsAfter = len(entries)
	return buildResult(entries, stats)
}

func buildResult(entries []entry, stats Stats) Result {
	pal := make([]color.RGB, len(entries))
	remap := make(map[color.RGB]color.RGB)
	for i, e := range entries {
		pal[i] = e.color
		for _, orig := range e.originals {
			remap[orig] = e.color
		}
	}
	// A merged colour need not be one of the inputs; mapping every palette
	// colour to itself keeps the remap idempotent.
	for _, c := range pal {
		remap[c] = c
	}
	stats.Quantized = stats.ColorsBefore != stats.ColorsAfter
	return Result{Palette: pal, Remap: remap, Stats: stats}
}

// distanceSq returns the squared Euclidean distance between two colours'
// channel vectors, computed with gonum/floats so the comparison reduces
// over a vector rather than three hand-written subtractions.
func distanceSq(a, b color.RGB) float64 {
	av := []float64{float64(a.R), float64(a.G), float64(a.B)}
	bv := []float64{float64(b.R), float64(b.G), float64(b.B)}
	d := floats.Distance(av, bv, 2)
	return d * d
}

// mergeEntries merges entries[i] and entries[j] into a new entry whose
// colour is the count-weighted mean rounded to the nearest integer per
// channel, folding into an existing entry of the same resulting colour
// if one already exists.
func mergeEntries(entries []entry, i, j int) []entry {
	a, b := entries[i], entries[j]
	total := a.count + b.count
	weighted := func(ac, bc uint8) uint8 {
		v := (float64(ac)*float64(a.count) + float64(bc)*float64(b.count)) / float64(total)
		// Half-to-even, matching the Python tooling's
		// int(round((colour_i*count_i + colour_j*count_j) / total)).
		return uint8(math.RoundToEven(v))
	}
	merged := color.RGB{
		R: weighted(a.color.R, b.color.R),
		G: weighted(a.color.G, b.color.G),
		B: weighted(a.color.B, b.color.B),
	}
	originals := append(append([]color.RGB{}, a.originals...), b.originals...)

	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	rest := make([]entry, 0, len(entries)-1)
	for idx, e := range entries {
		if idx == lo || idx == hi {
			continue
		}
		rest = append(rest, e)
	}

	for idx := range rest {
		if rest[idx].color == merged {
			rest[idx].count += total
			rest[idx].originals = append(rest[idx].originals, originals...)
			return rest
		}
	}
	return append(rest, entry{color: merged, count: total, originals: originals})
}
