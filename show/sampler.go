/*
NAME
  sampler.go

DESCRIPTION
  Palette sampler shared by all show generators: builds a lookup table
  once up front and samples it by normalised value thereafter.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package show

import "github.com/synqing/prism/color"

// PaletteSampler wraps a pre-built colour lookup table.
type PaletteSampler struct {
	lookup []color.RGB
}

// NewPaletteSampler builds a palette sampler from hex colour stops.
func NewPaletteSampler(stops []string, space color.Space, steps int) (*PaletteSampler, error) {
	lookup, err := color.BuildLookup(stops, space, steps)
	if err != nil {
		return nil, err
	}
	return &PaletteSampler{lookup: lookup}, nil
}

// Lookup returns the underlying lookup table.
func (p *PaletteSampler) Lookup() []color.RGB { return p.lookup }

// Sample samples the palette at normalised value v in [0,1].
func (p *PaletteSampler) Sample(v float64) RGB {
	return color.Sample(p.lookup, v)
}
