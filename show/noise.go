/*
NAME
  noise.go

DESCRIPTION
  Fractal value-noise show generator ("noise morph").

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package show

import "github.com/synqing/prism/rng"

// NoiseMorph drifts each LED's palette position along a 1-D fractal noise
// field as time advances.
type NoiseMorph struct {
	Palette     *PaletteSampler
	LEDCount    int
	Scale       float64
	Speed       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Seed        uint32

	positions []float64
}

// NewNoiseMorph validates parameters and returns a ready-to-use generator.
func NewNoiseMorph(p *PaletteSampler, ledCount int, fps, scale, speed float64, octaves int, persistence, lacunarity float64, seed uint32) (*NoiseMorph, error) {
	if err := ValidateCommon(ledCount, fps); err != nil {
		return nil, err
	}
	if err := validateFractalParams(octaves, persistence, scale); err != nil {
		return nil, err
	}
	return &NoiseMorph{
		Palette: p, LEDCount: ledCount,
		Scale: scale, Speed: speed,
		Octaves: octaves, Persistence: persistence, Lacunarity: lacunarity,
		Seed:      seed,
		positions: Positions(ledCount),
	}, nil
}

// FrameAt implements Generator.
func (n *NoiseMorph) FrameAt(t float64) Frame {
	frame := make(Frame, n.LEDCount)
	opt := rng.FractalOptions{Octaves: n.Octaves, Persistence: n.Persistence, Lacunarity: n.Lacunarity}
	for i, pos := range n.positions {
		v := rng.FractalNoise1D(pos*n.Scale+n.Speed*t, n.Seed, opt)
		frame[i] = n.Palette.Sample(clamp01(v))
	}
	return frame
}

func validateFractalParams(octaves int, persistence, scale float64) error {
	if octaves < 1 || octaves > 8 {
		return wrapInvalidParam("octaves %d outside [1, 8]", octaves)
	}
	if persistence < 0 || persistence > 1 {
		return wrapInvalidParam("persistence %v outside [0, 1]", persistence)
	}
	if scale < 0 {
		return wrapInvalidParam("scale %v must not be negative", scale)
	}
	return nil
}
