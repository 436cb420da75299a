/*
NAME
  flow.go

DESCRIPTION
  2-D flow field show generator with a sequential per-LED accumulator.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package show

import (
	"math"

	"github.com/synqing/prism/rng"
)

// FlowField walks a scalar accumulator through LED order, deflecting it by
// a 2-D fractal noise field sampled per LED. The sequential dependency on
// LED index is intentional: it cannot be parallelised across LEDs within
// a single frame without changing the visual output.
type FlowField struct {
	Palette     *PaletteSampler
	LEDCount    int
	FieldScale  float64
	StepSize    float64
	Speed       float64
	Curl        float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Seed        uint32

	positions []float64
}

// NewFlowField validates parameters and returns a ready-to-use generator.
func NewFlowField(p *PaletteSampler, ledCount int, fps, fieldScale, stepSize, speed, curl float64, octaves int, persistence, lacunarity float64, seed uint32) (*FlowField, error) {
	if err := ValidateCommon(ledCount, fps); err != nil {
		return nil, err
	}
	if err := validateFractalParams(octaves, persistence, fieldScale); err != nil {
		return nil, err
	}
	if stepSize <= 0 || stepSize > 1 {
		return nil, wrapInvalidParam("step_size %v outside (0, 1]", stepSize)
	}
	return &FlowField{
		Palette: p, LEDCount: ledCount,
		FieldScale: fieldScale, StepSize: stepSize, Speed: speed, Curl: curl,
		Octaves: octaves, Persistence: persistence, Lacunarity: lacunarity,
		Seed:      seed,
		positions: Positions(ledCount),
	}, nil
}

// FrameAt implements Generator. The accumulator is local to each call so
// FlowField carries no mutable state between frames; only the LED-index
// ordering within a single frame is load-bearing.
func (f *FlowField) FrameAt(t float64) Frame {
	frame := make(Frame, f.LEDCount)
	opt := rng.FractalOptions{Octaves: f.Octaves, Persistence: f.Persistence, Lacunarity: f.Lacunarity}
	accumulator := 0.5
	for i, pos := range f.positions {
		x := pos * f.FieldScale
		y := t * f.Speed
		n := rng.FractalNoise2D(x, y, f.Seed+uint32(i), opt)
		delta := math.Sin(n*2*math.Pi+f.Curl) * f.StepSize
		accumulator = clamp01(accumulator + delta)
		frame[i] = f.Palette.Sample(accumulator)
	}
	return frame
}
