/*
NAME
  sine.go

DESCRIPTION
  Sine wave show generator.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package show

import (
	"math"

	"github.com/synqing/prism/rng"
)

// SineWave generates value = 0.5 + amplitude*sin(angle) per LED, sampled
// through a palette. PhaseOffset, when Seed is set, adds a per-LED
// pseudo-random phase so LEDs are not perfectly in lockstep.
type SineWave struct {
	Palette   *PaletteSampler
	LEDCount  int
	Amplitude float64
	Frequency float64
	Speed     float64
	Direction float64
	Phase     float64

	// Seed, when non-nil, seeds a per-LED phase offset via rng.RandFloat.
	Seed *uint32

	positions    []float64
	phaseOffsets []float64
}

// NewSineWave validates parameters and returns a ready-to-use generator.
func NewSineWave(p *PaletteSampler, ledCount int, fps float64, amplitude, frequency, speed, direction, phase float64, seed *uint32) (*SineWave, error) {
	if err := ValidateCommon(ledCount, fps); err != nil {
		return nil, err
	}
	if amplitude < 0 || amplitude > 1 {
		return nil, wrapInvalidParam("amplitude %v outside [0, 1]", amplitude)
	}
	if frequency < 0 {
		return nil, wrapInvalidParam("frequency %v must not be negative", frequency)
	}

	s := &SineWave{
		Palette: p, LEDCount: ledCount,
		Amplitude: amplitude, Frequency: frequency, Speed: speed,
		Direction: direction, Phase: phase, Seed: seed,
		positions: Positions(ledCount),
	}
	s.phaseOffsets = make([]float64, ledCount)
	if seed != nil {
		for i := range s.phaseOffsets {
			s.phaseOffsets[i] = rng.RandFloat(uint32(i), *seed) * 2 * math.Pi
		}
	}
	return s, nil
}

// FrameAt implements Generator.
func (s *SineWave) FrameAt(t float64) Frame {
	frame := make(Frame, s.LEDCount)
	tau := 2 * math.Pi
	for i, pos := range s.positions {
		angle := tau*(s.Frequency*pos*s.Direction) + tau*s.Speed*t + s.Phase + s.phaseOffsets[i]
		v := 0.5 + s.Amplitude*math.Sin(angle)
		frame[i] = s.Palette.Sample(clamp01(v))
	}
	return frame
}
