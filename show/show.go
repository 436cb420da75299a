/*
NAME
  show.go

DESCRIPTION
  Shared types and parameter validation for PRISM show generators.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package show implements the three deterministic frame-producing show
// families: sine wave, fractal noise morph, and 2-D flow field.
package show

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/synqing/prism/color"
)

// ErrInvalidParameter reports a show parameter outside its valid range.
var ErrInvalidParameter = errors.New("InvalidParameter")

const (
	MaxLEDCount = 4096
	MaxFPS      = 120.0
)

// RGB is a single pixel colour; an alias of color.RGB so callers working
// with shows never need to import color directly for this type.
type RGB = color.RGB

// Frame is an ordered sequence of RGB tuples, one per LED.
type Frame []RGB

// Show is a finite ordered sequence of frames produced at a fixed frame
// rate.
type Show struct {
	LEDCount int
	FPS      float64
	Frames   []Frame
}

// FrameCount returns round(duration*fps) frames, matching spec.md's
// frame_count invariant. Rounding is half-to-even (math.RoundToEven), the
// same tie-breaking Python's built-in round() uses, so exact .5 boundaries
// (e.g. duration*fps == 1.5) land on the same frame count as the original
// tooling.
func FrameCount(duration, fps float64) int {
	n := int(math.RoundToEven(duration * fps))
	if n < 1 {
		n = 1
	}
	return n
}

// Generator produces a Frame for a given elapsed time in seconds.
type Generator interface {
	FrameAt(t float64) Frame
}

// Positions returns ledCount normalised positions in [0,1]; a single LED
// is pinned to 0.
func Positions(ledCount int) []float64 {
	pos := make([]float64, ledCount)
	if ledCount <= 1 {
		return pos
	}
	for i := range pos {
		pos[i] = float64(i) / float64(ledCount-1)
	}
	return pos
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func wrapInvalidParam(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

// ValidateCommon checks the parameters shared by every generator.
func ValidateCommon(ledCount int, fps float64) error {
	if ledCount < 1 || ledCount > MaxLEDCount {
		return errors.Wrapf(ErrInvalidParameter, "led_count %d outside [1, %d]", ledCount, MaxLEDCount)
	}
	if fps <= 0 || fps > MaxFPS {
		return errors.Wrapf(ErrInvalidParameter, "fps %v outside (0, %v]", fps, MaxFPS)
	}
	return nil
}

// Generate runs a Generator across frame_count = FrameCount(duration, fps)
// samples at i/fps, returning a Show.
func Generate(gen Generator, ledCount int, fps, duration float64) Show {
	n := FrameCount(duration, fps)
	frames := make([]Frame, n)
	for i := 0; i < n; i++ {
		frames[i] = gen.FrameAt(float64(i) / fps)
	}
	return Show{LEDCount: ledCount, FPS: fps, Frames: frames}
}

// ParseSeed parses a show seed string as a base-prefixed or decimal
// integer literal ("0x...", "0o...", "0b...", or plain decimal), mirroring
// the original tooling's permissive seed parsing. An empty string yields
// (0, false, nil): no seed was supplied.
func ParseSeed(s string) (seed uint32, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "invalid seed %q", s)
	}
	return uint32(n), true, nil
}
