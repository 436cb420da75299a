/*
NAME
  colors.go

DESCRIPTION
  Hex colour parsing and palette-stop interpolation for PRISM shows.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package color provides hex colour parsing and palette lookup table
// construction in HSV, HSL and HSLuv interpolation spaces.
package color

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// DefaultLookupSteps is the default number of entries in a palette lookup
// table built by BuildLookup.
const DefaultLookupSteps = 1024

// Space names an interpolation colour space for palette stops.
type Space string

// Supported interpolation spaces.
const (
	SpaceHSV   Space = "hsv"
	SpaceHSL   Space = "hsl"
	SpaceHSLuv Space = "hsluv"
)

// RGB is an 8-bit-per-channel colour.
type RGB struct {
	R, G, B uint8
}

// ErrInvalidPalette reports a palette-construction failure: an empty
// palette, a single stop, an invalid hex string, or an unrecognised
// interpolation space.
var ErrInvalidPalette = errors.New("InvalidPalette")

// ParseHex parses a "#RGB" or "#RRGGBB" hex colour string.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return RGB{}, errors.Wrapf(ErrInvalidPalette, "invalid hex colour length %q", s)
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		n, err := parseHexByte(s[i*2 : i*2+2])
		if err != nil {
			return RGB{}, errors.Wrapf(ErrInvalidPalette, "invalid hex colour %q", s)
		}
		v[i] = n
	}
	return RGB{v[0], v[1], v[2]}, nil
}

func parseHexByte(s string) (uint8, error) {
	var n int
	for _, c := range []byte(s) {
		n <<= 4
		switch {
		case c >= '0' && c <= '9':
			n |= int(c - '0')
		case c >= 'a' && c <= 'f':
			n |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n |= int(c-'A') + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return uint8(n), nil
}

// clamp01 clamps a float64 to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// quantize rounds a [0,1] value to the nearest uint8 channel value.
func quantize(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

// lerp linearly interpolates between a and b at t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpHueUnit interpolates a hue in [0,1) along its shorter wrap.
func lerpHueUnit(a, b, t float64) float64 {
	delta := math.Mod(b-a, 1.0)
	if delta < 0 {
		delta += 1.0
	}
	if delta > 0.5 {
		delta -= 1.0
	}
	h := math.Mod(a+delta*t, 1.0)
	if h < 0 {
		h += 1.0
	}
	return h
}

// lerpHueDegrees interpolates a hue in [0,360) along its shorter wrap.
func lerpHueDegrees(a, b, t float64) float64 {
	delta := math.Mod(b-a, 360.0)
	if delta < 0 {
		delta += 360.0
	}
	if delta > 180.0 {
		delta -= 360.0
	}
	h := math.Mod(a+delta*t, 360.0)
	if h < 0 {
		h += 360.0
	}
	return h
}

// segmentCounts distributes steps across stopCount-1 segments, giving each
// segment floor(steps/segments) entries with the remainder distributed
// round-robin starting at segment 0.
func segmentCounts(stopCount, steps int) ([]int, error) {
	if stopCount < 2 {
		return nil, errors.Wrap(ErrInvalidPalette, "palette must contain at least two colour stops")
	}
	segments := stopCount - 1
	counts := make([]int, segments)
	base := steps / segments
	for i := range counts {
		counts[i] = base
	}
	remainder := steps - base*segments
	for i := 0; remainder > 0; i++ {
		counts[i%segments]++
		remainder--
	}
	return counts, nil
}
