/*
NAME
  lookup.go

DESCRIPTION
  Palette lookup table construction and sampling.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package color

import (
	"math"

	"github.com/pkg/errors"
)

// hsvTuple is a hue/saturation/value triple; hue in [0,1).
type hsvTuple struct{ h, s, v float64 }

// hslTuple is a hue/saturation/lightness triple; hue in [0,1).
type hslTuple struct{ h, s, l float64 }

func rgbToHSV(c RGB) hsvTuple {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = math.Mod((g-b)/delta, 6)
	case max == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6
	if h < 0 {
		h += 1
	}

	var s float64
	if max != 0 {
		s = delta / max
	}
	return hsvTuple{h: h, s: s, v: max}
}

func hsvToRGB(t hsvTuple) RGB {
	h := math.Mod(t.h, 1.0) * 6
	if h < 0 {
		h += 6
	}
	s := clamp01(t.s)
	v := clamp01(t.v)

	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	w := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, w, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, w
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = w, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{quantize(r), quantize(g), quantize(b)}
}

// rgbToHSL converts via HSV, matching the approximation used by the
// original tooling (v*(1-s/2) luminance formula).
func rgbToHSL(c RGB) hslTuple {
	hsv := rgbToHSV(c)
	l := hsv.v * (1 - hsv.s/2)
	var s float64
	if l != 0 && l != 1 {
		s = (hsv.v - l) / math.Min(l, 1-l)
	}
	return hslTuple{h: hsv.h, s: clamp01(s), l: clamp01(l)}
}

func hslToRGB(t hslTuple) RGB {
	h := math.Mod(t.h, 1.0)
	if h < 0 {
		h += 1
	}
	s := clamp01(t.s)
	l := clamp01(t.l)

	if s == 0 {
		return RGB{quantize(l), quantize(l), quantize(l)}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hueToRGB := func(p, q, t float64) float64 {
		if t < 0 {
			t += 1
		}
		if t > 1 {
			t -= 1
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	r := hueToRGB(p, q, h+1.0/3)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3)
	return RGB{quantize(r), quantize(g), quantize(b)}
}

// interpolateHSV builds `steps` HSV tuples across the palette stops, using
// the shorter hue wrap per segment.
func interpolateHSV(stops []hsvTuple, steps int) ([]hsvTuple, error) {
	counts, err := segmentCounts(len(stops), steps)
	if err != nil {
		return nil, err
	}
	result := make([]hsvTuple, 0, steps)
	for idx, count := range counts {
		a, b := stops[idx], stops[idx+1]
		// count <= 0 matches the original tooling's `if count <= 0: continue`;
		// the max(1, count-1) denominator below (not a count==1 special case)
		// is what keeps a single-step segment from dividing by zero.
		if count <= 0 {
			continue
		}
		for step := 0; step < count; step++ {
			t := float64(step) / float64(max(count-1, 1))
			result = append(result, hsvTuple{
				h: lerpHueUnit(a.h, b.h, t),
				s: lerp(a.s, b.s, t),
				v: lerp(a.v, b.v, t),
			})
		}
	}
	if len(result) > steps {
		result = result[:steps]
	}
	return result, nil
}

// interpolateHSL mirrors interpolateHSV over lightness rather than value.
func interpolateHSL(stops []hslTuple, steps int) ([]hslTuple, error) {
	counts, err := segmentCounts(len(stops), steps)
	if err != nil {
		return nil, err
	}
	result := make([]hslTuple, 0, steps)
	for idx, count := range counts {
		a, b := stops[idx], stops[idx+1]
		// count <= 0 matches the original tooling's `if count <= 0: continue`;
		// the max(1, count-1) denominator below (not a count==1 special case)
		// is what keeps a single-step segment from dividing by zero.
		if count <= 0 {
			continue
		}
		for step := 0; step < count; step++ {
			t := float64(step) / float64(max(count-1, 1))
			result = append(result, hslTuple{
				h: lerpHueUnit(a.h, b.h, t),
				s: lerp(a.s, b.s, t),
				l: lerp(a.l, b.l, t),
			})
		}
	}
	if len(result) > steps {
		result = result[:steps]
	}
	return result, nil
}

// interpolateHSLuv mirrors interpolateHSV, but the hue wraps over degrees.
func interpolateHSLuv(stops []hsluvTuple, steps int) ([]hsluvTuple, error) {
	counts, err := segmentCounts(len(stops), steps)
	if err != nil {
		return nil, err
	}
	result := make([]hsluvTuple, 0, steps)
	for idx, count := range counts {
		a, b := stops[idx], stops[idx+1]
		// count <= 0 matches the original tooling's `if count <= 0: continue`;
		// the max(1, count-1) denominator below (not a count==1 special case)
		// is what keeps a single-step segment from dividing by zero.
		if count <= 0 {
			continue
		}
		for step := 0; step < count; step++ {
			t := float64(step) / float64(max(count-1, 1))
			result = append(result, hsluvTuple{
				h: lerpHueDegrees(a.h, b.h, t),
				s: lerp(a.s, b.s, t),
				l: lerp(a.l, b.l, t),
			})
		}
	}
	if len(result) > steps {
		result = result[:steps]
	}
	return result, nil
}

// BuildLookup builds an ordered RGB lookup table of length `steps` for the
// given hex colour stops, interpolated in `space`.
//
// Invariant: lookup[0] == stops[0] and lookup[steps-1] == stops[len-1]
// after round-tripping through the interpolation space.
func BuildLookup(stops []string, space Space, steps int) ([]RGB, error) {
	if steps <= 0 {
		return nil, errors.Wrap(ErrInvalidPalette, "steps must be positive")
	}
	if len(stops) < 2 {
		return nil, errors.Wrap(ErrInvalidPalette, "palette must contain at least two colours")
	}

	rgbStops := make([]RGB, len(stops))
	for i, s := range stops {
		c, err := ParseHex(s)
		if err != nil {
			return nil, err
		}
		rgbStops[i] = c
	}

	switch space {
	case SpaceHSLuv:
		huStops := make([]hsluvTuple, len(rgbStops))
		for i, c := range rgbStops {
			huStops[i] = rgbToHSLuv(c)
		}
		interp, err := interpolateHSLuv(huStops, steps)
		if err != nil {
			return nil, err
		}
		out := make([]RGB, len(interp))
		for i, t := range interp {
			out[i] = hsluvToRGB(t)
		}
		return out, nil
	case SpaceHSL:
		hlStops := make([]hslTuple, len(rgbStops))
		for i, c := range rgbStops {
			hlStops[i] = rgbToHSL(c)
		}
		interp, err := interpolateHSL(hlStops, steps)
		if err != nil {
			return nil, err
		}
		out := make([]RGB, len(interp))
		for i, t := range interp {
			out[i] = hslToRGB(t)
		}
		return out, nil
	case SpaceHSV:
		hvStops := make([]hsvTuple, len(rgbStops))
		for i, c := range rgbStops {
			hvStops[i] = rgbToHSV(c)
		}
		interp, err := interpolateHSV(hvStops, steps)
		if err != nil {
			return nil, err
		}
		out := make([]RGB, len(interp))
		for i, t := range interp {
			out[i] = hsvToRGB(t)
		}
		return out, nil
	default:
		return nil, errors.Wrapf(ErrInvalidPalette, "unsupported palette space %q", space)
	}
}

// Sample looks up the RGB colour at normalised position t in [0,1].
func Sample(lookup []RGB, t float64) RGB {
	idx := int(clamp01(t) * float64(len(lookup)-1))
	return lookup[idx]
}
