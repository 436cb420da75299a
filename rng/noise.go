/*
NAME
  noise.go

DESCRIPTION
  1-D/2-D deterministic value noise with Perlin-fade interpolation and
  fractal octave stacking.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package rng

import "math"

// fade is the Perlin fade curve t^3(t(6t-15)+10), used to smooth linear
// and bilinear interpolation between integer lattice points.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ValueNoise1D samples 1-D value noise at fractional position x.
func ValueNoise1D(x float64, seed uint32) float64 {
	xi := math.Floor(x)
	xf := x - xi
	v0 := RandFloat(uint32(int32(xi)), seed)
	v1 := RandFloat(uint32(int32(xi)+1), seed)
	return lerp(v0, v1, fade(xf))
}

// ValueNoise2D samples 2-D value noise at fractional position (x, y).
func ValueNoise2D(x, y float64, seed uint32) float64 {
	xi := int32(math.Floor(x))
	yi := int32(math.Floor(y))
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	v00 := hash2D(xi, yi, seed)
	v10 := hash2D(xi+1, yi, seed)
	v01 := hash2D(xi, yi+1, seed)
	v11 := hash2D(xi+1, yi+1, seed)

	ix0 := lerp(v00, v10, fade(xf))
	ix1 := lerp(v01, v11, fade(xf))
	return lerp(ix0, ix1, fade(yf))
}

// FractalOptions configures octave stacking shared by FractalNoise1D and
// FractalNoise2D.
type FractalOptions struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// FractalNoise1D sums Octaves evaluations of ValueNoise1D, multiplying the
// frequency by Lacunarity and the amplitude by Persistence per octave,
// normalised by the cumulative
// amplitude so the result stays in [0, 1].
func FractalNoise1D(x float64, seed uint32, opt FractalOptions) float64 {
	octaves := opt.Octaves
	if octaves < 1 {
		octaves = 1
	}
	amplitude := 1.0
	frequency := 1.0
	maxValue := 0.0
	total := 0.0
	for k := 0; k < octaves; k++ {
		total += amplitude * ValueNoise1D(x*frequency, seed+uint32(k*101))
		maxValue += amplitude
		amplitude *= opt.Persistence
		frequency *= opt.Lacunarity
	}
	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}

// FractalNoise2D sums Octaves evaluations of ValueNoise2D, multiplying the
// frequency by Lacunarity and the amplitude by Persistence per octave,
// normalised by the cumulative
// amplitude so the result stays in [0, 1].
func FractalNoise2D(x, y float64, seed uint32, opt FractalOptions) float64 {
	octaves := opt.Octaves
	if octaves < 1 {
		octaves = 1
	}
	amplitude := 1.0
	frequency := 1.0
	maxValue := 0.0
	total := 0.0
	for k := 0; k < octaves; k++ {
		total += amplitude * ValueNoise2D(x*frequency, y*frequency, seed+uint32(k*131))
		maxValue += amplitude
		amplitude *= opt.Persistence
		frequency *= opt.Lacunarity
	}
	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}
