/*
NAME
  input.go

DESCRIPTION
  Loading of Show JSON payloads: either raw RGB frame data (spec.md §6's
  external interface) or a generator specification that drives C1-C3 to
  produce frames.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/synqing/prism/color"
	"github.com/synqing/prism/show"
)

// rawPayload mirrors spec.md §6's Show JSON payload: either a multi-frame
// "frames" array or a single-frame "rgb" array, plus metadata describing
// the strand and palette.
type rawPayload struct {
	Version int `json:"version"`
	Data    struct {
		Frames [][][3]int `json:"frames"`
		RGB    [][3]int   `json:"rgb"`
	} `json:"data"`
	Meta rawMeta `json:"meta"`
}

type rawMeta struct {
	FPS       float64  `json:"fps"`
	Palette   []string `json:"palette"`
	RampSpace string   `json:"ramp_space"`
	LEDCount  int      `json:"led_count"`

	// Generator fields: when ShowType is non-empty, frames are synthesised
	// by show.Generate instead of being read from Data.
	ShowType   string     `json:"show_type"`
	Duration   float64    `json:"duration"`
	Seed       string     `json:"seed"`
	ShowParams showParams `json:"show_params"`
}

// showParams collects the per-family generator parameters, matching
// tools/show_to_prism.py's --wave-*/--noise-*/--flow-* flag groups
// translated into one JSON object.
type showParams struct {
	WaveAmplitude float64 `json:"wave_amplitude"`
	WaveFrequency float64 `json:"wave_frequency"`
	WaveSpeed     float64 `json:"wave_speed"`
	WaveDirection float64 `json:"wave_direction"`
	WavePhase     float64 `json:"wave_phase"`

	NoiseScale       float64 `json:"noise_scale"`
	NoiseSpeed       float64 `json:"noise_speed"`
	NoiseOctaves     int     `json:"noise_octaves"`
	NoisePersistence float64 `json:"noise_persistence"`
	NoiseLacunarity  float64 `json:"noise_lacunarity"`

	FlowFieldScale  float64 `json:"flow_field_scale"`
	FlowStepSize    float64 `json:"flow_step_size"`
	FlowSpeed       float64 `json:"flow_speed"`
	FlowCurl        float64 `json:"flow_curl"`
	FlowOctaves     int     `json:"flow_octaves"`
	FlowPersistence float64 `json:"flow_persistence"`
	FlowLacunarity  float64 `json:"flow_lacunarity"`
}

// loadedShow is the normalised result of reading a Show JSON payload,
// ready to be handed to container/prism.Assemble.
type loadedShow struct {
	Frames    [][]color.RGB
	LEDCount  int
	FPS       float64
	RampSpace string
}

// LoadShow reads path and returns a normalised frame set. Raw "frames"/
// "rgb" payloads are used directly; a payload carrying a non-empty
// "show_type" is instead synthesised through the show generators.
func LoadShow(path string) (loadedShow, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return loadedShow{}, errors.Wrapf(err, "reading show payload %q", path)
	}
	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return loadedShow{}, errors.Wrapf(err, "parsing show payload %q", path)
	}

	if payload.Meta.ShowType != "" {
		return generateShow(payload)
	}
	return literalShow(payload)
}

func literalShow(payload rawPayload) (loadedShow, error) {
	var frames [][][3]int
	switch {
	case len(payload.Data.Frames) > 0:
		frames = payload.Data.Frames
	case len(payload.Data.RGB) > 0:
		frames = [][][3]int{payload.Data.RGB}
	default:
		return loadedShow{}, errors.New("show payload has neither data.frames nor data.rgb")
	}

	ledCount := payload.Meta.LEDCount
	if ledCount == 0 && len(frames) > 0 {
		ledCount = len(frames[0])
	}

	out := make([][]color.RGB, len(frames))
	for i, frame := range frames {
		row := make([]color.RGB, len(frame))
		for j, px := range frame {
			row[j] = color.RGB{R: uint8(px[0]), G: uint8(px[1]), B: uint8(px[2])}
		}
		out[i] = row
	}

	return loadedShow{
		Frames:    out,
		LEDCount:  ledCount,
		FPS:       payload.Meta.FPS,
		RampSpace: payload.Meta.RampSpace,
	}, nil
}

func generateShow(payload rawPayload) (loadedShow, error) {
	meta := payload.Meta
	sampler, err := show.NewPaletteSampler(meta.Palette, color.Space(meta.RampSpace), 256)
	if err != nil {
		return loadedShow{}, errors.Wrap(err, "building palette sampler")
	}

	seed, hasSeed, err := show.ParseSeed(meta.Seed)
	if err != nil {
		return loadedShow{}, err
	}

	var gen show.Generator
	p := meta.ShowParams
	switch meta.ShowType {
	case "sine":
		var seedPtr *uint32
		if hasSeed {
			seedPtr = &seed
		}
		gen, err = show.NewSineWave(sampler, meta.LEDCount, meta.FPS, p.WaveAmplitude, p.WaveFrequency, p.WaveSpeed, p.WaveDirection, p.WavePhase, seedPtr)
	case "noise":
		gen, err = show.NewNoiseMorph(sampler, meta.LEDCount, meta.FPS, p.NoiseScale, p.NoiseSpeed, p.NoiseOctaves, p.NoisePersistence, p.NoiseLacunarity, seed)
	case "flow":
		gen, err = show.NewFlowField(sampler, meta.LEDCount, meta.FPS, p.FlowFieldScale, p.FlowStepSize, p.FlowSpeed, p.FlowCurl, p.FlowOctaves, p.FlowPersistence, p.FlowLacunarity, seed)
	default:
		return loadedShow{}, errors.Errorf("unsupported show_type %q", meta.ShowType)
	}
	if err != nil {
		return loadedShow{}, errors.Wrap(err, "constructing show generator")
	}

	built := show.Generate(gen, meta.LEDCount, meta.FPS, payload.Meta.Duration)
	frames := make([][]color.RGB, len(built.Frames))
	for i, f := range built.Frames {
		frames[i] = []color.RGB(f)
	}

	return loadedShow{
		Frames:    frames,
		LEDCount:  meta.LEDCount,
		FPS:       meta.FPS,
		RampSpace: meta.RampSpace,
	}, nil
}
