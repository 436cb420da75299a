/*
NAME
  vectors.go

DESCRIPTION
  Golden and mutation vector generation for the parser test harness.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package testbed generates and validates the golden and mutation vector
// corpus used to exercise the header parser against known-good and
// deliberately corrupted inputs.
package testbed

import (
	"github.com/pkg/errors"
	prism "github.com/synqing/prism/container/prism"
)

// Expected outcome categories, matching spec.md §6's vector corpus.
const (
	ExpectedPass             = "pass"
	ExpectedCRCMismatch      = "crc-mismatch"
	ExpectedLengthError      = "length-error"
	ExpectedInvalidRampSpace = "invalid-ramp-space"
)

// Vector is one entry of the golden/mutation corpus: a header blob with
// its expected validation outcome.
type Vector struct {
	Name        string
	Category    string // "golden" or "mutations"
	Payload     []byte
	Description string
	Expected    string
	Tags        []string
}

func defaultBase() prism.HeaderBase {
	return prism.HeaderBase{
		Version:     prism.VersionV11,
		LEDCount:    160,
		FrameCount:  96,
		FPS:         120 * 256,
		ColorFormat: 1,
	}
}

func defaultMeta() prism.MetaV11 {
	return prism.MetaV11{
		Version:         0x01,
		MotionDirection: 1,
		SyncMode:        2,
		Params:          [6]uint16{120, 0, 0, 0, 0, 0},
	}
}

func goldenVectors() ([]Vector, error) {
	base := defaultBase()
	meta := defaultMeta()

	specs := []struct {
		name, desc string
		extra      map[string]interface{}
		tags       []string
	}{
		{
			name: "default_palette",
			desc: "Nominal header with recognised optional fields populated.",
			extra: map[string]interface{}{
				"palette_id":  "sunset-v1",
				"ramp_space":  "hsluv",
				"show_params": map[string]interface{}{"gamma": 1.8, "brightness": 0.85},
			},
			tags: []string{"golden", "metadata"},
		},
		{
			name: "unknown_fields_noop",
			desc: "Optional metadata containing an unknown key to confirm the parser ignores non-recognised fields.",
			extra: map[string]interface{}{
				"palette_id":        "sunrise-inline",
				"ramp_space":        "oklab",
				"show_params":       map[string]interface{}{"gamma": 2.0},
				"experimental_hint": "should-be-ignored",
			},
			tags: []string{"golden", "unknown-field"},
		},
		{
			name:  "no_optional_fields",
			desc:  "Header with no extended metadata to assert defaults apply.",
			extra: map[string]interface{}{},
			tags:  []string{"golden", "defaults"},
		},
	}

	vectors := make([]Vector, len(specs))
	for i, s := range specs {
		blob, err := prism.Build(base, meta, s.extra)
		if err != nil {
			return nil, errors.Wrapf(err, "building golden vector %q", s.name)
		}
		vectors[i] = Vector{
			Name: s.name, Category: "golden", Payload: blob,
			Description: s.desc, Expected: ExpectedPass, Tags: s.tags,
		}
	}
	return vectors, nil
}

// crcFieldOffset is the byte offset of the stored CRC32 field within the
// base header (magic+version+led+frame+fps+cf+cmp+res1 = 20 bytes).
const crcFieldOffset = 20

func mutationCRCFromGolden(source Vector) Vector {
	buf := append([]byte(nil), source.Payload...)
	buf[crcFieldOffset] ^= 0x01
	return Vector{
		Name: "crc_corrupted", Category: "mutations", Payload: buf,
		Description: "Header with flipped CRC byte to trigger validation failure.",
		Expected:    ExpectedCRCMismatch,
		Tags:        []string{"mutation", "crc"},
	}
}

func mutationBitflipMeta(source Vector) Vector {
	buf := append([]byte(nil), source.Payload...)
	// Byte 2 of MetaV11 (sync_mode), within the CRC-covered prefix.
	buf[prism.BaseSize+2] ^= 0x08
	return Vector{
		Name: "meta_bitflip_crc", Category: "mutations", Payload: buf,
		Description: "Metadata change within CRC coverage to ensure detection.",
		Expected:    ExpectedCRCMismatch,
		Tags:        []string{"mutation", "crc"},
	}
}

func mutationTruncatedExtra(source Vector) (Vector, error) {
	if len(source.Payload) < 3 {
		return Vector{}, errors.New("source vector too short to truncate")
	}
	buf := source.Payload[:len(source.Payload)-1]
	return Vector{
		Name: "truncated_extended_metadata", Category: "mutations", Payload: buf,
		Description: "Extended metadata truncated relative to its length field.",
		Expected:    ExpectedLengthError,
		Tags:        []string{"mutation", "length"},
	}, nil
}

func mutationInvalidRamp() (Vector, error) {
	blob, err := prism.Build(defaultBase(), defaultMeta(), map[string]interface{}{
		"palette_id":  "lab-test",
		"ramp_space":  "xyz",
		"show_params": map[string]interface{}{"gamma": 1.65},
	})
	if err != nil {
		return Vector{}, err
	}
	return Vector{
		Name: "invalid_ramp_space", Category: "mutations", Payload: blob,
		Description: "Optional metadata includes an invalid ramp_space enum member.",
		Expected:    ExpectedInvalidRampSpace,
		Tags:        []string{"mutation", "enum"},
	}, nil
}

func mutationVectors(golden []Vector) ([]Vector, error) {
	byName := make(map[string]Vector, len(golden))
	for _, v := range golden {
		byName[v.Name] = v
	}

	truncated, err := mutationTruncatedExtra(byName["unknown_fields_noop"])
	if err != nil {
		return nil, err
	}
	invalidRamp, err := mutationInvalidRamp()
	if err != nil {
		return nil, err
	}

	return []Vector{
		mutationCRCFromGolden(byName["default_palette"]),
		mutationBitflipMeta(byName["default_palette"]),
		truncated,
		invalidRamp,
	}, nil
}

// DefaultVectorSet returns the full golden + mutation corpus, matching
// spec.md §6's required mutation set (CRC bit-flip, metadata bit-flip,
// extension truncation, invalid ramp_space).
func DefaultVectorSet() ([]Vector, error) {
	golden, err := goldenVectors()
	if err != nil {
		return nil, err
	}
	mutations, err := mutationVectors(golden)
	if err != nil {
		return nil, err
	}
	return append(golden, mutations...), nil
}
