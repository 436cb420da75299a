/*
NAME
  assembler.go

DESCRIPTION
  Package Assembler: wires the quantizer and frame codec into a complete
  PRISM artifact, with a mandatory round-trip self-check on every build.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	prismcodec "github.com/synqing/prism/codec/prism"
	"github.com/synqing/prism/color"
	"github.com/synqing/prism/palette"
)

// BuildInput is everything the assembler needs beyond the raw frames:
// the parameters that flow into the v1.1 header and manifest.
type BuildInput struct {
	LEDCount  int
	FPS       float64
	RampSpace string
	MaxColors int // 0 uses palette.DefaultMaxSize
}

// Artifact is the result of Assemble: the final byte-exact file contents
// and its sidecar manifest.
type Artifact struct {
	Bytes    []byte
	Manifest Manifest
}

// Assemble runs the full C4→C5→C6→C7 pipeline over frames (one []RGB per
// frame, led_count pixels each) and returns the finished artifact. It
// performs the mandatory round-trip check described in spec.md §4.7 and
// returns ErrRoundtripMismatch if the decoded frames diverge from the
// quantized input.
func Assemble(in BuildInput, frames [][]color.RGB) (Artifact, error) {
	maxColors := in.MaxColors
	if maxColors <= 0 {
		maxColors = palette.DefaultMaxSize
	}

	hist := palette.NewHistogram()
	for _, frame := range frames {
		hist.AddFrame(frame)
	}
	quant := palette.Quantize(hist, maxColors)

	remapped := make([][]color.RGB, len(frames))
	for i, frame := range frames {
		row := make([]color.RGB, len(frame))
		for j, px := range frame {
			row[j] = quant.Remap[px]
		}
		remapped[i] = row
	}

	paletteIndex := make(map[color.RGB]int, len(quant.Palette))
	for i, c := range quant.Palette {
		paletteIndex[c] = i
	}
	indices := make([][]int, len(remapped))
	for i, frame := range remapped {
		row := make([]int, len(frame))
		for j, px := range frame {
			idx, ok := paletteIndex[px]
			if !ok {
				return Artifact{}, errors.Errorf("colour %v missing from palette (palette too small)", px)
			}
			row[j] = idx
		}
		indices[i] = row
	}

	encodeStart := time.Now()
	encoded, err := prismcodec.Encode(quant.Palette, indices)
	if err != nil {
		return Artifact{}, err
	}
	encodeMS := float64(time.Since(encodeStart).Microseconds()) / 1000.0

	base := HeaderBase{
		Version:    VersionV11,
		LEDCount:   uint16(in.LEDCount),
		FrameCount: uint32(len(frames)),
		// round(fps * 256), half-to-even, matching the Python tooling's
		// int(round(meta.fps * 256)) at the exact same tie boundaries.
		FPS:         uint32(math.RoundToEven(in.FPS * 256)),
		ColorFormat: 1, // palette + indices
		Compression: 0,
	}
	meta := MetaV11{Version: 0x01}
	extra := map[string]interface{}{
		"ramp_space": in.RampSpace,
		"palette_id": fmt.Sprintf("palette-%d", len(quant.Palette)),
	}
	headerBlob, err := Build(base, meta, extra)
	if err != nil {
		return Artifact{}, err
	}

	payloadCRC := PayloadCRC32(encoded.Payload)
	artifact := make([]byte, 0, len(headerBlob)+len(encoded.Payload)+4)
	artifact = append(artifact, headerBlob...)
	artifact = append(artifact, encoded.Payload...)
	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], payloadCRC)
	artifact = append(artifact, crcBuf[:]...)

	// Re-read the artifact exactly as a consumer would: slice the payload
	// at the header-declared offsets and recompute its CRC32, matching
	// tools/validation/prism_sanity.py's check_file. This is distinct from
	// the in-memory codec round-trip below: it verifies the persisted byte
	// layout itself, not just the encode/decode algorithms.
	if _, _, err := ParseArtifact(artifact); err != nil {
		return Artifact{}, errors.Wrap(err, "verifying freshly built artifact bytes")
	}

	decodeStart := time.Now()
	decodedPalette, decodedIndices, err := prismcodec.Decode(encoded.Payload, in.LEDCount)
	if err != nil {
		return Artifact{}, errors.Wrap(err, "round-trip decode failed")
	}
	decodedFrames, err := prismcodec.Resolve(decodedPalette, decodedIndices)
	if err != nil {
		return Artifact{}, errors.Wrap(err, "round-trip resolve failed")
	}
	decodeMS := float64(time.Since(decodeStart).Microseconds()) / 1000.0

	originalHash, err := roundtripHash(remapped)
	if err != nil {
		return Artifact{}, err
	}
	decodedHash, err := roundtripHash(decodedFrames)
	if err != nil {
		return Artifact{}, err
	}
	if originalHash != decodedHash {
		return Artifact{}, errors.Wrapf(ErrRoundtripMismatch, "original hash 0x%08X, decoded hash 0x%08X", originalHash, decodedHash)
	}

	parsedHeader, err := Parse(headerBlob)
	if err != nil {
		return Artifact{}, errors.Wrap(err, "re-parsing freshly built header")
	}

	hexPalette := make([]string, len(quant.Palette))
	for i, c := range quant.Palette {
		hexPalette[i] = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}

	rawBytes := float64(encoded.RawBytes)
	totalBytes := float64(len(encoded.Payload))
	compressionRatio := 0.0
	if totalBytes > 0 {
		compressionRatio = rawBytes / totalBytes
	}

	manifest := Manifest{
		Palette:             hexPalette,
		PaletteSize:         len(quant.Palette),
		LEDCount:            in.LEDCount,
		FrameCount:          len(frames),
		FPS:                 in.FPS,
		PayloadCRC32:        hex32(payloadCRC),
		HeaderCRC32:         hex32(parsedHeader.Base.CRC32),
		RoundtripHash:       hex32(decodedHash),
		Frames:              frameManifests(encoded.Frames),
		CompressionRatio:    compressionRatio,
		EncodeMS:            encodeMS,
		DecodeMS:            decodeMS,
		FileBytes:           len(artifact),
		PaletteColorsBefore: quant.Stats.ColorsBefore,
		PaletteColorsAfter:  quant.Stats.ColorsAfter,
		Quantized:           quant.Stats.Quantized,
	}

	return Artifact{Bytes: artifact, Manifest: manifest}, nil
}

// roundtripHash is CRC32 over a canonical JSON serialization of the
// frame list, matching spec.md §4.7's round-trip verification: since
// frames are plain nested arrays (no object keys to sort), Go's
// deterministic array encoding already agrees with the Python reference's
// json.dumps(..., sort_keys=True) on this shape.
func roundtripHash(frames [][]color.RGB) (uint32, error) {
	encoded := make([][][3]uint8, len(frames))
	for i, frame := range frames {
		row := make([][3]uint8, len(frame))
		for j, px := range frame {
			row[j] = [3]uint8{px.R, px.G, px.B}
		}
		encoded[i] = row
	}
	buf, err := json.Marshal(encoded)
	if err != nil {
		return 0, errors.Wrap(err, "encoding round-trip hash input")
	}
	return PayloadCRC32(buf), nil
}
