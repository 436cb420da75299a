/*
NAME
  manifest.go

DESCRIPTION
  Sidecar manifest JSON emitted alongside every built artifact.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import (
	"fmt"

	prismcodec "github.com/synqing/prism/codec/prism"
)

// FrameManifest is one entry of Manifest.Frames.
type FrameManifest struct {
	Index int  `json:"index"`
	Bytes int  `json:"bytes"`
	Delta bool `json:"delta"`
	RLE   bool `json:"rle"`
}

// Manifest is the JSON sidecar spec.md §6 describes: build statistics
// and every field needed to audit an artifact without re-parsing it.
type Manifest struct {
	Palette       []string        `json:"palette"`
	PaletteSize   int             `json:"palette_size"`
	LEDCount      int             `json:"led_count"`
	FrameCount    int             `json:"frame_count"`
	FPS           float64         `json:"fps"`
	PayloadCRC32  string          `json:"payload_crc32"`
	HeaderCRC32   string          `json:"header_crc32"`
	RoundtripHash string          `json:"roundtrip_hash"`
	Frames        []FrameManifest `json:"frames"`

	CompressionRatio float64 `json:"compression_ratio"`
	EncodeMS         float64 `json:"encode_ms"`
	DecodeMS         float64 `json:"decode_ms"`
	FileBytes        int     `json:"file_bytes"`

	// Supplemented quantization stats, carried over from the original
	// tool's report (tools/prism_packaging.py) beyond what spec.md's
	// manifest shape lists explicitly.
	PaletteColorsBefore int  `json:"palette_colors_before"`
	PaletteColorsAfter  int  `json:"palette_colors_after"`
	Quantized           bool `json:"quantized"`
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}

func frameManifests(stats []prismcodec.FrameStats) []FrameManifest {
	out := make([]FrameManifest, len(stats))
	for i, s := range stats {
		out[i] = FrameManifest{Index: s.Index, Bytes: s.Bytes, Delta: s.Delta, RLE: s.RLE}
	}
	return out
}
