/*
NAME
  assembler_test.go

DESCRIPTION
  Package Assembler integration tests.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import (
	"errors"
	"testing"

	"github.com/synqing/prism/color"
)

func solidFrame(ledCount int, c color.RGB) []color.RGB {
	frame := make([]color.RGB, ledCount)
	for i := range frame {
		frame[i] = c
	}
	return frame
}

func TestAssembleRoundTripsCleanly(t *testing.T) {
	red := color.RGB{R: 255}
	blue := color.RGB{B: 255}
	frames := [][]color.RGB{
		solidFrame(8, red),
		solidFrame(8, blue),
		solidFrame(8, red),
	}
	art, err := Assemble(BuildInput{LEDCount: 8, FPS: 2, RampSpace: "hsv"}, frames)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if art.Manifest.PaletteSize != 2 {
		t.Errorf("palette size = %d, want 2", art.Manifest.PaletteSize)
	}
	if art.Manifest.FrameCount != 3 {
		t.Errorf("frame count = %d, want 3", art.Manifest.FrameCount)
	}
	if art.Manifest.Quantized {
		t.Error("two distinct colours under max_size should not quantize")
	}

	parsed, err := Parse(art.Bytes)
	if err != nil {
		t.Fatalf("re-parsing built header: %v", err)
	}
	if parsed.Base.LEDCount != 8 {
		t.Errorf("header led_count = %d, want 8", parsed.Base.LEDCount)
	}
	if warnings, err := Validate(parsed); err != nil || len(warnings) != 0 {
		t.Errorf("Validate() = %v, %v, want clean", warnings, err)
	}

	artifactHeader, payload, err := ParseArtifact(art.Bytes)
	if err != nil {
		t.Fatalf("ParseArtifact: %v", err)
	}
	if artifactHeader.Base.LEDCount != 8 {
		t.Errorf("artifact header led_count = %d, want 8", artifactHeader.Base.LEDCount)
	}
	if len(payload) == 0 {
		t.Error("expected a non-empty payload slice")
	}
}

func TestParseArtifactDetectsCorruptedPayload(t *testing.T) {
	red := color.RGB{R: 255}
	blue := color.RGB{B: 255}
	frames := [][]color.RGB{solidFrame(4, red), solidFrame(4, blue)}
	art, err := Assemble(BuildInput{LEDCount: 4, FPS: 5, RampSpace: "hsv"}, frames)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	corrupted := append([]byte(nil), art.Bytes...)
	// Flip a byte inside the payload, strictly before the trailing CRC32.
	corrupted[len(corrupted)-5] ^= 0xFF

	header, payload, err := ParseArtifact(corrupted)
	if !errors.Is(err, ErrPayloadCrcMismatch) {
		t.Fatalf("ParseArtifact() error = %v, want ErrPayloadCrcMismatch", err)
	}
	if header == nil {
		t.Fatal("expected parsed header to still be returned alongside the CRC error")
	}
	if payload == nil {
		t.Fatal("expected the sliced payload to still be returned alongside the CRC error")
	}
}

func TestParseArtifactRejectsTruncatedTrailer(t *testing.T) {
	red := color.RGB{R: 255}
	art, err := Assemble(BuildInput{LEDCount: 4, FPS: 5, RampSpace: "hsv"}, [][]color.RGB{solidFrame(4, red)})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// The artifact carries no payload length, so dropping two trailer bytes
	// leaves enough bytes for a payload + CRC32 and the truncation surfaces
	// as a payload CRC mismatch.
	truncated := art.Bytes[:len(art.Bytes)-2]
	if _, _, err := ParseArtifact(truncated); !errors.Is(err, ErrPayloadCrcMismatch) {
		t.Fatalf("ParseArtifact() error = %v, want ErrPayloadCrcMismatch", err)
	}
}

// TestAssembleFPSRoundsHalfToEven checks the fixed-point FPS conversion at
// exact .5 ties on both sides of an even integer: fps*256 == 641.5 must
// round up to the even 642, and fps*256 == 642.5 must round down to the
// same even 642, matching Python's round() semantics rather than a
// round-half-away-from-zero implementation (which would give 642 and 643).
func TestAssembleFPSRoundsHalfToEven(t *testing.T) {
	red := color.RGB{R: 255}
	frames := [][]color.RGB{solidFrame(4, red)}

	art, err := Assemble(BuildInput{LEDCount: 4, FPS: 641.5 / 256, RampSpace: "hsv"}, frames)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	parsed, err := Parse(art.Bytes)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Base.FPS != 642 {
		t.Errorf("header fps fixed-point = %d, want 642 (round(641.5) == 642)", parsed.Base.FPS)
	}

	art, err = Assemble(BuildInput{LEDCount: 4, FPS: 642.5 / 256, RampSpace: "hsv"}, frames)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	parsed, err = Parse(art.Bytes)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Base.FPS != 642 {
		t.Errorf("header fps fixed-point = %d, want 642 (round(642.5) == 642)", parsed.Base.FPS)
	}
}

func TestAssembleQuantizesOverBudget(t *testing.T) {
	var frames [][]color.RGB
	for i := 0; i < 80; i++ {
		frames = append(frames, solidFrame(4, color.RGB{R: uint8(i * 3), G: uint8(i * 2), B: uint8(i)}))
	}
	art, err := Assemble(BuildInput{LEDCount: 4, FPS: 10, RampSpace: "hsluv", MaxColors: 16}, frames)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if art.Manifest.PaletteSize != 16 {
		t.Errorf("palette size = %d, want 16", art.Manifest.PaletteSize)
	}
	if !art.Manifest.Quantized {
		t.Error("expected Quantized = true over budget")
	}
}
