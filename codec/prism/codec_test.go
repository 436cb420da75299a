/*
NAME
  codec_test.go

DESCRIPTION
  Round-trip and scenario tests for the frame codec.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import (
	"testing"

	"github.com/synqing/prism/color"
)

var blackWhitePalette = []color.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}

// TestEncodeDeltaRLEScenario matches spec.md §8 scenario 3: frame0 is 16
// zeros, frame1 is 8 zeros followed by 8 ones. Frame0 must RLE-encode as
// (0x90, 0x00) (run length 16, value 0); frame1's XOR delta against
// frame0 has a zero ratio of 0.5 (>= 0.4), so DELTA is set, and its RLE
// form (0x88,0x00,0x88,0x01) is 4 bytes, strictly shorter than the
// 16-byte baseline, so RLE is set too.
func TestEncodeDeltaRLEScenario(t *testing.T) {
	frame0 := make([]int, 16)
	frame1 := make([]int, 16)
	for i := 8; i < 16; i++ {
		frame1[i] = 1
	}

	res, err := Encode(blackWhitePalette, [][]int{frame0, frame1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// palette_len(2) + palette(2*3=6) = 8 bytes before frame records.
	offset := 8

	wantFrame0 := []byte{flagRLE, 2, 0x00, 0x90, 0x00}
	got0 := res.Payload[offset : offset+len(wantFrame0)]
	if !bytesEqual(got0, wantFrame0) {
		t.Errorf("frame0 bytes = % x, want % x", got0, wantFrame0)
	}
	offset += len(wantFrame0)

	wantFrame1 := []byte{flagDelta | flagRLE, 4, 0x00, 0x88, 0x00, 0x88, 0x01}
	got1 := res.Payload[offset : offset+len(wantFrame1)]
	if !bytesEqual(got1, wantFrame1) {
		t.Errorf("frame1 bytes = % x, want % x", got1, wantFrame1)
	}

	if !res.Frames[0].RLE || res.Frames[0].Delta {
		t.Errorf("frame0 stats = %+v, want RLE only", res.Frames[0])
	}
	if !res.Frames[1].RLE || !res.Frames[1].Delta {
		t.Errorf("frame1 stats = %+v, want RLE and DELTA", res.Frames[1])
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRoundTrip(t *testing.T) {
	palette := []color.RGB{{R: 1}, {R: 2}, {R: 3}, {R: 4}}
	indices := [][]int{
		{0, 1, 2, 3},
		{0, 1, 2, 3},
		{3, 3, 3, 3},
		{0, 0, 1, 1},
	}
	res, err := Encode(palette, indices)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	gotPalette, gotIndices, err := Decode(res.Payload, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(gotPalette) != len(palette) {
		t.Fatalf("palette len = %d, want %d", len(gotPalette), len(palette))
	}
	for i := range palette {
		if gotPalette[i] != palette[i] {
			t.Errorf("palette[%d] = %v, want %v", i, gotPalette[i], palette[i])
		}
	}
	if len(gotIndices) != len(indices) {
		t.Fatalf("frame count = %d, want %d", len(gotIndices), len(indices))
	}
	for f := range indices {
		for i := range indices[f] {
			if gotIndices[f][i] != indices[f][i] {
				t.Errorf("frame %d index %d = %d, want %d", f, i, gotIndices[f][i], indices[f][i])
			}
		}
	}
}

func TestEncodeRejectsOutOfRangeIndex(t *testing.T) {
	palette := []color.RGB{{R: 1}}
	_, err := Encode(palette, [][]int{{0, 1}})
	if err == nil {
		t.Fatal("expected error for out-of-palette index")
	}
}

func TestDecodeRejectsDeltaWithoutPredecessor(t *testing.T) {
	// Hand-built payload: empty palette, one DELTA frame.
	payload := []byte{0, 0, flagDelta, 2, 0, 0x01, 0x02}
	_, _, err := Decode(payload, 2)
	if err == nil {
		t.Fatal("expected DeltaWithoutPredecessor error")
	}
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	palette := []color.RGB{{R: 1}, {R: 2}}
	res, err := Encode(palette, [][]int{{0, 1, 0, 1}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, _, err := Decode(res.Payload, 3); err == nil {
		t.Fatal("expected LengthMismatch decoding against a wrong led_count")
	}
}

func TestResolveExpandsIndices(t *testing.T) {
	palette := []color.RGB{{R: 9}, {G: 9}}
	frames, err := Resolve(palette, [][]int{{0, 1, 1, 0}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []color.RGB{{R: 9}, {G: 9}, {G: 9}, {R: 9}}
	for i, c := range frames[0] {
		if c != want[i] {
			t.Errorf("pixel %d = %v, want %v", i, c, want[i])
		}
	}
}
