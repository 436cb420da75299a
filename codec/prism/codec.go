/*
NAME
  codec.go

DESCRIPTION
  Palette-indexed frame codec: XOR inter-frame delta baseline and
  byte-run RLE, with a guaranteed exact round-trip.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package prism implements the PRISM frame codec: encoding a sequence of
// palette-indexed frames into a compact byte payload and decoding it back
// losslessly.
package prism

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/synqing/prism/color"
)

// Error kinds raised by the codec. These are invariant violations, not
// input-validation errors, and are always fatal.
var (
	ErrIndexOutOfPalette       = errors.New("IndexOutOfPalette")
	ErrDeltaWithoutPredecessor = errors.New("DeltaWithoutPredecessor")
	ErrLengthMismatch          = errors.New("LengthMismatch")
)

const (
	flagDelta byte = 0x01
	flagRLE   byte = 0x02

	rleMark   byte = 0x80
	maxRLELen byte = 0x7F

	deltaZeroRatioThreshold = 0.4
)

// FrameStats records the per-frame encoding decisions, mirroring the
// manifest's "frames" array.
type FrameStats struct {
	Index int
	Bytes int
	Delta bool
	RLE   bool
}

// EncodeResult is the payload produced by Encode alongside per-frame
// bookkeeping used to populate a manifest.
type EncodeResult struct {
	Payload  []byte
	Frames   []FrameStats
	RawBytes int
}

// Encode packs palette and indexed frames into the wire payload:
// palette_len (u16 LE) + palette bytes, followed by one encoded frame
// record per entry in indices. Every index must be < len(palette) and
// < 0x80; Encode returns ErrIndexOutOfPalette otherwise.
func Encode(palette []color.RGB, indices [][]int) (EncodeResult, error) {
	if len(palette) > 0x80 {
		return EncodeResult{}, errors.Wrap(ErrIndexOutOfPalette, "palette exceeds 128 entries")
	}

	payload := make([]byte, 0, 2+len(palette)*3)
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(palette)))
	payload = append(payload, lenBuf[:]...)
	for _, c := range palette {
		payload = append(payload, c.R, c.G, c.B)
	}

	ledCount := 0
	if len(indices) > 0 {
		ledCount = len(indices[0])
	}

	frames := make([]FrameStats, len(indices))
	var prev []int
	for f, frame := range indices {
		if len(frame) != ledCount {
			return EncodeResult{}, errors.Wrapf(ErrLengthMismatch, "frame %d has %d indices, want %d", f, len(frame), ledCount)
		}
		for _, idx := range frame {
			if idx < 0 || idx >= len(palette) || idx >= 0x80 {
				return EncodeResult{}, errors.Wrapf(ErrIndexOutOfPalette, "frame %d contains index %d outside palette of %d entries", f, idx, len(palette))
			}
		}

		baseline := frame
		useDelta := false
		if prev != nil {
			delta := xorDelta(frame, prev)
			if zeroRatio(delta) >= deltaZeroRatioThreshold {
				baseline = delta
				useDelta = true
			}
		}

		rle := rleEncode(baseline)
		useRLE := len(rle) < len(baseline)
		body := baseline
		if useRLE {
			body = rle
		}

		flags := byte(0)
		if useDelta {
			flags |= flagDelta
		}
		if useRLE {
			flags |= flagRLE
		}

		var header [3]byte
		header[0] = flags
		binary.LittleEndian.PutUint16(header[1:], uint16(len(body)))
		payload = append(payload, header[:]...)
		for _, v := range body {
			payload = append(payload, byte(v))
		}

		frames[f] = FrameStats{Index: f, Bytes: 3 + len(body), Delta: useDelta, RLE: useRLE}
		prev = frame
	}

	return EncodeResult{
		Payload:  payload,
		Frames:   frames,
		RawBytes: len(indices) * ledCount * 3,
	}, nil
}

// Decode unpacks a payload produced by Encode, returning the palette and
// the indexed frames (ledCount indices each). Decode mirrors Encode
// exactly: RLE expansion first, then XOR against the previous decoded
// frame if the DELTA flag is set.
func Decode(payload []byte, ledCount int) ([]color.RGB, [][]int, error) {
	if len(payload) < 2 {
		return nil, nil, errors.Wrap(ErrLengthMismatch, "payload shorter than palette length prefix")
	}
	paletteLen := int(binary.LittleEndian.Uint16(payload[:2]))
	offset := 2
	if len(payload) < offset+paletteLen*3 {
		return nil, nil, errors.Wrap(ErrLengthMismatch, "payload truncated inside palette")
	}
	palette := make([]color.RGB, paletteLen)
	for i := range palette {
		base := offset + i*3
		palette[i] = color.RGB{R: payload[base], G: payload[base+1], B: payload[base+2]}
	}
	offset += paletteLen * 3

	var frames [][]int
	var prev []int
	for offset < len(payload) {
		if len(payload) < offset+3 {
			return nil, nil, errors.Wrap(ErrLengthMismatch, "truncated frame header")
		}
		flags := payload[offset]
		length := int(binary.LittleEndian.Uint16(payload[offset+1 : offset+3]))
		offset += 3
		if len(payload) < offset+length {
			return nil, nil, errors.Wrap(ErrLengthMismatch, "truncated frame body")
		}
		body := payload[offset : offset+length]
		offset += length

		segment := make([]int, len(body))
		for i, b := range body {
			segment[i] = int(b)
		}
		if flags&flagRLE != 0 {
			var err error
			segment, err = rleDecode(segment)
			if err != nil {
				return nil, nil, err
			}
		}

		var indices []int
		if flags&flagDelta != 0 {
			if prev == nil {
				return nil, nil, errors.Wrap(ErrDeltaWithoutPredecessor, "delta frame has no baseline")
			}
			if len(segment) != len(prev) {
				return nil, nil, errors.Wrap(ErrLengthMismatch, "delta segment length mismatch with predecessor")
			}
			indices = make([]int, len(segment))
			for i := range segment {
				indices[i] = segment[i] ^ prev[i]
			}
		} else {
			indices = segment
		}

		if len(indices) != ledCount {
			return nil, nil, errors.Wrapf(ErrLengthMismatch, "decoded frame has %d indices, want %d", len(indices), ledCount)
		}
		frames = append(frames, indices)
		prev = indices
	}

	return palette, frames, nil
}

// Resolve expands indexed frames back to RGB using the given palette.
func Resolve(palette []color.RGB, indices [][]int) ([][]color.RGB, error) {
	out := make([][]color.RGB, len(indices))
	for f, frame := range indices {
		row := make([]color.RGB, len(frame))
		for i, idx := range frame {
			if idx < 0 || idx >= len(palette) {
				return nil, errors.Wrapf(ErrIndexOutOfPalette, "frame %d index %d outside palette", f, idx)
			}
			row[i] = palette[idx]
		}
		out[f] = row
	}
	return out, nil
}

func xorDelta(curr, prev []int) []int {
	out := make([]int, len(curr))
	for i := range curr {
		out[i] = curr[i] ^ prev[i]
	}
	return out
}

func zeroRatio(delta []int) float64 {
	if len(delta) == 0 {
		return 0
	}
	zeros := 0
	for _, v := range delta {
		if v == 0 {
			zeros++
		}
	}
	return float64(zeros) / float64(len(delta))
}

// rleEncode applies byte-run RLE: runs of identical values of length >= 4
// (capped at maxRLELen) are emitted as two bytes (rleMark|runLen, value);
// shorter runs are left as literal bytes.
func rleEncode(data []int) []int {
	var out []int
	i := 0
	for i < len(data) {
		runVal := data[i]
		runLen := 1
		for i+runLen < len(data) && data[i+runLen] == runVal && runLen < int(maxRLELen) {
			runLen++
		}
		if runLen >= 4 {
			out = append(out, int(rleMark)|runLen, runVal)
			i += runLen
		} else {
			out = append(out, runVal)
			i++
		}
	}
	return out
}

func rleDecode(data []int) ([]int, error) {
	var out []int
	for i := 0; i < len(data); i++ {
		v := data[i]
		if v&int(rleMark) != 0 {
			runLen := v &^ int(rleMark)
			i++
			if i >= len(data) {
				return nil, errors.Wrap(ErrLengthMismatch, "incomplete RLE run at end of payload")
			}
			runVal := data[i]
			for n := 0; n < runLen; n++ {
				out = append(out, runVal)
			}
		} else {
			out = append(out, v)
		}
	}
	return out, nil
}
