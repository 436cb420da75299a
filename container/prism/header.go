/*
NAME
  header.go

DESCRIPTION
  Bit-exact pack/parse of the PRISM v1.0/v1.1 fixed header plus its JSON
  extension block.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Package prism implements the PRISM container format: the fixed header
// (HeaderBase + MetaV11 + ExtBlock), its CRC coverage, the package
// assembler that wires the quantizer and codec into a finished artifact,
// and the sidecar manifest.
package prism

import (
	"encoding/binary"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

const (
	// Magic is the 4-byte file signature.
	Magic = "PRSM"

	// VersionV10 has no MetaV11 segment.
	VersionV10 = 0x0100
	// VersionV11 carries a MetaV11 segment after the base header.
	VersionV11 = 0x0101

	baseSize = 64 // magic(4) version(2) led(2) frame(4) fps(4) cf(1) cmp(1) res1(2) crc(4) pad(40)
	metaSize = 16 // version(1) motion(1) sync(1) reserved(1) params(6*u16)

	// BaseSize and MetaSize are exported for callers (the testbed vector
	// generator) that need to index into a raw blob without re-deriving
	// the layout.
	BaseSize = baseSize
	MetaSize = metaSize

	// crcPrefixSize is the number of leading base-header bytes folded into
	// the header CRC: magic+version+led+frame+fps. color_format,
	// compression and reserved1 (bytes 16:20), the stored crc32 field
	// (bytes 20:24) and the padding lie outside it.
	crcPrefixSize = 16
	// metaCrcPrefix is the number of leading MetaV11 bytes folded into the
	// header CRC: version, motion_direction, sync_mode, reserved, and the
	// first u16 of params.
	metaCrcPrefix = 6
)

// HeaderBase is the fixed 64-byte header shared by every PRISM artifact.
type HeaderBase struct {
	Version     uint16
	LEDCount    uint16
	FrameCount  uint32
	FPS         uint32 // fixed-point: round(fps * 256)
	ColorFormat uint8
	Compression uint8
	Reserved1   uint16
	CRC32       uint32
	// Padding is 40 reserved bytes, always zero on build.
}

// MetaV11 is the v1.1 pattern metadata segment, present only when
// HeaderBase.Version == VersionV11.
type MetaV11 struct {
	Version         uint8
	MotionDirection uint8
	SyncMode        uint8
	Reserved        uint8
	Params          [6]uint16
}

// ParsedHeader is the result of Parse: the structural fields plus the
// decoded extension block. CRC validity is reported separately by
// Validate since an invalid CRC does not prevent a structural parse.
type ParsedHeader struct {
	Base       HeaderBase
	Meta       MetaV11
	HasMeta    bool
	Extra      map[string]interface{}
	Unknown    []string
	Recognised []string

	// HeaderLen is the number of leading bytes Parse consumed: base +
	// (meta, if present) + the 2-byte extension length prefix + the
	// extension payload. Everything at this offset onward is the encoded
	// frame payload followed by its trailing CRC32.
	HeaderLen int

	baseBytes []byte
	metaBytes []byte
}

// ComputedCRC32 recomputes the header CRC over the parsed bytes.
func (p *ParsedHeader) ComputedCRC32() uint32 {
	return crcCoverage(p.baseBytes, p.metaBytes)
}

// packBase serialises base into its 64-byte wire form.
func packBase(base HeaderBase) []byte {
	buf := make([]byte, baseSize)
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], base.Version)
	binary.LittleEndian.PutUint16(buf[6:8], base.LEDCount)
	binary.LittleEndian.PutUint32(buf[8:12], base.FrameCount)
	binary.LittleEndian.PutUint32(buf[12:16], base.FPS)
	buf[16] = base.ColorFormat
	buf[17] = base.Compression
	binary.LittleEndian.PutUint16(buf[18:20], base.Reserved1)
	binary.LittleEndian.PutUint32(buf[20:24], base.CRC32)
	// buf[24:64] is the reserved 40-byte padding, left zero.
	return buf
}

func unpackBase(buf []byte) HeaderBase {
	return HeaderBase{
		Version:     binary.LittleEndian.Uint16(buf[4:6]),
		LEDCount:    binary.LittleEndian.Uint16(buf[6:8]),
		FrameCount:  binary.LittleEndian.Uint32(buf[8:12]),
		FPS:         binary.LittleEndian.Uint32(buf[12:16]),
		ColorFormat: buf[16],
		Compression: buf[17],
		Reserved1:   binary.LittleEndian.Uint16(buf[18:20]),
		CRC32:       binary.LittleEndian.Uint32(buf[20:24]),
	}
}

func packMeta(meta MetaV11) []byte {
	buf := make([]byte, metaSize)
	buf[0] = meta.Version
	buf[1] = meta.MotionDirection
	buf[2] = meta.SyncMode
	buf[3] = meta.Reserved
	for i, v := range meta.Params {
		binary.LittleEndian.PutUint16(buf[4+i*2:6+i*2], v)
	}
	return buf
}

func unpackMeta(buf []byte) MetaV11 {
	var meta MetaV11
	meta.Version = buf[0]
	meta.MotionDirection = buf[1]
	meta.SyncMode = buf[2]
	meta.Reserved = buf[3]
	for i := range meta.Params {
		meta.Params[i] = binary.LittleEndian.Uint16(buf[4+i*2 : 6+i*2])
	}
	return meta
}

// encodeExtra produces the canonical JSON encoding of extra (keys sorted
// ascending lexicographically) and its u16-prefixed extension block. An
// empty map yields a zero-length block.
func encodeExtra(extra map[string]interface{}) ([]byte, error) {
	if len(extra) == 0 {
		return []byte{0, 0}, nil
	}
	payload, err := canonicalJSON(extra)
	if err != nil {
		return nil, errors.Wrap(ErrExtensionEncoding, err.Error())
	}
	if len(payload) > 0xFFFF {
		return nil, errors.Wrapf(ErrExtensionTooLarge, "extension payload is %d bytes, limit 65535", len(payload))
	}
	block := make([]byte, 2+len(payload))
	binary.LittleEndian.PutUint16(block[:2], uint16(len(payload)))
	copy(block[2:], payload)
	return block, nil
}

// canonicalJSON encodes v as JSON with object keys sorted ascending
// lexicographically and no insignificant whitespace. encoding/json
// already sorts map[string]any keys (and nested map keys) this way on
// Marshal, which is the canonical profile spec.md's extension block
// requires; no custom encoder is needed.
func canonicalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Build packs base, meta and extra into the final header blob: the base
// header's CRC32 field is computed over the prescribed byte ranges with
// itself zeroed, then the base is repacked with the real value. For
// VersionV10 no metadata segment is written and the CRC covers zeroed
// meta bytes, as Parse recomputes it.
func Build(base HeaderBase, meta MetaV11, extra map[string]interface{}) ([]byte, error) {
	base.CRC32 = 0
	zeroBase := packBase(base)
	metaBytes := packMeta(meta)
	if base.Version == VersionV10 {
		metaBytes = make([]byte, metaSize)
	}

	crc := crcCoverage(zeroBase, metaBytes)
	base.CRC32 = crc
	finalBase := packBase(base)

	extBlock, err := encodeExtra(extra)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, baseSize+metaSize+len(extBlock))
	blob = append(blob, finalBase...)
	if base.Version != VersionV10 {
		blob = append(blob, metaBytes...)
	}
	blob = append(blob, extBlock...)
	return blob, nil
}

// Parse parses a header blob built by Build. Structural errors (bad
// magic, truncated buffers, unsupported version) are returned as errors;
// CRC and ramp_space validity are deferred to Validate since parse must
// still succeed and return the parsed structure for diagnostics.
func Parse(blob []byte) (*ParsedHeader, error) {
	if len(blob) < baseSize {
		return nil, errors.Wrapf(ErrHeaderTooShort, "header blob is %d bytes, need at least %d", len(blob), baseSize)
	}
	if string(blob[0:4]) != Magic {
		return nil, errors.Wrapf(ErrBadMagic, "magic %q", blob[0:4])
	}

	base := unpackBase(blob[:baseSize])
	offset := baseSize

	parsed := &ParsedHeader{
		Base:      base,
		baseBytes: blob[:baseSize],
	}

	switch base.Version {
	case VersionV11:
		if len(blob) < offset+metaSize {
			return nil, errors.Wrap(ErrUnsupportedVersion, "v1.1 header missing metadata segment")
		}
		metaBytes := blob[offset : offset+metaSize]
		parsed.Meta = unpackMeta(metaBytes)
		parsed.HasMeta = true
		parsed.metaBytes = metaBytes
		offset += metaSize
	case VersionV10:
		parsed.metaBytes = make([]byte, metaSize)
	default:
		return nil, errors.Wrapf(ErrUnsupportedVersion, "unsupported header version 0x%04X", base.Version)
	}

	if len(blob) >= offset+2 {
		extLen := int(binary.LittleEndian.Uint16(blob[offset : offset+2]))
		offset += 2
		if len(blob) < offset+extLen {
			return nil, errors.Wrapf(ErrTruncatedExtension, "extension declares %d bytes, %d remain", extLen, len(blob)-offset)
		}
		extPayload := blob[offset : offset+extLen]
		offset += extLen
		if len(extPayload) > 0 {
			var extra map[string]interface{}
			if err := json.Unmarshal(extPayload, &extra); err != nil {
				return nil, errors.Wrap(ErrInvalidExtension, "extension payload is not a JSON object")
			}
			parsed.Extra = extra
			parsed.Recognised, parsed.Unknown = splitExtensionFields(extra)
		}
	}

	parsed.HeaderLen = offset
	return parsed, nil
}

func splitExtensionFields(extra map[string]interface{}) (recognised, unknown []string) {
	for k := range extra {
		if recognisedExtensionFields[k] {
			recognised = append(recognised, k)
		} else {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(recognised)
	sort.Strings(unknown)
	return recognised, unknown
}

// Validate checks CRC and ramp_space validity on an already-parsed
// header, returning a warnings slice (never fatal) and the CRC error if
// the stored value does not match the recomputed one.
func Validate(p *ParsedHeader) (warnings []string, err error) {
	if p.ComputedCRC32() != p.Base.CRC32 {
		err = errors.Wrapf(ErrHeaderCrcMismatch, "computed 0x%08X, stored 0x%08X", p.ComputedCRC32(), p.Base.CRC32)
	}
	if len(p.Unknown) > 0 {
		warnings = append(warnings, "unknown extension fields present")
	}
	if ramp, ok := p.Extra["ramp_space"].(string); ok && !RampSpaceIsValid(ramp) {
		warnings = append(warnings, "ramp_space invalid; defaults should apply")
	}
	return warnings, err
}
