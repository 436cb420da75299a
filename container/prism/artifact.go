/*
NAME
  artifact.go

DESCRIPTION
  Whole-file verification of a persisted .prism artifact: header parse
  plus payload CRC32 recomputation.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ParseArtifact parses a complete persisted .prism file: the header (via
// Parse), then the encoded payload sliced at the header's declared
// length, then the trailing 4-byte payload CRC32. It mirrors
// tools/validation/prism_sanity.py's check_file, which slices
// payload = data[header_len:-4] and compares zlib.crc32(payload) against
// the trailing 4 bytes.
//
// The parsed header and payload are always returned, even when the
// payload CRC does not match, so a caller can still inspect the
// structure for diagnostics; only structural failures propagated from
// Parse return a nil header. A file too short to hold the trailing CRC32
// after the header returns ErrHeaderTooShort with the parsed header and a
// nil payload.
func ParseArtifact(data []byte) (*ParsedHeader, []byte, error) {
	header, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}
	if len(data) < header.HeaderLen+4 {
		return header, nil, errors.Wrapf(ErrHeaderTooShort, "artifact is %d bytes, need at least %d for payload + trailing CRC32", len(data), header.HeaderLen+4)
	}

	payload := data[header.HeaderLen : len(data)-4]
	storedCRC := binary.LittleEndian.Uint32(data[len(data)-4:])
	computedCRC := PayloadCRC32(payload)
	if computedCRC != storedCRC {
		return header, payload, errors.Wrapf(ErrPayloadCrcMismatch, "computed 0x%08X, stored 0x%08X", computedCRC, storedCRC)
	}
	return header, payload, nil
}
