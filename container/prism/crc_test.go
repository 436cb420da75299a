/*
NAME
  crc_test.go

DESCRIPTION
  CRC-32/ISO-HDLC sanity checks.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import "testing"

func TestPayloadCRC32KnownVector(t *testing.T) {
	// "123456789" is the standard CRC-32/ISO-HDLC (zlib/Ethernet) check
	// vector; its checksum is the widely published 0xCBF43926.
	got := PayloadCRC32([]byte("123456789"))
	want := uint32(0xCBF43926)
	if got != want {
		t.Errorf("PayloadCRC32(%q) = 0x%08X, want 0x%08X", "123456789", got, want)
	}
}

func TestCrcCoverageExcludesCrcField(t *testing.T) {
	base := packBase(defaultTestBase())
	meta := packMeta(defaultTestMeta())
	before := crcCoverage(base, meta)

	// The CRC field itself (bytes 20:24) lies outside crcPrefixSize (16),
	// so mutating it must not change the computed coverage.
	mutated := append([]byte(nil), base...)
	mutated[20] ^= 0xFF
	after := crcCoverage(mutated, meta)
	if before != after {
		t.Error("mutating the stored CRC field changed the coverage hash")
	}
}
