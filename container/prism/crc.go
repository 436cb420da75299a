/*
NAME
  crc.go

DESCRIPTION
  CRC-32/ISO-HDLC helpers for the header's non-contiguous coverage and
  the payload trailer.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import "hash/crc32"

// crcCoverage computes the header CRC over base[0:crcPrefixSize]
// concatenated with meta[0:metaCrcPrefix]. The stored crc32 field (base
// bytes 20:24) lies outside this range, so its value in baseBytes does
// not affect the result. crc32.IEEE is the
// standard zlib/Ethernet table: polynomial 0xEDB88320, reflected,
// init/xorout 0xFFFFFFFF, exactly the CRC-32/ISO-HDLC variant spec.md
// specifies.
func crcCoverage(baseBytes, metaBytes []byte) uint32 {
	input := make([]byte, 0, crcPrefixSize+metaCrcPrefix)
	input = append(input, baseBytes[:crcPrefixSize]...)
	input = append(input, metaBytes[:metaCrcPrefix]...)
	return crc32.ChecksumIEEE(input)
}

// PayloadCRC32 computes the trailing payload CRC32 over the encoded
// payload bytes (not including the header, not including itself).
func PayloadCRC32(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}
