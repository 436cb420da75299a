/*
NAME
  errors.go

DESCRIPTION
  Error taxonomy for the PRISM header builder/parser and package
  assembler.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package prism

import "github.com/pkg/errors"

// Header build failures.
var (
	ErrExtensionTooLarge = errors.New("ExtensionTooLarge")
	ErrExtensionEncoding = errors.New("ExtensionEncoding")
)

// Structural parse failures; always fatal.
var (
	ErrHeaderTooShort     = errors.New("HeaderTooShort")
	ErrBadMagic           = errors.New("BadMagic")
	ErrUnsupportedVersion = errors.New("UnsupportedVersion")
	ErrTruncatedExtension = errors.New("TruncatedExtension")
	ErrInvalidExtension   = errors.New("InvalidExtension")
)

// Validation failures; the parsed structure is still returned alongside
// for diagnostics.
var (
	ErrHeaderCrcMismatch  = errors.New("HeaderCrcMismatch")
	ErrPayloadCrcMismatch = errors.New("PayloadCrcMismatch")
)

// Warnings; parse succeeds, downstream applies defaults.
var (
	ErrInvalidRampSpace = errors.New("InvalidRampSpace")
)

// Assembler invariant; fatal and indicates a codec bug.
var (
	ErrRoundtripMismatch = errors.New("RoundtripMismatch")
)

// validRampSpaces enumerates the ramp_space values spec.md recognises.
var validRampSpaces = map[string]bool{
	"hsv": true, "hsl": true, "hsluv": true, "oklab": true, "oklch": true,
}

// RampSpaceIsValid reports whether value is a recognised ramp_space enum
// member. An empty string is considered valid (the field is optional).
func RampSpaceIsValid(value string) bool {
	if value == "" {
		return true
	}
	return validRampSpaces[value]
}

// recognisedExtensionFields lists the optional extension keys the parser
// understands. Any other key is retained but reported as unknown.
var recognisedExtensionFields = map[string]bool{
	"palette_id": true, "ramp_space": true, "show_params": true,
}
