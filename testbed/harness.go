/*
NAME
  harness.go

DESCRIPTION
  Validation harness: runs each Vector through the header parser and
  checks the observed outcome against what the vector expects.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package testbed

import (
	"fmt"

	prism "github.com/synqing/prism/container/prism"
)

// Result is the outcome of validating one Vector.
type Result struct {
	Vector   Vector
	OK       bool
	Detail   string
	Warnings []string
}

// Validate runs v through Parse/Validate and checks the observed outcome
// against v.Expected, mirroring tools/parser_testbed/vectors.py's
// validate_vector dispatch over the four expected-outcome categories.
func Validate(v Vector) Result {
	parsed, err := prism.Parse(v.Payload)
	if err != nil {
		if v.Expected == ExpectedLengthError {
			return Result{Vector: v, OK: true, Detail: "length error detected during parse: " + err.Error()}
		}
		return Result{Vector: v, OK: false, Detail: err.Error()}
	}

	warnings, crcErr := prism.Validate(parsed)

	switch v.Expected {
	case ExpectedCRCMismatch:
		if crcErr == nil {
			return Result{Vector: v, OK: false, Detail: "CRC expected to mismatch but matched stored value"}
		}
		return Result{Vector: v, OK: true, Detail: "CRC mismatch correctly detected", Warnings: warnings}

	case ExpectedInvalidRampSpace:
		if crcErr != nil {
			return Result{Vector: v, OK: false, Detail: "CRC mismatch encountered for invalid ramp vector"}
		}
		ramp, _ := parsed.Extra["ramp_space"].(string)
		if prism.RampSpaceIsValid(ramp) {
			return Result{Vector: v, OK: false, Detail: "ramp_space expected to be invalid but validated successfully"}
		}
		return Result{Vector: v, OK: true, Detail: "ramp_space invalid; downstream parser should apply defaults", Warnings: warnings}

	case ExpectedLengthError:
		return Result{Vector: v, OK: false, Detail: "vector expected to trigger a length error but parsed successfully"}

	default: // ExpectedPass
		if crcErr != nil {
			return Result{Vector: v, OK: false, Detail: "CRC mismatch for vector expected to pass"}
		}
		return Result{Vector: v, OK: true, Warnings: warnings}
	}
}

// ValidateAll runs Validate over every vector in vectors.
func ValidateAll(vectors []Vector) []Result {
	results := make([]Result, len(vectors))
	for i, v := range vectors {
		results[i] = Validate(v)
	}
	return results
}

// Summary aggregates a Result slice the way tools/parser_testbed/
// vectors.py's summarise_results does.
type Summary struct {
	Total    int
	Passes   int
	Failures []string
}

func Summarise(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.OK {
			s.Passes++
		} else {
			s.Failures = append(s.Failures, r.Vector.Name)
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d/%d passed, %d failed", s.Passes, s.Total, len(s.Failures))
}
