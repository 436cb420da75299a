/*
NAME
  harness_test.go

DESCRIPTION
  Validates the full golden + mutation vector corpus against its
  expected outcomes.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package testbed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultVectorSetAllPass(t *testing.T) {
	vectors, err := DefaultVectorSet()
	if err != nil {
		t.Fatalf("DefaultVectorSet: %v", err)
	}
	results := ValidateAll(vectors)
	summary := Summarise(results)
	if summary.Passes != summary.Total {
		t.Fatalf("summary = %s, failures = %v", summary, summary.Failures)
	}
}

func TestVectorCategoriesAndOutcomes(t *testing.T) {
	vectors, err := DefaultVectorSet()
	if err != nil {
		t.Fatalf("DefaultVectorSet: %v", err)
	}

	want := map[string]string{
		"default_palette":             ExpectedPass,
		"unknown_fields_noop":         ExpectedPass,
		"no_optional_fields":          ExpectedPass,
		"crc_corrupted":               ExpectedCRCMismatch,
		"meta_bitflip_crc":            ExpectedCRCMismatch,
		"truncated_extended_metadata": ExpectedLengthError,
		"invalid_ramp_space":          ExpectedInvalidRampSpace,
	}
	got := make(map[string]string, len(vectors))
	for _, v := range vectors {
		got[v.Name] = v.Expected
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vector expected-outcome map mismatch (-want +got):\n%s", diff)
	}
}

func TestGoldenVectorsHaveNoMutationTags(t *testing.T) {
	vectors, err := DefaultVectorSet()
	if err != nil {
		t.Fatalf("DefaultVectorSet: %v", err)
	}
	for _, v := range vectors {
		if v.Category == "golden" {
			for _, tag := range v.Tags {
				if tag == "mutation" {
					t.Errorf("golden vector %q unexpectedly tagged mutation", v.Name)
				}
			}
		}
	}
}
