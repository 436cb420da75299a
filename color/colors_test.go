/*
NAME
  colors_test.go

DESCRIPTION
  Tests for hex parsing and palette lookup construction.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package color

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#ff0000", RGB{255, 0, 0}, true},
		{"#0000ff", RGB{0, 0, 255}, true},
		{"#f00", RGB{255, 0, 0}, true},
		{"ff0000", RGB{255, 0, 0}, true},
		{"#ff00", RGB{}, false},
		{"#gg0000", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, c := range cases {
		got, err := ParseHex(c.in)
		if c.ok && err != nil {
			t.Errorf("ParseHex(%q): unexpected error: %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error, got none", c.in)
			}
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("ParseHex(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestBuildLookupEndpoints(t *testing.T) {
	stops := []string{"#ff0000", "#00ff00", "#0000ff"}
	for _, space := range []Space{SpaceHSV, SpaceHSL, SpaceHSLuv} {
		lookup, err := BuildLookup(stops, space, DefaultLookupSteps)
		if err != nil {
			t.Fatalf("BuildLookup(%s): %v", space, err)
		}
		if len(lookup) != DefaultLookupSteps {
			t.Fatalf("BuildLookup(%s): got %d entries, want %d", space, len(lookup), DefaultLookupSteps)
		}
		first, _ := ParseHex(stops[0])
		last, _ := ParseHex(stops[len(stops)-1])
		if !closeRGB(lookup[0], first, 1) {
			t.Errorf("BuildLookup(%s): lookup[0] = %v, want ~%v", space, lookup[0], first)
		}
		if !closeRGB(lookup[len(lookup)-1], last, 1) {
			t.Errorf("BuildLookup(%s): lookup[-1] = %v, want ~%v", space, lookup[len(lookup)-1], last)
		}
	}
}

func TestBuildLookupErrors(t *testing.T) {
	if _, err := BuildLookup(nil, SpaceHSV, 10); err == nil {
		t.Error("expected error for empty palette")
	}
	if _, err := BuildLookup([]string{"#ffffff"}, SpaceHSV, 10); err == nil {
		t.Error("expected error for single stop")
	}
	if _, err := BuildLookup([]string{"#fff", "#000"}, "xyz", 10); err == nil {
		t.Error("expected error for unknown space")
	}
	if _, err := BuildLookup([]string{"#fff", "#000"}, SpaceHSV, 0); err == nil {
		t.Error("expected error for non-positive steps")
	}
}

func TestSample(t *testing.T) {
	lookup := []RGB{{0, 0, 0}, {128, 128, 128}, {255, 255, 255}}
	if got := Sample(lookup, 0); got != lookup[0] {
		t.Errorf("Sample(0) = %v, want %v", got, lookup[0])
	}
	if got := Sample(lookup, 1); got != lookup[2] {
		t.Errorf("Sample(1) = %v, want %v", got, lookup[2])
	}
	if got := Sample(lookup, 2); got != lookup[2] {
		t.Errorf("Sample(2) (out of range, clamped) = %v, want %v", got, lookup[2])
	}
}

func closeRGB(a, b RGB, tol int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol
}
