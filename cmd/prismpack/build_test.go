/*
NAME
  build_test.go

DESCRIPTION
  End-to-end test of the load → assemble → write pipeline using a
  literal Show JSON payload, plus a generator-driven payload.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	prism "github.com/synqing/prism/container/prism"
	"github.com/synqing/prism/internal/plog"
)

func writeShowFile(t *testing.T, dir, name string, payload interface{}) string {
	t.Helper()
	buf, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestBuildFileLiteralFrames(t *testing.T) {
	dir := t.TempDir()
	payload := map[string]interface{}{
		"version": 1,
		"data": map[string]interface{}{
			"frames": [][][3]int{
				{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}},
				{{254, 1, 0}, {0, 254, 1}, {1, 0, 254}},
			},
		},
		"meta": map[string]interface{}{
			"fps":        24.0,
			"ramp_space": "hsluv",
			"led_count":  3,
		},
	}
	path := writeShowFile(t, dir, "show.json", payload)

	log := plog.New(plog.Config{})
	if err := BuildFile(path, buildOptions{}, log); err != nil {
		t.Fatalf("BuildFile: %v", err)
	}

	artifactPath := filepath.Join(dir, "show.prism")
	if _, err := os.Stat(artifactPath); err != nil {
		t.Fatalf("expected artifact at %q: %v", artifactPath, err)
	}
	manifestPath := filepath.Join(dir, "show.manifest.json")
	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("expected manifest at %q: %v", manifestPath, err)
	}
	var manifest prism.Manifest
	if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
		t.Fatalf("unmarshaling manifest: %v", err)
	}
	if manifest.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", manifest.FrameCount)
	}
	if manifest.LEDCount != 3 {
		t.Errorf("LEDCount = %d, want 3", manifest.LEDCount)
	}
}

func TestBuildFileSingleRGBFrame(t *testing.T) {
	dir := t.TempDir()
	payload := map[string]interface{}{
		"version": 1,
		"data": map[string]interface{}{
			"rgb": [][3]int{{10, 20, 30}, {40, 50, 60}},
		},
		"meta": map[string]interface{}{
			"fps":        12.0,
			"ramp_space": "hsv",
			"led_count":  2,
		},
	}
	path := writeShowFile(t, dir, "single.json", payload)

	log := plog.New(plog.Config{})
	if err := BuildFile(path, buildOptions{}, log); err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "single.prism")); err != nil {
		t.Fatalf("expected artifact: %v", err)
	}
}

func TestBuildFileGeneratorDriven(t *testing.T) {
	dir := t.TempDir()
	payload := map[string]interface{}{
		"version": 1,
		"meta": map[string]interface{}{
			"fps":         30.0,
			"ramp_space":  "hsluv",
			"led_count":   8,
			"palette":     []string{"#ff0000", "#00ff00", "#0000ff"},
			"show_type":   "sine",
			"duration":    0.2,
			"show_params": map[string]interface{}{"wave_amplitude": 0.4, "wave_frequency": 1.0, "wave_speed": 0.5, "wave_direction": 1.0},
		},
	}
	path := writeShowFile(t, dir, "sine.json", payload)

	log := plog.New(plog.Config{})
	if err := BuildFile(path, buildOptions{}, log); err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sine.prism")); err != nil {
		t.Fatalf("expected artifact: %v", err)
	}
}

func TestBuildBatchRunsAllInputs(t *testing.T) {
	dir := t.TempDir()
	payload := map[string]interface{}{
		"version": 1,
		"data": map[string]interface{}{
			"frames": [][][3]int{{{1, 2, 3}, {4, 5, 6}}},
		},
		"meta": map[string]interface{}{"fps": 10.0, "ramp_space": "hsv", "led_count": 2},
	}
	p1 := writeShowFile(t, dir, "a.json", payload)
	p2 := writeShowFile(t, dir, "b.json", payload)

	log := plog.New(plog.Config{})
	errs := BuildBatch([]string{p1, p2}, buildOptions{}, 2, log)
	for i, err := range errs {
		if err != nil {
			t.Errorf("input %d failed: %v", i, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "a.prism")); err != nil {
		t.Errorf("missing a.prism: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.prism")); err != nil {
		t.Errorf("missing b.prism: %v", err)
	}
}
