/*
NAME
  build.go

DESCRIPTION
  Single-file build: load a Show JSON payload, run it through the
  package assembler, and write the .prism artifact plus its manifest
  sidecar.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	prism "github.com/synqing/prism/container/prism"
	"github.com/synqing/prism/internal/plog"
)

// buildOptions configures one invocation of BuildFile, translated from
// the CLI flags in main.go.
type buildOptions struct {
	OutputDir string
	MaxColors int
}

// BuildFile loads inputPath, assembles the artifact, and writes
// "<name>.prism" and "<name>.manifest.json" into opts.OutputDir (or
// alongside inputPath when OutputDir is empty).
func BuildFile(inputPath string, opts buildOptions, log plog.Logger) error {
	loaded, err := LoadShow(inputPath)
	if err != nil {
		return err
	}

	in := prism.BuildInput{
		LEDCount:  loaded.LEDCount,
		FPS:       loaded.FPS,
		RampSpace: loaded.RampSpace,
		MaxColors: opts.MaxColors,
	}
	artifact, err := prism.Assemble(in, loaded.Frames)
	if err != nil {
		return errors.Wrapf(err, "assembling %q", inputPath)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}

	artifactPath := filepath.Join(outDir, base+".prism")
	if err := writeFile(artifactPath, artifact.Bytes); err != nil {
		return err
	}

	manifestBytes, err := marshalManifestSorted(artifact.Manifest)
	if err != nil {
		return errors.Wrap(err, "encoding manifest")
	}
	manifestBytes = append(manifestBytes, '\n')
	manifestPath := filepath.Join(outDir, base+".manifest.json")
	if err := writeFile(manifestPath, manifestBytes); err != nil {
		return err
	}

	log.Log(plog.Info, "built artifact",
		"input", inputPath,
		"artifact", artifactPath,
		"manifest", manifestPath,
		"frames", artifact.Manifest.FrameCount,
		"palette_size", artifact.Manifest.PaletteSize,
		"file_bytes", artifact.Manifest.FileBytes,
	)
	return nil
}

// marshalManifestSorted encodes m with lexicographically sorted object
// keys, matching tools/tooling_core.py:write_json's
// json.dump(document, fh, indent=2, sort_keys=True). encoding/json only
// sorts keys for map types, not structs, so the struct is round-tripped
// through a map[string]interface{} before the indented encode.
func marshalManifestSorted(m prism.Manifest) ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "encoding manifest struct")
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, errors.Wrap(err, "normalising manifest for sorted-key encoding")
	}
	return json.MarshalIndent(generic, "", "  ")
}

// writeFile scopes the file handle's acquisition with a guaranteed close
// on every exit path, matching spec.md §5's requirement for artifact
// writes.
func writeFile(path string, data []byte) (err error) {
	f, openErr := os.Create(path)
	if openErr != nil {
		return errors.Wrapf(openErr, "creating %q", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "closing %q", path)
		}
	}()
	if _, err = f.Write(data); err != nil {
		err = errors.Wrapf(err, "writing %q", path)
		return err
	}
	return nil
}

// BuildBatch runs BuildFile over every path in inputs using a fixed-size
// goroutine pool, mirroring revid/senders.go's wg.Add/defer wg.Done/
// wg.Wait fan-out. workers <= 0 means unbounded (one goroutine per
// input). Each build is an independent pure function of its own input
// (spec.md §5), so no coordination beyond the pool's concurrency cap is
// needed.
func BuildBatch(inputs []string, opts buildOptions, workers int, log plog.Logger) []error {
	if workers <= 0 || workers > len(inputs) {
		workers = len(inputs)
	}
	if workers == 0 {
		return nil
	}

	errs := make([]error, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, path := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = BuildFile(path, opts, log)
		}(i, path)
	}
	wg.Wait()
	return errs
}
