/*
NAME
  main.go

DESCRIPTION
  prismpack is the host-side authoring CLI: it loads Show JSON payloads,
  runs them through the package assembler, and writes .prism artifacts
  plus manifest sidecars. It also supports batch builds over a
  directory and a -watch mode that rebuilds on change.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

// Command prismpack is the host-side authoring CLI for the PRISM LED
// strand playback format.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/synqing/prism/internal/plog"
)

func main() {
	var (
		input      = flag.String("input", "", "Path to a show JSON file, or a directory in batch/-watch mode")
		output     = flag.String("output", "", "Output directory for .prism + manifest files (default: alongside input)")
		maxPalette = flag.Int("max-palette", 0, "Maximum palette size (default 64)")
		workers    = flag.Int("workers", 0, "Worker count for batch builds over a directory (default: one per file)")
		watch      = flag.Bool("watch", false, "Watch -input (a directory) and rebuild changed show payloads")
		logFile    = flag.String("log-file", "", "Optional path to a rotated log file")
	)
	flag.Parse()

	log := plog.New(plog.Config{FilePath: *logFile, MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 14})

	if *input == "" {
		fmt.Fprintln(os.Stderr, "prismpack: -input is required")
		flag.Usage()
		os.Exit(2)
	}

	opts := buildOptions{OutputDir: *output, MaxColors: *maxPalette}

	info, err := os.Stat(*input)
	if err != nil {
		log.Log(plog.Error, "cannot stat input", "input", *input, "error", err.Error())
		os.Exit(1)
	}

	switch {
	case *watch:
		if !info.IsDir() {
			log.Log(plog.Error, "-watch requires -input to be a directory", "input", *input)
			os.Exit(2)
		}
		if err := Watch(*input, opts, log); err != nil {
			log.Log(plog.Error, "watch terminated", "error", err.Error())
			os.Exit(1)
		}

	case info.IsDir():
		paths, err := jsonFilesIn(*input)
		if err != nil {
			log.Log(plog.Error, "listing input directory", "error", err.Error())
			os.Exit(1)
		}
		errs := BuildBatch(paths, opts, *workers, log)
		failures := 0
		for i, err := range errs {
			if err != nil {
				failures++
				log.Log(plog.Error, "build failed", "path", paths[i], "error", err.Error())
			}
		}
		if failures > 0 {
			os.Exit(1)
		}

	default:
		if err := BuildFile(*input, opts, log); err != nil {
			log.Log(plog.Error, "build failed", "path", *input, "error", err.Error())
			os.Exit(1)
		}
	}
}

func jsonFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
