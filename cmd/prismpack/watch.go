/*
NAME
  watch.go

DESCRIPTION
  Directory watch mode: rebuilds a show JSON payload whenever it is
  written to the watched directory.

LICENSE
  Copyright (C) 2026 the PRISM project authors. All rights reserved.
*/

package main

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/synqing/prism/internal/plog"
)

// Watch blocks, rebuilding any *.json file under dir each time it is
// written or created. It returns only on a fatal watcher error; the
// caller is expected to run it for the lifetime of the process.
func Watch(dir string, opts buildOptions, log plog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating directory watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %q", dir)
	}
	log.Log(plog.Info, "watching directory for show payload changes", "dir", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			log.Log(plog.Info, "show payload changed, rebuilding", "path", event.Name)
			if err := BuildFile(event.Name, opts, log); err != nil {
				log.Log(plog.Error, "build failed", "path", filepath.Clean(event.Name), "error", err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Log(plog.Error, "watcher error", "error", err.Error())
		}
	}
}
