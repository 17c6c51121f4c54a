// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the burst of events editors produce on save.
const DefaultWatchDebounce = 250 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration

	// OnChange receives each successfully reloaded config.
	OnChange func(*Config)

	// OnError receives reload failures; the previous config stays in effect.
	OnError func(error)
}

// Watch reloads path whenever it changes until ctx is done. The parent
// directory is watched so that editors which replace the file on save are
// handled.
func Watch(ctx context.Context, path string, opts WatchOptions) error {
	if path == "" {
		return fmt.Errorf("watch: no config path")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		cfg, err := LoadFromPath(path)
		if err != nil {
			if opts.OnError != nil {
				opts.OnError(err)
			}
			return
		}
		if opts.OnChange != nil {
			opts.OnChange(cfg)
		}
	}

	go func() {
		defer watcher.Close()
		defer func() {
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(opts.Debounce, reload)
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if opts.OnError != nil {
					opts.OnError(fmt.Errorf("watch: %w", err))
				}
			}
		}
	}()
	return nil
}
