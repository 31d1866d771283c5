// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package watch re-solves maze files when they change on disk.
//
// Editors usually save by writing a temp file and renaming it over the
// original, which removes the original inode. The watcher therefore
// watches each file's parent directory and filters events by file name.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNoFiles is returned by New when no files are given.
var ErrNoFiles = errors.New("no files to watch")

// Op is the kind of change seen for a file.
type Op int

const (
	// OpWrite indicates the file was modified or replaced.
	OpWrite Op = iota

	// OpCreate indicates the file appeared.
	OpCreate

	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

// String returns the string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change is one debounced change to a watched file.
type Change struct {
	// Path is the watched path as given to New.
	Path string

	// Op is the last operation seen in the debounce window.
	Op Op

	// Time is when the last event was seen.
	Time time.Time
}

// Handler is called with the changes collected in one debounce window,
// sorted by path. It runs on the watcher's own goroutine.
type Handler func(ctx context.Context, changes []Change)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to wait for more events before calling the handler.
	// Default: 150ms
	Debounce time.Duration

	// BufferSize is the size of the internal event channel.
	// Default: 64
	BufferSize int

	// Logger receives watcher errors.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Debounce:   150 * time.Millisecond,
		BufferSize: 64,
	}
}

// Watcher watches maze files with debouncing.
//
// Thread Safety:
//
//	Start and Stop may be called from any goroutine. The handler is called
//	from a single goroutine.
type Watcher struct {
	files   map[string]string // cleaned absolute path -> path as given
	dirs    []string
	fsw     *fsnotify.Watcher
	handler Handler
	options Options
	logger  *slog.Logger

	changes  chan Change
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	watching bool
}

// New creates a watcher for paths.
//
// Outputs:
//
//	*Watcher - Call Start to begin watching and Stop to release resources.
//	error - ErrNoFiles, or an error resolving a path or creating the
//	        fsnotify watcher.
func New(paths []string, handler Handler, opts *Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	options := DefaultOptions()
	if opts != nil {
		if opts.Debounce > 0 {
			options.Debounce = opts.Debounce
		}
		if opts.BufferSize > 0 {
			options.BufferSize = opts.BufferSize
		}
		options.Logger = opts.Logger
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	files := make(map[string]string, len(paths))
	dirSet := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = p
		dirSet[filepath.Dir(abs)] = struct{}{}
	}
	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		files:   files,
		dirs:    dirs,
		fsw:     fsw,
		handler: handler,
		options: options,
		logger:  logger,
		changes: make(chan Change, options.BufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Start begins watching.
//
// Spawns an event processor and a debouncer. Both exit when Stop is
// called or ctx is cancelled. Calling Start twice is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	for _, d := range w.dirs {
		if err := w.fsw.Add(d); err != nil {
			w.mu.Lock()
			w.watching = false
			w.mu.Unlock()
			w.Stop()
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop stops the watcher and waits for the debouncer to exit.
//
// Safe to call more than once. Must not be called from the handler.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsw.Close()

		w.mu.Lock()
		started := w.watching
		w.watching = false
		w.mu.Unlock()

		if started {
			<-w.stopped
		}
	})
}

// IsWatching reports whether the watcher is active.
func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			original, watched := w.files[filepath.Clean(event.Name)]
			if !watched {
				continue
			}
			op, relevant := convertOp(event.Op)
			if !relevant {
				continue
			}
			select {
			case w.changes <- Change{Path: original, Op: op, Time: time.Now()}:
			default:
				// The debouncer is behind and a change for this file is
				// already pending.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("maze watcher error", slog.String("error", err.Error()))
		}
	}
}

func convertOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return OpRemove, true
	default:
		return OpWrite, false
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	defer close(w.stopped)

	pending := make(map[string]Change)
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
		if len(pending) == 0 {
			return
		}
		batch := make([]Change, 0, len(pending))
		for _, c := range pending {
			batch = append(batch, c)
		}
		sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
		clear(pending)
		if w.handler != nil {
			w.handler(ctx, batch)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case c := <-w.changes:
			pending[c.Path] = c
			if timer == nil {
				timer = time.NewTimer(w.options.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.options.Debounce)
			}
		case <-timerC:
			timer, timerC = nil, nil
			flush()
		}
	}
}
