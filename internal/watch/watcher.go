// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     watch
// Description: File watcher that hands changed test data files to a handler
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msto63/tabwerk/pkg/core/logging"
)

// ErrRunning is returned by Start when the watcher already runs
var ErrRunning = errors.New("watcher already running")

// Op is what happened to a file
type Op int

const (
	OpChanged Op = iota
	OpRemoved
)

// String returns a string representation of the op
func (o Op) String() string {
	if o == OpRemoved {
		return "removed"
	}
	return "changed"
}

// Event is a debounced file event
type Event struct {
	Path string
	Op   Op
}

// Handler is called once per debounced event. Errors are logged.
type Handler func(ctx context.Context, ev Event) error

// Options configures the watcher
type Options struct {
	Debounce   time.Duration // default 500ms
	Extensions []string      // default .robot, .txt, .tsv
	Logger     *logging.Logger
}

// Watcher watches a directory tree for changes of test data files
type Watcher struct {
	dir     string
	opts    Options
	handler Handler
	logger  *logging.Logger

	mu      sync.Mutex
	running bool
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}
}

// New creates a watcher for dir
func New(dir string, handler Handler, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".robot", ".txt", ".tsv"}
	}
	return &Watcher{
		dir:     dir,
		opts:    opts,
		handler: handler,
		logger:  logging.OrDiscard(opts.Logger).With("component", "watch", "dir", dir),
	}
}

// Matches reports whether path has one of the watched extensions
func (w *Watcher) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.opts.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Start begins watching in a background goroutine. It returns when the
// directory tree is registered.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrRunning
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = watcher

	if err := w.addTree(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})
	w.logger.Info("Started watching for changes")

	go w.loop(ctx)
	return nil
}

// Run starts the watcher and blocks until it stops
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-w.Done()
	return nil
}

// Done is closed when the watch loop has ended
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Stop ends the watch loop and waits for it
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.done
	w.mu.Unlock()
	<-done
}

// addTree registers dir and all directories below it
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// loop handles file system events. Events of one file are collected until
// the file was quiet for the debounce delay.
func (w *Watcher) loop(ctx context.Context) {
	quit := make(chan struct{})
	timers := make(map[string]*time.Timer)
	pending := make(map[string]Op)
	fire := make(chan string)

	defer func() {
		close(quit)
		for _, t := range timers {
			t.Stop()
		}
		w.watcher.Close()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.done)
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping file watcher (context cancelled)")
			return

		case <-w.stopCh:
			w.logger.Info("Stopping file watcher (stop signal)")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.Matches(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}

			op := OpChanged
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				op = OpRemoved
			}
			pending[event.Name] = op

			if t, ok := timers[event.Name]; ok {
				t.Reset(w.opts.Debounce)
				continue
			}
			name := event.Name
			timers[name] = time.AfterFunc(w.opts.Debounce, func() {
				select {
				case fire <- name:
				case <-quit:
				}
			})

		case name := <-fire:
			delete(timers, name)
			op, ok := pending[name]
			if !ok {
				continue
			}
			delete(pending, name)

			w.logger.Debug("File event", "file", name, "op", op.String())
			if err := w.handler(ctx, Event{Path: name, Op: op}); err != nil {
				w.logger.Error("Handler failed", "file", name, "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}
