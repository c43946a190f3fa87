package main

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fivemoreminix/qsource/pkg/log"
	"github.com/fsnotify/fsnotify"
)

// FileWatcher reports external changes to open documents. The directories of
// the watched files are watched, so that editors which replace a file by
// renaming over it are noticed as well.
type FileWatcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	notify    func(path string)

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]int // Number of watched files in each directory

	done chan struct{}
}

// NewFileWatcher starts a watcher calling notify, from its own goroutine, with
// the absolute path of each changed file once its changes have settled for
// debounce.
func NewFileWatcher(debounce time.Duration, notify func(path string)) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &FileWatcher{
		fsWatcher: fsw,
		debounce:  debounce,
		notify:    notify,
		files:     make(map[string]struct{}),
		dirs:      make(map[string]int),
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add starts watching the file at path. Adding a file twice has no effect.
func (w *FileWatcher) Add(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; ok {
		return nil
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[path] = struct{}{}
	log.Debug(log.CatWatcher, "Watching file", "path", path)
	return nil
}

// Remove stops watching the file at path.
func (w *FileWatcher) Remove(path string) {
	path, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok {
		return
	}
	delete(w.files, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsWatcher.Remove(dir)
	}
}

// Stop terminates the watcher and releases resources.
func (w *FileWatcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *FileWatcher) loop() {
	var timer *time.Timer
	pending := make(map[string]struct{})

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			path, ok := w.relevantPath(event)
			if !ok {
				continue
			}
			pending[path] = struct{}{}

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			for path := range pending {
				log.Debug(log.CatWatcher, "File changed", "path", path)
				w.notify(path)
			}
			clear(pending)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevantPath returns the absolute path of the file if event is a write to,
// or creation of, a watched file.
func (w *FileWatcher) relevantPath(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return "", false
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	w.mu.Lock()
	_, ok := w.files[path]
	w.mu.Unlock()
	return path, ok
}
