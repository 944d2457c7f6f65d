package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/servilink/servilink-cli/internal/logger"
)

// DefaultDebounce coalesces the burst of events a single SQLite commit
// produces across the database and WAL files.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a store's database files.
type Watcher struct {
	dbPath   string
	debounce time.Duration
	onChange func()
	fsw      *fsnotify.Watcher
}

// Watch starts watching the directory holding dbPath and calls onChange,
// debounced, whenever the database or its journal files change. It stops
// when ctx is cancelled.
func Watch(ctx context.Context, dbPath string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(dbPath), err)
	}

	w := &Watcher{dbPath: dbPath, debounce: debounce, onChange: onChange, fsw: fsw}
	go w.run(ctx)
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = w.fsw.Close()
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("session watcher: %v", err)
		case <-fire:
			fire = nil
			w.onChange()
		}
	}
}

// relevant reports whether ev touches the database, its WAL or its journal.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(w.dbPath)
	name := filepath.Base(ev.Name)
	return name == base || strings.HasPrefix(name, base+"-")
}
