package watch

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher invokes a callback when any of its watched paths changes,
// coalescing bursts of filesystem events through a debounce window. Ref
// updates are multi-step on disk (tempfile, rename, lockfile removal), so
// firing on every raw event would re-run the pipeline several times per
// update.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	done     chan struct{}
}

// New starts watching the given paths and returns the running Watcher.
// Call Close to stop it.
func New(paths []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
				ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Stop()
					timer.Reset(w.debounce)
				}
				fire = timer.C
			}
		case <-fire:
			timer = nil
			fire = nil
			w.onChange()
		case <-w.fsw.Errors:
			// Watcher errors are advisory; the next run re-reads from disk.
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. It is safe to call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
