package server

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes of a single file. Its directory is watched so
// that editors replacing the file by rename are noticed too.
type Watcher struct {
	watcher      *fsnotify.Watcher
	filename     string
	debounceTime time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	onUpdate chan<- error
	Update   <-chan error
}

const DEFAULT_DEBOUNCE_TIME = 100 * time.Millisecond

func WatchFile(filename string, debounceTime time.Duration) (*Watcher, error) {
	filename, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	updateCh := make(chan error, 1)

	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, err
	}

	out := &Watcher{
		watcher:      watcher,
		filename:     filename,
		debounceTime: debounceTime,
		onUpdate:     updateCh,
		Update:       updateCh,
	}

	go out.process(watcher.Events, watcher.Errors)

	return out, nil
}

func (w *Watcher) debounceUpdate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounceTime, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.send(nil)
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) send(err error) {
	select {
	case w.onUpdate <- err:
	default:
	}
}

func (w *Watcher) process(events <-chan fsnotify.Event, errors <-chan error) {
	defer func() {
		w.mu.Lock()
		w.closed = true
		close(w.onUpdate)
		w.mu.Unlock()
	}()

	for {
		select {
		case err, ok := <-errors:
			if !ok {
				return
			}
			w.send(err)
		case ev, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.filename {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.debounceUpdate()
			}
		}
	}
}
