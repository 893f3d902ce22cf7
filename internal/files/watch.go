package files

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reports changes to a single snapshot file. It watches the parent
// directory so editors that replace the file by rename are still seen.
type Watcher struct {
	fs      *fsnotify.Watcher
	log     *logrus.Entry
	changes chan string

	mu     sync.Mutex
	target string
	dir    string

	done chan struct{}
}

func NewWatcher(log *logrus.Entry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		fs:      fsw,
		log:     log,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch switches the watched file to path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if abs == w.target {
		return nil
	}
	if w.dir != "" && w.dir != dir {
		_ = w.fs.Remove(w.dir)
		w.target, w.dir = "", ""
	}
	if w.dir != dir {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.target, w.dir = abs, dir
	w.log.WithField("path", abs).Debug("watching snapshot")
	return nil
}

// Changes yields the watched path each time it is written. Bursts of events
// collapse into one.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Watching reports the file currently watched, or "" when none is.
func (w *Watcher) Watching() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.mu.Lock()
			target := w.target
			w.mu.Unlock()
			if filepath.Clean(ev.Name) != target {
				continue
			}
			select {
			case w.changes <- target:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}
