// Package watch reports changes of the profiles seed file so the UI can
// reload it.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// ChangedMsg is sent when the watched file changed
type ChangedMsg struct {
	Path string
}

// Watcher watches one file. The parent directory is watched because
// editors often replace a file through a rename.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	filtered chan fsnotify.Event
	done     chan struct{}
	once     sync.Once
	log      *logrus.Logger
	debounce time.Duration
}

// New starts watching path. The file itself does not need to exist yet.
func New(path string, log *logrus.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watched path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	log.WithField("path", abs).Info("watching profiles file")

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		filtered: make(chan fsnotify.Event, 1),
		done:     make(chan struct{}),
		log:      log,
		debounce: 100 * time.Millisecond,
	}
	go w.filterEvents()

	return w, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel of events concerning the watched file
func (w *Watcher) Events() <-chan fsnotify.Event {
	return w.filtered
}

// Close stops the watcher. Calls after the first are no-ops.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("closing fsnotify watcher: %w", cerr)
		}
	})
	return err
}

// WaitCmd blocks until the next change and reports it as ChangedMsg. It
// returns nil once the watcher is closed.
func (w *Watcher) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.filtered; !ok {
			return nil
		}
		time.Sleep(w.debounce)
		// drop the burst that follows a single save
		select {
		case <-w.filtered:
		default:
		}
		return ChangedMsg{Path: w.path}
	}
}

func (w *Watcher) filterEvents() {
	defer close(w.filtered)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldForward(event) {
				continue
			}

			w.log.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("profiles file changed")

			// Non-blocking send: a pending event already covers this one
			select {
			case w.filtered <- event:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

// shouldForward keeps write, create, remove and rename events of the file
func (w *Watcher) shouldForward(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
