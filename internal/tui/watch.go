package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// editors often write a file in several steps; wait this long for quiet
const settleDelay = 150 * time.Millisecond

// schemaChangedMsg reports that the watched schema file was written.
type schemaChangedMsg struct{}

// watchErrMsg carries a watcher failure.
type watchErrMsg struct {
	err error
}

// Watcher reports changes to one file. It watches the parent directory so
// editors that save by rename are still seen.
type Watcher struct {
	w    *fsnotify.Watcher
	name string
}

// Watch starts watching path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	return &Watcher{w: w, name: abs}, nil
}

// Wait returns a command that blocks until the file changes and settles.
// It yields nil once the watcher is closed.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.w.Events:
				if !ok {
					return nil
				}
				if !w.relevant(ev) {
					continue
				}
				w.settle()
				return schemaChangedMsg{}

			case err, ok := <-w.w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// settle swallows the burst of events that follows a save.
func (w *Watcher) settle() {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				timer.Reset(settleDelay)
			}
		case <-timer.C:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.name {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
