// Package watch reports changes to a single file using OS-native
// notifications.
package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals writes to one file. The parent directory is watched so
// that editors replacing the file by rename are seen too.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
	evC  chan struct{}
	erC  chan error
}

func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	fw := &Watcher{w: w, path: abs, evC: make(chan struct{}, 1), erC: make(chan error, 1)}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	defer close(fw.evC)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Coalesce bursts; one pending signal is enough to reload.
			select {
			case fw.evC <- struct{}{}:
			default:
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}

// Changes receives a value after the file changed. It is closed by Close.
func (fw *Watcher) Changes() <-chan struct{} { return fw.evC }
func (fw *Watcher) Errors() <-chan error     { return fw.erC }
func (fw *Watcher) Close() error             { return fw.w.Close() }
