package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tuikit/scrollview/internal/safego"
)

// reloadDebounce coalesces rapid write bursts into a single reload.
const reloadDebounce = 50 * time.Millisecond

// addWatchFn is a test hook for injecting errors into fsnotify.Add.
var addWatchFn func(w *fsnotify.Watcher, dir string) error

// File is a file-backed document that reloads when the file changes on disk.
// It implements Watchable, so a window-mode scrollview can observe document
// growth without waiting for a resize.
type File struct {
	Buffer

	path string

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// OpenFile loads path into memory.
func OpenFile(path string) (*File, error) {
	f := &File{path: filepath.Clean(path)}
	if err := f.reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

func (f *File) reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	f.Replace(strings.Split(strings.TrimRight(string(data), "\n"), "\n"))
	return nil
}

// Watch reloads the file and invokes onChange whenever it is written, created
// or renamed. The parent directory is watched so atomic save strategies
// (write to temp, rename over) are still observed.
func (f *File) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := f.addWatch(watcher, dir); err != nil {
		_ = watcher.Close()
		return err
	}

	safego.Go("content-file-watch", func() {
		defer func() {
			_ = watcher.Close()
			f.stopTimer()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if f.isFileEvent(event) {
					f.scheduleReload(onChange)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Ignore errors; the watcher keeps running.
			}
		}
	})
	return nil
}

func (f *File) addWatch(w *fsnotify.Watcher, dir string) error {
	if addWatchFn != nil {
		return addWatchFn(w, dir)
	}
	return w.Add(dir)
}

func (f *File) isFileEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != f.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload debounces bursts of write events into one reload, then
// reports the change.
func (f *File) scheduleReload(onChange func()) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if f.timer == nil {
		f.timer = time.AfterFunc(reloadDebounce, func() { f.fire(onChange) })
	} else {
		f.timer.Reset(reloadDebounce)
	}
	f.mu.Unlock()
}

func (f *File) fire(onChange func()) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.timer = nil
	f.mu.Unlock()

	if err := f.reload(); err != nil {
		return
	}
	if onChange != nil {
		onChange()
	}
}

func (f *File) stopTimer() {
	f.mu.Lock()
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()
}
