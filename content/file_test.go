package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenFileLoadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "alpha\nbeta\n")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 2 || f.Line(1) != "beta" {
		t.Fatalf("loaded %d lines, line 1 = %q", f.Len(), f.Line(1))
	}
}

func TestOpenFileMissing(t *testing.T) {
	if _, err := OpenFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "one\n")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan struct{}, 1)
	if err := f.Watch(ctx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatal(err)
	}

	writeFile(t, path, "one\ntwo\nthree\n")

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
	if f.Len() != 3 {
		t.Fatalf("len = %d after reload, want 3", f.Len())
	}
}

func TestFileWatchAddFailure(t *testing.T) {
	addWatchFn = func(w *fsnotify.Watcher, dir string) error {
		return errors.New("watch refused")
	}
	defer func() { addWatchFn = nil }()

	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "one\n")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Watch(context.Background(), func() {}); err == nil {
		t.Fatal("expected watch error to propagate")
	}
}
