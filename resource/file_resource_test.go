package resource

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestFileResourceFiresHandlerOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(path, []byte("initial"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	events := make(chan fsnotify.Op, 4)
	fr, err := NewFileResource(path, func(p string, op fsnotify.Op) {
		events <- op
	})
	if err != nil {
		t.Fatalf("NewFileResource() error = %v", err)
	}
	defer fr.Close()

	m, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer m.Stop()
	m.Register(fr)

	time.Sleep(20 * time.Millisecond) // let the watcher settle
	if err := os.WriteFile(path, []byte("updated"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case op := <-events:
		if op&fsnotify.Write == 0 {
			t.Errorf("observed op = %v, want it to include Write", op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("file write was never observed through the monitor")
	}
}

func TestFileResourceEventsZeroAfterClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	fr, err := NewFileResource(path, func(string, fsnotify.Op) {})
	if err != nil {
		t.Fatalf("NewFileResource() error = %v", err)
	}

	if fr.Events() != EventReadable {
		t.Fatalf("Events() before Close = %v, want EventReadable", fr.Events())
	}
	if err := fr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if fr.Events() != 0 {
		t.Errorf("Events() after Close = %v, want 0", fr.Events())
	}
}

func TestFileResourceNewErrorsOnMissingPath(t *testing.T) {
	var mu sync.Mutex
	_, err := NewFileResource(filepath.Join(t.TempDir(), "does-not-exist"), func(string, fsnotify.Op) {
		mu.Lock()
		defer mu.Unlock()
	})
	if err == nil {
		t.Fatal("NewFileResource() error = nil, want error for a nonexistent path")
	}
}
