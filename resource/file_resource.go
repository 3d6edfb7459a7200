package resource

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/corelib/logger"
)

// FileResource wraps an fsnotify.Watcher watch on a single path, translating
// fsnotify events into the monitor's readiness-mask model (§3.4 expansion,
// grounded on am/watcher.go's debounced, own-write-suppressing
// ConfigWatcher — simplified here to direct mask translation, since
// debounce/own-write suppression are callback-level concerns left to the
// Handler, not this resource).
type FileResource struct {
	path    string
	watcher *fsnotify.Watcher
	notify  chan EventMask
	handler func(path string, op fsnotify.Op)

	mu     sync.Mutex
	lastOp fsnotify.Op
	closed bool
}

// NewFileResource constructs a FileResource watching path. handler is
// invoked on the monitor goroutine (inside Ready) whenever fsnotify reports
// a write or create event for the watched path.
func NewFileResource(path string, handler func(path string, op fsnotify.Op)) (*FileResource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}
	fr := &FileResource{
		path:    path,
		watcher: w,
		notify:  make(chan EventMask, 1),
		handler: handler,
	}
	go fr.pump()
	return fr, nil
}

// pump translates the fsnotify.Watcher's channel pair into EventMask
// arrivals on notify, so the Monitor's single fan-in select (§4.5) can
// treat this resource uniformly with any other NotifyResource.
func (fr *FileResource) pump() {
	for {
		select {
		case event, ok := <-fr.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fr.mu.Lock()
			fr.lastOp = event.Op
			fr.mu.Unlock()
			select {
			case fr.notify <- EventReadable:
			default:
			}
		case err, ok := <-fr.watcher.Errors:
			if !ok {
				return
			}
			logger.ResourceDebugw("file watcher error", logger.FieldError, err.Error())
		}
	}
}

// Events implements Resource. FileResource is always interested in
// readability (fsnotify delivers asynchronously); it never returns a zero
// mask on its own — callers remove it via Monitor.Unregister + Close.
func (fr *FileResource) Events() EventMask {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if fr.closed {
		return 0
	}
	return EventReadable
}

// Notify implements NotifyResource.
func (fr *FileResource) Notify() <-chan EventMask {
	return fr.notify
}

// Ready implements Resource: invokes the registered handler with the most
// recently observed fsnotify operation.
func (fr *FileResource) Ready(EventMask) {
	fr.mu.Lock()
	op := fr.lastOp
	fr.mu.Unlock()
	if fr.handler != nil {
		fr.handler(fr.path, op)
	}
}

// Close stops the underlying fsnotify watcher and marks the resource
// uninterested, so the monitor drops it on its next cycle even if the
// caller forgets to Unregister explicitly.
func (fr *FileResource) Close() error {
	fr.mu.Lock()
	fr.closed = true
	fr.mu.Unlock()
	return fr.watcher.Close()
}
