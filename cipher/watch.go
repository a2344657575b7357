package cipher

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// A Watcher holds a Catalog loaded from a file path and reloads it when the
// file changes on disk. It is adapted from the teacher's database watcher:
// a single mutex-guarded pointer that Run keeps current, and Catalog reads
// without blocking on the filesystem.
type Watcher struct {
	path string
	fw   *fsnotify.Watcher

	mu  sync.Mutex
	cat *Catalog
}

// NewWatcher loads the catalog at path and creates the filesystem watcher
// for it. The file is not watched until Run is called: call Run in a
// separate goroutine to register the path and begin processing filesystem
// events; until Run observes a change, Catalog returns the catalog loaded
// here.
func NewWatcher(path string) (*Watcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, fw: fw, cat: cat}, nil
}

// Catalog returns the most recently loaded catalog.
func (w *Watcher) Catalog() *Catalog {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cat
}

// Run watches for changes to the catalog file and reloads it when it is
// modified. Run should be run in its own goroutine; it exits when ctx ends
// or the watcher's event channel closes. A catalog that fails to parse
// after a change is logged and the previous catalog is kept in place.
func (w *Watcher) Run(ctx context.Context) {
	if err := w.fw.Add(w.path); err != nil {
		log.Printf("WARNING: watch catalog %q: %v", w.path, err)
		return
	}
	defer w.fw.Close()

	for {
		select {
		case evt, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			data, err := os.ReadFile(w.path)
			if err != nil {
				log.Printf("WARNING: reload catalog %q: %v (skipped)", w.path, err)
				continue
			}
			cat, err := Parse(data)
			if err != nil {
				log.Printf("WARNING: reload catalog %q: %v (skipped)", w.path, err)
				continue
			}
			w.mu.Lock()
			w.cat = cat
			w.mu.Unlock()
			log.Printf("Reloaded catalog %q", w.path)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("WARNING: watching %q: %v", w.path, err)
		case <-ctx.Done():
			return
		}
	}
}
