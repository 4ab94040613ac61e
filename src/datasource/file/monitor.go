// monitor.go
package file

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileMonitor watches one source file and triggers a handler when it is
// rewritten. Editors and exports often replace files instead of writing
// in place, so create events count as well.
type FileMonitor struct {
	watchFile string
	watcher   *fsnotify.Watcher
	debounce  time.Duration
	lastRun   time.Time
	mu        sync.Mutex
}

func NewFileMonitor(filePath string, debounce time.Duration) (*FileMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileMonitor{
		watchFile: filepath.Clean(filePath),
		watcher:   watcher,
		debounce:  debounce,
	}, nil
}

// Watch blocks until the watcher is closed or fails, calling handler for
// each debounced change to the watched file. The handler runs in the
// watch loop itself: a second change during a run is queued, never
// dispatched concurrently, so two runs cannot write the same outputs at
// once.
func (m *FileMonitor) Watch(handler func(string)) error {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != m.watchFile {
				continue
			}

			m.mu.Lock()
			due := time.Since(m.lastRun) >= m.debounce
			if due {
				m.lastRun = time.Now()
			}
			m.mu.Unlock()
			if due {
				handler(event.Name)
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (m *FileMonitor) Close() error {
	return m.watcher.Close()
}
