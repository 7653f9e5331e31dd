// Package watch monitors schema sources and re-runs expansion when they
// change.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// SchemaWatcher monitors a schema directory for .fm changes and triggers a
// callback with the changed files, debounced so editor save bursts produce
// one rebuild.
type SchemaWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	dir       string
	onChange  func([]string) error
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewSchemaWatcher creates a watcher for the given schema directory
func NewSchemaWatcher(dir string, logger *zap.Logger, onChange func([]string) error) (*SchemaWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	sw := &SchemaWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(100 * time.Millisecond),
		dir:       dir,
		onChange:  onChange,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}

	sw.debouncer.SetCallback(func(files []string) {
		if err := sw.onChange(files); err != nil {
			sw.logger.Error("rebuild failed", zap.Error(err))
		}
	})

	return sw, nil
}

// Start begins watching the schema directory
func (sw *SchemaWatcher) Start() error {
	if err := sw.watcher.Add(sw.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", sw.dir, err)
	}
	sw.logger.Info("watching schema directory", zap.String("dir", sw.dir))

	sw.wg.Add(1)
	go sw.watch()

	return nil
}

// Stop stops the watcher
func (sw *SchemaWatcher) Stop() error {
	select {
	case <-sw.stopChan:
		return nil
	default:
		close(sw.stopChan)
	}

	sw.wg.Wait()
	sw.debouncer.Stop()
	return sw.watcher.Close()
}

// watch is the main event loop
func (sw *SchemaWatcher) watch() {
	defer sw.wg.Done()

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}

			if !isSchemaFile(event.Name) {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				sw.logger.Debug("schema file changed", zap.String("file", event.Name))
				sw.debouncer.Add(event.Name)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Error("watch error", zap.Error(err))

		case <-sw.stopChan:
			return
		}
	}
}

// isSchemaFile reports whether a path is a schema source worth rebuilding
// for. Hidden files and editor temp files are skipped.
func isSchemaFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return filepath.Ext(base) == ".fm"
}

// Debouncer collects file changes and triggers the callback after a quiet
// period
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopChan chan struct{}
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
		stopChan: make(chan struct{}),
	}
}

// Add adds a file to the pending change set and restarts the quiet period
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, func() {
		d.flush()
	})
}

// flush triggers the callback with accumulated files
func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.files) == 0 {
		return
	}

	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}

	d.files = make(map[string]struct{})

	if d.callback != nil {
		d.callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop stops the debouncer
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	select {
	case <-d.stopChan:
	default:
		close(d.stopChan)
	}
}
