package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/assetnav/internal/logging/events"
	"github.com/atomicstack/assetnav/internal/state"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindLocalFiles Kind = iota
)

// Event conveys updated data or an error from the watcher.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher publishes snapshots of a local directory whenever its contents
// change. The first snapshot is sent as soon as the watcher starts.
type Watcher struct {
	dir      string
	interval time.Duration
	fs       *fsnotify.Watcher
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher watches dir. Bursts of filesystem changes closer together than
// interval are coalesced into a single rescan.
func NewWatcher(dir string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve watch dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch dir %s is not a directory", abs)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	if err := fsw.Add(abs); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      abs,
		interval: interval,
		fs:       fsw,
		throttle: newThrottle(interval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.fs.Close()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	if !w.emit(w.scan()) {
		return
	}

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()
	pending := false

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			events.Watcher.Change(ev.Name, ev.Op.String())
			if !pending {
				pending = true
				debounce.Reset(w.interval)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Watcher.Error(err)
			if !w.emit(Event{Kind: KindLocalFiles, Err: err}) {
				return
			}
		case <-debounce.C:
			pending = false
			if !w.throttle.wait(w.ctx) {
				return
			}
			if !w.emit(w.scan()) {
				return
			}
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) scan() Event {
	files, err := ScanDir(w.dir)
	if err != nil {
		return Event{Kind: KindLocalFiles, Err: err}
	}
	events.Watcher.Scan(w.dir, len(files))
	return Event{Kind: KindLocalFiles, Data: files}
}

// ScanDir lists the regular, non-hidden files directly inside dir, by name.
func ScanDir(dir string) ([]state.LocalFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	files := make([]state.LocalFile, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, state.LocalFile{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func relevant(ev fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Write)
}
