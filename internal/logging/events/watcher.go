package events

import "github.com/atomicstack/assetnav/internal/logging"

type WatcherTracer struct{}

type HistoryTracer struct{}

var (
	Watcher = WatcherTracer{}
	History = HistoryTracer{}
)

func (WatcherTracer) Scan(dir string, files int) {
	logging.Trace("watcher.scan", map[string]interface{}{"dir": dir, "files": files})
}

func (WatcherTracer) Change(path, op string) {
	logging.Trace("watcher.change", map[string]interface{}{"path": path, "op": op})
}

func (WatcherTracer) Error(err error) {
	logging.Trace("watcher.error", map[string]interface{}{"error": errString(err)})
}

func (HistoryTracer) Record(kind, outcome string) {
	logging.Trace("history.record", map[string]interface{}{"kind": kind, "outcome": outcome})
}

func (HistoryTracer) Error(err error) {
	logging.Trace("history.error", map[string]interface{}{"error": errString(err)})
}
