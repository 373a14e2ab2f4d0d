package events

import (
	"time"

	"github.com/atomicstack/assetnav/internal/logging"
)

type GatewayTracer struct{}

type OperationTracer struct{}

var (
	Gateway   = GatewayTracer{}
	Operation = OperationTracer{}
)

func (GatewayTracer) Spawn(kind, tool string, argv []string) {
	logging.Trace("gateway.spawn", map[string]interface{}{"kind": kind, "tool": tool, "argv": argv})
}

func (GatewayTracer) Exit(kind string, code int, elapsed time.Duration) {
	logging.Trace("gateway.exit", map[string]interface{}{"kind": kind, "code": code, "elapsed_ms": elapsed.Milliseconds()})
}

func (GatewayTracer) Reject(kind string) {
	logging.Trace("gateway.reject", map[string]interface{}{"kind": kind})
}

func (GatewayTracer) LaunchError(kind string, err error) {
	logging.Trace("gateway.launch-error", map[string]interface{}{"kind": kind, "error": errString(err)})
}

func (GatewayTracer) ParseError(kind string, err error) {
	logging.Trace("gateway.parse-error", map[string]interface{}{"kind": kind, "error": errString(err)})
}

func (OperationTracer) Queue(id, kind, label string) {
	logging.Trace("operation.queue", map[string]interface{}{"id": id, "kind": kind, "label": label})
}

func (OperationTracer) Ignored(kind, label string) {
	logging.Trace("operation.ignored", map[string]interface{}{"kind": kind, "label": label})
}

func (OperationTracer) Result(id, kind string, err error, elapsed time.Duration) {
	payload := map[string]interface{}{"id": id, "kind": kind, "elapsed_ms": elapsed.Milliseconds()}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("operation.result", payload)
}

func (OperationTracer) Applied(id, kind, frameID string) {
	logging.Trace("operation.applied", map[string]interface{}{"id": id, "kind": kind, "frame": frameID})
}

func (OperationTracer) Discard(id, kind, reason string) {
	logging.Trace("operation.discard", map[string]interface{}{"id": id, "kind": kind, "reason": reason})
}

func (OperationTracer) Adopt(id, kind, frameID string) {
	logging.Trace("operation.adopt", map[string]interface{}{"id": id, "kind": kind, "frame": frameID})
}

func (OperationTracer) Cached(kind, target string) {
	logging.Trace("operation.cached", map[string]interface{}{"kind": kind, "target": target})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
