package events

import "github.com/atomicstack/assetnav/internal/logging"

type UITracer struct{}

type PromptTracer struct{}

var (
	UI     = UITracer{}
	Prompt = PromptTracer{}
)

func (UITracer) Cursor(frameID string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"frame": frameID, "cursor": cursor})
}

func (UITracer) Push(frameID, view string, depth int) {
	logging.Trace("ui.push", map[string]interface{}{"frame": frameID, "view": view, "depth": depth})
}

func (UITracer) Pop(frameID, view string, depth int) {
	logging.Trace("ui.pop", map[string]interface{}{"frame": frameID, "view": view, "depth": depth})
}

func (UITracer) EnterFolder(folderID, name string) {
	logging.Trace("ui.folder.enter", map[string]interface{}{"folder": folderID, "name": name})
}

func (UITracer) LeaveFolder(from, to string) {
	logging.Trace("ui.folder.leave", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Overlay(name string, open bool) {
	logging.Trace("ui.overlay", map[string]interface{}{"overlay": name, "open": open})
}

func (PromptTracer) Edit(frameID, value string, cursor int) {
	logging.Trace("prompt.edit", map[string]interface{}{"frame": frameID, "value": value, "cursor": cursor})
}

func (PromptTracer) Cursor(frameID string, cursor int) {
	logging.Trace("prompt.cursor", map[string]interface{}{"frame": frameID, "cursor": cursor})
}

func (PromptTracer) Complete(frameID, value string) {
	logging.Trace("prompt.complete", map[string]interface{}{"frame": frameID, "value": value})
}

func (PromptTracer) Submit(frameID, view, value string) {
	logging.Trace("prompt.submit", map[string]interface{}{"frame": frameID, "view": view, "value": value})
}
