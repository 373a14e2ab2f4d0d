// Package command runs gateway calls off the UI goroutine and reports their
// completion back into the Bubble Tea message loop.
package command

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/logging"
	"github.com/atomicstack/assetnav/internal/logging/events"
	"github.com/atomicstack/assetnav/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Executor runs one invocation of the external tool.
type Executor interface {
	Execute(ctx context.Context, spec gateway.CommandSpec) (gateway.Output, error)
	CommandLine(spec gateway.CommandSpec) string
}

// Request pairs a reserved pending operation with the call that fulfils it.
type Request struct {
	Op   session.PendingOperation
	Spec gateway.CommandSpec
}

// OperationCompletedMsg carries the outcome of a Request.
type OperationCompletedMsg struct {
	Op       session.PendingOperation
	Command  string
	Output   gateway.Output
	Err      error
	Duration time.Duration
}

var errNoExecutor = errors.New("no executor configured")

// Bus coordinates the execution of gateway calls.
type Bus struct {
	exec Executor
}

// New initialises a command bus instance.
func New(exec Executor) *Bus {
	return &Bus{exec: exec}
}

// CommandLine renders spec for the log view.
func (b *Bus) CommandLine(spec gateway.CommandSpec) string {
	if b.exec == nil {
		return spec.Kind.String()
	}
	return b.exec.CommandLine(spec)
}

// Execute wraps a gateway call into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	kind := req.Op.Kind.String()
	events.Operation.Queue(req.Op.ID, kind, req.Op.Label)
	line := b.CommandLine(req.Spec)
	return func() tea.Msg {
		msg := OperationCompletedMsg{Op: req.Op, Command: line}
		if b.exec == nil {
			msg.Err = &gateway.Error{Kind: gateway.LaunchFailure, Op: req.Spec.Kind, Err: errNoExecutor}
			return msg
		}
		start := time.Now()
		out, err := b.exec.Execute(context.Background(), req.Spec)
		msg.Duration = time.Since(start)
		msg.Output = out
		msg.Err = err
		events.Operation.Result(req.Op.ID, kind, err, msg.Duration)
		if err != nil {
			logging.Error(err)
		}
		return msg
	}
}
