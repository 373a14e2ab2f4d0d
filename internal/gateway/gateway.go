// Package gateway runs the external asset tool as a subprocess and turns its
// exit status and structured output into typed results.
//
// Every call is classified as exactly one of: a parsed Output, a
// LaunchFailure (the process never started), a ToolFailure (non-zero exit or
// an envelope reporting success=false), a MalformedOutput (exit 0 but the
// payload does not match the schema for the call's kind), or AlreadyInFlight
// (a call of the same kind is still running and nothing was spawned).
package gateway

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atomicstack/assetnav/internal/logging/events"
	"golang.org/x/sync/semaphore"
)

// Gateway executes CommandSpecs against the configured tool.
type Gateway struct {
	tool   string
	run    Runner
	guards map[Kind]*semaphore.Weighted
}

// Option customises a Gateway.
type Option func(*Gateway)

// WithRunner replaces the process runner, mainly for tests.
func WithRunner(r Runner) Option {
	return func(g *Gateway) {
		if r != nil {
			g.run = r
		}
	}
}

// New creates a gateway for tool. An empty tool falls back to DefaultTool.
func New(tool string, opts ...Option) *Gateway {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		tool = DefaultTool
	}
	g := &Gateway{
		tool:   tool,
		run:    execRunner,
		guards: make(map[Kind]*semaphore.Weighted, len(kindNames)),
	}
	for _, kind := range Kinds() {
		g.guards[kind] = semaphore.NewWeighted(1)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Tool returns the configured tool name.
func (g *Gateway) Tool() string {
	return g.tool
}

// CommandLine renders spec against the configured tool.
func (g *Gateway) CommandLine(spec CommandSpec) string {
	return CommandLine(g.tool, spec)
}

// Preflight resolves the tool on PATH and returns its location.
func (g *Gateway) Preflight() (string, error) {
	path, err := exec.LookPath(g.tool)
	if err != nil {
		return "", &Error{Kind: LaunchFailure, Op: noKind, Err: fmt.Errorf("resolve %s: %w", g.tool, err)}
	}
	return path, nil
}

// Execute runs spec and classifies the outcome. Calls of different kinds may
// run concurrently; a second call of a kind that is already running fails
// with AlreadyInFlight without starting a process.
func (g *Gateway) Execute(ctx context.Context, spec CommandSpec) (Output, error) {
	guard, ok := g.guards[spec.Kind]
	if !ok {
		return Output{}, fmt.Errorf("unknown command kind %d", int(spec.Kind))
	}
	if !guard.TryAcquire(1) {
		events.Gateway.Reject(spec.Kind.String())
		return Output{}, &Error{Kind: AlreadyInFlight, Op: spec.Kind}
	}
	defer guard.Release(1)

	argv := spec.Argv()
	events.Gateway.Spawn(spec.Kind.String(), g.tool, argv)
	started := time.Now()
	res, err := g.run(ctx, g.tool, argv)
	if err != nil {
		events.Gateway.LaunchError(spec.Kind.String(), err)
		return Output{}, &Error{Kind: LaunchFailure, Op: spec.Kind, Err: err}
	}
	events.Gateway.Exit(spec.Kind.String(), res.ExitCode, time.Since(started))

	if res.ExitCode != 0 {
		return Output{}, &Error{
			Kind:     ToolFailure,
			Op:       spec.Kind,
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(string(res.Stderr)),
		}
	}
	if !spec.Structured {
		return Output{Kind: spec.Kind}, nil
	}
	out, err := Decode(spec.Kind, res.Stdout)
	if err != nil {
		var reported *ReportedFailure
		if errors.As(err, &reported) {
			return Output{}, &Error{Kind: ToolFailure, Op: spec.Kind, Stderr: reported.Message}
		}
		events.Gateway.ParseError(spec.Kind.String(), err)
		return Output{}, &Error{Kind: MalformedOutput, Op: spec.Kind, Raw: string(res.Stdout), Err: err}
	}
	return out, nil
}
