package gateway

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed gateway call.
type ErrorKind int

const (
	LaunchFailure ErrorKind = iota + 1
	ToolFailure
	MalformedOutput
	AlreadyInFlight
)

var (
	ErrLaunchFailure   = errors.New("launch failure")
	ErrToolFailure     = errors.New("tool failure")
	ErrMalformedOutput = errors.New("malformed output")
	ErrAlreadyInFlight = errors.New("already in flight")
)

func (k ErrorKind) String() string {
	switch k {
	case LaunchFailure:
		return "launch-failure"
	case ToolFailure:
		return "tool-failure"
	case MalformedOutput:
		return "malformed-output"
	case AlreadyInFlight:
		return "already-in-flight"
	}
	return "unknown"
}

func (k ErrorKind) sentinel() error {
	switch k {
	case LaunchFailure:
		return ErrLaunchFailure
	case ToolFailure:
		return ErrToolFailure
	case MalformedOutput:
		return ErrMalformedOutput
	case AlreadyInFlight:
		return ErrAlreadyInFlight
	}
	return nil
}

// maxRawDisplay bounds how much unparseable output is echoed back.
const maxRawDisplay = 120

// Error is returned for every failed gateway call.
type Error struct {
	Kind     ErrorKind
	Op       Kind
	ExitCode int
	Stderr   string
	Raw      string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case LaunchFailure:
		if !e.Op.Valid() {
			return fmt.Sprintf("unable to launch tool: %v", e.Err)
		}
		return fmt.Sprintf("%s: unable to launch tool: %v", e.Op, e.Err)
	case ToolFailure:
		detail := e.Stderr
		if detail == "" {
			detail = fmt.Sprintf("exit status %d", e.ExitCode)
		}
		return fmt.Sprintf("%s failed: %s", e.Op, detail)
	case MalformedOutput:
		msg := fmt.Sprintf("%s returned malformed output", e.Op)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		if raw := truncateRaw(e.Raw); raw != "" {
			msg += fmt.Sprintf(" (raw: %s)", raw)
		}
		return msg
	case AlreadyInFlight:
		return fmt.Sprintf("%s already in progress", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// KindOf extracts the ErrorKind from err, returning 0 when err is not a gateway error.
func KindOf(err error) ErrorKind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return 0
}

func truncateRaw(raw string) string {
	raw = strings.Join(strings.Fields(raw), " ")
	runes := []rune(raw)
	if len(runes) <= maxRawDisplay {
		return raw
	}
	return string(runes[:maxRawDisplay-1]) + "…"
}
