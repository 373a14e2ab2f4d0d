// Package history records every external tool invocation, in memory for the
// log view and in sqlite across runs.
package history

import (
	"fmt"
	"time"
)

// Outcome summarises how an invocation ended.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeError     Outcome = "error"
	OutcomeCached    Outcome = "cached"
	OutcomeDiscarded Outcome = "discarded"
)

// Entry is one recorded invocation.
type Entry struct {
	At       time.Time
	Kind     string
	Command  string
	Outcome  Outcome
	Detail   string
	Duration time.Duration
}

func (e Entry) String() string {
	line := fmt.Sprintf("[%s] %s %s", e.At.Format("15:04:05"), e.Outcome.Label(), e.Command)
	if e.Detail != "" {
		line += ": " + e.Detail
	}
	return line
}

// Label is the upper-case tag shown in the log view.
func (o Outcome) Label() string {
	switch o {
	case OutcomeOK:
		return "SUCCESS"
	case OutcomeError:
		return "ERROR"
	case OutcomeCached:
		return "CACHED"
	case OutcomeDiscarded:
		return "DISCARDED"
	}
	return string(o)
}

// DefaultRingSize is the number of entries kept for the log view.
const DefaultRingSize = 200

// Ring keeps the most recent entries, oldest first.
type Ring struct {
	entries []Entry
	limit   int
}

func NewRing(limit int) *Ring {
	if limit <= 0 {
		limit = DefaultRingSize
	}
	return &Ring{limit: limit}
}

// Add appends e, dropping the oldest entry when full.
func (r *Ring) Add(e Entry) {
	r.entries = append(r.entries, e)
	if over := len(r.entries) - r.limit; over > 0 {
		r.entries = append([]Entry(nil), r.entries[over:]...)
	}
}

// Prepend inserts older entries ahead of the kept ones. Only the newest
// entries survive when the total exceeds the limit.
func (r *Ring) Prepend(older []Entry) {
	merged := make([]Entry, 0, len(older)+len(r.entries))
	merged = append(merged, older...)
	merged = append(merged, r.entries...)
	if over := len(merged) - r.limit; over > 0 {
		merged = merged[over:]
	}
	r.entries = merged
}

// Entries returns a copy of the kept entries, oldest first.
func (r *Ring) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

func (r *Ring) Len() int {
	return len(r.entries)
}
