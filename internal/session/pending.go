package session

import (
	"sort"
	"time"

	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/google/uuid"
)

// PendingOperation is an issued gateway call whose result has not been
// reconciled yet.
type PendingOperation struct {
	ID      string
	Kind    gateway.Kind
	Target  string
	Origin  string
	Label   string
	Started time.Time
}

// Begin reserves the slot for kind. It fails when an operation of the same
// kind is still pending.
func (s *Session) Begin(kind gateway.Kind, target, origin, label string) (PendingOperation, bool) {
	if _, busy := s.pending[kind]; busy {
		return PendingOperation{}, false
	}
	op := PendingOperation{
		ID:      uuid.NewString(),
		Kind:    kind,
		Target:  target,
		Origin:  origin,
		Label:   label,
		Started: s.now(),
	}
	s.pending[kind] = op
	return op, true
}

// Pending returns the operation of kind, if any.
func (s *Session) Pending(kind gateway.Kind) (PendingOperation, bool) {
	op, ok := s.pending[kind]
	return op, ok
}

// Adopt hands the pending operation of kind about target to the frame
// frameID, provided the frame that issued it is gone or no longer waits for
// it. The result then lands in the new frame instead of being discarded.
func (s *Session) Adopt(kind gateway.Kind, target, frameID string) (PendingOperation, bool) {
	op, ok := s.pending[kind]
	if !ok || op.Target != target {
		return PendingOperation{}, false
	}
	if origin := s.FindFrame(op.Origin); origin != nil && origin.Expects(op) {
		return PendingOperation{}, false
	}
	op.Origin = frameID
	s.pending[kind] = op
	return op, true
}

// Complete releases the slot held by id. It reports false when id is not
// pending, so each operation completes at most once.
func (s *Session) Complete(id string) (PendingOperation, bool) {
	for kind, op := range s.pending {
		if op.ID == id {
			delete(s.pending, kind)
			return op, true
		}
	}
	return PendingOperation{}, false
}

// InFlight lists pending operations ordered by kind.
func (s *Session) InFlight() []PendingOperation {
	out := make([]PendingOperation, 0, len(s.pending))
	for _, op := range s.pending {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
