// Package session holds the navigation state of one run: the frame stack,
// the breadcrumb of entered folders, the table of pending operations, the
// status line and the command log. It is owned by a single goroutine and
// does no locking.
package session

import (
	"time"

	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/history"
)

// Session is the single mutable state value driven by the controller.
type Session struct {
	frames     []*Frame
	breadcrumb []string
	pending    map[gateway.Kind]PendingOperation
	status     Status
	log        *history.Ring
	now        func() time.Time
}

// Option customises a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogSize bounds the in-memory command log.
func WithLogSize(n int) Option {
	return func(s *Session) {
		s.log = history.NewRing(n)
	}
}

// New creates a session showing the root folder.
func New(opts ...Option) *Session {
	s := &Session{
		frames:  []*Frame{NewFolderFrame("")},
		pending: make(map[gateway.Kind]PendingOperation),
		log:     history.NewRing(history.DefaultRingSize),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

// Root returns the bottom frame, which always browses folders.
func (s *Session) Root() *Frame {
	return s.frames[0]
}

// Active returns the top frame.
func (s *Session) Active() *Frame {
	return s.frames[len(s.frames)-1]
}

// View returns the active view.
func (s *Session) View() View {
	return s.Active().View
}

// Depth returns the number of frames on the stack.
func (s *Session) Depth() int {
	return len(s.frames)
}

// Frames returns the stack, bottom first.
func (s *Session) Frames() []*Frame {
	return append([]*Frame(nil), s.frames...)
}

// Push makes f the active frame.
func (s *Session) Push(f *Frame) {
	if f == nil {
		return
	}
	s.frames = append(s.frames, f)
}

// Pop removes the active frame. The root frame is never removed.
func (s *Session) Pop() (*Frame, bool) {
	if len(s.frames) <= 1 {
		return nil, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top, true
}

// Replace swaps the frame identified by id for f in place.
func (s *Session) Replace(id string, f *Frame) bool {
	if f == nil {
		return false
	}
	for i, frame := range s.frames {
		if frame.ID == id {
			s.frames[i] = f
			return true
		}
	}
	return false
}

// Remove drops the non-root frame identified by id and everything above it.
func (s *Session) Remove(id string) bool {
	for i := 1; i < len(s.frames); i++ {
		if s.frames[i].ID == id {
			s.frames = s.frames[:i]
			return true
		}
	}
	return false
}

// FindFrame returns the frame identified by id while it is on the stack.
func (s *Session) FindFrame(id string) *Frame {
	for _, frame := range s.frames {
		if frame.ID == id {
			return frame
		}
	}
	return nil
}

// Breadcrumb returns the folder ids from below the root to the current folder.
func (s *Session) Breadcrumb() []string {
	return append([]string(nil), s.breadcrumb...)
}

// CurrentFolderID returns the folder the root frame is showing.
func (s *Session) CurrentFolderID() string {
	if len(s.breadcrumb) == 0 {
		return ""
	}
	return s.breadcrumb[len(s.breadcrumb)-1]
}

// EnterFolder descends into id.
func (s *Session) EnterFolder(id string) {
	if id == "" {
		return
	}
	s.breadcrumb = append(s.breadcrumb, id)
	s.Root().FolderID = id
}

// LeaveFolder ascends one level and returns the folder that was left.
func (s *Session) LeaveFolder() (string, bool) {
	if len(s.breadcrumb) == 0 {
		return "", false
	}
	left := s.breadcrumb[len(s.breadcrumb)-1]
	s.breadcrumb = s.breadcrumb[:len(s.breadcrumb)-1]
	s.Root().FolderID = s.CurrentFolderID()
	return left, true
}

// Log returns the in-memory command log.
func (s *Session) Log() *history.Ring {
	return s.log
}
