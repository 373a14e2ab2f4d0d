package session

import "time"

// Level is the severity of a status message.
type Level int

const (
	LevelNone Level = iota
	LevelInfo
	LevelError
)

// Status is the single status line. A zero Expires means it stays until
// replaced.
type Status struct {
	Level   Level
	Text    string
	At      time.Time
	Expires time.Time
}

// Visible reports whether the status should still be shown at now.
func (st Status) Visible(now time.Time) bool {
	if st.Text == "" {
		return false
	}
	return st.Expires.IsZero() || now.Before(st.Expires)
}

// SetStatus replaces the status line.
func (s *Session) SetStatus(level Level, text string) {
	s.status = Status{Level: level, Text: text, At: s.now()}
}

func (s *Session) SetInfo(text string) {
	s.SetStatus(LevelInfo, text)
}

func (s *Session) SetError(text string) {
	s.SetStatus(LevelError, text)
}

// SetTransient shows an info message for ttl.
func (s *Session) SetTransient(text string, ttl time.Duration) {
	now := s.now()
	s.status = Status{Level: LevelInfo, Text: text, At: now, Expires: now.Add(ttl)}
}

// ClearStatus empties the status line.
func (s *Session) ClearStatus() {
	s.status = Status{}
}

// Status returns the status line if it is still visible.
func (s *Session) Status() Status {
	if !s.status.Visible(s.now()) {
		return Status{}
	}
	return s.status
}
