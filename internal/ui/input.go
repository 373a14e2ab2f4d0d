package ui

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/logging/events"
	"github.com/atomicstack/assetnav/internal/session"
	uistate "github.com/atomicstack/assetnav/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handlePromptKey drives the search, upload and download modes. Once the
// frame has issued its call only cancelling is possible.
func (m *Model) handlePromptKey(frame *session.Frame, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.popFrame()
		return nil
	}
	if frame.Loading() || frame.Prompt == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitPrompt(frame)
	case key.Matches(msg, m.keys.Complete):
		if frame.View == session.ViewUpload {
			m.completeSuggestion(frame)
		}
		return nil
	}
	if m.handleTextInput(frame, msg) && frame.View == session.ViewUpload {
		m.refreshSuggestions()
	}
	return nil
}

func (m *Model) handleTextInput(frame *session.Frame, msg tea.KeyMsg) bool {
	p := frame.Prompt
	before := p.Value
	var changed bool
	switch msg.String() {
	case "ctrl+u":
		changed = p.DeleteToStart()
	case "ctrl+w", "alt+backspace":
		changed = p.DeleteWordBackward()
	case "ctrl+a", "home":
		return m.notePromptCursor(frame, p.MoveStart())
	case "ctrl+e", "end":
		return m.notePromptCursor(frame, p.MoveEnd())
	case "alt+b", "ctrl+left":
		return m.notePromptCursor(frame, p.MoveWordBackward())
	case "alt+f", "ctrl+right":
		return m.notePromptCursor(frame, p.MoveWordForward())
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			changed = p.DeleteRuneBackward()
		case tea.KeyLeft:
			return m.notePromptCursor(frame, p.MoveRuneBackward())
		case tea.KeyRight:
			return m.notePromptCursor(frame, p.MoveRuneForward())
		case tea.KeySpace:
			changed = p.Insert(" ")
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return false
			}
			for _, r := range msg.Runes {
				if unicode.IsControl(r) {
					return false
				}
			}
			changed = p.Insert(string(msg.Runes))
		}
	}
	if changed && p.Value != before {
		events.Prompt.Edit(frame.ID, p.Value, p.CursorPos())
	}
	return changed
}

func (m *Model) notePromptCursor(frame *session.Frame, moved bool) bool {
	if moved {
		events.Prompt.Cursor(frame.ID, frame.Prompt.CursorPos())
	}
	return moved
}

func (m *Model) submitPrompt(frame *session.Frame) tea.Cmd {
	value := strings.TrimSpace(frame.Prompt.Value)
	events.Prompt.Submit(frame.ID, frame.View.String(), value)
	switch frame.View {
	case session.ViewSearch:
		if value == "" {
			m.session.SetError("Empty search query")
			return nil
		}
		frame.Query = value
		return m.dispatch(frame, gateway.Search(value), value, "")
	case session.ViewUpload:
		if value == "" {
			m.session.SetError("No file selected")
			return nil
		}
		path := m.resolveUploadPath(value)
		return m.dispatch(frame, gateway.Upload(frame.FolderID, path), filepath.Base(path), "")
	case session.ViewDownload:
		path := value
		if path == "" {
			path = m.downloadDir
		}
		return m.dispatch(frame, gateway.Download(frame.Target.ID, path), frame.Target.Name, "")
	}
	return nil
}

// resolveUploadPath maps bare names typed in the prompt onto files of the
// watched directory.
func (m *Model) resolveUploadPath(value string) string {
	if filepath.IsAbs(value) {
		return value
	}
	for _, file := range m.files.Entries() {
		if file.Name == value {
			return file.Path
		}
	}
	if m.backend != nil {
		return filepath.Join(m.backend.Dir(), value)
	}
	return value
}

func (m *Model) refreshSuggestions() {
	frame := m.session.Active()
	if frame.View != session.ViewUpload || frame.Prompt == nil {
		m.suggestions = nil
		return
	}
	m.suggestions = uistate.RankSuggestions(m.files.Paths(), frame.Prompt.Value, suggestionLimit)
}

func (m *Model) completeSuggestion(frame *session.Frame) {
	if len(m.suggestions) == 0 {
		return
	}
	best := m.suggestions[0]
	frame.Prompt.Set(best, len([]rune(best)))
	events.Prompt.Complete(frame.ID, best)
	m.refreshSuggestions()
}
