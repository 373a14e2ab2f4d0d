package ui

import (
	"github.com/atomicstack/assetnav/internal/logging"
	"github.com/atomicstack/assetnav/internal/logging/events"
	uistate "github.com/atomicstack/assetnav/internal/ui/state"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var clipboardWrite = clipboard.WriteAll

type clipboardMsg struct {
	what string
	err  error
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch m.overlay {
	case overlayLog:
		return m.handleLogKey(msg)
	case overlayHelp:
		return m.handleHelpKey(msg)
	}
	return nil
}

func (m *Model) openLog() {
	m.overlay = overlayLog
	m.syncLogList()
	m.logList.MoveCursorEnd()
	m.logList.EnsureCursorVisible(m.maxVisibleItems())
	events.UI.Overlay("log", true)
}

func (m *Model) closeOverlay() {
	name := "help"
	if m.overlay == overlayLog {
		name = "log"
	}
	m.overlay = overlayNone
	events.UI.Overlay(name, false)
}

// syncLogList mirrors the session's command log into the log list, keeping
// the cursor on the same entry.
func (m *Model) syncLogList() {
	entries := m.session.Log().Entries()
	items := make([]uistate.Item, len(entries))
	for i, e := range entries {
		items[i] = uistate.Item{ID: e.Command, Label: e.String()}
	}
	m.logList.UpdateItems(items)
}

func (m *Model) handleLogKey(msg tea.KeyMsg) tea.Cmd {
	list := m.logList
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Log):
		m.closeOverlay()
	case key.Matches(msg, m.keys.Up):
		list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		list.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		list.MoveCursorPageUp(m.maxVisibleItems())
	case key.Matches(msg, m.keys.PageDown):
		list.MoveCursorPageDown(m.maxVisibleItems())
	case key.Matches(msg, m.keys.Home):
		list.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		list.MoveCursorEnd()
	case key.Matches(msg, m.keys.Copy):
		if item, ok := list.Selected(); ok {
			return copyToClipboard("log entry", item.Label)
		}
	case key.Matches(msg, m.keys.CopyCommand):
		if item, ok := list.Selected(); ok {
			return copyToClipboard("command", item.ID)
		}
	}
	list.EnsureCursorVisible(m.maxVisibleItems())
	return nil
}

func copyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{what: what, err: clipboardWrite(text)}
	}
}

func (m *Model) handleClipboardMsg(msg tea.Msg) tea.Cmd {
	copied, ok := msg.(clipboardMsg)
	if !ok {
		return nil
	}
	if copied.err != nil {
		logging.Error(copied.err)
		m.session.SetError("Copy failed: " + copied.err.Error())
		return nil
	}
	m.session.SetTransient("Copied "+copied.what+" to clipboard", transientStatusTTL)
	return nil
}
