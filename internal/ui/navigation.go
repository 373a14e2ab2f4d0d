package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/logging/events"
	"github.com/atomicstack/assetnav/internal/session"
	"github.com/atomicstack/assetnav/internal/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.overlay != overlayNone {
		return m.handleOverlayKey(keyMsg)
	}
	frame := m.session.Active()
	switch frame.View {
	case session.ViewFolderBrowser:
		if frame.IsResults() {
			return m.handleResultsKey(frame, keyMsg)
		}
		return m.handleFolderKey(frame, keyMsg)
	case session.ViewAssetBrowser:
		return m.handleAssetKey(frame, keyMsg)
	default:
		return m.handlePromptKey(frame, keyMsg)
	}
}

func (m *Model) handleFolderKey(frame *session.Frame, msg tea.KeyMsg) tea.Cmd {
	if frame.Loading() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.cancelAwaiting(frame)
		}
		return nil
	}
	if m.moveCursor(frame, msg) {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Enter):
		folder, ok := frame.SelectedFolder()
		if !ok {
			return nil
		}
		return m.openFolder(frame, folder)
	case key.Matches(msg, m.keys.Back):
		return m.leaveFolder(frame)
	case key.Matches(msg, m.keys.Refresh):
		return m.loadFolder(frame, m.session.CurrentFolderID())
	case key.Matches(msg, m.keys.Assets):
		return m.openAssets()
	case key.Matches(msg, m.keys.Search):
		m.pushFrame(session.NewSearchFrame())
	case key.Matches(msg, m.keys.Upload):
		m.pushFrame(session.NewUploadFrame(m.session.CurrentFolderID()))
		m.refreshSuggestions()
	case key.Matches(msg, m.keys.Download):
		m.openDownloadPrompt()
	case key.Matches(msg, m.keys.Log):
		m.openLog()
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
	}
	return nil
}

func (m *Model) handleResultsKey(frame *session.Frame, msg tea.KeyMsg) tea.Cmd {
	if m.moveCursor(frame, msg) {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.popFrame()
	case key.Matches(msg, m.keys.Enter):
		m.showAssetDetails(frame)
	case key.Matches(msg, m.keys.Download):
		return m.downloadSelected(frame)
	case key.Matches(msg, m.keys.Search):
		m.pushFrame(session.NewSearchFrame())
	case key.Matches(msg, m.keys.Log):
		m.openLog()
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
	}
	return nil
}

func (m *Model) handleAssetKey(frame *session.Frame, msg tea.KeyMsg) tea.Cmd {
	if m.moveCursor(frame, msg) {
		m.assets.SetCursor(frame.FolderID, frame.List.Cursor)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.popFrame()
	case key.Matches(msg, m.keys.Enter):
		m.showAssetDetails(frame)
	case key.Matches(msg, m.keys.Download):
		return m.downloadSelected(frame)
	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(frame, gateway.ListAssets(frame.FolderID), m.folderName(frame.FolderID), "")
	case key.Matches(msg, m.keys.Log):
		m.openLog()
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
	}
	return nil
}

// moveCursor applies the list movement keys. Movement clamps at both ends.
func (m *Model) moveCursor(frame *session.Frame, msg tea.KeyMsg) bool {
	list := frame.List
	var moved bool
	switch {
	case key.Matches(msg, m.keys.Up):
		moved = list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		moved = list.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		moved = list.MoveCursorPageUp(m.maxVisibleItems())
	case key.Matches(msg, m.keys.PageDown):
		moved = list.MoveCursorPageDown(m.maxVisibleItems())
	case key.Matches(msg, m.keys.Home):
		moved = list.MoveCursorHome()
	case key.Matches(msg, m.keys.End):
		moved = list.MoveCursorEnd()
	default:
		return false
	}
	if moved {
		events.UI.Cursor(frame.ID, list.Cursor)
	}
	m.syncViewport(frame)
	return true
}

func (m *Model) syncViewport(frame *session.Frame) {
	if frame == nil {
		return
	}
	frame.List.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) pushFrame(frame *session.Frame) {
	m.session.Push(frame)
	events.UI.Push(frame.ID, frame.View.String(), m.session.Depth())
	m.syncViewport(frame)
}

// popFrame returns to the frame below. Results of operations the popped
// frame was waiting on are discarded when they arrive.
func (m *Model) popFrame() {
	frame, ok := m.session.Pop()
	if !ok {
		return
	}
	if frame.View == session.ViewAssetBrowser {
		m.assets.SetCursor(frame.FolderID, frame.List.Cursor)
	}
	m.suggestions = nil
	events.UI.Pop(frame.ID, frame.View.String(), m.session.Depth())
	m.syncViewport(m.session.Active())
}

func (m *Model) cancelAwaiting(frame *session.Frame) {
	if op, ok := m.pendingFor(frame); ok {
		events.Operation.Discard(op.ID, op.Kind.String(), "cancelled")
	}
	frame.Awaiting = ""
	m.session.SetInfo("Cancelled")
}

func (m *Model) pendingFor(frame *session.Frame) (session.PendingOperation, bool) {
	for _, op := range m.session.InFlight() {
		if op.ID == frame.Awaiting {
			return op, true
		}
	}
	return session.PendingOperation{}, false
}

func (m *Model) openFolder(frame *session.Frame, folder state.Folder) tea.Cmd {
	if m.folders.Fresh(folder.ID, m.cacheTTL, m.session.Now()) {
		children, _ := m.folders.Children(folder.ID)
		m.enterFolder(frame, folder.ID, children)
		m.noteLoaded(fmt.Sprintf("Loaded %d folders", len(children)))
		return m.recordCached(gateway.ListFolder(folder.ID), fmt.Sprintf("%d folders", len(children)))
	}
	return m.loadFolder(frame, folder.ID)
}

func (m *Model) loadFolder(frame *session.Frame, folderID string) tea.Cmd {
	return m.dispatch(frame, gateway.ListFolder(folderID), m.folderName(folderID), "")
}

func (m *Model) enterFolder(frame *session.Frame, folderID string, children []state.Folder) {
	m.session.EnterFolder(folderID)
	frame.SetFolders(children, false)
	events.UI.EnterFolder(folderID, m.folderName(folderID))
	m.syncViewport(frame)
}

// leaveFolder goes up one level and re-selects the folder that was left.
// An uncached parent is fetched first; the breadcrumb only moves once that
// listing arrives.
func (m *Model) leaveFolder(frame *session.Frame) tea.Cmd {
	parent, ok := m.parentFolderID()
	if !ok {
		m.session.SetInfo("Already at root folder")
		return nil
	}
	if children, ok := m.folders.Children(parent); ok {
		m.returnToParent(frame, children)
		return nil
	}
	return m.loadFolder(frame, parent)
}

func (m *Model) returnToParent(frame *session.Frame, children []state.Folder) {
	left, ok := m.session.LeaveFolder()
	if !ok {
		return
	}
	parent := m.session.CurrentFolderID()
	events.UI.LeaveFolder(left, parent)
	frame.SetFolders(children, false)
	frame.List.Select(left)
	m.syncViewport(frame)
}

func (m *Model) parentFolderID() (string, bool) {
	crumbs := m.session.Breadcrumb()
	switch len(crumbs) {
	case 0:
		return "", false
	case 1:
		return state.RootID, true
	}
	return crumbs[len(crumbs)-2], true
}

func (m *Model) openAssets() tea.Cmd {
	folderID := m.session.CurrentFolderID()
	frame := session.NewAssetFrame(folderID)
	if cached, ok := m.assets.Assets(folderID); ok {
		frame.SetAssets(cached, false)
		frame.List.SetCursor(m.assets.Cursor(folderID))
	}
	m.pushFrame(frame)
	return m.dispatch(frame, gateway.ListAssets(folderID), m.folderName(folderID), "")
}

// openDownloadPrompt targets the asset last selected in the current
// folder's asset listing.
func (m *Model) openDownloadPrompt() {
	folderID := m.session.CurrentFolderID()
	cached, ok := m.assets.Assets(folderID)
	idx := m.assets.Cursor(folderID)
	if !ok || idx < 0 || idx >= len(cached) {
		m.session.SetError("No asset selected")
		return
	}
	m.pushFrame(session.NewDownloadFrame(cached[idx]))
}

func (m *Model) downloadSelected(frame *session.Frame) tea.Cmd {
	asset, ok := frame.SelectedAsset()
	if !ok {
		m.session.SetError("No asset selected")
		return nil
	}
	return m.dispatch(frame, gateway.Download(asset.ID, m.downloadDir), asset.Name, asset.ID)
}

func (m *Model) showAssetDetails(frame *session.Frame) {
	asset, ok := frame.SelectedAsset()
	if !ok {
		m.session.SetError("No asset selected")
		return
	}
	parts := []string{asset.Name, humanize.IBytes(uint64(max(asset.Size, 0)))}
	if asset.Status != "" {
		parts = append(parts, asset.Status)
	}
	if asset.Path != "" {
		parts = append(parts, asset.Path)
	}
	parts = append(parts, "id "+asset.ID)
	m.session.SetInfo(strings.Join(parts, " · "))
}

func (m *Model) folderName(id string) string {
	if folder, ok := m.folders.Get(id); ok && folder.Name != "" {
		return folder.Name
	}
	return id
}
