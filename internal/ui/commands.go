package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/assetnav/internal/data/dispatcher"
	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/history"
	"github.com/atomicstack/assetnav/internal/logging"
	"github.com/atomicstack/assetnav/internal/logging/events"
	"github.com/atomicstack/assetnav/internal/session"
	"github.com/atomicstack/assetnav/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// dispatch reserves the pending slot for spec's kind and hands the call to
// the bus. With busyID the reservation is tracked per row instead of making
// the whole frame wait. Nothing is spawned when the kind is already pending;
// a pending listing of the same target that nobody waits for any more is
// taken over instead.
func (m *Model) dispatch(frame *session.Frame, spec gateway.CommandSpec, label, busyID string) tea.Cmd {
	op, ok := m.session.Begin(spec.Kind, spec.Target, frame.ID, label)
	if !ok {
		if navigational(spec.Kind) {
			if adopted, ok := m.session.Adopt(spec.Kind, spec.Target, frame.ID); ok {
				events.Operation.Adopt(adopted.ID, spec.Kind.String(), frame.ID)
				m.track(frame, adopted, busyID)
				return nil
			}
		}
		events.Operation.Ignored(spec.Kind.String(), label)
		if !navigational(spec.Kind) {
			m.session.SetTransient(fmt.Sprintf("%s already in progress", spec.Kind), transientStatusTTL)
		}
		return nil
	}
	m.track(frame, op, busyID)
	return m.bus.Execute(command.Request{Op: op, Spec: spec})
}

// track makes frame wait for op, per row when busyID is set.
func (m *Model) track(frame *session.Frame, op session.PendingOperation, busyID string) {
	if busyID != "" {
		frame.MarkBusy(busyID, op.ID)
		return
	}
	frame.Awaiting = op.ID
}

func navigational(kind gateway.Kind) bool {
	return kind == gateway.KindListFolder || kind == gateway.KindListAssets
}

// loadingText describes an operation while it runs.
func loadingText(op session.PendingOperation) string {
	switch op.Kind {
	case gateway.KindListFolder:
		return fmt.Sprintf("Loading subfolders for %s...", op.Label)
	case gateway.KindListAssets:
		return fmt.Sprintf("Loading assets for %s...", op.Label)
	case gateway.KindSearch:
		return fmt.Sprintf("Searching for %q...", op.Label)
	case gateway.KindUpload:
		return fmt.Sprintf("Uploading %s...", op.Label)
	case gateway.KindDownload:
		return fmt.Sprintf("Downloading %s...", op.Label)
	}
	return "Working..."
}

func (m *Model) handleOperationCompletedMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(command.OperationCompletedMsg)
	if !ok {
		return nil
	}
	op, ok := m.session.Complete(done.Op.ID)
	if !ok {
		// Already reconciled.
		return nil
	}
	entry := history.Entry{
		At:       op.Started,
		Kind:     op.Kind.String(),
		Command:  done.Command,
		Outcome:  history.OutcomeOK,
		Duration: done.Duration,
	}
	if done.Err != nil {
		entry.Outcome = history.OutcomeError
		entry.Detail = done.Err.Error()
	} else {
		entry.Detail = outputSummary(done.Output)
	}

	frame := m.session.FindFrame(op.Origin)
	if frame == nil || !frame.Expects(op) {
		reason := "frame gone"
		if frame != nil {
			reason = "superseded"
		}
		events.Operation.Discard(op.ID, op.Kind.String(), reason)
		if done.Err == nil {
			entry.Outcome = history.OutcomeDiscarded
		}
		return m.record(entry)
	}

	if frame.Awaiting == op.ID {
		frame.Awaiting = ""
	}
	if done.Err != nil {
		m.applyFailure(frame, op, done.Err)
	} else {
		m.applySuccess(frame, op, done.Output)
	}
	events.Operation.Applied(op.ID, op.Kind.String(), frame.ID)
	return m.record(entry)
}

func (m *Model) applySuccess(frame *session.Frame, op session.PendingOperation, out gateway.Output) {
	switch op.Kind {
	case gateway.KindListFolder:
		children := m.dispatcher.ApplyFolderListing(op.Target, out.Folders, m.session.Now())
		parent, hasParent := m.parentFolderID()
		switch {
		case op.Target == m.session.CurrentFolderID():
			frame.SetFolders(children, true)
			m.syncViewport(frame)
		case hasParent && op.Target == parent:
			m.returnToParent(frame, children)
		default:
			m.enterFolder(frame, op.Target, children)
		}
		m.noteLoaded(fmt.Sprintf("Loaded %d folders", len(children)))
	case gateway.KindListAssets:
		assets := m.dispatcher.ApplyAssetListing(op.Target, out.Assets)
		frame.SetAssets(assets, true)
		m.assets.SetCursor(frame.FolderID, frame.List.Cursor)
		m.syncViewport(frame)
		m.noteLoaded(fmt.Sprintf("Loaded %d assets", len(assets)))
	case gateway.KindSearch:
		results := session.NewResultsFrame(frame.Query, dispatcher.ConvertAssets(out.Assets))
		m.session.Replace(frame.ID, results)
		m.syncViewport(results)
		m.session.SetInfo(fmt.Sprintf("Found %d assets", len(out.Assets)))
	case gateway.KindUpload:
		m.session.Remove(frame.ID)
		m.suggestions = nil
		m.dispatcher.InvalidateAssets(frame.FolderID)
		m.session.SetInfo(fmt.Sprintf("Uploaded %s", op.Label))
	case gateway.KindDownload:
		m.applyTransfer(out.Transfer)
		if frame.View == session.ViewDownload {
			m.session.Remove(frame.ID)
		} else {
			frame.ClearBusy(op.Target)
		}
		m.session.SetInfo(fmt.Sprintf("Downloaded %s", op.Label))
	}
}

// noteLoaded reports a finished listing in verbose mode and otherwise
// clears any stale status.
func (m *Model) noteLoaded(text string) {
	if m.verbose {
		m.session.SetInfo(text)
		return
	}
	m.session.ClearStatus()
}

// applyFailure leaves the view as it was, apart from transfer prompts
// returning to where they were opened from.
func (m *Model) applyFailure(frame *session.Frame, op session.PendingOperation, err error) {
	switch op.Kind {
	case gateway.KindUpload:
		m.session.Remove(frame.ID)
		m.suggestions = nil
	case gateway.KindDownload:
		if frame.View == session.ViewDownload {
			m.session.Remove(frame.ID)
		} else {
			frame.ClearBusy(op.Target)
		}
	}
	if errors.Is(err, gateway.ErrAlreadyInFlight) {
		m.session.SetTransient(err.Error(), transientStatusTTL)
		return
	}
	m.session.SetError(err.Error())
}

// applyTransfer updates every listing that shows the transferred asset.
func (m *Model) applyTransfer(t gateway.Transfer) {
	m.dispatcher.ApplyTransfer(t)
	if t.ID == "" || t.ResultingStatus == "" {
		return
	}
	for _, f := range m.session.Frames() {
		if f.ListsAssets() {
			f.UpdateAssetStatus(t.ID, t.ResultingStatus)
		}
	}
}

// recordCached logs a call answered from the cache without running the tool.
func (m *Model) recordCached(spec gateway.CommandSpec, detail string) tea.Cmd {
	events.Operation.Cached(spec.Kind.String(), spec.Target)
	return m.record(history.Entry{
		At:      m.session.Now(),
		Kind:    spec.Kind.String(),
		Command: m.bus.CommandLine(spec),
		Outcome: history.OutcomeCached,
		Detail:  detail,
	})
}

type historyRecordedMsg struct {
	err error
}

// record adds e to the in-memory log and persists it in the background.
func (m *Model) record(e history.Entry) tea.Cmd {
	m.session.Log().Add(e)
	m.syncLogList()
	events.History.Record(e.Kind, string(e.Outcome))
	if m.history == nil {
		return nil
	}
	store := m.history
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Record(ctx, e); err != nil {
			return historyRecordedMsg{err: err}
		}
		return nil
	}
}

func (m *Model) handleHistoryRecordedMsg(msg tea.Msg) tea.Cmd {
	recorded, ok := msg.(historyRecordedMsg)
	if !ok || recorded.err == nil {
		return nil
	}
	events.History.Error(recorded.err)
	logging.Error(recorded.err)
	return nil
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

// loadHistory reads the entries of earlier runs, those recorded before
// since, for the log view.
func loadHistory(store *history.Store, since time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := store.Recent(ctx, history.DefaultRingSize)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		earlier := entries[:0]
		for _, e := range entries {
			if e.At.Before(since) {
				earlier = append(earlier, e)
			}
		}
		return historyLoadedMsg{entries: earlier}
	}
}

func (m *Model) handleHistoryLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(historyLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		events.History.Error(loaded.err)
		logging.Error(loaded.err)
		return nil
	}
	m.session.Log().Prepend(loaded.entries)
	m.syncLogList()
	return nil
}

func outputSummary(out gateway.Output) string {
	switch out.Kind {
	case gateway.KindListFolder:
		return fmt.Sprintf("%d folders", len(out.Folders))
	case gateway.KindListAssets, gateway.KindSearch:
		return fmt.Sprintf("%d assets", len(out.Assets))
	case gateway.KindUpload, gateway.KindDownload:
		if out.Transfer.ResultingStatus != "" {
			return fmt.Sprintf("%s %s", out.Transfer.ID, out.Transfer.ResultingStatus)
		}
	}
	return ""
}
