package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/atomicstack/assetnav/internal/history"
	"github.com/atomicstack/assetnav/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func plainView(h *Harness) string {
	return ansi.Strip(h.View())
}

func TestViewShowsFolderRows(t *testing.T) {
	h := newTestHarness(t, newFakeExec(), Options{Verbose: true})
	view := plainView(h)
	if !strings.HasPrefix(view, "/") {
		t.Fatalf("expected root header, got:\n%s", view)
	}
	for _, want := range []string{"▌ A/", "B/", "Loaded 2 folders"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}

	h.Send(keyOf(tea.KeyEnter))
	view = plainView(h)
	if !strings.HasPrefix(view, "/A") || !strings.Contains(view, "A1") {
		t.Fatalf("expected child listing under /A, got:\n%s", view)
	}
}

func TestQuietModeClearsStatusAfterListing(t *testing.T) {
	exec := newFakeExec()
	exec.fail = func(spec gateway.CommandSpec) error {
		if spec.Target == "1" {
			return &gateway.Error{Kind: gateway.ToolFailure, Op: spec.Kind, ExitCode: 1, Stderr: "denied"}
		}
		return nil
	}
	h := newTestHarness(t, exec, Options{})
	if st := h.Model().Session().Status(); st.Text != "" {
		t.Fatalf("expected no status without verbose, got %q", st.Text)
	}
	h.Send(keyOf(tea.KeyEnter))
	if st := h.Model().Session().Status(); st.Level != session.LevelError {
		t.Fatalf("expected error status, got %#v", st)
	}
	exec.fail = nil
	h.Send(keyOf(tea.KeyEnter))
	if st := h.Model().Session().Status(); st.Text != "" {
		t.Fatalf("expected the error to clear after a successful listing, got %q", st.Text)
	}
}

func TestViewFitsWindow(t *testing.T) {
	h := newTestHarness(t, newFakeExec(), Options{Width: 20, Height: 3})
	lines := strings.Split(plainView(h), "\n")
	if len(lines) > 3 {
		t.Fatalf("expected at most 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > 20 {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
}

func TestViewLeavesCursorAndViewportAlone(t *testing.T) {
	exec := newFakeExec()
	exec.folders[""] = nil
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("%d", i)
		exec.folders[""] = append(exec.folders[""], gateway.Folder{ID: id, Name: "F" + id})
	}
	h := newTestHarness(t, exec, Options{Height: 6})
	list := h.Model().Session().Active().List
	selectRow(t, h, "9")
	cursor, offset := list.Cursor, list.ViewportOffset

	first := plainView(h)
	if second := plainView(h); second != first {
		t.Fatalf("rendering twice must give the same view")
	}
	if list.Cursor != cursor || list.ViewportOffset != offset {
		t.Fatalf("view moved cursor %d->%d offset %d->%d", cursor, list.Cursor, offset, list.ViewportOffset)
	}
	if !strings.Contains(first, "F9") {
		t.Fatalf("expected the selected row in view, got %q", first)
	}

	h.Send(runes("k"))
	if list.ViewportOffset == offset {
		t.Fatalf("expected the update to scroll the viewport to the cursor")
	}
}

func TestViewAssetTable(t *testing.T) {
	h := newTestHarness(t, newFakeExec(), Options{})
	h.Send(keyOf(tea.KeyEnter))
	h.Send(runes("a"))
	view := plainView(h)
	for _, want := range []string{"/A · assets", "gear.stl", "1.2 KiB", "uploaded", "20 B"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}

	cmd := h.Dispatch(runes("d"))
	view = plainView(h)
	if !strings.Contains(view, busyMarker) {
		t.Fatalf("expected busy marker while downloading:\n%s", view)
	}
	h.Run(cmd)
	if strings.Contains(plainView(h), busyMarker) {
		t.Fatalf("busy marker should clear")
	}
}

func TestViewShowsLoadingLine(t *testing.T) {
	h := newTestHarness(t, newFakeExec(), Options{Height: 20})
	cmd := h.Dispatch(runes("r"))
	if cmd == nil {
		t.Fatalf("expected refresh")
	}
	if view := plainView(h); !strings.Contains(view, "Loading subfolders for /...") {
		t.Fatalf("expected loading line, got:\n%s", view)
	}
	h.Run(cmd)
	if view := plainView(h); strings.Contains(view, "Loading") {
		t.Fatalf("loading line should clear, got:\n%s", view)
	}
}

func TestViewEmptyStates(t *testing.T) {
	exec := newFakeExec()
	exec.folders["11"] = nil
	h := newTestHarness(t, exec, Options{})
	h.Send(keyOf(tea.KeyEnter))
	h.Send(keyOf(tea.KeyEnter))
	if view := plainView(h); !strings.Contains(view, "(no folders)") {
		t.Fatalf("expected empty folder marker:\n%s", view)
	}
	h.Send(runes("a"))
	if view := plainView(h); !strings.Contains(view, "(no assets)") {
		t.Fatalf("expected empty asset marker:\n%s", view)
	}
	h.Send(runes("q"))
	h.Send(runes("/"))
	typeText(h, "nothing")
	h.Send(keyOf(tea.KeyEnter))
	if view := plainView(h); !strings.Contains(view, `No assets match "nothing"`) {
		t.Fatalf("expected empty results marker:\n%s", view)
	}
}

func TestPromptRendering(t *testing.T) {
	h := newTestHarness(t, newFakeExec(), Options{})
	h.Send(runes("/"))
	typeText(h, "gear")
	view := plainView(h)
	if !strings.HasPrefix(view, "Search assets") || !strings.Contains(view, "Search: gear") {
		t.Fatalf("unexpected prompt view:\n%s", view)
	}
}

func TestFooterShowsContextKeys(t *testing.T) {
	h := newTestHarness(t, newFakeExec(), Options{Width: 120, ShowFooter: true})
	view := plainView(h)
	for _, want := range []string{"search", "quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in footer:\n%s", want, view)
		}
	}
	h.Send(runes("/"))
	if view := plainView(h); !strings.Contains(view, "submit") {
		t.Fatalf("expected prompt keys in footer:\n%s", view)
	}
}

func TestLogOverlayCopiesCommand(t *testing.T) {
	var copied []string
	orig := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	h := newTestHarness(t, newFakeExec(), Options{})
	h.Send(runes("l"))
	view := plainView(h)
	if !strings.HasPrefix(view, "Command log") || !strings.Contains(view, "pcli2 folder list --format json") {
		t.Fatalf("unexpected log view:\n%s", view)
	}

	h.Send(runes("C"))
	if len(copied) != 1 || copied[0] != "pcli2 folder list --format json" {
		t.Fatalf("unexpected clipboard contents %q", copied)
	}
	if st := h.Model().Session().Status(); st.Text != "Copied command to clipboard" {
		t.Fatalf("unexpected status %q", st.Text)
	}

	h.Send(runes("c"))
	if len(copied) != 2 || !strings.Contains(copied[1], "2 folders") {
		t.Fatalf("expected the log line to be copied, got %q", copied)
	}

	h.Send(keyOf(tea.KeyEsc))
	if h.Model().overlay != overlayNone {
		t.Fatalf("expected overlay closed")
	}
	if h.Model().Session().Depth() != 1 {
		t.Fatalf("closing the log must not pop frames")
	}
}

func TestLogOverlayCopyFailure(t *testing.T) {
	orig := clipboardWrite
	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWrite = orig })

	h := newTestHarness(t, newFakeExec(), Options{})
	h.Send(runes("l"))
	h.Send(runes("C"))
	st := h.Model().Session().Status()
	if st.Level != session.LevelError || st.Text != "Copy failed: no clipboard" {
		t.Fatalf("unexpected status %#v", st)
	}
}

func TestLogListsEveryInvocation(t *testing.T) {
	clock := &fixedClock{now: time.Unix(1_700_000_000, 0)}
	h := newTestHarness(t, newFakeExec(), Options{CacheTTL: time.Minute, Clock: clock.Now})
	h.Send(keyOf(tea.KeyEnter))
	h.Send(keyOf(tea.KeyEsc))
	h.Send(keyOf(tea.KeyEnter))
	entries := h.Model().Session().Log().Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}
	if entries[2].Outcome != history.OutcomeCached {
		t.Fatalf("expected the re-entry to be served from cache, got %s", entries[2].Outcome)
	}
}

func TestLogIncludesEarlierRuns(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	earlier := history.Entry{
		At:      time.Now().Add(-time.Hour),
		Kind:    "search",
		Command: "pcli2 asset text-match --text bolt --format json",
		Outcome: history.OutcomeOK,
	}
	if err := store.Record(context.Background(), earlier); err != nil {
		t.Fatalf("record: %v", err)
	}

	h := newTestHarness(t, newFakeExec(), Options{History: store})
	entries := h.Model().Session().Log().Entries()
	if len(entries) != 2 {
		t.Fatalf("expected the earlier entry plus the root listing, got %d", len(entries))
	}
	if entries[0].Command != earlier.Command || entries[1].Kind != "list-folder" {
		t.Fatalf("unexpected log order %#v", entries)
	}

	recent, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected the root listing to be persisted, got %d rows", len(recent))
	}
}

func TestHelpOverlay(t *testing.T) {
	h := newTestHarness(t, newFakeExec(), Options{})
	h.Send(runes("?"))
	if h.Model().overlay != overlayHelp {
		t.Fatalf("expected help overlay")
	}
	view := plainView(h)
	if !strings.Contains(view, "Keys") || !strings.Contains(view, "Folders") {
		t.Fatalf("unexpected help view:\n%s", view)
	}
	h.Send(runes("j"))
	h.Send(runes("?"))
	if h.Model().overlay != overlayNone {
		t.Fatalf("expected help closed")
	}
	if h.Model().Session().Active().List.Cursor != 0 {
		t.Fatalf("keys in the help overlay must not move the list")
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("abcdef", 4); ansi.StringWidth(got) > 4 {
		t.Fatalf("expected at most 4 cells, got %q", got)
	}
	if got := truncateText("abc", 10); got != "abc" {
		t.Fatalf("expected untouched text, got %q", got)
	}
}
