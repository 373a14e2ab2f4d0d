package state

import (
	"math/rand"
	"testing"
)

func newTestList(ids ...string) *List {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewList(items)
}

func TestNewListCursor(t *testing.T) {
	if l := newTestList(); l.Cursor != NoSelection {
		t.Fatalf("expected empty list to have no selection, got %d", l.Cursor)
	}
	if l := newTestList("a", "b"); l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}
}

func TestMoveUpDownClampsWithoutWrapping(t *testing.T) {
	l := newTestList("a", "b", "c")
	if l.MoveUp() {
		t.Fatalf("expected no movement above the first row")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", l.Cursor)
	}
	l.MoveDown()
	l.MoveDown()
	if l.MoveDown() {
		t.Fatalf("expected no movement past the last row")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor to stay at 2, got %d", l.Cursor)
	}
}

func TestCursorStaysInBoundsForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 6; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		l := newTestList(ids...)
		for step := 0; step < 500; step++ {
			before := l.Cursor
			up := rng.Intn(2) == 0
			if up {
				l.MoveUp()
			} else {
				l.MoveDown()
			}
			if n == 0 {
				if l.Cursor != NoSelection {
					t.Fatalf("empty list cursor moved to %d", l.Cursor)
				}
				continue
			}
			if l.Cursor < 0 || l.Cursor >= n {
				t.Fatalf("cursor %d out of range for %d items", l.Cursor, n)
			}
			if up && before == 0 && l.Cursor != 0 {
				t.Fatalf("cursor wrapped from top to %d", l.Cursor)
			}
			if !up && before == n-1 && l.Cursor != n-1 {
				t.Fatalf("cursor wrapped from bottom to %d", l.Cursor)
			}
		}
	}
}

func TestUpdateItemsClampsCursor(t *testing.T) {
	l := newTestList("a", "b", "c", "d")
	l.MoveCursorEnd()
	l.UpdateItems([]Item{{ID: "a"}, {ID: "b"}})
	if l.Cursor != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", l.Cursor)
	}
	l.UpdateItems(nil)
	if l.Cursor != NoSelection {
		t.Fatalf("expected no selection after emptying, got %d", l.Cursor)
	}
	l.UpdateItems([]Item{{ID: "x"}})
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0 once items return, got %d", l.Cursor)
	}
}

func TestResetMovesCursorToTop(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.MoveCursorEnd()
	l.ViewportOffset = 2
	l.Reset([]Item{{ID: "x"}, {ID: "y"}})
	if l.Cursor != 0 || l.ViewportOffset != 0 {
		t.Fatalf("expected reset cursor/offset, got %d/%d", l.Cursor, l.ViewportOffset)
	}
}

func TestSelectAndSelected(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.Select("c") {
		t.Fatalf("expected select to find c")
	}
	item, ok := l.Selected()
	if !ok || item.ID != "c" {
		t.Fatalf("expected c selected, got %#v", item)
	}
	if l.Select("zzz") {
		t.Fatalf("expected unknown id to be rejected")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor unchanged, got %d", l.Cursor)
	}
	if _, ok := newTestList().Selected(); ok {
		t.Fatalf("expected no selection for empty list")
	}
}

func TestMoveCursorHome(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	if !l.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != NoSelection {
		t.Fatalf("expected cursor reset to no selection, got %d", empty.Cursor)
	}
}

func TestMoveCursorEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if newTestList().MoveCursorEnd() {
		t.Fatalf("expected no movement for empty list")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on first page down")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if !l.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if l.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", l.Cursor)
	}
	if l.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !l.MoveCursorPageUp(2) {
		t.Fatalf("expected movement on page up")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after page up, got %d", l.Cursor)
	}
	if !l.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}

	l.Cursor = -3
	l.EnsureCursorVisible(2)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor normalised to 0, got %d", l.Cursor)
	}

	l.ViewportOffset = 4
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", l.ViewportOffset)
	}

	l.ViewportOffset = 4
	l.Cursor = 1
	l.EnsureCursorVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", l.ViewportOffset)
	}
}

func TestWindowFollowsCursorWithoutMutating(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e")
	l.Cursor = 4
	rows, start := l.Window(2)
	if start != 3 || len(rows) != 2 || rows[1].ID != "e" {
		t.Fatalf("unexpected window start=%d rows=%#v", start, rows)
	}
	if l.ViewportOffset != 0 {
		t.Fatalf("window must not move the stored offset, got %d", l.ViewportOffset)
	}

	l.Cursor = 1
	l.ViewportOffset = 9
	rows, start = l.Window(2)
	if start != 1 || rows[0].ID != "b" {
		t.Fatalf("expected window at the cursor, got start=%d", start)
	}
	if l.ViewportOffset != 9 || l.Cursor != 1 {
		t.Fatalf("window mutated the list: offset=%d cursor=%d", l.ViewportOffset, l.Cursor)
	}

	rows, start = l.Window(0)
	if start != 0 || len(rows) != 5 {
		t.Fatalf("expected full list when unbounded, got %d rows from %d", len(rows), start)
	}
}
