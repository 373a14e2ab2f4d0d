package state

// NoSelection is the cursor value of an empty list.
const NoSelection = -1

// Item is one selectable row.
type Item struct {
	ID    string
	Label string
}

// List tracks the rows of a navigable list together with its cursor and
// scroll position. The cursor is NoSelection exactly when Items is empty and
// otherwise always indexes a row.
type List struct {
	Items          []Item
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List with the cursor on the first row, if any.
func NewList(items []Item) *List {
	l := &List{Cursor: NoSelection, LastCursor: NoSelection}
	l.Reset(items)
	return l
}

// Reset replaces the rows and moves the cursor to the first one.
func (l *List) Reset(items []Item) {
	l.Items = CloneItems(items)
	l.ViewportOffset = 0
	if len(l.Items) == 0 {
		l.Cursor = NoSelection
		return
	}
	l.Cursor = 0
}

// UpdateItems replaces the rows while keeping the cursor where it was,
// clamped to the new length.
func (l *List) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Items = CloneItems(items)
	l.clamp()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Selected returns the row under the cursor.
func (l *List) Selected() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.Items)
}

// IndexOf returns the index for a given item identifier.
func (l *List) IndexOf(id string) int {
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Select moves the cursor onto the row with id. It reports false and leaves
// the cursor alone when no row matches.
func (l *List) Select(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// SetCursor moves the cursor to idx, clamped to the rows.
func (l *List) SetCursor(idx int) {
	l.Cursor = idx
	l.clamp()
}

func (l *List) clamp() {
	n := len(l.Items)
	switch {
	case n == 0:
		l.Cursor = NoSelection
	case l.Cursor < 0:
		l.Cursor = 0
	case l.Cursor >= n:
		l.Cursor = n - 1
	}
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
