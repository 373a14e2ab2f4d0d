package state

// MoveUp moves the cursor one row up, stopping at the first row.
func (l *List) MoveUp() bool {
	return l.moveCursorBy(-1)
}

// MoveDown moves the cursor one row down, stopping at the last row.
func (l *List) MoveDown() bool {
	return l.moveCursorBy(1)
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = NoSelection
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = NoSelection
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *List) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = NoSelection
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	l.clamp()
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = NoSelection
		l.ViewportOffset = 0
		return
	}
	l.clamp()
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}

// Window returns the rows to draw and the index of the first one. It reads
// the stored viewport offset, shifted only as far as needed to include the
// cursor, and never modifies the list.
func (l *List) Window(maxVisible int) ([]Item, int) {
	n := len(l.Items)
	if maxVisible <= 0 || n <= maxVisible {
		return l.Items, 0
	}
	start := l.ViewportOffset
	if l.Cursor >= 0 && l.Cursor < n {
		if l.Cursor < start {
			start = l.Cursor
		}
		if l.Cursor >= start+maxVisible {
			start = l.Cursor - maxVisible + 1
		}
	}
	if start > n-maxVisible {
		start = n - maxVisible
	}
	if start < 0 {
		start = 0
	}
	return l.Items[start : start+maxVisible], start
}
