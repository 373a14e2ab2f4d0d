package state

import "unicode"

// Prompt is an editable single-line text buffer with a rune cursor.
type Prompt struct {
	Value  string
	Cursor int
}

// Set replaces the buffer and places the cursor, clamped to the text.
func (p *Prompt) Set(value string, cursor int) {
	p.Value = value
	n := len([]rune(value))
	if cursor < 0 {
		cursor = 0
	}
	if cursor > n {
		cursor = n
	}
	p.Cursor = cursor
}

// CursorPos returns the rune offset of the cursor.
func (p *Prompt) CursorPos() int {
	runes := []rune(p.Value)
	if p.Cursor < 0 {
		return 0
	}
	if p.Cursor > len(runes) {
		return len(runes)
	}
	return p.Cursor
}

// Clear empties the buffer.
func (p *Prompt) Clear() bool {
	if p.Value == "" && p.Cursor == 0 {
		return false
	}
	p.Set("", 0)
	return true
}

// Insert inserts text at the cursor position.
func (p *Prompt) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Value)
	pos := p.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the cursor.
func (p *Prompt) DeleteRuneBackward() bool {
	runes := []rune(p.Value)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (p *Prompt) DeleteWordBackward() bool {
	runes := []rune(p.Value)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	p.Set(string(updated), i)
	return true
}

// DeleteToStart deletes everything before the cursor.
func (p *Prompt) DeleteToStart() bool {
	runes := []rune(p.Value)
	pos := p.CursorPos()
	if pos == 0 {
		return false
	}
	p.Set(string(runes[pos:]), 0)
	return true
}

// MoveStart moves the cursor to the start.
func (p *Prompt) MoveStart() bool {
	if p.CursorPos() == 0 {
		return false
	}
	p.Cursor = 0
	return true
}

// MoveEnd moves the cursor to the end.
func (p *Prompt) MoveEnd() bool {
	end := len([]rune(p.Value))
	if p.CursorPos() == end {
		return false
	}
	p.Cursor = end
	return true
}

// MoveWordBackward moves the cursor one word backward.
func (p *Prompt) MoveWordBackward() bool {
	runes := []rune(p.Value)
	pos := p.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	p.Cursor = i
	return true
}

// MoveWordForward moves the cursor one word forward.
func (p *Prompt) MoveWordForward() bool {
	runes := []rune(p.Value)
	pos := p.CursorPos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	p.Cursor = i
	return true
}

// MoveRuneBackward moves the cursor one rune backward.
func (p *Prompt) MoveRuneBackward() bool {
	pos := p.CursorPos()
	if pos == 0 {
		return false
	}
	p.Cursor = pos - 1
	return true
}

// MoveRuneForward moves the cursor one rune forward.
func (p *Prompt) MoveRuneForward() bool {
	pos := p.CursorPos()
	if pos >= len([]rune(p.Value)) {
		return false
	}
	p.Cursor = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
