// Package buffer implements the line editor's mutable text buffer: the
// single piece of mutable state every editor module and the tab completer
// read and write through the editor's result object.
package buffer

// Buffer holds the current input line and the cursor offset into it. The
// invariant 0 <= Cursor <= len(Text) must hold after every mutation; Text is
// a normal Go string (a valid UTF-8 byte sequence, safely usable wherever a
// null-terminated C string would be expected by the terminal layer).
type Buffer struct {
	text   []byte
	cursor int
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Text returns a read-only view of the buffer's contents.
func (b *Buffer) Text() string { return string(b.text) }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the current cursor offset.
func (b *Buffer) Cursor() int { return b.cursor }

func (b *Buffer) clampCursor() {
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor > len(b.text) {
		b.cursor = len(b.text)
	}
}

// SetCursor moves the cursor to pos, clamped to [0, len(Text)].
func (b *Buffer) SetCursor(pos int) {
	b.cursor = pos
	b.clampCursor()
}

// Reset clears the buffer and sets the cursor to 0.
func (b *Buffer) Reset() {
	b.text = b.text[:0]
	b.cursor = 0
}

// SetText replaces the whole buffer and places the cursor at the end.
func (b *Buffer) SetText(s string) {
	b.text = append(b.text[:0], s...)
	b.cursor = len(b.text)
}

// Insert inserts s at the cursor and advances the cursor past it.
func (b *Buffer) Insert(s string) {
	b.clampCursor()
	grown := make([]byte, 0, len(b.text)+len(s))
	grown = append(grown, b.text[:b.cursor]...)
	grown = append(grown, s...)
	grown = append(grown, b.text[b.cursor:]...)
	b.text = grown
	b.cursor += len(s)
}

// Delete removes n bytes starting at the cursor (not moving it), clamped to
// the end of the buffer. It returns the number of bytes actually removed.
func (b *Buffer) Delete(n int) int {
	b.clampCursor()
	end := b.cursor + n
	if end > len(b.text) {
		end = len(b.text)
	}
	if end <= b.cursor {
		return 0
	}
	removed := end - b.cursor
	b.text = append(b.text[:b.cursor], b.text[end:]...)
	return removed
}

// Backspace removes n bytes immediately before the cursor, moving the cursor
// back by the number of bytes actually removed.
func (b *Buffer) Backspace(n int) int {
	b.clampCursor()
	start := b.cursor - n
	if start < 0 {
		start = 0
	}
	removed := b.cursor - start
	if removed <= 0 {
		return 0
	}
	b.text = append(b.text[:start], b.text[b.cursor:]...)
	b.cursor = start
	return removed
}

// Replace substitutes the byte range [from, to) with s, leaving the cursor
// at the end of the replacement.
func (b *Buffer) Replace(from, to int, s string) {
	if from < 0 {
		from = 0
	}
	if to > len(b.text) {
		to = len(b.text)
	}
	if to < from {
		to = from
	}
	grown := make([]byte, 0, from+len(s)+(len(b.text)-to))
	grown = append(grown, b.text[:from]...)
	grown = append(grown, s...)
	grown = append(grown, b.text[to:]...)
	b.text = grown
	b.cursor = from + len(s)
}
