// Package readline implements a GNU-Readline-flavored editor module: point
// motion, kill-ring editing, and transposition, bound to the usual Readline
// chords (C-a/C-e, M-f/M-b, C-k/C-u/C-w, C-t, ...). It is registered exactly
// like any other editor.Module; nothing about the editor core treats it
// specially.
package readline

import (
	"io"

	"github.com/tornado12345/clink/bind"
	"github.com/tornado12345/clink/buffer"
	"github.com/tornado12345/clink/editor"
)

const (
	idForwardChar = iota
	idBackwardChar
	idBeginningOfLine
	idEndOfLine
	idForwardWord
	idBackwardWord
	idDeleteChar
	idBackwardDeleteChar
	idKillLine
	idUnixLineDiscard
	idUnixWordRubout
	idKillWord
	idYank
	idTransposeChars
	idClearScreen
	idAcceptLine
	idSelfInsert
	idHistoryPrev
	idHistoryNext
)

// History is the external collaborator that stores and recalls previously
// accepted lines; the core reads it through this narrow interface and never
// depends on how it's persisted.
type History interface {
	// Prev returns the next-older line and true, or ("", false) if there is
	// no older line.
	Prev() (string, bool)
	// Next returns the next-newer line and true, or ("", false) if already
	// at the newest entry (or not currently browsing history).
	Next() (string, bool)
}

// binding is one entry of the default profile: an action name (unused at
// runtime, kept for readability) paired with its chord and id.
type binding struct {
	action string
	chord  string
	id     byte
}

// defaultProfile is the module's binding table, modeled after the action
// names and chord choices of a typical Readline default keymap.
var defaultProfile = []binding{
	{"forward-char", "^F", idForwardChar},
	{"backward-char", "^B", idBackwardChar},
	{"beginning-of-line", "^A", idBeginningOfLine},
	{"end-of-line", "^E", idEndOfLine},
	{"forward-word", "\\ef", idForwardWord},
	{"backward-word", "\\eb", idBackwardWord},
	{"delete-char", "^D", idDeleteChar},
	{"backward-delete-char", "^H", idBackwardDeleteChar},
	{"backward-delete-char", "\\x7f", idBackwardDeleteChar},
	{"kill-line", "^K", idKillLine},
	{"unix-line-discard", "^U", idUnixLineDiscard},
	{"unix-word-rubout", "^W", idUnixWordRubout},
	{"kill-word", "\\ed", idKillWord},
	{"yank", "^Y", idYank},
	{"transpose-chars", "^T", idTransposeChars},
	{"clear-screen", "^L", idClearScreen},
	{"accept-line", "\\r", idAcceptLine},
	{"previous-history", "\\e[A", idHistoryPrev},
	{"next-history", "\\e[B", idHistoryNext},
}

// Module is a minimal Readline emulation: point motion, kill-ring editing
// (single slot, no ring rotation), transposition, and (when a History is
// supplied) up/down recall, operating directly on the shared line buffer.
type Module struct {
	killRing string
	history  History
}

// New returns a Module with no state; bindings are installed by BindInput.
// h may be nil, in which case the history chords are bound but do nothing.
func New(h History) *Module { return &Module{history: h} }

// BindInput installs the default profile's chords into group for moduleIndex.
// Printable bytes (0x20-0x7e) self-insert.
func (m *Module) BindInput(b *bind.Binder, group, moduleIndex int) {
	for _, bd := range defaultProfile {
		b.Bind(group, bd.chord, bd.id, moduleIndex)
	}
	for c := 0x20; c < 0x7f; c++ {
		b.Bind(group, string(rune(c)), idSelfInsert, moduleIndex)
	}
}

func (m *Module) OnBeginLine(prompt string, ctx *editor.Context) {}
func (m *Module) OnEndLine()                                     {}
func (m *Module) OnMatchesChanged(ctx *editor.Context)            {}
func (m *Module) OnTerminalResize(cols, rows int)                 {}

// OnInput dispatches in.ID to the corresponding buffer mutation.
func (m *Module) OnInput(in bind.Binding, r *editor.Result, ctx *editor.Context) {
	buf := ctx.Buffer
	switch in.ID {
	case idForwardChar:
		buf.SetCursor(buf.Cursor() + 1)
		r.SetRedraw()
	case idBackwardChar:
		buf.SetCursor(buf.Cursor() - 1)
		r.SetRedraw()
	case idBeginningOfLine:
		buf.SetCursor(0)
		r.SetRedraw()
	case idEndOfLine:
		buf.SetCursor(buf.Len())
		r.SetRedraw()
	case idForwardWord:
		buf.SetCursor(wordForwardEnd(buf.Text(), buf.Cursor()))
		r.SetRedraw()
	case idBackwardWord:
		buf.SetCursor(wordBackwardStart(buf.Text(), buf.Cursor()))
		r.SetRedraw()
	case idDeleteChar:
		buf.Delete(1)
		r.SetRedraw()
	case idBackwardDeleteChar:
		buf.Backspace(1)
		r.SetRedraw()
	case idKillLine:
		text, cursor := buf.Text(), buf.Cursor()
		m.killRing = text[cursor:]
		buf.Delete(len(text) - cursor)
		r.SetRedraw()
	case idUnixLineDiscard:
		text, cursor := buf.Text(), buf.Cursor()
		m.killRing = text[:cursor]
		buf.Backspace(cursor)
		r.SetRedraw()
	case idUnixWordRubout:
		text, cursor := buf.Text(), buf.Cursor()
		start := wordBackwardStart(text, cursor)
		m.killRing = text[start:cursor]
		buf.Backspace(cursor - start)
		r.SetRedraw()
	case idKillWord:
		text, cursor := buf.Text(), buf.Cursor()
		end := wordForwardEnd(text, cursor)
		m.killRing = text[cursor:end]
		buf.Delete(end - cursor)
		r.SetRedraw()
	case idYank:
		if m.killRing != "" {
			buf.Insert(m.killRing)
			r.SetRedraw()
		}
	case idTransposeChars:
		transposeChars(buf)
		r.SetRedraw()
	case idClearScreen:
		io.WriteString(ctx.Printer, "\x1b[2J\x1b[H")
		r.SetRedraw()
	case idAcceptLine:
		r.AcceptLine()
	case idSelfInsert:
		buf.Insert(string(in.Chord))
		r.SetRedraw()
	case idHistoryPrev:
		if m.history == nil {
			return
		}
		if line, ok := m.history.Prev(); ok {
			buf.SetText(line)
			r.SetRedraw()
		}
	case idHistoryNext:
		if m.history == nil {
			return
		}
		if line, ok := m.history.Next(); ok {
			buf.SetText(line)
			r.SetRedraw()
		}
	}
}

func isWordByte(b byte) bool { return b != ' ' && b != '\t' }

// wordForwardEnd returns the offset just past the end of the word at or
// after cursor, skipping any leading delimiters.
func wordForwardEnd(text string, cursor int) int {
	i := cursor
	n := len(text)
	for i < n && !isWordByte(text[i]) {
		i++
	}
	for i < n && isWordByte(text[i]) {
		i++
	}
	return i
}

// wordBackwardStart returns the offset of the start of the word at or before
// cursor, skipping any trailing delimiters first.
func wordBackwardStart(text string, cursor int) int {
	i := cursor
	for i > 0 && !isWordByte(text[i-1]) {
		i--
	}
	for i > 0 && isWordByte(text[i-1]) {
		i--
	}
	return i
}

// transposeChars swaps the two bytes around the cursor, Readline-style:
// the byte before the cursor and the one before that if the cursor sits at
// the end of the line, otherwise the byte before the cursor and the one
// under it, leaving the cursor one past the swapped pair.
func transposeChars(buf *buffer.Buffer) {
	text := buf.Text()
	if len(text) < 2 {
		return
	}
	i := buf.Cursor()
	if i >= len(text) {
		i = len(text) - 1
	}
	if i < 1 {
		i = 1
	}
	a, b := text[i-1], text[i]
	buf.Replace(i-1, i+1, string([]byte{b, a}))
}
