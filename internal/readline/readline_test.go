package readline

import (
	"bytes"
	"context"
	"testing"

	"github.com/tornado12345/clink/editor"
	"github.com/tornado12345/clink/internal/term"
	"github.com/tornado12345/clink/match"
	"github.com/tornado12345/clink/words"
)

type fakePrinter struct {
	bytes.Buffer
	cols, rows int
}

func (f *fakePrinter) SetCursor(x, y int) {}
func (f *fakePrinter) ClearLine()         {}
func (f *fakePrinter) ClearToEnd()        {}
func (f *fakePrinter) Size() (int, int)   { return f.cols, f.rows }

type noGenerator struct{}

func (noGenerator) Generate(ls words.LineState, b *match.Builder) bool { return true }

func newTestEditor(input string) (*editor.Editor, *fakePrinter) {
	return newTestEditorWithHistory(input, nil)
}

func newTestEditorWithHistory(input string, h History) (*editor.Editor, *fakePrinter) {
	printer := &fakePrinter{cols: 80, rows: 24}
	in := term.NewInput(bytes.NewBufferString(input), nil, nil)
	ed := editor.New(editor.Config{Settings: editor.DefaultSettings(), Words: words.DefaultConfig()}, printer, in)
	ed.AddModule(New(h))
	ed.AddGenerator(noGenerator{})
	return ed, printer
}

// stackHistory is a minimal History over an in-memory slice, oldest first.
type stackHistory struct {
	lines []string
	idx   int // index of the line last returned by Prev/Next; len(lines) means "not browsing"
}

func newStackHistory(lines ...string) *stackHistory {
	return &stackHistory{lines: lines, idx: len(lines)}
}

func (h *stackHistory) Prev() (string, bool) {
	if h.idx == 0 {
		return "", false
	}
	h.idx--
	return h.lines[h.idx], true
}

func (h *stackHistory) Next() (string, bool) {
	if h.idx >= len(h.lines)-1 {
		return "", false
	}
	h.idx++
	return h.lines[h.idx], true
}

func runLine(t *testing.T, input string) string {
	t.Helper()
	ed, _ := newTestEditor(input)
	line, ok := ed.Edit(context.Background(), "> ")
	if !ok {
		t.Fatalf("input %q: expected Edit to accept the line", input)
	}
	return line
}

func TestSelfInsertAndAcceptLine(t *testing.T) {
	got := runLine(t, "hello\r")
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestBackwardCharThenInsert(t *testing.T) {
	// "ac" then move back one and insert "b" -> "abc"
	got := runLine(t, "ac\x02b\r")
	if got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestBeginningAndEndOfLine(t *testing.T) {
	// type "bc", go to start (^A), insert "a", go to end (^E), insert "d"
	got := runLine(t, "bc\x01a\x05d\r")
	if got != "abcd" {
		t.Errorf("got %q, want %q", got, "abcd")
	}
}

func TestBackwardDeleteChar(t *testing.T) {
	got := runLine(t, "abc\x08\r")
	if got != "ab" {
		t.Errorf("got %q, want %q", got, "ab")
	}
}

func TestDeleteChar(t *testing.T) {
	// "abc", move to start, then ^D deletes the 'a'
	got := runLine(t, "abc\x01\x04\r")
	if got != "bc" {
		t.Errorf("got %q, want %q", got, "bc")
	}
}

func TestKillLineThenYank(t *testing.T) {
	// "abcdef", move to offset 3 (back 3 from end), kill to end, yank back
	got := runLine(t, "abcdef\x02\x02\x02\x0b\x19\r")
	if got != "abcdef" {
		t.Errorf("got %q, want %q", got, "abcdef")
	}
}

func TestUnixLineDiscard(t *testing.T) {
	// "abcdef", move back 3, discard from start to cursor -> "def"
	got := runLine(t, "abcdef\x02\x02\x02\x15\r")
	if got != "def" {
		t.Errorf("got %q, want %q", got, "def")
	}
}

func TestUnixWordRubout(t *testing.T) {
	got := runLine(t, "foo bar\x17\r")
	if got != "foo " {
		t.Errorf("got %q, want %q", got, "foo ")
	}
}

func TestKillWordForward(t *testing.T) {
	// "foo bar", move to offset 0, kill-word (M-d) consumes "foo"
	got := runLine(t, "foo bar\x01\x1bd\r")
	if got != " bar" {
		t.Errorf("got %q, want %q", got, " bar")
	}
}

func TestTransposeCharsAtEndOfLine(t *testing.T) {
	got := runLine(t, "ab\x14\r")
	if got != "ba" {
		t.Errorf("got %q, want %q", got, "ba")
	}
}

func TestForwardWord(t *testing.T) {
	// start at 0 in "foo bar", M-f moves past "foo", insert "X" there
	got := runLine(t, "foo bar\x01\x1bfX\r")
	if got != "fooX bar" {
		t.Errorf("got %q, want %q", got, "fooX bar")
	}
}

func TestHistoryPrevRecallsOlderLine(t *testing.T) {
	h := newStackHistory("first", "second")
	ed, _ := newTestEditorWithHistory("\x1b[A\r", h)
	line, ok := ed.Edit(context.Background(), "> ")
	if !ok {
		t.Fatal("expected Edit to accept the line")
	}
	if line != "second" {
		t.Errorf("got %q, want %q", line, "second")
	}
}

func TestHistoryPrevTwiceRecallsOlderStill(t *testing.T) {
	h := newStackHistory("first", "second")
	ed, _ := newTestEditorWithHistory("\x1b[A\x1b[A\r", h)
	line, ok := ed.Edit(context.Background(), "> ")
	if !ok {
		t.Fatal("expected Edit to accept the line")
	}
	if line != "first" {
		t.Errorf("got %q, want %q", line, "first")
	}
}

func TestHistoryNextReturnsTowardNewest(t *testing.T) {
	h := newStackHistory("first", "second")
	ed, _ := newTestEditorWithHistory("\x1b[A\x1b[A\x1b[B\r", h)
	line, ok := ed.Edit(context.Background(), "> ")
	if !ok {
		t.Fatal("expected Edit to accept the line")
	}
	if line != "second" {
		t.Errorf("got %q, want %q", line, "second")
	}
}
