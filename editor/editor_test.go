package editor

import (
	"bytes"
	"context"
	"testing"

	"github.com/tornado12345/clink/bind"
	"github.com/tornado12345/clink/match"
	"github.com/tornado12345/clink/internal/term"
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

// acceptOnEnter is a minimal Module that inserts typed characters and binds
// Enter to accept the line, enough to exercise the editor loop end to end
// without depending on the tab completer.
type acceptOnEnter struct{}

const (
	idAccept = iota
	idSelf
)

func (acceptOnEnter) BindInput(b *bind.Binder, group, moduleIndex int) {
	b.Bind(group, "\r", idAccept, moduleIndex)
	for c := 0x20; c < 0x7f; c++ {
		b.Bind(group, string(rune(c)), idSelf, moduleIndex)
	}
}
func (acceptOnEnter) OnBeginLine(prompt string, ctx *Context)  {}
func (acceptOnEnter) OnEndLine()                               {}
func (acceptOnEnter) OnMatchesChanged(ctx *Context)             {}
func (acceptOnEnter) OnTerminalResize(cols, rows int)           {}
func (acceptOnEnter) OnInput(in bind.Binding, r *Result, ctx *Context) {
	switch in.ID {
	case idAccept:
		r.AcceptLine()
	case idSelf:
		ctx.Buffer.Insert(string(in.Chord))
		r.SetRedraw()
	}
}

func newTestEditor(input string) (*Editor, *fakePrinter) {
	printer := &fakePrinter{cols: 80, rows: 24}
	in := term.NewInput(bytes.NewBufferString(input), nil, nil)
	ed := New(Config{Settings: DefaultSettings(), Words: words.DefaultConfig()}, printer, in)
	ed.AddModule(acceptOnEnter{})
	return ed, printer
}

func TestEditAcceptsLineOnEnter(t *testing.T) {
	ed, _ := newTestEditor("hello\r")
	line, ok := ed.Edit(context.Background(), "> ")
	if !ok {
		t.Fatal("expected Edit to accept the line")
	}
	if line != "hello" {
		t.Errorf("line = %q, want %q", line, "hello")
	}
}

func TestEditAbortsOnReadFailure(t *testing.T) {
	printer := &fakePrinter{cols: 80, rows: 24}
	in := term.NewInput(errReader{}, nil, nil)
	ed := New(Config{Settings: DefaultSettings(), Words: words.DefaultConfig()}, printer, in)
	ed.AddModule(acceptOnEnter{})

	_, ok := ed.Edit(context.Background(), "> ")
	if ok {
		t.Fatal("expected Edit to report abort on a read failure")
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, bytes.ErrTooLarge }

// staticGenerator always returns the same fixed match set, modelling a
// filesystem generator without touching the filesystem.
type staticGenerator struct{ names []string }

func (g staticGenerator) Generate(ls words.LineState, b *match.Builder) bool {
	for _, n := range g.names {
		b.AddMatch(n)
	}
	return true
}

func TestGeneratorPipelineFirstClaimWins(t *testing.T) {
	printer := &fakePrinter{cols: 80, rows: 24}
	in := term.NewInput(bytes.NewBufferString(""), nil, nil)
	ed := New(Config{Settings: DefaultSettings(), Words: words.DefaultConfig()}, printer, in)
	ed.AddGenerator(staticGenerator{names: []string{"file1"}})
	ed.AddGenerator(staticGenerator{names: []string{"should-not-appear"}})

	ectx := &Context{Buffer: ed.buf, Matches: ed.matches}
	ed.regenerateMatches(ectx)

	if got := ed.matches.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	if got := ed.matches.Get(0).Text; got != "file1" {
		t.Errorf("Get(0).Text = %q, want %q", got, "file1")
	}
}
