// Package editor implements the editor core: the main read/classify/dispatch
// cycle, the module composition protocol, and the pluggable match-generator
// pipeline.
package editor

import (
	"context"
	"io"
	"log"

	"github.com/tornado12345/clink/bind"
	"github.com/tornado12345/clink/buffer"
	"github.com/tornado12345/clink/internal/term"
	"github.com/tornado12345/clink/match"
	"github.com/tornado12345/clink/words"
)

// Context is the per-call state an Editor threads through modules and
// generators: the mutable buffer and match collection, a printer for
// rendering, the binder, and the derived, retokenized line state.
type Context struct {
	Buffer    *buffer.Buffer
	Matches   *match.Collection
	Printer   Printer
	Binder    *bind.Binder
	Settings  *Settings
	LineState words.LineState

	regen func()
}

// Regenerate synchronously retokenizes the buffer and re-runs the generator
// pipeline, leaving Matches and LineState updated before it returns. A
// module calls this (rather than going through Result) when it needs
// completion candidates to act on within the same OnInput call, e.g. the
// tab completer's first activation on an empty match collection.
func (c *Context) Regenerate() {
	if c.regen != nil {
		c.regen()
	}
}

// Printer is the narrow rendering surface modules use; the tab completer
// and readline module both write through it rather than touching the
// terminal directly.
type Printer interface {
	io.Writer
	SetCursor(x, y int)
	ClearLine()
	ClearToEnd()
	Size() (cols, rows int)
}

// Module is the capability interface every pluggable editor component
// implements. Module identity is conveyed to the Binder as this module's
// registration index, not a pointer.
type Module interface {
	BindInput(b *bind.Binder, group, moduleIndex int)
	OnBeginLine(prompt string, ctx *Context)
	OnEndLine()
	OnMatchesChanged(ctx *Context)
	OnInput(input bind.Binding, result *Result, ctx *Context)
	OnTerminalResize(cols, rows int)
}

// Generator produces matches for the current line state. The first
// generator to return true owns the match collection for this completion
// attempt; later generators are skipped.
type Generator interface {
	Generate(ls words.LineState, b *match.Builder) bool
}

// Config bundles an Editor's collaborators.
type Config struct {
	Settings Settings
	Words    words.Config
	Logger   *log.Logger // advisory; nil means silent
}

// Editor owns the binder, bind resolver, line buffer, match collection, and
// the vector of modules and generators. Modules and generators are borrowed
// (registered by reference) for at least the lifetime of one Edit call.
type Editor struct {
	cfg Config

	modules    []Module
	generators []Generator

	binder   *bind.Binder
	resolver *bind.Resolver
	buf      *buffer.Buffer
	matches  *match.Collection
	printer  Printer
	in       *term.Input
}

// New returns an Editor with no modules or generators registered yet.
func New(cfg Config, printer Printer, in *term.Input) *Editor {
	scope := compareScope(cfg.Settings.MatchIgnoreCase)
	return &Editor{
		cfg:     cfg,
		binder:  bind.NewBinder(0),
		buf:     buffer.New(),
		matches: match.NewCollection(scope),
		printer: printer,
		in:      in,
	}
}

func compareScope(mode IgnoreCaseMode) match.CompareScope {
	switch mode {
	case IgnoreCaseOn:
		return match.Caseless
	case IgnoreCaseRelaxed:
		return match.Relaxed
	default:
		return match.Exact
	}
}

// AddModule registers m. Registration order is both the order BindInput is
// called and the tie-break for overlapping bindings (earlier wins).
func (e *Editor) AddModule(m Module) { e.modules = append(e.modules, m) }

// AddGenerator registers g.
func (e *Editor) AddGenerator(g Generator) { e.generators = append(e.generators, g) }

func (e *Editor) logf(format string, args ...interface{}) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Printf(format, args...)
	}
}

// Edit runs one line-editing session against prompt, blocking until the
// user accepts a line or aborts. On success it returns the accepted line
// and true; on EOF/abort it returns ("", false).
func (e *Editor) Edit(ctx context.Context, prompt string) (string, bool) {
	e.buf.Reset()
	e.matches.Reset(compareScope(e.cfg.Settings.MatchIgnoreCase))
	e.binder = bind.NewBinder(0)
	e.resolver = bind.NewResolver(e.binder)

	ectx := &Context{
		Buffer:   e.buf,
		Matches:  e.matches,
		Printer:  e.printer,
		Binder:   e.binder,
		Settings: &e.cfg.Settings,
	}
	ectx.regen = func() { e.regenerateMatches(ectx) }

	for i, m := range e.modules {
		m.BindInput(e.binder, e.binder.GetGroup(), i)
	}
	for _, m := range e.modules {
		m.OnBeginLine(prompt, ectx)
	}
	defer func() {
		for _, m := range e.modules {
			m.OnEndLine()
		}
	}()

	for {
		if e.resolver.Pending() {
			for _, b := range e.resolver.PendingBytes() {
				e.feedByte(ctx, b, ectx)
			}
			continue
		}

		key := e.in.ReadKey(ctx)
		switch {
		case key == term.Abort:
			return "", false
		case key == term.Timeout:
			continue
		case key == term.Resize:
			cols, rows := e.printer.Size()
			for _, m := range e.modules {
				m.OnTerminalResize(cols, rows)
			}
			continue
		case key == term.None:
			continue
		}

		if done, accepted := e.feedByte(ctx, key.Byte(), ectx); done {
			return e.buf.Text(), accepted
		}
	}
}

// feedByte steps the resolver with b and, if a chord resolves, dispatches
// every binding the resolver emits for it (so pass_to_other_modules keeps
// working) and applies any resulting actions. It returns (true, accepted)
// if a module requested the edit loop to end.
//
// Claim is deferred until a binding decides not to pass the chord on (or
// the edit loop is ending): Claim resets the resolver's trie position and
// zeroes its key buffer, so claiming before dispatch would make the
// following Resolver.Next() unable to find the remaining siblings at this
// depth, turning pass_to_other_modules into a no-op. When the sibling
// chain is exhausted without anyone stopping it, the last binding seen is
// claimed anyway, so the consumed bytes are never left unclaimed.
func (e *Editor) feedByte(ctx context.Context, b byte, ectx *Context) (bool, bool) {
	if !e.resolver.Step(b) {
		return false, false
	}

	var last bind.Binding
	haveLast := false
	for {
		binding, ok := e.resolver.Next()
		if !ok {
			break
		}
		last, haveLast = binding, true

		if binding.Module < 0 || binding.Module >= len(e.modules) {
			e.logf("bind: binding for unknown module %d", binding.Module)
			continue
		}

		result := newResult(e.resolver.Group())
		e.modules[binding.Module].OnInput(binding, result, ectx)

		if done, accepted := e.applyResult(result, ectx); done {
			e.resolver.Claim(binding)
			return true, accepted
		}
		if !result.WantsPassToOtherModules() {
			e.resolver.Claim(binding)
			return false, false
		}
	}
	if haveLast {
		e.resolver.Claim(last)
	}
	return false, false
}

// applyResult sequences the actions a module requested via Result (group
// switch, match regeneration and LCD append, match acceptance, line
// acceptance).
func (e *Editor) applyResult(result *Result, ectx *Context) (done bool, accepted bool) {
	if g, ok := result.WantsGroupSwitch(); ok {
		if !e.resolver.SetGroup(g) {
			e.logf("bind: set_bind_group(%d) failed, no such group", g)
		}
	}

	if result.WantsMatchRegeneration() {
		e.regenerateMatches(ectx)
		if result.WantsAppendMatchLCD() {
			lcd := e.matches.GetMatchLCD()
			e.appendLCDToEndWord(ectx, lcd)
			// Retokenize so ectx.LineState reflects the just-appended text;
			// otherwise the next keypress would see the pre-append end word
			// and could re-trigger the same append indefinitely.
			ectx.LineState = words.Tokenize(e.cfg.Words, e.buf.Text(), e.buf.Cursor())
		}
		for _, m := range e.modules {
			m.OnMatchesChanged(ectx)
		}
	}

	if i, ok := result.WantsAcceptMatch(); ok {
		e.acceptMatchAt(ectx, i)
	}

	if result.WantsAcceptLine() {
		return true, true
	}
	return false, false
}

func (e *Editor) regenerateMatches(ectx *Context) {
	ectx.LineState = words.Tokenize(e.cfg.Words, e.buf.Text(), e.buf.Cursor())
	e.matches.Reset(compareScope(e.cfg.Settings.MatchIgnoreCase))
	builder := match.NewBuilder(e.matches)
	for _, g := range e.generators {
		if g.Generate(ectx.LineState, builder) {
			return
		}
	}
}

func (e *Editor) appendLCDToEndWord(ectx *Context, lcd string) {
	w, ok := ectx.LineState.EndWord()
	if !ok {
		e.buf.Insert(lcd)
		return
	}
	e.buf.Replace(w.Offset(), ectx.Buffer.Cursor(), lcd)
}

func (e *Editor) acceptMatchAt(ectx *Context, i int) {
	if i < 0 || i >= e.matches.Count() {
		return
	}
	m := e.matches.Get(i)
	w, ok := ectx.LineState.EndWord()
	start := ectx.Buffer.Cursor()
	if ok {
		start = w.Offset()
	}
	text := m.Text
	if m.HasSuffix {
		text += string(m.Suffix)
	} else {
		text += " "
	}
	e.buf.Replace(start, ectx.Buffer.Cursor(), text)
}
