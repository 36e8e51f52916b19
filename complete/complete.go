// Package complete implements the tab completer module: longest-common-
// denominator acceptance, paged multi-column match display, the
// interactive "show N matches?" prompt, and the transient bind-group
// switching used to implement modal prompts.
package complete

import (
	"fmt"
	"io"
	"math"

	"github.com/rivo/uniseg"

	"github.com/tornado12345/clink/attr"
	"github.com/tornado12345/clink/bind"
	"github.com/tornado12345/clink/editor"
)

// state is the tab completer's internal state machine:
// none -> query -> print_page -> pager -> print_page/print_one -> none.
type state int

const (
	stateNone state = iota
	stateQuery
	statePrintPage
	statePager
)

const (
	idTab = iota
	idQueryYes
	idQueryNo
	idPagerMore
	idPagerOne
	idPagerQuit
)

// TabCompleter is the editor.Module that drives completion display.
type TabCompleter struct {
	ownModule     int
	queryGroup    int
	pagerGroup    int
	previousGroup int

	st      state
	waiting bool

	rowCursor int // 0-based index of the next match row to print
	columns   int
	totalRows int
	longest   int
	inPager   bool // true once the active group has switched to pagerGroup
}

// New returns a TabCompleter ready to be registered on an editor.Editor via
// AddModule.
func New() *TabCompleter { return &TabCompleter{} }

// BindInput binds Tab in group (the default group) and builds two fresh
// transient groups for this edit session, one for the "show N matches?"
// query and one for the "-- More --" pager, since the binder itself is
// rebuilt for every Edit call. The two prompts need distinct groups because
// CR means "accept" in the query and "print one more row" in the pager; a
// single shared group couldn't bind CR to both.
func (c *TabCompleter) BindInput(b *bind.Binder, group, moduleIndex int) {
	c.ownModule = moduleIndex
	c.st = stateNone
	c.waiting = false
	c.rowCursor = 0
	c.inPager = false

	b.Bind(group, "\t", idTab, moduleIndex)

	c.queryGroup = b.CreateGroup("tab-complete-query")
	for _, k := range []string{"y", "Y", " ", "\t", "\r"} {
		b.Bind(c.queryGroup, k, idQueryYes, moduleIndex)
	}
	for _, k := range []string{"n", "N", "^C", "^D", "\\e"} {
		b.Bind(c.queryGroup, k, idQueryNo, moduleIndex)
	}

	c.pagerGroup = b.CreateGroup("tab-complete-pager")
	for _, k := range []string{" ", "\t"} {
		b.Bind(c.pagerGroup, k, idPagerMore, moduleIndex)
	}
	b.Bind(c.pagerGroup, "\r", idPagerOne, moduleIndex)
	for _, k := range []string{"q", "Q", "^C", "^D", "\\e"} {
		b.Bind(c.pagerGroup, k, idPagerQuit, moduleIndex)
	}
}

func (c *TabCompleter) OnBeginLine(prompt string, ctx *editor.Context) {}
func (c *TabCompleter) OnEndLine()                                     {}
func (c *TabCompleter) OnTerminalResize(cols, rows int)                {}

// OnMatchesChanged clears the "waiting" flag set after an LCD append, so
// the next Tab press knows the prefix set already reflects the append.
func (c *TabCompleter) OnMatchesChanged(ctx *editor.Context) {
	if c.waiting {
		c.waiting = false
	}
}

func (c *TabCompleter) OnInput(in bind.Binding, result *editor.Result, ctx *editor.Context) {
	switch in.ID {
	case idTab:
		c.onTab(result, ctx)
	case idQueryYes, idPagerMore:
		c.st = statePrintPage
		c.printPage(result, ctx)
	case idQueryNo, idPagerQuit:
		c.restoreGroup(result)
		c.st = stateNone
	case idPagerOne:
		c.printOne(ctx)
		c.st = stateNone
		c.restoreGroup(result)
	}
}

func (c *TabCompleter) onTab(result *editor.Result, ctx *editor.Context) {
	if ctx.Matches.Count() == 0 {
		// Regenerate synchronously so a completion can be accepted or
		// displayed on this same Tab press, rather than needing a throwaway
		// priming press before any matches exist to act on.
		ctx.Regenerate()
		if ctx.Matches.Count() == 0 {
			return
		}
	}

	if ctx.Matches.Count() == 1 {
		result.AcceptMatch(0)
		return
	}

	if !c.waiting {
		lcd := ctx.Matches.GetMatchLCD()
		if w, ok := ctx.LineState.EndWord(); ok {
			current := ctx.LineState.Line[w.Offset():w.End()]
			if lcd != current {
				result.AppendMatchLCD()
				c.waiting = true
				return
			}
		} else if lcd != "" {
			result.AppendMatchLCD()
			c.waiting = true
			return
		}
	}

	c.waiting = false
	threshold := ctx.Settings.MatchQueryThreshold
	if threshold <= 0 {
		threshold = 100
	}
	if ctx.Matches.Count() > threshold {
		c.previousGroup = result.SetBindGroup(c.queryGroup)
		c.st = stateQuery
		c.printQueryPrompt(ctx)
		return
	}
	c.previousGroup = result.SetBindGroup(c.pagerGroup)
	c.inPager = true
	c.st = statePrintPage
	c.rowCursor = 0
	c.printPage(result, ctx)
}

func (c *TabCompleter) restoreGroup(result *editor.Result) {
	result.SetBindGroup(c.previousGroup)
	c.inPager = false
}

func (c *TabCompleter) printQueryPrompt(ctx *editor.Context) {
	fmt.Fprintf(ctx.Printer, "\r\nShow %d matches? [Yn]", ctx.Matches.Count())
}

// layout computes the column count and total row count for the current
// match set given the terminal width and column padding.
func (c *TabCompleter) layout(ctx *editor.Context) {
	longest := 0
	for i := 0; i < ctx.Matches.Count(); i++ {
		if w := ctx.Matches.GetCellCount(i); w > longest {
			longest = w
		}
	}
	c.longest = longest

	cols, _ := ctx.Printer.Size()
	maxWidth := ctx.Settings.MatchMaxWidth
	if maxWidth <= 0 || maxWidth > cols {
		maxWidth = cols
	}
	pad := ctx.Settings.MatchColumnPad
	columns := 1
	if longest+pad > 0 {
		columns = (maxWidth + pad) / (longest + pad)
	}
	if columns < 1 {
		columns = 1
	}
	c.columns = columns
	c.totalRows = int(math.Ceil(float64(ctx.Matches.Count()) / float64(columns)))
}

// printPage prints as many rows as fit on screen, advancing rowCursor, and
// transitions to pager (printing "-- More --") or back to none when the
// remainder fits entirely on this page.
func (c *TabCompleter) printPage(result *editor.Result, ctx *editor.Context) {
	if c.rowCursor == 0 {
		c.layout(ctx)
	}

	_, rows := ctx.Printer.Size()
	budget := rows - 2
	if c.rowCursor != 0 {
		budget--
	}
	if budget < 1 {
		budget = 1
	}

	io.WriteString(ctx.Printer, "\r\n")
	printed := c.printRows(ctx, budget)

	if c.rowCursor >= c.totalRows {
		c.st = stateNone
		c.rowCursor = 0
		c.restoreGroup(result)
		return
	}
	_ = printed
	writeInteract(ctx, "-- More --")
	if !c.inPager {
		// Entering the pager from the query prompt: switch the active group
		// without disturbing previousGroup, which still points at the group
		// active before the query prompt appeared.
		result.SetBindGroup(c.pagerGroup)
		c.inPager = true
	}
	c.st = statePager
}

// printOne prints exactly one more row of matches (the pager's CR action).
func (c *TabCompleter) printOne(ctx *editor.Context) {
	io.WriteString(ctx.Printer, "\r\n")
	c.printRows(ctx, 1)
}

// printRows prints up to budget rows of the current match layout starting
// at rowCursor, advancing rowCursor by the number actually printed.
func (c *TabCompleter) printRows(ctx *editor.Context, budget int) int {
	printed := 0
	for ; c.rowCursor < c.totalRows && printed < budget; c.rowCursor++ {
		c.printRow(ctx, c.rowCursor)
		io.WriteString(ctx.Printer, "\r\n")
		printed++
	}
	return printed
}

func (c *TabCompleter) printRow(ctx *editor.Context, row int) {
	n := ctx.Matches.Count()
	lcd := ctx.Matches.GetMatchLCD()

	for col := 0; col < c.columns; col++ {
		var idx int
		if ctx.Settings.MatchVertical {
			idx = col*c.totalRows + row
		} else {
			idx = row*c.columns + col
		}
		if idx >= n {
			continue
		}
		m := ctx.Matches.Get(idx)
		printMatchSegments(ctx, m.Display(), lcd)

		pad := c.longest - ctx.Matches.GetCellCount(idx) + ctx.Settings.MatchColumnPad
		if col < c.columns-1 {
			for i := 0; i < pad; i++ {
				io.WriteString(ctx.Printer, " ")
			}
		}
	}
}

// printMatchSegments renders a single match as three coloured segments: the
// LCD prefix (minor), the next grapheme past it (highlight), and the tail
// (major).
func printMatchSegments(ctx *editor.Context, display, lcd string) {
	if !hasPrefix(display, lcd) {
		lcd = ""
	}
	rest := display[len(lcd):]

	var nextGrapheme, tail string
	if rest != "" {
		gr := uniseg.NewGraphemes(rest)
		if gr.Next() {
			nextGrapheme = gr.Str()
			tail = rest[len(nextGrapheme):]
		}
	}

	if screen, ok := ctx.Printer.(attributedWriter); ok {
		screen.WriteAttr(lcd, ctx.Settings.ColourMinor)
		screen.WriteAttr(nextGrapheme, ctx.Settings.ColourHighlight)
		screen.WriteAttr(tail, ctx.Settings.ColourMajor)
		return
	}
	io.WriteString(ctx.Printer, lcd)
	io.WriteString(ctx.Printer, nextGrapheme)
	io.WriteString(ctx.Printer, tail)
}

// writeInteract writes s in the interact colour, degrading to plain text
// for a Printer that doesn't support attribute runs.
func writeInteract(ctx *editor.Context, s string) {
	if screen, ok := ctx.Printer.(attributedWriter); ok {
		screen.WriteAttr(s, ctx.Settings.ColourInteract)
		return
	}
	io.WriteString(ctx.Printer, s)
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// attributedWriter is implemented by internal/term.Screen; printing
// degrades to plain text for any Printer that doesn't support attribute
// runs (e.g. a test double).
type attributedWriter interface {
	WriteAttr(text string, a attr.Attributes)
}
