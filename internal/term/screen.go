package term

import (
	"fmt"
	"io"

	"github.com/tornado12345/clink/attr"
)

// Screen writes cursor motion, clears, and attribute-run text to a console,
// tracking the last-written Attributes so writes only emit the ANSI SGR
// codes that changed (attr.Diff), and the last known terminal dimensions
// for layout decisions made by the tab completer.
type Screen struct {
	w             io.Writer
	cols, rows    int
	current       attr.Attributes
}

// NewScreen wraps w, an initial column/row count (e.g. from
// rawterm.GetSize).
func NewScreen(w io.Writer, cols, rows int) *Screen {
	return &Screen{w: w, cols: cols, rows: rows}
}

// Write writes p to the underlying console verbatim, satisfying io.Writer
// for callers that don't need attribute runs.
func (s *Screen) Write(p []byte) (int, error) { return s.w.Write(p) }

// SetSize updates the tracked terminal dimensions; the editor reads them
// back through Size when it broadcasts a resize to modules.
func (s *Screen) SetSize(cols, rows int) { s.cols, s.rows = cols, rows }

// Size returns the tracked column and row count.
func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// SetCursor places the cursor at the given 0-based x, y position.
func (s *Screen) SetCursor(x, y int) {
	fmt.Fprintf(s.w, "\x1b[%d;%dH", y+1, x+1)
}

// ClearLine clears the current line.
func (s *Screen) ClearLine() {
	io.WriteString(s.w, "\x1b[2K")
}

// ClearToEnd clears from the cursor to the end of the line.
func (s *Screen) ClearToEnd() {
	io.WriteString(s.w, "\x1b[0K")
}

// ClearScreen clears the whole screen.
func (s *Screen) ClearScreen() {
	io.WriteString(s.w, "\x1b[2J")
}

// InsertChars opens up n character cells at the cursor, shifting the rest
// of the line right.
func (s *Screen) InsertChars(n int) {
	if n > 0 {
		fmt.Fprintf(s.w, "\x1b[%d@", n)
	}
}

// DeleteChars removes n character cells at the cursor, shifting the rest of
// the line left.
func (s *Screen) DeleteChars(n int) {
	if n > 0 {
		fmt.Fprintf(s.w, "\x1b[%dP", n)
	}
}

// MoveCursor moves the cursor by dx columns (negative is left) and dy rows
// (negative is up), relative to its current position.
func (s *Screen) MoveCursor(dx, dy int) {
	if dx > 0 {
		fmt.Fprintf(s.w, "\x1b[%dC", dx)
	} else if dx < 0 {
		fmt.Fprintf(s.w, "\x1b[%dD", -dx)
	}
	if dy > 0 {
		fmt.Fprintf(s.w, "\x1b[%dB", dy)
	} else if dy < 0 {
		fmt.Fprintf(s.w, "\x1b[%dA", -dy)
	}
}

// WriteAttr writes s in the given attributes, emitting only the SGR escape
// for the fields that changed since the last WriteAttr call (attr.Diff).
func (s *Screen) WriteAttr(text string, a attr.Attributes) {
	d := attr.Diff(s.current, a)
	if code := sgrCode(d); code != "" {
		io.WriteString(s.w, code)
	}
	io.WriteString(s.w, text)
	s.current = attr.Merge(s.current, d)
}

// ResetAttr resets the terminal's graphic rendition and the screen's
// tracked attribute state.
func (s *Screen) ResetAttr() {
	io.WriteString(s.w, "\x1b[0m")
	s.current = attr.Attributes{}
}

func sgrCode(d attr.Attributes) string {
	var parts []string
	if d.HasBold() {
		if d.Bold() {
			parts = append(parts, "1")
		} else {
			parts = append(parts, "22")
		}
	}
	if d.HasUnderline() {
		if d.Underline() {
			parts = append(parts, "4")
		} else {
			parts = append(parts, "24")
		}
	}
	if d.HasFG() {
		parts = append(parts, colourSGR(38, d.FG())...)
	}
	if d.HasBG() {
		parts = append(parts, colourSGR(48, d.BG())...)
	}
	if len(parts) == 0 {
		return ""
	}
	joined := parts[0]
	for _, p := range parts[1:] {
		joined += ";" + p
	}
	return "\x1b[" + joined + "m"
}

func colourSGR(base int, c attr.Colour) []string {
	if c.IsRGB() {
		r, g, b := c.RGB8()
		return []string{fmt.Sprint(base), "2", fmt.Sprint(r), fmt.Sprint(g), fmt.Sprint(b)}
	}
	if c.Index() == attr.DefaultIndex {
		// attr.DefaultIndex means "terminal default", not palette entry 231;
		// the real default-reset SGR codes are 39 (fg) and 49 (bg).
		return []string{fmt.Sprint(base + 1)}
	}
	return []string{fmt.Sprint(base), "5", fmt.Sprint(c.Index())}
}
