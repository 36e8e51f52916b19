// Package attr implements the packed terminal attribute model: a compact,
// composable foreground/background/bold/underline representation used by
// every rendering path in the editor (the screen buffer and the tab
// completer's paged match printing).
package attr

// Colour is either an 8-bit palette index or a 24-bit RGB triple. The zero
// value is not a valid Colour on its own; Colour is only meaningful when
// wrapped by an Attributes field that also carries a "present" bit.
type Colour struct {
	isRGB bool
	index uint8 // palette index, when !isRGB
	r, g, b uint8
}

// DefaultIndex is the palette index that denotes "terminal default" rather
// than a specific colour.
const DefaultIndex = 231

// Palette builds a Colour from an 8-bit palette index.
func Palette(index uint8) Colour {
	return Colour{index: index}
}

// RGB builds a Colour from a 3x8-bit truecolour triple. Each component is
// stored at 5-bit precision internally, matching the packed representation's
// 3x5-bit RGB field.
func RGB(r, g, b uint8) Colour {
	return Colour{isRGB: true, r: to5(r), g: to5(g), b: to5(b)}
}

func to5(v uint8) uint8  { return v >> 3 }
func from5(v uint8) uint8 { return v<<3 | v>>2 }

// IsRGB reports whether c carries a truecolour triple rather than a palette
// index.
func (c Colour) IsRGB() bool { return c.isRGB }

// Index returns the palette index. Only meaningful when !c.IsRGB().
func (c Colour) Index() uint8 { return c.index }

// RGB8 returns the 8-bit-per-channel truecolour triple. Only meaningful when
// c.IsRGB().
func (c Colour) RGB8() (r, g, b uint8) { return from5(c.r), from5(c.g), from5(c.b) }

// bit positions within the packed 64-bit representation. Each optional field
// gets one "present" bit plus its data bits; this must fit in 64 bits total
// (a hard contract, so rendering can copy an Attributes by value for free).
const (
	bitFGPresent = iota
	bitBGPresent
	bitBoldPresent
	bitBoldValue
	bitUnderlinePresent
	bitUnderlineValue

	shiftFG = 8
	shiftBG = 24
	// fg/bg occupy 16 bits each: 1 isRGB bit + 15 bits of colour data
	// (8-bit index, or 5+5+5 RGB).
)

// Attributes is a value type packing an optional foreground colour,
// background colour, bold flag, and underline flag into 64 bits. The data
// bits of an absent field are never compared; see Equal for how a field
// present on only one side compares.
type Attributes struct {
	bits uint64
}

func packColour(c Colour) uint64 {
	if c.isRGB {
		return 1<<15 | uint64(c.r)<<10 | uint64(c.g)<<5 | uint64(c.b)
	}
	return uint64(c.index)
}

func unpackColour(v uint64) Colour {
	if v&(1<<15) != 0 {
		return Colour{isRGB: true, r: uint8(v>>10) & 0x1f, g: uint8(v>>5) & 0x1f, b: uint8(v) & 0x1f}
	}
	return Colour{index: uint8(v)}
}

// WithFG returns a copy of a with the foreground colour set to c and its
// present bit set.
func (a Attributes) WithFG(c Colour) Attributes {
	a.bits |= 1 << bitFGPresent
	a.bits = (a.bits &^ (uint64(0xffff) << shiftFG)) | packColour(c)<<shiftFG
	return a
}

// WithBG returns a copy of a with the background colour set to c and its
// present bit set.
func (a Attributes) WithBG(c Colour) Attributes {
	a.bits |= 1 << bitBGPresent
	a.bits = (a.bits &^ (uint64(0xffff) << shiftBG)) | packColour(c)<<shiftBG
	return a
}

// WithBold returns a copy of a with the bold flag set to v and its present
// bit set.
func (a Attributes) WithBold(v bool) Attributes {
	a.bits |= 1 << bitBoldPresent
	a.bits &^= 1 << bitBoldValue
	if v {
		a.bits |= 1 << bitBoldValue
	}
	return a
}

// WithUnderline returns a copy of a with the underline flag set to v and its
// present bit set.
func (a Attributes) WithUnderline(v bool) Attributes {
	a.bits |= 1 << bitUnderlinePresent
	a.bits &^= 1 << bitUnderlineValue
	if v {
		a.bits |= 1 << bitUnderlineValue
	}
	return a
}

// HasFG, HasBG, HasBold, HasUnderline report whether the corresponding field
// is present.
func (a Attributes) HasFG() bool        { return a.bits&(1<<bitFGPresent) != 0 }
func (a Attributes) HasBG() bool        { return a.bits&(1<<bitBGPresent) != 0 }
func (a Attributes) HasBold() bool      { return a.bits&(1<<bitBoldPresent) != 0 }
func (a Attributes) HasUnderline() bool { return a.bits&(1<<bitUnderlinePresent) != 0 }

// FG returns the foreground colour. Only meaningful when HasFG().
func (a Attributes) FG() Colour { return unpackColour((a.bits >> shiftFG) & 0xffff) }

// BG returns the background colour. Only meaningful when HasBG().
func (a Attributes) BG() Colour { return unpackColour((a.bits >> shiftBG) & 0xffff) }

// Bold returns the bold flag. Only meaningful when HasBold().
func (a Attributes) Bold() bool { return a.bits&(1<<bitBoldValue) != 0 }

// Underline returns the underline flag. Only meaningful when HasUnderline().
func (a Attributes) Underline() bool { return a.bits&(1<<bitUnderlineValue) != 0 }

// Get returns a with every field present: absent colour fields default to
// the terminal-default palette index, absent bold/underline default to
// false.
func (a Attributes) Get() Attributes {
	out := a
	if !out.HasFG() {
		out = out.WithFG(Palette(DefaultIndex))
	}
	if !out.HasBG() {
		out = out.WithBG(Palette(DefaultIndex))
	}
	if !out.HasBold() {
		out = out.WithBold(false)
	}
	if !out.HasUnderline() {
		out = out.WithUnderline(false)
	}
	return out
}

// Merge returns an attribute where each field of b that is present overrides
// the corresponding field of a; fields present in neither stay absent. The
// result's present-mask is the union of a's and b's.
func Merge(a, b Attributes) Attributes {
	out := a
	if b.HasFG() {
		out = out.WithFG(b.FG())
	}
	if b.HasBG() {
		out = out.WithBG(b.BG())
	}
	if b.HasBold() {
		out = out.WithBold(b.Bold())
	}
	if b.HasUnderline() {
		out = out.WithUnderline(b.Underline())
	}
	return out
}

// Diff returns an attribute containing only the fields of to that differ
// from the corresponding field of from (including fields present in to but
// absent in from). Fields equal between from and to, or absent from to, are
// dropped from the result.
func Diff(from, to Attributes) Attributes {
	var out Attributes
	if to.HasFG() && (!from.HasFG() || from.FG() != to.FG()) {
		out = out.WithFG(to.FG())
	}
	if to.HasBG() && (!from.HasBG() || from.BG() != to.BG()) {
		out = out.WithBG(to.BG())
	}
	if to.HasBold() && (!from.HasBold() || from.Bold() != to.Bold()) {
		out = out.WithBold(to.Bold())
	}
	if to.HasUnderline() && (!from.HasUnderline() || from.Underline() != to.Underline()) {
		out = out.WithUnderline(to.Underline())
	}
	return out
}

// Equal reports whether a and b are equal, considering only fields present
// in both: a present field in one and absent in the other makes them
// unequal, matching "comparing attributes ignores absent fields" only for
// fields absent on *both* sides.
func Equal(a, b Attributes) bool {
	if a.HasFG() != b.HasFG() || (a.HasFG() && a.FG() != b.FG()) {
		return false
	}
	if a.HasBG() != b.HasBG() || (a.HasBG() && a.BG() != b.BG()) {
		return false
	}
	if a.HasBold() != b.HasBold() || (a.HasBold() && a.Bold() != b.Bold()) {
		return false
	}
	if a.HasUnderline() != b.HasUnderline() || (a.HasUnderline() && a.Underline() != b.Underline()) {
		return false
	}
	return true
}

// Pack returns the 64-bit packed representation of a, suitable for cheap
// copying or storage.
func (a Attributes) Pack() uint64 { return a.bits }

// Unpack reconstructs an Attributes from its packed representation.
func Unpack(bits uint64) Attributes { return Attributes{bits: bits} }
