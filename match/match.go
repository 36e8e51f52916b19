// Package match implements the completer's match collection: the container
// generators fill and the tab completer module reads.
package match

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// CompareScope controls how duplicate matches are detected and how the
// longest common denominator is computed.
type CompareScope int

const (
	// Exact compares match strings byte-for-byte.
	Exact CompareScope = iota
	// Caseless compares match strings case-insensitively.
	Caseless
	// Relaxed compares case-insensitively and additionally equates '-' and
	// '_'.
	Relaxed
)

func normalize(scope CompareScope, s string) string {
	switch scope {
	case Caseless:
		return strings.ToLower(s)
	case Relaxed:
		s = strings.ToLower(s)
		return strings.Map(func(r rune) rune {
			if r == '-' {
				return '_'
			}
			return r
		}, s)
	default:
		return s
	}
}

// Match is a single completion candidate.
type Match struct {
	Text        string // the string inserted on acceptance
	Displayable string // the string printed; "" means use Text
	Aux         string
	HasAux      bool
	HasSuffix   bool
	Suffix      byte
}

// Display returns the string to print for m.
func (m Match) Display() string {
	if m.Displayable == "" {
		return m.Text
	}
	return m.Displayable
}

// Collection accumulates matches keyed by their Text field, duplicate-free
// under the active CompareScope. It is cleared at the start of each
// completion attempt, filled by generators, and read by the tab completer.
type Collection struct {
	scope   CompareScope
	order   []string // insertion order of normalized keys
	byKey   map[string]Match
	hasAux  bool
}

// NewCollection returns an empty Collection comparing under scope.
func NewCollection(scope CompareScope) *Collection {
	return &Collection{scope: scope, byKey: make(map[string]Match)}
}

// Reset clears the collection for a new completion attempt, optionally
// changing the compare scope.
func (c *Collection) Reset(scope CompareScope) {
	c.scope = scope
	c.order = c.order[:0]
	c.byKey = make(map[string]Match)
	c.hasAux = false
}

// Add inserts m, ignoring it if a match with the same Text already exists
// under the active compare scope.
func (c *Collection) Add(m Match) bool {
	key := normalize(c.scope, m.Text)
	if _, ok := c.byKey[key]; ok {
		return false
	}
	c.byKey[key] = m
	c.order = append(c.order, key)
	if m.HasAux {
		c.hasAux = true
	}
	return true
}

// Count returns the number of distinct matches.
func (c *Collection) Count() int { return len(c.order) }

// Get returns the i'th match in insertion order.
func (c *Collection) Get(i int) Match { return c.byKey[c.order[i]] }

// HasAux reports whether any match carries an aux field.
func (c *Collection) HasAux() bool { return c.hasAux }

// GetCellCount returns the visible terminal-cell width of the i'th match's
// displayable string.
func (c *Collection) GetCellCount(i int) int {
	return runewidth.StringWidth(c.Get(i).Display())
}

// GetMatchLCD returns the longest string P such that every match's Text
// starts with P under the active compare scope. Ties (matches differing
// only in case/relaxed-equivalent form) resolve to the byte sequence of the
// first-inserted match.
func (c *Collection) GetMatchLCD() string {
	if len(c.order) == 0 {
		return ""
	}
	first := c.byKey[c.order[0]].Text
	lcdLen := len(first)
	firstNorm := normalize(c.scope, first)

	for _, key := range c.order[1:] {
		text := c.byKey[key].Text
		norm := normalize(c.scope, text)
		n := commonPrefixLen(firstNorm, norm)
		if n < lcdLen {
			lcdLen = n
		}
	}
	// lcdLen was computed in normalized-string units; Relaxed/Caseless
	// normalization never changes string length, so the byte offset into
	// the original (un-normalized) first match is the same index.
	if lcdLen > len(first) {
		lcdLen = len(first)
	}
	return first[:lcdLen]
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Builder is the interface generators use to populate a Collection.
type Builder struct {
	c              *Collection
	prefixIncluded bool
}

// NewBuilder wraps c for a single generator invocation.
func NewBuilder(c *Collection) *Builder { return &Builder{c: c} }

// AddMatch adds a bare match string.
func (b *Builder) AddMatch(s string) bool {
	return b.c.Add(Match{Text: s})
}

// AddMatchDesc adds a fully described match.
func (b *Builder) AddMatchDesc(m Match) bool {
	return b.c.Add(m)
}

// SetPrefixIncluded signals that matches already include the word being
// completed, rather than replacing everything after the end-word prefix.
func (b *Builder) SetPrefixIncluded(v bool) { b.prefixIncluded = v }

// PrefixIncluded reports the value set by SetPrefixIncluded (default false).
func (b *Builder) PrefixIncluded() bool { return b.prefixIncluded }
