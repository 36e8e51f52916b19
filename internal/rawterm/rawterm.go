// Package rawterm puts a terminal into raw mode and queries its size,
// restorable to its original mode on Reset.
package rawterm

import "golang.org/x/term"

// TermSettings holds a terminal file descriptor's original mode, restorable
// by Reset.
type TermSettings struct {
	fd       int
	original *term.State
}

// NewTermSettings returns a TermSettings for fd. It does not read the
// terminal's mode; Raw captures the mode it replaces.
func NewTermSettings(fd int) (*TermSettings, error) {
	return &TermSettings{fd: fd}, nil
}

// Raw puts the terminal into raw mode, saving the prior state for Reset.
func (t *TermSettings) Raw() error {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.original = state
	return nil
}

// Reset restores the terminal mode captured by the most recent Raw call.
// It is a no-op if Raw was never called.
func (t *TermSettings) Reset() error {
	if t.original == nil {
		return nil
	}
	return term.Restore(t.fd, t.original)
}

// GetSize returns the terminal's current column and row count.
func (t *TermSettings) GetSize() (width, height int, err error) {
	return term.GetSize(t.fd)
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
