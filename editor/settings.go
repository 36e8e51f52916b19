package editor

import "github.com/tornado12345/clink/attr"

// Settings holds the editor's tunable behavior, read by name rather than
// through a process-wide registry; embedders construct their own Settings
// and the core only reads it.
type Settings struct {
	MatchIgnoreCase    IgnoreCaseMode
	MatchQueryThreshold int
	MatchVertical      bool
	MatchColumnPad     int
	MatchMaxWidth      int

	ColourInteract  attr.Attributes
	ColourMinor     attr.Attributes
	ColourMajor     attr.Attributes
	ColourHighlight attr.Attributes

	HistoryAddHistoryCmd bool
}

// IgnoreCaseMode is the match.ignore_case setting.
type IgnoreCaseMode int

const (
	IgnoreCaseOff IgnoreCaseMode = iota
	IgnoreCaseOn
	IgnoreCaseRelaxed
)

// DefaultSettings returns the editor's baseline behavior.
func DefaultSettings() Settings {
	return Settings{
		MatchIgnoreCase:     IgnoreCaseRelaxed,
		MatchQueryThreshold: 100,
		MatchVertical:       true,
		MatchColumnPad:      2,
		MatchMaxWidth:       106,
		HistoryAddHistoryCmd: true,
	}
}
