package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tornado12345/clink/match"
	"github.com/tornado12345/clink/words"
)

// fsGenerator completes the end word against filesystem entries, the way a
// shell completes file and directory names: it lists the directory part of
// the word being typed and matches entries by name prefix, suffixing
// directories with the path separator.
type fsGenerator struct{}

func (fsGenerator) Generate(ls words.LineState, b *match.Builder) bool {
	word := ""
	if w, ok := ls.EndWord(); ok {
		word = ls.Line[w.Offset():w.End()]
	}

	dir, prefix := filepath.Split(word)
	lookIn := dir
	if lookIn == "" {
		lookIn = "."
	}

	entries, err := os.ReadDir(lookIn)
	if err != nil {
		return true
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		m := match.Match{Text: dir + entry.Name()}
		if entry.IsDir() {
			m.HasSuffix = true
			m.Suffix = filepath.Separator
		}
		b.AddMatchDesc(m)
	}
	// Matches already carry the word's directory prefix, not just the part
	// after the last path separator.
	b.SetPrefixIncluded(true)
	return true
}
