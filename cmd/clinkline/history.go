package main

import (
	"bufio"
	"fmt"
	"os"
)

// fileHistory is a simple append-only, file-backed command history. It
// implements internal/readline's History interface so the readline module
// can browse it with the up/down chords, without knowing it's backed by a
// file at all.
type fileHistory struct {
	path  string
	lines []string
	idx   int // index of the line last returned by Prev/Next; len(lines) means "not browsing"
}

// loadFileHistory reads path (if it exists) one line per history entry and
// returns a fileHistory ready to append further entries to it.
func loadFileHistory(path string) *fileHistory {
	h := &fileHistory{path: path}
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				h.lines = append(h.lines, line)
			}
		}
		f.Close()
	}
	h.idx = len(h.lines)
	return h
}

// Add appends line to the in-memory history and, best-effort, to the
// backing file; a write failure is not fatal to the editing session.
func (h *fileHistory) Add(line string) {
	if line == "" {
		return
	}
	h.lines = append(h.lines, line)
	h.idx = len(h.lines)

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, line)
}

func (h *fileHistory) Prev() (string, bool) {
	if h.idx == 0 {
		return "", false
	}
	h.idx--
	return h.lines[h.idx], true
}

func (h *fileHistory) Next() (string, bool) {
	if h.idx >= len(h.lines)-1 {
		return "", false
	}
	h.idx++
	return h.lines[h.idx], true
}
