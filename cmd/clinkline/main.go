// Command clinkline is a demo line editor: it puts the terminal in raw mode,
// wires the editor core to a readline-style keybinding module, a tab
// completer, a filesystem match generator, and a file-backed history, then
// echoes each accepted line until EOF or an explicit "exit"/"quit".
//
// Type "exit" or "quit" to quit; the loop also ends when reading stdin
// fails. ^C and ^D do not quit: in raw mode ^C is an unbound key and ^D
// deletes the character under the cursor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tornado12345/clink/complete"
	"github.com/tornado12345/clink/editor"
	"github.com/tornado12345/clink/internal/rawterm"
	"github.com/tornado12345/clink/internal/readline"
	"github.com/tornado12345/clink/internal/term"
	"github.com/tornado12345/clink/words"
)

var historyFile = flag.String("history", defaultHistoryPath(), "history file path")

func defaultHistoryPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".clinkline_history")
	}
	return ".clinkline_history"
}

func main() {
	flag.Parse()

	if !rawterm.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatalf("clinkline: stdin is not a terminal")
	}

	settings, err := rawterm.NewTermSettings(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("terminal: %s", err)
	}
	if err := settings.Raw(); err != nil {
		log.Fatalf("rawterm: %s", err)
	}
	defer settings.Reset()

	cols, rows, err := settings.GetSize()
	if err != nil {
		cols, rows = 80, 24
	}

	screen := term.NewScreen(os.Stdout, cols, rows)

	resize := make(chan struct{}, 1)
	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	go func() {
		for range sigwinch {
			if w, h, err := settings.GetSize(); err == nil {
				screen.SetSize(w, h)
			}
			select {
			case resize <- struct{}{}:
			default:
			}
		}
	}()

	abort := make(chan struct{}, 1)
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	go func() {
		<-sigint
		close(abort)
	}()

	input := term.NewInput(os.Stdin, resize, abort)

	history := loadFileHistory(*historyFile)

	settingsCfg := editor.DefaultSettings()
	ed := editor.New(editor.Config{
		Settings: settingsCfg,
		Words:    words.DefaultConfig(),
		Logger:   log.New(os.Stderr, "", 0),
	}, screen, input)
	ed.AddModule(readline.New(history))
	ed.AddModule(complete.New())
	ed.AddGenerator(fsGenerator{})

	for {
		line, ok := ed.Edit(context.Background(), "clink> ")
		screen.ResetAttr()
		fmt.Fprintln(screen)
		if !ok {
			return
		}
		if line == "exit" || line == "quit" {
			return
		}
		if line != "history" || settingsCfg.HistoryAddHistoryCmd {
			history.Add(line)
		}
		fmt.Fprintf(screen, "%s\r\n", line)
	}
}
