package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode selects how the view is presented.
type OutputMode int

const (
	// OutputModePlain writes unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes a one-shot Lip Gloss render.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Terminal describes the facts mode detection depends on.
type Terminal struct {
	IsTTY   bool
	Term    string
	NoColor bool
	CI      bool
}

// TerminalFor describes out, reading NO_COLOR, CI and TERM through lookup.
// Only a terminal *os.File counts as a TTY.
func TerminalFor(out io.Writer, lookup func(string) (string, bool)) Terminal {
	_, noColor := lookup("NO_COLOR")
	_, ci := lookup("CI")
	termName, _ := lookup("TERM")

	t := Terminal{Term: termName, NoColor: noColor, CI: ci}
	if f, ok := out.(*os.File); ok {
		t.IsTTY = term.IsTerminal(int(f.Fd()))
	}
	return t
}

// DetectOutputModeFor picks the richest mode t supports.
// plain forces plain text, noColor disables styling, noInteractive keeps the
// styled one-shot output even on a TTY.
func DetectOutputModeFor(t Terminal, plain, noColor, noInteractive bool) OutputMode {
	if plain || noColor || t.NoColor || t.Term == "dumb" || !t.IsTTY {
		return OutputModePlain
	}
	if noInteractive || t.CI {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or a default when it cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
