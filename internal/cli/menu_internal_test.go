package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7ntys/chaos-lab/internal/config"
	"github.com/7ntys/chaos-lab/internal/logging"
	"github.com/7ntys/chaos-lab/internal/tui"
	"github.com/7ntys/chaos-lab/internal/view"
)

func TestResolveFormat(t *testing.T) {
	tty := tui.Terminal{IsTTY: true, Term: "xterm-256color"}
	pipe := tui.Terminal{IsTTY: false, Term: "xterm-256color"}
	ci := tui.Terminal{IsTTY: true, Term: "xterm-256color", CI: true}
	noColor := tui.Terminal{IsTTY: true, Term: "xterm-256color", NoColor: true}

	tests := []struct {
		name   string
		format string
		flags  menuFlags
		term   tui.Terminal
		want   string
	}{
		{name: "auto on tty", format: "auto", term: tty, want: config.FormatInteractive},
		{name: "empty on tty", format: "", term: tty, want: config.FormatInteractive},
		{name: "auto on pipe", format: "auto", term: pipe, want: config.FormatPlain},
		{name: "auto in CI", format: "auto", term: ci, want: config.FormatStyled},
		{name: "auto with NO_COLOR", format: "auto", term: noColor, want: config.FormatPlain},
		{name: "auto with --plain", format: "auto", flags: menuFlags{plain: true}, term: tty, want: config.FormatPlain},
		{name: "auto with --no-color", format: "auto", flags: menuFlags{noColor: true}, term: tty, want: config.FormatPlain},
		{name: "json ignores terminal", format: "json", term: tty, want: config.FormatJSON},
		{name: "json is case insensitive", format: "JSON", term: pipe, want: config.FormatJSON},
		{name: "plain on tty", format: "plain", term: tty, want: config.FormatPlain},
		{name: "styled on pipe", format: "styled", term: pipe, want: config.FormatStyled},
		{name: "styled with --no-color", format: "styled", flags: menuFlags{noColor: true}, term: tty, want: config.FormatPlain},
		{name: "styled on dumb terminal", format: "styled", term: tui.Terminal{IsTTY: true, Term: "dumb"}, want: config.FormatPlain},
		{name: "interactive in CI", format: "interactive", term: ci, want: config.FormatInteractive},
		{name: "interactive on pipe", format: "interactive", term: pipe, want: config.FormatPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.format, tt.flags, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFormat_Unknown(t *testing.T) {
	_, err := resolveFormat("yaml", menuFlags{}, tui.Terminal{})
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestSessionTerminal_BufferIsNotTTY(t *testing.T) {
	s := &session{loader: config.Loader{Environment: map[string]string{
		"NO_COLOR": "",
		"TERM":     "xterm",
	}}}

	got := s.terminal(&bytes.Buffer{})
	assert.False(t, got.IsTTY)
	assert.True(t, got.NoColor, "NO_COLOR counts when set, even empty")
	assert.False(t, got.CI)
	assert.Equal(t, "xterm", got.Term)
}

func TestExitForState(t *testing.T) {
	err := exitForState(view.Failed("Backend unavailable"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitCodeLoadFailed, exitErr.Code)
	assert.Equal(t, "Backend unavailable", exitErr.Error())

	assert.NoError(t, exitForState(view.Loaded(nil, nil)))
	assert.NoError(t, exitForState(view.Loading()))
}

func TestSilencesLogs(t *testing.T) {
	toFile := &logging.LogPathResult{UsingFile: true}
	toStderr := &logging.LogPathResult{}

	tests := []struct {
		name      string
		mode      string
		debug     bool
		logResult *logging.LogPathResult
		want      bool
	}{
		{name: "interactive to stderr", mode: config.FormatInteractive, logResult: toStderr, want: true},
		{name: "interactive without logger", mode: config.FormatInteractive, want: true},
		{name: "interactive to file", mode: config.FormatInteractive, logResult: toFile, want: false},
		{name: "interactive with debug", mode: config.FormatInteractive, debug: true, logResult: toStderr, want: false},
		{name: "plain to stderr", mode: config.FormatPlain, logResult: toStderr, want: false},
		{name: "json to stderr", mode: config.FormatJSON, logResult: toStderr, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, silencesLogs(tt.mode, tt.debug, tt.logResult))
		})
	}
}
