package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/7ntys/chaos-lab/internal/config"
	"github.com/7ntys/chaos-lab/internal/loader"
	"github.com/7ntys/chaos-lab/internal/logging"
	"github.com/7ntys/chaos-lab/internal/menu"
	"github.com/7ntys/chaos-lab/internal/tui"
	"github.com/7ntys/chaos-lab/internal/view"
)

// menuFlags holds the presentation flags shared by the root and menu commands.
type menuFlags struct {
	output  string
	plain   bool
	noColor bool
	timeout time.Duration
}

// menuJSON is the machine-readable form of the view.
type menuJSON struct {
	Loading  bool           `json:"loading"`
	Error    string         `json:"error,omitempty"`
	Items    []menu.Item    `json:"items"`
	Specials []menu.Special `json:"specials"`
	Grouped  menu.Grouped   `json:"grouped"`
}

func addMenuFlags(cmd *cobra.Command, flags *menuFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output format: auto, interactive, styled, plain, json (default from config)")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "force plain text output")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colors and styling")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-request timeout, 0 for none (default from config)")
}

func newMenuCmd(s *session) *cobra.Command {
	var flags menuFlags

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show today's specials and the menu grouped by category",
		Long: `Loads the menu and today's specials from the backend in parallel and shows them.

On a terminal the view is interactive: a spinner while loading, then a
scrollable page. Elsewhere it renders once after the load settles. A failed
load shows a single error line and exits with status 2 outside the
interactive view.`,
		Example: `  # Interactive view
  cafe menu

  # Plain text for scripts
  cafe menu --plain

  # JSON with a two second request timeout
  cafe menu --output json --timeout 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, s, flags)
		},
	}
	addMenuFlags(cmd, &flags)

	return cmd
}

// runMenu loads the catalog once and presents it in the resolved output format.
func runMenu(cmd *cobra.Command, s *session, flags menuFlags) error {
	format := s.cfg.Output.Format
	if cmd.Flags().Changed("output") {
		format = flags.output
	}
	timeout := s.cfg.API.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = flags.timeout
	}
	if timeout < 0 {
		return fmt.Errorf("%w: %s", config.ErrNegativeTimeout, timeout)
	}

	mode, err := resolveFormat(format, flags, s.terminal(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	client, err := loader.New(s.cfg.API.BaseURL,
		loader.WithHTTPClient(&http.Client{Timeout: timeout}),
		loader.WithUserAgent("chaos-cafe/"+s.version),
	)
	if err != nil {
		return err
	}

	logger := *logging.FromContext(cmd.Context())
	debug, _ := cmd.Flags().GetBool("debug")
	if silencesLogs(mode, debug, s.logResult) {
		logger = silenceLogging(cmd)
	}
	log := commandLogger(cmd, "cli")
	log.Debug().
		Str("base_url", s.cfg.API.BaseURL).
		Str("format", mode).
		Dur("timeout", timeout).
		Msg("loading menu")

	if mode == config.FormatInteractive {
		return runInteractiveMenu(cmd, client, logger)
	}
	return runOneShotMenu(cmd, client, logger, mode)
}

// silencesLogs reports whether stderr logging must be dropped so it cannot tear
// the interactive frame. --debug keeps it.
func silencesLogs(mode string, debug bool, logResult *logging.LogPathResult) bool {
	if mode != config.FormatInteractive || debug {
		return false
	}
	return logResult == nil || !logResult.UsingFile
}

// resolveFormat turns the requested format into a concrete one for this terminal.
func resolveFormat(format string, flags menuFlags, t tui.Terminal) (string, error) {
	format = strings.ToLower(format)
	switch format {
	case config.FormatJSON:
		return config.FormatJSON, nil
	case config.FormatPlain:
		return config.FormatPlain, nil
	case config.FormatStyled:
		if flags.plain || flags.noColor || t.NoColor || t.Term == "dumb" {
			return config.FormatPlain, nil
		}
		return config.FormatStyled, nil
	case config.FormatInteractive:
		// An explicit request wins over CI detection but still needs a TTY.
		t.CI = false
		return tui.DetectOutputModeFor(t, flags.plain, flags.noColor, false).String(), nil
	case config.FormatAuto, "":
		return tui.DetectOutputModeFor(t, flags.plain, flags.noColor, false).String(), nil
	default:
		return "", fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
	}
}

// terminal describes the writer the view goes to.
func (s *session) terminal(out io.Writer) tui.Terminal {
	return tui.TerminalFor(out, func(key string) (string, bool) {
		return lookupEnv(s.loader.Environment, key)
	})
}

func runInteractiveMenu(cmd *cobra.Command, l view.Loader, logger zerolog.Logger) error {
	model := tui.NewMenuModel(cmd.Context(), l, view.WithLogger(logger))
	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive view: %w", err)
	}
	return nil
}

// runOneShotMenu mounts a controller, waits for the load to settle and renders once.
func runOneShotMenu(cmd *cobra.Command, l view.Loader, logger zerolog.Logger, format string) error {
	ctx := cmd.Context()
	ctrl := view.NewController(l, view.WithLogger(logger))

	done := ctrl.Mount(ctx)
	select {
	case <-done:
	case <-ctx.Done():
		ctrl.Unmount()
		<-done
		return ctx.Err()
	}
	defer ctrl.Unmount()

	state := ctrl.State()
	grouped := ctrl.Grouped()
	out := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		if err := renderJSON(out, state, grouped); err != nil {
			return err
		}
	case config.FormatStyled:
		_, _ = fmt.Fprint(out, tui.RenderStyled(state, grouped, tui.TerminalWidth()))
	default:
		_, _ = fmt.Fprint(out, tui.RenderPlain(state, grouped))
	}

	return exitForState(state)
}

func renderJSON(w io.Writer, state view.State, grouped menu.Grouped) error {
	msg, _ := state.Error()
	payload := menuJSON{
		Loading:  state.IsLoading(),
		Error:    msg,
		Items:    state.Items(),
		Specials: state.Specials(),
		Grouped:  grouped,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding menu json: %w", err)
	}
	return nil
}

// exitForState maps a failed view onto a non-zero exit status.
func exitForState(state view.State) error {
	if msg, failed := state.Error(); failed {
		return &ExitError{Code: ExitCodeLoadFailed, Reason: msg}
	}
	return nil
}
