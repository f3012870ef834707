package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/7ntys/chaos-lab/internal/config"
	"github.com/7ntys/chaos-lab/internal/logging"
)

// skipConfigAnnotation marks commands that must run even when the config file is broken.
const skipConfigAnnotation = "cafe.skip-config-load"

// session is the per-invocation state shared by every subcommand.
type session struct {
	version   string
	loader    config.Loader
	cfg       *config.Config
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the cafe CLI.
// Running it without a subcommand shows the menu.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, nil)
}

// NewRootCmdWithEnv creates the root command with an explicit environment for
// testability. A nil environment reads the process environment.
func NewRootCmdWithEnv(ver string, environment map[string]string) *cobra.Command {
	s := &session{
		version: ver,
		loader:  config.Loader{Environment: environment},
	}
	var flags menuFlags

	cmd := &cobra.Command{
		Use:           "cafe",
		Short:         "Chaos Cafe menu client and backend",
		Long:          "Chaos Cafe: browse today's menu and specials, or run the backend that serves them",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.prepare(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(s.logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, s, flags)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $HOME/.chaoscafe/config.yaml)")
	cmd.PersistentFlags().String("base-url", "", "backend base URL (overrides config file and env var)")
	addMenuFlags(cmd, &flags)

	cmd.AddCommand(newMenuCmd(s), newServeCmd(s), newConfigCmd(s), newVersionCmd(s))

	return cmd
}

// prepare loads configuration, applies flag overrides and starts logging.
func (s *session) prepare(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")

	if _, skip := cmd.Annotations[skipConfigAnnotation]; skip {
		s.cfg = config.Default()
	} else {
		cfg, err := s.loader.Load(configPath)
		if err != nil {
			return err
		}
		s.cfg = cfg
	}

	if cmd.Flags().Changed("base-url") {
		s.cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
		if err := s.cfg.Validate(); err != nil {
			return err
		}
	}

	result := setupLogging(cmd, s.cfg.Logging)
	s.logResult = &result
	return nil
}

// configPath returns the config file this invocation reads or would write.
func (s *session) configPath(cmd *cobra.Command) string {
	explicit, _ := cmd.Flags().GetString("config")
	path, _ := s.loader.Resolve(explicit)
	return path
}

const rootCmdExample = `  # Show today's menu (interactive on a terminal)
  cafe

  # Print the menu as JSON
  cafe menu --output json

  # Read from another backend
  cafe --base-url http://cafe.internal:8080

  # Run the backend with the specials endpoint failing
  cafe serve --addr :8080 --fail specials

  # Write a default configuration file
  cafe config init`

// lookupEnv reads from environment when set, otherwise from the process.
func lookupEnv(environment map[string]string, key string) (string, bool) {
	if environment != nil {
		v, ok := environment[key]
		return v, ok
	}
	return os.LookupEnv(key)
}
