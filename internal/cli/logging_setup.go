package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/7ntys/chaos-lab/internal/config"
	"github.com/7ntys/chaos-lab/internal/logging"
)

// setupLogging configures logging from the config and CLI flags, and stores the
// logger and a fresh trace ID in the command context.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig) logging.LogPathResult {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	logCfg := loggingCfg.ToLoggingConfig()
	logCfg.Writer = cmd.ErrOrStderr()

	result := logging.NewLoggerWithPath(logCfg)

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = result.Logger.With().Str(logging.TraceIDField, traceID).Logger().WithContext(ctx)
	cmd.SetContext(ctx)

	log := commandLogger(cmd, "cli")
	log.Debug().Str("command", cmd.Name()).Msg("command started")

	return result
}

// silenceLogging replaces the context logger with a no-op one. The interactive
// view owns the terminal, so stderr logging would corrupt its frames.
func silenceLogging(cmd *cobra.Command) zerolog.Logger {
	nop := zerolog.Nop()
	cmd.SetContext(nop.WithContext(cmd.Context()))
	return nop
}

// commandLogger returns the context logger of cmd tagged with component.
func commandLogger(cmd *cobra.Command, component string) zerolog.Logger {
	return logging.ComponentLogger(*logging.FromContext(cmd.Context()), component)
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
