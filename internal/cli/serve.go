package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/7ntys/chaos-lab/internal/logging"
	"github.com/7ntys/chaos-lab/internal/server"
	"github.com/7ntys/chaos-lab/internal/store"
)

type serveFlags struct {
	addr     string
	database string
	fail     []string
	seed     bool
}

func newServeCmd(s *session) *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cafe backend",
		Long: `Serves the cafe catalog from a SQLite database:

  GET /api/menu      {"items": [...]}
  GET /api/specials  {"specials": [...]}
  GET /healthz       {"status": "ok"}

An empty database is seeded with the default cafe menu. --fail makes an
endpoint answer 503 so client failure handling can be exercised.`,
		Example: `  # Serve on the default address
  cafe serve

  # Serve a specific database with the menu endpoint failing
  cafe serve --database /var/lib/cafe/cafe.db --fail menu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, s, flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&flags.database, "database", "", "SQLite database path (default from config, cafe.db)")
	cmd.Flags().StringSliceVar(&flags.fail, "fail", nil, "endpoint to fail with 503: menu or specials (repeatable)")
	cmd.Flags().BoolVar(&flags.seed, "seed", true, "seed an empty database with the default menu")

	return cmd
}

func runServe(cmd *cobra.Command, s *session, flags serveFlags) error {
	ctx := cmd.Context()
	logger := commandLogger(cmd, "cli")

	addr := s.cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = flags.addr
	}
	database := s.cfg.Server.Database
	if cmd.Flags().Changed("database") {
		database = flags.database
	}
	fail := s.cfg.Server.Fail
	if cmd.Flags().Changed("fail") {
		fail = flags.fail
	}

	st, err := store.Open(ctx, database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("closing database")
		}
	}()

	if flags.seed {
		seeded, seedErr := st.Seed(ctx)
		if seedErr != nil {
			return seedErr
		}
		if seeded {
			logger.Info().Str("database", database).Msg("seeded default menu")
		}
	}

	srv, err := server.New(st, server.WithLogger(*logging.FromContext(ctx)), server.WithFailures(fail...))
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	cmd.PrintErrf("Chaos Cafe backend listening on http://%s\n", ln.Addr())

	return srv.Serve(ctx, ln)
}
