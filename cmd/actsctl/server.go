package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/acts/pkg/server"
	"github.com/doodlesbykumbi/acts/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the ACTS application server",
	Long: `Run the ACTS application server

To run the server requires the environment variable DATABASE_URL. Set
ACTS_JWT_SECRET to accept HS256 bearer tokens; with auth_required enabled
every API request must carry one.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("DATABASE_URL") == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			if err := runMigrations(); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		secret := []byte(os.Getenv("ACTS_JWT_SECRET"))
		if a.cfg.AuthRequired && len(secret) == 0 {
			return fmt.Errorf("ACTS_JWT_SECRET is required when auth_required is enabled")
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(a.mediator, a.health, a.db, a.cfg, a.log, server.Options{
			Host:      host,
			Port:      port,
			JWTSecret: secret,
		})
		endpoints.RegisterAll(s)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- s.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ServerTimeout())
		defer cancel()
		return s.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
