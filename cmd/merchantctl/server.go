package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/app"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/config"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/logging"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/server/endpoints"
	"github.com/doodlesbykumbi/merchant-in-go/pkg/service"
)

const shutdownTimeout = 15 * time.Second

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
	return "8080"
}

func defaultPortInt() int {
	if p, err := strconv.Atoi(defaultPort()); err == nil {
		return p
	}
	return 8080
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the merchant application server",
	Long: `Run the merchant application server.

With the postgres primary store the server requires DATABASE_URL, and database
migrations are run on startup. Use --no-migrate to skip them.

The config file is watched while the server runs, and re-read on SIGHUP
("merchantctl configuration apply"); a changed log_level is applied
immediately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if cfg.PrimaryStore == config.StorePostgres && !noMigrate {
			log.Info().Msg("Running database migrations...")
			if err := runMigrations(); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close(context.Background()) }()

		if cfg.Reindex() {
			if _, err := a.Reindex(ctx, service.DefaultReindexBatch); err != nil {
				log.Error().Err(err).Msg("reindex on start failed")
			}
		}

		go watchConfig(ctx)
		go reloadOnHangup(ctx)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(a, host, port)
		endpoints.RegisterAll(s)

		errCh := make(chan error, 1)
		go func() {
			log.Info().Msgf("Running server at http://%s:%s...", host, port)
			errCh <- s.Start()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	},
}

func watchConfig(ctx context.Context) {
	l := logging.Component("config")
	err := config.Watch(ctx, applyLiveConfig, func(err error) {
		l.Warn().Err(err).Msg("configuration reload failed")
	})
	if err != nil {
		l.Warn().Err(err).Msg("not watching configuration")
	}
}

// reloadOnHangup re-reads the configuration on SIGHUP, as sent by
// "configuration apply".
func reloadOnHangup(ctx context.Context) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	l := logging.Component("config")
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			cfg, err := config.Reload()
			if err != nil {
				l.Warn().Err(err).Msg("configuration reload failed")
				continue
			}
			applyLiveConfig(cfg)
		}
	}
}

// applyLiveConfig applies the settings that can change without a restart.
func applyLiveConfig(cfg *config.MerchantConfig) {
	l := logging.Component("config")
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		l.Warn().Err(err).Msg("ignoring log level")
		return
	}
	l.Info().Str("log_level", cfg.LogLevel).Msg("configuration reloaded")
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
