// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command acucogn runs the ACUCOGN website.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/acucogn/site/internal/config"
	"github.com/acucogn/site/internal/logging"
	"github.com/acucogn/site/internal/store"
	"github.com/acucogn/site/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "acucogn",
		Short:         "ACUCOGN website server",
		Long:          "Serves the ACUCOGN marketing site: static panels, blog, contact form and chat.\nConfiguration is read from ACUCOGN_* environment variables and an optional .env file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Get().String(),
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				db, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer closeDB(db)
				slog.Info("migrations applied", "driver", cfg.DBDriver)
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert demo blog posts into an empty database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				db, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer closeDB(db)
				return store.Seed(cmd.Context(), db)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			},
		},
	)

	return root
}

// loadConfig reads .env (if present) and the environment, then installs the
// default logger.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

// openStore opens the SQL database and applies migrations. SQLite files get
// their directory created first.
func openStore(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.UseSupabase() {
		return nil, fmt.Errorf("backend %q has no local database", cfg.Backend)
	}

	if cfg.DBDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("opening database", "driver", cfg.DBDriver)
	db, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func closeDB(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing database connection", "error", err)
	}
}
