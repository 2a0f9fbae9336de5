package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/paws4pals/inventory/internal/api"
	"github.com/paws4pals/inventory/internal/backup"
	"github.com/paws4pals/inventory/internal/config"
	"github.com/paws4pals/inventory/internal/db"
	"github.com/paws4pals/inventory/internal/logging"
	"github.com/paws4pals/inventory/internal/report"
	"github.com/paws4pals/inventory/internal/store"
)

const tokenPurgeInterval = time.Hour

func main() {
	app := &cli.App{
		Name:  "paws4pals",
		Usage: "PAWS4PALS inventory server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "dotenv file to load before reading PAWS_* variables",
				Value:   ".env",
				EnvVars: []string{"PAWS_ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "SQLite database path (overrides PAWS_DB_PATH)",
			},
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Usage:   "log file path (overrides PAWS_LOG_FILE)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Create the database, the admin and staff accounts and the default metadata",
				Action: runInit,
			},
			{
				Name:  "serve",
				Usage: "Run the HTTP API and the backup scheduler",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "listen address (overrides PAWS_ADDR)",
					},
				},
				Action: runServe,
			},
			{
				Name:   "seed",
				Usage:  "Add sample items to an initialized database",
				Action: runSeed,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if v := c.String("db"); v != "" {
		cfg.DB.Path = v
	}
	if v := c.String("log"); v != "" {
		cfg.Log.File = v
	}
	if v := c.String("addr"); v != "" {
		cfg.Server.Addr = v
	}
	return cfg, nil
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	// Auto-init on first run.
	if _, err := os.Stat(cfg.DB.Path); os.IsNotExist(err) {
		creds, err := initDatabase(c.Context, cfg.DB)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		printInitResult(cfg.DB.Path, creds)
		fmt.Println()
	}

	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	log.Info().Str("path", cfg.DB.Path).Msg("database ready")

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		return fmt.Errorf("loading JWT secret: %w", err)
	}

	session, err := store.OpenSession(ctx, database)
	if err != nil {
		return err
	}

	cache, err := report.NewCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("connecting report cache: %w", err)
	}
	defer cache.Close()

	guard := api.NewGuard(session, cache)
	backups := &backup.Service{DB: database, Size: guard.SnapshotSize}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.LoggingMiddleware(api.NewRouter(database, jwtSecret, guard, backups)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
		}
		return nil
	})

	g.Go(func() error {
		return backups.Run(gctx, cfg.Backup.CheckInterval())
	})

	g.Go(func() error {
		return purgeTokens(gctx, database, tokenPurgeInterval)
	})

	err = g.Wait()
	log.Info().Msg("server stopped, closing database")
	return err
}
