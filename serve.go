package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msomdec/spartan-directory/internal/config"
	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
	"github.com/msomdec/spartan-directory/internal/handler"
	"github.com/msomdec/spartan-directory/internal/repository/sqlite"
	"github.com/msomdec/spartan-directory/internal/service"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load config", "error", err)
				os.Exit(1)
			}
			setupLogging(cfg)
			runServe(cfg)
		},
	}
}

func runServe(cfg config.Config) {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	dataset, err := loadDataset(cfg)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	slog.Info("dataset ready", "records", len(dataset))

	fetcher := directory.NewFetcher(directory.StaticSource(dataset), cfg.FetchDelay)

	sessions := service.NewSessionStore(db.KV())
	authService := service.NewAuthService(db.Accounts(), sessions, cfg.BcryptCost, cfg.LoginDelay)
	directoryService := service.NewDirectoryService(fetcher)

	// Restore any persisted session before serving requests.
	if _, err := authService.Init(context.Background()); err != nil {
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	}
	slog.Info("session state resolved", "state", authService.State())

	limiter := service.NewTokenBucket(0.5, 5)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, directoryService, limiter, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadDataset reads the roster from DATASET_PATH when set, otherwise
// generates one in memory. A zero seed means a random roster on every boot.
func loadDataset(cfg config.Config) ([]domain.Spartan, error) {
	if cfg.DatasetPath != "" {
		return directory.Load(cfg.DatasetPath)
	}

	rng := newRNG(cfg.DatasetSeed)
	return directory.Generate(rng, directory.DatasetSize), nil
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}
