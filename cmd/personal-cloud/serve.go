package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KennethL27/personal-cloud-service/internal/api"
	"github.com/KennethL27/personal-cloud-service/internal/auth"
	"github.com/KennethL27/personal-cloud-service/internal/config"
	"github.com/KennethL27/personal-cloud-service/internal/db"
	"github.com/KennethL27/personal-cloud-service/internal/drives"
	"github.com/KennethL27/personal-cloud-service/internal/metrics"
	"github.com/KennethL27/personal-cloud-service/internal/security"
	"github.com/KennethL27/personal-cloud-service/internal/services"
	"github.com/KennethL27/personal-cloud-service/internal/storage"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer db.Close(database)

	directory, shares := services.NewSQLiteServices(database)
	if cfg.FirstUserEmail != "" {
		admin, err := directory.BootstrapAdmin(cfg.FirstUserEmail, cfg.FirstUserName)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		slog.Info("administrator ready", "email", admin.Email)
	}

	verifier, err := auth.NewGoogleVerifier(ctx, cfg.GoogleClientID)
	if err != nil {
		return fmt.Errorf("identity verifier: %w", err)
	}
	sessions, err := auth.NewSessionCodec(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenLifetime)
	if err != nil {
		return fmt.Errorf("session codec: %w", err)
	}
	cookies, err := security.NewCookieCodec([]byte(cfg.JWTSecretKey))
	if err != nil {
		return fmt.Errorf("cookie codec: %w", err)
	}
	allowList := auth.NewAllowList(func() string { return cfg.AllowedEmailsRaw })
	if err := allowList.Load(); err != nil {
		return fmt.Errorf("allow-list: %w", err)
	}

	probe := drives.SystemProbe()
	locator, err := drives.NewLocator(drives.LocatorOptions{
		MountBase: cfg.DriveMountBase,
		Index:     cfg.DriveIndex,
		Probe:     probe,
	})
	if err != nil {
		return fmt.Errorf("drive locator: %w", err)
	}

	handler, err := api.NewHandler(api.Dependencies{
		Identities:   verifier,
		Sessions:     sessions,
		AllowList:    allowList,
		Cookies:      cookies,
		CookieSecure: cfg.CookieSecure(),
		Directory:    directory,
		Shares:       shares,
		Store:        storage.NewStore(nil),
		Locator:      locator,
		Probe:        probe,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := api.NewApp(handler, api.AppOptions{
		BodyLimit:        cfg.UploadMaxBytes,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	_, metricsErrs := metrics.StartServer(ctx, cfg.MetricsAddr)

	listenErrs := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBPath, "env", cfg.Env)
		listenErrs <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-listenErrs:
		if err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	case err := <-metricsErrs:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
