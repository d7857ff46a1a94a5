// Command dynocollect runs the media contribution service.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sainikith07/DynoCollect/internal/api"
	"github.com/sainikith07/DynoCollect/internal/config"
	"github.com/sainikith07/DynoCollect/internal/identity"
	"github.com/sainikith07/DynoCollect/internal/metadata"
	"github.com/sainikith07/DynoCollect/internal/objectstore"
	"github.com/sainikith07/DynoCollect/internal/uploader"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("service exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := metadata.Connect(ctx, cfg.Database.DSN, logger)
	if err != nil {
		return err
	}
	if err := metadata.Migrate(db, logger); err != nil {
		return err
	}

	store, err := objectstore.New(ctx,
		objectstore.WithEndpoint(cfg.Storage.Endpoint),
		objectstore.WithRegion(cfg.Storage.Region),
		objectstore.WithStaticCredentials(cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey),
		objectstore.WithForcePathStyle(cfg.Storage.ForcePathStyle),
		objectstore.WithConnectTimeout(cfg.Storage.ConnectTimeout.Std()),
		objectstore.WithOperationTimeout(cfg.Storage.OperationTimeout.Std()),
		objectstore.WithInsecureSkipVerify(cfg.Storage.InsecureSkipVerify),
	)
	if err != nil {
		return err
	}

	orch := uploader.New(store, cfg.Storage.PublicURLTemplate, logger)

	idClient := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.APIKey,
		identity.WithLogger(logger),
	)

	handler := api.NewHandler(api.HandlerConfig{
		Uploads:  orch,
		Records:  metadata.NewRecorder(db),
		Identity: idClient,
		DBHealth: func(ctx context.Context) error {
			return metadata.Healthy(ctx, db)
		},
		Logger:       logger,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
