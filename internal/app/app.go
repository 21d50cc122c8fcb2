package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"github.com/Nurash908/Selfie2Snap/internal/archive"
	kafka_impl "github.com/Nurash908/Selfie2Snap/internal/broker/kafka"
	"github.com/Nurash908/Selfie2Snap/internal/config"
	preset_h "github.com/Nurash908/Selfie2Snap/internal/http-server/handler/preset"
	snap_h "github.com/Nurash908/Selfie2Snap/internal/http-server/handler/snap"
	"github.com/Nurash908/Selfie2Snap/internal/http-server/router"
	minio_repo "github.com/Nurash908/Selfie2Snap/internal/repository/snap/cloud/minio"
	postgres_repo "github.com/Nurash908/Selfie2Snap/internal/repository/snap/db/postgres"
	presets_uc "github.com/Nurash908/Selfie2Snap/internal/usecase/presets"
	snap_uc "github.com/Nurash908/Selfie2Snap/internal/usecase/snap"
	studio_uc "github.com/Nurash908/Selfie2Snap/internal/usecase/studio"
)

type App struct {
	cfg      *config.Config
	server   *http.Server
	logger   *zlog.Zerolog
	db       *dbpg.DB
	producer *kafka_impl.ProducerClient
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	retries := cfg.DefaultRetryStrategy()

	dbOpts := &dbpg.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}

	db, err := dbpg.New(cfg.DBDSN(), []string{}, dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fileRepo, err := minio_repo.NewFileRepository(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	if err := fileRepo.EnsureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	snapsRepo := postgres_repo.NewSnapsRepository(db, retries)
	presetsRepo := postgres_repo.NewPresetsRepository(db, retries)

	producer := kafka_impl.NewGenerationProducer(cfg)

	builder := archive.NewBuilder(nil, logger)

	snapUsecase := snap_uc.NewSnapUsecase(snapsRepo, fileRepo, producer, logger, retries)
	studioUsecase := studio_uc.NewStudioUsecase(snapsRepo, fileRepo, builder, logger)
	presetsUsecase := presets_uc.NewPresetsUsecase(presetsRepo, logger)

	h := &router.Handler{
		SnapHandler:   snap_h.NewSnapHandler(snapUsecase, studioUsecase, logger),
		PresetHandler: preset_h.NewPresetHandler(presetsUsecase, logger),
	}

	mux := router.SetupRouter(h)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		cfg:      cfg,
		server:   server,
		logger:   logger,
		db:       db,
		producer: producer,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Str("addr", a.cfg.Server.Addr).Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		if a.db != nil && a.db.Master != nil {
			a.db.Master.Close()
		}

		if a.producer != nil {
			a.producer.Close()
		}

		a.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
