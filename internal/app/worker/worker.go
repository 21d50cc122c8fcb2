package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	kafka_impl "github.com/Nurash908/Selfie2Snap/internal/broker/kafka"
	"github.com/Nurash908/Selfie2Snap/internal/config"
	"github.com/Nurash908/Selfie2Snap/internal/domain"
	"github.com/Nurash908/Selfie2Snap/internal/generation"
	minio_repo "github.com/Nurash908/Selfie2Snap/internal/repository/snap/cloud/minio"
	postgres_repo "github.com/Nurash908/Selfie2Snap/internal/repository/snap/db/postgres"
)

// Worker consumes generation tasks, calls the image service, stores the
// resulting frame, and records the outcome. Each frame is one message,
// so one upstream failure never takes down a batch.
type Worker struct {
	cfg       *config.Config
	logger    *zlog.Zerolog
	db        *dbpg.DB
	broker    *kafka_impl.KafkaClient
	fileRepo  *minio_repo.FileRepository
	client    *generation.Client
	snapsRepo *postgres_repo.SnapsRepository
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
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

	client := generation.NewClient(
		cfg.Generation.BaseURL,
		cfg.Generation.APIKey,
		&http.Client{Timeout: cfg.Generation.Timeout},
		logger,
	)

	return &Worker{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		broker:    kafka_impl.NewKafkaClient(cfg),
		fileRepo:  fileRepo,
		client:    client,
		snapsRepo: postgres_repo.NewSnapsRepository(db, cfg.DefaultRetryStrategy()),
	}, nil
}

func (w *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages := make(chan kafka.Message, w.cfg.Worker.Concurrency)

	go w.broker.StartConsuming(ctx, messages, w.cfg.DefaultRetryStrategy())

	for i := 0; i < w.cfg.Worker.Concurrency; i++ {
		go w.worker(ctx, i, messages)
	}

	w.logger.Info().Int("concurrency", w.cfg.Worker.Concurrency).Msg("Worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	w.logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
	cancel()

	return w.broker.Close()
}

func (w *Worker) worker(ctx context.Context, id int, messages <-chan kafka.Message) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Int("worker_id", id).Msg("Worker stopped")
			return
		case msg := <-messages:
			w.safeProcessMessage(ctx, id, msg)
		}
	}
}

func (w *Worker) safeProcessMessage(ctx context.Context, workerID int, msg kafka.Message) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().
				Interface("panic", r).
				Int("worker_id", workerID).
				Msg("Panic while processing task")
		}
	}()

	w.processMessage(ctx, workerID, msg)
}

func (w *Worker) processMessage(ctx context.Context, workerID int, msg kafka.Message) {
	var task domain.GenerationTask
	if err := json.Unmarshal(msg.Value, &task); err != nil {
		w.logger.Error().Err(err).Int("worker_id", workerID).Msg("Failed to unmarshal task")
		w.commit(ctx, msg, task.SnapID)
		return
	}

	w.logger.Info().
		Int("worker_id", workerID).
		Str("task_id", task.ID).
		Str("snap_id", task.SnapID).
		Int("frame", task.FrameIndex).
		Msg("Generating frame")

	url, err := w.client.Generate(ctx, &task)
	if err != nil {
		w.failTask(ctx, task, err)
		w.commit(ctx, msg, task.SnapID)
		return
	}

	frame, err := w.client.Fetch(ctx, url)
	if err != nil {
		w.failTask(ctx, task, fmt.Errorf("failed to download frame: %w", err))
		w.commit(ctx, msg, task.SnapID)
		return
	}

	objectPath := fmt.Sprintf("%s%s.png", domain.PathPrefixFrames, task.SnapID)
	if err := w.fileRepo.SaveObject(ctx, objectPath, frame, "image/png"); err != nil {
		w.failTask(ctx, task, fmt.Errorf("failed to store frame: %w", err))
		w.commit(ctx, msg, task.SnapID)
		return
	}

	if err := w.snapsRepo.Complete(ctx, task.SnapID, url, objectPath); err != nil {
		w.logger.Error().Err(err).Str("snap_id", task.SnapID).Msg("Failed to mark snap completed")
	}

	w.sendResult(ctx, domain.GenerationResult{
		TaskID: task.ID,
		SnapID: task.SnapID,
		Status: domain.StatusCompleted,
		URL:    url,
	})

	w.commit(ctx, msg, task.SnapID)

	w.logger.Info().
		Int("worker_id", workerID).
		Str("snap_id", task.SnapID).
		Str("path", objectPath).
		Msg("Frame completed")
}

// failTask records the failure with its category so the client can
// distinguish rate limits and quota exhaustion from ordinary errors.
func (w *Worker) failTask(ctx context.Context, task domain.GenerationTask, genErr error) {
	category := generation.Category(genErr)
	message := fmt.Sprintf("%s: %v", category, genErr)

	w.logger.Error().
		Err(genErr).
		Str("snap_id", task.SnapID).
		Str("category", category).
		Msg("Frame generation failed")

	if err := w.snapsRepo.Fail(ctx, task.SnapID, message); err != nil {
		w.logger.Error().Err(err).Str("snap_id", task.SnapID).Msg("Failed to mark snap failed")
	}

	w.sendResult(ctx, domain.GenerationResult{
		TaskID: task.ID,
		SnapID: task.SnapID,
		Status: domain.StatusFailed,
		Error:  message,
	})
}

func (w *Worker) sendResult(ctx context.Context, result domain.GenerationResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		w.logger.Error().Err(err).Str("snap_id", result.SnapID).Msg("Failed to marshal result")
		return
	}

	if err := w.broker.Send(ctx, w.cfg.DefaultRetryStrategy(), []byte(result.SnapID), payload); err != nil {
		w.logger.Error().Err(err).Str("snap_id", result.SnapID).Msg("Failed to send result")
	}
}

func (w *Worker) commit(ctx context.Context, msg kafka.Message, snapID string) {
	if err := w.broker.Commit(ctx, msg); err != nil {
		w.logger.Error().Err(err).Str("snap_id", snapID).Msg("Failed to commit message")
	}
}
