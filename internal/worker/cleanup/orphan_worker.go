package cleanup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/worker"
)

const (
	maxBatchSize    = 20
	emptyQueueSleep = 500 * time.Millisecond
	errorSleep      = time.Second
	retryBackoff    = 200 * time.Millisecond
)

// OrphanImageWorker удаляет с хостинга фото, которые не попали в объявление
type OrphanImageWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	imageHost    repository.ImageHostRepository
	consumerName string
	maxRetries   int
}

func NewOrphanImageWorker(
	streamRepo repository.StreamRepository,
	imageHost repository.ImageHostRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *OrphanImageWorker {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &OrphanImageWorker{
		BaseWorker:   worker.NewBaseWorker("orphan-image-cleanup", consumerGroup, logger),
		streamRepo:   streamRepo,
		imageHost:    imageHost,
		consumerName: worker.ConsumerName("cleanup"),
		maxRetries:   maxRetries,
	}
}

func (w *OrphanImageWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting orphan image worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamImageOrphaned, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			if !w.Sleep(ctx, errorSleep) {
				return nil
			}
			continue
		}
		if processed == 0 && !w.Sleep(ctx, emptyQueueSleep) {
			return nil
		}
	}
}

// ProcessBatch читает пачку событий и удаляет фото. Возвращает число прочитанных сообщений.
// Сообщение подтверждается и после неудачного удаления: сирота на хостинге
// дешевле вечно застрявшего сообщения.
func (w *OrphanImageWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamImageOrphaned, w.ConsumerGroup(), w.consumerName, maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(messages))
	destroyed := 0
	for _, msg := range messages {
		ids = append(ids, msg.ID)

		var event domain.ImageOrphanedEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || !event.Valid() {
			logger.Warn("Skipping malformed orphan event", zap.String("message_id", msg.ID), zap.Error(err))
			continue
		}

		if err := w.destroy(ctx, event.PublicID); err != nil {
			logger.Error("Failed to destroy orphaned image",
				zap.String("public_id", event.PublicID),
				zap.String("reason", event.Reason),
				zap.Error(err))
			continue
		}
		destroyed++
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamImageOrphaned, w.ConsumerGroup(), ids); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Orphan batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("destroyed", destroyed))
	return len(messages), nil
}

func (w *OrphanImageWorker) destroy(ctx context.Context, publicID string) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.imageHost.Destroy(ctx, publicID); err == nil {
			return nil
		}
		if attempt < w.maxRetries && !w.Sleep(ctx, retryBackoff*time.Duration(attempt)) {
			break
		}
	}
	return err
}
