package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
)

// NewOrphanPublisher - обработчик сирот, публикующий их в stream:image:orphaned.
// Удалением на хостинге занимается воркер очистки.
func NewOrphanPublisher(streamRepo repository.StreamRepository, logger *zap.Logger) OrphanHandler {
	return func(ctx context.Context, img domain.UploadedImage, reason string) {
		if img.PublicID == "" {
			return
		}
		event := domain.ImageOrphanedEvent{
			EventID:  uuid.New(),
			PublicID: img.PublicID,
			URL:      img.SecureURL,
			FormID:   FormIDFrom(ctx),
			Reason:   reason,
			At:       time.Now().UTC(),
		}
		if err := streamRepo.PublishToStream(ctx, domain.StreamImageOrphaned, event); err != nil {
			logger.Error("Failed to publish orphaned image",
				zap.String("public_id", img.PublicID),
				zap.String("reason", reason),
				zap.Error(err))
			return
		}
		logger.Debug("Orphaned image published",
			zap.String("public_id", img.PublicID),
			zap.String("reason", reason))
	}
}
