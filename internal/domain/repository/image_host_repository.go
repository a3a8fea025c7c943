package repository

import (
	"context"

	"github.com/listing-portal/internal/domain"
)

// ImageHostRepository - внешний хостинг изображений
type ImageHostRepository interface {
	// Upload загружает файл и возвращает постоянный URL и publicId
	Upload(ctx context.Context, file *domain.ImageFile) (*domain.UploadedImage, error)

	// Destroy удаляет файл по publicId
	Destroy(ctx context.Context, publicID string) error
}
