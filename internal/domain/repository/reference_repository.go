package repository

import (
	"context"

	"github.com/listing-portal/internal/domain"
)

// ReferenceSource - источник справочных JSON-документов
type ReferenceSource interface {
	// Fetch возвращает сырой документ вида kind для локали
	Fetch(ctx context.Context, kind domain.ReferenceKind, locale string) ([]byte, error)
}
