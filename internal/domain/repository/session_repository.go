package repository

import (
	"context"
	"time"

	"github.com/listing-portal/internal/domain"
)

// SessionRepository - хранилище сессий авторизации
type SessionRepository interface {
	// Save сохраняет сессию до истечения ttl
	Save(ctx context.Context, session *domain.AuthSession, ttl time.Duration) error

	// Get возвращает сессию; nil, nil если сессии нет
	Get(ctx context.Context, sessionID string) (*domain.AuthSession, error)

	Delete(ctx context.Context, sessionID string) error
}
