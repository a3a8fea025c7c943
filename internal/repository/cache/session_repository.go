package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
)

type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionRepository - сессии авторизации в Redis, ключ живёт до истечения сессии
func NewSessionRepository(r *Redis) repository.SessionRepository {
	return &sessionRepository{
		client: r.Client(),
		logger: r.logger,
	}
}

func sessionKey(id string) string {
	return keyPrefix + "session:" + id
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.AuthSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(session.SessionID), data, ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.Error(err))
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, sessionID string) (*domain.AuthSession, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Warn("Corrupted session entry, dropping", zap.Error(err))
		_ = r.client.Del(ctx, sessionKey(sessionID)).Err()
		return nil, nil
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
