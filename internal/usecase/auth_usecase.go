package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/usecase/dto"
)

// AuthUseCase - вход через бэкенд и сессии BFF в Redis
type AuthUseCase struct {
	gateway    repository.AuthGateway
	sessions   repository.SessionRepository
	sessionTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewAuthUseCase(
	gateway repository.AuthGateway,
	sessions repository.SessionRepository,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		gateway:    gateway,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Login проверяет учётные данные на бэкенде и открывает сессию
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	result, err := uc.gateway.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	session := &domain.AuthSession{
		SessionID: uuid.NewString(),
		User:      result.Me,
		Token:     result.Token,
		ExpiresAt: uc.tokenExpiry(result.Token, now),
	}

	ttl := session.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil, errors.ErrUnauthorized.WithMessage("Backend issued an expired token")
	}
	if err := uc.sessions.Save(ctx, session, ttl); err != nil {
		uc.logger.Error("Failed to save auth session", zap.String("user_id", result.Me.ID), zap.Error(err))
		return nil, errors.ErrCacheError
	}

	uc.logger.Info("User logged in", zap.String("user_id", result.Me.ID))
	return &dto.AuthResponse{SessionID: session.SessionID, User: session.User, ExpiresAt: session.ExpiresAt}, nil
}

// tokenExpiry - exp из JWT бэкенда. Подпись не проверяем: токен проверяет
// сам бэкенд, нам нужен только срок жизни сессии.
func (uc *AuthUseCase) tokenExpiry(token string, now time.Time) time.Time {
	fallback := now.Add(uc.sessionTTL)

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		uc.logger.Debug("Backend token is not a JWT, using default session TTL", zap.Error(err))
		return fallback
	}
	if claims.ExpiresAt == nil {
		return fallback
	}
	return claims.ExpiresAt.Time
}

// Register - регистрация на бэкенде; сессия не открывается
func (uc *AuthUseCase) Register(ctx context.Context, req domain.RegisterRequest) error {
	return uc.gateway.Register(ctx, req)
}

func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		uc.logger.Error("Failed to delete auth session", zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

// Resolve - сессия по id; отсутствующая или истёкшая - ErrUnauthorized
func (uc *AuthUseCase) Resolve(ctx context.Context, sessionID string) (*domain.AuthSession, error) {
	if sessionID == "" {
		return nil, errors.ErrUnauthorized
	}
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		uc.logger.Error("Failed to load auth session", zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if session == nil || session.Expired(uc.now()) {
		return nil, errors.ErrUnauthorized
	}
	return session, nil
}
