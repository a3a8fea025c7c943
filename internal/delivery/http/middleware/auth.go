package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/pkg/utils"
)

// SessionHeader - альтернатива cookie для клиентов без cookie
const SessionHeader = "X-Session-ID"

const authLocalsKey = "auth"

// SessionResolver - поиск сессии пользователя по идентификатору
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.AuthSession, error)
}

// SessionID - идентификатор сессии из cookie или заголовка
func SessionID(c *fiber.Ctx, cookieName string) string {
	if id := c.Cookies(cookieName); id != "" {
		return id
	}
	return c.Get(SessionHeader)
}

// RequireAuth пропускает только запросы с действующей сессией
func RequireAuth(resolver SessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := resolver.Resolve(c.UserContext(), SessionID(c, cookieName))
		if err != nil {
			return utils.SendError(c, err)
		}
		c.Locals(authLocalsKey, session)
		return c.Next()
	}
}

// AuthSession - сессия, сохранённая RequireAuth
func AuthSession(c *fiber.Ctx) (*domain.AuthSession, error) {
	session, ok := c.Locals(authLocalsKey).(*domain.AuthSession)
	if !ok || session == nil {
		return nil, errors.ErrUnauthorized
	}
	return session, nil
}
