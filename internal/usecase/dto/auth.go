package dto

import (
	"time"

	"github.com/listing-portal/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// AuthResponse - сессия BFF без токена бэкенда
type AuthResponse struct {
	SessionID string      `json:"sessionId"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
