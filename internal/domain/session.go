package domain

import "time"

// User - владелец аккаунта (поле me в ответе логина)
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResult - ответ бэкенда на логин
type LoginResult struct {
	Me    User   `json:"me"`
	Token string `json:"token"`
}

// AuthSession - сессия пользователя BFF. Токен бэкенда наружу не отдаётся.
type AuthSession struct {
	SessionID string    `json:"sessionId"`
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired - истекла ли сессия к моменту now
func (s *AuthSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// RegisterRequest - данные регистрации, уходят на бэкенд как есть
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}
