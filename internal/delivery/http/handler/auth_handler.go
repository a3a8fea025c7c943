package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/delivery/http/middleware"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/pkg/utils"
	"github.com/listing-portal/internal/usecase"
	"github.com/listing-portal/internal/usecase/dto"
)

// AuthHandler - вход, регистрация и выход
type AuthHandler struct {
	authUC       *usecase.AuthUseCase
	cookieName   string
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(authUC *usecase.AuthUseCase, cookieName string, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:       authUC,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login godoc
// @Summary Вход
// @Description Проверяет учётные данные на бэкенде, открывает сессию и ставит cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.authUC.Login(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    result.SessionID,
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return utils.SendSuccess(c, result, nil)
}

// Register godoc
// @Summary Регистрация
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "Данные пользователя"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.authUC.Register(c.UserContext(), req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, fiber.Map{"email": req.Email})
}

// Logout godoc
// @Summary Выход
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if id := middleware.SessionID(c, h.cookieName); id != "" {
		if err := h.authUC.Logout(c.UserContext(), id); err != nil {
			return utils.SendError(c, err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		Path:     "/",
	})
	return utils.SendSuccess(c, fiber.Map{"loggedOut": true}, nil)
}

// Me godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, err := middleware.AuthSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, session.User, nil)
}
