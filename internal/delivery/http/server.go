package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/config"
	"github.com/listing-portal/internal/delivery/http/handler"
	"github.com/listing-portal/internal/delivery/http/middleware"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/pkg/utils"
)

// bodyLimit - запас под пачку фото в одном multipart запросе
const bodyLimit = 64 * 1024 * 1024

// Handlers - обработчики, которые монтирует сервер
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Reference *handler.ReferenceHandler
	Listing   *handler.ListingHandler
	Pricing   *handler.PricingHandler
	Form      *handler.FormHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	sessions middleware.SessionResolver
	locales  middleware.LocaleResolver
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	sessions middleware.SessionResolver,
	locales middleware.LocaleResolver,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Listing Portal",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		sessions: sessions,
		locales:  locales,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1", middleware.Locale(s.locales))
	auth := middleware.RequireAuth(s.sessions, s.config.Auth.CookieName)
	h := s.handlers

	api.Get("/health", h.Health.Health)

	// Auth
	api.Post("/auth/login", h.Auth.Login)
	api.Post("/auth/register", h.Auth.Register)
	api.Post("/auth/logout", h.Auth.Logout)
	api.Get("/auth/me", auth, h.Auth.Me)

	// Справочники
	api.Get("/reference/enums", h.Reference.Enums)
	api.Get("/locations", h.Reference.Locations)
	api.Get("/locations/:id/streets", h.Reference.Streets)

	// Объявления; /listings/my регистрируется раньше /listings/:id
	api.Get("/listings", h.Listing.List)
	api.Get("/listings/my", auth, h.Listing.Mine)
	api.Get("/listings/:id", h.Listing.Get)
	api.Post("/pricing/preview", h.Pricing.Preview)

	// Форма создания объявления
	forms := api.Group("/forms", auth)
	forms.Post("/", h.Form.Create)
	forms.Get("/:id", h.Form.Get)
	forms.Delete("/:id", h.Form.Discard)
	forms.Patch("/:id/fields", h.Form.UpdateFields)
	forms.Put("/:id/location", h.Form.SelectLocation)
	forms.Put("/:id/street", h.Form.SelectStreet)
	forms.Put("/:id/coordinates", h.Form.SetCoordinates)
	forms.Put("/:id/fly-to", h.Form.SetFlyTo)
	forms.Put("/:id/ui", h.Form.SetUI)
	forms.Post("/:id/flags/:group/toggle", h.Form.ToggleFlag)
	forms.Get("/:id/cities", h.Form.CityOptions)
	forms.Get("/:id/streets", h.Form.StreetOptions)
	forms.Put("/:id/price", h.Form.SetPrice)
	forms.Post("/:id/images", h.Form.AddImages)
	forms.Put("/:id/images/order", h.Form.ReorderImages)
	forms.Delete("/:id/images/:imageId", h.Form.RemoveImage)
	forms.Get("/:id/notifications", h.Form.Notifications)
	forms.Post("/:id/submit", h.Form.Submit)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 роутера, лимит тела)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return utils.SendError(c, err)
		}

		return utils.SendError(c, errors.New("HTTP_ERROR", err.Error(), code))
	}
}
