package main

// @title Listing Portal API
// @version 1.0.0
// @description BFF маркетплейса недвижимости: лента объявлений, каталог локаций и форма создания объявления.
// @description
// @description Основные возможности:
// @description - Лента и карточки объявлений с фильтрами
// @description - Каталог локаций: города, районы, улицы
// @description - Форма объявления с фоновой загрузкой фото и отправкой на бэкенд

// @contact.name API Support

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey session
// @in header
// @name X-Session-ID

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/listing-portal/docs"
	"github.com/listing-portal/internal/config"
	httpDelivery "github.com/listing-portal/internal/delivery/http"
	"github.com/listing-portal/internal/delivery/http/handler"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/infrastructure/backend"
	"github.com/listing-portal/internal/infrastructure/imagehost"
	"github.com/listing-portal/internal/infrastructure/refdata"
	"github.com/listing-portal/internal/pkg/logger"
	"github.com/listing-portal/internal/repository/cache"
	redisRepo "github.com/listing-portal/internal/repository/redis"
	"github.com/listing-portal/internal/usecase"
	"github.com/listing-portal/internal/worker"
	"github.com/listing-portal/internal/worker/janitor"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "listing-portal-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Listing Portal API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Strings("locales", cfg.RefData.Locales),
	)

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 4. Initialize repositories and external clients
	cacheRepo := cache.NewCacheRepository(redisClient)
	sessionRepo := cache.NewSessionRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	backendClient := backend.NewClient(&cfg.Backend, log)
	imageHost := imagehost.NewClient(&cfg.ImageHost, log)
	refSource := refdata.NewSource(&cfg.RefData, log)

	log.Info("Repositories initialized")

	// 5. Initialize use cases
	refsUC := usecase.NewReferenceUseCase(
		refSource,
		cacheRepo,
		cfg.Cache.RefDataCacheTTL,
		cfg.RefData.Locales,
		cfg.RefData.DefaultLocale,
		log,
	)

	// справочники прогреваются заранее; ошибка не фатальна, загрузка повторится по запросу
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	for _, locale := range cfg.RefData.Locales {
		if _, err := refsUC.Catalog(warmCtx, locale); err != nil {
			log.Warn("Failed to warm up location catalog", zap.String("locale", locale), zap.Error(err))
		}
	}
	warmCancel()

	formOpts := usecase.FormOptions{
		PinnedCityIDs:    cfg.Form.PinnedCityIDs,
		CityResultLimit:  cfg.Form.CityResultLimit,
		StreetGroupLimit: cfg.Form.StreetGroupLimit,
		StatusSplitIndex: cfg.Form.StatusSplitIndex,
		MinImages:        cfg.Form.MinImages,
		DefaultCenter:    domain.Coordinates{Lat: cfg.Form.DefaultLat, Lng: cfg.Form.DefaultLng},
	}
	formStore := usecase.NewFormSessionStore(
		formOpts,
		imageHost,
		usecase.NewOrphanPublisher(streamRepo, log),
		cfg.ImageHost.RequestTimeout,
		cfg.Form.SessionIdleTTL,
		log,
	)

	pricingUC := usecase.NewPricingUseCase(cfg.Pricing.GELRate)
	authUC := usecase.NewAuthUseCase(backendClient, sessionRepo, cfg.Auth.SessionTTL, log)
	listingUC := usecase.NewListingUseCase(backendClient, cacheRepo, cfg.Cache.ListingsCacheTTL, log)
	locationUC := usecase.NewLocationUseCase(refsUC, cfg.Form.PinnedCityIDs, cfg.Form.StreetGroupLimit, log)
	formUC := usecase.NewFormUseCase(formStore, refsUC, pricingUC, log)
	submitUC := usecase.NewSubmitUseCase(formStore, refsUC, backendClient, streamRepo, cfg.Form.Country, log)

	log.Info("Use cases initialized")

	// 6. Background workers of the API process
	workerManager := worker.NewWorkerManager(10*time.Second, log)
	workerManager.Register(janitor.NewSessionJanitor(formStore, cfg.Worker.JanitorInterval, log))

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		httpDelivery.Handlers{
			Health:    handler.NewHealthHandler(redisClient, log),
			Auth:      handler.NewAuthHandler(authUC, cfg.Auth.CookieName, cfg.Server.Env == "production", log),
			Reference: handler.NewReferenceHandler(refsUC, locationUC, log),
			Listing:   handler.NewListingHandler(listingUC, log),
			Pricing:   handler.NewPricingHandler(pricingUC),
			Form:      handler.NewFormHandler(formUC, submitUC, log),
		},
		authUC,
		refsUC,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	// открытые формы закрываются, их фото уходят в очередь на удаление
	evicted := formStore.Shutdown(ctx)
	log.Info("Form sessions closed", zap.Int("count", evicted))

	log.Info("Server stopped successfully")
}
