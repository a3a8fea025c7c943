package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/pkg/validator"
	"github.com/listing-portal/internal/usecase/dto"
)

// ListingUseCase - лента, мои объявления и карточка объявления
type ListingUseCase struct {
	listings  repository.ListingRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewListingUseCase(
	listings repository.ListingRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ListingUseCase {
	return &ListingUseCase{
		listings:  listings,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// List - публичная лента с фильтрами
func (uc *ListingUseCase) List(ctx context.Context, filters domain.ListingFilters, locale string) (*dto.ListingsResponse, error) {
	if err := validator.Validate(filters); err != nil {
		return nil, err
	}

	var items []domain.Listing
	key := filters.CacheKey("all")
	if !uc.getCached(ctx, key, &items) {
		fetched, err := uc.listings.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		items = fetched
		uc.setCached(ctx, key, items)
	}

	return uc.response(items, filters, locale), nil
}

// ListMine - объявления текущего пользователя. Не кешируются: после отправки
// формы новое объявление должно появиться сразу.
func (uc *ListingUseCase) ListMine(ctx context.Context, auth *domain.AuthSession, filters domain.ListingFilters, locale string) (*dto.ListingsResponse, error) {
	if err := validator.Validate(filters); err != nil {
		return nil, err
	}
	items, err := uc.listings.ListMine(ctx, auth.Token, filters)
	if err != nil {
		return nil, err
	}
	return uc.response(items, filters, locale), nil
}

// Get - карточка объявления
func (uc *ListingUseCase) Get(ctx context.Context, id, locale string) (*domain.Listing, error) {
	var listing domain.Listing
	key := "listing:" + id
	if !uc.getCached(ctx, key, &listing) {
		fetched, err := uc.listings.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		listing = *fetched
		uc.setCached(ctx, key, listing)
	}

	decorate(&listing, locale)
	return &listing, nil
}

func (uc *ListingUseCase) response(items []domain.Listing, filters domain.ListingFilters, locale string) *dto.ListingsResponse {
	if items == nil {
		items = []domain.Listing{}
	}
	for i := range items {
		decorate(&items[i], locale)
	}
	return &dto.ListingsResponse{Items: items, Total: len(items), Filters: filters}
}

// decorate - локализованный заголовок и обложка
func decorate(l *domain.Listing, locale string) {
	l.Title = ListingTitle(locale, l)
	l.CoverURL = l.Cover()
}

func (uc *ListingUseCase) getCached(ctx context.Context, key string, dst interface{}) bool {
	if uc.cacheRepo == nil {
		return false
	}
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Failed to read listings cache", zap.String("key", key), zap.Error(err))
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		uc.logger.Warn("Corrupted listings cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (uc *ListingUseCase) setCached(ctx context.Context, key string, value interface{}) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to write listings cache", zap.String("key", key), zap.Error(err))
	}
}
