package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/pkg/errors"
)

type refKey struct {
	kind   domain.ReferenceKind
	locale string
}

type refEntry struct {
	version   string
	value     interface{}
	checkedAt time.Time
}

// ReferenceUseCase - справочники локаций и перечислений по локалям.
// Каталог перестраивается только при смене версии документа.
type ReferenceUseCase struct {
	source        repository.ReferenceSource
	cacheRepo     repository.CacheRepository
	cacheTTL      time.Duration
	locales       []string
	defaultLocale string
	logger        *zap.Logger

	mu      sync.RWMutex
	entries map[refKey]*refEntry
	now     func() time.Time
}

func NewReferenceUseCase(
	source repository.ReferenceSource,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	locales []string,
	defaultLocale string,
	logger *zap.Logger,
) *ReferenceUseCase {
	return &ReferenceUseCase{
		source:        source,
		cacheRepo:     cacheRepo,
		cacheTTL:      cacheTTL,
		locales:       locales,
		defaultLocale: defaultLocale,
		logger:        logger,
		entries:       make(map[refKey]*refEntry),
		now:           time.Now,
	}
}

// ResolveLocale - пустая локаль заменяется локалью по умолчанию
func (uc *ReferenceUseCase) ResolveLocale(locale string) (string, error) {
	if locale == "" {
		return uc.defaultLocale, nil
	}
	for _, l := range uc.locales {
		if l == locale {
			return locale, nil
		}
	}
	return "", errors.ErrUnsupportedLocale.WithDetails(map[string]interface{}{"locale": locale})
}

func (uc *ReferenceUseCase) DefaultLocale() string {
	return uc.defaultLocale
}

// Catalog - каталог локаций для локали
func (uc *ReferenceUseCase) Catalog(ctx context.Context, locale string) (*Catalog, error) {
	v, err := uc.load(ctx, domain.ReferenceLocations, locale, func(raw []byte, version string) (interface{}, error) {
		var dataset domain.LocationDataset
		if err := json.Unmarshal(raw, &dataset); err != nil {
			return nil, fmt.Errorf("decode locations: %w", err)
		}
		return NewCatalog(locale, version, BuildCatalog(&dataset))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

// Enums - справочник перечислений для локали
func (uc *ReferenceUseCase) Enums(ctx context.Context, locale string) (*domain.EnumCatalog, error) {
	v, err := uc.load(ctx, domain.ReferenceEnums, locale, func(raw []byte, _ string) (interface{}, error) {
		var enums domain.EnumCatalog
		if err := json.Unmarshal(raw, &enums); err != nil {
			return nil, fmt.Errorf("decode enums: %w", err)
		}
		return &enums, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.EnumCatalog), nil
}

func (uc *ReferenceUseCase) load(
	ctx context.Context,
	kind domain.ReferenceKind,
	locale string,
	build func(raw []byte, version string) (interface{}, error),
) (interface{}, error) {
	locale, err := uc.ResolveLocale(locale)
	if err != nil {
		return nil, err
	}
	key := refKey{kind: kind, locale: locale}

	uc.mu.RLock()
	entry := uc.entries[key]
	uc.mu.RUnlock()
	if entry != nil && uc.now().Sub(entry.checkedAt) < uc.cacheTTL {
		return entry.value, nil
	}

	raw, err := uc.fetchRaw(ctx, key)
	if err != nil {
		if entry != nil {
			uc.logger.Warn("Reference data refresh failed, serving stale copy",
				zap.String("kind", string(kind)),
				zap.String("locale", locale),
				zap.Error(err))
			return entry.value, nil
		}
		uc.logger.Error("Failed to load reference data",
			zap.String("kind", string(kind)),
			zap.String("locale", locale),
			zap.Error(err))
		return nil, errors.ErrReferenceData
	}

	version := checksum(raw)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if current := uc.entries[key]; current != nil && current.version == version {
		current.checkedAt = uc.now()
		return current.value, nil
	}

	value, err := build(raw, version)
	if err != nil {
		uc.logger.Error("Invalid reference data",
			zap.String("kind", string(kind)),
			zap.String("locale", locale),
			zap.Error(err))
		if entry != nil {
			return entry.value, nil
		}
		return nil, errors.ErrReferenceData
	}

	uc.entries[key] = &refEntry{version: version, value: value, checkedAt: uc.now()}
	uc.logger.Info("Reference data loaded",
		zap.String("kind", string(kind)),
		zap.String("locale", locale),
		zap.String("version", version))
	return value, nil
}

// fetchRaw - сначала Redis, потом источник
func (uc *ReferenceUseCase) fetchRaw(ctx context.Context, key refKey) ([]byte, error) {
	cacheKey := fmt.Sprintf("refdata:%s:%s", key.kind, key.locale)

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.Get(ctx, cacheKey)
		if err != nil {
			uc.logger.Warn("Failed to read reference data from cache", zap.String("key", cacheKey), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	raw, err := uc.source.Fetch(ctx, key.kind, key.locale)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", key.kind, key.locale, err)
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, raw, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache reference data", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return raw, nil
}

func checksum(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
