package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/usecase/dto"
)

// LocationUseCase - поиск по каталогу локаций вне формы
type LocationUseCase struct {
	refs        *ReferenceUseCase
	pinnedIDs   []int
	streetLimit int
	logger      *zap.Logger
}

func NewLocationUseCase(refs *ReferenceUseCase, pinnedIDs []int, streetLimit int, logger *zap.Logger) *LocationUseCase {
	return &LocationUseCase{
		refs:        refs,
		pinnedIDs:   pinnedIDs,
		streetLimit: streetLimit,
		logger:      logger,
	}
}

// Search - города и населённые пункты по подстроке; limit <= 0 без ограничения
func (uc *LocationUseCase) Search(ctx context.Context, locale, query string, limit int) (*dto.LocationsResponse, error) {
	catalog, err := uc.refs.Catalog(ctx, locale)
	if err != nil {
		return nil, err
	}

	ranked := FilterAndRank(catalog.Nodes, query, uc.pinnedIDs)
	total := len(ranked)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return &dto.LocationsResponse{
		Items:   ranked,
		Total:   total,
		Version: catalog.Version,
	}, nil
}

// Streets - улицы города по микрорайонам
func (uc *LocationUseCase) Streets(ctx context.Context, locale string, locationID int, query string) (*dto.StreetsResponse, error) {
	catalog, err := uc.refs.Catalog(ctx, locale)
	if err != nil {
		return nil, err
	}

	node, ok := catalog.ByID(locationID)
	if !ok {
		return nil, errors.ErrLocationNotFound.WithDetails(map[string]interface{}{"locationId": locationID})
	}

	return &dto.StreetsResponse{
		LocationID: locationID,
		Groups:     FilterStreets(StreetsUnder(node), query, uc.streetLimit),
	}, nil
}
