package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/delivery/http/middleware"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/pkg/utils"
	"github.com/listing-portal/internal/usecase"
)

// ListingHandler - лента и карточки объявлений
type ListingHandler struct {
	listingUC *usecase.ListingUseCase
	logger    *zap.Logger
}

func NewListingHandler(listingUC *usecase.ListingUseCase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listingUC: listingUC,
		logger:    logger,
	}
}

// List godoc
// @Summary Лента объявлений
// @Tags Listings
// @Produce json
// @Param search query string false "Поиск по тексту"
// @Param city query string false "Город, all - все" default(all)
// @Param type query int false "Тип недвижимости (0-5)"
// @Param minPrice query number false "Минимальная цена" default(0)
// @Param maxPrice query number false "Максимальная цена" default(1000000)
// @Param sortBy query string false "Сортировка (date-desc, date-asc, price-asc, price-desc)" default(date-desc)
// @Success 200 {object} utils.SuccessResponse{data=dto.ListingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.listingUC.List(c.UserContext(), filters, middleware.RequestLocale(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Mine godoc
// @Summary Мои объявления
// @Tags Listings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ListingsResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/listings/my [get]
func (h *ListingHandler) Mine(c *fiber.Ctx) error {
	session, err := middleware.AuthSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	filters, err := parseFilters(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.listingUC.ListMine(c.UserContext(), session, filters, middleware.RequestLocale(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Get godoc
// @Summary Карточка объявления
// @Tags Listings
// @Produce json
// @Param id path string true "ID объявления"
// @Success 200 {object} utils.SuccessResponse{data=domain.Listing}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/listings/{id} [get]
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	listing, err := h.listingUC.Get(c.UserContext(), c.Params("id"), middleware.RequestLocale(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, listing, nil)
}

// parseFilters - фильтры из query поверх значений по умолчанию
func parseFilters(c *fiber.Ctx) (domain.ListingFilters, error) {
	var patch domain.ListingFiltersPatch

	if v := c.Query("search"); v != "" {
		patch.SearchQuery = &v
	}
	if v := c.Query("city"); v != "" {
		patch.City = &v
	}
	if v := c.Query("sortBy"); v != "" {
		patch.SortBy = &v
	}
	if v := c.Query("type"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.ListingFilters{}, filterError("type")
		}
		t := domain.PropertyType(n)
		patch.Type = &t
	}
	for name, dst := range map[string]**float64{"minPrice": &patch.MinPrice, "maxPrice": &patch.MaxPrice} {
		v := c.Query(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.ListingFilters{}, filterError(name)
		}
		*dst = &f
	}

	return domain.DefaultListingFilters().Merge(patch), nil
}

func filterError(field string) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"field": field, "rule": "numeric"})
}
