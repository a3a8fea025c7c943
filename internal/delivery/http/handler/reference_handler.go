package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/delivery/http/middleware"
	"github.com/listing-portal/internal/pkg/utils"
	"github.com/listing-portal/internal/usecase"
)

// ReferenceHandler - справочники и каталог локаций
type ReferenceHandler struct {
	refs      *usecase.ReferenceUseCase
	locations *usecase.LocationUseCase
	logger    *zap.Logger
}

func NewReferenceHandler(refs *usecase.ReferenceUseCase, locations *usecase.LocationUseCase, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		refs:      refs,
		locations: locations,
		logger:    logger,
	}
}

// Enums godoc
// @Summary Справочники формы
// @Description Статусы, состояния, тип коммерческой недвижимости и варианты групп флагов
// @Tags Reference
// @Produce json
// @Param locale query string false "Язык (ka, en, ru)"
// @Success 200 {object} utils.SuccessResponse{data=domain.EnumCatalog}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/reference/enums [get]
func (h *ReferenceHandler) Enums(c *fiber.Ctx) error {
	locale := middleware.RequestLocale(c)
	enums, err := h.refs.Enums(c.UserContext(), locale)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, enums, &utils.Meta{Locale: locale})
}

// Locations godoc
// @Summary Поиск локаций
// @Description Города и населённые пункты по подстроке: сначала закреплённые города, затем пригороды
// @Tags Reference
// @Produce json
// @Param q query string false "Подстрока названия"
// @Param limit query int false "Максимум результатов" default(50)
// @Param locale query string false "Язык (ka, en, ru)"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationsResponse}
// @Router /api/v1/locations [get]
func (h *ReferenceHandler) Locations(c *fiber.Ctx) error {
	locale := middleware.RequestLocale(c)
	result, err := h.locations.Search(c.UserContext(), locale, c.Query("q"), c.QueryInt("limit", 50))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total, Locale: locale})
}

// Streets godoc
// @Summary Улицы локации
// @Tags Reference
// @Produce json
// @Param id path int true "ID локации"
// @Param q query string false "Подстрока названия улицы"
// @Success 200 {object} utils.SuccessResponse{data=dto.StreetsResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations/{id}/streets [get]
func (h *ReferenceHandler) Streets(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.locations.Streets(c.UserContext(), middleware.RequestLocale(c), id, c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
