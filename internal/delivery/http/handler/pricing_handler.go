package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/listing-portal/internal/pkg/utils"
	"github.com/listing-portal/internal/usecase"
	"github.com/listing-portal/internal/usecase/dto"
)

type PricingHandler struct {
	pricingUC *usecase.PricingUseCase
}

func NewPricingHandler(pricingUC *usecase.PricingUseCase) *PricingHandler {
	return &PricingHandler{pricingUC: pricingUC}
}

// Preview godoc
// @Summary Пересчёт цены
// @Description Итог и цена за м² в USD и GEL по фиксированному курсу
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.PricePreviewRequest true "Сумма, валюта и режим ввода"
// @Success 200 {object} utils.SuccessResponse{data=dto.PricePreview}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/pricing/preview [post]
func (h *PricingHandler) Preview(c *fiber.Ctx) error {
	var req dto.PricePreviewRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.pricingUC.PreviewRequest(req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
