package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/usecase/dto"
)

const (
	CurrencyUSD = "USD"
	CurrencyGEL = "GEL"

	PriceModeTotal  = "total"
	PriceModePerSqm = "perSqm"
)

// PricingUseCase - пересчёт цены между валютами и режимами ввода.
// В черновике всегда хранится итоговая цена в USD.
type PricingUseCase struct {
	gelRate decimal.Decimal
}

func NewPricingUseCase(gelRate float64) *PricingUseCase {
	return &PricingUseCase{gelRate: decimal.NewFromFloat(gelRate)}
}

// ToUSDTotal - итоговая цена в USD по введённой сумме
func (uc *PricingUseCase) ToUSDTotal(amount float64, currency, mode string, area *float64) (decimal.Decimal, error) {
	value := decimal.NewFromFloat(amount)
	if value.IsNegative() {
		return decimal.Zero, errors.ErrInvalidField.WithDetails(map[string]interface{}{
			"field":  "price",
			"reason": "amount must not be negative",
		})
	}

	switch currency {
	case CurrencyUSD, "":
	case CurrencyGEL:
		value = value.Div(uc.gelRate)
	default:
		return decimal.Zero, errors.ErrInvalidField.WithDetails(map[string]interface{}{
			"field":  "currency",
			"reason": "unsupported currency",
		})
	}

	if mode == PriceModePerSqm {
		if area == nil || *area <= 0 {
			return decimal.Zero, errors.ErrInvalidField.WithDetails(map[string]interface{}{
				"field":  "area",
				"reason": "area is required to price per square meter",
			})
		}
		value = value.Mul(decimal.NewFromFloat(*area))
	}

	return value.Round(2), nil
}

// Preview - все четыре цифры карточки цены для итоговой цены в USD
func (uc *PricingUseCase) Preview(usdTotal float64, area *float64) dto.PricePreview {
	total := decimal.NewFromFloat(usdTotal)
	gel := total.Mul(uc.gelRate)

	preview := dto.PricePreview{
		Rate:     uc.gelRate.InexactFloat64(),
		TotalUSD: total.Round(2).InexactFloat64(),
		TotalGEL: gel.Round(0).InexactFloat64(),
	}
	if area != nil && *area > 0 {
		a := decimal.NewFromFloat(*area)
		preview.PerSqmUSD = total.Div(a).Round(2).InexactFloat64()
		preview.PerSqmGEL = gel.Div(a).Round(2).InexactFloat64()
	}
	return preview
}

// PreviewRequest - предпросмотр для произвольного ввода
func (uc *PricingUseCase) PreviewRequest(req dto.PricePreviewRequest) (*dto.PricePreview, error) {
	usd, err := uc.ToUSDTotal(req.Amount, req.Currency, req.Mode, req.Area)
	if err != nil {
		return nil, err
	}
	preview := uc.Preview(usd.InexactFloat64(), req.Area)
	return &preview, nil
}
