package dto

// PricePreviewRequest - произвольный ввод для карточки цены
type PricePreviewRequest struct {
	Amount   float64  `json:"amount" validate:"gte=0"`
	Currency string   `json:"currency" validate:"omitempty,oneof=USD GEL"`
	Mode     string   `json:"mode" validate:"omitempty,oneof=total perSqm"`
	Area     *float64 `json:"area" validate:"omitempty,gt=0"`
}

// PricePreview - итог и цена за м² в обеих валютах
type PricePreview struct {
	Rate      float64 `json:"rate"`
	TotalUSD  float64 `json:"totalUsd"`
	TotalGEL  float64 `json:"totalGel"`
	PerSqmUSD float64 `json:"perSqmUsd"`
	PerSqmGEL float64 `json:"perSqmGel"`
}
