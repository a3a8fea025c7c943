package dto

import "github.com/listing-portal/internal/domain"

// CreateFormRequest - открыть новую форму
type CreateFormRequest struct {
	Locale string `json:"locale" validate:"omitempty,oneof=ka en ru"`
}

// FieldsView - видимые и обязательные поля формы
type FieldsView struct {
	Visible  []domain.Field `json:"visible"`
	Required []domain.Field `json:"required"`
}

// FormState - полное состояние формы для клиента
type FormState struct {
	ID             string                               `json:"id"`
	Locale         string                               `json:"locale"`
	Draft          domain.Draft                         `json:"draft"`
	UI             domain.FormUIState                   `json:"ui"`
	Fields         FieldsView                           `json:"fields"`
	Images         []domain.ImageItem                   `json:"images"`
	UploadsPending bool                                 `json:"uploadsPending"`
	Submitting     bool                                 `json:"submitting"`
	StatusOptions  []domain.Option                      `json:"statusOptions"`
	SelectedFlags  map[domain.FlagGroup][]domain.Option `json:"selectedFlags"`
	Price          *PricePreview                        `json:"price,omitempty"`
}

// UpdateFieldsRequest - изменение типа, сделки, числовых полей и описания.
// Значения числовых полей передаются строкой как их ввёл пользователь,
// пустая строка очищает поле.
type UpdateFieldsRequest struct {
	Type        *int              `json:"type" validate:"omitempty,gte=0,lte=5"`
	ListingType *int              `json:"listingType" validate:"omitempty,gte=0,lte=3"`
	Values      map[string]string `json:"values" validate:"omitempty,max=64"`
	Description map[string]string `json:"description" validate:"omitempty,max=3"`
}

type SelectLocationRequest struct {
	LocationID int `json:"locationId" validate:"required"`
}

// SelectStreetRequest - null снимает выбор улицы
type SelectStreetRequest struct {
	StreetID *int `json:"streetId"`
}

type CoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// FlyToRequest - null сбрасывает подсказку
type FlyToRequest struct {
	Target *CoordinatesRequest `json:"target"`
}

type UIRequest struct {
	CityPickerOpen   *bool               `json:"cityPickerOpen"`
	StreetPickerOpen *bool               `json:"streetPickerOpen"`
	CityQuery        *string             `json:"cityQuery" validate:"omitempty,max=100"`
	StreetQuery      *string             `json:"streetQuery" validate:"omitempty,max=100"`
	MapCenter        *CoordinatesRequest `json:"mapCenter"`
}

type ToggleFlagRequest struct {
	Value int `json:"value" validate:"required,gt=0"`
}

type ToggleFlagResponse struct {
	Group    domain.FlagGroup `json:"group"`
	Value    int              `json:"value"`
	Selected []domain.Option  `json:"selected"`
}

// SetPriceRequest - ввод цены; amount null очищает цену
type SetPriceRequest struct {
	Amount   *float64 `json:"amount" validate:"omitempty,gte=0"`
	Currency string   `json:"currency" validate:"omitempty,oneof=USD GEL"`
	Mode     string   `json:"mode" validate:"omitempty,oneof=total perSqm"`
}

// ReorderImagesRequest - один из трёх способов: from/to, activeId/overId или полный порядок
type ReorderImagesRequest struct {
	From     *int     `json:"from" validate:"omitempty,gte=0"`
	To       *int     `json:"to" validate:"omitempty,gte=0"`
	ActiveID string   `json:"activeId"`
	OverID   string   `json:"overId"`
	Order    []string `json:"order"`
}

type CityOptionsResponse struct {
	Items []domain.LocationNode `json:"items"`
	Total int                   `json:"total"`
}

type StreetOptionsResponse struct {
	Groups []domain.SubDistrictGroup `json:"groups"`
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

type SubmitResponse struct {
	ListingID string `json:"listingId"`
	Title     string `json:"title"`
}
