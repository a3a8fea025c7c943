package domain

// Payload - тело POST /apartment. Собирается один раз при отправке и не меняется.
type Payload struct {
	Title          string         `json:"title"`
	Type           PropertyType   `json:"type"`
	ListingType    DealType       `json:"listingType"`
	Price          *float64       `json:"price"`
	Address        PayloadAddress `json:"address"`
	Specifications PayloadSpecs   `json:"specifications"`
	Description    Description    `json:"description"`
	Images         []PayloadImage `json:"images"`
}

// PayloadAddress - денормализованный адрес
type PayloadAddress struct {
	LocationID    *int     `json:"locationId"`
	StreetID      *int     `json:"streetId"`
	Street        string   `json:"street"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	ZipCode       string   `json:"zipCode"`
	DistrictID    *int     `json:"districtId"`
	SubDistrictID *int     `json:"subDistrictId"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// PayloadSpecs - характеристики. Скрытые и незаполненные поля уходят как null.
// Ключ buldingParameters повторяет имя поля в API бэкенда.
type PayloadSpecs struct {
	Specifications
	Type                    PropertyType `json:"type"`
	ListingType             DealType     `json:"listingType"`
	PropertyCharacteristics *int         `json:"propertyCharacteristics"`
	FurnitureAndAppliances  *int         `json:"furnitureAndAppliances"`
	BuildingParameters      *int         `json:"buldingParameters"`
	Badges                  *int         `json:"badges"`
}

// PayloadImage - фото в теле запроса
type PayloadImage struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	DisplayOrder int    `json:"displayOrder"`
	IsPrimary    bool   `json:"isPrimary"`
}
