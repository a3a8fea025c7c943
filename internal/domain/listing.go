package domain

import "time"

// Listing - объявление в том виде, в каком его отдаёт бэкенд
type Listing struct {
	ID             string         `json:"id"`
	Title          string         `json:"title,omitempty"`
	Price          float64        `json:"price"`
	MonthlyFee     *float64       `json:"monthlyFee,omitempty"`
	Status         int            `json:"status"`
	Type           PropertyType   `json:"type"`
	OwnerID        string         `json:"ownerId"`
	Address        ListingAddress `json:"address"`
	Specifications ListingSpecs   `json:"specifications"`
	Description    Description    `json:"description"`
	IsFeatured     bool           `json:"isFeatured"`
	ViewCount      int            `json:"viewCount"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	PublishedAt    *time.Time     `json:"publishedAt,omitempty"`
	SoldAt         *time.Time     `json:"soldAt,omitempty"`
	Images         []ListingImage `json:"images"`
	CoverURL       string         `json:"coverUrl,omitempty"`
}

type ListingAddress struct {
	Street        string   `json:"street"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Country       string   `json:"country"`
	ZipCode       string   `json:"zipCode"`
	LocationID    *int     `json:"locationId,omitempty"`
	StreetID      *int     `json:"streetId,omitempty"`
	DistrictID    *int     `json:"districtId,omitempty"`
	SubDistrictID *int     `json:"subDistrictId,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// ListingSpecs - характеристики в ответе бэкенда
type ListingSpecs struct {
	Specifications
	ListingType             DealType `json:"listingType"`
	PropertyCharacteristics *int     `json:"propertyCharacteristics,omitempty"`
	FurnitureAndAppliances  *int     `json:"furnitureAndAppliances,omitempty"`
	BuildingParameters      *int     `json:"buldingParameters,omitempty"`
	Badges                  *int     `json:"badges,omitempty"`
}

type ListingImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

// Cover - основное фото: помеченное isPrimary, иначе первое
func (l *Listing) Cover() string {
	for _, img := range l.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(l.Images) > 0 {
		return l.Images[0].URL
	}
	return ""
}

// LocationLabel - улица, если есть, иначе город
func (l *Listing) LocationLabel() string {
	if l.Address.Street != "" {
		return l.Address.Street
	}
	return l.Address.City
}

// CreatedListing - ответ бэкенда на создание объявления
type CreatedListing struct {
	ID string `json:"id"`
}
