package dto

import "github.com/listing-portal/internal/domain"

// ListingsResponse - страница ленты
type ListingsResponse struct {
	Items   []domain.Listing      `json:"items"`
	Total   int                   `json:"total"`
	Filters domain.ListingFilters `json:"filters"`
}

type LocationsResponse struct {
	Items   []domain.LocationNode `json:"items"`
	Total   int                   `json:"total"`
	Version string                `json:"version"`
}

type StreetsResponse struct {
	LocationID int                       `json:"locationId"`
	Groups     []domain.SubDistrictGroup `json:"groups"`
}
