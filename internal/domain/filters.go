package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultFilterCity     = "all"
	DefaultFilterMaxPrice = 1000000
	DefaultFilterSort     = "date-desc"
)

// ListingFilters - фильтры ленты объявлений
type ListingFilters struct {
	SearchQuery string        `json:"searchQuery" validate:"max=200"`
	City        string        `json:"city" validate:"max=100"`
	Type        *PropertyType `json:"type,omitempty" validate:"omitempty,gte=0,lte=5"`
	MinPrice    float64       `json:"minPrice" validate:"gte=0"`
	MaxPrice    float64       `json:"maxPrice" validate:"gte=0"`
	SortBy      string        `json:"sortBy" validate:"oneof=date-desc date-asc price-asc price-desc"`
}

// ListingFiltersPatch - частичное обновление фильтров; nil-поля не трогаются
type ListingFiltersPatch struct {
	SearchQuery *string
	City        *string
	Type        *PropertyType
	ClearType   bool
	MinPrice    *float64
	MaxPrice    *float64
	SortBy      *string
}

// DefaultListingFilters - фильтры после сброса
func DefaultListingFilters() ListingFilters {
	return ListingFilters{
		City:     DefaultFilterCity,
		MaxPrice: DefaultFilterMaxPrice,
		SortBy:   DefaultFilterSort,
	}
}

// Merge - применяет патч поверх текущих фильтров и возвращает новое значение
func (f ListingFilters) Merge(p ListingFiltersPatch) ListingFilters {
	if p.SearchQuery != nil {
		f.SearchQuery = *p.SearchQuery
	}
	if p.City != nil {
		f.City = *p.City
	}
	if p.ClearType {
		f.Type = nil
	} else if p.Type != nil {
		t := *p.Type
		f.Type = &t
	}
	if p.MinPrice != nil {
		f.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		f.MaxPrice = *p.MaxPrice
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	return f
}

// Reset - возврат к значениям по умолчанию
func (f ListingFilters) Reset() ListingFilters {
	return DefaultListingFilters()
}

// Query - параметры запроса к бэкенду. Пустой поиск и город "all" не передаются.
func (f ListingFilters) Query() url.Values {
	q := url.Values{}
	if f.SearchQuery != "" {
		q.Set("search", f.SearchQuery)
	}
	if f.City != "" && f.City != DefaultFilterCity {
		q.Set("city", f.City)
	}
	if f.Type != nil {
		q.Set("type", strconv.Itoa(int(*f.Type)))
	}
	q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	q.Set("sort", f.SortBy)
	return q
}

// CacheKey - стабильный ключ кеша для набора фильтров
func (f ListingFilters) CacheKey(scope string) string {
	return fmt.Sprintf("listings:%s:%s", scope, f.Query().Encode())
}
