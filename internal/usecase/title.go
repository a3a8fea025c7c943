package usecase

import (
	"fmt"

	"github.com/listing-portal/internal/domain"
)

var propertyTypeLabels = map[string]map[domain.PropertyType]string{
	domain.LocaleEn: {
		domain.PropertyApartment:     "Apartment",
		domain.PropertyHouse:         "House",
		domain.PropertySummerCottage: "Summer Cottage",
		domain.PropertyLand:          "Land",
		domain.PropertyCommercial:    "Commercial Space",
		domain.PropertyHotel:         "Hotel",
	},
	domain.LocaleKa: {
		domain.PropertyApartment:     "ბინა",
		domain.PropertyHouse:         "სახლი",
		domain.PropertySummerCottage: "აგარაკი",
		domain.PropertyLand:          "მიწის ნაკვეთი",
		domain.PropertyCommercial:    "კომერციული ფართი",
		domain.PropertyHotel:         "სასტუმრო",
	},
	domain.LocaleRu: {
		domain.PropertyApartment:     "Квартира",
		domain.PropertyHouse:         "Дом",
		domain.PropertySummerCottage: "Дача",
		domain.PropertyLand:          "Земельный участок",
		domain.PropertyCommercial:    "Коммерческая недвижимость",
		domain.PropertyHotel:         "Отель",
	},
}

// PropertyTypeLabel - название типа на языке; неизвестная локаль - английский,
// неизвестный тип - квартира
func PropertyTypeLabel(locale string, t domain.PropertyType) string {
	labels, ok := propertyTypeLabels[locale]
	if !ok {
		labels = propertyTypeLabels[domain.LocaleEn]
	}
	if label, ok := labels[t]; ok {
		return label
	}
	return labels[domain.PropertyApartment]
}

// BuildTitle - заголовок объявления вида "3 Room Apartment in Vake"
func BuildTitle(locale string, rooms int, t domain.PropertyType, location string) string {
	typeName := PropertyTypeLabel(locale, t)
	switch locale {
	case domain.LocaleKa:
		return fmt.Sprintf("%d-ოთახიანი %s, %s", rooms, typeName, location)
	case domain.LocaleRu:
		return fmt.Sprintf("%d-комнатная %s, %s", rooms, typeName, location)
	default:
		return fmt.Sprintf("%d Room %s in %s", rooms, typeName, location)
	}
}

// ListingTitle - заголовок для объявления из ленты
func ListingTitle(locale string, l *domain.Listing) string {
	rooms := 0
	if l.Specifications.Rooms != nil {
		rooms = *l.Specifications.Rooms
	}
	return BuildTitle(locale, rooms, l.Type, l.LocationLabel())
}
