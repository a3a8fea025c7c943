package usecase

import (
	"github.com/listing-portal/internal/domain"
)

// AssembleInput - всё, что нужно для сборки тела запроса
type AssembleInput struct {
	Draft     domain.Draft
	City      *domain.LocationNode
	Street    *domain.Street
	Hierarchy domain.HierarchyRef
	Images    []domain.ImageRef
}

type AssembleOptions struct {
	Country string
	Locale  string
}

// Assemble собирает тело POST /apartment. Чистая функция: вход не меняется.
// Скрытые для текущих типа и сделки числовые поля уходят как null,
// агрегаты групп флагов копируются как есть.
func Assemble(in AssembleInput, opts AssembleOptions) domain.Payload {
	d := in.Draft
	vis := VisibleFields(d.Type, d.ListingType)

	specs := d.Specs.Clone()
	for _, f := range domain.SpecificationFields {
		if !vis.Visible(f) {
			specs.Clear(f)
		}
	}

	flag := func(g domain.FlagGroup) *int {
		v := d.Flags[g]
		return &v
	}

	address := domain.PayloadAddress{
		LocationID:    copyInt(d.Address.LocationID),
		StreetID:      copyInt(d.Address.StreetID),
		Country:       opts.Country,
		DistrictID:    copyInt(in.Hierarchy.DistrictID),
		SubDistrictID: copyInt(in.Hierarchy.SubDistrictID),
	}
	if in.City != nil {
		address.City = in.City.Title
		address.State = in.City.Group
	}
	if in.Street != nil {
		address.Street = in.Street.StreetTitle
	}
	if d.Address.Coords != nil {
		lat, lng := d.Address.Coords.Lat, d.Address.Coords.Lng
		address.Latitude = &lat
		address.Longitude = &lng
	}

	images := make([]domain.PayloadImage, 0, len(in.Images))
	for i, img := range in.Images {
		images = append(images, domain.PayloadImage{
			URL:          img.URL,
			PublicID:     img.PublicID,
			DisplayOrder: i,
			IsPrimary:    i == 0,
		})
	}

	var price *float64
	if d.Price != nil {
		p := *d.Price
		price = &p
	}

	rooms := 0
	if specs.Rooms != nil {
		rooms = *specs.Rooms
	}
	location := address.Street
	if location == "" {
		location = address.City
	}

	return domain.Payload{
		Title:       BuildTitle(opts.Locale, rooms, d.Type, location),
		Type:        d.Type,
		ListingType: d.ListingType,
		Price:       price,
		Address:     address,
		Specifications: domain.PayloadSpecs{
			Specifications:          specs,
			Type:                    d.Type,
			ListingType:             d.ListingType,
			PropertyCharacteristics: flag(domain.FlagPropertyCharacteristics),
			FurnitureAndAppliances:  flag(domain.FlagFurnitureAndAppliances),
			BuildingParameters:      flag(domain.FlagBuildingParameters),
			Badges:                  flag(domain.FlagBadges),
		},
		Description: d.Description,
		Images:      images,
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
