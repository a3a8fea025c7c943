package domain

import (
	"fmt"
	"math"
)

// Field - имя поля черновика (совпадает с json-именем)
type Field string

const (
	FieldType        Field = "type"
	FieldListingType Field = "listingType"
	FieldPrice       Field = "price"
	FieldLocation    Field = "locationId"

	FieldArea           Field = "area"
	FieldYardArea       Field = "yardArea"
	FieldKitchenArea    Field = "kitchenArea"
	FieldBalconyArea    Field = "balconyArea"
	FieldVerandaArea    Field = "verandaArea"
	FieldLoggiaArea     Field = "loggiaArea"
	FieldWaitingArea    Field = "waitingArea"
	FieldLivingRoomArea Field = "livingRoomArea"
	FieldStorageArea    Field = "storageArea"
	FieldCeilingHeight  Field = "ceilingHeight"

	FieldRooms        Field = "rooms"
	FieldBedrooms     Field = "bedrooms"
	FieldFloor        Field = "floor"
	FieldTotalFloors  Field = "totalFloors"
	FieldBathrooms    Field = "bathrooms"
	FieldBalconyCount Field = "balconyCount"
	FieldBuildYear    Field = "buildYear"

	FieldCondition        Field = "condition"
	FieldStatus           Field = "status"
	FieldPeriod           Field = "period"
	FieldOccupancy        Field = "occupancy"
	FieldLeasePeriod      Field = "leasePeriod"
	FieldLeaseType        Field = "leaseType"
	FieldProject          Field = "project"
	FieldTypeOfCRE        Field = "typeofCRE"
	FieldParking          Field = "parking"
	FieldHeating          Field = "heating"
	FieldHotWater         Field = "hotWater"
	FieldBuildingMaterial Field = "buildingMaterial"
	FieldDoorWindow       Field = "doorWindow"

	FieldPropertyCharacteristics Field = "propertyCharacteristics"
	FieldFurnitureAndAppliances  Field = "furnitureAndAppliances"
	FieldBuildingParameters      Field = "buildingParameters"
	FieldBadges                  Field = "badges"
)

// FlagGroup - группа мультивыбора, хранимая одним целым числом
type FlagGroup string

const (
	FlagPropertyCharacteristics FlagGroup = "propertyCharacteristics"
	FlagFurnitureAndAppliances  FlagGroup = "furnitureAndAppliances"
	FlagBuildingParameters      FlagGroup = "buildingParameters"
	FlagBadges                  FlagGroup = "badges"
)

// FlagGroups - все группы в порядке формы
var FlagGroups = []FlagGroup{
	FlagPropertyCharacteristics,
	FlagFurnitureAndAppliances,
	FlagBuildingParameters,
	FlagBadges,
}

// Valid - известна ли группа
func (g FlagGroup) Valid() bool {
	for _, known := range FlagGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Field - поле видимости, соответствующее группе
func (g FlagGroup) Field() Field {
	return Field(g)
}

// Specifications - числовые характеристики объекта. Все поля необязательные:
// nil означает "не заполнено" и уходит на бэкенд как null.
type Specifications struct {
	Area           *float64 `json:"area" validate:"omitempty,gt=0,lte=1000000"`
	YardArea       *float64 `json:"yardArea" validate:"omitempty,gte=0,lte=1000000"`
	KitchenArea    *float64 `json:"kitchenArea" validate:"omitempty,gte=0,lte=10000"`
	BalconyArea    *float64 `json:"balconyArea" validate:"omitempty,gte=0,lte=10000"`
	VerandaArea    *float64 `json:"verandaArea" validate:"omitempty,gte=0,lte=10000"`
	LoggiaArea     *float64 `json:"loggiaArea" validate:"omitempty,gte=0,lte=10000"`
	WaitingArea    *float64 `json:"waitingArea" validate:"omitempty,gte=0,lte=100000"`
	LivingRoomArea *float64 `json:"livingRoomArea" validate:"omitempty,gte=0,lte=10000"`
	StorageArea    *float64 `json:"storageArea" validate:"omitempty,gte=0,lte=100000"`
	CeilingHeight  *float64 `json:"ceilingHeight" validate:"omitempty,gt=0,lte=20"`

	Rooms        *int `json:"rooms" validate:"omitempty,gte=1,lte=100"`
	Bedrooms     *int `json:"bedrooms" validate:"omitempty,gte=0,lte=100"`
	Floor        *int `json:"floor" validate:"omitempty,gte=-5,lte=300"`
	TotalFloors  *int `json:"totalFloors" validate:"omitempty,gte=1,lte=300"`
	Bathrooms    *int `json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	BalconyCount *int `json:"balconyCount" validate:"omitempty,gte=0,lte=50"`
	BuildYear    *int `json:"buildYear" validate:"omitempty,gte=1800,lte=2100"`

	Condition        *int `json:"condition" validate:"omitempty,gte=0"`
	Status           *int `json:"status" validate:"omitempty,gte=0"`
	Period           *int `json:"period" validate:"omitempty,oneof=1 2 3 4 5 6 9 12 15 18"`
	Occupancy        *int `json:"occupancy" validate:"omitempty,gte=1,lte=10"`
	LeasePeriod      *int `json:"leasePeriod" validate:"omitempty,gte=1,lte=10"`
	LeaseType        *int `json:"leaseType" validate:"omitempty,oneof=1 2"`
	Project          *int `json:"project" validate:"omitempty,gte=0"`
	TypeOfCRE        *int `json:"typeofCRE" validate:"omitempty,gte=0"`
	Parking          *int `json:"parking" validate:"omitempty,gte=0"`
	Heating          *int `json:"heating" validate:"omitempty,gte=0"`
	HotWater         *int `json:"hotWater" validate:"omitempty,gte=0"`
	BuildingMaterial *int `json:"buildingMaterial" validate:"omitempty,gte=0"`
	DoorWindow       *int `json:"doorWindow" validate:"omitempty,gte=0"`
}

var decimalFields = map[Field]func(*Specifications) **float64{
	FieldArea:           func(s *Specifications) **float64 { return &s.Area },
	FieldYardArea:       func(s *Specifications) **float64 { return &s.YardArea },
	FieldKitchenArea:    func(s *Specifications) **float64 { return &s.KitchenArea },
	FieldBalconyArea:    func(s *Specifications) **float64 { return &s.BalconyArea },
	FieldVerandaArea:    func(s *Specifications) **float64 { return &s.VerandaArea },
	FieldLoggiaArea:     func(s *Specifications) **float64 { return &s.LoggiaArea },
	FieldWaitingArea:    func(s *Specifications) **float64 { return &s.WaitingArea },
	FieldLivingRoomArea: func(s *Specifications) **float64 { return &s.LivingRoomArea },
	FieldStorageArea:    func(s *Specifications) **float64 { return &s.StorageArea },
	FieldCeilingHeight:  func(s *Specifications) **float64 { return &s.CeilingHeight },
}

var integerFields = map[Field]func(*Specifications) **int{
	FieldRooms:            func(s *Specifications) **int { return &s.Rooms },
	FieldBedrooms:         func(s *Specifications) **int { return &s.Bedrooms },
	FieldFloor:            func(s *Specifications) **int { return &s.Floor },
	FieldTotalFloors:      func(s *Specifications) **int { return &s.TotalFloors },
	FieldBathrooms:        func(s *Specifications) **int { return &s.Bathrooms },
	FieldBalconyCount:     func(s *Specifications) **int { return &s.BalconyCount },
	FieldBuildYear:        func(s *Specifications) **int { return &s.BuildYear },
	FieldCondition:        func(s *Specifications) **int { return &s.Condition },
	FieldStatus:           func(s *Specifications) **int { return &s.Status },
	FieldPeriod:           func(s *Specifications) **int { return &s.Period },
	FieldOccupancy:        func(s *Specifications) **int { return &s.Occupancy },
	FieldLeasePeriod:      func(s *Specifications) **int { return &s.LeasePeriod },
	FieldLeaseType:        func(s *Specifications) **int { return &s.LeaseType },
	FieldProject:          func(s *Specifications) **int { return &s.Project },
	FieldTypeOfCRE:        func(s *Specifications) **int { return &s.TypeOfCRE },
	FieldParking:          func(s *Specifications) **int { return &s.Parking },
	FieldHeating:          func(s *Specifications) **int { return &s.Heating },
	FieldHotWater:         func(s *Specifications) **int { return &s.HotWater },
	FieldBuildingMaterial: func(s *Specifications) **int { return &s.BuildingMaterial },
	FieldDoorWindow:       func(s *Specifications) **int { return &s.DoorWindow },
}

// SpecificationFields - все числовые поля характеристик в порядке формы
var SpecificationFields = []Field{
	FieldArea, FieldYardArea, FieldRooms, FieldBedrooms, FieldFloor, FieldTotalFloors,
	FieldCondition, FieldStatus, FieldPeriod, FieldOccupancy, FieldLeasePeriod, FieldLeaseType,
	FieldTypeOfCRE, FieldProject, FieldBathrooms, FieldBalconyCount, FieldKitchenArea,
	FieldBalconyArea, FieldVerandaArea, FieldLoggiaArea, FieldWaitingArea, FieldLivingRoomArea,
	FieldStorageArea, FieldCeilingHeight, FieldBuildYear, FieldParking, FieldHeating,
	FieldHotWater, FieldBuildingMaterial, FieldDoorWindow,
}

// IsSpecification - относится ли поле к числовым характеристикам
func IsSpecification(f Field) bool {
	_, dec := decimalFields[f]
	_, integer := integerFields[f]
	return dec || integer
}

// Get - значение поля как float64; nil если не заполнено или поле неизвестно
func (s *Specifications) Get(f Field) *float64 {
	if ref, ok := decimalFields[f]; ok {
		if v := *ref(s); v != nil {
			cp := *v
			return &cp
		}
		return nil
	}
	if ref, ok := integerFields[f]; ok {
		if v := *ref(s); v != nil {
			fv := float64(*v)
			return &fv
		}
	}
	return nil
}

// Set - запись значения; nil очищает поле. Для целочисленных полей дробное
// значение - ошибка.
func (s *Specifications) Set(f Field, v *float64) error {
	if ref, ok := decimalFields[f]; ok {
		if v == nil {
			*ref(s) = nil
			return nil
		}
		cp := *v
		*ref(s) = &cp
		return nil
	}
	if ref, ok := integerFields[f]; ok {
		if v == nil {
			*ref(s) = nil
			return nil
		}
		if *v != math.Trunc(*v) {
			return fmt.Errorf("field %s expects an integer, got %v", f, *v)
		}
		iv := int(*v)
		*ref(s) = &iv
		return nil
	}
	return fmt.Errorf("unknown specification field %q", f)
}

// Clear - обнуление поля; для неизвестного поля ничего не делает
func (s *Specifications) Clear(f Field) {
	if ref, ok := decimalFields[f]; ok {
		*ref(s) = nil
	}
	if ref, ok := integerFields[f]; ok {
		*ref(s) = nil
	}
}

// Clone - глубокая копия
func (s Specifications) Clone() Specifications {
	cp := s
	for _, ref := range decimalFields {
		if v := *ref(&cp); v != nil {
			c := *v
			*ref(&cp) = &c
		}
	}
	for _, ref := range integerFields {
		*ref(&cp) = cloneInt(*ref(&cp))
	}
	return cp
}

// DraftAddress - выбранный адрес
type DraftAddress struct {
	LocationID *int         `json:"locationId"`
	StreetID   *int         `json:"streetId"`
	Coords     *Coordinates `json:"coords"`
}

// Draft - черновик объявления, которым владеет форма
type Draft struct {
	Type        PropertyType      `json:"type"`
	ListingType DealType          `json:"listingType"`
	Price       *float64          `json:"price" validate:"omitempty,gt=0"`
	Specs       Specifications    `json:"specifications"`
	Flags       map[FlagGroup]int `json:"flags"`
	Description Description       `json:"description"`
	Address     DraftAddress      `json:"address"`
	Images      []ImageRef        `json:"images"`
}

// NewDraft - пустой черновик со значениями по умолчанию
func NewDraft() Draft {
	flags := make(map[FlagGroup]int, len(FlagGroups))
	for _, g := range FlagGroups {
		flags[g] = 0
	}
	return Draft{
		Type:        PropertyApartment,
		ListingType: DealForSale,
		Flags:       flags,
		Images:      []ImageRef{},
	}
}

// Clone - глубокая копия черновика, наружу отдаём только её
func (d Draft) Clone() Draft {
	cp := d
	cp.Specs = d.Specs.Clone()
	if d.Price != nil {
		p := *d.Price
		cp.Price = &p
	}
	cp.Flags = make(map[FlagGroup]int, len(d.Flags))
	for g, v := range d.Flags {
		cp.Flags[g] = v
	}
	cp.Address = DraftAddress{
		LocationID: cloneInt(d.Address.LocationID),
		StreetID:   cloneInt(d.Address.StreetID),
	}
	if d.Address.Coords != nil {
		c := *d.Address.Coords
		cp.Address.Coords = &c
	}
	cp.Images = make([]ImageRef, len(d.Images))
	copy(cp.Images, d.Images)
	return cp
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// FormUIState - эфемерное состояние интерфейса формы, в черновик не входит
type FormUIState struct {
	CityPickerOpen   bool         `json:"cityPickerOpen"`
	StreetPickerOpen bool         `json:"streetPickerOpen"`
	CityQuery        string       `json:"cityQuery"`
	StreetQuery      string       `json:"streetQuery"`
	FlyTo            *Coordinates `json:"flyTo"`
	MapCenter        Coordinates  `json:"mapCenter"`
}
