package domain

// EnumCatalog - справочник перечислений одной локали
type EnumCatalog struct {
	PropertyTypes           []Option `json:"propertyTypes"`
	DealTypes               []Option `json:"dealTypes"`
	Conditions              []Option `json:"conditions"`
	Statuses                []Option `json:"statuses"`
	Projects                []Option `json:"projects"`
	CommercialTypes         []Option `json:"commercialTypes"`
	LeaseTypes              []Option `json:"leaseTypes"`
	Parking                 []Option `json:"parking"`
	Heating                 []Option `json:"heating"`
	HotWater                []Option `json:"hotWater"`
	BuildingMaterials       []Option `json:"buildingMaterials"`
	DoorWindows             []Option `json:"doorWindows"`
	PropertyCharacteristics []Option `json:"propertyCharacteristics"`
	FurnitureAndAppliances  []Option `json:"furnitureAndAppliances"`
	BuildingParameters      []Option `json:"buildingParameters"`
	Badges                  []Option `json:"badges"`
}

// FlagOptions - варианты группы флагов; id варианта - значение бита
func (c *EnumCatalog) FlagOptions(g FlagGroup) []Option {
	switch g {
	case FlagPropertyCharacteristics:
		return c.PropertyCharacteristics
	case FlagFurnitureAndAppliances:
		return c.FurnitureAndAppliances
	case FlagBuildingParameters:
		return c.BuildingParameters
	case FlagBadges:
		return c.Badges
	}
	return nil
}

// OptionName - название варианта по id, пустая строка если не найден
func OptionName(options []Option, id int) string {
	for _, o := range options {
		if o.ID == id {
			return o.Name
		}
	}
	return ""
}

// ReferenceKind - вид справочного документа
type ReferenceKind string

const (
	ReferenceLocations ReferenceKind = "locations"
	ReferenceEnums     ReferenceKind = "enums"
)
