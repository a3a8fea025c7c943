package usecase

import (
	"encoding/json"

	"github.com/listing-portal/internal/domain"
)

// FormFields - порядок полей формы; в этом порядке ищется первое невалидное поле
var FormFields = append(
	append([]domain.Field{domain.FieldLocation, domain.FieldPrice}, domain.SpecificationFields...),
	domain.FieldPropertyCharacteristics,
	domain.FieldFurnitureAndAppliances,
	domain.FieldBuildingParameters,
	domain.FieldBadges,
)

// FieldVisibilitySet - видимые и обязательные поля для пары (тип, сделка)
type FieldVisibilitySet struct {
	visible  map[domain.Field]bool
	required map[domain.Field]bool
}

func (s FieldVisibilitySet) Visible(f domain.Field) bool {
	return s.visible[f]
}

// Required - поле обязательно; скрытое поле никогда не обязательно
func (s FieldVisibilitySet) Required(f domain.Field) bool {
	return s.visible[f] && s.required[f]
}

// Fields - видимые поля в порядке формы
func (s FieldVisibilitySet) Fields() []domain.Field {
	return s.filter(s.Visible)
}

// RequiredFields - обязательные поля в порядке формы
func (s FieldVisibilitySet) RequiredFields() []domain.Field {
	return s.filter(s.Required)
}

func (s FieldVisibilitySet) filter(pred func(domain.Field) bool) []domain.Field {
	result := make([]domain.Field, 0, len(FormFields))
	for _, f := range FormFields {
		if pred(f) {
			result = append(result, f)
		}
	}
	return result
}

func (s FieldVisibilitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Visible  []domain.Field `json:"visible"`
		Required []domain.Field `json:"required"`
	}{
		Visible:  s.Fields(),
		Required: s.RequiredFields(),
	})
}

var baseVisibleFields = []domain.Field{
	domain.FieldArea, domain.FieldRooms, domain.FieldBedrooms, domain.FieldFloor,
	domain.FieldTotalFloors, domain.FieldCondition, domain.FieldStatus, domain.FieldBathrooms,
	domain.FieldBalconyCount, domain.FieldKitchenArea, domain.FieldBalconyArea,
	domain.FieldVerandaArea, domain.FieldLoggiaArea, domain.FieldLivingRoomArea,
	domain.FieldStorageArea, domain.FieldCeilingHeight, domain.FieldBuildYear,
	domain.FieldProject, domain.FieldParking, domain.FieldHeating, domain.FieldHotWater,
	domain.FieldBuildingMaterial, domain.FieldDoorWindow,
	domain.FieldPropertyCharacteristics, domain.FieldFurnitureAndAppliances,
	domain.FieldBuildingParameters, domain.FieldBadges,
}

// Поля, скрываемые для участка земли
var landHiddenFields = []domain.Field{
	domain.FieldFloor, domain.FieldTotalFloors, domain.FieldCondition, domain.FieldRooms,
	domain.FieldBedrooms, domain.FieldBathrooms, domain.FieldBalconyCount,
	domain.FieldKitchenArea, domain.FieldBalconyArea, domain.FieldVerandaArea,
	domain.FieldLoggiaArea, domain.FieldLivingRoomArea, domain.FieldStorageArea,
	domain.FieldCeilingHeight, domain.FieldBuildYear, domain.FieldProject,
	domain.FieldHeating, domain.FieldHotWater, domain.FieldBuildingMaterial,
	domain.FieldDoorWindow, domain.FieldFurnitureAndAppliances, domain.FieldBuildingParameters,
}

// Поля, скрываемые для залоговой аренды
var leaseholdHiddenFields = []domain.Field{
	domain.FieldRooms, domain.FieldBedrooms, domain.FieldKitchenArea, domain.FieldBalconyArea,
	domain.FieldVerandaArea, domain.FieldLoggiaArea, domain.FieldWaitingArea,
	domain.FieldLivingRoomArea, domain.FieldStorageArea, domain.FieldYardArea,
}

// Обязательны всегда, пока видимы
var alwaysRequiredFields = []domain.Field{
	domain.FieldLocation, domain.FieldPrice, domain.FieldArea, domain.FieldStatus,
	domain.FieldRooms, domain.FieldBedrooms, domain.FieldTotalFloors, domain.FieldCondition,
	domain.FieldPeriod, domain.FieldOccupancy, domain.FieldLeasePeriod, domain.FieldLeaseType,
	domain.FieldTypeOfCRE,
}

// VisibleFields - набор полей формы для типа недвижимости и типа сделки.
// Чистая функция: одинаковые аргументы дают одинаковый набор.
func VisibleFields(t domain.PropertyType, lt domain.DealType) FieldVisibilitySet {
	visible := map[domain.Field]bool{
		domain.FieldLocation: true,
		domain.FieldPrice:    true,
	}
	show := func(fields ...domain.Field) {
		for _, f := range fields {
			visible[f] = true
		}
	}
	hide := func(fields ...domain.Field) {
		for _, f := range fields {
			delete(visible, f)
		}
	}

	show(baseVisibleFields...)

	switch t {
	case domain.PropertyHouse, domain.PropertySummerCottage:
		show(domain.FieldYardArea)
	case domain.PropertyCommercial:
		show(domain.FieldTypeOfCRE, domain.FieldWaitingArea)
	}

	switch lt {
	case domain.DealForRent:
		show(domain.FieldPeriod)
	case domain.DealDailyRent:
		show(domain.FieldOccupancy)
	case domain.DealLeaseholdMortgage:
		show(domain.FieldLeasePeriod, domain.FieldLeaseType)
	}

	// скрытия применяются после добавлений и всегда побеждают
	switch t {
	case domain.PropertyLand:
		hide(landHiddenFields...)
	case domain.PropertyCommercial:
		hide(domain.FieldRooms, domain.FieldBedrooms)
	}
	if lt == domain.DealLeaseholdMortgage {
		hide(leaseholdHiddenFields...)
	}

	required := make(map[domain.Field]bool, len(alwaysRequiredFields))
	for _, f := range alwaysRequiredFields {
		required[f] = true
	}

	return FieldVisibilitySet{visible: visible, required: required}
}

// StatusOptions - статусы для типа недвижимости. Земля берёт хвост списка
// начиная с split, остальные типы - голову до split.
func StatusOptions(t domain.PropertyType, statuses []domain.Option, split int) []domain.Option {
	if split < 0 {
		split = 0
	}
	if split > len(statuses) {
		split = len(statuses)
	}
	if usesBackStatuses(t) {
		return statuses[split:]
	}
	return statuses[:split]
}
