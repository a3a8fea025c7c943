package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/usecase"
)

func TestVisibleFields_ApartmentForSale(t *testing.T) {
	set := usecase.VisibleFields(domain.PropertyApartment, domain.DealForSale)

	for _, f := range []domain.Field{domain.FieldLocation, domain.FieldPrice, domain.FieldArea, domain.FieldRooms, domain.FieldFloor, domain.FieldBadges} {
		assert.True(t, set.Visible(f), "field %s should be visible", f)
	}
	for _, f := range []domain.Field{domain.FieldYardArea, domain.FieldTypeOfCRE, domain.FieldWaitingArea, domain.FieldPeriod, domain.FieldOccupancy, domain.FieldLeasePeriod, domain.FieldLeaseType} {
		assert.False(t, set.Visible(f), "field %s should be hidden", f)
	}
}

func TestVisibleFields_TypeAdditions(t *testing.T) {
	house := usecase.VisibleFields(domain.PropertyHouse, domain.DealForSale)
	assert.True(t, house.Visible(domain.FieldYardArea))

	cottage := usecase.VisibleFields(domain.PropertySummerCottage, domain.DealForSale)
	assert.True(t, cottage.Visible(domain.FieldYardArea))

	commercial := usecase.VisibleFields(domain.PropertyCommercial, domain.DealForSale)
	assert.True(t, commercial.Visible(domain.FieldTypeOfCRE))
	assert.True(t, commercial.Visible(domain.FieldWaitingArea))
	assert.False(t, commercial.Visible(domain.FieldRooms))
	assert.False(t, commercial.Visible(domain.FieldBedrooms))
	assert.True(t, commercial.Required(domain.FieldTypeOfCRE))
}

func TestVisibleFields_DealAdditions(t *testing.T) {
	rent := usecase.VisibleFields(domain.PropertyApartment, domain.DealForRent)
	assert.True(t, rent.Visible(domain.FieldPeriod))
	assert.True(t, rent.Required(domain.FieldPeriod))

	daily := usecase.VisibleFields(domain.PropertyApartment, domain.DealDailyRent)
	assert.True(t, daily.Visible(domain.FieldOccupancy))
	assert.False(t, daily.Visible(domain.FieldPeriod))

	lease := usecase.VisibleFields(domain.PropertyApartment, domain.DealLeaseholdMortgage)
	assert.True(t, lease.Visible(domain.FieldLeasePeriod))
	assert.True(t, lease.Visible(domain.FieldLeaseType))
}

func TestVisibleFields_LandHidesBuildingFields(t *testing.T) {
	set := usecase.VisibleFields(domain.PropertyLand, domain.DealForSale)

	for _, f := range []domain.Field{domain.FieldFloor, domain.FieldTotalFloors, domain.FieldCondition, domain.FieldRooms, domain.FieldBedrooms, domain.FieldHeating, domain.FieldBuildingParameters, domain.FieldFurnitureAndAppliances} {
		assert.False(t, set.Visible(f), "field %s should be hidden for land", f)
		assert.False(t, set.Required(f), "hidden field %s cannot be required", f)
	}
	assert.True(t, set.Visible(domain.FieldArea))
	assert.True(t, set.Visible(domain.FieldStatus))
	assert.True(t, set.Visible(domain.FieldParking))
	assert.True(t, set.Visible(domain.FieldPropertyCharacteristics))
	assert.True(t, set.Visible(domain.FieldBadges))
}

func TestVisibleFields_LeaseholdHidesAfterTypeAdditions(t *testing.T) {
	// yardArea добавлен типом дома, но залоговая аренда его скрывает
	set := usecase.VisibleFields(domain.PropertyHouse, domain.DealLeaseholdMortgage)
	assert.False(t, set.Visible(domain.FieldYardArea))
	assert.False(t, set.Visible(domain.FieldRooms))
	assert.False(t, set.Visible(domain.FieldKitchenArea))
	assert.True(t, set.Visible(domain.FieldLeaseType))

	commercial := usecase.VisibleFields(domain.PropertyCommercial, domain.DealLeaseholdMortgage)
	assert.False(t, commercial.Visible(domain.FieldWaitingArea))
	assert.True(t, commercial.Visible(domain.FieldTypeOfCRE))
}

func TestVisibleFields_RequiredIsSubsetOfVisible(t *testing.T) {
	for pt := domain.PropertyApartment; pt <= domain.PropertyHotel; pt++ {
		for dt := domain.DealForSale; dt <= domain.DealLeaseholdMortgage; dt++ {
			set := usecase.VisibleFields(pt, dt)
			for _, f := range set.RequiredFields() {
				assert.True(t, set.Visible(f), "type=%d deal=%d: required field %s not visible", pt, dt, f)
			}
			assert.True(t, set.Required(domain.FieldLocation))
			assert.True(t, set.Required(domain.FieldPrice))
		}
	}
}

func TestVisibleFields_Deterministic(t *testing.T) {
	a := usecase.VisibleFields(domain.PropertyHotel, domain.DealDailyRent)
	b := usecase.VisibleFields(domain.PropertyHotel, domain.DealDailyRent)
	assert.Equal(t, a.Fields(), b.Fields())
	assert.Equal(t, a.RequiredFields(), b.RequiredFields())
}

func TestFieldVisibilitySet_MarshalJSON(t *testing.T) {
	set := usecase.VisibleFields(domain.PropertyLand, domain.DealForSale)

	data, err := json.Marshal(set)
	require.NoError(t, err)

	var out struct {
		Visible  []string `json:"visible"`
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "locationId", out.Visible[0])
	assert.Equal(t, "price", out.Visible[1])
	assert.Contains(t, out.Required, "area")
	assert.NotContains(t, out.Required, "rooms")
}

func TestStatusOptions(t *testing.T) {
	statuses := testEnums().Statuses

	apartment := usecase.StatusOptions(domain.PropertyApartment, statuses, 3)
	assert.Equal(t, []int{1, 2, 3}, optionIDs(apartment))

	land := usecase.StatusOptions(domain.PropertyLand, statuses, 3)
	assert.Equal(t, []int{4, 5}, optionIDs(land))

	// индекс раздела вне диапазона не паникует
	assert.Len(t, usecase.StatusOptions(domain.PropertyHouse, statuses, 99), 5)
	assert.Empty(t, usecase.StatusOptions(domain.PropertyHouse, statuses, -1))
}

func optionIDs(opts []domain.Option) []int {
	ids := make([]int, 0, len(opts))
	for _, o := range opts {
		ids = append(ids, o.ID)
	}
	return ids
}
