package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestSpecifications_SetGet(t *testing.T) {
	var s Specifications

	require.NoError(t, s.Set(FieldArea, floatPtr(72.5)))
	require.NoError(t, s.Set(FieldRooms, floatPtr(3)))

	assert.Equal(t, 72.5, *s.Area)
	assert.Equal(t, 3, *s.Rooms)
	assert.Equal(t, 3.0, *s.Get(FieldRooms))

	require.NoError(t, s.Set(FieldArea, nil))
	assert.Nil(t, s.Area)
	assert.Nil(t, s.Get(FieldArea))
}

func TestSpecifications_SetRejectsFractionForCounts(t *testing.T) {
	var s Specifications

	err := s.Set(FieldRooms, floatPtr(2.5))
	assert.Error(t, err)
	assert.Nil(t, s.Rooms)
}

func TestSpecifications_SetUnknownField(t *testing.T) {
	var s Specifications
	assert.Error(t, s.Set(Field("garage"), floatPtr(1)))
	assert.False(t, IsSpecification(Field("garage")))
	assert.True(t, IsSpecification(FieldCeilingHeight))
}

func TestDraft_CloneIsDeep(t *testing.T) {
	d := NewDraft()
	d.Price = floatPtr(100000)
	require.NoError(t, d.Specs.Set(FieldArea, floatPtr(50)))
	loc := 1
	d.Address.LocationID = &loc
	d.Flags[FlagBadges] = 4
	d.Images = append(d.Images, ImageRef{URL: "u1", PublicID: "p1", IsPrimary: true})

	cp := d.Clone()
	*cp.Price = 1
	*cp.Specs.Area = 1
	*cp.Address.LocationID = 2
	cp.Flags[FlagBadges] = 0
	cp.Images[0].URL = "changed"

	assert.Equal(t, 100000.0, *d.Price)
	assert.Equal(t, 50.0, *d.Specs.Area)
	assert.Equal(t, 1, *d.Address.LocationID)
	assert.Equal(t, 4, d.Flags[FlagBadges])
	assert.Equal(t, "u1", d.Images[0].URL)
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft()

	assert.Equal(t, PropertyApartment, d.Type)
	assert.Equal(t, DealForSale, d.ListingType)
	assert.Nil(t, d.Address.Coords)
	assert.Equal(t, Description{}, d.Description)
	for _, g := range FlagGroups {
		assert.Equal(t, 0, d.Flags[g])
	}
}
