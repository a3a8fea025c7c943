package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/usecase"
)

func TestBuildCatalog(t *testing.T) {
	nodes := usecase.BuildCatalog(testDataset())

	assert.Equal(t, []int{95, 96, 97, 2, 500, 501, 600, 601}, nodeIDs(nodes))

	tbilisi := nodes[0]
	assert.Equal(t, domain.LocationKindCity, tbilisi.Kind)
	assert.Equal(t, domain.MainCitiesGroup, tbilisi.Group)
	assert.Len(t, tbilisi.Districts, 2)

	tskneti := nodes[4]
	assert.Equal(t, domain.LocationKindMunicipality, tskneti.Kind)
	assert.Equal(t, "Tbilisi Suburbs", tskneti.Group)
	assert.True(t, tskneti.IsSuburb)

	assert.False(t, nodes[6].IsSuburb)
	assert.Nil(t, usecase.BuildCatalog(nil))
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	_, err := usecase.NewCatalog("en", "v1", []domain.LocationNode{
		{ID: 1, Title: "A"},
		{ID: 1, Title: "B"},
	})
	assert.Error(t, err)
}

func TestCatalog_ByID(t *testing.T) {
	catalog := testCatalog(t)

	node, ok := catalog.ByID(96)
	require.True(t, ok)
	assert.Equal(t, "Batumi", node.Title)

	_, ok = catalog.ByID(12345)
	assert.False(t, ok)
}

func TestFilterAndRank(t *testing.T) {
	nodes := usecase.BuildCatalog(testDataset())
	pinned := []int{95, 96, 97, 2, 3, 100}

	t.Run("empty query keeps pinned first then suburbs then rest", func(t *testing.T) {
		got := usecase.FilterAndRank(nodes, "", pinned)
		assert.Equal(t, []int{95, 96, 97, 2, 500, 501, 600, 601}, nodeIDs(got))
	})

	t.Run("pinned order follows the pinned list not the catalog", func(t *testing.T) {
		got := usecase.FilterAndRank(nodes, "", []int{97, 95})
		assert.Equal(t, []int{97, 95, 500, 501, 96, 2, 600, 601}, nodeIDs(got))
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		got := usecase.FilterAndRank(nodes, "  TS ", pinned)
		assert.Equal(t, []int{500}, nodeIDs(got))

		got = usecase.FilterAndRank(nodes, "av", pinned)
		assert.Equal(t, []int{2, 600}, nodeIDs(got))
	})

	t.Run("suburbs before other municipalities", func(t *testing.T) {
		got := usecase.FilterAndRank(nodes, "i", pinned)
		// Tbilisi, Batumi, Kutaisi, Rustavi; затем Tskneti, Kojori; затем Telavi, Sighnaghi
		assert.Equal(t, []int{95, 96, 97, 2, 500, 501, 600, 601}, nodeIDs(got))
	})

	t.Run("no match", func(t *testing.T) {
		got := usecase.FilterAndRank(nodes, "zzz", pinned)
		assert.Empty(t, got)
	})
}

func TestStreetsUnder(t *testing.T) {
	catalog := testCatalog(t)

	tbilisi, _ := catalog.ByID(95)
	groups := usecase.StreetsUnder(tbilisi)
	require.Len(t, groups, 3)
	assert.Equal(t, 1, groups[0].DistrictID)
	assert.Equal(t, 10, groups[0].SubDistrictID)
	assert.Equal(t, "Vake", groups[0].SubDistrictTitle)
	assert.Len(t, groups[0].Streets, 2)
	assert.Equal(t, 20, groups[2].SubDistrictID)

	telavi, _ := catalog.ByID(600)
	assert.Empty(t, usecase.StreetsUnder(telavi))
	assert.Empty(t, usecase.StreetsUnder(nil))
}

func TestFilterStreets(t *testing.T) {
	catalog := testCatalog(t)
	tbilisi, _ := catalog.ByID(95)
	groups := usecase.StreetsUnder(tbilisi)

	t.Run("filters streets and drops empty groups", func(t *testing.T) {
		got := usecase.FilterStreets(groups, "ave", 0)
		require.Len(t, got, 2)
		assert.Equal(t, []domain.Street{{StreetID: 1001, StreetTitle: "Chavchavadze Ave"}}, got[0].Streets)
		assert.Equal(t, 11, got[1].SubDistrictID)
	})

	t.Run("limit caps number of groups", func(t *testing.T) {
		got := usecase.FilterStreets(groups, "", 2)
		assert.Len(t, got, 2)
	})

	t.Run("input is not modified", func(t *testing.T) {
		usecase.FilterStreets(groups, "pekini", 0)
		assert.Len(t, groups[0].Streets, 2)
	})
}

func TestResolveHierarchy(t *testing.T) {
	catalog := testCatalog(t)
	tbilisi, _ := catalog.ByID(95)

	ref := usecase.ResolveHierarchy(tbilisi, 1101)
	require.NotNil(t, ref.DistrictID)
	require.NotNil(t, ref.SubDistrictID)
	assert.Equal(t, 1, *ref.DistrictID)
	assert.Equal(t, 11, *ref.SubDistrictID)

	// улица Батуми не принадлежит Тбилиси
	ref = usecase.ResolveHierarchy(tbilisi, 3001)
	assert.Nil(t, ref.DistrictID)
	assert.Nil(t, ref.SubDistrictID)

	telavi, _ := catalog.ByID(600)
	assert.Equal(t, domain.HierarchyRef{}, usecase.ResolveHierarchy(telavi, 1001))
}

func TestFindStreet(t *testing.T) {
	catalog := testCatalog(t)
	batumi, _ := catalog.ByID(96)

	street, ok := usecase.FindStreet(batumi, 3001)
	require.True(t, ok)
	assert.Equal(t, "Rustaveli Ave", street.StreetTitle)

	_, ok = usecase.FindStreet(batumi, 1001)
	assert.False(t, ok)
}
