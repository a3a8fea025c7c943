package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/usecase"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

// testDataset - маленький справочник: три крупных города, Рустави без районов,
// пригороды Тбилиси и муниципалитет Кахети
func testDataset() *domain.LocationDataset {
	ds := &domain.LocationDataset{}
	ds.Locations.VisibleCities = []domain.RawCity{
		{
			CityID:    95,
			CityTitle: "Tbilisi",
			Districts: []domain.District{
				{
					DistrictID:    1,
					DistrictTitle: "Vake-Saburtalo",
					SubDistricts: []domain.SubDistrict{
						{SubDistrictID: 10, SubDistrictTitle: "Vake", Streets: []domain.Street{
							{StreetID: 1001, StreetTitle: "Chavchavadze Ave"},
							{StreetID: 1002, StreetTitle: "Paliashvili St"},
						}},
						{SubDistrictID: 11, SubDistrictTitle: "Saburtalo", Streets: []domain.Street{
							{StreetID: 1101, StreetTitle: "Pekini Ave"},
						}},
					},
				},
				{
					DistrictID:    2,
					DistrictTitle: "Old Tbilisi",
					SubDistricts: []domain.SubDistrict{
						{SubDistrictID: 20, SubDistrictTitle: "Sololaki", Streets: []domain.Street{
							{StreetID: 2001, StreetTitle: "Leselidze St"},
						}},
					},
				},
			},
		},
		{
			CityID:    96,
			CityTitle: "Batumi",
			Districts: []domain.District{
				{DistrictID: 3, DistrictTitle: "Old Batumi", SubDistricts: []domain.SubDistrict{
					{SubDistrictID: 30, SubDistrictTitle: "Boulevard", Streets: []domain.Street{
						{StreetID: 3001, StreetTitle: "Rustaveli Ave"},
					}},
				}},
			},
		},
		{CityID: 97, CityTitle: "Kutaisi"},
		{CityID: 2, CityTitle: "Rustavi"},
	}
	ds.Locations.Suburb = []domain.RawMunicipality{
		{MunicipalityID: 50, MunicipalityTitle: "Tbilisi Suburbs", Cities: []domain.RawPlace{
			{ID: 500, Title: "Tskneti"},
			{ID: 501, Title: "Kojori"},
		}},
	}
	ds.Locations.Municipality = []domain.RawMunicipality{
		{MunicipalityID: 60, MunicipalityTitle: "Kakheti", Cities: []domain.RawPlace{
			{ID: 600, Title: "Telavi"},
			{ID: 601, Title: "Sighnaghi"},
		}},
	}
	return ds
}

func testCatalog(t *testing.T) *usecase.Catalog {
	t.Helper()
	catalog, err := usecase.NewCatalog(domain.LocaleEn, "v1", usecase.BuildCatalog(testDataset()))
	require.NoError(t, err)
	return catalog
}

func nodeIDs(nodes []domain.LocationNode) []int {
	ids := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func testEnums() *domain.EnumCatalog {
	return &domain.EnumCatalog{
		Statuses: []domain.Option{
			{ID: 1, Name: "New building"},
			{ID: 2, Name: "Under construction"},
			{ID: 3, Name: "Old building"},
			{ID: 4, Name: "Agricultural"},
			{ID: 5, Name: "Non-agricultural"},
		},
		PropertyCharacteristics: []domain.Option{
			{ID: 1, Name: "Elevator"},
			{ID: 2, Name: "Gas"},
			{ID: 4, Name: "Internet"},
			{ID: 8, Name: "Security"},
		},
	}
}

var testFormOptions = usecase.FormOptions{
	PinnedCityIDs:    []int{95, 96, 97, 2, 3, 100},
	CityResultLimit:  50,
	StreetGroupLimit: 0,
	StatusSplitIndex: 3,
	MinImages:        0,
	DefaultCenter:    domain.Coordinates{Lat: 41.7151, Lng: 44.8271},
}
