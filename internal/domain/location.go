package domain

// LocationKind - вид записи каталога локаций
type LocationKind string

const (
	LocationKindCity         LocationKind = "city"
	LocationKindMunicipality LocationKind = "municipality"
)

// MainCitiesGroup - группа, в которую попадают крупные города с районами
const MainCitiesGroup = "Main Cities"

// LocationNode - плоская запись каталога: город или населённый пункт муниципалитета
type LocationNode struct {
	ID        int          `json:"id"`
	Title     string       `json:"title"`
	Kind      LocationKind `json:"type"`
	Group     string       `json:"group"`
	IsSuburb  bool         `json:"isSuburb"`
	Districts []District   `json:"districts,omitempty"`
}

// IsCity - есть ли у записи иерархия районов и улиц
func (n *LocationNode) IsCity() bool {
	return n.Kind == LocationKindCity
}

// District - район города
type District struct {
	DistrictID    int           `json:"districtId"`
	DistrictTitle string        `json:"districtTitle"`
	SubDistricts  []SubDistrict `json:"subDistricts"`
}

// SubDistrict - микрорайон с улицами
type SubDistrict struct {
	SubDistrictID    int      `json:"subDistrictId"`
	SubDistrictTitle string   `json:"subDistrictTitle"`
	Streets          []Street `json:"streets"`
}

// Street - улица; streetId уникален во всём каталоге
type Street struct {
	StreetID    int    `json:"streetId"`
	StreetTitle string `json:"streetTitle"`
}

// SubDistrictGroup - группа улиц в выпадающем списке
type SubDistrictGroup struct {
	DistrictID       int      `json:"districtId"`
	SubDistrictID    int      `json:"subDistrictId"`
	SubDistrictTitle string   `json:"subDistrictTitle"`
	Streets          []Street `json:"streets"`
}

// HierarchyRef - район и микрорайон улицы; nil означает "неизвестно"
type HierarchyRef struct {
	DistrictID    *int `json:"districtId"`
	SubDistrictID *int `json:"subDistrictId"`
}

// LocationDataset - исходный справочник локаций одной локали
type LocationDataset struct {
	Locations struct {
		VisibleCities []RawCity         `json:"visibleCities"`
		Suburb        []RawMunicipality `json:"suburb"`
		Municipality  []RawMunicipality `json:"municipality"`
	} `json:"locations"`
}

type RawCity struct {
	CityID    int        `json:"cityId"`
	CityTitle string     `json:"cityTitle"`
	Districts []District `json:"districts"`
}

type RawMunicipality struct {
	MunicipalityID    int        `json:"municipalityId"`
	MunicipalityTitle string     `json:"municipalityTitle"`
	Cities            []RawPlace `json:"cities"`
}

type RawPlace struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Coordinates - точка на карте
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}
