package usecase

import (
	"fmt"
	"strings"

	"github.com/listing-portal/internal/domain"
)

// Catalog - плоский каталог локаций одной локали. Строится один раз на
// версию справочника и дальше только читается, поэтому делится по указателю.
type Catalog struct {
	Locale  string
	Version string
	Nodes   []domain.LocationNode
	byID    map[int]int
}

// NewCatalog строит индекс по id. Повтор id - ошибка справочника.
func NewCatalog(locale, version string, nodes []domain.LocationNode) (*Catalog, error) {
	byID := make(map[int]int, len(nodes))
	for i, n := range nodes {
		if prev, ok := byID[n.ID]; ok {
			return nil, fmt.Errorf("duplicate location id %d (%q and %q)", n.ID, nodes[prev].Title, n.Title)
		}
		byID[n.ID] = i
	}
	return &Catalog{
		Locale:  locale,
		Version: version,
		Nodes:   nodes,
		byID:    byID,
	}, nil
}

// ByID - запись каталога по id
func (c *Catalog) ByID(id int) (*domain.LocationNode, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.Nodes[i], true
}

// BuildCatalog сливает города с районами, пригородные и прочие муниципалитеты
// в один упорядоченный список
func BuildCatalog(raw *domain.LocationDataset) []domain.LocationNode {
	if raw == nil {
		return nil
	}

	nodes := make([]domain.LocationNode, 0, len(raw.Locations.VisibleCities))
	for _, c := range raw.Locations.VisibleCities {
		nodes = append(nodes, domain.LocationNode{
			ID:        c.CityID,
			Title:     c.CityTitle,
			Kind:      domain.LocationKindCity,
			Group:     domain.MainCitiesGroup,
			Districts: c.Districts,
		})
	}
	nodes = appendMunicipalities(nodes, raw.Locations.Suburb, true)
	nodes = appendMunicipalities(nodes, raw.Locations.Municipality, false)

	return nodes
}

func appendMunicipalities(nodes []domain.LocationNode, groups []domain.RawMunicipality, suburb bool) []domain.LocationNode {
	for _, m := range groups {
		for _, p := range m.Cities {
			nodes = append(nodes, domain.LocationNode{
				ID:       p.ID,
				Title:    p.Title,
				Kind:     domain.LocationKindMunicipality,
				Group:    m.MunicipalityTitle,
				IsSuburb: suburb,
			})
		}
	}
	return nodes
}

// FilterAndRank - поиск по подстроке без учёта регистра. Порядок: закреплённые
// id в порядке списка, затем пригороды, затем остальные в исходном порядке.
func FilterAndRank(nodes []domain.LocationNode, query string, pinnedIDs []int) []domain.LocationNode {
	q := strings.ToLower(strings.TrimSpace(query))

	pinnedRank := make(map[int]int, len(pinnedIDs))
	for i, id := range pinnedIDs {
		if _, ok := pinnedRank[id]; !ok {
			pinnedRank[id] = i
		}
	}

	pinned := make([]*domain.LocationNode, len(pinnedIDs))
	var suburbs, rest []domain.LocationNode
	for i := range nodes {
		n := &nodes[i]
		if q != "" && !strings.Contains(strings.ToLower(n.Title), q) {
			continue
		}
		if rank, ok := pinnedRank[n.ID]; ok {
			if pinned[rank] == nil {
				pinned[rank] = n
			}
			continue
		}
		if n.IsSuburb {
			suburbs = append(suburbs, *n)
		} else {
			rest = append(rest, *n)
		}
	}

	result := make([]domain.LocationNode, 0, len(suburbs)+len(rest)+len(pinnedIDs))
	for _, n := range pinned {
		if n != nil {
			result = append(result, *n)
		}
	}
	result = append(result, suburbs...)
	result = append(result, rest...)
	return result
}

// StreetsUnder - все микрорайоны города с улицами. Для муниципалитетов пусто.
func StreetsUnder(node *domain.LocationNode) []domain.SubDistrictGroup {
	if node == nil || !node.IsCity() {
		return []domain.SubDistrictGroup{}
	}

	groups := make([]domain.SubDistrictGroup, 0)
	for _, d := range node.Districts {
		for _, sd := range d.SubDistricts {
			groups = append(groups, domain.SubDistrictGroup{
				DistrictID:       d.DistrictID,
				SubDistrictID:    sd.SubDistrictID,
				SubDistrictTitle: sd.SubDistrictTitle,
				Streets:          sd.Streets,
			})
		}
	}
	return groups
}

// FilterStreets - фильтр улиц внутри каждой группы. Пустые группы выкидываются,
// число групп ограничено limit (0 - без ограничения).
func FilterStreets(groups []domain.SubDistrictGroup, query string, limit int) []domain.SubDistrictGroup {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]domain.SubDistrictGroup, 0)
	for _, g := range groups {
		if limit > 0 && len(result) >= limit {
			break
		}
		streets := make([]domain.Street, 0, len(g.Streets))
		for _, s := range g.Streets {
			if q == "" || strings.Contains(strings.ToLower(s.StreetTitle), q) {
				streets = append(streets, s)
			}
		}
		if len(streets) == 0 {
			continue
		}
		g.Streets = streets
		result = append(result, g)
	}
	return result
}

// ResolveHierarchy - район и микрорайон улицы внутри города.
// Улица не из этого города - не ошибка, возвращаются пустые ссылки.
func ResolveHierarchy(node *domain.LocationNode, streetID int) domain.HierarchyRef {
	if node == nil || !node.IsCity() {
		return domain.HierarchyRef{}
	}
	for _, d := range node.Districts {
		for _, sd := range d.SubDistricts {
			for _, s := range sd.Streets {
				if s.StreetID == streetID {
					districtID, subDistrictID := d.DistrictID, sd.SubDistrictID
					return domain.HierarchyRef{DistrictID: &districtID, SubDistrictID: &subDistrictID}
				}
			}
		}
	}
	return domain.HierarchyRef{}
}

// FindStreet - улица по id внутри города
func FindStreet(node *domain.LocationNode, streetID int) (*domain.Street, bool) {
	if node == nil {
		return nil, false
	}
	for _, d := range node.Districts {
		for _, sd := range d.SubDistricts {
			for i := range sd.Streets {
				if sd.Streets[i].StreetID == streetID {
					s := sd.Streets[i]
					return &s, true
				}
			}
		}
	}
	return nil, false
}
