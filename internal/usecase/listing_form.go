package usecase

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/pkg/utils"
	"github.com/listing-portal/internal/pkg/validator"
)

// FormOptions - настройки формы из конфигурации
type FormOptions struct {
	PinnedCityIDs    []int
	CityResultLimit  int
	StreetGroupLimit int
	StatusSplitIndex int
	MinImages        int
	DefaultCenter    domain.Coordinates
}

// FormUpdate - изменение полей формы одним запросом
type FormUpdate struct {
	Type        *domain.PropertyType
	ListingType *domain.DealType
	Values      map[domain.Field]string
	Description map[string]string
}

// UIPatch - частичное обновление состояния интерфейса
type UIPatch struct {
	CityPickerOpen   *bool
	StreetPickerOpen *bool
	CityQuery        *string
	StreetQuery      *string
	MapCenter        *domain.Coordinates
}

type cityOptionsKey struct {
	catalog *Catalog
	query   string
}

type streetOptionsKey struct {
	catalog    *Catalog
	locationID int
	query      string
}

// ListingForm - конечный автомат формы: владеет черновиком и состоянием
// интерфейса. Все мутации сериализуются через mu. Наружу отдаются только копии.
// Пока идёт отправка, черновик заморожен.
type ListingForm struct {
	mu     sync.Mutex
	draft  domain.Draft
	ui     domain.FormUIState
	opts   FormOptions
	frozen bool

	cityOptions   Memo[cityOptionsKey, []domain.LocationNode]
	streetOptions Memo[streetOptionsKey, []domain.SubDistrictGroup]
}

func NewListingForm(opts FormOptions) *ListingForm {
	return &ListingForm{
		draft: domain.NewDraft(),
		ui:    domain.FormUIState{MapCenter: opts.DefaultCenter},
		opts:  opts,
	}
}

// Draft - копия черновика
func (f *ListingForm) Draft() domain.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Clone()
}

// UI - копия состояния интерфейса
func (f *ListingForm) UI() domain.FormUIState {
	f.mu.Lock()
	defer f.mu.Unlock()
	ui := f.ui
	if ui.FlyTo != nil {
		c := *ui.FlyTo
		ui.FlyTo = &c
	}
	return ui
}

// Visibility - набор полей для текущих типа и сделки
func (f *ListingForm) Visibility() FieldVisibilitySet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return VisibleFields(f.draft.Type, f.draft.ListingType)
}

// Freeze запрещает изменения черновика до Unfreeze
func (f *ListingForm) Freeze() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frozen = true
}

func (f *ListingForm) Unfreeze() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frozen = false
}

// editableLocked - вызывать под f.mu
func (f *ListingForm) editableLocked() error {
	if f.frozen {
		return errors.ErrSubmissionInProgress
	}
	return nil
}

func (f *ListingForm) SetType(t domain.PropertyType) error {
	return f.Update(FormUpdate{Type: &t})
}

func (f *ListingForm) SetListingType(lt domain.DealType) error {
	return f.Update(FormUpdate{ListingType: &lt})
}

// SetField - ввод числового поля из строки. Пустая строка очищает поле.
func (f *ListingForm) SetField(field domain.Field, raw string) error {
	return f.SetFields(map[domain.Field]string{field: raw})
}

// SetFields применяет несколько полей атомарно: при любой ошибке черновик не меняется
func (f *ListingForm) SetFields(values map[domain.Field]string) error {
	return f.Update(FormUpdate{Values: values})
}

// Update применяет тип, сделку, поля и описание к копии черновика и
// сохраняет её, только если всё применилось. Статус, который не входит
// в набор нового типа, сбрасывается.
func (f *ListingForm) Update(u FormUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}

	next := f.draft.Clone()
	if u.Type != nil {
		if !u.Type.Valid() {
			return invalidField(domain.FieldType, "unknown property type")
		}
		if usesBackStatuses(next.Type) != usesBackStatuses(*u.Type) {
			next.Specs.Status = nil
		}
		next.Type = *u.Type
	}
	if u.ListingType != nil {
		if !u.ListingType.Valid() {
			return invalidField(domain.FieldListingType, "unknown deal type")
		}
		next.ListingType = *u.ListingType
	}
	for field, raw := range u.Values {
		v, err := parseNumber(field, raw)
		if err != nil {
			return err
		}
		if field == domain.FieldPrice {
			next.Price = v
			continue
		}
		if !domain.IsSpecification(field) {
			return invalidField(field, "unknown field")
		}
		if err := next.Specs.Set(field, v); err != nil {
			return invalidField(field, "integer expected")
		}
	}
	for lang, text := range u.Description {
		if !next.Description.Set(lang, text) {
			return errors.ErrUnsupportedLocale.WithDetails(map[string]interface{}{"locale": lang})
		}
	}

	f.draft = next
	return nil
}

// usesBackStatuses - земля берёт статусы из хвоста справочника, остальные из начала
func usesBackStatuses(t domain.PropertyType) bool {
	return t == domain.PropertyLand
}

func parseNumber(field domain.Field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, invalidField(field, "number expected")
	}
	return &v, nil
}

func invalidField(field domain.Field, reason string) error {
	return errors.ErrInvalidField.WithDetails(map[string]interface{}{
		"field":  string(field),
		"reason": reason,
	})
}

// SetPrice - цена в USD; nil очищает
func (f *ListingForm) SetPrice(usd *float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	if usd == nil {
		f.draft.Price = nil
		return nil
	}
	v := *usd
	f.draft.Price = &v
	return nil
}

func (f *ListingForm) SetDescription(lang, text string) error {
	return f.Update(FormUpdate{Description: map[string]string{lang: text}})
}

// SelectLocation выбирает город. Улица и подсказка перелёта карты всегда сбрасываются.
func (f *ListingForm) SelectLocation(catalog *Catalog, id int) error {
	if _, ok := catalog.ByID(id); !ok {
		return errors.ErrLocationNotFound.WithDetails(map[string]interface{}{"locationId": id})
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.draft.Address.LocationID = &id
	f.draft.Address.StreetID = nil
	f.ui.FlyTo = nil
	f.ui.CityPickerOpen = false
	f.ui.CityQuery = ""
	f.ui.StreetQuery = ""
	return nil
}

// SelectStreet принимает только улицу выбранного города
func (f *ListingForm) SelectStreet(catalog *Catalog, streetID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}

	if f.draft.Address.LocationID == nil {
		return errors.ErrStreetNotInCity.WithDetails(map[string]interface{}{"streetId": streetID})
	}
	node, ok := catalog.ByID(*f.draft.Address.LocationID)
	if !ok {
		return errors.ErrLocationNotFound.WithDetails(map[string]interface{}{"locationId": *f.draft.Address.LocationID})
	}
	if _, ok := FindStreet(node, streetID); !ok {
		return errors.ErrStreetNotInCity.WithDetails(map[string]interface{}{
			"streetId":   streetID,
			"locationId": node.ID,
		})
	}

	f.draft.Address.StreetID = &streetID
	f.ui.StreetPickerOpen = false
	f.ui.StreetQuery = ""
	return nil
}

// ClearStreet - снять выбор улицы
func (f *ListingForm) ClearStreet() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.draft.Address.StreetID = nil
	return nil
}

// SetCoordinates - точка, выбранная на карте
func (f *ListingForm) SetCoordinates(c domain.Coordinates) error {
	if !utils.ValidateCoordinates(c.Lat, c.Lng) {
		return invalidField(domain.Field("coords"), "coordinates out of range")
	}
	c = domain.Coordinates{Lat: utils.RoundCoordinate(c.Lat), Lng: utils.RoundCoordinate(c.Lng)}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.draft.Address.Coords = &c
	f.ui.MapCenter = c
	return nil
}

// SetFlyTo - подсказка карте перелететь к точке; в черновик не попадает
func (f *ListingForm) SetFlyTo(c *domain.Coordinates) error {
	if c != nil && !utils.ValidateCoordinates(c.Lat, c.Lng) {
		return invalidField(domain.Field("flyTo"), "coordinates out of range")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if c == nil {
		f.ui.FlyTo = nil
		return nil
	}
	cp := *c
	f.ui.FlyTo = &cp
	return nil
}

func (f *ListingForm) SetUI(p UIPatch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.CityPickerOpen != nil {
		f.ui.CityPickerOpen = *p.CityPickerOpen
	}
	if p.StreetPickerOpen != nil {
		f.ui.StreetPickerOpen = *p.StreetPickerOpen
	}
	if p.CityQuery != nil {
		f.ui.CityQuery = *p.CityQuery
	}
	if p.StreetQuery != nil {
		f.ui.StreetQuery = *p.StreetQuery
	}
	if p.MapCenter != nil {
		f.ui.MapCenter = *p.MapCenter
	}
}

// ToggleFlag переключает бит в группе и возвращает новый агрегат
func (f *ListingForm) ToggleFlag(group domain.FlagGroup, value int) (int, error) {
	if !group.Valid() {
		return 0, invalidField(group.Field(), "unknown flag group")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return 0, err
	}
	next, err := ToggleFlag(f.draft.Flags[group], value)
	if err != nil {
		return 0, invalidField(group.Field(), err.Error())
	}
	f.draft.Flags[group] = next
	return next, nil
}

// SelectedFlags - выбранные варианты группы, пересчитываются из агрегата
func (f *ListingForm) SelectedFlags(group domain.FlagGroup, options []domain.Option) []domain.Option {
	f.mu.Lock()
	stored := f.draft.Flags[group]
	f.mu.Unlock()
	return SelectedFlags(stored, options)
}

// CityOptions - варианты выпадающего списка городов. Результат запоминается
// по (каталог, запрос), повторный ввод того же запроса не пересчитывает список.
func (f *ListingForm) CityOptions(catalog *Catalog, query string) []domain.LocationNode {
	return f.cityOptions.Get(cityOptionsKey{catalog: catalog, query: query}, func() []domain.LocationNode {
		ranked := FilterAndRank(catalog.Nodes, query, f.opts.PinnedCityIDs)
		if f.opts.CityResultLimit > 0 && len(ranked) > f.opts.CityResultLimit {
			ranked = ranked[:f.opts.CityResultLimit]
		}
		return ranked
	})
}

// StreetOptions - группы улиц выбранного города
func (f *ListingForm) StreetOptions(catalog *Catalog, query string) []domain.SubDistrictGroup {
	f.mu.Lock()
	loc := f.draft.Address.LocationID
	f.mu.Unlock()
	if loc == nil {
		return []domain.SubDistrictGroup{}
	}

	key := streetOptionsKey{catalog: catalog, locationID: *loc, query: query}
	return f.streetOptions.Get(key, func() []domain.SubDistrictGroup {
		node, _ := catalog.ByID(*loc)
		return FilterStreets(StreetsUnder(node), query, f.opts.StreetGroupLimit)
	})
}

// StatusOptions - статусы, доступные текущему типу недвижимости
func (f *ListingForm) StatusOptions(enums *domain.EnumCatalog) []domain.Option {
	f.mu.Lock()
	t := f.draft.Type
	f.mu.Unlock()
	return StatusOptions(t, enums.Statuses, f.opts.StatusSplitIndex)
}

// SetImages - приёмник проекции готовых фото из пайплайна
func (f *ListingForm) SetImages(refs []domain.ImageRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Images = refs
}

// DraftRules - ограничения черновика, зависящие от конфигурации и справочников
type DraftRules struct {
	MinImages        int
	StatusSplitIndex int
	// Statuses - полный справочник статусов; допустимы только варианты текущего типа
	Statuses []domain.Option
}

// Validate - проверка черновика по справочнику статусов. Черновик не меняется.
func (f *ListingForm) Validate(statuses []domain.Option) error {
	return ValidateDraft(f.Draft(), DraftRules{
		MinImages:        f.opts.MinImages,
		StatusSplitIndex: f.opts.StatusSplitIndex,
		Statuses:         statuses,
	})
}

// ValidateDraft возвращает ErrValidationFailed с первым невалидным полем
// в порядке формы. Скрытые поля не проверяются.
func ValidateDraft(d domain.Draft, rules DraftRules) error {
	if !d.Type.Valid() {
		return validationFailed(domain.FieldType, "oneof")
	}
	if !d.ListingType.Valid() {
		return validationFailed(domain.FieldListingType, "oneof")
	}

	rangeErrors := make(map[domain.Field]string)
	for _, fe := range validator.FieldErrors(validator.Struct(d.Specs)) {
		field := domain.Field(fe.Field)
		if _, seen := rangeErrors[field]; !seen {
			rangeErrors[field] = fe.Rule
		}
	}

	vis := VisibleFields(d.Type, d.ListingType)
	for _, field := range FormFields {
		if !vis.Visible(field) {
			continue
		}
		switch {
		case field == domain.FieldLocation:
			if d.Address.LocationID == nil {
				return validationFailed(field, "required")
			}
		case field == domain.FieldPrice:
			if d.Price == nil {
				return validationFailed(field, "required")
			}
			if *d.Price <= 0 {
				return validationFailed(field, "gt")
			}
		case domain.IsSpecification(field):
			if d.Specs.Get(field) == nil {
				if vis.Required(field) {
					return validationFailed(field, "required")
				}
				continue
			}
			if rule, ok := rangeErrors[field]; ok {
				return validationFailed(field, rule)
			}
			if field == domain.FieldStatus && !statusAllowed(d, rules) {
				return validationFailed(field, "oneof")
			}
		}
	}

	if fields := validator.FieldErrors(validator.Struct(d.Description)); len(fields) > 0 {
		return validationFailed(domain.Field("description."+fields[0].Field), fields[0].Rule)
	}
	if len(d.Images) < rules.MinImages {
		return validationFailed(domain.Field("images"), "min")
	}
	return nil
}

func statusAllowed(d domain.Draft, rules DraftRules) bool {
	allowed := StatusOptions(d.Type, rules.Statuses, rules.StatusSplitIndex)
	return slices.ContainsFunc(allowed, func(o domain.Option) bool { return o.ID == *d.Specs.Status })
}

func validationFailed(field domain.Field, rule string) error {
	return errors.ErrValidationFailed.WithDetails(map[string]interface{}{
		"field": string(field),
		"rule":  rule,
	})
}
