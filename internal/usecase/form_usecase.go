package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/usecase/dto"
)

// FormUseCase - операции над открытыми формами от имени владельца
type FormUseCase struct {
	store   *FormSessionStore
	refs    *ReferenceUseCase
	pricing *PricingUseCase
	logger  *zap.Logger
}

func NewFormUseCase(
	store *FormSessionStore,
	refs *ReferenceUseCase,
	pricing *PricingUseCase,
	logger *zap.Logger,
) *FormUseCase {
	return &FormUseCase{
		store:   store,
		refs:    refs,
		pricing: pricing,
		logger:  logger,
	}
}

// Create открывает форму на языке locale (пустой - язык по умолчанию)
func (uc *FormUseCase) Create(ctx context.Context, ownerID, locale string) (*dto.FormState, error) {
	locale, err := uc.refs.ResolveLocale(locale)
	if err != nil {
		return nil, err
	}
	session := uc.store.Create(ownerID, locale)
	return uc.state(ctx, session), nil
}

func (uc *FormUseCase) Get(ctx context.Context, formID, ownerID string) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.state(ctx, session), nil
}

// Discard - уход со страницы без отправки
func (uc *FormUseCase) Discard(ctx context.Context, formID, ownerID string) error {
	return uc.store.Discard(ctx, formID, ownerID)
}

// UpdateFields применяет тип, сделку, числовые поля и описание одним шагом:
// при ошибке черновик остаётся прежним
func (uc *FormUseCase) UpdateFields(ctx context.Context, formID, ownerID string, req dto.UpdateFieldsRequest) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}

	update := FormUpdate{Description: req.Description}
	if req.Type != nil {
		t := domain.PropertyType(*req.Type)
		update.Type = &t
	}
	if req.ListingType != nil {
		lt := domain.DealType(*req.ListingType)
		update.ListingType = &lt
	}
	if len(req.Values) > 0 {
		update.Values = make(map[domain.Field]string, len(req.Values))
		for k, v := range req.Values {
			update.Values[domain.Field(k)] = v
		}
	}
	if err := session.Form.Update(update); err != nil {
		return nil, err
	}

	return uc.state(ctx, session), nil
}

// SelectLocation выбирает город или населённый пункт; улица сбрасывается
func (uc *FormUseCase) SelectLocation(ctx context.Context, formID, ownerID string, locationID int) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.refs.Catalog(ctx, session.Locale)
	if err != nil {
		return nil, err
	}
	if err := session.Form.SelectLocation(catalog, locationID); err != nil {
		return nil, err
	}
	return uc.state(ctx, session), nil
}

// SelectStreet выбирает улицу выбранного города; nil снимает выбор
func (uc *FormUseCase) SelectStreet(ctx context.Context, formID, ownerID string, streetID *int) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	if streetID == nil {
		if err := session.Form.ClearStreet(); err != nil {
			return nil, err
		}
		return uc.state(ctx, session), nil
	}
	catalog, err := uc.refs.Catalog(ctx, session.Locale)
	if err != nil {
		return nil, err
	}
	if err := session.Form.SelectStreet(catalog, *streetID); err != nil {
		return nil, err
	}
	return uc.state(ctx, session), nil
}

func (uc *FormUseCase) SetCoordinates(ctx context.Context, formID, ownerID string, req dto.CoordinatesRequest) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := session.Form.SetCoordinates(domain.Coordinates{Lat: req.Lat, Lng: req.Lng}); err != nil {
		return nil, err
	}
	return uc.state(ctx, session), nil
}

func (uc *FormUseCase) SetFlyTo(ctx context.Context, formID, ownerID string, req dto.FlyToRequest) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	var target *domain.Coordinates
	if req.Target != nil {
		target = &domain.Coordinates{Lat: req.Target.Lat, Lng: req.Target.Lng}
	}
	if err := session.Form.SetFlyTo(target); err != nil {
		return nil, err
	}
	return uc.state(ctx, session), nil
}

func (uc *FormUseCase) SetUI(ctx context.Context, formID, ownerID string, req dto.UIRequest) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	patch := UIPatch{
		CityPickerOpen:   req.CityPickerOpen,
		StreetPickerOpen: req.StreetPickerOpen,
		CityQuery:        req.CityQuery,
		StreetQuery:      req.StreetQuery,
	}
	if req.MapCenter != nil {
		patch.MapCenter = &domain.Coordinates{Lat: req.MapCenter.Lat, Lng: req.MapCenter.Lng}
	}
	session.Form.SetUI(patch)
	return uc.state(ctx, session), nil
}

// ToggleFlag переключает вариант группы флагов
func (uc *FormUseCase) ToggleFlag(ctx context.Context, formID, ownerID string, group domain.FlagGroup, value int) (*dto.ToggleFlagResponse, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	next, err := session.Form.ToggleFlag(group, value)
	if err != nil {
		return nil, err
	}

	resp := &dto.ToggleFlagResponse{Group: group, Value: next, Selected: []domain.Option{}}
	if enums, err := uc.refs.Enums(ctx, session.Locale); err == nil {
		resp.Selected = SelectedFlags(next, enums.FlagOptions(group))
	}
	return resp, nil
}

// CityOptions - выпадающий список городов для запроса query
func (uc *FormUseCase) CityOptions(ctx context.Context, formID, ownerID, query string) (*dto.CityOptionsResponse, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.refs.Catalog(ctx, session.Locale)
	if err != nil {
		return nil, err
	}
	session.Form.SetUI(UIPatch{CityQuery: &query})
	items := session.Form.CityOptions(catalog, query)
	return &dto.CityOptionsResponse{Items: items, Total: len(items)}, nil
}

// StreetOptions - улицы выбранного города, сгруппированные по микрорайонам
func (uc *FormUseCase) StreetOptions(ctx context.Context, formID, ownerID, query string) (*dto.StreetOptionsResponse, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.refs.Catalog(ctx, session.Locale)
	if err != nil {
		return nil, err
	}
	session.Form.SetUI(UIPatch{StreetQuery: &query})
	return &dto.StreetOptionsResponse{Groups: session.Form.StreetOptions(catalog, query)}, nil
}

// SetPrice пересчитывает ввод в итоговую цену USD и пишет её в черновик
func (uc *FormUseCase) SetPrice(ctx context.Context, formID, ownerID string, req dto.SetPriceRequest) (*dto.FormState, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	if req.Amount == nil {
		if err := session.Form.SetPrice(nil); err != nil {
			return nil, err
		}
		return uc.state(ctx, session), nil
	}

	draft := session.Form.Draft()
	usd, err := uc.pricing.ToUSDTotal(*req.Amount, req.Currency, req.Mode, draft.Specs.Area)
	if err != nil {
		return nil, err
	}
	price := usd.InexactFloat64()
	if err := session.Form.SetPrice(&price); err != nil {
		return nil, err
	}
	return uc.state(ctx, session), nil
}

// AddImages ставит файлы в очередь загрузки и сразу возвращает их превью
func (uc *FormUseCase) AddImages(ctx context.Context, formID, ownerID string, files []domain.ImageFile) ([]domain.ImageItem, error) {
	if len(files) == 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "files", "rule": "required"})
	}
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	return session.Images.AddFiles(ctx, files)
}

// ReorderImages - перестановка фото одним из трёх способов
func (uc *FormUseCase) ReorderImages(ctx context.Context, formID, ownerID string, req dto.ReorderImagesRequest) ([]domain.ImageItem, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}

	switch {
	case len(req.Order) > 0:
		err = session.Images.SetOrder(req.Order)
	case req.ActiveID != "" && req.OverID != "":
		err = session.Images.MoveByID(req.ActiveID, req.OverID)
	case req.From != nil && req.To != nil:
		err = session.Images.Reorder(*req.From, *req.To)
	default:
		err = errors.ErrInvalidReorder
	}
	if err != nil {
		return nil, err
	}
	return session.Images.Items(), nil
}

func (uc *FormUseCase) RemoveImage(ctx context.Context, formID, ownerID, imageID string) ([]domain.ImageItem, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := session.Images.Remove(WithFormID(ctx, formID), imageID); err != nil {
		return nil, err
	}
	return session.Images.Items(), nil
}

// Notifications отдаёт и очищает уведомления формы
func (uc *FormUseCase) Notifications(ctx context.Context, formID, ownerID string) (*dto.NotificationsResponse, error) {
	session, err := uc.store.Get(formID, ownerID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationsResponse{Notifications: session.Images.DrainNotifications()}, nil
}

func (uc *FormUseCase) state(ctx context.Context, session *FormSession) *dto.FormState {
	draft := session.Form.Draft()
	vis := VisibleFields(draft.Type, draft.ListingType)

	state := &dto.FormState{
		ID:     session.ID,
		Locale: session.Locale,
		Draft:  draft,
		UI:     session.Form.UI(),
		Fields: dto.FieldsView{
			Visible:  vis.Fields(),
			Required: vis.RequiredFields(),
		},
		Images:         session.Images.Items(),
		UploadsPending: session.Images.HasPending(),
		Submitting:     session.Submitting(),
		StatusOptions:  []domain.Option{},
		SelectedFlags:  make(map[domain.FlagGroup][]domain.Option, len(domain.FlagGroups)),
	}

	enums, err := uc.refs.Enums(ctx, session.Locale)
	if err != nil {
		uc.logger.Warn("Enum catalog unavailable for form state",
			zap.String("form_id", session.ID),
			zap.Error(err))
	} else {
		state.StatusOptions = session.Form.StatusOptions(enums)
		for _, g := range domain.FlagGroups {
			state.SelectedFlags[g] = SelectedFlags(draft.Flags[g], enums.FlagOptions(g))
		}
	}

	if draft.Price != nil {
		preview := uc.pricing.Preview(*draft.Price, draft.Specs.Area)
		state.Price = &preview
	}
	return state
}
