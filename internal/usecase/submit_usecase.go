package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/usecase/dto"
)

// SubmitUseCase - отправка формы на бэкенд
type SubmitUseCase struct {
	store      *FormSessionStore
	refs       *ReferenceUseCase
	listings   repository.ListingRepository
	streamRepo repository.StreamRepository
	country    string
	logger     *zap.Logger
}

func NewSubmitUseCase(
	store *FormSessionStore,
	refs *ReferenceUseCase,
	listings repository.ListingRepository,
	streamRepo repository.StreamRepository,
	country string,
	logger *zap.Logger,
) *SubmitUseCase {
	return &SubmitUseCase{
		store:      store,
		refs:       refs,
		listings:   listings,
		streamRepo: streamRepo,
		country:    country,
		logger:     logger,
	}
}

// Submit собирает тело запроса и отправляет его один раз. Пока грузятся фото
// или уже идёт отправка, форма не отправляется. При ошибке бэкенда черновик
// и фото остаются как были, повтора нет.
func (uc *SubmitUseCase) Submit(ctx context.Context, formID string, auth *domain.AuthSession) (*dto.SubmitResponse, error) {
	session, err := uc.store.Get(formID, auth.User.ID)
	if err != nil {
		return nil, err
	}

	if session.Images.HasPending() {
		return nil, errors.ErrUploadsPending
	}
	// с этого момента фото и черновик не меняются до конца отправки
	if err := session.BeginSubmit(); err != nil {
		return nil, err
	}
	submitted := false
	defer func() {
		if !submitted {
			session.EndSubmit()
		}
	}()

	enums, err := uc.refs.Enums(ctx, session.Locale)
	if err != nil {
		return nil, err
	}
	if err := session.Form.Validate(enums.Statuses); err != nil {
		return nil, err
	}

	payload, err := uc.assemble(ctx, session)
	if err != nil {
		return nil, err
	}

	created, err := uc.listings.Create(ctx, auth.Token, payload)
	if err != nil {
		uc.logger.Error("Failed to create listing",
			zap.String("form_id", formID),
			zap.String("owner_id", auth.User.ID),
			zap.Error(err))
		return nil, errors.ErrSubmissionFailed
	}
	submitted = true

	uc.store.Complete(formID)

	uc.logger.Info("Listing created",
		zap.String("form_id", formID),
		zap.String("listing_id", created.ID),
		zap.Int("images", len(payload.Images)))

	event := domain.ListingCreatedEvent{
		EventID:    uuid.New(),
		ListingID:  created.ID,
		OwnerID:    auth.User.ID,
		FormID:     formID,
		Title:      payload.Title,
		ImageCount: len(payload.Images),
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamListingCreated, event); err != nil {
		uc.logger.Warn("Failed to publish listing created event",
			zap.String("listing_id", created.ID),
			zap.Error(err))
	}

	return &dto.SubmitResponse{ListingID: created.ID, Title: payload.Title}, nil
}

func (uc *SubmitUseCase) assemble(ctx context.Context, session *FormSession) (*domain.Payload, error) {
	draft := session.Form.Draft()

	catalog, err := uc.refs.Catalog(ctx, session.Locale)
	if err != nil {
		return nil, err
	}

	in := AssembleInput{Draft: draft, Images: draft.Images}
	if draft.Address.LocationID != nil {
		city, ok := catalog.ByID(*draft.Address.LocationID)
		if !ok {
			return nil, validationFailed(domain.FieldLocation, "exists")
		}
		in.City = city
		if draft.Address.StreetID != nil {
			if street, ok := FindStreet(city, *draft.Address.StreetID); ok {
				in.Street = street
			}
			in.Hierarchy = ResolveHierarchy(city, *draft.Address.StreetID)
		}
	}

	payload := Assemble(in, AssembleOptions{Country: uc.country, Locale: session.Locale})
	return &payload, nil
}
