package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/pkg/errors"
)

// FormSession - одна открытая форма создания объявления
type FormSession struct {
	ID        string
	OwnerID   string
	Locale    string
	Form      *ListingForm
	Images    *ImagePipeline
	CreatedAt time.Time

	lastActive atomic.Int64
	submitting atomic.Bool
}

// BeginSubmit помечает сессию отправляемой и замораживает фото и черновик.
// Порядок блокировок: пайплайн, затем форма.
func (s *FormSession) BeginSubmit() error {
	if !s.submitting.CompareAndSwap(false, true) {
		return errors.ErrSubmissionInProgress
	}
	if !s.Images.Freeze() {
		s.submitting.Store(false)
		return errors.ErrUploadsPending
	}
	s.Form.Freeze()
	return nil
}

// EndSubmit - отправка не удалась, форму снова можно править
func (s *FormSession) EndSubmit() {
	s.Form.Unfreeze()
	s.Images.Unfreeze()
	s.submitting.Store(false)
}

func (s *FormSession) Submitting() bool {
	return s.submitting.Load()
}

func (s *FormSession) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

// LastActive - время последнего обращения к сессии
func (s *FormSession) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// FormSessionStore - реестр открытых форм в памяти процесса
type FormSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*FormSession

	opts          FormOptions
	uploader      repository.ImageHostRepository
	onOrphan      OrphanHandler
	uploadTimeout time.Duration
	idleTTL       time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

func NewFormSessionStore(
	opts FormOptions,
	uploader repository.ImageHostRepository,
	onOrphan OrphanHandler,
	uploadTimeout time.Duration,
	idleTTL time.Duration,
	logger *zap.Logger,
) *FormSessionStore {
	return &FormSessionStore{
		sessions:      make(map[string]*FormSession),
		opts:          opts,
		uploader:      uploader,
		onOrphan:      onOrphan,
		uploadTimeout: uploadTimeout,
		idleTTL:       idleTTL,
		logger:        logger,
		now:           time.Now,
	}
}

// Create открывает новую форму с черновиком по умолчанию
func (s *FormSessionStore) Create(ownerID, locale string) *FormSession {
	form := NewListingForm(s.opts)
	now := s.now()
	session := &FormSession{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Locale:    locale,
		Form:      form,
		CreatedAt: now,
	}
	session.Images = NewImagePipeline(s.uploader, form, s.orphanHandler(session.ID), s.uploadTimeout, s.logger)
	session.touch(now)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Debug("Form session created", zap.String("form_id", session.ID), zap.String("owner_id", ownerID))
	return session
}

func (s *FormSessionStore) orphanHandler(formID string) OrphanHandler {
	if s.onOrphan == nil {
		return nil
	}
	return func(ctx context.Context, img domain.UploadedImage, reason string) {
		s.onOrphan(WithFormID(ctx, formID), img, reason)
	}
}

// Get - форма владельца; чужая форма неотличима от несуществующей
func (s *FormSessionStore) Get(id, ownerID string) (*FormSession, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok || session.OwnerID != ownerID {
		return nil, errors.ErrFormNotFound
	}
	session.touch(s.now())
	return session, nil
}

// Discard закрывает форму; уже загруженные фото уходят в сироты
func (s *FormSessionStore) Discard(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok || session.OwnerID != ownerID {
		s.mu.Unlock()
		return errors.ErrFormNotFound
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	s.release(ctx, session, domain.OrphanReasonSessionDiscarded)
	return nil
}

// Complete убирает форму после успешной отправки. Фото остаются у объявления.
func (s *FormSessionStore) Complete(id string) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		session.Images.Close()
	}
}

// EvictIdle закрывает формы, к которым не обращались дольше idleTTL.
// Форма в процессе отправки не трогается.
func (s *FormSessionStore) EvictIdle(ctx context.Context) int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var idle []*FormSession
	for id, session := range s.sessions {
		if session.Submitting() || session.LastActive().After(cutoff) {
			continue
		}
		idle = append(idle, session)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, session := range idle {
		s.release(ctx, session, domain.OrphanReasonSessionDiscarded)
		s.logger.Info("Idle form session evicted",
			zap.String("form_id", session.ID),
			zap.Time("last_active", session.LastActive()))
	}
	return len(idle)
}

func (s *FormSessionStore) release(ctx context.Context, session *FormSession, reason string) {
	ready := session.Images.Close()
	if s.onOrphan == nil {
		return
	}
	ctx = WithFormID(ctx, session.ID)
	for _, img := range ready {
		s.onOrphan(ctx, img, reason)
	}
}

// Shutdown закрывает все формы при остановке сервиса и дожидается загрузок,
// чтобы фото, догрузившиеся после закрытия, тоже попали в сироты
func (s *FormSessionStore) Shutdown(ctx context.Context) int {
	s.mu.Lock()
	sessions := make([]*FormSession, 0, len(s.sessions))
	for id, session := range s.sessions {
		sessions = append(sessions, session)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		s.release(ctx, session, domain.OrphanReasonSessionDiscarded)
	}
	for _, session := range sessions {
		session.Images.Wait()
	}
	return len(sessions)
}

func (s *FormSessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Wait ждёт завершения загрузок во всех открытых формах
func (s *FormSessionStore) Wait() {
	s.mu.Lock()
	sessions := make([]*FormSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Images.Wait()
	}
}

type formIDKey struct{}

// WithFormID кладёт id формы в контекст для событий о сиротах
func WithFormID(ctx context.Context, formID string) context.Context {
	return context.WithValue(ctx, formIDKey{}, formID)
}

// FormIDFrom - id формы из контекста
func FormIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(formIDKey{}).(string)
	return id
}
