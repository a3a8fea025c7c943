package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/pkg/utils"
)

// ImageSink - получатель проекции готовых фото (черновик формы)
type ImageSink interface {
	SetImages(refs []domain.ImageRef)
}

// OrphanHandler - вызывается для фото, которые загрузились, но в объявление
// уже не попадут. Вызывается вне блокировки пайплайна.
type OrphanHandler func(ctx context.Context, img domain.UploadedImage, reason string)

// ImagePipeline - упорядоченный список фото формы. Каждое фото грузится в своей
// горутине и патчит только свой элемент по id. Порядок можно менять в любой момент.
type ImagePipeline struct {
	mu            sync.Mutex
	items         []domain.ImageItem
	notifications []domain.Notification
	projection    []domain.ImageRef
	closed        bool
	frozen        bool

	uploader      repository.ImageHostRepository
	sink          ImageSink
	onOrphan      OrphanHandler
	uploadTimeout time.Duration
	logger        *zap.Logger
	wg            sync.WaitGroup
}

func NewImagePipeline(
	uploader repository.ImageHostRepository,
	sink ImageSink,
	onOrphan OrphanHandler,
	uploadTimeout time.Duration,
	logger *zap.Logger,
) *ImagePipeline {
	return &ImagePipeline{
		items:         []domain.ImageItem{},
		projection:    []domain.ImageRef{},
		uploader:      uploader,
		sink:          sink,
		onOrphan:      onOrphan,
		uploadTimeout: uploadTimeout,
		logger:        logger,
	}
}

// AddFiles добавляет фото в конец списка в состоянии загрузки и сразу
// возвращает их. Загрузка не привязана к отмене ctx запроса.
func (p *ImagePipeline) AddFiles(ctx context.Context, files []domain.ImageFile) ([]domain.ImageItem, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errors.ErrFormNotFound
	}
	if p.frozen {
		p.mu.Unlock()
		return nil, errors.ErrSubmissionInProgress
	}

	added := make([]domain.ImageItem, 0, len(files))
	pending := make([]*domain.ImageFile, 0, len(files))
	for i := range files {
		file := files[i]
		item := domain.ImageItem{
			ID:          uuid.NewString(),
			File:        &file,
			FileName:    file.Name,
			IsUploading: true,
		}
		p.items = append(p.items, item)
		added = append(added, publicItem(item))
		pending = append(pending, &file)
		p.wg.Add(1)
	}
	p.mu.Unlock()

	uploadCtx := context.WithoutCancel(ctx)
	for i := range added {
		go p.upload(uploadCtx, added[i].ID, pending[i])
	}

	return added, nil
}

func (p *ImagePipeline) upload(ctx context.Context, id string, file *domain.ImageFile) {
	defer p.wg.Done()

	uploadCtx := ctx
	if p.uploadTimeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(ctx, p.uploadTimeout)
		defer cancel()
	}

	res, err := p.uploader.Upload(uploadCtx, file)
	p.complete(ctx, id, file.Name, res, err)
}

// complete патчит элемент по id. Если элемент уже удалён - ничего не меняет.
func (p *ImagePipeline) complete(ctx context.Context, id, name string, res *domain.UploadedImage, uploadErr error) {
	p.mu.Lock()

	idx := p.indexOf(id)
	if idx < 0 {
		reason := domain.OrphanReasonRemovedDuringUpload
		if p.closed {
			reason = domain.OrphanReasonSessionDiscarded
		}
		p.mu.Unlock()
		if uploadErr == nil && res != nil {
			p.logger.Debug("Upload finished for removed image", zap.String("image_id", id))
			p.orphan(ctx, *res, reason)
		}
		return
	}

	if uploadErr != nil || res == nil {
		p.items = slices.Delete(p.items, idx, idx+1)
		p.notifications = append(p.notifications, domain.Notification{
			Code:    domain.NotificationUploadFailed,
			Message: "Failed to upload " + name,
			ImageID: id,
			At:      time.Now(),
		})
		p.syncLocked()
		p.mu.Unlock()

		p.logger.Warn("Image upload failed",
			zap.String("image_id", id),
			zap.String("file", name),
			zap.Error(uploadErr))
		return
	}

	item := &p.items[idx]
	item.URL = res.SecureURL
	item.PublicID = res.PublicID
	item.IsUploading = false
	item.File = nil
	p.syncLocked()
	p.mu.Unlock()
}

func (p *ImagePipeline) orphan(ctx context.Context, img domain.UploadedImage, reason string) {
	if p.onOrphan != nil {
		p.onOrphan(ctx, img, reason)
	}
}

func (p *ImagePipeline) indexOf(id string) int {
	return slices.IndexFunc(p.items, func(it domain.ImageItem) bool { return it.ID == id })
}

// syncLocked пересчитывает проекцию готовых фото и отдаёт её в черновик,
// только если она изменилась. Вызывать под p.mu.
func (p *ImagePipeline) syncLocked() {
	next := make([]domain.ImageRef, 0, len(p.items))
	for _, it := range p.items {
		if !it.Ready() {
			continue
		}
		next = append(next, domain.ImageRef{
			URL:          it.URL,
			PublicID:     it.PublicID,
			DisplayOrder: len(next),
			IsPrimary:    len(next) == 0,
		})
	}
	if slices.Equal(next, p.projection) {
		return
	}
	p.projection = next
	if p.sink != nil {
		out := make([]domain.ImageRef, len(next))
		copy(out, next)
		p.sink.SetImages(out)
	}
}

// Reorder - перемещение по позициям. Состояние загрузки не меняется.
func (p *ImagePipeline) Reorder(from, to int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frozen {
		return errors.ErrSubmissionInProgress
	}

	moved, err := utils.Move(p.items, from, to)
	if err != nil {
		return errors.ErrInvalidReorder.WithDetails(map[string]interface{}{"from": from, "to": to})
	}
	p.items = moved
	p.syncLocked()
	return nil
}

// MoveByID - перетаскивание activeID на место overID
func (p *ImagePipeline) MoveByID(activeID, overID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frozen {
		return errors.ErrSubmissionInProgress
	}

	from, to := p.indexOf(activeID), p.indexOf(overID)
	if from < 0 {
		return errors.ErrImageNotFound.WithDetails(map[string]interface{}{"imageId": activeID})
	}
	if to < 0 {
		return errors.ErrImageNotFound.WithDetails(map[string]interface{}{"imageId": overID})
	}
	moved, err := utils.Move(p.items, from, to)
	if err != nil {
		return errors.ErrInvalidReorder
	}
	p.items = moved
	p.syncLocked()
	return nil
}

// SetOrder - новый порядок списком id; список должен быть перестановкой текущих id
func (p *ImagePipeline) SetOrder(ids []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frozen {
		return errors.ErrSubmissionInProgress
	}

	if len(ids) != len(p.items) {
		return errors.ErrInvalidReorder.WithDetails(map[string]interface{}{"reason": "order must list every image"})
	}
	reordered := make([]domain.ImageItem, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		idx := p.indexOf(id)
		if idx < 0 || seen[id] {
			return errors.ErrInvalidReorder.WithDetails(map[string]interface{}{"imageId": id})
		}
		seen[id] = true
		reordered = append(reordered, p.items[idx])
	}
	p.items = reordered
	p.syncLocked()
	return nil
}

// Remove удаляет фото в любом состоянии. Уже загруженное фото уходит в сироты.
func (p *ImagePipeline) Remove(ctx context.Context, id string) error {
	p.mu.Lock()
	if p.frozen {
		p.mu.Unlock()
		return errors.ErrSubmissionInProgress
	}
	idx := p.indexOf(id)
	if idx < 0 {
		p.mu.Unlock()
		return errors.ErrImageNotFound.WithDetails(map[string]interface{}{"imageId": id})
	}
	removed := p.items[idx]
	p.items = slices.Delete(p.items, idx, idx+1)
	p.syncLocked()
	p.mu.Unlock()

	if removed.Ready() {
		p.orphan(ctx, domain.UploadedImage{SecureURL: removed.URL, PublicID: removed.PublicID}, domain.OrphanReasonRemoved)
	}
	return nil
}

// HasPending - есть ли фото в процессе загрузки
func (p *ImagePipeline) HasPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasPendingLocked()
}

func (p *ImagePipeline) hasPendingLocked() bool {
	return slices.ContainsFunc(p.items, func(it domain.ImageItem) bool { return it.IsUploading })
}

// Freeze запрещает добавление, удаление и перестановку фото до Unfreeze.
// false, если есть незавершённые загрузки: тогда пайплайн не замораживается.
func (p *ImagePipeline) Freeze() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hasPendingLocked() {
		return false
	}
	p.frozen = true
	return true
}

func (p *ImagePipeline) Unfreeze() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frozen = false
}

// Items - копия списка без бинарников
func (p *ImagePipeline) Items() []domain.ImageItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ImageItem, len(p.items))
	for i, it := range p.items {
		out[i] = publicItem(it)
	}
	return out
}

// Projection - текущая проекция готовых фото
func (p *ImagePipeline) Projection() []domain.ImageRef {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ImageRef, len(p.projection))
	copy(out, p.projection)
	return out
}

// DrainNotifications возвращает накопленные уведомления и очищает очередь
func (p *ImagePipeline) DrainNotifications() []domain.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.notifications
	p.notifications = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

// Close закрывает пайплайн и возвращает уже загруженные фото. Загрузки,
// завершившиеся после закрытия, уходят в сироты.
func (p *ImagePipeline) Close() []domain.UploadedImage {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	ready := make([]domain.UploadedImage, 0, len(p.items))
	for _, it := range p.items {
		if it.Ready() {
			ready = append(ready, domain.UploadedImage{SecureURL: it.URL, PublicID: it.PublicID})
		}
	}
	p.items = nil
	return ready
}

// Wait блокируется до завершения всех начатых загрузок
func (p *ImagePipeline) Wait() {
	p.wg.Wait()
}

func publicItem(it domain.ImageItem) domain.ImageItem {
	it.File = nil
	return it
}
