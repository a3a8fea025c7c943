package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/domain"
	apperrors "github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/usecase"
)

func newTestStore(idleTTL time.Duration) (*usecase.FormSessionStore, *gatedUploader, *orphanRecorder) {
	uploader := newGatedUploader()
	orphans := &orphanRecorder{}
	store := usecase.NewFormSessionStore(testFormOptions, uploader, orphans.handle, time.Minute, idleTTL, zap.NewNop())
	return store, uploader, orphans
}

func TestFormSessionStore_OwnerIsolation(t *testing.T) {
	store, _, _ := newTestStore(time.Hour)

	session := store.Create("user-1", domain.LocaleEn)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, domain.LocaleEn, session.Locale)

	got, err := store.Get(session.ID, "user-1")
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = store.Get(session.ID, "user-2")
	assert.ErrorIs(t, err, apperrors.ErrFormNotFound)

	_, err = store.Get("missing", "user-1")
	assert.ErrorIs(t, err, apperrors.ErrFormNotFound)

	assert.ErrorIs(t, store.Discard(context.Background(), session.ID, "user-2"), apperrors.ErrFormNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestFormSessionStore_ImagesFlowIntoDraft(t *testing.T) {
	store, uploader, _ := newTestStore(time.Hour)
	session := store.Create("user-1", domain.LocaleEn)

	_, err := session.Images.AddFiles(context.Background(), imageFiles("a"))
	require.NoError(t, err)
	uploader.succeed("a")
	session.Images.Wait()

	draft := session.Form.Draft()
	require.Len(t, draft.Images, 1)
	assert.Equal(t, "listings/a", draft.Images[0].PublicID)
	assert.True(t, draft.Images[0].IsPrimary)
}

func TestFormSessionStore_DiscardOrphansReadyImages(t *testing.T) {
	store, uploader, orphans := newTestStore(time.Hour)
	session := store.Create("user-1", domain.LocaleEn)

	_, err := session.Images.AddFiles(context.Background(), imageFiles("a", "b"))
	require.NoError(t, err)
	uploader.succeed("a")
	waitReady(t, session.Images, "a")

	require.NoError(t, store.Discard(context.Background(), session.ID, "user-1"))
	assert.Zero(t, store.Len())

	// "b" догружается после закрытия формы
	uploader.succeed("b")
	session.Images.Wait()

	assert.ElementsMatch(t, []orphanRecord{
		{publicID: "listings/a", reason: domain.OrphanReasonSessionDiscarded, formID: session.ID},
		{publicID: "listings/b", reason: domain.OrphanReasonSessionDiscarded, formID: session.ID},
	}, orphans.all())
}

func TestFormSessionStore_CompleteKeepsImages(t *testing.T) {
	store, uploader, orphans := newTestStore(time.Hour)
	session := store.Create("user-1", domain.LocaleEn)

	_, err := session.Images.AddFiles(context.Background(), imageFiles("a"))
	require.NoError(t, err)
	uploader.succeed("a")
	session.Images.Wait()

	store.Complete(session.ID)
	assert.Zero(t, store.Len())
	assert.Empty(t, orphans.all())
}

func TestFormSessionStore_EvictIdle(t *testing.T) {
	store, uploader, orphans := newTestStore(0)

	idle := store.Create("user-1", domain.LocaleEn)
	_, err := idle.Images.AddFiles(context.Background(), imageFiles("a"))
	require.NoError(t, err)
	uploader.succeed("a")
	idle.Images.Wait()

	busy := store.Create("user-2", domain.LocaleEn)
	require.NoError(t, busy.BeginSubmit())

	evicted := store.EvictIdle(context.Background())
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(busy.ID, "user-2")
	assert.NoError(t, err)
	_, err = store.Get(idle.ID, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrFormNotFound)

	assert.Equal(t, []orphanRecord{
		{publicID: "listings/a", reason: domain.OrphanReasonSessionDiscarded, formID: idle.ID},
	}, orphans.all())
}

func TestFormSessionStore_EvictIdleKeepsActive(t *testing.T) {
	store, _, _ := newTestStore(time.Hour)
	store.Create("user-1", domain.LocaleEn)

	assert.Zero(t, store.EvictIdle(context.Background()))
	assert.Equal(t, 1, store.Len())
}

func TestFormSessionStore_Shutdown(t *testing.T) {
	store, uploader, orphans := newTestStore(time.Hour)

	first := store.Create("user-1", domain.LocaleEn)
	second := store.Create("user-2", domain.LocaleKa)
	_, err := first.Images.AddFiles(context.Background(), imageFiles("a"))
	require.NoError(t, err)
	_, err = second.Images.AddFiles(context.Background(), imageFiles("b"))
	require.NoError(t, err)

	uploader.succeed("a")
	uploader.succeed("b")

	closed := store.Shutdown(context.Background())
	assert.Equal(t, 2, closed)
	assert.Zero(t, store.Len())

	records := orphans.all()
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, domain.OrphanReasonSessionDiscarded, r.reason)
	}
}

func TestFormSession_BeginSubmit(t *testing.T) {
	store, _, _ := newTestStore(time.Hour)
	session := store.Create("user-1", domain.LocaleEn)

	require.NoError(t, session.BeginSubmit())
	assert.ErrorIs(t, session.BeginSubmit(), apperrors.ErrSubmissionInProgress)
	assert.True(t, session.Submitting())

	session.EndSubmit()
	assert.False(t, session.Submitting())
}

func TestFormSession_BeginSubmitFreezesForm(t *testing.T) {
	store, uploader, _ := newTestStore(time.Hour)
	session := store.Create("user-1", domain.LocaleEn)
	ctx := context.Background()

	_, err := session.Images.AddFiles(ctx, imageFiles("a"))
	require.NoError(t, err)
	// пока фото грузится, отправку не начать
	assert.ErrorIs(t, session.BeginSubmit(), apperrors.ErrUploadsPending)
	assert.False(t, session.Submitting())

	uploader.succeed("a")
	session.Images.Wait()
	id := session.Images.Items()[0].ID

	require.NoError(t, session.BeginSubmit())
	assert.ErrorIs(t, session.Images.Remove(ctx, id), apperrors.ErrSubmissionInProgress)
	assert.ErrorIs(t, session.Images.Reorder(0, 0), apperrors.ErrSubmissionInProgress)
	_, err = session.Images.AddFiles(ctx, imageFiles("b"))
	assert.ErrorIs(t, err, apperrors.ErrSubmissionInProgress)
	assert.ErrorIs(t, session.Form.SetField(domain.FieldArea, "50"), apperrors.ErrSubmissionInProgress)
	assert.ErrorIs(t, session.Form.SetPrice(nil), apperrors.ErrSubmissionInProgress)
	_, err = session.Form.ToggleFlag(domain.FlagBadges, 2)
	assert.ErrorIs(t, err, apperrors.ErrSubmissionInProgress)
	assert.Len(t, session.Form.Draft().Images, 1)

	session.EndSubmit()
	require.NoError(t, session.Images.Remove(ctx, id))
	require.NoError(t, session.Form.SetField(domain.FieldArea, "50"))
	assert.Empty(t, session.Form.Draft().Images)
}
