package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/config"
	server "github.com/listing-portal/internal/delivery/http"
	"github.com/listing-portal/internal/delivery/http/handler"
	"github.com/listing-portal/internal/delivery/http/middleware"
	"github.com/listing-portal/internal/domain"
	apperrors "github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/usecase"
)

type healthStub struct{ err error }

func (h healthStub) Health(ctx context.Context) error { return h.err }

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*domain.AuthSession
}

func (m *memSessions) Save(ctx context.Context, s *domain.AuthSession, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = s
	return nil
}

func (m *memSessions) Get(ctx context.Context, id string) (*domain.AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id], nil
}

func (m *memSessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type fakeGateway struct{}

func (fakeGateway) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if password != "secret" {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &domain.LoginResult{Me: domain.User{ID: "user-1", Email: email}, Token: "backend-token"}, nil
}

func (fakeGateway) Register(ctx context.Context, req domain.RegisterRequest) error { return nil }

type fakeListings struct {
	mu      sync.Mutex
	created []*domain.Payload
	filters []domain.ListingFilters
}

func (f *fakeListings) Create(ctx context.Context, token string, p *domain.Payload) (*domain.CreatedListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	return &domain.CreatedListing{ID: "listing-1"}, nil
}

func (f *fakeListings) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if id != "listing-1" {
		return nil, apperrors.ErrListingNotFound
	}
	return &domain.Listing{ID: id, Type: domain.PropertyApartment, Address: domain.ListingAddress{City: "Tbilisi"}}, nil
}

func (f *fakeListings) List(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filters)
	return []domain.Listing{}, nil
}

func (f *fakeListings) ListMine(ctx context.Context, token string, filters domain.ListingFilters) ([]domain.Listing, error) {
	return []domain.Listing{}, nil
}

type instantHost struct{}

func (instantHost) Upload(ctx context.Context, file *domain.ImageFile) (*domain.UploadedImage, error) {
	if file.Name == "broken.jpg" {
		return nil, errors.New("rejected")
	}
	return &domain.UploadedImage{SecureURL: "https://img/" + file.Name, PublicID: "listings/" + file.Name}, nil
}

func (instantHost) Destroy(ctx context.Context, publicID string) error { return nil }

type nopStreams struct{}

func (nopStreams) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	return nil, nil
}

func (nopStreams) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	return nil, nil
}

func (nopStreams) AckMessage(ctx context.Context, stream, group, messageID string) error { return nil }

func (nopStreams) AckMessages(ctx context.Context, stream, group string, ids []string) error {
	return nil
}

func (nopStreams) CreateConsumerGroup(ctx context.Context, stream, group string) error { return nil }

func (nopStreams) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return nil
}

type staticSource struct{}

func (staticSource) Fetch(ctx context.Context, kind domain.ReferenceKind, locale string) ([]byte, error) {
	if kind == domain.ReferenceEnums {
		return json.Marshal(domain.EnumCatalog{
			Statuses: []domain.Option{{ID: 1, Name: "New"}, {ID: 2, Name: "Old"}},
		})
	}
	ds := domain.LocationDataset{}
	ds.Locations.VisibleCities = []domain.RawCity{{
		CityID:    95,
		CityTitle: "Tbilisi",
		Districts: []domain.District{{
			DistrictID:    1,
			DistrictTitle: "Vake-Saburtalo",
			SubDistricts: []domain.SubDistrict{{
				SubDistrictID:    10,
				SubDistrictTitle: "Vake",
				Streets:          []domain.Street{{StreetID: 1001, StreetTitle: "Chavchavadze Ave"}},
			}},
		}},
	}}
	return json.Marshal(ds)
}

type testServer struct {
	app      *fiber.App
	listings *fakeListings
	store    *usecase.FormSessionStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.Config{
		Server: config.ServerConfig{AllowOrigins: "http://localhost:3000"},
		Auth:   config.AuthConfig{CookieName: "session_id", SessionTTL: time.Hour},
	}

	refs := usecase.NewReferenceUseCase(staticSource{}, nil, time.Hour, []string{"en", "ka", "ru"}, "en", logger)
	listings := &fakeListings{}
	opts := usecase.FormOptions{PinnedCityIDs: []int{95}, CityResultLimit: 50, StatusSplitIndex: 1}
	store := usecase.NewFormSessionStore(opts, instantHost{}, nil, time.Minute, time.Hour, logger)
	pricing := usecase.NewPricingUseCase(2.7)
	auth := usecase.NewAuthUseCase(fakeGateway{}, &memSessions{sessions: map[string]*domain.AuthSession{}}, time.Hour, logger)

	handlers := server.Handlers{
		Health:    handler.NewHealthHandler(healthStub{}, logger),
		Auth:      handler.NewAuthHandler(auth, cfg.Auth.CookieName, false, logger),
		Reference: handler.NewReferenceHandler(refs, usecase.NewLocationUseCase(refs, opts.PinnedCityIDs, 0, logger), logger),
		Listing:   handler.NewListingHandler(usecase.NewListingUseCase(listings, nil, time.Minute, logger), logger),
		Pricing:   handler.NewPricingHandler(pricing),
		Form: handler.NewFormHandler(
			usecase.NewFormUseCase(store, refs, pricing, logger),
			usecase.NewSubmitUseCase(store, refs, listings, nopStreams{}, "Georgia", logger),
			logger,
		),
	}

	srv := server.NewServer(cfg, logger, handlers, auth, refs)
	return &testServer{app: srv.App(), listings: listings, store: store}
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *apperrors.AppError `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, session string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	status, env := s.do(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "secret",
	})
	require.Equal(t, fiber.StatusOK, status)
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, fiber.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}

func TestServer_Auth(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "owner@example.com", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, apperrors.ErrInvalidCredentials.Code, env.Error.Code)

	status, env = s.do(t, fiber.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email", "password": "secret"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "email", env.Error.Details["field"])

	session := s.login(t)

	status, env = s.do(t, fiber.MethodGet, "/api/v1/auth/me", session, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), "owner@example.com")
	assert.NotContains(t, string(env.Data), "backend-token")

	status, _ = s.do(t, fiber.MethodPost, "/api/v1/auth/logout", session, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(t, fiber.MethodGet, "/api/v1/auth/me", session, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestServer_LoginSetsCookie(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"email":"owner@example.com","password":"secret"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := s.app.Test(req)
	require.NoError(t, err)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	me := httptest.NewRequest(fiber.MethodGet, "/api/v1/auth/me", nil)
	me.AddCookie(&http.Cookie{Name: "session_id", Value: cookie.Value})
	status, _ := s.send(t, me)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestServer_ListingFilters(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, fiber.MethodGet, "/api/v1/listings?search=vake&city=Tbilisi&type=1&minPrice=100&sortBy=price-asc", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, s.listings.filters, 1)
	got := s.listings.filters[0]
	assert.Equal(t, "vake", got.SearchQuery)
	assert.Equal(t, "Tbilisi", got.City)
	assert.Equal(t, domain.PropertyHouse, *got.Type)
	assert.InDelta(t, 100, got.MinPrice, 1e-9)
	assert.InDelta(t, domain.DefaultFilterMaxPrice, got.MaxPrice, 1e-9)
	assert.Equal(t, "price-asc", got.SortBy)

	status, env := s.do(t, fiber.MethodGet, "/api/v1/listings?minPrice=cheap", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "minPrice", env.Error.Details["field"])

	status, _ = s.do(t, fiber.MethodGet, "/api/v1/listings/my", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.do(t, fiber.MethodGet, "/api/v1/listings/missing", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestServer_LocaleValidation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, fiber.MethodGet, "/api/v1/locations?locale=de", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperrors.ErrUnsupportedLocale.Code, env.Error.Code)

	status, env = s.do(t, fiber.MethodGet, "/api/v1/locations?q=tbi", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), "Tbilisi")

	status, _ = s.do(t, fiber.MethodGet, "/api/v1/locations/95/streets?q=chav", "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(t, fiber.MethodGet, "/api/v1/locations/abc/streets", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestServer_PricingPreview(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, fiber.MethodPost, "/api/v1/pricing/preview", "", map[string]interface{}{
		"amount": 270, "currency": "GEL", "mode": "total",
	})
	require.Equal(t, fiber.StatusOK, status)
	var preview struct {
		TotalUSD float64 `json:"totalUsd"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.InDelta(t, 100, preview.TotalUSD, 1e-9)

	status, _ = s.do(t, fiber.MethodPost, "/api/v1/pricing/preview", "", map[string]interface{}{"amount": 1, "currency": "EUR"})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func multipartImages(t *testing.T, path, session string, names ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		contentType := "image/jpeg"
		if name == "notes.txt" {
			contentType = "text/plain"
		}
		h.Set(fiber.HeaderContentType, contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("binary " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(middleware.SessionHeader, session)
	return req
}

func TestServer_FormLifecycle(t *testing.T) {
	s := newTestServer(t)
	session := s.login(t)

	status, _ := s.do(t, fiber.MethodPost, "/api/v1/forms", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, env := s.do(t, fiber.MethodPost, "/api/v1/forms?locale=ka", session, nil)
	require.Equal(t, fiber.StatusCreated, status)
	var form struct {
		ID     string `json:"id"`
		Locale string `json:"locale"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &form))
	assert.Equal(t, "ka", form.Locale)
	base := "/api/v1/forms/" + form.ID

	status, env = s.do(t, fiber.MethodPost, base+"/submit", session, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "locationId", env.Error.Details["field"])

	status, _ = s.do(t, fiber.MethodPut, base+"/location", session, map[string]int{"locationId": 95})
	require.Equal(t, fiber.StatusOK, status)
	status, _ = s.do(t, fiber.MethodPut, base+"/street", session, map[string]int{"streetId": 1001})
	require.Equal(t, fiber.StatusOK, status)
	status, _ = s.do(t, fiber.MethodPatch, base+"/fields", session, map[string]interface{}{
		"values": map[string]string{
			"area": "80", "status": "1", "rooms": "3", "bedrooms": "2", "totalFloors": "9", "condition": "1",
		},
	})
	require.Equal(t, fiber.StatusOK, status)
	status, _ = s.do(t, fiber.MethodPut, base+"/price", session, map[string]interface{}{"amount": 1500, "currency": "USD", "mode": "perSqm"})
	require.Equal(t, fiber.StatusOK, status)
	status, env = s.do(t, fiber.MethodPost, base+"/flags/badges/toggle", session, map[string]int{"value": 2})
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), `"value":2`)

	status, env = s.send(t, multipartImages(t, base+"/images", session, "notes.txt"))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "image", env.Error.Details["rule"])

	status, _ = s.send(t, multipartImages(t, base+"/images", session, "a.jpg", "broken.jpg"))
	require.Equal(t, fiber.StatusAccepted, status)

	require.Eventually(t, func() bool {
		_, env := s.do(t, fiber.MethodGet, base, session, nil)
		var st struct {
			UploadsPending bool `json:"uploadsPending"`
		}
		return json.Unmarshal(env.Data, &st) == nil && !st.UploadsPending
	}, 2*time.Second, 10*time.Millisecond)

	status, env = s.do(t, fiber.MethodGet, base+"/notifications", session, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(env.Data), domain.NotificationUploadFailed)

	status, env = s.do(t, fiber.MethodPost, base+"/submit", session, nil)
	require.Equal(t, fiber.StatusCreated, status, string(env.Data))
	assert.Contains(t, string(env.Data), "listing-1")

	require.Len(t, s.listings.created, 1)
	payload := s.listings.created[0]
	assert.InDelta(t, 120000, *payload.Price, 1e-9)
	assert.Equal(t, "Chavchavadze Ave", payload.Address.Street)
	assert.Equal(t, 10, *payload.Address.SubDistrictID)
	require.Len(t, payload.Images, 1)
	assert.Equal(t, 2, *payload.Specifications.Badges)

	status, _ = s.do(t, fiber.MethodGet, base, session, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestServer_FormBelongsToOwner(t *testing.T) {
	s := newTestServer(t)
	session := s.login(t)

	foreign := s.store.Create("someone-else", "en")

	status, env := s.do(t, fiber.MethodGet, "/api/v1/forms/"+foreign.ID, session, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apperrors.ErrFormNotFound.Code, env.Error.Code)

	status, _ = s.do(t, fiber.MethodDelete, "/api/v1/forms/"+foreign.ID, session, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, 1, s.store.Len())
}
