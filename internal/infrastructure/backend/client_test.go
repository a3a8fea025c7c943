package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/config"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.BackendConfig{BaseURL: server.URL, RequestTimeout: 5 * time.Second}, zap.NewNop())
}

func TestClient_Create(t *testing.T) {
	t.Run("sends bearer token and payload", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/apartment", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "2 Room Apartment in Vake", body["title"])
			specs := body["specifications"].(map[string]interface{})
			assert.Contains(t, specs, "buldingParameters")
			assert.Nil(t, specs["yardArea"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"abc-1"}`))
		})

		created, err := c.Create(context.Background(), "tok", &domain.Payload{Title: "2 Room Apartment in Vake"})
		require.NoError(t, err)
		assert.Equal(t, "abc-1", created.ID)
	})

	t.Run("non-2xx is a failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.Create(context.Background(), "tok", &domain.Payload{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUpstream)
	})
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apartment/my", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "vake", q.Get("search"))
		assert.False(t, q.Has("city"))
		assert.Equal(t, "date-desc", q.Get("sort"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","price":100000,"type":0,"address":{"city":"Tbilisi"},"images":[{"url":"a","isPrimary":false},{"url":"b","isPrimary":true}]}]`))
	})

	query := "vake"
	filters := domain.DefaultListingFilters().Merge(domain.ListingFiltersPatch{SearchQuery: &query})
	items, err := c.ListMine(context.Background(), "tok", filters)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tbilisi", items[0].Address.City)
	assert.Equal(t, "b", items[0].Cover())
}

func TestClient_GetByID_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apartment/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetByID(context.Background(), "42")
	assert.ErrorIs(t, err, errors.ErrListingNotFound)
}

func TestClient_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/account/login", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"me":{"id":"u1","email":"a@b.ge","name":"Nino"},"token":"jwt"}`))
		})

		res, err := c.Login(context.Background(), "a@b.ge", "secret")
		require.NoError(t, err)
		assert.Equal(t, "u1", res.Me.ID)
		assert.Equal(t, "jwt", res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := c.Login(context.Background(), "a@b.ge", "bad")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})
}
