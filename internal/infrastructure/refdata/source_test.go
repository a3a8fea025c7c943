package refdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/config"
	"github.com/listing-portal/internal/domain"
)

func TestFileSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locations.en.json"), []byte(`{"locations":{}}`), 0o644))

	src := NewFileSource(dir)

	data, err := src.Fetch(context.Background(), domain.ReferenceLocations, "en")
	require.NoError(t, err)
	assert.JSONEq(t, `{"locations":{}}`, string(data))

	_, err = src.Fetch(context.Background(), domain.ReferenceEnums, "en")
	assert.Error(t, err)
}

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/enums.ka.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"statuses":[]}`))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL, zap.NewNop())

	data, err := src.Fetch(context.Background(), domain.ReferenceEnums, "ka")
	require.NoError(t, err)
	assert.JSONEq(t, `{"statuses":[]}`, string(data))

	_, err = src.Fetch(context.Background(), domain.ReferenceEnums, "ru")
	assert.Error(t, err)
}

func TestNewSource(t *testing.T) {
	assert.IsType(t, &HTTPSource{}, NewSource(&config.RefDataConfig{BaseURL: "http://ref"}, zap.NewNop()))
	assert.IsType(t, &FileSource{}, NewSource(&config.RefDataConfig{Dir: "./data"}, zap.NewNop()))
}
