package refdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/config"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
)

// DocumentName - имя файла справочника: locations.ka.json, enums.en.json
func DocumentName(kind domain.ReferenceKind, locale string) string {
	return fmt.Sprintf("%s.%s.json", kind, locale)
}

// FileSource читает справочники из каталога
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Fetch(ctx context.Context, kind domain.ReferenceKind, locale string) ([]byte, error) {
	path := filepath.Join(s.dir, DocumentName(kind, locale))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// HTTPSource забирает справочники по HTTP
type HTTPSource struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewHTTPSource(baseURL string, logger *zap.Logger) *HTTPSource {
	return &HTTPSource{
		http:   resty.New().SetBaseURL(baseURL),
		logger: logger,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, kind domain.ReferenceKind, locale string) ([]byte, error) {
	name := DocumentName(kind, locale)
	resp, err := s.http.R().SetContext(ctx).Get("/" + name)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", name, resp.StatusCode())
	}
	s.logger.Debug("Reference document fetched", zap.String("name", name), zap.Int("bytes", len(resp.Body())))
	return resp.Body(), nil
}

// NewSource - HTTP, если задан REFDATA_BASE_URL, иначе каталог
func NewSource(cfg *config.RefDataConfig, logger *zap.Logger) repository.ReferenceSource {
	if cfg.BaseURL != "" {
		return NewHTTPSource(cfg.BaseURL, logger)
	}
	return NewFileSource(cfg.Dir)
}
