package imagehost

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/config"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
)

// Client - Cloudinary-совместимый хостинг изображений
type Client struct {
	http         *resty.Client
	cloudName    string
	uploadPreset string
	apiKey       string
	apiSecret    string
	logger       *zap.Logger
	now          func() time.Time
}

var _ repository.ImageHostRepository = (*Client)(nil)

func NewClient(cfg *config.ImageHostConfig, logger *zap.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.RequestTimeout),
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		apiKey:       cfg.APIKey,
		apiSecret:    cfg.APISecret,
		logger:       logger,
		now:          time.Now,
	}
}

// Upload - неподписанная загрузка через upload preset
func (c *Client) Upload(ctx context.Context, file *domain.ImageFile) (*domain.UploadedImage, error) {
	var uploaded domain.UploadedImage
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", file.Name, bytes.NewReader(file.Data)).
		SetFormData(map[string]string{"upload_preset": c.uploadPreset}).
		SetResult(&uploaded).
		Post(fmt.Sprintf("/%s/image/upload", c.cloudName))
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("upload %s: image host status %d: %s", file.Name, resp.StatusCode(), resp.String())
	}
	if uploaded.SecureURL == "" || uploaded.PublicID == "" {
		return nil, fmt.Errorf("upload %s: incomplete response: %s", file.Name, resp.String())
	}

	c.logger.Debug("Image uploaded",
		zap.String("file", file.Name),
		zap.String("public_id", uploaded.PublicID),
		zap.Int("bytes", len(file.Data)))
	return &uploaded, nil
}

// Destroy - подписанное удаление по publicId. Уже удалённый файл не ошибка.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	params := "public_id=" + publicID + "&timestamp=" + timestamp

	var result struct {
		Result string `json:"result"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"public_id": publicID,
			"timestamp": timestamp,
			"api_key":   c.apiKey,
			"signature": Sign(params, c.apiSecret),
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/%s/image/destroy", c.cloudName))
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("destroy %s: image host status %d: %s", publicID, resp.StatusCode(), resp.String())
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("destroy %s: unexpected result %q", publicID, result.Result)
	}
	return nil
}

// Sign - подпись запроса: SHA-1 от отсортированных параметров и секрета
func Sign(params, secret string) string {
	sum := sha1.Sum([]byte(params + secret))
	return hex.EncodeToString(sum[:])
}
