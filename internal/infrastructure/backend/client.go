package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/config"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/domain/repository"
	"github.com/listing-portal/internal/pkg/errors"
)

// Client - клиент REST API бэкенда объявлений
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient создаёт клиент по настройкам BACKEND_*
func NewClient(cfg *config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.RequestTimeout).
			SetHeader("Accept", "application/json"),
		logger: logger,
	}
}

var (
	_ repository.ListingRepository = (*Client)(nil)
	_ repository.AuthGateway       = (*Client)(nil)
)

// Create - POST /apartment от имени владельца токена
func (c *Client) Create(ctx context.Context, token string, payload *domain.Payload) (*domain.CreatedListing, error) {
	var created domain.CreatedListing
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&created).
		Post("/apartment")
	if err != nil {
		c.logger.Error("Backend request failed", zap.String("op", "create"), zap.Error(err))
		return nil, fmt.Errorf("create listing: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Backend rejected listing",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()))
		return nil, fmt.Errorf("create listing: %w", upstream(resp))
	}

	c.logger.Debug("Listing created on backend", zap.String("listing_id", created.ID))
	return &created, nil
}

// GetByID - GET /apartment/{id}
func (c *Client) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	var listing domain.Listing
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&listing).
		Get("/apartment/{id}")
	if err != nil {
		c.logger.Error("Backend request failed", zap.String("op", "get"), zap.Error(err))
		return nil, fmt.Errorf("get listing %s: %w", id, errors.ErrUpstream)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, errors.ErrListingNotFound.WithDetails(map[string]interface{}{"id": id})
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get listing %s: %w", id, upstream(resp))
	}
	return &listing, nil
}

// List - GET /apartment
func (c *Client) List(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error) {
	return c.list(ctx, "/apartment", "", filters)
}

// ListMine - GET /apartment/my
func (c *Client) ListMine(ctx context.Context, token string, filters domain.ListingFilters) ([]domain.Listing, error) {
	return c.list(ctx, "/apartment/my", token, filters)
}

func (c *Client) list(ctx context.Context, path, token string, filters domain.ListingFilters) ([]domain.Listing, error) {
	var listings []domain.Listing
	req := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(filters.Query()).
		SetResult(&listings)
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get(path)
	if err != nil {
		c.logger.Error("Backend request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("list %s: %w", path, errors.ErrUpstream)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, errors.ErrUnauthorized
	}
	if resp.IsError() {
		c.logger.Error("Backend returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()))
		return nil, fmt.Errorf("list %s: %w", path, upstream(resp))
	}
	return listings, nil
}

// Login - POST /account/login
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var result domain.LoginResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		Post("/account/login")
	if err != nil {
		c.logger.Error("Backend request failed", zap.String("op", "login"), zap.Error(err))
		return nil, fmt.Errorf("login: %w", errors.ErrUpstream)
	}
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusBadRequest:
		return nil, errors.ErrInvalidCredentials
	case resp.IsError():
		return nil, fmt.Errorf("login: %w", upstream(resp))
	case result.Token == "":
		return nil, fmt.Errorf("login: empty token: %w", errors.ErrUpstream)
	}
	return &result, nil
}

// Register - POST /register
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/register")
	if err != nil {
		c.logger.Error("Backend request failed", zap.String("op", "register"), zap.Error(err))
		return fmt.Errorf("register: %w", errors.ErrUpstream)
	}
	if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusConflict {
		return errors.ErrInvalidRequest.WithMessage(resp.String())
	}
	if resp.IsError() {
		return fmt.Errorf("register: %w", upstream(resp))
	}
	return nil
}

func upstream(resp *resty.Response) *errors.AppError {
	return errors.ErrUpstream.WithDetails(map[string]interface{}{
		"status": resp.StatusCode(),
	})
}
