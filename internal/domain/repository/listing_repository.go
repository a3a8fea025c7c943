package repository

import (
	"context"

	"github.com/listing-portal/internal/domain"
)

// ListingRepository - API объявлений бэкенда
type ListingRepository interface {
	// Create отправляет объявление от имени владельца токена
	Create(ctx context.Context, token string, payload *domain.Payload) (*domain.CreatedListing, error)

	GetByID(ctx context.Context, id string) (*domain.Listing, error)

	List(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error)

	// ListMine - объявления владельца токена
	ListMine(ctx context.Context, token string, filters domain.ListingFilters) ([]domain.Listing, error)
}

// AuthGateway - аккаунты бэкенда
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) error
}
