package repository

import (
	"context"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type UserProfileRepository interface {
	Create(ctx context.Context, user *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error)
}

type APIKeyRepository interface {
	Create(ctx context.Context, key *domain.APIKey) error
	GetByHash(ctx context.Context, hash string) (*domain.APIKey, error)
	Touch(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
}
