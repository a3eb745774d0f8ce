package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bagdasarian/sport-scribe/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*domain.UserProfile, error)
	Signin(ctx context.Context, email, password string) (*Session, error)
	ParseToken(token string) (*Claims, error)
	GetUser(ctx context.Context, id string) (*domain.UserProfile, error)
	// CreateAPIKey returns the plaintext key once; only its hash is stored.
	CreateAPIKey(ctx context.Context, name string) (string, *domain.APIKey, error)
	AuthenticateAPIKey(ctx context.Context, key string) (*domain.APIKey, error)
	RevokeAPIKey(ctx context.Context, id string) error
}

type SignupRequest struct {
	Email       string
	Password    string
	DisplayName string
	// Role is honored only by trusted callers such as the CLI; public
	// signups are always readers.
	Role domain.Role
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.UserProfile
}

type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}
