package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

const (
	minPasswordLength = 8
	apiKeyPrefix      = "ssk_"
	apiKeyBytes       = 32
	tokenIssuer       = "sport-scribe"
)

type authService struct {
	userRepo   repository.UserProfileRepository
	apiKeyRepo repository.APIKeyRepository
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(
	userRepo repository.UserProfileRepository,
	apiKeyRepo repository.APIKeyRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		apiKeyRepo: apiKeyRepo,
		secret:     []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*domain.UserProfile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return nil, domain.NewBadRequestError("invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.NewBadRequestError("password must be at least %d characters", minPasswordLength)
	}

	role := req.Role
	if role == "" {
		role = domain.RoleReader
	}
	if !role.IsValid() {
		return nil, domain.NewBadRequestError("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}

	user := &domain.UserProfile{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signin answers UNAUTHORIZED for both unknown emails and wrong passwords.
func (s *authService) Signin(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	if !claims.Role.IsValid() || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) CreateAPIKey(ctx context.Context, name string) (string, *domain.APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, domain.NewBadRequestError("api key name is required")
	}

	raw := make([]byte, apiKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("generate api key: %w", err)
	}
	plaintext := apiKeyPrefix + hex.EncodeToString(raw)

	key := &domain.APIKey{
		ID:      uuid.NewString(),
		Name:    name,
		KeyHash: HashAPIKey(plaintext),
	}
	if err := s.apiKeyRepo.Create(ctx, key); err != nil {
		return "", nil, err
	}
	return plaintext, key, nil
}

func (s *authService) AuthenticateAPIKey(ctx context.Context, plaintext string) (*domain.APIKey, error) {
	if !strings.HasPrefix(plaintext, apiKeyPrefix) {
		return nil, domain.ErrUnauthorized
	}

	key, err := s.apiKeyRepo.GetByHash(ctx, HashAPIKey(plaintext))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if key.RevokedAt != nil {
		return nil, domain.ErrUnauthorized
	}

	if err := s.apiKeyRepo.Touch(ctx, key.ID); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *authService) RevokeAPIKey(ctx context.Context, id string) error {
	return s.apiKeyRepo.Revoke(ctx, id)
}

// HashAPIKey is the hex sha256 stored for a plaintext key.
func HashAPIKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
