package service

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/bagdasarian/sport-scribe/internal/domain"
	"github.com/bagdasarian/sport-scribe/internal/repository"
)

var configKeyPattern = regexp.MustCompile(`^[a-z0-9_.-]{1,128}$`)

type ConfigService interface {
	GetConfig(ctx context.Context, key string) (*domain.SystemConfig, error)
	SetConfig(ctx context.Context, key string, value json.RawMessage, description string) (*domain.SystemConfig, error)
	ListConfig(ctx context.Context) ([]*domain.SystemConfig, error)
}

type configService struct {
	configRepo repository.SystemConfigRepository
}

func NewConfigService(configRepo repository.SystemConfigRepository) ConfigService {
	return &configService{configRepo: configRepo}
}

func (s *configService) GetConfig(ctx context.Context, key string) (*domain.SystemConfig, error) {
	return s.configRepo.Get(ctx, key)
}

func (s *configService) SetConfig(ctx context.Context, key string, value json.RawMessage, description string) (*domain.SystemConfig, error) {
	if !configKeyPattern.MatchString(key) {
		return nil, domain.NewBadRequestError("config key must match %s", configKeyPattern.String())
	}
	if len(value) == 0 || !json.Valid(value) {
		return nil, domain.NewBadRequestError("config value must be valid JSON")
	}

	cfg := &domain.SystemConfig{
		Key:         key,
		Value:       value,
		Description: description,
	}
	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *configService) ListConfig(ctx context.Context) ([]*domain.SystemConfig, error) {
	return s.configRepo.List(ctx)
}
