package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PlatformService manages the broker/exchange registry.
type PlatformService struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPlatformService creates a new PlatformService over the given database.
func NewPlatformService(db *sql.DB, log zerolog.Logger) *PlatformService {
	return &PlatformService{
		db:  db,
		log: log.With().Str("service", "platform").Logger(),
	}
}

// CreatePlatform stores a new platform.
func (s *PlatformService) CreatePlatform(ctx context.Context, name string) (*model.Platform, error) {
	platform := &model.Platform{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := repository.NewPlatformRepository(s.db).Insert(ctx, platform); err != nil {
		return nil, err
	}

	s.log.Info().Str("platform_id", platform.ID).Str("name", name).Msg("created platform")
	return platform, nil
}

// GetPlatform retrieves a single platform by its ID.
func (s *PlatformService) GetPlatform(ctx context.Context, platformID string) (model.Platform, error) {
	return repository.NewPlatformRepository(s.db).GetPlatform(ctx, platformID)
}

// GetPlatforms lists all platforms ordered by name.
func (s *PlatformService) GetPlatforms(ctx context.Context) ([]model.Platform, error) {
	return repository.NewPlatformRepository(s.db).GetPlatforms(ctx)
}

// UpdatePlatform renames a platform.
func (s *PlatformService) UpdatePlatform(ctx context.Context, platformID, name string) (*model.Platform, error) {
	repo := repository.NewPlatformRepository(s.db)

	platform, err := repo.GetPlatform(ctx, platformID)
	if err != nil {
		return nil, err
	}

	platform.Name = name
	if err := repo.Update(ctx, &platform); err != nil {
		return nil, err
	}

	s.log.Info().Str("platform_id", platformID).Msg("updated platform")
	return &platform, nil
}

// DeletePlatform removes a platform by ID.
func (s *PlatformService) DeletePlatform(ctx context.Context, platformID string) error {
	if err := repository.NewPlatformRepository(s.db).Delete(ctx, platformID); err != nil {
		return err
	}

	s.log.Info().Str("platform_id", platformID).Msg("deleted platform")
	return nil
}
