package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forestinv/internal/cache"
	apperrors "forestinv/internal/errors"
	"forestinv/internal/model"
	"forestinv/internal/repository"
)

const speciesCacheKey = "species:list"
const speciesCacheTTL = 10 * time.Minute

// CreateSpeciesInput is the payload for adding a species to the catalog.
type CreateSpeciesInput struct {
	CommonName     string
	ScientificName string
	Family         string
	Description    string
	WoodDensity    *float64
}

// UpdateSpeciesInput carries optional species mutations.
type UpdateSpeciesInput struct {
	CommonName     *string
	ScientificName *string
	Family         *string
	Description    *string
	WoodDensity    *float64
	Active         *bool
}

// SpeciesService exposes the species catalog. The full list is read far more
// often than it changes (every field capture screen loads it), so it is cached.
type SpeciesService interface {
	List(ctx context.Context) ([]model.Species, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Species, error)
	Create(ctx context.Context, input CreateSpeciesInput) (*model.Species, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSpeciesInput) (*model.Species, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type speciesService struct {
	repo  repository.SpeciesRepository
	cache *cache.Client
}

// NewSpeciesService builds a SpeciesService with repository and cache.
func NewSpeciesService(repo repository.SpeciesRepository, cache *cache.Client) SpeciesService {
	return &speciesService{repo: repo, cache: cache}
}

func (s *speciesService) List(ctx context.Context) ([]model.Species, error) {
	if data, _ := s.cache.Get(ctx, speciesCacheKey); data != nil {
		var cached []model.Species
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(list); err == nil {
		_ = s.cache.Set(ctx, speciesCacheKey, payload, speciesCacheTTL)
	}
	return list, nil
}

func (s *speciesService) Get(ctx context.Context, id uuid.UUID) (*model.Species, error) {
	species, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return species, nil
}

func (s *speciesService) Create(ctx context.Context, input CreateSpeciesInput) (*model.Species, error) {
	species := &model.Species{
		ID:             uuid.New(),
		CommonName:     input.CommonName,
		ScientificName: input.ScientificName,
		Family:         input.Family,
		Description:    input.Description,
		WoodDensity:    input.WoodDensity,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, species); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, speciesCacheKey)
	return species, nil
}

func (s *speciesService) Update(ctx context.Context, id uuid.UUID, input UpdateSpeciesInput) (*model.Species, error) {
	species, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if input.CommonName != nil {
		species.CommonName = *input.CommonName
	}
	if input.ScientificName != nil {
		species.ScientificName = *input.ScientificName
	}
	if input.Family != nil {
		species.Family = *input.Family
	}
	if input.Description != nil {
		species.Description = *input.Description
	}
	if input.WoodDensity != nil {
		species.WoodDensity = input.WoodDensity
	}
	if input.Active != nil {
		species.Active = *input.Active
	}

	if err := s.repo.Update(ctx, species); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, speciesCacheKey)
	return species, nil
}

func (s *speciesService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, speciesCacheKey)
	return nil
}
