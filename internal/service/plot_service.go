package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "forestinv/internal/errors"
	"forestinv/internal/model"
	"forestinv/internal/repository"
)

// CreatePlotInput is the payload for creating a plot.
type CreatePlotInput struct {
	Code        string
	Name        string
	Latitude    float64
	Longitude   float64
	Altitude    *float64
	AreaHa      float64
	Description string
	Location    string
	CreatedByID uuid.UUID
}

// UpdatePlotInput carries optional plot mutations.
type UpdatePlotInput struct {
	Name        *string
	Description *string
	Location    *string
	AreaHa      *float64
	Active      *bool
}

// PlotService exposes plot CRUD.
type PlotService interface {
	List(ctx context.Context) ([]model.Plot, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Plot, error)
	Create(ctx context.Context, input CreatePlotInput) (*model.Plot, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePlotInput) (*model.Plot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type plotService struct {
	repo repository.PlotRepository
}

// NewPlotService builds a PlotService.
func NewPlotService(repo repository.PlotRepository) PlotService {
	return &plotService{repo: repo}
}

func (s *plotService) List(ctx context.Context) ([]model.Plot, error) {
	return s.repo.List(ctx)
}

func (s *plotService) Get(ctx context.Context, id uuid.UUID) (*model.Plot, error) {
	plot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return plot, nil
}

func (s *plotService) Create(ctx context.Context, input CreatePlotInput) (*model.Plot, error) {
	plot := &model.Plot{
		ID:          uuid.New(),
		Code:        input.Code,
		Name:        input.Name,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Altitude:    input.Altitude,
		AreaHa:      input.AreaHa,
		Description: input.Description,
		Location:    input.Location,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		CreatedByID: input.CreatedByID,
	}
	if err := s.repo.Create(ctx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

func (s *plotService) Update(ctx context.Context, id uuid.UUID, input UpdatePlotInput) (*model.Plot, error) {
	plot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		plot.Name = *input.Name
	}
	if input.Description != nil {
		plot.Description = *input.Description
	}
	if input.Location != nil {
		plot.Location = *input.Location
	}
	if input.AreaHa != nil {
		plot.AreaHa = *input.AreaHa
	}
	if input.Active != nil {
		plot.Active = *input.Active
	}
	now := time.Now().UTC()
	plot.UpdatedAt = &now

	if err := s.repo.Update(ctx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

func (s *plotService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
