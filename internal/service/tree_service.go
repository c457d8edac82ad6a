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

// CreateTreeInput is the payload for recording a tree measurement.
type CreateTreeInput struct {
	TreeNumber       int
	Latitude         float64
	Longitude        float64
	Altitude         *float64
	DBH              float64
	Height           float64
	CommercialHeight *float64
	CrownDiameter    *float64
	Notes            string
	PlotID           uuid.UUID
	SpeciesID        uuid.UUID
	CreatedByID      uuid.UUID
}

// UpdateTreeInput carries optional tree mutations.
type UpdateTreeInput struct {
	DBH              *float64
	Height           *float64
	CommercialHeight *float64
	CrownDiameter    *float64
	Condition        *model.TreeCondition
	Notes            *string
	SpeciesID        *uuid.UUID
	Synced           *bool
}

// TreeService exposes tree CRUD.
type TreeService interface {
	List(ctx context.Context) ([]model.Tree, error)
	ListByPlot(ctx context.Context, plotID uuid.UUID) ([]model.Tree, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Tree, error)
	Create(ctx context.Context, input CreateTreeInput) (*model.Tree, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTreeInput) (*model.Tree, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type treeService struct {
	repo  repository.TreeRepository
	plots repository.PlotRepository
}

// NewTreeService builds a TreeService.
func NewTreeService(repo repository.TreeRepository, plots repository.PlotRepository) TreeService {
	return &treeService{repo: repo, plots: plots}
}

func (s *treeService) List(ctx context.Context) ([]model.Tree, error) {
	return s.repo.List(ctx)
}

func (s *treeService) ListByPlot(ctx context.Context, plotID uuid.UUID) ([]model.Tree, error) {
	return s.repo.ListByPlot(ctx, plotID)
}

func (s *treeService) Get(ctx context.Context, id uuid.UUID) (*model.Tree, error) {
	tree, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return tree, nil
}

func (s *treeService) Create(ctx context.Context, input CreateTreeInput) (*model.Tree, error) {
	if _, err := s.plots.FindByID(ctx, input.PlotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	id := uuid.New()
	tree := &model.Tree{
		ID:               id,
		Code:             id.String()[:8],
		TreeNumber:       input.TreeNumber,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		Altitude:         input.Altitude,
		DBH:              input.DBH,
		Height:           input.Height,
		CommercialHeight: input.CommercialHeight,
		CrownDiameter:    input.CrownDiameter,
		Condition:        model.TreeHealthy,
		Notes:            input.Notes,
		MeasuredAt:       now,
		CreatedAt:        now,
		Synced:           false,
		PlotID:           input.PlotID,
		SpeciesID:        input.SpeciesID,
		CreatedByID:      input.CreatedByID,
	}
	if err := s.repo.Create(ctx, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *treeService) Update(ctx context.Context, id uuid.UUID, input UpdateTreeInput) (*model.Tree, error) {
	tree, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if input.DBH != nil {
		tree.DBH = *input.DBH
	}
	if input.Height != nil {
		tree.Height = *input.Height
	}
	if input.CommercialHeight != nil {
		tree.CommercialHeight = input.CommercialHeight
	}
	if input.CrownDiameter != nil {
		tree.CrownDiameter = input.CrownDiameter
	}
	if input.Condition != nil {
		tree.Condition = *input.Condition
	}
	if input.Notes != nil {
		tree.Notes = *input.Notes
	}
	if input.SpeciesID != nil {
		tree.SpeciesID = *input.SpeciesID
	}
	if input.Synced != nil {
		tree.Synced = *input.Synced
	}
	now := time.Now().UTC()
	tree.UpdatedAt = &now

	if err := s.repo.Update(ctx, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *treeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
