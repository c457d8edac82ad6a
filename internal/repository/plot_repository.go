package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forestinv/internal/model"
)

// PlotRepository defines plot persistence operations.
type PlotRepository interface {
	Create(ctx context.Context, plot *model.Plot) error
	Update(ctx context.Context, plot *model.Plot) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Plot, error)
	List(ctx context.Context) ([]model.Plot, error)
	ListWithTrees(ctx context.Context) ([]model.Plot, error)
	Count(ctx context.Context) (int64, error)
}

type plotRepository struct {
	db *gorm.DB
}

// NewPlotRepository builds a GORM-backed repository.
func NewPlotRepository(db *gorm.DB) PlotRepository {
	return &plotRepository{db: db}
}

func (r *plotRepository) Create(ctx context.Context, plot *model.Plot) error {
	return r.db.WithContext(ctx).Create(plot).Error
}

func (r *plotRepository) Update(ctx context.Context, plot *model.Plot) error {
	return r.db.WithContext(ctx).Save(plot).Error
}

func (r *plotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Plot{}, "id = ?", id).Error
}

func (r *plotRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Plot, error) {
	var plot model.Plot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plot).Error; err != nil {
		return nil, err
	}
	return &plot, nil
}

func (r *plotRepository) List(ctx context.Context) ([]model.Plot, error) {
	var plots []model.Plot
	if err := r.db.WithContext(ctx).Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

func (r *plotRepository) ListWithTrees(ctx context.Context) ([]model.Plot, error) {
	var plots []model.Plot
	if err := r.db.WithContext(ctx).Preload("Trees").Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

func (r *plotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Plot{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
