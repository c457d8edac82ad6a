package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forestinv/internal/model"
)

// SpeciesRepository defines species-catalog persistence operations.
type SpeciesRepository interface {
	Create(ctx context.Context, species *model.Species) error
	Update(ctx context.Context, species *model.Species) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Species, error)
	List(ctx context.Context) ([]model.Species, error)
	Count(ctx context.Context) (int64, error)
}

type speciesRepository struct {
	db *gorm.DB
}

// NewSpeciesRepository builds a GORM-backed repository.
func NewSpeciesRepository(db *gorm.DB) SpeciesRepository {
	return &speciesRepository{db: db}
}

func (r *speciesRepository) Create(ctx context.Context, species *model.Species) error {
	return r.db.WithContext(ctx).Create(species).Error
}

func (r *speciesRepository) Update(ctx context.Context, species *model.Species) error {
	return r.db.WithContext(ctx).Save(species).Error
}

func (r *speciesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Species{}, "id = ?", id).Error
}

func (r *speciesRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Species, error) {
	var species model.Species
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&species).Error; err != nil {
		return nil, err
	}
	return &species, nil
}

func (r *speciesRepository) List(ctx context.Context) ([]model.Species, error) {
	var list []model.Species
	if err := r.db.WithContext(ctx).Order("common_name").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *speciesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Species{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
