package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forestinv/internal/model"
)

// TreeRepository defines tree persistence operations.
type TreeRepository interface {
	Create(ctx context.Context, tree *model.Tree) error
	Update(ctx context.Context, tree *model.Tree) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tree, error)
	List(ctx context.Context) ([]model.Tree, error)
	ListByPlot(ctx context.Context, plotID uuid.UUID) ([]model.Tree, error)
	Count(ctx context.Context) (int64, error)
}

type treeRepository struct {
	db *gorm.DB
}

// NewTreeRepository builds a GORM-backed repository.
func NewTreeRepository(db *gorm.DB) TreeRepository {
	return &treeRepository{db: db}
}

func (r *treeRepository) Create(ctx context.Context, tree *model.Tree) error {
	return r.db.WithContext(ctx).Create(tree).Error
}

func (r *treeRepository) Update(ctx context.Context, tree *model.Tree) error {
	return r.db.WithContext(ctx).Save(tree).Error
}

func (r *treeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tree{}, "id = ?", id).Error
}

func (r *treeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Tree, error) {
	var tree model.Tree
	if err := r.db.WithContext(ctx).
		Preload("Species").Preload("Plot").
		Where("id = ?", id).First(&tree).Error; err != nil {
		return nil, err
	}
	return &tree, nil
}

func (r *treeRepository) List(ctx context.Context) ([]model.Tree, error) {
	var trees []model.Tree
	if err := r.db.WithContext(ctx).
		Preload("Species").Preload("Plot").
		Find(&trees).Error; err != nil {
		return nil, err
	}
	return trees, nil
}

func (r *treeRepository) ListByPlot(ctx context.Context, plotID uuid.UUID) ([]model.Tree, error) {
	var trees []model.Tree
	if err := r.db.WithContext(ctx).
		Preload("Species").Preload("Plot").
		Where("plot_id = ?", plotID).Find(&trees).Error; err != nil {
		return nil, err
	}
	return trees, nil
}

func (r *treeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Tree{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
