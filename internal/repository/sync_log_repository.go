package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"forestinv/internal/model"
)

// SyncStats aggregates synchronization outcomes for reporting.
type SyncStats struct {
	Total           int64 `json:"total"`
	Succeeded       int64 `json:"succeeded"`
	Failed          int64 `json:"failed"`
	RecordsSent     int64 `json:"records_sent"`
	RecordsReceived int64 `json:"records_received"`
}

// SyncLogRepository defines sync-log persistence operations.
type SyncLogRepository interface {
	Create(ctx context.Context, entry *model.SyncLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SyncLog, error)
	List(ctx context.Context) ([]model.SyncLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SyncLog, error)
	Stats(ctx context.Context) (*SyncStats, error)
}

type syncLogRepository struct {
	db *gorm.DB
}

// NewSyncLogRepository builds a GORM-backed repository.
func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db: db}
}

func (r *syncLogRepository) Create(ctx context.Context, entry *model.SyncLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *syncLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SyncLog, error) {
	var entry model.SyncLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *syncLogRepository) List(ctx context.Context) ([]model.SyncLog, error) {
	var entries []model.SyncLog
	if err := r.db.WithContext(ctx).Order("synced_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *syncLogRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SyncLog, error) {
	var entries []model.SyncLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).Order("synced_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *syncLogRepository) Stats(ctx context.Context) (*SyncStats, error) {
	var stats SyncStats
	base := r.db.WithContext(ctx).Model(&model.SyncLog{})
	if err := base.Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.SyncLog{}).
		Where("success = ?", true).Count(&stats.Succeeded).Error; err != nil {
		return nil, err
	}
	stats.Failed = stats.Total - stats.Succeeded

	row := r.db.WithContext(ctx).Model(&model.SyncLog{}).
		Select("COALESCE(SUM(records_sent),0), COALESCE(SUM(records_received),0)").Row()
	if err := row.Scan(&stats.RecordsSent, &stats.RecordsReceived); err != nil {
		return nil, err
	}
	return &stats, nil
}
