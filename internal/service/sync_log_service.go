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

// CreateSyncLogInput records one synchronization attempt from the field app.
type CreateSyncLogInput struct {
	UserID          uuid.UUID
	Type            model.SyncType
	RecordsSent     int
	RecordsReceived int
	Success         bool
	ErrorMessage    string
	Details         string
}

// SyncLogService exposes sync-log recording and reporting.
type SyncLogService interface {
	List(ctx context.Context) ([]model.SyncLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SyncLog, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SyncLog, error)
	Create(ctx context.Context, input CreateSyncLogInput) (*model.SyncLog, error)
	Stats(ctx context.Context) (*repository.SyncStats, error)
}

type syncLogService struct {
	repo repository.SyncLogRepository
}

// NewSyncLogService builds a SyncLogService.
func NewSyncLogService(repo repository.SyncLogRepository) SyncLogService {
	return &syncLogService{repo: repo}
}

func (s *syncLogService) List(ctx context.Context) ([]model.SyncLog, error) {
	return s.repo.List(ctx)
}

func (s *syncLogService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SyncLog, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *syncLogService) Get(ctx context.Context, id uuid.UUID) (*model.SyncLog, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *syncLogService) Create(ctx context.Context, input CreateSyncLogInput) (*model.SyncLog, error) {
	entry := &model.SyncLog{
		ID:              uuid.New(),
		UserID:          input.UserID,
		Type:            input.Type,
		SyncedAt:        time.Now().UTC(),
		RecordsSent:     input.RecordsSent,
		RecordsReceived: input.RecordsReceived,
		Success:         input.Success,
		ErrorMessage:    input.ErrorMessage,
		Details:         input.Details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *syncLogService) Stats(ctx context.Context) (*repository.SyncStats, error) {
	return s.repo.Stats(ctx)
}
