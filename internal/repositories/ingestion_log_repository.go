package repositories

import (
	"context"

	"assiduous_backend/internal/models"

	"gorm.io/gorm"
)

// IngestionLogRepository appends audit records. Rows are never updated
// or deleted.
type IngestionLogRepository interface {
	CreateLog(ctx context.Context, entry *models.IngestionLog) error
	CreateError(ctx context.Context, entry *models.IngestionError) error
	CreateCleanup(ctx context.Context, entry *models.CleanupLog) error
}

type ingestionLogRepository struct {
	db *gorm.DB
}

func NewIngestionLogRepository(db *gorm.DB) IngestionLogRepository {
	return &ingestionLogRepository{db: db}
}

func (r *ingestionLogRepository) CreateLog(ctx context.Context, entry *models.IngestionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ingestionLogRepository) CreateError(ctx context.Context, entry *models.IngestionError) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ingestionLogRepository) CreateCleanup(ctx context.Context, entry *models.CleanupLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
