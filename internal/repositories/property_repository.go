package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"assiduous_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository interface {
	// FindByNaturalKey returns the single listing identified by
	// (organizationId, externalId), or ErrPropertyNotFound.
	FindByNaturalKey(ctx context.Context, organizationID, externalID string) (*models.Property, error)

	// FindOrCreate inserts the shell if its deterministic id is not
	// present yet. Returns true when a new row was created.
	FindOrCreate(ctx context.Context, property *models.Property) (bool, error)

	// UpdateImages replaces the listing's descriptor list wholesale
	// and bumps the update timestamp.
	UpdateImages(ctx context.Context, propertyID string, images []models.PropertyImage) error

	// FindAllByExternalID returns every tenant-scoped match,
	// defensively not assuming natural-key uniqueness.
	FindAllByExternalID(ctx context.Context, organizationID, externalID string) ([]models.Property, error)

	Delete(ctx context.Context, propertyID string) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) FindByNaturalKey(ctx context.Context, organizationID, externalID string) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND external_id = ?", organizationID, externalID).
		Limit(1).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindOrCreate(ctx context.Context, property *models.Property) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", property.ID).
		FirstOrCreate(property)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *propertyRepository) UpdateImages(ctx context.Context, propertyID string, images []models.PropertyImage) error {
	encoded, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("encode image descriptors: %w", err)
	}

	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", propertyID).
		Updates(map[string]interface{}{
			"images":     encoded,
			"updated_at": time.Now(),
		}).Error
}

func (r *propertyRepository) FindAllByExternalID(ctx context.Context, organizationID, externalID string) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND external_id = ?", organizationID, externalID).
		Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) Delete(ctx context.Context, propertyID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", propertyID).
		Delete(&models.Property{}).Error
}
