package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"assiduous_backend/internal/dto"
	"assiduous_backend/internal/logger"
	"assiduous_backend/internal/models"
	"assiduous_backend/internal/repositories"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// DefaultChunkSize bounds how many listings are in flight at once.
// Within a listing, images are processed sequentially, so the chunk
// size is also the cap on concurrent image downloads and encodes.
const DefaultChunkSize = 5

var errExternalIDRequired = errors.New("externalId is required")

// IngestService is the batch orchestrator and upsert resolver.
type IngestService interface {
	// IngestBatch processes the payloads in chunks: chunks run one
	// after another, items within a chunk run concurrently, and no
	// failure short-circuits its siblings.
	IngestBatch(ctx context.Context, organizationID string, payloads []dto.PropertyPayload) *dto.BatchResult

	// BulkDelete removes every tenant-scoped listing matching the
	// given externalIds, with stored images cleaned up alongside.
	BulkDelete(ctx context.Context, organizationID string, externalIDs []string) (int64, error)
}

type ingestService struct {
	propertyRepo repositories.PropertyRepository
	auditRepo    repositories.IngestionLogRepository
	imageService ImageService
	chunkSize    int
}

func NewIngestService(
	propertyRepo repositories.PropertyRepository,
	auditRepo repositories.IngestionLogRepository,
	imageService ImageService,
	chunkSize int,
) IngestService {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ingestService{
		propertyRepo: propertyRepo,
		auditRepo:    auditRepo,
		imageService: imageService,
		chunkSize:    chunkSize,
	}
}

func (s *ingestService) IngestBatch(ctx context.Context, organizationID string, payloads []dto.PropertyPayload) *dto.BatchResult {
	results := make([]dto.ItemResult, len(payloads))

	for start := 0; start < len(payloads); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(payloads) {
			end = len(payloads)
		}

		var group errgroup.Group
		for i := start; i < end; i++ {
			i := i
			group.Go(func() error {
				results[i] = s.processOne(ctx, organizationID, payloads[i])
				return nil
			})
		}
		// Workers never return errors; failures live in the results.
		_ = group.Wait()
	}

	batch := &dto.BatchResult{
		Processed: len(results),
		Results:   results,
	}
	for _, r := range results {
		if r.Success {
			batch.Successful++
		} else {
			batch.Failed++
		}
	}

	return batch
}

// processOne resolves the listing shell before any image work starts,
// so a listing is never lost purely because its images failed. The
// audit record at the end is unconditional on both paths.
func (s *ingestService) processOne(ctx context.Context, organizationID string, payload dto.PropertyPayload) dto.ItemResult {
	if payload.ExternalID == "" {
		s.recordError(ctx, organizationID, payload, errExternalIDRequired)
		return dto.ItemResult{
			Success: false,
			Error:   errExternalIDRequired.Error(),
		}
	}

	// Existing rows are matched on the natural key, not the derived
	// id, so listings created before the deterministic-id scheme still
	// resolve to their original row.
	property := newPropertyShell(organizationID, payload)
	existing, err := s.propertyRepo.FindByNaturalKey(ctx, organizationID, payload.ExternalID)
	action := "updated"
	switch {
	case err == nil:
		property.ID = existing.ID
	case errors.Is(err, repositories.ErrPropertyNotFound):
		created, createErr := s.propertyRepo.FindOrCreate(ctx, property)
		if createErr != nil {
			s.recordError(ctx, organizationID, payload, createErr)
			return dto.ItemResult{
				Success:    false,
				ExternalID: payload.ExternalID,
				Error:      createErr.Error(),
			}
		}
		if created {
			action = "created"
		}
	default:
		s.recordError(ctx, organizationID, payload, err)
		return dto.ItemResult{
			Success:    false,
			ExternalID: payload.ExternalID,
			Error:      err.Error(),
		}
	}

	uploaded, err := s.imageService.ProcessPropertyImages(ctx, property.ID, payload.Images)
	if err != nil {
		s.recordError(ctx, organizationID, payload, err)
		return dto.ItemResult{
			Success:    false,
			ExternalID: payload.ExternalID,
			Error:      err.Error(),
		}
	}
	if uploaded == nil {
		uploaded = []models.PropertyImage{}
	}

	if err := s.propertyRepo.UpdateImages(ctx, property.ID, uploaded); err != nil {
		s.recordError(ctx, organizationID, payload, err)
		return dto.ItemResult{
			Success:    false,
			ExternalID: payload.ExternalID,
			Error:      err.Error(),
		}
	}

	if err := s.auditRepo.CreateLog(ctx, &models.IngestionLog{
		PropertyID:      property.ID,
		ExternalID:      payload.ExternalID,
		OrganizationID:  organizationID,
		Action:          action,
		ImagesProcessed: len(uploaded),
		Timestamp:       time.Now().UTC(),
	}); err != nil {
		// The listing itself is already persisted; losing the audit
		// row is logged but does not fail the item.
		logger.CtxWithError(ctx, "failed to write ingestion log", err,
			"property_id", property.ID,
			"external_id", payload.ExternalID,
		)
	}

	return dto.ItemResult{
		Success:         true,
		PropertyID:      property.ID,
		ExternalID:      payload.ExternalID,
		Action:          action,
		ImagesProcessed: len(uploaded),
	}
}

func (s *ingestService) recordError(ctx context.Context, organizationID string, payload dto.PropertyPayload, cause error) {
	raw, _ := json.Marshal(payload)

	if err := s.auditRepo.CreateError(ctx, &models.IngestionError{
		ExternalID:     payload.ExternalID,
		OrganizationID: organizationID,
		Error:          cause.Error(),
		PropertyData:   datatypes.JSON(raw),
		Timestamp:      time.Now().UTC(),
	}); err != nil {
		logger.CtxWithError(ctx, "failed to write ingestion error", err,
			"external_id", payload.ExternalID,
		)
	}
}

func newPropertyShell(organizationID string, payload dto.PropertyPayload) *models.Property {
	status := payload.Status
	if status == "" {
		status = "active"
	}

	var metadata datatypes.JSON
	if payload.Metadata != nil {
		metadata, _ = json.Marshal(payload.Metadata)
	}

	return &models.Property{
		ID:             models.PropertyID(organizationID, payload.ExternalID),
		ExternalID:     payload.ExternalID,
		OrganizationID: organizationID,
		Title:          payload.Title,
		Description:    payload.Description,
		Price:          payload.Price,
		Address:        datatypes.JSON(payload.Address),
		Bedrooms:       payload.Bedrooms,
		Bathrooms:      payload.Bathrooms,
		SquareFeet:     payload.SquareFeet,
		Status:         status,
		Metadata:       metadata,
		Source:         models.SourceAPIIngestion,
	}
}

func (s *ingestService) BulkDelete(ctx context.Context, organizationID string, externalIDs []string) (int64, error) {
	var deleted int64

	for _, externalID := range externalIDs {
		properties, err := s.propertyRepo.FindAllByExternalID(ctx, organizationID, externalID)
		if err != nil {
			return deleted, err
		}

		for _, property := range properties {
			if err := s.propertyRepo.Delete(ctx, property.ID); err != nil {
				return deleted, err
			}
			deleted++

			s.cleanupImages(ctx, property.ID)
		}
	}

	return deleted, nil
}

// cleanupImages removes the deleted listing's stored objects and
// records the removal. Best effort: a storage hiccup never undoes the
// listing deletion that already happened.
func (s *ingestService) cleanupImages(ctx context.Context, propertyID string) {
	paths, err := s.imageService.RemovePropertyImages(ctx, propertyID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to clean up property images", err, "property_id", propertyID)
		return
	}
	if len(paths) == 0 {
		return
	}

	if err := s.auditRepo.CreateCleanup(ctx, &models.CleanupLog{
		PropertyID:    propertyID,
		ImagesDeleted: len(paths),
		ImagePaths:    paths,
		DeletedAt:     time.Now().UTC(),
	}); err != nil {
		logger.CtxWithError(ctx, "failed to write cleanup log", err, "property_id", propertyID)
	}
}
