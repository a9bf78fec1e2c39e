package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assiduous_backend/internal/imageprocessor"
	"assiduous_backend/internal/imagesource"
	"assiduous_backend/internal/logger"
	"assiduous_backend/internal/models"
	"assiduous_backend/internal/storage"
)

// ImageService normalizes and persists a listing's submitted images.
type ImageService interface {
	// ProcessPropertyImages runs the submitted list through classify →
	// resolve → re-encode → store, strictly in input order. A failing
	// image is skipped; survivors keep their original index. The error
	// return is reserved for failures that invalidate the whole call;
	// per-image problems never surface through it.
	ProcessPropertyImages(ctx context.Context, propertyID string, images []json.RawMessage) ([]models.PropertyImage, error)

	// RemovePropertyImages deletes every stored object belonging to
	// the listing and returns the removed paths.
	RemovePropertyImages(ctx context.Context, propertyID string) ([]string, error)
}

type imageService struct {
	resolver  *imagesource.Resolver
	processor *imageprocessor.Processor
	storage   storage.Storage
}

func NewImageService(resolver *imagesource.Resolver, processor *imageprocessor.Processor, store storage.Storage) ImageService {
	return &imageService{
		resolver:  resolver,
		processor: processor,
		storage:   store,
	}
}

func (s *imageService) ProcessPropertyImages(ctx context.Context, propertyID string, images []json.RawMessage) ([]models.PropertyImage, error) {
	// One timestamp per batch keeps sibling paths collision-free while
	// staying distinct from concurrently-ingested listings.
	batchMillis := time.Now().UnixMilli()

	// Sequential on purpose: bounds peak memory for large image sets.
	var uploaded []models.PropertyImage
	for i, raw := range images {
		descriptor, err := s.processOne(ctx, propertyID, batchMillis, i, raw)
		if err != nil {
			logger.CtxWarn(ctx, "skipping image",
				"property_id", propertyID,
				"original_index", i,
				"error", err.Error(),
			)
			continue
		}
		if descriptor == nil {
			// Unrecognized payload shape, silently absent from output.
			continue
		}
		uploaded = append(uploaded, *descriptor)
	}

	return uploaded, nil
}

func (s *imageService) processOne(ctx context.Context, propertyID string, batchMillis int64, index int, raw json.RawMessage) (*models.PropertyImage, error) {
	payload := imagesource.Classify(raw)
	if payload.Kind == imagesource.KindUnsupported {
		return nil, nil
	}

	data, err := s.resolver.Resolve(ctx, payload)
	if err != nil {
		return nil, err
	}

	normalized, err := s.processor.Process(data)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%d_%d.jpg", batchMillis, index)
	path := fmt.Sprintf("properties/%s/images/%s", propertyID, filename)

	if err := s.storage.Save(ctx, path, bytes.NewReader(normalized), "image/jpeg"); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("resolve public url: %w", err)
	}

	return &models.PropertyImage{
		URL:           url,
		Path:          path,
		Filename:      filename,
		Size:          len(normalized),
		ContentType:   "image/jpeg",
		UploadedAt:    time.Now().UTC(),
		Source:        models.SourceAPIIngestion,
		OriginalIndex: index,
	}, nil
}

func (s *imageService) RemovePropertyImages(ctx context.Context, propertyID string) ([]string, error) {
	prefix := fmt.Sprintf("properties/%s/images/", propertyID)
	return s.storage.DeleteAll(ctx, prefix)
}
