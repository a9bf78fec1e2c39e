package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"assiduous_backend/internal/dto"
	"assiduous_backend/internal/models"
	"assiduous_backend/internal/repositories"
	"assiduous_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// APIKeyService validates ingest credentials and issues new keys.
type APIKeyService interface {
	// Validate resolves a key to its record. Unknown or inactive keys
	// come back as a forbidden AppError; the caller maps absence of a
	// key to 401 before ever calling this.
	Validate(ctx context.Context, key string) (*models.APIKey, error)

	// Issue mints a high-entropy key for an organization and returns
	// the plaintext exactly once.
	Issue(ctx context.Context, createdBy string, req *dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error)
}

type apiKeyService struct {
	apiKeyRepo repositories.APIKeyRepository
}

func NewAPIKeyService(apiKeyRepo repositories.APIKeyRepository) APIKeyService {
	return &apiKeyService{apiKeyRepo: apiKeyRepo}
}

func (s *apiKeyService) Validate(ctx context.Context, key string) (*models.APIKey, error) {
	apiKey, err := s.apiKeyRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrAPIKeyNotFound) {
			return nil, apperrors.NewForbiddenError("Invalid or inactive API key")
		}
		return nil, apperrors.InternalError(err)
	}

	if !apiKey.Active {
		return nil, apperrors.NewForbiddenError("Invalid or inactive API key")
	}

	return apiKey, nil
}

func (s *apiKeyService) Issue(ctx context.Context, createdBy string, req *dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error) {
	key, err := generateKey()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	record := &models.APIKey{
		Key:            key,
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Permissions:    datatypes.NewJSONSlice(permissions),
		Active:         true,
		CreatedBy:      createdBy,
	}

	if err := s.apiKeyRepo.Create(ctx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CreateAPIKeyResponse{
		APIKey:         key,
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
	}, nil
}

// generateKey returns 32 random bytes as 64 hex characters.
func generateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
