package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"assiduous_backend/internal/models"
	"assiduous_backend/internal/repositories"
)

// fakePropertyRepo backs the properties table with a slice so tests can
// seed duplicates and pre-scheme rows.
type fakePropertyRepo struct {
	mu         sync.Mutex
	properties []*models.Property
	images     map[string][]models.PropertyImage

	findErr   error
	createErr error
	updateErr error
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{images: make(map[string][]models.PropertyImage)}
}

func (r *fakePropertyRepo) FindByNaturalKey(ctx context.Context, organizationID, externalID string) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, p := range r.properties {
		if p.OrganizationID == organizationID && p.ExternalID == externalID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPropertyNotFound
}

func (r *fakePropertyRepo) FindOrCreate(ctx context.Context, property *models.Property) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return false, r.createErr
	}
	for _, p := range r.properties {
		if p.ID == property.ID {
			return false, nil
		}
	}
	copied := *property
	r.properties = append(r.properties, &copied)
	return true, nil
}

func (r *fakePropertyRepo) UpdateImages(ctx context.Context, propertyID string, images []models.PropertyImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.images[propertyID] = images
	return nil
}

func (r *fakePropertyRepo) FindAllByExternalID(ctx context.Context, organizationID, externalID string) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []models.Property
	for _, p := range r.properties {
		if p.OrganizationID == organizationID && p.ExternalID == externalID {
			matches = append(matches, *p)
		}
	}
	return matches, nil
}

func (r *fakePropertyRepo) Delete(ctx context.Context, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.properties[:0]
	for _, p := range r.properties {
		if p.ID != propertyID {
			kept = append(kept, p)
		}
	}
	r.properties = kept
	return nil
}

func (r *fakePropertyRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.properties)
}

type fakeAuditRepo struct {
	mu       sync.Mutex
	logs     []models.IngestionLog
	errors   []models.IngestionError
	cleanups []models.CleanupLog
}

func (r *fakeAuditRepo) CreateLog(ctx context.Context, entry *models.IngestionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *fakeAuditRepo) CreateError(ctx context.Context, entry *models.IngestionError) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, *entry)
	return nil
}

func (r *fakeAuditRepo) CreateCleanup(ctx context.Context, entry *models.CleanupLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleanups = append(r.cleanups, *entry)
	return nil
}

type fakeAPIKeyRepo struct {
	mu   sync.Mutex
	keys map[string]*models.APIKey
}

func newFakeAPIKeyRepo() *fakeAPIKeyRepo {
	return &fakeAPIKeyRepo{keys: make(map[string]*models.APIKey)}
}

func (r *fakeAPIKeyRepo) FindByKey(ctx context.Context, key string) (*models.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apiKey, ok := r.keys[key]
	if !ok {
		return nil, repositories.ErrAPIKeyNotFound
	}
	copied := *apiKey
	return &copied, nil
}

func (r *fakeAPIKeyRepo) Create(ctx context.Context, apiKey *models.APIKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *apiKey
	r.keys[apiKey.Key] = &copied
	return nil
}

// fakeImageService tracks in-flight concurrency so chunking tests can
// assert the cap, and can be told to fail for specific listings.
type fakeImageService struct {
	mu           sync.Mutex
	current      int
	maxObserved  int
	failFor      map[string]error
	removedPaths map[string][]string
	removedCalls []string
}

func newFakeImageService() *fakeImageService {
	return &fakeImageService{
		failFor:      make(map[string]error),
		removedPaths: make(map[string][]string),
	}
}

func (s *fakeImageService) ProcessPropertyImages(ctx context.Context, propertyID string, images []json.RawMessage) ([]models.PropertyImage, error) {
	s.mu.Lock()
	s.current++
	if s.current > s.maxObserved {
		s.maxObserved = s.current
	}
	err := s.failFor[propertyID]
	s.mu.Unlock()

	// Long enough for chunk siblings to overlap.
	time.Sleep(5 * time.Millisecond)

	s.mu.Lock()
	s.current--
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	uploaded := make([]models.PropertyImage, 0, len(images))
	for i := range images {
		uploaded = append(uploaded, models.PropertyImage{
			Path:          propertyID + "/" + "img.jpg",
			ContentType:   "image/jpeg",
			OriginalIndex: i,
		})
	}
	return uploaded, nil
}

func (s *fakeImageService) RemovePropertyImages(ctx context.Context, propertyID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removedCalls = append(s.removedCalls, propertyID)
	return s.removedPaths[propertyID], nil
}
