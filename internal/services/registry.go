package services

// ServiceContainer aggregates the application services for wiring.
type ServiceContainer struct {
	ImageService  ImageService
	IngestService IngestService
	APIKeyService APIKeyService
}
