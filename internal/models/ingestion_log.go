package models

import (
	"time"

	"gorm.io/datatypes"
)

// IngestionLog is an append-only record of one successful ingest item.
type IngestionLog struct {
	BaseModel
	PropertyID      string    `gorm:"index" json:"propertyId"`
	ExternalID      string    `gorm:"index" json:"externalId"`
	OrganizationID  string    `gorm:"index" json:"organizationId"`
	Action          string    `json:"action"` // "created" or "updated"
	ImagesProcessed int       `json:"imagesProcessed"`
	Timestamp       time.Time `gorm:"default:now()" json:"timestamp"`
}

// IngestionError is an append-only record of one failed ingest item,
// capturing the raw submitted payload for later inspection.
type IngestionError struct {
	BaseModel
	ExternalID     string         `gorm:"index" json:"externalId"`
	OrganizationID string         `gorm:"index" json:"organizationId"`
	Error          string         `json:"error"`
	PropertyData   datatypes.JSON `gorm:"type:jsonb" json:"propertyData"`
	Timestamp      time.Time      `gorm:"default:now()" json:"timestamp"`
}

// CleanupLog records stored-image removal that accompanied a property
// deletion.
type CleanupLog struct {
	BaseModel
	PropertyID    string                      `gorm:"index" json:"propertyId"`
	ImagesDeleted int                         `json:"imagesDeleted"`
	ImagePaths    datatypes.JSONSlice[string] `json:"imagePaths"`
	DeletedAt     time.Time                   `gorm:"default:now()" json:"deletedAt"`
}
