package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SourceAPIIngestion tags records created through the ingest pipeline.
const SourceAPIIngestion = "api_ingestion"

// propertyNamespace seeds the UUIDv5 derivation of property ids.
var propertyNamespace = uuid.MustParse("a3b9e1d4-52c7-4f18-9e06-7d2c41b8a930")

// PropertyID derives the listing id deterministically from the natural
// key (organizationId, externalId). Concurrent ingests of the same key
// therefore converge on one row instead of racing a check-then-create.
func PropertyID(organizationID, externalID string) string {
	// NUL keeps the pair unambiguous regardless of what characters the
	// feed uses in its ids.
	return uuid.NewSHA1(propertyNamespace, []byte(organizationID+"\x00"+externalID)).String()
}

// Property is a tenant-scoped listing. The pair (organizationId,
// externalId) identifies at most one row.
type Property struct {
	ID             string `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID     string `gorm:"not null;uniqueIndex:idx_properties_natural_key" json:"externalId"`
	OrganizationID string `gorm:"not null;uniqueIndex:idx_properties_natural_key" json:"organizationId"`

	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Address     datatypes.JSON `gorm:"type:jsonb" json:"address"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   float64        `json:"bathrooms"`
	SquareFeet  int            `json:"squareFeet"`
	Status      string         `gorm:"default:'active'" json:"status"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata"`

	// Images holds the ordered PropertyImage descriptor list, replaced
	// wholesale on every ingest of the same externalId.
	Images datatypes.JSON `gorm:"type:jsonb" json:"images"`

	Source    string    `gorm:"default:'api_ingestion'" json:"source"`
	CreatedAt time.Time `gorm:"default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// PropertyImage is the stored descriptor of one normalized image.
// OriginalIndex is the position in the submitted list; failed images
// leave gaps in the sequence but never reorder survivors.
type PropertyImage struct {
	URL           string    `json:"url"`
	Path          string    `json:"path"`
	Filename      string    `json:"filename"`
	Size          int       `json:"size"`
	ContentType   string    `json:"contentType"`
	UploadedAt    time.Time `json:"uploadedAt"`
	Source        string    `json:"source"`
	OriginalIndex int       `json:"originalIndex"`
}
