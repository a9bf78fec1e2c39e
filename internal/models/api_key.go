package models

import (
	"time"

	"gorm.io/datatypes"
)

// APIKey authenticates ingest callers. The key string itself is the
// primary identifier; the plaintext is returned exactly once at
// issuance and there is no secondary index from name to key.
type APIKey struct {
	Key            string                      `gorm:"primaryKey" json:"-"`
	OrganizationID string                      `gorm:"not null;index" json:"organizationId"`
	Name           string                      `gorm:"not null" json:"name"`
	Permissions    datatypes.JSONSlice[string] `json:"permissions"`
	Active         bool                        `gorm:"default:true" json:"active"`
	CreatedBy      string                      `json:"createdBy"`
	CreatedAt      time.Time                   `gorm:"default:now()" json:"createdAt"`

	// Schema anticipates per-key usage tracking; nothing writes these
	// yet pending a product decision on rate limiting.
	LastUsed     *time.Time `json:"lastUsed"`
	RequestCount int64      `gorm:"default:0" json:"requestCount"`
}
