package dto

// CreateAPIKeyRequest is the admin key-issuance input.
type CreateAPIKeyRequest struct {
	OrganizationID string   `json:"organizationId" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Permissions    []string `json:"permissions"`
}

// CreateAPIKeyResponse returns the plaintext key exactly once.
type CreateAPIKeyResponse struct {
	APIKey         string `json:"apiKey"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
}
