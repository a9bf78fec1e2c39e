package dto

import "encoding/json"

// PropertyPayload is one listing submitted to the ingest API. Images is
// left raw because callers mix URLs, data URIs, bare base64 strings and
// url-objects in one list; classification happens downstream.
type PropertyPayload struct {
	ExternalID  string                 `json:"externalId"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	Address     json.RawMessage        `json:"address"`
	Bedrooms    int                    `json:"bedrooms"`
	Bathrooms   float64                `json:"bathrooms"`
	SquareFeet  int                    `json:"squareFeet"`
	Images      []json.RawMessage      `json:"images"`
	Status      string                 `json:"status"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// IngestRequest is the bulk ingest body.
type IngestRequest struct {
	Properties []PropertyPayload `json:"properties" validate:"required"`
}

// BulkDeleteRequest is the bulk delete body.
type BulkDeleteRequest struct {
	ExternalIDs []string `json:"externalIds" validate:"required"`
}

// ItemResult is the per-listing outcome inside a batch response.
type ItemResult struct {
	Success         bool   `json:"success"`
	PropertyID      string `json:"propertyId,omitempty"`
	ExternalID      string `json:"externalId"`
	Action          string `json:"action,omitempty"` // "created" or "updated"
	ImagesProcessed int    `json:"imagesProcessed"`
	Error           string `json:"error,omitempty"`
}

// BatchResult aggregates a whole ingest batch. Successes are never
// rolled back on behalf of failed siblings; callers get the full
// per-item accounting.
type BatchResult struct {
	Processed  int          `json:"processed"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Results    []ItemResult `json:"results"`
}

// IngestResponse is the HTTP envelope for a batch.
type IngestResponse struct {
	Success    bool         `json:"success"`
	Processed  int          `json:"processed"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Results    []ItemResult `json:"results"`
}

// BulkDeleteResponse reports how many listings were removed.
type BulkDeleteResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}
