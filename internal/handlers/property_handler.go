package handlers

import (
	"net/http"

	"assiduous_backend/internal/dto"
	"assiduous_backend/internal/logger"
	"assiduous_backend/internal/middleware"
	"assiduous_backend/internal/services"
	"assiduous_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// PropertyHandler exposes the bulk ingest and bulk delete endpoints.
type PropertyHandler struct {
	*BaseHandler
	ingestService services.IngestService
	apiKeyService services.APIKeyService
}

func NewPropertyHandler(base *BaseHandler, ingestService services.IngestService, apiKeyService services.APIKeyService) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:   base,
		ingestService: ingestService,
		apiKeyService: apiKeyService,
	}
}

func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup) {
	properties := r.Group("/properties")
	properties.Use(middleware.APIKeyMiddleware(h.apiKeyService))
	{
		properties.POST("/ingest", h.Ingest)
		properties.DELETE("/bulk", h.BulkDelete)
	}
}

// Ingest handles POST /api/v1/properties/ingest.
func (h *PropertyHandler) Ingest(c *gin.Context) {
	var req dto.IngestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	organizationID := middleware.GetOrganizationID(c)
	if organizationID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("API key required"))
		return
	}

	ctx := c.Request.Context()
	logger.CtxInfo(ctx, "ingesting property batch", "count", len(req.Properties))

	result := h.ingestService.IngestBatch(ctx, organizationID, req.Properties)

	c.JSON(http.StatusOK, dto.IngestResponse{
		Success:    true,
		Processed:  result.Processed,
		Successful: result.Successful,
		Failed:     result.Failed,
		Results:    result.Results,
	})
}

// BulkDelete handles DELETE /api/v1/properties/bulk.
func (h *PropertyHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	organizationID := middleware.GetOrganizationID(c)
	if organizationID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("API key required"))
		return
	}

	deleted, err := h.ingestService.BulkDelete(c.Request.Context(), organizationID, req.ExternalIDs)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkDeleteResponse{
		Success: true,
		Deleted: deleted,
	})
}
