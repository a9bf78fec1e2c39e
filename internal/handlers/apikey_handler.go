package handlers

import (
	"net/http"

	"assiduous_backend/internal/dto"
	"assiduous_backend/internal/middleware"
	"assiduous_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// APIKeyHandler exposes the admin-only key issuance endpoint.
type APIKeyHandler struct {
	*BaseHandler
	apiKeyService services.APIKeyService
	jwtSecret     string
}

func NewAPIKeyHandler(base *BaseHandler, apiKeyService services.APIKeyService, jwtSecret string) *APIKeyHandler {
	return &APIKeyHandler{
		BaseHandler:   base,
		apiKeyService: apiKeyService,
		jwtSecret:     jwtSecret,
	}
}

func (h *APIKeyHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AdminMiddleware(h.jwtSecret))
	{
		admin.POST("/api-keys", h.CreateAPIKey)
	}
}

// CreateAPIKey mints a key for an organization. The plaintext key in
// the response is the only copy the caller will ever see.
func (h *APIKeyHandler) CreateAPIKey(c *gin.Context) {
	var req dto.CreateAPIKeyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	createdBy := middleware.GetUserID(c)

	resp, err := h.apiKeyService.Issue(c.Request.Context(), createdBy, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
