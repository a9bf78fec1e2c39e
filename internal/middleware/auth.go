package middleware

import (
	"net/http"

	"assiduous_backend/internal/auth"
	"assiduous_backend/internal/logger"
	"assiduous_backend/internal/services"
	"assiduous_backend/pkg/apperrors"
	"assiduous_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware authenticates ingest callers. The key travels in
// the x-api-key header or the apiKey query parameter. Absence is 401,
// an unknown or inactive key is 403; nothing downstream runs and no
// listing data is touched on either failure.
func APIKeyMiddleware(apiKeyService services.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")
		if key == "" {
			key = c.Query("apiKey")
		}
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		apiKey, err := apiKeyService.Validate(c.Request.Context(), key)
		if err != nil {
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				appErr = apperrors.InternalError(err)
			}
			c.AbortWithStatusJSON(appErr.HTTPCode, gin.H{"error": appErr.Message})
			return
		}

		// The key's organization becomes the tenant boundary for every
		// downstream read and write.
		c.Set(contextkeys.OrganizationIDKey, apiKey.OrganizationID)
		ctx := logger.WithOrganizationID(c.Request.Context(), apiKey.OrganizationID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminMiddleware guards key issuance: a Bearer token whose role claim
// is "admin" is required, not an API key.
func AdminMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		claims, err := auth.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if claims.Role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Only admins can create API keys"})
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}

// GetOrganizationID extracts the resolved tenant from the context.
func GetOrganizationID(c *gin.Context) string {
	value, exists := c.Get(contextkeys.OrganizationIDKey)
	if !exists {
		return ""
	}
	organizationID, ok := value.(string)
	if !ok {
		return ""
	}
	return organizationID
}

// GetUserID extracts the authenticated admin user id from the context.
func GetUserID(c *gin.Context) string {
	value, exists := c.Get(contextkeys.UserIDKey)
	if !exists {
		return ""
	}
	userID, ok := value.(string)
	if !ok {
		return ""
	}
	return userID
}
