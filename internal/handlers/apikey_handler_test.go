package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assiduous_backend/internal/auth"
	"assiduous_backend/internal/dto"
	"assiduous_backend/internal/validator"
)

const testJWTSecret = "test-secret"

func newAdminRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	base := NewBaseHandler(validator.New())
	handler := NewAPIKeyHandler(base, &fakeAPIKeyService{}, testJWTSecret)

	router := gin.New()
	group := router.Group("/api/v1")
	handler.RegisterRoutes(group)
	return router
}

func performAdmin(router *gin.Engine, token string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/api-keys", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAPIKeyAsAdmin(t *testing.T) {
	router := newAdminRouter(t)

	token, err := auth.GenerateToken(testJWTSecret, "admin-1", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	w := performAdmin(router, token, dto.CreateAPIKeyRequest{
		OrganizationID: "org-1",
		Name:           "feed importer",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CreateAPIKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "issued-key", resp.APIKey)
	assert.Equal(t, "org-1", resp.OrganizationID)
}

func TestCreateAPIKeyWithoutToken(t *testing.T) {
	router := newAdminRouter(t)

	w := performAdmin(router, "", dto.CreateAPIKeyRequest{OrganizationID: "org-1", Name: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAPIKeyRejectsNonAdmin(t *testing.T) {
	router := newAdminRouter(t)

	token, err := auth.GenerateToken(testJWTSecret, "user-1", "agent", time.Hour)
	require.NoError(t, err)

	w := performAdmin(router, token, dto.CreateAPIKeyRequest{OrganizationID: "org-1", Name: "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only admins")
}

func TestCreateAPIKeyValidatesBody(t *testing.T) {
	router := newAdminRouter(t)

	token, err := auth.GenerateToken(testJWTSecret, "admin-1", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	w := performAdmin(router, token, map[string]interface{}{"name": "missing org"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
