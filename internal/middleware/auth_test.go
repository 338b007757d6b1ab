// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elite1357/store-backend/internal/utils"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		userID, _ := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/admin", AuthRequired(), AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/open", OptionalAuth(), func(c *gin.Context) {
		_, authenticated := utils.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
	})

	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	r := setupAuthRouter()

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := setupAuthRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsInvalidToken(t *testing.T) {
	r := setupAuthRouter()

	w := doRequest(r, "/protected", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	r := setupAuthRouter()

	token, err := utils.GenerateJWT(uuid.New(), "shopper", "customer", 1)
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRequiredRejectsCustomer(t *testing.T) {
	r := setupAuthRouter()

	token, err := utils.GenerateJWT(uuid.New(), "shopper", "customer", 1)
	require.NoError(t, err)

	w := doRequest(r, "/admin", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRequiredAcceptsAdmin(t *testing.T) {
	r := setupAuthRouter()

	token, err := utils.GenerateJWT(uuid.New(), "boss", "admin", 1)
	require.NoError(t, err)

	w := doRequest(r, "/admin", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthPassesThrough(t *testing.T) {
	r := setupAuthRouter()

	w := doRequest(r, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	token, err := utils.GenerateJWT(uuid.New(), "shopper", "customer", 1)
	require.NoError(t, err)

	w = doRequest(r, "/open", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
