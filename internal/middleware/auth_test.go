package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": p.Role})
	})
	r.GET("/probe", handlers...)
	return r
}

func probe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w := probe(authRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	w := probe(authRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": 1.0})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	w := probe(authRouter(), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidTenantToken(t *testing.T) {
	signed := mintToken(t, jwt.MapClaims{
		"sub":        7.0,
		"businessId": 3.0,
		"role":       scope.RoleOwner,
	})

	r := gin.New()
	gin.SetMode(gin.TestMode)
	r.GET("/probe", AuthMiddleware(&config.Config{JWTSecret: testSecret}), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		require.True(t, ok)
		assert.Equal(t, uint(7), p.UserID)
		require.NotNil(t, p.BusinessID)
		assert.Equal(t, uint(3), *p.BusinessID)
		assert.Equal(t, scope.RoleOwner, p.Role)
		c.Status(http.StatusOK)
	})

	w := probe(r, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_PlatformAdminHasNoBusiness(t *testing.T) {
	signed := mintToken(t, jwt.MapClaims{
		"sub":  1.0,
		"role": scope.RolePlatformAdmin,
	})

	r := gin.New()
	gin.SetMode(gin.TestMode)
	r.GET("/probe", AuthMiddleware(&config.Config{JWTSecret: testSecret}), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		require.True(t, ok)
		assert.Nil(t, p.BusinessID)
		assert.True(t, p.IsPlatformAdmin())
		c.Status(http.StatusOK)
	})

	w := probe(r, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePlatformAdmin(t *testing.T) {
	adminToken := mintToken(t, jwt.MapClaims{"sub": 1.0, "role": scope.RolePlatformAdmin})
	ownerToken := mintToken(t, jwt.MapClaims{"sub": 2.0, "businessId": 3.0, "role": scope.RoleOwner})

	r := authRouter(RequirePlatformAdmin())

	w := probe(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = probe(r, "Bearer "+ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
