package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
)

const ContextPrincipal = "principal"

// CurrentPrincipal pulls the authenticated caller set by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (scope.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return scope.Principal{}, false
	}
	p, ok := v.(scope.Principal)
	return p, ok
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}
		role, _ := claims["role"].(string)

		p := scope.Principal{
			UserID: uint(userID),
			Role:   role,
		}

		// platform admins carry no businessId claim
		if raw, present := claims["businessId"].(float64); present {
			businessID := uint(raw)
			p.BusinessID = &businessID
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// RequirePlatformAdmin guards the admin console routes. It runs after
// AuthMiddleware.
func RequirePlatformAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}
		if !p.IsPlatformAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "platform_admin_only"})
			return
		}
		c.Next()
	}
}
