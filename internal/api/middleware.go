package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"estatehub/server/internal/auth"
)

const claimsContextKey = "adminClaims"

// RequireAdmin guards admin routes with a bearer token check. Missing,
// malformed, expired and forged tokens are all rejected with the same
// unauthorized response.
func (h *Handler) RequireAdmin(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
		return
	}

	claims, err := auth.VerifyToken(parts[1], h.cfg.JWTSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.Set(claimsContextKey, claims)
	c.Next()
}

func adminClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}
