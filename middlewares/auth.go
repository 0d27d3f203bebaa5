package middlewares

import (
	"net/http"
	"strings"

	"catering/rules"
	"catering/utils"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

// authenticate verifies the token and stores userId and role on the context.
// It aborts and returns false on failure.
func authenticate(c *gin.Context, tokenStr, secret string, minRole rules.Role) bool {
	if tokenStr == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
		return false
	}
	claims, err := utils.ParseToken(tokenStr, secret)
	if err != nil || claims.Role == rules.RoleNone {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		return false
	}

	c.Set("userId", claims.UserID)
	c.Set("role", claims.Role)

	if !claims.Role.AtLeast(minRole) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
		return false
	}
	return true
}

// AuthMiddleware requires a bearer token whose role is at least minRole.
// Finer checks (ownership, record age) stay in the services.
func AuthMiddleware(secret string, minRole rules.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, bearerToken(c), secret, minRole) {
			c.Next()
		}
	}
}
