package middlewares

import (
	"catering/rules"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware also accepts the token as a query parameter, since
// browsers cannot set headers on a websocket handshake.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr = bearerToken(c)
		}
		if authenticate(c, tokenStr, secret, rules.RoleClient) {
			c.Next()
		}
	}
}
