package utils

import (
	"catering/rules"

	"github.com/gin-gonic/gin"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

// CurrentRole is RoleNone for anonymous requests.
func CurrentRole(c *gin.Context) rules.Role {
	if v, ok := c.Get("role"); ok {
		if r, ok := v.(rules.Role); ok {
			return r
		}
	}
	return rules.RoleNone
}
