package middleware

import (
	"net/http"

	"bloodlink/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route to the given roles. Runs after
// BearerAuthMiddleware; a valid principal with the wrong role gets a
// 403, distinct from the 401 an unauthenticated request gets.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication failed",
			})
			return
		}
		role, ok := val.(models.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication failed",
			})
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": "Insufficient permissions",
		})
	}
}
