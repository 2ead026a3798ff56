package middleware

import (
	"net/http"
	"strings"

	"ceylonescape/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired verifies the bearer token issued by the auth service and puts
// the caller's id and role on the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized, no token"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		id, role, err := utils.VerifyToken(tokenString)
		if err != nil || id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token failed"})
			return
		}

		c.Set("userID", id)
		c.Set("userRole", role)
		c.Next()
	}
}

// RequireRoles allows only callers whose role is in the given set. Must run
// after AuthRequired.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "User role not authorized"})
	}
}
