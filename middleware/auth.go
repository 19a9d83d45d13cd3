package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/utils"
)

// AuthMiddleware authenticates a staff member from a Bearer token and puts
// the Staff record into the context. The username is what ends up in the
// processed_by audit field of any return the request acts on.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			utils.LogError("Invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.LogError("Invalid token claims")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		staffID, ok := claims["staff_id"].(float64)
		if !ok {
			utils.LogError("Token missing staff_id claim")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		var staff models.Staff
		if err := config.DB.First(&staff, uint(staffID)).Error; err != nil {
			utils.LogError("Staff %d from token not found: %v", uint(staffID), err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		c.Set("staff", staff)
		c.Next()
	}
}

// ManagerMiddleware restricts a route group to manager staff. Requires
// AuthMiddleware to have run first.
func ManagerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffVal, exists := c.Get("staff")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}
		staff, ok := staffVal.(models.Staff)
		if !ok || staff.Role != models.StaffRoleManager {
			utils.LogError("Staff %q denied manager access", staff.Username)
			c.JSON(http.StatusForbidden, gin.H{"error": "Manager access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
