package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shotclock/backend/internal/config"
	"github.com/shotclock/backend/internal/operator"
)

// ClaimsKey is the gin context key holding *operator.Claims.
const ClaimsKey = "operator_claims"

// BearerToken reads the token from the Authorization header, falling back to
// the token query parameter for websocket clients.
func BearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Query("token")
}

// OperatorAuth requires a valid operator token carrying role.
func OperatorAuth(cfg *config.Config, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		claims, err := operator.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if !claims.HasRole(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// SensorAuth guards sensor ingest when REQUIRE_SENSOR_AUTH is set.
func SensorAuth(cfg *config.Config) gin.HandlerFunc {
	if !cfg.RequireSensorAuth {
		return func(c *gin.Context) { c.Next() }
	}
	return OperatorAuth(cfg, operator.RoleSensor)
}

// Operator returns the authenticated operator's name, if any.
func Operator(c *gin.Context) string {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*operator.Claims); ok {
			return claims.Username
		}
	}
	return ""
}
