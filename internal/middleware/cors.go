package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shotclock/backend/internal/config"
)

var productionOrigins = []string{
	"https://shotclock.app",
	"https://court.shotclock.app",
}

func allowedOrigins(cfg *config.Config) []string {
	if !cfg.IsProduction() {
		return []string{
			"http://localhost:5173", // Vite dev server
			"http://127.0.0.1:5173",
		}
	}
	origins := append([]string{}, productionOrigins...)
	if cfg.FrontendURL != "" {
		origins = append(origins, cfg.FrontendURL)
	}
	return origins
}

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	log.Printf("[CORS] Environment: %s, FrontendURL: %s", cfg.Environment, cfg.FrontendURL)

	return cors.New(cors.Config{
		AllowOrigins: allowedOrigins(cfg),
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Authorization",
			"Accept", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// WebSocketCORSCheck validates WebSocket upgrade origins. Sensor bridges are
// not browsers and may omit Origin; renderers must send an allowed one.
func WebSocketCORSCheck(cfg *config.Config, requireOrigin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToLower(c.GetHeader("Upgrade")) != "websocket" {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			if requireOrigin {
				c.JSON(http.StatusBadRequest, gin.H{"error": "WebSocket origin required"})
				c.Abort()
				return
			}
			c.Next()
			return
		}

		var allowed bool
		if !cfg.IsProduction() {
			allowed = strings.HasPrefix(origin, "http://localhost:") ||
				strings.HasPrefix(origin, "http://127.0.0.1:")
		} else {
			for _, o := range allowedOrigins(cfg) {
				if origin == o {
					allowed = true
					break
				}
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "WebSocket origin not allowed"})
			c.Abort()
			return
		}

		c.Next()
	}
}
