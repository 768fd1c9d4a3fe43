package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shotclock/backend/internal/config"
)

// GetConfig returns the display and timing values a renderer needs
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"display_width":  cfg.DisplayWidth,
			"display_height": cfg.DisplayHeight,
			"round_seconds":  cfg.RoundSeconds,
			"frame_hz":       cfg.FrameHz,
		})
	}
}
