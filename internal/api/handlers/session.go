package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shotclock/backend/internal/arcade"
	"github.com/shotclock/backend/internal/game"
	"github.com/shotclock/backend/internal/middleware"
	"github.com/shotclock/backend/internal/operator"
)

// GetSession returns the live session snapshot and sensor status
func GetSession(host *arcade.Host) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, host.View())
	}
}

// SubmitFrame evaluates one frame synchronously and returns its draw list
func SubmitFrame(host *arcade.Host) gin.HandlerFunc {
	return func(c *gin.Context) {
		var frame game.Frame
		if err := c.ShouldBindJSON(&frame); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid frame"})
			return
		}

		res, err := host.Process(&frame)
		if errors.Is(err, arcade.ErrTerminated) {
			c.JSON(http.StatusConflict, gin.H{"error": "Session has ended"})
			return
		}
		if err != nil {
			log.Printf("[FRAME] manual frame failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate frame"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// SetSensorStatus records a sensor availability change
func SetSensorStatus(host *arcade.Host, desk *operator.Desk) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Available *bool `json:"available" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available is required"})
			return
		}

		status := host.SetSensorAvailable(*req.Available)
		desk.SensorStatusChanged(c.Request.Context(), middleware.Operator(c), c.ClientIP(), c.FullPath(),
			*req.Available, status)
		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}
