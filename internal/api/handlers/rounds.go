package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shotclock/backend/internal/arcade"
)

// GetRounds lists recent completed rounds, newest first
func GetRounds(store *arcade.RoundStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		rounds, err := store.RecentRounds(c.Request.Context(), limit)
		if err != nil {
			log.Printf("[DB] Failed to list rounds: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rounds"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rounds": rounds})
	}
}

// GetRoundShots lists the shots of one round
func GetRoundShots(store *arcade.RoundStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round id"})
			return
		}

		shots, err := store.RoundShots(c.Request.Context(), id)
		if err != nil {
			log.Printf("[DB] Failed to list shots for round %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shots"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"round_id": id, "shots": shots})
	}
}
