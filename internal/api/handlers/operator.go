package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shotclock/backend/internal/config"
	"github.com/shotclock/backend/internal/operator"
)

const loginRoute = "/api/v1/operator/login"

// OperatorLogin exchanges an operator username and access token for a JWT
func OperatorLogin(desk *operator.Desk, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !desk.Available() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Operator accounts unavailable"})
			return
		}

		var req struct {
			Username string `json:"username" binding:"required"`
			Token    string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username := strings.TrimSpace(req.Username)

		acct, err := desk.Login(c.Request.Context(), operator.LoginAttempt{
			Username: username,
			Token:    strings.TrimSpace(req.Token),
			IP:       c.ClientIP(),
			Route:    loginRoute,
		})
		switch {
		case errors.Is(err, operator.ErrNotFound), errors.Is(err, operator.ErrInvalidToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		case errors.Is(err, operator.ErrAddressRefused):
			c.JSON(http.StatusForbidden, gin.H{"error": "Address not allowed"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		ttl := time.Duration(cfg.TokenExpiryMinutes) * time.Minute
		token, err := operator.IssueToken(cfg.JWTSecret, acct.Username, acct.Roles, ttl, time.Now())
		if err != nil {
			log.Printf("[OPERATOR] Failed to sign token for %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":        token,
			"expires_in":   int(ttl.Seconds()),
			"username":     acct.Username,
			"display_name": acct.DisplayName,
			"roles":        acct.Roles,
		})
	}
}

// GetAuditLogs returns operator audit entries, newest first
func GetAuditLogs(desk *operator.Desk) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !desk.Available() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Audit log unavailable"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		logs, err := desk.AuditTrail(c.Request.Context(), limit, offset)
		if err != nil {
			log.Printf("[OPERATOR] Failed to load audit logs: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load audit logs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs, "limit": limit, "offset": offset})
	}
}
