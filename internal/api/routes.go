package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/shotclock/backend/internal/api/handlers"
	"github.com/shotclock/backend/internal/arcade"
	"github.com/shotclock/backend/internal/config"
	"github.com/shotclock/backend/internal/metrics"
	"github.com/shotclock/backend/internal/middleware"
	"github.com/shotclock/backend/internal/operator"
	"github.com/shotclock/backend/internal/ws"
)

// Deps are the services the HTTP surface is wired to. DB may be nil.
type Deps struct {
	DB             *sqlx.DB
	Host           *arcade.Host
	Hub            *ws.Hub
	Store          *arcade.RoundStore
	Recorder       *metrics.Recorder
	MetricsHandler http.Handler
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, d Deps) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestMetrics(d.Recorder))

	if !cfg.IsProduction() {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	if d.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(d.MetricsHandler))
	}

	desk := operator.NewDesk(d.DB)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/config", handlers.GetConfig(cfg))

		v1.GET("/session", handlers.GetSession(d.Host))
		v1.GET("/rounds", handlers.GetRounds(d.Store))
		v1.GET("/rounds/:id/shots", handlers.GetRoundShots(d.Store))

		v1.POST("/operator/login", handlers.OperatorLogin(desk, cfg))

		operatorOnly := middleware.OperatorAuth(cfg, operator.RoleOperator)
		v1.POST("/session/frame", operatorOnly, handlers.SubmitFrame(d.Host))
		v1.POST("/sensor/status", operatorOnly, handlers.SetSensorStatus(d.Host, desk))
		v1.GET("/operator/audit", operatorOnly, handlers.GetAuditLogs(desk))

		wsGroup := v1.Group("/ws")
		{
			wsGroup.GET("/sensor", middleware.WebSocketCORSCheck(cfg, false), middleware.SensorAuth(cfg), d.Hub.ServeSensor())
			wsGroup.GET("/render", middleware.WebSocketCORSCheck(cfg, true), d.Hub.ServeRender())
		}
	}
}
