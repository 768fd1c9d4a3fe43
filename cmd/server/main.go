package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shotclock/backend/internal/api"
	"github.com/shotclock/backend/internal/arcade"
	"github.com/shotclock/backend/internal/config"
	"github.com/shotclock/backend/internal/database"
	"github.com/shotclock/backend/internal/game"
	"github.com/shotclock/backend/internal/metrics"
	"github.com/shotclock/backend/internal/migrations"
	"github.com/shotclock/backend/internal/redis"
	"github.com/shotclock/backend/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Round history and operator accounts need Postgres; the game runs without it.
	var db *sqlx.DB
	if cfg.DatabaseURL != "" {
		conn, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] %v; running without round history", err)
		} else {
			db = conn
			defer db.Close()
			if cfg.MigrateOnStart {
				log.Println("[MIGRATE] Running DB migrations on startup...")
				if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
					log.Fatalf("Failed to run migrations: %v", err)
				}
			}
		}
	}

	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		conn, err := redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Printf("[REDIS] %v; session mirror disabled", err)
		} else {
			rdb = conn
			defer rdb.Close()
		}
	}

	rec, metricsHandler, shutdownMetrics, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.MetricsEnabled,
		ServiceName:  cfg.MetricsServiceName,
		OtlpEndpoint: cfg.OTLPEndpoint,
		OtlpInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		log.Fatalf("Failed to set up metrics: %v", err)
	}
	defer shutdownMetrics(context.Background())

	ctrl := game.NewController(
		game.NewPinholeMapper(cfg.CameraFX, cfg.CameraFY, cfg.CameraCX, cfg.CameraCY),
		game.WithDisplay(float64(cfg.DisplayWidth), float64(cfg.DisplayHeight)),
		game.WithRoundLength(time.Duration(cfg.RoundSeconds)*time.Second),
	)

	store := arcade.NewRoundStore(db)
	mirror := arcade.NewMirror(rdb, time.Duration(cfg.SessionMirrorTTLMinutes)*time.Minute)
	if snap, err := mirror.Load(ctx); err != nil {
		log.Printf("[REDIS] failed to read mirrored session: %v", err)
	} else if snap != nil {
		log.Printf("[REDIS] previous session ended in %s with score %d", snap.Phase, snap.Score)
	}

	host := arcade.NewHost(ctrl,
		arcade.WithStore(store),
		arcade.WithMirror(mirror),
		arcade.WithRecorder(rec),
		arcade.WithFrameRate(cfg.FrameHz),
	)
	go host.Run(ctx)

	hub := ws.NewHub(host, rec)
	go hub.Run(ctx)
	hub.StartEventSubscriber(ctx, rdb)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, cfg, api.Deps{
		DB:             db,
		Host:           host,
		Hub:            hub,
		Store:          store,
		Recorder:       rec,
		MetricsHandler: metricsHandler,
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Starting ShotClock server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	case <-host.Done():
		log.Println("Player exited; shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	stop()
	host.Wait()
	log.Println("Server stopped")
}
