package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL                string
	SessionMirrorTTLMinutes int

	// Server
	Port        string
	FrontendURL string

	// Display and camera
	DisplayWidth  int
	DisplayHeight int
	CameraFX      float64
	CameraFY      float64
	CameraCX      float64
	CameraCY      float64

	// Game Settings
	RoundSeconds int
	FrameHz      int

	// Metrics
	MetricsEnabled     bool
	MetricsServiceName string
	OTLPEndpoint       string
	OTLPInsecure       bool

	// Security
	JWTSecret          string
	TokenExpiryMinutes int
	RequireSensorAuth  bool
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/shotclock?sslmode=disable"),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		// Redis
		RedisURL:                getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionMirrorTTLMinutes: getEnvInt("SESSION_MIRROR_TTL_MINUTES", 60),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Display and camera (depth-space defaults)
		DisplayWidth:  getEnvInt("DISPLAY_WIDTH", 512),
		DisplayHeight: getEnvInt("DISPLAY_HEIGHT", 424),
		CameraFX:      getEnvFloat("CAMERA_FX", 365.5),
		CameraFY:      getEnvFloat("CAMERA_FY", 365.5),
		CameraCX:      getEnvFloat("CAMERA_CX", 256),
		CameraCY:      getEnvFloat("CAMERA_CY", 212),

		// Game Settings
		RoundSeconds: getEnvInt("ROUND_SECONDS", 30),
		FrameHz:      getEnvInt("FRAME_HZ", 30),

		// Metrics
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		MetricsServiceName: getEnv("METRICS_SERVICE_NAME", "shotclock"),
		OTLPEndpoint:       getEnv("OTLP_ENDPOINT", ""),
		OTLPInsecure:       getEnvBool("OTLP_INSECURE", true),

		// Security
		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		TokenExpiryMinutes: getEnvInt("TOKEN_EXPIRY_MINUTES", 720),
		RequireSensorAuth:  getEnvBool("REQUIRE_SENSOR_AUTH", false),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
