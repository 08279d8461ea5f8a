package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseURL string

	JWTSecret     string
	JWTExpiration time.Duration

	RedisAddr     string
	RedisPassword string
	SpotCacheTTL  time.Duration

	AMQPURL string

	// Detector selects the frame-analysis backend: "random" or "rekognition".
	Detector  string
	AWSRegion string

	SyncInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	jwtExpHours := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	cacheTTLSecs := getEnvInt("SPOT_CACHE_TTL_SECONDS", 30)
	syncMins := getEnvInt("SYNC_INTERVAL_MINUTES", 5)

	return &Config{
		ServerPort:  getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: time.Duration(jwtExpHours) * time.Hour,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SpotCacheTTL:  time.Duration(cacheTTLSecs) * time.Second,

		AMQPURL: getEnv("AMQP_URL", ""),

		Detector:  getEnv("DETECTOR", "random"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		SyncInterval: time.Duration(syncMins) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt falls back on unset or malformed values so a typo in an env var
// never produces a zero duration.
func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, value, fallback)
		return fallback
	}
	return n
}
