package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	SslCertPath string

	AIAPIKey     string
	EmbedModel   string
	EmbedDim     int
	CaptionModel string

	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	BucketName       string

	FrameInterval time.Duration
	MaxFrames     int

	BatchSize    int
	PollInterval time.Duration
	Cooldown     time.Duration

	Port     string
	LogLevel string
}

// LoadConfig loads the environment variables and returns the worker config.
// Mandatory settings (DATABASE_URL, GEMINI_API_KEY) fail fast here, before
// the poll loop ever starts.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SslCertPath: getEnv("SSL_CERT_PATH", ""),

		AIAPIKey:     getEnv("GEMINI_API_KEY", ""),
		EmbedModel:   getEnv("EMBED_MODEL", "text-embedding-004"),
		EmbedDim:     getEnvInt("EMBED_DIM", 768),
		CaptionModel: getEnv("CAPTION_MODEL", "gemini-1.5-flash"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "us-east-1"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		BucketName:       getEnv("BUCKET_NAME", "message-media"),

		FrameInterval: getEnvSeconds("FRAME_INTERVAL_SECONDS", 3),
		MaxFrames:     getEnvInt("MAX_FRAMES_PER_VIDEO", 10),

		BatchSize:    getEnvInt("BATCH_SIZE", 50),
		PollInterval: getEnvSeconds("POLL_INTERVAL_SECONDS", 30),
		Cooldown:     getEnvSeconds("COOLDOWN_SECONDS", 60),

		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.AIAPIKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvSeconds(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def)) * time.Second
}
