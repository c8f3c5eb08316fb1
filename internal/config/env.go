package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Env          string
	DatabaseURL  string
	JWTSecret    string
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
	AIAPIKey     string
	GenModel     string
	DataDir      string
	ProfilePath  string
	MockLatency  time.Duration
	ThinkDelay   time.Duration
}

// LoadConfig loads the environment variables and returns the config.
// DATABASE_URL, AWS credentials and GEMINI_API_KEY are all optional: when
// absent the app falls back to the in-memory store, local-disk object storage
// and the canned responder respectively.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("APP_ENV", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),
		BucketName:   getEnv("BUCKET_NAME", "doculaw-docs"),
		AIAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GenModel:     getEnv("GEN_MODEL", "gemini-1.5-flash"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		ProfilePath:  getEnv("PROFILE_PATH", "./data/doculaw_user_profile.json"),
		MockLatency:  getEnvDuration("MOCK_LATENCY_MS", 500),
		ThinkDelay:   getEnvDuration("THINK_DELAY_MS", 1000),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
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

func getEnvDuration(key string, defMillis int) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return time.Duration(defMillis) * time.Millisecond
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %dms", key, v, defMillis)
		return time.Duration(defMillis) * time.Millisecond
	}
	return time.Duration(n) * time.Millisecond
}
