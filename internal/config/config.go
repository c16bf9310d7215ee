package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	// Upload grants must outlive a full client-side upload; download grants
	// stay short because download links get passed around.
	UploadGrantTTL   time.Duration
	DownloadGrantTTL time.Duration
	RequestTimeout   time.Duration
}

type Config struct {
	DB_URL      string
	Port        string
	JWTSecret   string
	Environment string
	CorsConfig  cors.Options
	Storage     StorageConfig
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:      getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
		Environment: getEnv("ENV", "development"),
		CorsConfig:  CorsConfig(),
		Storage: StorageConfig{
			Endpoint:         getEnv("S3_ENDPOINT", ""),
			AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", ""),
			BucketName:       getEnv("S3_BUCKET_NAME", ""),
			Region:           getEnv("S3_REGION", "auto"),
			UploadGrantTTL:   getEnvSeconds("UPLOAD_GRANT_TTL_SECONDS", 3600),
			DownloadGrantTTL: getEnvSeconds("DOWNLOAD_GRANT_TTL_SECONDS", 600),
			RequestTimeout:   getEnvSeconds("STORAGE_TIMEOUT_SECONDS", 10),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		log.Println("Ignoring invalid", key, "value:", value)
	}
	return time.Duration(fallback) * time.Second
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "https://linkcrate.vercel.app"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
