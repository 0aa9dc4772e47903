package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// MinIOConfig holds object storage settings for the S3-compatible backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Config holds application level configuration loaded from environment
// variables. A .env file is auto-loaded when present; real environment
// variables take precedence.
type Config struct {
	ServerPort    string
	DBDriver      string // "mysql" or "sqlite"
	MySQLDSN      string
	SQLitePath    string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	SessionSecret string
	// StorageBackend selects where uploaded PDFs live: "local" (filesystem
	// directory) or "minio".
	StorageBackend string
	UploadDir      string
	MinIO          MinIOConfig
	SwaggerHost    string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/pdfhub?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath:     getEnv("SQLITE_PATH", "profiles.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		SessionSecret:  getEnv("SESSION_SECRET", "change-me"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MinIO: MinIOConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "pdfhub"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
