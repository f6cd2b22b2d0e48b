package config

import (
	"os"
	"strconv"
)

// CheckpointConfig selects and configures the persistence backend used to
// durably checkpoint the inventory and history log across restarts.
type CheckpointConfig struct {
	// Backend is one of "file", "minio", "postgres".
	Backend string
	// Key is the storage key the whole state blob is saved under.
	Key string
	// Dir is the local directory used by the file backend.
	Dir string
}

// DatabaseConfig holds PostgreSQL connection settings (postgres backend).
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings (minio backend).
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration for the service, populated from
// environment variables. Sensitive values are never hardcoded.
type AppConfig struct {
	Port string
	// AdminPasskey is the shared secret that grants admin capabilities.
	// Compared verbatim against the X-Admin-Passkey request header.
	AdminPasskey string
	// SeedCatalog controls whether an empty inventory is filled with the
	// built-in default catalog on startup.
	SeedCatalog bool
	Checkpoint  CheckpointConfig
	Database    DatabaseConfig
	MinIO       MinIOConfig
}

// Load reads configuration from environment variables. A .env file can be
// auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() *AppConfig {
	return &AppConfig{
		Port:         getEnv("PORT", "8080"),
		AdminPasskey: getEnv("ADMIN_PASSKEY", "admin123"),
		SeedCatalog:  getEnvBool("SEED_CATALOG", true),
		Checkpoint: CheckpointConfig{
			Backend: getEnv("CHECKPOINT_BACKEND", "file"),
			Key:     getEnv("CHECKPOINT_KEY", "library/state"),
			Dir:     getEnv("CHECKPOINT_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
