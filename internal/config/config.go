package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendDatabase = "database"
	BackendRedis    = "redis"
	BackendMinIO    = "minio"
	BackendMemory   = "memory"
)

type Config struct {
	DB      DBConfig
	Redis   RedisConfig
	MinIO   MinIOConfig
	JWT     JWTConfig
	Server  ServerConfig
	Sharing SharingConfig
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ServerConfig struct {
	Port string
}

// SharingConfig selects the room and snapshot backends and tunes room
// allocation. A zero SweepInterval disables the expired-room sweeper.
type SharingConfig struct {
	RoomBackend     string
	SnapshotBackend string
	MaxAttempts     int
	SweepInterval   time.Duration
}

// Load reads .env when present and then the process environment.
// Variables already set in the environment win over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "homemenu"),
			Password: getEnv("DB_PASSWORD", "homemenu_secret"),
			Name:     getEnv("DB_NAME", "homemenu"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "homemenu.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "homemenu"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "homemenu_secret"),
			Bucket:    getEnv("MINIO_BUCKET", "homemenu"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Sharing: SharingConfig{
			RoomBackend:     getEnv("ROOM_BACKEND", BackendDatabase),
			SnapshotBackend: getEnv("SNAPSHOT_BACKEND", BackendDatabase),
			MaxAttempts:     getEnvAsInt("ROOM_CODE_MAX_ATTEMPTS", 5),
			SweepInterval:   getEnvAsDuration("ROOM_SWEEP_INTERVAL", 1*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
