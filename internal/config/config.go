package config

import (
	"os"
	"strconv"
	"time"

	"railres/internal/cache"
	"railres/internal/database"
	"railres/internal/messaging"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	Auth     AuthConfig
	Booking  BookingConfig
	Database database.Config
	NATS     messaging.Config
	Valkey   cache.Config
}

// AuthConfig describes token issuing and password hashing.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// BookingConfig holds booking service tuning.
type BookingConfig struct {
	PNRMaxAttempts int
	SeedDemoData   bool
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "railres-dev-secret"),
			TokenTTL:      time.Duration(getEnvInt("TOKEN_TTL_MIN", 60)) * time.Minute,
			BcryptCost:    getEnvInt("BCRYPT_COST", 10),
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		},

		Booking: BookingConfig{
			PNRMaxAttempts: getEnvInt("PNR_MAX_ATTEMPTS", 16),
			SeedDemoData:   getEnvBool("SEED_DEMO_DATA", true),
		},

		Database: database.Config{
			Enabled:            getEnvBool("DB_ENABLED", false),
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "railres"),
			Password:           getEnv("DB_PASSWORD", "railres123"),
			DBName:             getEnv("DB_NAME", "railres"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			Enabled:   getEnvBool("NATS_ENABLED", false),
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "railres"),
			ClientID:  getEnv("NATS_CLIENT_ID", "railres-api"),
		},

		Valkey: cache.Config{
			Enabled:   getEnvBool("VALKEY_ENABLED", false),
			Addr:      getEnv("VALKEY_ADDR", "localhost:6379"),
			Password:  getEnv("VALKEY_PASSWORD", ""),
			KeyPrefix: getEnv("VALKEY_KEY_PREFIX", "railres:revoked:"),
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
