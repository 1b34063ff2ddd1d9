package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendGorm  = "gorm"
	BackendLocal = "local"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	EnvDevelopment = "development"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv       string
	ServerPort   string
	StoreBackend string
	DBDriver     string
	MySQLDSN     string
	PostgresDSN  string
	LocalDBPath  string
	ResetDB      bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret   string
	SwaggerHost string

	KafkaBrokers []string
	KafkaTopic   string

	OTLPEndpoint string

	LeaderboardFetchLimit int
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:                getEnv("APP_ENV", EnvDevelopment),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		StoreBackend:          getEnv("STORE_BACKEND", BackendGorm),
		DBDriver:              getEnv("DB_DRIVER", DriverMySQL),
		MySQLDSN:              getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/naturehelp?charset=utf8mb4&parseTime=True&loc=UTC"),
		PostgresDSN:           getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=naturehelp port=5432 sslmode=disable TimeZone=UTC"),
		LocalDBPath:           getEnv("LOCAL_DB_PATH", "naturehelp.db"),
		ResetDB:               getEnvBool("RESET_DB", false),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		JWTSecret:             getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:           os.Getenv("SWAGGER_HOST"),
		KafkaBrokers:          getEnvList("KAFKA_BROKERS"),
		KafkaTopic:            getEnv("KAFKA_TOPIC", "naturehelp.activity"),
		OTLPEndpoint:          os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LeaderboardFetchLimit: getEnvInt("LEADERBOARD_FETCH_LIMIT", 100),
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendGorm:
		if c.DBDriver != DriverMySQL && c.DBDriver != DriverPostgres {
			return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
		}
	case BackendLocal:
		if c.LocalDBPath == "" {
			return fmt.Errorf("LOCAL_DB_PATH is required for the local backend")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.StoreBackend)
	}
	if c.AppEnv != EnvDevelopment && (c.JWTSecret == "" || c.JWTSecret == "change-me") {
		return fmt.Errorf("JWT_SECRET must be set outside development")
	}
	if c.LeaderboardFetchLimit <= 0 {
		return fmt.Errorf("LEADERBOARD_FETCH_LIMIT must be positive")
	}
	return nil
}

// DSN returns the connection string for the configured GORM driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.PostgresDSN
	}
	return c.MySQLDSN
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

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
