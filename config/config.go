package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	MySQL   MySQLConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Tracing TracingConfig
	Stress  StressConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
	GRPCPort string
	SeedFile string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// CatalogConfig tells a cart how to reach the catalog service.
type CatalogConfig struct {
	Transport string // "http" or "grpc"
	HTTPURL   string
	GRPCAddr  string
	Timeout   time.Duration
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

type StressConfig struct {
	Requests  int
	ProductID int
}

func LoadEnv() *Config {
	appEnv := getEnv("APP_ENV", "dev")
	return &Config{
		Server: ServerConfig{
			AppEnv:   appEnv,
			HTTPPort: getEnv("HTTP_PORT", ":3333"),
			GRPCPort: getEnv("GRPC_PORT", ":50051"),
			SeedFile: getEnv("SEED_FILE", ""),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "json"),
			Development:       appEnv == "development" || appEnv == "dev",
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		MySQL: MySQLConfig{
			DSN:             getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/rocketshoes?parseTime=true"),
			MaxOpenConns:    getEnvInt("MYSQL_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    getEnvInt("MYSQL_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvDuration("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 100),
		},
		Catalog: CatalogConfig{
			Transport: getEnv("CATALOG_TRANSPORT", "http"),
			HTTPURL:   getEnv("CATALOG_HTTP_URL", "http://localhost:3333"),
			GRPCAddr:  getEnv("CATALOG_GRPC_ADDR", "localhost:50051"),
			Timeout:   getEnvDuration("CATALOG_TIMEOUT", 5*time.Second),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "catalog"),
		},
		Stress: StressConfig{
			Requests:  getEnvInt("STRESS_REQUESTS", 50),
			ProductID: getEnvInt("STRESS_PRODUCT_ID", 1),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
