package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog sources
const (
	CatalogSourceFixtures = "fixtures"
	CatalogSourceFile     = "file"
	CatalogSourceMySQL    = "mysql"
)

// Player rate modes
const (
	RateModeFixed    = "fixed"
	RateModeDuration = "duration"
)

// Config stores the application configuration.
type Config struct {
	HTTPAddr string

	// 日志配置
	LogLevel      string
	LogPath       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool

	// 曲库来源
	CatalogSource string
	CatalogFile   string // TOML catalog, used when CatalogSource == "file"

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis配置
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO配置
	MinioEnabled   bool
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioRegion    string

	// 播放器配置
	PlayerTickMS   int     // interval between simulated animation frames
	PlayerRateMode string  // fixed | duration
	PlayerCmdRate  float64 // inbound websocket commands per second
	PlayerCmdBurst int

	TopChartsLimit int
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", ""),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),

		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceFixtures)),
		CatalogFile:   getEnv("CATALOG_FILE", "catalog.toml"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // no hardcoded default for passwords
		DBName:     getEnv("DB_NAME", "beatwave"),

		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinioEnabled:   getEnvBool("MINIO_ENABLED", false),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "beatwave"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),

		PlayerTickMS:   getEnvInt("PLAYER_TICK_MS", 16),
		PlayerRateMode: strings.ToLower(getEnv("PLAYER_RATE_MODE", RateModeFixed)),
		PlayerCmdRate:  getEnvFloat("PLAYER_CMD_RATE", 120),
		PlayerCmdBurst: getEnvInt("PLAYER_CMD_BURST", 30),

		TopChartsLimit: getEnvInt("TOP_CHARTS_LIMIT", 5),
	}

	if cfg.PlayerTickMS <= 0 {
		cfg.PlayerTickMS = 16
	}
	if cfg.TopChartsLimit <= 0 {
		cfg.TopChartsLimit = 5
	}
	switch cfg.CatalogSource {
	case CatalogSourceFixtures, CatalogSourceFile, CatalogSourceMySQL:
	default:
		log.Printf("Unknown CATALOG_SOURCE %q, falling back to %s", cfg.CatalogSource, CatalogSourceFixtures)
		cfg.CatalogSource = CatalogSourceFixtures
	}
	if cfg.PlayerRateMode != RateModeDuration {
		cfg.PlayerRateMode = RateModeFixed
	}
	return cfg
}
