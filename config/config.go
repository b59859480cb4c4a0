package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	defaultSnapshotInterval = 15 * time.Minute
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int

	StoreDriver       string
	DatabaseURL       string
	RosterDatabaseURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	SnapshotInterval  time.Duration

	CORSAllowedOrigins []string

	// ScheduleSeed задаёт seed для жеребьёвки и перемешивания. nil означает случайный seed.
	ScheduleSeed *int64
}

// SnapshotsEnabled reports whether all R2 settings are present.
func (c *Config) SnapshotsEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	if driver == "" {
		driver = StoreDriverPostgres
	}
	if driver != StoreDriverPostgres && driver != StoreDriverMemory {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if driver == StoreDriverPostgres && dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg := &Config{
		ServerPort:        port,
		StoreDriver:       driver,
		DatabaseURL:       dbURL,
		RosterDatabaseURL: os.Getenv("ROSTER_DATABASE_URL"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		SnapshotInterval:  defaultSnapshotInterval,
	}

	// R2 настраивается целиком или не настраивается вовсе.
	r2Set := 0
	for _, v := range []string{cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2BucketName, cfg.R2PublicBaseURL} {
		if v != "" {
			r2Set++
		}
	}
	if r2Set > 0 && r2Set < 5 {
		return nil, fmt.Errorf("R2 configuration is incomplete: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}

	if raw := os.Getenv("SNAPSHOT_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SNAPSHOT_INTERVAL environment variable: %w", err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("SNAPSHOT_INTERVAL must be positive, got %s", interval)
		}
		cfg.SnapshotInterval = interval
	}

	cfg.CORSAllowedOrigins = []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		var origins []string
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) > 0 {
			cfg.CORSAllowedOrigins = origins
		}
	}

	if raw := os.Getenv("SCHEDULE_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SCHEDULE_SEED environment variable: %w", err)
		}
		cfg.ScheduleSeed = &seed
	}

	return cfg, nil
}
