package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// Channel opener kinds.
const (
	OpenerConsole  = "console"
	OpenerTelegram = "telegram"
)

// Scoring history sources.
const (
	HistorySourceAPI      = "api"
	HistorySourcePostgres = "postgres"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string
	HTTPAddr    string
	LogLevel    string
	Environment string

	ChannelBaseURL string
	ChannelOpener  string // console | telegram

	TelegramToken      string
	OperatorTelegramID int64

	PublicLinkBaseURL string
	PublicLinkSecret  string
	PublicLinkTTL     time.Duration

	ScoringAPIURL        string
	ScoringAPITimeout    time.Duration
	ScoringHistorySource string // api | postgres

	DefaultSystemName     string
	SystemConfigCacheTTL  time.Duration
	CronSpecConfigRefresh string
	StatusClearInterval   time.Duration
	CORSAllowedOrigins    []string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	cfg.ChannelBaseURL = getEnv("CHANNEL_BASE_URL", "https://wa.me")
	cfg.ChannelOpener = strings.ToLower(getEnv("CHANNEL_OPENER", OpenerConsole))
	switch cfg.ChannelOpener {
	case OpenerConsole:
	case OpenerTelegram:
		cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
		if cfg.TelegramToken == "" {
			return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
		}
		operatorIDStr := os.Getenv("OPERATOR_TELEGRAM_ID")
		if operatorIDStr == "" {
			return nil, fmt.Errorf("OPERATOR_TELEGRAM_ID is not set")
		}
		cfg.OperatorTelegramID, err = strconv.ParseInt(operatorIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OPERATOR_TELEGRAM_ID: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid CHANNEL_OPENER %q", cfg.ChannelOpener)
	}

	cfg.PublicLinkBaseURL = os.Getenv("PUBLIC_LINK_BASE_URL")
	if cfg.PublicLinkBaseURL == "" {
		return nil, fmt.Errorf("PUBLIC_LINK_BASE_URL is not set")
	}
	cfg.PublicLinkSecret = os.Getenv("PUBLIC_LINK_SECRET")
	if cfg.PublicLinkSecret == "" {
		return nil, fmt.Errorf("PUBLIC_LINK_SECRET is not set")
	}
	if cfg.PublicLinkTTL, err = durationEnv("PUBLIC_LINK_TTL_HOURS", 720, time.Hour); err != nil {
		return nil, err
	}

	cfg.ScoringAPIURL = os.Getenv("SCORING_API_URL")
	if cfg.ScoringAPIURL == "" {
		return nil, fmt.Errorf("SCORING_API_URL is not set")
	}
	if cfg.ScoringAPITimeout, err = durationEnv("SCORING_API_TIMEOUT_SECONDS", 10, time.Second); err != nil {
		return nil, err
	}
	cfg.ScoringHistorySource = strings.ToLower(getEnv("SCORING_HISTORY_SOURCE", HistorySourceAPI))
	if cfg.ScoringHistorySource != HistorySourceAPI && cfg.ScoringHistorySource != HistorySourcePostgres {
		return nil, fmt.Errorf("invalid SCORING_HISTORY_SOURCE %q", cfg.ScoringHistorySource)
	}

	cfg.DefaultSystemName = getEnv("DEFAULT_SYSTEM_NAME", "Demo Attendance System")
	if cfg.SystemConfigCacheTTL, err = durationEnv("SYSTEM_CONFIG_CACHE_TTL_SECONDS", 60, time.Second); err != nil {
		return nil, err
	}
	cfg.CronSpecConfigRefresh = getEnv("CRON_SPEC_CONFIG_REFRESH", "*/1 * * * *") // Default: every minute
	if cfg.StatusClearInterval, err = durationEnv("STATUS_CLEAR_SECONDS", 3, time.Second); err != nil {
		return nil, err
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, defaultValue int, unit time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(defaultValue) * unit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return time.Duration(n) * unit, nil
}
