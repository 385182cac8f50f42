package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	// RateLimit uses the ulule limiter format, e.g. "100-M" for 100 requests per minute.
	RateLimit          string
	CORSAllowedOrigins []string

	// Savings terms applied when a create request leaves them out.
	DefaultInterestRatePercent decimal.Decimal
	DefaultWithdrawLimit       int
	DefaultWithdrawalFee       decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
// configFile is optional; when set it is read before the environment is applied.
func LoadConfig(configFile string) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DEFAULT_INTEREST_RATE_PERCENT", "0")
	v.SetDefault("DEFAULT_WITHDRAW_LIMIT", 3)
	v.SetDefault("DEFAULT_WITHDRAWAL_FEE", "2.0")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	level, err := parseLogLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	rate, err := decimal.NewFromString(v.GetString("DEFAULT_INTEREST_RATE_PERCENT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_INTEREST_RATE_PERCENT: %w", err)
	}
	fee, err := decimal.NewFromString(v.GetString("DEFAULT_WITHDRAWAL_FEE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_WITHDRAWAL_FEE: %w", err)
	}
	limit := v.GetInt("DEFAULT_WITHDRAW_LIMIT")
	if rate.IsNegative() || fee.IsNegative() || limit < 0 {
		return nil, fmt.Errorf("default savings terms must not be negative")
	}
	cfg.DefaultInterestRatePercent = rate
	cfg.DefaultWithdrawalFee = fee
	cfg.DefaultWithdrawLimit = limit

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
