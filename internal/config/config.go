package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL     = "https://ark.cn-beijing.volcengineapi.com/api/v3"
	DefaultModel       = "doubao-pro-32k"
	DefaultTargetURL   = "https://aily.feishu.cn/ai/ailyplay/welcome"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

// Config holds everything the recommender needs at startup.
type Config struct {
	APIKey      string        `validate:"required"`
	BaseURL     string        `validate:"required,url"`
	Model       string        `validate:"required"`
	TargetURL   string        `validate:"required,url"`
	MaxTokens   int           `validate:"min=1"`
	Temperature float32       `validate:"gte=0,lte=2"`
	Timeout     time.Duration `validate:"gte=0"`
	Inspect     bool
	Headless    bool
	LogLevel    slog.Level
}

// Load reads the .env file (if present) and the process environment.
// A missing DOUBAO_API_KEY is reported as an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:    strings.TrimSpace(os.Getenv("DOUBAO_API_KEY")),
		BaseURL:   getEnvOrDefault("RECOMMENDER_BASE_URL", DefaultBaseURL),
		Model:     getEnvOrDefault("RECOMMENDER_MODEL", DefaultModel),
		TargetURL: getEnvOrDefault("RECOMMENDER_TARGET_URL", DefaultTargetURL),
	}

	var err error
	if cfg.MaxTokens, err = getInt("RECOMMENDER_MAX_TOKENS", DefaultMaxTokens); err != nil {
		return nil, err
	}
	if cfg.Temperature, err = getFloat("RECOMMENDER_TEMPERATURE", DefaultTemperature); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = getDuration("RECOMMENDER_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.Inspect, err = getBool("RECOMMENDER_INSPECT", false); err != nil {
		return nil, err
	}
	if cfg.Headless, err = getBool("RECOMMENDER_HEADLESS", true); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("DOUBAO_API_KEY is not set")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getInt(key string, def int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, def float32) (float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return float32(v), nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, def bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
