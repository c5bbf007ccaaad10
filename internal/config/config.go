package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"realz/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const supabaseVerifyPath = "/functions/v1/public_verify"

type Config struct {
	HTTPAddr string
	LogLevel string

	// EndpointURL is the verification endpoint. It is the only option the
	// YAML config file recognizes.
	EndpointURL     string
	VerifyTimeout   time.Duration
	DisplayTimezone string

	RateLimitRequests      int
	RateLimitWindowSeconds int
	RateLimitFailClosed    bool
	RateLimitMaxKeys       int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type fileConfig struct {
	EndpointURL string `yaml:"endpointUrl"`
}

// Load reads an optional .env file, then an optional YAML file named by
// CONFIG_FILE, then the environment. Environment values win.
func Load() (Config, error) {
	_ = godotenv.Load()
	cfg := FromEnv()
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	if cfg.EndpointURL == "" {
		cfg.EndpointURL = file.EndpointURL
	}
	return cfg, nil
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		LogLevel:               envDefault("LOG_LEVEL", "info"),
		EndpointURL:            endpointFromEnv(),
		VerifyTimeout:          time.Duration(envIntDefault("VERIFY_TIMEOUT_SECONDS", 10)) * time.Second,
		DisplayTimezone:        envDefault("DISPLAY_TIMEZONE", "UTC"),
		RateLimitRequests:      envIntDefault("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindowSeconds: envIntDefault("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitFailClosed:    envBoolDefault("RATE_LIMIT_FAIL_CLOSED", false),
		RateLimitMaxKeys:       envIntDefault("RATE_LIMIT_MAX_KEYS", 10000),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
	}
}

func (c Config) Validate() error {
	if c.EndpointURL == "" {
		return fmt.Errorf("%w: VERIFY_ENDPOINT_URL is required", domain.ErrInvalidConfig)
	}
	u, err := url.Parse(c.EndpointURL)
	if err != nil {
		return fmt.Errorf("%w: endpoint url: %v", domain.ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: endpoint url must be an absolute http(s) url", domain.ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: DISPLAY_TIMEZONE: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Location resolves DISPLAY_TIMEZONE. An empty value means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.DisplayTimezone)
}

func (c Config) RateLimitWindow() time.Duration {
	if c.RateLimitWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func endpointFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("VERIFY_ENDPOINT_URL")); v != "" {
		return v
	}
	if base := strings.TrimSpace(os.Getenv("SUPABASE_URL")); base != "" {
		return strings.TrimRight(base, "/") + supabaseVerifyPath
	}
	return ""
}

func readFile(path string) (fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("%w: parse config file: %v", domain.ErrInvalidConfig, err)
	}
	fc.EndpointURL = strings.TrimSpace(fc.EndpointURL)
	return fc, nil
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "No":
		return false
	default:
		return def
	}
}
