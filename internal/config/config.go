// Package config loads service configuration from three layers:
// built-in defaults, an optional YAML file, and HOSTPULSE_* environment
// variables, in increasing precedence. A .env file next to the binary is
// honored through godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the service needs at startup. Duration-valued
// settings are kept as strings ("100ms", "2s") and parsed on access so a
// bad value degrades to the default instead of failing the boot.
type Config struct {
	Bind              string   `yaml:"bind"`
	Port              int      `yaml:"port"`
	CPUSampleInterval string   `yaml:"cpu_sample_interval"`
	StreamInterval    string   `yaml:"stream_interval"`
	AuthSecret        string   `yaml:"auth_secret"`
	TokenTTL          string   `yaml:"token_ttl"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	RateLimitRPS      float64  `yaml:"rate_limit_rps"`
	RateLimitBurst    int      `yaml:"rate_limit_burst"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Bind:              "0.0.0.0",
		Port:              8000,
		CPUSampleInterval: "100ms",
		StreamInterval:    "2s",
		TokenTTL:          "24h",
		RateLimitRPS:      100,
		RateLimitBurst:    200,
	}
}

// Load builds the effective configuration. path may be empty, in which
// case only HOSTPULSE_CONFIG is consulted for a file; a missing file is
// not an error.
func Load(path string) (*Config, error) {
	// Populate the environment from .env first so file and variable
	// sources see the same picture.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("HOSTPULSE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HOSTPULSE_BIND"); v != "" {
		c.Bind = v
	}
	if v := os.Getenv("HOSTPULSE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("HOSTPULSE_CPU_SAMPLE_INTERVAL"); v != "" {
		c.CPUSampleInterval = v
	}
	if v := os.Getenv("HOSTPULSE_STREAM_INTERVAL"); v != "" {
		c.StreamInterval = v
	}
	if v := os.Getenv("HOSTPULSE_AUTH_SECRET"); v != "" {
		c.AuthSecret = v
	}
	if v := os.Getenv("HOSTPULSE_TOKEN_TTL"); v != "" {
		c.TokenTTL = v
	}
	if v := os.Getenv("HOSTPULSE_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HOSTPULSE_RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps > 0 {
			c.RateLimitRPS = rps
		}
	}
	if v := os.Getenv("HOSTPULSE_RATE_LIMIT_BURST"); v != "" {
		if burst, err := strconv.Atoi(v); err == nil && burst > 0 {
			c.RateLimitBurst = burst
		}
	}
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// CPUSample is the parsed CPU sampling interval.
func (c *Config) CPUSample() time.Duration {
	return c.duration(c.CPUSampleInterval, 100*time.Millisecond)
}

// Stream is the parsed snapshot broadcast interval.
func (c *Config) Stream() time.Duration {
	return c.duration(c.StreamInterval, 2*time.Second)
}

// TokenLifetime is the parsed bearer token lifetime.
func (c *Config) TokenLifetime() time.Duration {
	return c.duration(c.TokenTTL, 24*time.Hour)
}

// AuthEnabled reports whether the service runs in protected mode.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

func (c *Config) duration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
