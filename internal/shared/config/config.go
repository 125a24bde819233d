package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "CONFIG_PATH"

// envPrefix is optional on every variable: RECIPES_PORT and PORT are equivalent.
const envPrefix = "RECIPES_"

// DefaultPaths are searched in order when PathEnvVar is unset.
var DefaultPaths = []string{"config.yaml", "config.yml"}

// Config holds application configuration.
type Config struct {
	Port            string          `koanf:"port"`
	Env             string          `koanf:"env"`
	CORSAllowOrigin []string        `koanf:"cors_allow_origins"`
	Log             LogConfig       `koanf:"log"`
	SeedSamples     bool            `koanf:"seed_samples"`
	Recommend       RecommendConfig `koanf:"recommend"`
	RateLimit       RateLimitConfig `koanf:"rate_limit"`
}

// LogConfig configures telemetry output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RecommendConfig configures recommendation generation.
type RecommendConfig struct {
	// Seed fixes the random source used when no favorites exist. Zero means time-seeded.
	Seed uint64 `koanf:"seed"`
}

// RateLimitConfig is a per-client token bucket. Rate <= 0 disables limiting.
type RateLimitConfig struct {
	Rate  float64 `koanf:"rate"`
	Burst int     `koanf:"burst"`
}

// Default returns the configuration used before any file or env overrides.
func Default() Config {
	return Config{
		Port:            "8080",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		SeedSamples: true,
		RateLimit: RateLimitConfig{
			Rate:  20,
			Burst: 40,
		},
	}
}

// Load layers defaults, an optional YAML file and environment variables, in
// increasing priority.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if raw, ok := k.Get("cors_allow_origins").(string); ok {
		if err := k.Set("cors_allow_origins", splitAndTrim(raw)); err != nil {
			return Config{}, fmt.Errorf("set cors_allow_origins: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("config: port is required")
	}
	if c.RateLimit.Rate > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("config: rate_limit.burst must be positive when rate_limit.rate is set")
	}
	return nil
}

var envKeys = map[string]string{
	"port":               "port",
	"env":                "env",
	"cors_allow_origins": "cors_allow_origins",
	"log_level":          "log.level",
	"log_format":         "log.format",
	"seed_samples":       "seed_samples",
	"recommend_seed":     "recommend.seed",
	"rate_limit_rate":    "rate_limit.rate",
	"rate_limit_burst":   "rate_limit.burst",
}

// envKey maps an environment variable name to a config path. Unknown names
// map to "" and are ignored.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	return envKeys[key]
}

func findConfigFile() string {
	if path := strings.TrimSpace(os.Getenv(PathEnvVar)); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
