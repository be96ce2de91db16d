package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "jobscan"
	ConfigFileName = "config.json"

	DefaultAPIURL = "http://localhost:3001/api"
)

// Config contains connection and logging settings for the console.
type Config struct {
	APIURL         string   `json:"api_url"`
	FallbackURLs   []string `json:"fallback_urls,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	PollIntervalMS int      `json:"poll_interval_ms"`
	RateLimit      float64  `json:"rate_limit"`
	LogFile        string   `json:"log_file,omitempty"`
	LogMaxSizeMB   int      `json:"log_max_size_mb,omitempty"`
	LogMaxBackups  int      `json:"log_max_backups,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		APIURL:         envString("JOBSCAN_API_URL", DefaultAPIURL),
		TimeoutSeconds: envInt("JOBSCAN_TIMEOUT", 30),
		PollIntervalMS: envInt("JOBSCAN_POLL_INTERVAL_MS", 2000),
		RateLimit:      10,
		LogMaxSizeMB:   10,
		LogMaxBackups:  3,
	}
}

// Endpoints returns the primary API URL followed by any fallbacks, trimmed
// and without duplicates.
func (c Config) Endpoints() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, raw := range append([]string{c.APIURL}, c.FallbackURLs...) {
		raw = strings.TrimRight(strings.TrimSpace(raw), "/")
		if raw == "" {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		out = append(out, raw)
	}
	return out
}

func (c Config) PollInterval() time.Duration {
	if c.PollIntervalMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads a JSON5 config from path over the defaults. A missing or
// empty file yields the defaults. Environment variables win over the file.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if val := strings.TrimSpace(os.Getenv("JOBSCAN_API_URL")); val != "" {
		cfg.APIURL = val
	}
	cfg.TimeoutSeconds = envInt("JOBSCAN_TIMEOUT", cfg.TimeoutSeconds)
	cfg.PollIntervalMS = envInt("JOBSCAN_POLL_INTERVAL_MS", cfg.PollIntervalMS)
}

// Init writes a default config.json if it doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

// SplitCSV splits a comma-separated flag value, dropping empty parts.
func SplitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
