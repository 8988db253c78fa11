// ABOUTME: Healthtrack configuration management with backend selection.
// ABOUTME: Handles file settings, environment overrides, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/healthtrack/internal/charm"
	"github.com/harperreed/healthtrack/internal/stats"
	"github.com/harperreed/healthtrack/internal/storage"
)

// Backends lists the supported storage backends.
var Backends = []string{"sqlite", "badger", "charm", "memory"}

// Config stores healthtrack configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", "charm" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/healthtrack.
	DataDir string `json:"data_dir,omitempty"`

	WaterGoalML int    `json:"water_goal_ml,omitempty"`
	StepGoal    int    `json:"step_goal,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	LogFormat   string `json:"log_format,omitempty"`
}

// envOverrides holds settings read from the environment.
type envOverrides struct {
	Backend   string `env:"HEALTHTRACK_BACKEND"`
	DataDir   string `env:"HEALTHTRACK_DATA_DIR"`
	LogLevel  string `env:"HEALTHTRACK_LOG_LEVEL"`
	LogFormat string `env:"HEALTHTRACK_LOG_FORMAT"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetWaterGoal returns the daily water goal in ml.
func (c *Config) GetWaterGoal() float64 {
	if c.WaterGoalML <= 0 {
		return stats.DefaultWaterGoalML
	}
	return float64(c.WaterGoalML)
}

// GetStepGoal returns the daily step goal.
func (c *Config) GetStepGoal() float64 {
	if c.StepGoal <= 0 {
		return stats.DefaultStepGoal
	}
	return float64(c.StepGoal)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the configured storage backend.
func (c *Config) OpenStore() (storage.KV, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend rooted at the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.KV, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return storage.OpenSQLite(storage.DefaultDBPath(dataDir))
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case "charm":
		return charm.InitClient()
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// Set updates a setting by its JSON name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		for _, b := range Backends {
			if b == value {
				c.Backend = value
				return nil
			}
		}
		return fmt.Errorf("unknown backend: %q (use %s)", value, strings.Join(Backends, ", "))
	case "data_dir":
		c.DataDir = value
	case "water_goal_ml":
		n, err := positiveInt(value)
		if err != nil {
			return fmt.Errorf("water_goal_ml: %w", err)
		}
		c.WaterGoalML = n
	case "step_goal":
		n, err := positiveInt(value)
		if err != nil {
			return fmt.Errorf("step_goal: %w", err)
		}
		c.StepGoal = n
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("must be a positive whole number, got %q", s)
	}
	return n, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthtrack", "config.json")
}

// LoadFile reads config from disk without environment overrides.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Load reads config from disk and applies HEALTHTRACK_* environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings with any HEALTHTRACK_* variables that are set.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if o.Backend != "" {
		c.Backend = o.Backend
	}
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
