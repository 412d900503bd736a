package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSamples       = 100
	DefaultDomain        = 10.0
	DefaultFrameInterval = 100 * time.Millisecond
	DefaultHeartInterval = 700 * time.Millisecond
	DefaultTheme         = "cyberpunk"
	DefaultDataDir       = "runs"
	DefaultExportFormat  = "png"
)

// Environment variables consulted when the matching flag is not set.
const (
	EnvConfig = "CARDIOSIM_CONFIG"
	EnvData   = "CARDIOSIM_DATA"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Samples       int                 `yaml:"samples"`
	Domain        float64             `yaml:"domain"`
	FrameInterval time.Duration       `yaml:"frame_interval"`
	HeartInterval time.Duration       `yaml:"heart_interval"`
	Theme         string              `yaml:"theme"`
	DataDir       string              `yaml:"data_dir"`
	Export        ExportConfig        `yaml:"export"`
	Presets       map[string][]string `yaml:"presets,omitempty"`
}

type ExportConfig struct {
	Dir        string `yaml:"dir"`
	Format     string `yaml:"format"`
	OnComplete bool   `yaml:"on_complete"`
}

func DefaultConfig() *Config {
	return &Config{
		Samples:       DefaultSamples,
		Domain:        DefaultDomain,
		FrameInterval: DefaultFrameInterval,
		HeartInterval: DefaultHeartInterval,
		Theme:         DefaultTheme,
		DataDir:       DefaultDataDir,
		Export: ExportConfig{
			Dir:    ".",
			Format: DefaultExportFormat,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Samples < 2:
		return fmt.Errorf("%w: samples must be at least 2, got %d", ErrInvalidConfig, c.Samples)
	case !(c.Domain > 0):
		return fmt.Errorf("%w: domain must be positive, got %g", ErrInvalidConfig, c.Domain)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: frame_interval must be positive, got %s", ErrInvalidConfig, c.FrameInterval)
	case c.HeartInterval <= 0:
		return fmt.Errorf("%w: heart_interval must be positive, got %s", ErrInvalidConfig, c.HeartInterval)
	}
	switch c.Export.Format {
	case "png", "svg", "csv", "json":
	default:
		return fmt.Errorf("%w: unknown export format %q", ErrInvalidConfig, c.Export.Format)
	}
	for name, drugs := range c.Presets {
		if len(drugs) == 0 {
			return fmt.Errorf("%w: preset %q is empty", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Preset looks a selection up in the config first and the built-in table
// second.
func (c *Config) Preset(name string) ([]string, bool) {
	if drugs, ok := c.Presets[name]; ok {
		return drugs, true
	}
	drugs := GetPreset(name)
	return drugs, drugs != nil
}

// PresetNames lists built-in and configured presets, sorted.
func (c *Config) PresetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range ListPresets() {
		seen[n] = true
		names = append(names, n)
	}
	for n := range c.Presets {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// LoadDotEnv reads a .env file into the process environment. A missing file
// is not an error.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve picks the flag value when set, then the environment variable,
// then def.
func Resolve(flag, env, def string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}
