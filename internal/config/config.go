// Package config loads application settings from defaults, an optional YAML
// file and EEG_MOOD_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the merged configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultAnimationPath is the file the animation is written to unless configured.
const DefaultAnimationPath = "eeg_network_animation.gif"

// Config holds all application configuration.
type Config struct {
	Environment string          `yaml:"environment" validate:"oneof=development production"`
	LogLevel    string          `yaml:"log_level" validate:"oneof=debug info warn error"`
	Input       InputConfig     `yaml:"input"`
	Chart       ChartConfig     `yaml:"chart"`
	Animation   AnimationConfig `yaml:"animation"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}

// InputConfig controls table ingestion.
type InputConfig struct {
	Delimiter  string `yaml:"delimiter" validate:"omitempty,oneof=auto comma semicolon tab"`
	Policy     string `yaml:"policy" validate:"oneof=cell row column"`
	MaxSamples int    `yaml:"max_samples" validate:"gte=0"` // 0 keeps every sample
}

// ChartConfig controls the signal chart.
type ChartConfig struct {
	OutputPath  string `yaml:"output_path"` // Empty keeps the chart in memory only
	Width       int    `yaml:"width" validate:"gte=160,lte=4096"`
	Height      int    `yaml:"height" validate:"gte=120,lte=4096"`
	SeriesColor string `yaml:"series_color" validate:"omitempty,hexcolor"` // Hex color such as "#d62728"; empty keeps the default blue
}

// AnimationConfig controls the network animation.
type AnimationConfig struct {
	OutputPath string        `yaml:"output_path" validate:"required"`
	Frames     int           `yaml:"frames" validate:"gte=1,lte=600"`
	Delay      time.Duration `yaml:"delay" validate:"gte=10ms"`
	Width      int           `yaml:"width" validate:"gte=64,lte=2048"`
	Height     int           `yaml:"height" validate:"gte=64,lte=2048"`
	Seed       int64         `yaml:"seed"`  // 0 seeds from the clock
	Trace      bool          `yaml:"trace"` // Draw the signal under the network
}

// MetricsConfig controls the metrics textfile.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path"` // Empty disables the dump
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Input: InputConfig{
			Delimiter:  "auto",
			Policy:     "cell",
			MaxSamples: 100,
		},
		Chart: ChartConfig{
			Width:  640,
			Height: 360,
		},
		Animation: AnimationConfig{
			OutputPath: DefaultAnimationPath,
			Frames:     30,
			Delay:      100 * time.Millisecond,
			Width:      480,
			Height:     480,
		},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// (skipped when path is empty) and environment variables, then validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnvironment(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or 0 to auto-detect.
func (c InputConfig) DelimiterRune() rune {
	switch c.Delimiter {
	case "comma":
		return ','
	case "semicolon":
		return ';'
	case "tab":
		return '\t'
	default:
		return 0
	}
}

// SeriesRGBA parses SeriesColor. ok is false when it is empty or malformed.
func (c ChartConfig) SeriesRGBA() (col color.RGBA, ok bool) {
	hex := strings.TrimPrefix(c.SeriesColor, "#")
	if len(hex) == 3 || len(hex) == 4 {
		var sb strings.Builder
		for _, r := range hex {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		hex = sb.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// loadFile overlays the YAML file at path onto c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// loadEnvironment overlays EEG_MOOD_* environment variables onto c.
func (c *Config) loadEnvironment() error {
	c.Environment = getEnv("EEG_MOOD_ENV", c.Environment)
	c.LogLevel = getEnv("EEG_MOOD_LOG_LEVEL", c.LogLevel)
	c.Input.Delimiter = getEnv("EEG_MOOD_DELIMITER", c.Input.Delimiter)
	c.Input.Policy = getEnv("EEG_MOOD_POLICY", c.Input.Policy)
	c.Chart.OutputPath = getEnv("EEG_MOOD_CHART_PATH", c.Chart.OutputPath)
	c.Animation.OutputPath = getEnv("EEG_MOOD_ANIMATION_PATH", c.Animation.OutputPath)
	c.Metrics.TextfilePath = getEnv("EEG_MOOD_METRICS_FILE", c.Metrics.TextfilePath)
	c.Chart.SeriesColor = getEnv("EEG_MOOD_CHART_COLOR", c.Chart.SeriesColor)

	var err error
	if c.Input.MaxSamples, err = getEnvInt("EEG_MOOD_MAX_SAMPLES", c.Input.MaxSamples); err != nil {
		return err
	}
	if c.Animation.Frames, err = getEnvInt("EEG_MOOD_FRAMES", c.Animation.Frames); err != nil {
		return err
	}
	if c.Animation.Seed, err = getEnvInt64("EEG_MOOD_SEED", c.Animation.Seed); err != nil {
		return err
	}
	if c.Animation.Trace, err = getEnvBool("EEG_MOOD_TRACE", c.Animation.Trace); err != nil {
		return err
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return n, nil
}

// getEnvInt64 gets a 64-bit integer environment variable with a default value.
func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return n, nil
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, value)
	}
	return b, nil
}
