package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Plots   PlotsConfig   `yaml:"plots" envconfig:"PLOTS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// EngineConfig controls how the model estimation executable is located
// and invoked.
type EngineConfig struct {
	// Executable is an explicit path to the engine binary. When empty the
	// locator searches PATH and the conventional build directories.
	Executable string        `yaml:"executable" envconfig:"EXECUTABLE"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
}

// OutputConfig controls where generated artifacts land.
type OutputConfig struct {
	Dir         string `yaml:"dir" envconfig:"DIR" validate:"required"`
	EmbedImages bool   `yaml:"embed_images" envconfig:"EMBED_IMAGES"`
}

// PlotsConfig holds rendering defaults.
type PlotsConfig struct {
	PathsToPlot      int       `yaml:"paths_to_plot" envconfig:"PATHS_TO_PLOT" validate:"gt=0"`
	ConfidenceLevels []float64 `yaml:"confidence_levels" envconfig:"CONFIDENCE_LEVELS" validate:"min=1,dive,gt=0,lt=1"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ConfigFileEnv names the environment variable that points at an explicit
// YAML configuration file.
const ConfigFileEnv = "AGVIZ_CONFIG"

// DefaultConfigFile is consulted when ConfigFileEnv is unset.
const DefaultConfigFile = "agviz.yaml"

// Default returns the built-in configuration baseline.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Timeout: 10 * time.Minute,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Plots: PlotsConfig{
			PathsToPlot:      10,
			ConfidenceLevels: []float64{0.68, 0.95},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/agviz.log",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, in increasing precedence. Environment variables carry
// the AGVIZ_ prefix, e.g. AGVIZ_ENGINE_EXECUTABLE.
func Load() (*Config, error) {
	cfg := Default()

	path := configFilePath()
	if _, err := os.Stat(path); err == nil {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("AGVIZ", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	return DefaultConfigFile
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
