package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "tzzbcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Export   ExportConfig   `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/process.log"`
}

// PipelineConfig contains extraction pipeline configuration
type PipelineConfig struct {
	// QueueCapacity bounds the record queue between file producers and the
	// report consumer. Producers block when the consumer falls behind.
	QueueCapacity int `yaml:"queue_capacity" envconfig:"QUEUE_CAPACITY" default:"128"`
}

// ExportConfig contains report output configuration
type ExportConfig struct {
	Output string `yaml:"output" envconfig:"OUTPUT" default:"output.xlsx"`
	Sheet  string `yaml:"sheet" envconfig:"SHEET" default:"交割单"`
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
func Load(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first (also applies defaults)
	if err := envconfig.Process("TZZB", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if configFile == "" {
		configFile = os.Getenv("TZZB_CONFIG_FILE")
	}
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("config file not found: %s", configFile), err)
		}
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config over env config where the file sets a
// value and the env left the default untouched by explicit request.
// Environment variables still win: envconfig runs first and file values only
// fill fields the file actually sets when the corresponding env var is unset.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	overlayString := func(dst *string, fileVal string, envKey string) {
		if fileVal != "" && os.Getenv(envKey) == "" {
			*dst = fileVal
		}
	}

	overlayString(&merged.Logging.Level, fileConfig.Logging.Level, "TZZB_LOGGING_LEVEL")
	overlayString(&merged.Logging.Format, fileConfig.Logging.Format, "TZZB_LOGGING_FORMAT")
	overlayString(&merged.Logging.Output, fileConfig.Logging.Output, "TZZB_LOGGING_OUTPUT")
	overlayString(&merged.Logging.FilePath, fileConfig.Logging.FilePath, "TZZB_LOGGING_FILE_PATH")
	overlayString(&merged.Export.Output, fileConfig.Export.Output, "TZZB_EXPORT_OUTPUT")
	overlayString(&merged.Export.Sheet, fileConfig.Export.Sheet, "TZZB_EXPORT_SHEET")

	if fileConfig.Pipeline.QueueCapacity > 0 && os.Getenv("TZZB_PIPELINE_QUEUE_CAPACITY") == "" {
		merged.Pipeline.QueueCapacity = fileConfig.Pipeline.QueueCapacity
	}

	return merged
}

// validate validates the configuration
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("log file path required for output %q", c.Logging.Output)
	}

	if c.Pipeline.QueueCapacity <= 0 {
		return fmt.Errorf("queue capacity must be positive: %d", c.Pipeline.QueueCapacity)
	}

	if c.Export.Output == "" {
		return fmt.Errorf("export output path must not be empty")
	}
	if c.Export.Sheet == "" {
		return fmt.Errorf("export sheet name must not be empty")
	}

	return nil
}
