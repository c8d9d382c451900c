package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"pes-mcp/internal/validation"
)

// DefaultDatasetFile is the dataset name used when DATASET_FILE is not set.
const DefaultDatasetFile = "production_efficiency_simulator_dataset.csv"

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string  `envconfig:"DATA_PATH" json:"data_path"`
	DatasetFile         string  `envconfig:"DATASET_FILE" default:"production_efficiency_simulator_dataset.csv" json:"dataset_file" validate:"required"`
	PresetsFile         string  `envconfig:"PRESETS_FILE" json:"presets_file"`
	LogDir              string  `envconfig:"LOGS_FOLDER" json:"logs_folder"`
	HTTPAddr            string  `envconfig:"HTTP_ADDR" default:":8080" json:"http_addr" validate:"required"`
	AnomalyThreshold    float64 `envconfig:"ANOMALY_THRESHOLD" default:"60" json:"anomaly_threshold" validate:"gt=0,lte=100"`
	ForecastHorizon     int     `envconfig:"FORECAST_HORIZON_DAYS" default:"7" json:"forecast_horizon_days" validate:"gte=1,lte=90"`
	EnableMermaidCharts bool    `envconfig:"ENABLE_MERMAID_CHARTS" default:"false" json:"enable_mermaid_charts"`
}

// ErrorKind classifies configuration failures.
type ErrorKind string

const (
	ErrParsing    ErrorKind = "parsing"
	ErrValidation ErrorKind = "validation"
)

// ConfigError wraps a configuration failure with its kind.
type ConfigError struct {
	Kind ErrorKind
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration %s error: %v", e.Kind, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return fromEnv(exeDir)
}

func fromEnv(exeDir string) (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{Kind: ErrParsing, Err: err}
	}

	if cfg.DataPath == "" {
		if exeDir != "" {
			cfg.DataPath = exeDir
		} else {
			cfg.DataPath = "."
		}
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.DataPath, "logs")
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, &ConfigError{Kind: ErrValidation, Err: err}
	}

	return &cfg, nil
}

// DatasetPath resolves the dataset file against DataPath unless it is absolute.
func (c *AppConfig) DatasetPath() string {
	return c.resolve(c.DatasetFile)
}

// PresetsPath resolves the presets file against DataPath. Empty when no file is configured.
func (c *AppConfig) PresetsPath() string {
	if c.PresetsFile == "" {
		return ""
	}
	return c.resolve(c.PresetsFile)
}

func (c *AppConfig) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataPath, p)
}
