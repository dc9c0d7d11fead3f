package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/viant/vecbench/bench"
	"github.com/viant/vecbench/internal/logging"
)

// EnvPrefix prefixes every environment variable, e.g. VECBENCH_TOP_K.
const EnvPrefix = "VECBENCH"

// Config validation errors
var (
	ErrInvalidLogFormat = errors.New("log_format must be 'json' or 'console'")
	ErrInvalidLogLevel  = errors.New("log_level must be debug, info, warn, or error")
	ErrInvalidOutput    = errors.New("output must be 'text' or 'table'")
)

// Config is the full command configuration.
type Config struct {
	bench.Config

	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	// Output selects plain result lines or a table.
	Output string `envconfig:"OUTPUT" default:"text"`
	// HistoryDSN, when set, stores each run in that SQLite database.
	HistoryDSN string `envconfig:"HISTORY_DSN"`
	// MetricsFile, when set, receives a Prometheus text snapshot.
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// LoadConfig reads envFile (if it exists) into the environment and then
// processes VECBENCH_* variables. Variables already set take precedence
// over the file.
func LoadConfig(envFile string) (Config, error) {
	var cfg Config
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if err := cfg.Config.Validate(); err != nil {
		return err
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return ErrInvalidLogLevel
	}
	if cfg.Output != "text" && cfg.Output != "table" {
		return ErrInvalidOutput
	}
	return nil
}
