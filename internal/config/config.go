// Package config loads clauseguard settings from an optional YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/clauseguard/internal/errs"
	"github.com/dshills/clauseguard/internal/schema"
)

// DefaultPath is read when no --config flag is given. Its absence is not an error.
const DefaultPath = "clauseguard.yaml"

// Environment variables that override file settings.
const (
	EnvModel       = "CLAUSEGUARD_MODEL"
	EnvTemperature = "CLAUSEGUARD_TEMPERATURE"
	EnvMaxRetries  = "CLAUSEGUARD_MAX_RETRIES"
	EnvConcurrency = "CLAUSEGUARD_CONCURRENCY"
)

// Duration is a time.Duration written as a string ("500ms", "5m") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) { return time.Duration(d).String(), nil }

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Retry struct {
	MaxRetries    int      `yaml:"max_retries"`
	BaseDelay     Duration `yaml:"base_delay"`
	MaxDelay      Duration `yaml:"max_delay"`
	BackoffFactor float64  `yaml:"backoff_factor"`
}

type Batch struct {
	Concurrency int      `yaml:"concurrency"`
	Timeout     Duration `yaml:"timeout"`
}

type Cache struct {
	AnalysisSize int      `yaml:"analysis_size"`
	AnalysisTTL  Duration `yaml:"analysis_ttl"`
	ReportSize   int      `yaml:"report_size"`
	ReportTTL    Duration `yaml:"report_ttl"`
}

// Config is the full set of settings.
type Config struct {
	Model       string       `yaml:"model"`
	Temperature float64      `yaml:"temperature"`
	MaxTokens   int          `yaml:"max_tokens"`
	Frameworks  []string     `yaml:"frameworks"`
	Depth       schema.Depth `yaml:"depth"`
	Retry       Retry        `yaml:"retry"`
	Batch       Batch        `yaml:"batch"`
	Cache       Cache        `yaml:"cache"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Model:       "anthropic:claude-sonnet-4-6",
		Temperature: 0.2,
		MaxTokens:   4096,
		Frameworks:  []string{"general", "gdpr"},
		Depth:       schema.DepthStandard,
		Retry: Retry{
			MaxRetries:    3,
			BaseDelay:     Duration(500 * time.Millisecond),
			MaxDelay:      Duration(10 * time.Second),
			BackoffFactor: 2,
		},
		Batch: Batch{Concurrency: 4, Timeout: Duration(5 * time.Minute)},
		Cache: Cache{
			AnalysisSize: 256,
			ReportSize:   1024,
			ReportTTL:    Duration(24 * time.Hour),
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. When explicit is false a missing file yields the
// defaults; when true it is an error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parsing %s: %w", errs.ErrValidation, path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("%w: reading config: %w", errs.ErrValidation, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvTemperature); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errs.ErrValidation, EnvTemperature, err)
		}
		c.Temperature = f
	}
	if v := os.Getenv(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errs.ErrValidation, EnvMaxRetries, err)
		}
		c.Retry.MaxRetries = n
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errs.ErrValidation, EnvConcurrency, err)
		}
		c.Batch.Concurrency = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Model == "":
		return fmt.Errorf("%w: model is required", errs.ErrValidation)
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("%w: temperature must be between 0 and 2, got %g", errs.ErrValidation, c.Temperature)
	case c.MaxTokens < 0:
		return fmt.Errorf("%w: max_tokens must not be negative", errs.ErrValidation)
	case !c.Depth.IsValid():
		return fmt.Errorf("%w: depth must be quick, standard or comprehensive, got %q", errs.ErrValidation, c.Depth)
	case c.Retry.MaxRetries < 0:
		return fmt.Errorf("%w: retry.max_retries must not be negative", errs.ErrValidation)
	case c.Retry.BackoffFactor < 1:
		return fmt.Errorf("%w: retry.backoff_factor must be at least 1, got %g", errs.ErrValidation, c.Retry.BackoffFactor)
	case c.Retry.BaseDelay < 0 || c.Retry.MaxDelay < 0:
		return fmt.Errorf("%w: retry delays must not be negative", errs.ErrValidation)
	case c.Batch.Concurrency < 1:
		return fmt.Errorf("%w: batch.concurrency must be at least 1", errs.ErrValidation)
	case c.Batch.Timeout < 0:
		return fmt.Errorf("%w: batch.timeout must not be negative", errs.ErrValidation)
	case c.Cache.AnalysisSize < 0 || c.Cache.ReportSize < 0:
		return fmt.Errorf("%w: cache sizes must not be negative", errs.ErrValidation)
	case c.Cache.AnalysisTTL < 0 || c.Cache.ReportTTL < 0:
		return fmt.Errorf("%w: cache TTLs must not be negative", errs.ErrValidation)
	}
	return nil
}
