// Package config loads depmap settings from .depmap.yaml, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/depmap/pkg/fileset"
	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/report"
	"github.com/Sumatoshi-tech/depmap/pkg/resolve"
)

// Config is the top-level configuration struct for depmap.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Scan      ScanConfig      `mapstructure:"scan"`
	Languages LanguagesConfig `mapstructure:"languages"`
	Resolve   ResolveConfig   `mapstructure:"resolve"`
	Output    OutputConfig    `mapstructure:"output"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ScanConfig controls enumeration and the worker pool.
type ScanConfig struct {
	Workers     int      `mapstructure:"workers"`
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
	// MaxFileSize is a human-readable size such as "2MB"; empty means unlimited.
	MaxFileSize string `mapstructure:"max_file_size"`
}

// LanguagesConfig toggles and tunes the language registry.
type LanguagesConfig struct {
	Enabled   []string                    `mapstructure:"enabled"`
	Disabled  []string                    `mapstructure:"disabled"`
	Overrides map[string]LanguageOverride `mapstructure:"overrides"`
}

// LanguageOverride adjusts one language. Unset fields keep the built-in value.
type LanguageOverride struct {
	Priority *int  `mapstructure:"priority"`
	Enabled  *bool `mapstructure:"enabled"`
}

// ResolveConfig holds resolver knobs.
type ResolveConfig struct {
	IncludeDirs   []string `mapstructure:"include_dirs"`
	StatCacheSize int      `mapstructure:"stat_cache_size"`
}

// OutputConfig holds artifact settings.
type OutputConfig struct {
	Dir        string   `mapstructure:"dir"`
	Formats    []string `mapstructure:"formats"`
	Validate   bool     `mapstructure:"validate"`
	DisplayCap int      `mapstructure:"display_cap"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds opt-in exporters.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	MetricsFile  string `mapstructure:"metrics_file"`
}

// Default configuration values.
const (
	DefaultScanWorkers          = 0
	DefaultScanMaxFileSize      = ""
	DefaultResolveStatCacheSize = resolve.DefaultStatCacheSize
	DefaultOutputDir            = "repo-analysis-output"
	DefaultOutputValidate       = true
	DefaultOutputDisplayCap     = report.DefaultDisplayCap
	DefaultLogLevel             = "info"
	DefaultLogJSON              = false
)

// Sentinel validation errors.
var (
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("scan.workers must be non-negative")
	// ErrInvalidMaxFileSize indicates max_file_size is not a byte size.
	ErrInvalidMaxFileSize = errors.New("scan.max_file_size must be a byte size such as 2MB")
	// ErrInvalidStatCacheSize indicates the cache size is not positive.
	ErrInvalidStatCacheSize = errors.New("resolve.stat_cache_size must be positive")
	// ErrInvalidOutputDir indicates an empty output directory.
	ErrInvalidOutputDir = errors.New("output.dir must not be empty")
	// ErrInvalidDisplayCap indicates the display cap is not positive.
	ErrInvalidDisplayCap = errors.New("output.display_cap must be positive")
	// ErrInvalidLogLevel indicates an unsupported log level.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return ErrInvalidWorkers
	}

	if _, err := c.MaxFileSizeBytes(); err != nil {
		return err
	}

	if err := c.FilesetOptions().Validate(); err != nil {
		return err
	}

	if err := lang.NewRegistry().Apply(c.LanguageSettings()); err != nil {
		return err
	}

	if c.Resolve.StatCacheSize <= 0 {
		return ErrInvalidStatCacheSize
	}

	if strings.TrimSpace(c.Output.Dir) == "" {
		return ErrInvalidOutputDir
	}

	if c.Output.DisplayCap <= 0 {
		return ErrInvalidDisplayCap
	}

	if _, err := report.ParseFormats(c.Output.Formats); err != nil {
		return err
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// MaxFileSizeBytes parses scan.max_file_size; 0 means unlimited.
func (c *Config) MaxFileSizeBytes() (int64, error) {
	if strings.TrimSpace(c.Scan.MaxFileSize) == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(c.Scan.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.Scan.MaxFileSize)
	}

	return int64(size), nil //nolint:gosec // sizes beyond MaxInt64 are not meaningful here.
}

// FilesetOptions converts the scan section for the enumerator.
func (c *Config) FilesetOptions() fileset.Options {
	return fileset.Options{
		Include:     c.Scan.Include,
		Exclude:     c.Scan.Exclude,
		ExcludeDirs: c.Scan.ExcludeDirs,
	}
}

// LanguageSettings converts the languages section for the registry.
// An empty enabled list means "no restriction".
func (c *Config) LanguageSettings() lang.Settings {
	settings := lang.Settings{Disabled: c.Languages.Disabled}

	if len(c.Languages.Enabled) > 0 {
		settings.Enabled = c.Languages.Enabled
	}

	if len(c.Languages.Overrides) > 0 {
		settings.Overrides = make(map[string]lang.Override, len(c.Languages.Overrides))

		for name, ov := range c.Languages.Overrides {
			settings.Overrides[name] = lang.Override{Priority: ov.Priority, Enabled: ov.Enabled}
		}
	}

	return settings
}

// Registry returns the built-in registry with the languages section applied.
func (c *Config) Registry() (*lang.Registry, error) {
	reg := lang.NewRegistry()

	err := reg.Apply(c.LanguageSettings())
	if err != nil {
		return nil, fmt.Errorf("configure languages: %w", err)
	}

	return reg, nil
}

// TreeOptions converts the resolve section for resolve.NewTree.
func (c *Config) TreeOptions() []resolve.Option {
	opts := []resolve.Option{resolve.WithStatCacheSize(c.Resolve.StatCacheSize)}

	if c.Resolve.IncludeDirs != nil {
		opts = append(opts, resolve.WithIncludeDirs(c.Resolve.IncludeDirs))
	}

	return opts
}

// ReportOptions converts the output section for the report package.
func (c *Config) ReportOptions() report.Options {
	return report.Options{DisplayCap: c.Output.DisplayCap, Validate: c.Output.Validate}
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Log.Level))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}

	return level, nil
}
