package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/depmap/pkg/resolve"
)

// configName is the config file name without extension.
const configName = ".depmap"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for depmap settings.
const envPrefix = "DEPMAP"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	return Load(configPath, viper.New())
}

// Load is LoadConfig over a caller-supplied viper instance, which lets the
// CLI bind flags before values are resolved.
func Load(configPath string, viperCfg *viper.Viper) (*Config, error) {
	err := loadDotEnv(dotEnvFile)
	if err != nil {
		return nil, err
	}

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, homeErr := os.UserHomeDir()
		if homeErr == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	viperCfg := viper.New()
	applyDefaults(viperCfg)

	var cfg Config

	_ = viperCfg.Unmarshal(&cfg) //nolint:errcheck // defaults always decode.

	return &cfg
}

// loadDotEnv exports variables from path without overriding the environment.
func loadDotEnv(path string) error {
	_, statErr := os.Stat(path)
	if errors.Is(statErr, fs.ErrNotExist) {
		return nil
	}

	err := godotenv.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("scan.workers", DefaultScanWorkers)
	viperCfg.SetDefault("scan.include", []string{})
	viperCfg.SetDefault("scan.exclude", []string{})
	viperCfg.SetDefault("scan.exclude_dirs", []string{})
	viperCfg.SetDefault("scan.max_file_size", DefaultScanMaxFileSize)

	viperCfg.SetDefault("languages.enabled", []string{})
	viperCfg.SetDefault("languages.disabled", []string{})

	viperCfg.SetDefault("resolve.include_dirs", resolve.DefaultIncludeDirs)
	viperCfg.SetDefault("resolve.stat_cache_size", DefaultResolveStatCacheSize)

	viperCfg.SetDefault("output.dir", DefaultOutputDir)
	viperCfg.SetDefault("output.formats", []string{})
	viperCfg.SetDefault("output.validate", DefaultOutputValidate)
	viperCfg.SetDefault("output.display_cap", DefaultOutputDisplayCap)

	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.json", DefaultLogJSON)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.metrics_file", "")
}

