// Package commands implements CLI command handlers for depmap.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/depmap/internal/config"
	"github.com/Sumatoshi-tech/depmap/internal/observability"
	"github.com/Sumatoshi-tech/depmap/pkg/version"
)

// GlobalOptions are the persistent root flags shared by every command.
type GlobalOptions struct {
	Verbose    bool
	Quiet      bool
	ConfigPath string
}

// Register adds the persistent flags to root.
func (g *GlobalOptions) Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	root.PersistentFlags().BoolVarP(&g.Quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().StringVar(&g.ConfigPath, "config", "", "config file (default: .depmap.yaml in CWD or $HOME)")
}

type observabilityInit func(observability.Config) (observability.Providers, error)

// flagBinding maps a config key to a command flag.
type flagBinding struct {
	key  string
	flag string
}

// loadConfig resolves configuration with changed flags taking precedence.
func loadConfig(cmd *cobra.Command, globals *GlobalOptions, bindings []flagBinding) (*config.Config, error) {
	viperCfg := viper.New()

	for _, b := range bindings {
		flag := cmd.Flags().Lookup(b.flag)
		if flag == nil {
			continue
		}

		err := viperCfg.BindPFlag(b.key, flag)
		if err != nil {
			return nil, fmt.Errorf("bind --%s: %w", b.flag, err)
		}
	}

	return config.Load(globals.ConfigPath, viperCfg)
}

func observabilityConfig(cfg *config.Config, globals *GlobalOptions, mode observability.AppMode) (observability.Config, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return observability.Config{}, err
	}

	switch {
	case globals.Verbose:
		level = slog.LevelDebug
	case globals.Quiet:
		level = slog.LevelError
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Log.JSON
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.MetricsFile = cfg.Telemetry.MetricsFile

	return obsCfg, nil
}

// withProviders runs fn between observability init and shutdown.
func withProviders(
	ctx context.Context,
	initFn observabilityInit,
	obsCfg observability.Config,
	fn func(observability.Providers) error,
) (err error) {
	providers, err := initFn(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	if providers.Logger == nil {
		providers.Logger = slog.New(slog.DiscardHandler)
	}

	if providers.Tracer == nil {
		providers.Tracer = nooptrace.NewTracerProvider().Tracer("depmap")
	}

	if providers.Meter == nil {
		providers.Meter = noopmetric.NewMeterProvider().Meter("depmap")
	}

	defer func() {
		if providers.Shutdown == nil {
			return
		}

		shutdownErr := providers.Shutdown(context.WithoutCancel(ctx))
		if shutdownErr != nil && err == nil {
			err = fmt.Errorf("shutdown observability: %w", shutdownErr)
		}
	}()

	return fn(providers)
}
