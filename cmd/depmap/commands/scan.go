package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depmap/internal/config"
	"github.com/Sumatoshi-tech/depmap/internal/observability"
	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
	"github.com/Sumatoshi-tech/depmap/pkg/fileset"
	"github.com/Sumatoshi-tech/depmap/pkg/gitlib"
	"github.com/Sumatoshi-tech/depmap/pkg/report"
)

// ErrScanFailed is returned after the artifacts are written when any file could not be scanned.
var ErrScanFailed = errors.New("dependency graph generation failed")

// ScanCommand holds configuration and dependencies for the scan command.
type ScanCommand struct {
	globals *GlobalOptions

	dryRun  bool
	noColor bool

	initFn   observabilityInit
	discover rootFinder
	list     fileLister
}

// NewScanCommand creates the scan command.
func NewScanCommand(globals *GlobalOptions) *cobra.Command {
	return newScanCommandWithDeps(globals, observability.Init, gitlib.DiscoverRoot, fileset.List)
}

func newScanCommandWithDeps(
	globals *GlobalOptions,
	initFn observabilityInit,
	discover rootFinder,
	list fileLister,
) *cobra.Command {
	sc := &ScanCommand{globals: globals, initFn: initFn, discover: discover, list: list}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Build the dependency graph of a repository",
		Long: `Scan a repository and write dependencies.json and dependencies.md.

The path defaults to the enclosing git work tree, or the current directory
outside a repository.

Examples:
  depmap scan
  depmap scan ./service -o out --format html
  depmap scan --include '*.py' --exclude 'tests/**' --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir, "directory receiving the artifacts")
	cmd.Flags().BoolVar(&sc.dryRun, "dry-run", false, "render artifacts without writing them")
	cmd.Flags().Int("workers", config.DefaultScanWorkers, "parallel file scans (0 = GOMAXPROCS)")
	cmd.Flags().StringSlice("include", nil, "only scan files matching these globs")
	cmd.Flags().StringSlice("exclude", nil, "skip files and directories matching these globs")
	cmd.Flags().StringSlice("format", nil, "extra artifact formats: yaml, html")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "disable colored output")
	cmd.Flags().String("metrics-file", "", "write Prometheus text metrics to this file")

	return cmd
}

func scanBindings() []flagBinding {
	return []flagBinding{
		{key: "output.dir", flag: "output-dir"},
		{key: "scan.workers", flag: "workers"},
		{key: "scan.include", flag: "include"},
		{key: "scan.exclude", flag: "exclude"},
		{key: "output.formats", flag: "format"},
		{key: "telemetry.metrics_file", flag: "metrics-file"},
	}
}

func (sc *ScanCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, sc.globals, scanBindings())
	if err != nil {
		return err
	}

	formats, err := report.ParseFormats(cfg.Output.Formats)
	if err != nil {
		return err
	}

	obsCfg, err := observabilityConfig(cfg, sc.globals, observability.ModeScan)
	if err != nil {
		return err
	}

	obsCfg.LogOutput = cmd.ErrOrStderr()

	return withProviders(cmd.Context(), sc.initFn, obsCfg, func(providers observability.Providers) error {
		logger, _ := observability.WithRunID(providers.Logger)

		root, err := resolveRoot(args, sc.discover, logger)
		if err != nil {
			return err
		}

		graph, err := generate(cmd.Context(), root, cfg, sc.list, providers, logger)
		if err != nil {
			return err
		}

		artifacts, err := report.RenderAll(graph, cfg.Output.Dir, formats, cfg.ReportOptions())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		console := report.NewConsole(out, report.ColorEnabled(out, sc.noColor))

		if sc.dryRun {
			console.DryRun(graph, artifacts)
		} else {
			err = report.Write(artifacts)
			if err != nil {
				return err
			}

			if !sc.globals.Quiet {
				console.Written(artifacts)
			}
		}

		if !sc.globals.Quiet {
			console.Summary(graph)
		}

		return scanFailure(console, graph, filepath.Join(cfg.Output.Dir, report.FormatMarkdown.FileName()))
	})
}

// scanFailure echoes scan errors and returns ErrScanFailed when any file
// could not be read. details names the report listing every error, if any.
func scanFailure(console *report.Console, graph *depgraph.Graph, details string) error {
	if !graph.Failed() {
		return nil
	}

	console.Errors(graph.Errors)

	if details == "" {
		return fmt.Errorf("%w with %d error(s)", ErrScanFailed, len(graph.Errors))
	}

	return fmt.Errorf("%w with %d error(s); see %s for details", ErrScanFailed, len(graph.Errors), details)
}
