package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depmap/internal/observability"
	"github.com/Sumatoshi-tech/depmap/pkg/fileset"
	"github.com/Sumatoshi-tech/depmap/pkg/gitlib"
	"github.com/Sumatoshi-tech/depmap/pkg/report"
)

// ErrGraphDrift is returned when the committed dependencies.json differs from a fresh scan.
var ErrGraphDrift = errors.New("dependency graph is out of date")

// CheckCommand compares a committed graph with the current tree.
type CheckCommand struct {
	globals *GlobalOptions

	against string
	noColor bool

	initFn   observabilityInit
	discover rootFinder
	list     fileLister
}

// NewCheckCommand creates the check command.
func NewCheckCommand(globals *GlobalOptions) *cobra.Command {
	return newCheckCommandWithDeps(globals, observability.Init, gitlib.DiscoverRoot, fileset.List)
}

func newCheckCommandWithDeps(
	globals *GlobalOptions,
	initFn observabilityInit,
	discover rootFinder,
	list fileLister,
) *cobra.Command {
	cc := &CheckCommand{globals: globals, initFn: initFn, discover: discover, list: list}

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Fail when dependencies.json no longer matches the repository",
		Long: `Regenerate the JSON graph in memory and compare it with a committed copy.

Examples:
  depmap check
  depmap check --against docs/dependencies.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: cc.run,
	}

	cmd.Flags().StringVar(&cc.against, "against", "", "committed graph (default: <output.dir>/dependencies.json)")
	cmd.Flags().Int("workers", 0, "parallel file scans (0 = GOMAXPROCS)")
	cmd.Flags().StringSlice("include", nil, "only scan files matching these globs")
	cmd.Flags().StringSlice("exclude", nil, "skip files and directories matching these globs")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "disable colored output")

	return cmd
}

func (cc *CheckCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, cc.globals, []flagBinding{
		{key: "scan.workers", flag: "workers"},
		{key: "scan.include", flag: "include"},
		{key: "scan.exclude", flag: "exclude"},
	})
	if err != nil {
		return err
	}

	against := cc.against
	if against == "" {
		against = filepath.Join(cfg.Output.Dir, report.FormatJSON.FileName())
	}

	committed, err := os.ReadFile(against)
	if err != nil {
		return fmt.Errorf("read %s: %w", against, err)
	}

	obsCfg, err := observabilityConfig(cfg, cc.globals, observability.ModeCheck)
	if err != nil {
		return err
	}

	obsCfg.LogOutput = cmd.ErrOrStderr()

	return withProviders(cmd.Context(), cc.initFn, obsCfg, func(providers observability.Providers) error {
		logger, _ := observability.WithRunID(providers.Logger)

		root, err := resolveRoot(args, cc.discover, logger)
		if err != nil {
			return err
		}

		graph, err := generate(cmd.Context(), root, cfg, cc.list, providers, logger)
		if err != nil {
			return err
		}

		fresh, err := report.JSON(graph)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		console := report.NewConsole(out, report.ColorEnabled(out, cc.noColor))

		var driftErr error

		switch {
		case bytes.Equal(bytes.TrimSpace(committed), bytes.TrimSpace(fresh)):
			if !cc.globals.Quiet {
				console.Drift(against, nil)
			}
		default:
			console.Drift(against, report.LineDiff(committed, fresh))

			driftErr = fmt.Errorf("%w: %s", ErrGraphDrift, against)
		}

		// A matching graph still fails when files could not be read.
		return errors.Join(driftErr, scanFailure(console, graph, ""))
	})
}
