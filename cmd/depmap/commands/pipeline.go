package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/depmap/internal/config"
	"github.com/Sumatoshi-tech/depmap/internal/observability"
	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
	"github.com/Sumatoshi-tech/depmap/pkg/fileset"
	"github.com/Sumatoshi-tech/depmap/pkg/resolve"
)

type rootFinder func(start string) (string, error)

type fileLister func(ctx context.Context, root string, opts fileset.Options) ([]string, error)

// resolveRoot picks the scan root: the explicit argument, else the enclosing
// git work tree, else the working directory.
func resolveRoot(args []string, discover rootFinder, logger *slog.Logger) (string, error) {
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", args[0], err)
		}

		return abs, nil
	}

	if discover != nil {
		root, err := discover(".")
		if err == nil {
			logger.Debug("using git work tree as scan root", "root", root)

			return root, nil
		}

		logger.Debug("no git work tree found", "error", err)
	}

	abs, err := filepath.Abs(".")
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	return abs, nil
}

// generate enumerates root and assembles its dependency graph.
func generate(
	ctx context.Context,
	root string,
	cfg *config.Config,
	list fileLister,
	providers observability.Providers,
	logger *slog.Logger,
) (*depgraph.Graph, error) {
	ctx, span := providers.Tracer.Start(ctx, "depmap.scan",
		trace.WithAttributes(attribute.String("scan.root", root)))
	defer span.End()

	graph, err := assemble(ctx, root, cfg, list, providers, logger)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	metrics, err := observability.NewScanMetrics(providers.Meter)
	if err != nil {
		logger.Warn("scan metrics unavailable", "error", err)
	}

	metrics.RecordRun(ctx, scanStats(graph))

	return graph, nil
}

func assemble(
	ctx context.Context,
	root string,
	cfg *config.Config,
	list fileLister,
	providers observability.Providers,
	logger *slog.Logger,
) (*depgraph.Graph, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return nil, err
	}

	filesetOpts := cfg.FilesetOptions()
	if excluded, ok := outputExclusion(root, cfg.Output.Dir); ok {
		filesetOpts.Exclude = append(filesetOpts.Exclude, excluded)
	}

	_, listSpan := providers.Tracer.Start(ctx, "depmap.fileset.list")

	files, err := list(ctx, root, filesetOpts)

	listSpan.SetAttributes(attribute.Int("fileset.files", len(files)))
	listSpan.End()

	if err != nil {
		return nil, fmt.Errorf("enumerate files: %w", err)
	}

	logger.InfoContext(ctx, "enumerated files", "root", root, "files", len(files))

	tree, err := resolve.NewTree(root, cfg.TreeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("open tree: %w", err)
	}

	graph, err := depgraph.Build(ctx, root, files, depgraph.Options{
		Registry:    reg,
		Tree:        tree,
		Workers:     cfg.Scan.Workers,
		MaxFileSize: maxSize,
		Tracer:      providers.Tracer,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	logger.InfoContext(ctx, "graph assembled",
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges),
		"errors", len(graph.Errors),
		"duration", graph.Stats.Duration,
	)

	return graph, nil
}

// outputExclusion keeps artifacts of earlier runs out of the scan when the
// output directory lives inside root.
func outputExclusion(root, outputDir string) (string, bool) {
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(root, absOut)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return "/" + filepath.ToSlash(rel), true
}

func scanStats(g *depgraph.Graph) observability.ScanStats {
	refs := g.Stats.References

	return observability.ScanStats{
		Scanned:    g.Stats.Scanned,
		Skipped:    g.Stats.Skipped,
		Errors:     g.Stats.Errors,
		Edges:      len(g.Edges),
		RefEdges:   refs.Edges,
		Stdlib:     refs.Stdlib,
		ThirdParty: refs.ThirdParty,
		Discarded:  refs.Discarded,
		Duration:   g.Stats.Duration,
	}
}
