package depgraph

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/src-d/enry/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/depmap/pkg/classify"
	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/refextract"
	"github.com/Sumatoshi-tech/depmap/pkg/resolve"
)

const tracerName = "depmap"

// ErrNoRegistry is returned when Build is called without a language registry.
var ErrNoRegistry = errors.New("language registry is required")

// Options configures Build.
type Options struct {
	Registry *lang.Registry
	// Rules defaults to DefaultRules(Registry).
	Rules Rules
	// Tree defaults to a tree over root with default settings.
	Tree *resolve.Tree
	// Workers bounds concurrent file scans; 0 means GOMAXPROCS.
	Workers int
	// MaxFileSize skips extraction for larger files; 0 means unlimited.
	MaxFileSize int64
	Tracer      trace.Tracer
	Logger      *slog.Logger
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer != nil {
		return o.Tracer
	}

	return otel.Tracer(tracerName)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.DiscardHandler)
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// fileResult is the immutable outcome of scanning one file.
type fileResult struct {
	file       SourceFile
	targets    []string
	stdlib     []string
	thirdParty []string
	refs       ReferenceCounts
	skipped    bool
	err        *ScanError
}

// Build scans files under root and assembles the dependency graph. files are
// slash-separated paths relative to root. Per-file read failures are recorded
// in Graph.Errors; only cancellation or invalid options fail the call.
func Build(ctx context.Context, root string, files []string, opts Options) (*Graph, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}

	start := time.Now()

	ctx, span := opts.tracer().Start(ctx, "depmap.graph.build",
		trace.WithAttributes(
			attribute.Int("graph.files", len(files)),
			attribute.Int("graph.workers", opts.workers()),
		))
	defer span.End()

	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules(opts.Registry)
	}

	tree := opts.Tree
	if tree == nil {
		var err error

		tree, err = resolve.NewTree(root)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())

			return nil, fmt.Errorf("open tree: %w", err)
		}
	}

	sc := &scanner{
		root:    tree.Root(),
		tree:    tree,
		reg:     opts.Registry,
		rules:   rules,
		maxSize: opts.MaxFileSize,
		logger:  opts.logger(),
		inSet:   make(map[string]struct{}, len(files)),
	}

	for _, f := range files {
		sc.inSet[f] = struct{}{}
	}

	results, err := sc.scanAll(ctx, files, opts.workers())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	graph := reduce(results)
	graph.Stats.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("graph.nodes", len(graph.Nodes)),
		attribute.Int("graph.edges", len(graph.Edges)),
		attribute.Int("graph.errors", len(graph.Errors)),
	)

	return graph, nil
}

type scanner struct {
	root    string
	tree    *resolve.Tree
	reg     *lang.Registry
	rules   Rules
	maxSize int64
	logger  *slog.Logger
	inSet   map[string]struct{}
}

// scanAll runs one task per file. Every task writes only its own slot.
func (s *scanner) scanAll(ctx context.Context, files []string, workers int) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rel := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = s.scanFile(rel)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan files: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan files: %w", err)
	}

	return results, nil
}

func (s *scanner) scanFile(rel string) fileResult {
	res := fileResult{file: s.source(rel)}

	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if s.maxSize > 0 {
		if info, err := os.Stat(full); err == nil && info.Size() > s.maxSize {
			s.logger.Debug("skipping large file", "file", rel, "size", info.Size())

			res.skipped = true

			return res
		}
	}

	data, err := os.ReadFile(full)
	if err != nil {
		s.logger.Warn("cannot read file", "file", rel, "error", err)

		res.err = &ScanError{File: rel, Message: readErrorMessage(err)}

		return res
	}

	rule, ok := s.rules[res.file.Language]
	if !ok || rule.Extract == nil {
		return res
	}

	if enry.IsBinary(data) {
		s.logger.Debug("skipping binary file", "file", rel)

		res.skipped = true

		return res
	}

	content := strings.ToValidUTF8(string(data), "")

	for _, ref := range rule.Extract(content) {
		s.place(&res, rule, ref)
	}

	res.targets = sortedUnique(res.targets)
	res.stdlib = sortedUnique(res.stdlib)
	res.thirdParty = sortedUnique(res.thirdParty)

	return res
}

func (s *scanner) source(rel string) SourceFile {
	file := SourceFile{Path: rel}
	if def, ok := s.reg.Detect(rel); ok {
		file.Language = def.Name
	}

	return file
}

// place routes one reference to exactly one of: an edge, an external bucket, or nowhere.
func (s *scanner) place(res *fileResult, rule Rule, ref refextract.Reference) {
	if rule.Resolve != nil {
		if target, ok := rule.Resolve(s.tree, ref, res.file.Path); ok {
			if _, member := s.inSet[target]; member {
				if target == res.file.Path {
					res.refs.Discarded++
				} else {
					res.targets = append(res.targets, target)
					res.refs.Edges++
				}

				return
			}
		}
	}

	switch rule.Classify(ref) {
	case classify.Stdlib:
		res.stdlib = append(res.stdlib, rule.packageName(ref))
		res.refs.Stdlib++
	case classify.ThirdParty:
		res.thirdParty = append(res.thirdParty, rule.packageName(ref))
		res.refs.ThirdParty++
	case classify.Unknown:
		res.refs.Discarded++
	}
}

func readErrorMessage(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}

	return err.Error()
}

// reduce merges per-file results in a single goroutine.
func reduce(results []fileResult) *Graph {
	slices.SortFunc(results, func(a, b fileResult) int { return cmp.Compare(a.file.Path, b.file.Path) })

	graph := &Graph{
		Nodes: make([]Node, 0, len(results)),
		Edges: []Edge{},
	}

	var stdlib, thirdParty []string

	for _, res := range results {
		graph.Nodes = append(graph.Nodes, Node{
			Path:       res.file.Path,
			Language:   res.file.Language,
			Stdlib:     nonNil(res.stdlib),
			ThirdParty: nonNil(res.thirdParty),
		})

		for _, target := range res.targets {
			graph.Edges = append(graph.Edges, Edge{Source: res.file.Path, Target: target})
		}

		stdlib = append(stdlib, res.stdlib...)
		thirdParty = append(thirdParty, res.thirdParty...)

		graph.Stats.Files++
		graph.Stats.References.add(res.refs)

		switch {
		case res.err != nil:
			graph.Errors = append(graph.Errors, *res.err)
			graph.Stats.Errors++
		case res.skipped:
			graph.Stats.Skipped++
		default:
			graph.Stats.Scanned++
		}
	}

	slices.SortFunc(graph.Edges, func(a, b Edge) int {
		if c := cmp.Compare(a.Source, b.Source); c != 0 {
			return c
		}

		return cmp.Compare(a.Target, b.Target)
	})
	graph.Edges = slices.Compact(graph.Edges)

	graph.Summary = Summary{
		Stdlib:     nonNil(sortedUnique(stdlib)),
		ThirdParty: nonNil(sortedUnique(thirdParty)),
	}

	return graph
}

func sortedUnique(items []string) []string {
	slices.Sort(items)

	return slices.Compact(items)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}

	return items
}
