package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricScanFiles      = "depmap.scan.files"
	metricScanReferences = "depmap.scan.references"
	metricScanErrors     = "depmap.scan.errors"
	metricGraphEdges     = "depmap.graph.edges"
	metricScanDuration   = "depmap.scan.duration.seconds"

	attrOutcome = "outcome"
	attrStatus  = "status"
)

// durationBucketBoundaries spans sub-second toy repos to multi-minute monorepos.
var durationBucketBoundaries = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}

// ScanMetrics holds OTel instruments for scan runs.
type ScanMetrics struct {
	files      metric.Int64Counter
	references metric.Int64Counter
	errors     metric.Int64Counter
	edges      metric.Int64Counter
	duration   metric.Float64Histogram
}

// ScanStats holds the statistics for a single scan, decoupled from graph types.
type ScanStats struct {
	Scanned    int
	Skipped    int
	Errors     int
	Edges      int
	RefEdges   int
	Stdlib     int
	ThirdParty int
	Discarded  int
	Duration   time.Duration
}

// NewScanMetrics creates scan metric instruments from the given meter.
func NewScanMetrics(mt metric.Meter) (*ScanMetrics, error) {
	b := newMetricBuilder(mt)

	sm := &ScanMetrics{
		files:      b.counter(metricScanFiles, "Files enumerated by status", "{file}"),
		references: b.counter(metricScanReferences, "Extracted references by outcome", "{reference}"),
		errors:     b.counter(metricScanErrors, "Files that could not be read", "{error}"),
		edges:      b.counter(metricGraphEdges, "Intra-repository edges after deduplication", "{edge}"),
		duration:   b.histogram(metricScanDuration, "Graph assembly duration in seconds", "s", durationBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return sm, nil
}

// RecordRun records statistics for a completed scan.
// Safe to call on a nil receiver (no-op).
func (sm *ScanMetrics) RecordRun(ctx context.Context, stats ScanStats) {
	if sm == nil {
		return
	}

	sm.files.Add(ctx, int64(stats.Scanned), metric.WithAttributes(attribute.String(attrStatus, "scanned")))
	sm.files.Add(ctx, int64(stats.Skipped), metric.WithAttributes(attribute.String(attrStatus, "skipped")))
	sm.files.Add(ctx, int64(stats.Errors), metric.WithAttributes(attribute.String(attrStatus, "error")))

	outcomes := []struct {
		name  string
		count int
	}{
		{"edge", stats.RefEdges},
		{"stdlib", stats.Stdlib},
		{"third_party", stats.ThirdParty},
		{"discarded", stats.Discarded},
	}

	for _, o := range outcomes {
		sm.references.Add(ctx, int64(o.count), metric.WithAttributes(attribute.String(attrOutcome, o.name)))
	}

	sm.errors.Add(ctx, int64(stats.Errors))
	sm.edges.Add(ctx, int64(stats.Edges))
	sm.duration.Record(ctx, stats.Duration.Seconds())
}
