package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// textfileExporter collects OTel instruments into a private Prometheus
// registry and dumps it in the node_exporter textfile format.
type textfileExporter struct {
	registry *prometheus.Registry
	reader   sdkmetric.Reader
	path     string
}

// newTextfileExporter creates an independent registry so repeated calls never
// collide on collector registration.
func newTextfileExporter(path string) (*textfileExporter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &textfileExporter{registry: registry, reader: exporter, path: path}, nil
}

// write gathers current values and replaces the file atomically.
func (e *textfileExporter) write() error {
	err := prometheus.WriteToTextfile(e.path, e.registry)
	if err != nil {
		return fmt.Errorf("write metrics file %s: %w", e.path, err)
	}

	return nil
}
