// Package telemetry wires OpenTelemetry tracing, metrics and logs plus
// Pyroscope profiling for the sales portal.
package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// DefaultServiceName is reported when the configuration leaves it empty
const DefaultServiceName = "sales-portal"

// Exporter is the OTLP gRPC collector target shared by every signal.
type Exporter struct {
	CollectorEndpoint string
	Insecure          bool
	ServiceName       string
	ServiceVersion    string
}

func (e Exporter) serviceName() string {
	if e.ServiceName == "" {
		return DefaultServiceName
	}
	return e.ServiceName
}

func newResource(e Exporter) (*resource.Resource, error) {
	version := e.ServiceVersion
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(e.serviceName()),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
