// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trace builds the tracer the engine reports spans to.
package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	exportTimeout = 10 * time.Second
	// Must exceed [exportTimeout] so in-flight exports complete.
	shutdownTimeout = 15 * time.Second

	DefaultZipkinEndpoint = "http://localhost:9411/api/v2/spans"
)

var (
	_ trace.Tracer = (*exportingTracer)(nil)

	ErrInvalidSampleRate = errors.New("sample rate must be within [0, 1]")
)

type Config struct {
	Enabled bool `json:"enabled"`
	// Fraction of root spans that are sampled
	SampleRate float64 `json:"sampleRate"`
	// Zipkin collector spans are exported to
	Endpoint string `json:"endpoint"`
	Service  string `json:"service"`
	Version  string `json:"version"`
}

func (c *Config) Verify() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.SampleRate)
	}
	return nil
}

// exportingTracer flushes its provider on Close.
type exportingTracer struct {
	oteltrace.Tracer

	provider *sdktrace.TracerProvider
}

func (t *exportingTracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.provider.Shutdown(ctx)
}

// New returns a tracer exporting to zipkin. When tracing is disabled every
// span is a no-op.
func New(config *Config) (trace.Tracer, error) {
	if !config.Enabled {
		return trace.Noop, nil
	}
	if err := config.Verify(); err != nil {
		return nil, err
	}

	endpoint := config.Endpoint
	if len(endpoint) == 0 {
		endpoint = DefaultZipkinEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.Service),
			attribute.String("version", config.Version),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.SampleRate))),
	)
	return &exportingTracer{
		Tracer:   provider.Tracer(config.Service),
		provider: provider,
	}, nil
}
