package main

import (
	"context"

	// Packages
	version "github.com/mutablelogic/proxycheck/pkg/version"
	attribute "go.opentelemetry.io/otel/attribute"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// newTracerProvider exports spans over OTLP/HTTP to the collector at endpoint,
// e.g. "http://localhost:4318"
func newTracerProvider(ctx context.Context, endpoint, name string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", name),
			attribute.String("service.version", version.Version()),
		)),
	), nil
}
