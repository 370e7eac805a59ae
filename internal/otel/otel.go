// Package otel wires OpenTelemetry tracing for pools lookups.
package otel

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourorg/pools-config/internal/config"
	"github.com/yourorg/pools-config/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "pools-config"

// tracesPath is appended to a base collector URL, as OTEL_EXPORTER_OTLP_ENDPOINT defines it
const tracesPath = "/v1/traces"

// GenericRecord is the resolved network attribute of a fallback lookup
const GenericRecord = "generic"

// Span attribute keys for lookups
const (
	AttrRoute            = attribute.Key("pools.route")
	AttrRequestedNetwork = attribute.Key("pools.network.requested")
	AttrResolvedNetwork  = attribute.Key("pools.network.resolved")
	AttrFallback         = attribute.Key("pools.fallback")
)

// InitTracer installs an OTLP/HTTP tracer provider when an endpoint is
// configured. The returned func flushes and shuts it down.
func InitTracer(cfg config.Config) func() {
	if cfg.OtelEndpoint == "" {
		return func() {}
	}

	opts, err := exporterOptions(cfg.OtelEndpoint)
	if err != nil {
		logrus.Warnf("Invalid OTLP endpoint, tracing disabled: %v", err)
		return func() {}
	}

	ctx := context.Background()
	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
	if err != nil {
		logrus.Warnf("Failed to create OTLP exporter, tracing disabled: %v", err)
		return func() {}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)
	logrus.WithField("endpoint", cfg.OtelEndpoint).Info("Tracing enabled")

	return func() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logrus.Warnf("Failed to flush traces: %v", err)
		}
	}
}

// exporterOptions accepts a base collector URL ("http://collector:4318") or a
// bare "host:port", which is sent over plain HTTP.
func exporterOptions(endpoint string) ([]otlptracehttp.Option, error) {
	if !strings.Contains(endpoint, "://") {
		return []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		}, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("unsupported endpoint %q", endpoint)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + tracesPath

	return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(u.String())}, nil
}

// Tracer returns the service tracer. It is a no-op until InitTracer installs a provider.
func Tracer() trace.Tracer {
	return otel.Tracer(serviceName)
}

// StartLookup opens a span for resolving the pools record of requested
func StartLookup(ctx context.Context, route string, requested types.Network) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "pools.lookup", trace.WithAttributes(
		AttrRoute.String(route),
		AttrRequestedNetwork.String(requested.String()),
	))
}

// EndLookup records which record answered the lookup and ends the span.
// A fallback lookup resolves to the generic record.
func EndLookup(span trace.Span, requested types.Network, fallback bool) {
	resolved := requested.String()
	if fallback {
		resolved = GenericRecord
	}
	span.SetAttributes(
		AttrResolvedNetwork.String(resolved),
		AttrFallback.Bool(fallback),
	)
	span.End()
}

// RecordError attaches err to the span in ctx
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
