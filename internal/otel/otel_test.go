package otel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/pools-config/internal/config"
	"github.com/yourorg/pools-config/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.Method+" "+r.URL.Path)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestInitTracer_ExportsToCollector(t *testing.T) {
	tests := []struct {
		name     string
		endpoint func(url string) string
	}{
		{name: "base url", endpoint: func(u string) string { return u }},
		{name: "base url with trailing slash", endpoint: func(u string) string { return u + "/" }},
		{name: "host and port", endpoint: func(u string) string { return strings.TrimPrefix(u, "http://") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &collector{}
			srv := httptest.NewServer(c)
			defer srv.Close()

			prev := otel.GetTracerProvider()
			defer otel.SetTracerProvider(prev)

			shutdown := InitTracer(config.Config{OtelEndpoint: tt.endpoint(srv.URL)})
			_, span := StartLookup(context.Background(), "pools_network", types.NetworkPolygon)
			EndLookup(span, types.NetworkPolygon, false)
			shutdown()

			assert.Equal(t, []string{"POST /v1/traces"}, c.received())
		})
	}
}

func TestInitTracer_Disabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	shutdown := InitTracer(config.Config{})
	shutdown()
	assert.Equal(t, prev, otel.GetTracerProvider())
}

func TestExporterOptions(t *testing.T) {
	_, err := exporterOptions("ftp://collector:4318")
	assert.Error(t, err)

	_, err = exporterOptions("http://")
	assert.Error(t, err)

	opts, err := exporterOptions("https://collector.example.com/otlp")
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestLookupSpan(t *testing.T) {
	tests := []struct {
		name         string
		requested    types.Network
		fallback     bool
		wantResolved string
	}{
		{name: "known network", requested: types.NetworkMainnet, fallback: false, wantResolved: "mainnet"},
		{name: "fallback", requested: types.NetworkOptimism, fallback: true, wantResolved: GenericRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := withRecorder(t)

			_, span := StartLookup(context.Background(), "pools", tt.requested)
			EndLookup(span, tt.requested, tt.fallback)

			ended := rec.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, "pools.lookup", ended[0].Name())

			attrs := map[attribute.Key]attribute.Value{}
			for _, kv := range ended[0].Attributes() {
				attrs[kv.Key] = kv.Value
			}
			assert.Equal(t, "pools", attrs[AttrRoute].AsString())
			assert.Equal(t, tt.requested.String(), attrs[AttrRequestedNetwork].AsString())
			assert.Equal(t, tt.wantResolved, attrs[AttrResolvedNetwork].AsString())
			assert.Equal(t, tt.fallback, attrs[AttrFallback].AsBool())
		})
	}
}

func TestRecordError(t *testing.T) {
	rec := withRecorder(t)

	ctx, span := Tracer().Start(context.Background(), "encode")
	RecordError(ctx, errors.New("broken pipe"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}
