// Package server exposes the pools configuration over a read-only HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourorg/pools-config/internal/network"
	"github.com/yourorg/pools-config/internal/otel"
	"github.com/yourorg/pools-config/internal/pools"
	"github.com/yourorg/pools-config/internal/security"
	"github.com/yourorg/pools-config/internal/types"
	"github.com/yourorg/pools-config/internal/validation"
)

// FallbackHeader is set to "true" when a response carries the generic record
const FallbackHeader = "X-Pools-Fallback"

// Options holds the configuration for the server
type Options struct {
	// HTTP port to listen on
	Port string

	// Requests per second and burst; a non-positive rate disables limiting
	RateLimitRPS   float64
	RateLimitBurst int

	EnableMetrics bool
}

// Server serves the pools table resolved against one network identity
type Server struct {
	opts     Options
	table    *pools.Table
	identity network.Identity
	active   pools.Active
	findings []validation.Finding

	limiter  *rate.Limiter
	registry *prometheus.Registry
	metrics  *serverMetrics
	started  time.Time
}

// serverMetrics holds Prometheus metrics for the server
type serverMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	lookupCounter   *prometheus.CounterVec
	auditFindings   *prometheus.GaugeVec
}

// registerMetrics sets up Prometheus metrics collection on reg
func registerMetrics(reg prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pools_requests_total",
				Help: "Total number of requests processed",
			},
			[]string{"route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pools_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		lookupCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pools_lookups_total",
				Help: "Pools lookups by requested network and whether the generic record was used",
			},
			[]string{"network", "fallback"},
		),
		auditFindings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pools_audit_findings",
				Help: "Audit findings in the loaded pools table",
			},
			[]string{"severity"},
		),
	}

	reg.MustRegister(
		m.requestCounter,
		m.requestDuration,
		m.lookupCounter,
		m.auditFindings,
	)

	return m
}

// New resolves the active configuration once and prepares the handlers
func New(opts Options, table *pools.Table, identity network.Identity) *Server {
	s := &Server{
		opts:     opts,
		table:    table,
		identity: identity,
		active:   pools.Resolve(table, identity),
		findings: validation.Audit(table),
		started:  time.Now(),
	}

	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	if opts.EnableMetrics {
		s.registry = prometheus.NewRegistry()
		s.metrics = registerMetrics(s.registry)
		for _, f := range s.findings {
			s.metrics.auditFindings.WithLabelValues(string(f.Severity)).Inc()
		}
	}

	for _, f := range s.findings {
		logrus.WithFields(logrus.Fields{
			"record":   f.Record,
			"field":    f.Field,
			"value":    f.Value,
			"severity": f.Severity,
		}).Warn(f.Message)
	}

	logrus.WithFields(logrus.Fields{
		"network":         s.active.Network,
		"fallback":        s.active.Fallback,
		"min_fiat_value":  s.active.MinFiatValuePoolMigration,
		"networks":        len(table.Networks()),
		"audit_findings":  len(s.findings),
		"rate_limit_rps":  opts.RateLimitRPS,
		"metrics_enabled": opts.EnableMetrics,
	}).Info("Server initialized")

	return s
}

// Active returns the configuration resolved at construction
func (s *Server) Active() pools.Active {
	return s.active
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /pools", s.instrument("pools", s.handleActive))
	mux.Handle("GET /pools/{network}", s.instrument("pools_network", s.handleNetwork))
	mux.Handle("GET /constants", s.instrument("constants", s.handleConstants))
	mux.Handle("GET /audit", s.instrument("audit", s.handleAudit))
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.opts.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.opts.Port,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Server starting on port %s", s.opts.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logrus.Info("Server stopped")
	return nil
}

type constantsResponse struct {
	APRThreshold                  int                 `json:"aprThreshold"`
	ShallowComposableStableBuffer string              `json:"shallowComposableStableBuffer"`
	MinFiatValuePoolMigration     float64             `json:"minFiatValuePoolMigration"`
	FactoryTypes                  []pools.FactoryType `json:"factoryTypes"`
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.StartLookup(r.Context(), "pools", s.active.Network)
	r = r.WithContext(ctx)
	defer otel.EndLookup(span, s.active.Network, s.active.Fallback)

	s.recordLookup(s.active.Network, s.active.Fallback)
	w.Header().Set(FallbackHeader, strconv.FormatBool(s.active.Fallback))
	s.writeRecord(w, r, s.active)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	requested := types.Network(strings.ToLower(r.PathValue("network")))

	ctx, span := otel.StartLookup(r.Context(), "pools_network", requested)
	r = r.WithContext(ctx)
	p, ok := s.table.Lookup(requested)
	defer otel.EndLookup(span, requested, !ok)

	label := requested
	if _, err := types.ParseNetwork(requested.String()); err != nil {
		label = "unknown"
	}
	s.recordLookup(label, !ok)
	if !ok {
		logrus.WithField("network", requested).Debug("No pools record for network, using generic")
	}

	w.Header().Set(FallbackHeader, strconv.FormatBool(!ok))
	s.writeRecord(w, r, p)
}

func (s *Server) handleConstants(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, constantsResponse{
		APRThreshold:                  pools.APRThreshold,
		ShallowComposableStableBuffer: pools.ShallowComposableStableBufferWei().String(),
		MinFiatValuePoolMigration:     s.active.MinFiatValuePoolMigration,
		FactoryTypes:                  pools.FactoryTypes(),
	})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	findings := s.findings
	if findings == nil {
		findings = []validation.Finding{}
	}
	s.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"findings": findings,
	})
}

// handleHealth is a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":    "OK",
		"network":   s.active.Network.String(),
		"mainnet":   strconv.FormatBool(s.identity.IsMainnet()),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) recordLookup(n types.Network, fallback bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.lookupCounter.WithLabelValues(n.String(), strconv.FormatBool(fallback)).Inc()
}

// instrument applies rate limiting and records request metrics for a route
func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		if s.limiter != nil && !s.limiter.Allow() {
			s.errorResponse(rec, r, http.StatusTooManyRequests, "Rate limit exceeded")
		} else {
			next(rec, r)
		}

		if s.metrics != nil {
			s.metrics.requestCounter.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			s.metrics.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}

// errorResponse writes a JSON error body
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errorMsg string) {
	logrus.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"status": statusCode,
	}).Warn(errorMsg)

	s.writeJSON(w, r, statusCode, map[string]string{"error": errorMsg})
}

// writeRecord serves v with a content ETag and answers conditional requests.
// The ETag is the fingerprint of the exact body bytes.
func (s *Server) writeRecord(w http.ResponseWriter, r *http.Request, v interface{}) {
	body, fingerprint, err := security.MarshalRecord(v)
	if err != nil {
		otel.RecordError(r.Context(), err)
		s.errorResponse(w, r, http.StatusInternalServerError, "Failed to encode pools record")
		return
	}

	etag := security.ETag(fingerprint)
	w.Header().Set("ETag", etag)
	if security.Matches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		otel.RecordError(r.Context(), err)
		logrus.Warnf("Failed to write response for %s: %v", r.URL.Path, err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		otel.RecordError(r.Context(), err)
		logrus.Warnf("Failed to encode response for %s: %v", r.URL.Path, err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
