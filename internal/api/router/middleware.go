package router

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/apiembed/apiembed/internal/telemetry"
)

const (
	requestIDHeader    = "X-Request-Id"
	maxRequestIDLength = 128
)

type middlewareConfig struct {
	skipPaths map[string]bool
}

// MiddlewareOption configures MetricTelemetryMiddleware
type MiddlewareOption func(*middlewareConfig)

// WithSkipPaths excludes operation paths from the request metrics
func WithSkipPaths(paths ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		for _, p := range paths {
			c.skipPaths[p] = true
		}
	}
}

// MetricTelemetryMiddleware records request count, duration and errors per
// operation path
func MetricTelemetryMiddleware(metrics *telemetry.Metrics, opts ...MiddlewareOption) func(huma.Context, func(huma.Context)) {
	cfg := &middlewareConfig{skipPaths: map[string]bool{}}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		path := ctx.URL().Path
		if op := ctx.Operation(); op != nil {
			path = op.Path
		}

		if cfg.skipPaths[path] {
			next(ctx)
			return
		}

		start := time.Now()
		next(ctx)
		duration := time.Since(start).Seconds()

		status := ctx.Status()
		if status == 0 {
			status = http.StatusOK
		}

		attrs := metric.WithAttributes(
			attribute.String("method", ctx.Method()),
			attribute.String("path", path),
			attribute.String("status_code", strconv.Itoa(status)),
		)

		metrics.Requests.Add(ctx.Context(), 1, attrs)
		metrics.RequestDuration.Record(ctx.Context(), duration, attrs)
		if status >= http.StatusBadRequest {
			metrics.ErrorCount.Add(ctx.Context(), 1, attrs)
		}
	}
}

// CORS allows every origin and the common request headers
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		next.ServeHTTP(w, r)
	})
}

// Compress gzips responses for clients that accept it
func Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// AccessLog assigns a request id and logs one line per request
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		log.Printf("%s %s %d %s %s", r.Method, r.URL.RequestURI(), status, time.Since(start).Round(time.Microsecond), id)
	})
}
