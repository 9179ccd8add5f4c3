// Package observability provides request logging and tracing helpers for the web service.
package observability

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rpominov/reason-next/internal/services/web/platform/httpx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans emitted by the web service.
const TracerName = "github.com/rpominov/reason-next/web"

// RenderSpanName is the span wrapping a single page render.
const RenderSpanName = "shell.render"

// RequestLogger logs one line per request with status, size, and latency.
func RequestLogger(logger *log.Logger) httpx.Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			path := "-"
			if r.URL != nil {
				path = strings.TrimSpace(r.URL.Path)
			}
			logger.Printf(
				"http request method=%s path=%s status=%d bytes=%d latency=%s request_id=%s",
				r.Method,
				path,
				recorder.Status(),
				recorder.bytes,
				time.Since(start).Round(time.Microsecond),
				httpx.RequestIDFromRequest(r),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Tracer returns tracer, or the global tracer for the web service when nil.
func Tracer(tracer trace.Tracer) trace.Tracer {
	if tracer != nil {
		return tracer
	}
	return otel.Tracer(TracerName)
}

// StartRender opens the render span for one route and page.
func StartRender(ctx context.Context, tracer trace.Tracer, route, page string) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return Tracer(tracer).Start(ctx, RenderSpanName, trace.WithAttributes(
		attribute.String("route", route),
		attribute.String("page", page),
	))
}

// RecordError marks span as failed with err. Nil errors are ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
