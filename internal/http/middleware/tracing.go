package middleware

import (
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// unsampledPaths are polled by load balancers and would flood the exporter
var unsampledPaths = map[string]bool{
	"/api/health": true,
}

// TracingMiddleware starts an OpenCensus span per request and annotates it
// with request details and the response status
func TracingMiddleware(next http.Handler) http.Handler {
	annotated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.host", r.Host),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
				trace.StringAttribute("http.client_ip", ClientIP(r)),
			)
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
			if contentType := r.Header.Get("Content-Type"); contentType != "" {
				span.AddAttributes(trace.StringAttribute("http.content_type", contentType))
			}
		}

		next.ServeHTTP(&traceResponseWriter{ResponseWriter: w, r: r}, r)
	})

	return &ochttp.Handler{
		Handler: annotated,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		GetStartOptions: func(r *http.Request) trace.StartOptions {
			if unsampledPaths[r.URL.Path] {
				return trace.StartOptions{Sampler: trace.NeverSample()}
			}
			return trace.StartOptions{}
		},
		IsPublicEndpoint: true,
	}
}

// traceResponseWriter marks the span as failed on 4xx and 5xx responses
type traceResponseWriter struct {
	http.ResponseWriter
	r          *http.Request
	statusCode int
}

func (trw *traceResponseWriter) WriteHeader(code int) {
	trw.statusCode = code

	if span := trace.FromContext(trw.r.Context()); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}

	trw.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*traceResponseWriter)(nil)
