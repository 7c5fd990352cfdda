package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

func TestTracingMiddleware(t *testing.T) {
	t.Run("request runs inside a span", func(t *testing.T) {
		var sawSpan bool
		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawSpan = trace.FromContext(r.Context()) != nil
			w.WriteHeader(http.StatusCreated)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/newsletters.generate", nil)
		req.Header.Set("X-Request-ID", "req-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.True(t, sawSpan)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("error status passes through", func(t *testing.T) {
		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/newsletters.latest", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("health checks are not sampled", func(t *testing.T) {
		var sampled bool
		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if span := trace.FromContext(r.Context()); span != nil {
				sampled = span.SpanContext().IsSampled()
			}
		}))

		trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
		defer trace.ApplyConfig(trace.Config{DefaultSampler: trace.ProbabilitySampler(1e-4)})

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
		assert.False(t, sampled)

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/echo", nil))
		assert.True(t, sampled)
	})
}
