package tracing

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"

	"github.com/Notifuse/newsletter/config"
	"github.com/Notifuse/newsletter/pkg/logger"
)

func TestInitTracing_Disabled(t *testing.T) {
	err := InitTracing(&config.TracingConfig{Enabled: false}, logger.NewTestLogger(t))
	assert.NoError(t, err)
}

func TestInitTracing_WithInvalidExporter(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:       true,
		TraceExporter: "invalid",
	}

	err := InitTracing(cfg, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter: invalid")
	assert.Contains(t, err.Error(), "datadog, jaeger, stackdriver, xray, zipkin")
}

func TestInitTracing_WithNoneExporters(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:             true,
		SamplingProbability: 0.5,
		TraceExporter:       "none",
		MetricsExporter:     "none",
	}

	assert.NoError(t, InitTracing(cfg, logger.NewTestLogger(t)))
}

func TestInitMetricsExporters_WithInvalidExporter(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:         true,
		MetricsExporter: "prometheus,statsd",
	}

	err := initMetricsExporters(cfg, logger.NewTestLogger(t))
	require.Error(t, err)
}

func TestParseExporterList(t *testing.T) {
	assert.Equal(t, []string{"prometheus", "stackdriver", "datadog"}, parseExporterList("prometheus, stackdriver,  datadog,, "))
	assert.Empty(t, parseExporterList("none"))
	assert.Empty(t, parseExporterList(""))
}

func TestExporterMissingSettings(t *testing.T) {
	log := logger.NewTestLogger(t)

	tests := []struct {
		name string
		init exporterFunc
	}{
		{"jaeger", initJaegerExporter},
		{"zipkin", initZipkinExporter},
		{"stackdriver trace", initStackdriverTraceExporter},
		{"datadog trace", initDatadogTraceExporter},
		{"xray", initXRayExporter},
		{"stackdriver metrics", initStackdriverMetricsExporter},
		{"datadog metrics", initDatadogMetricsExporter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.init(&config.TracingConfig{ServiceName: "newsletter-api"}, log)
			assert.Error(t, err)
		})
	}
}

func TestInitPrometheusExporter_WithoutPort(t *testing.T) {
	cfg := &config.TracingConfig{ServiceName: "newsletter-api"}
	assert.NoError(t, initPrometheusExporter(cfg, logger.NewTestLogger(t)))
}

func TestGetHTTPOptions(t *testing.T) {
	transport := GetHTTPOptions()

	req := httptest.NewRequest("POST", "https://api.openai.com/v1/chat/completions", nil)
	assert.Equal(t, "POST api.openai.com/v1/chat/completions", transport.FormatSpanName(req))
	assert.NotNil(t, transport.StartOptions.Sampler)
}

func TestRegisterViews(t *testing.T) {
	assert.NoError(t, RegisterHTTPServerViews())
	assert.NoError(t, registerCustomViews())
}

func TestRecordDelivery(t *testing.T) {
	require.NoError(t, view.Register(NewsletterViews...))
	defer view.Unregister(NewsletterViews...)

	ctx := context.Background()
	RecordDelivery(ctx, "brevo", 3, 1)
	RecordContactsImported(ctx, 7)
	RecordGenerationLatency(ctx, "openai", "section", 1200*time.Millisecond)

	rows, err := view.RetrieveData("newsletter/emails_sent_total")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3.0, rows[0].Data.(*view.SumData).Value)

	rows, err = view.RetrieveData("newsletter/contacts_imported_total")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7.0, rows[0].Data.(*view.SumData).Value)
}
