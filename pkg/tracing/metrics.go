package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// KeyProvider tags measures with the email or LLM provider name
	KeyProvider = tag.MustNewKey("provider")
	// KeyStep tags generation latency with the prompt kind
	KeyStep = tag.MustNewKey("step")

	EmailsSent        = stats.Int64("newsletter/emails_sent", "Emails accepted by the provider", stats.UnitDimensionless)
	EmailsFailed      = stats.Int64("newsletter/emails_failed", "Emails rejected by the provider", stats.UnitDimensionless)
	ContactsImported  = stats.Int64("newsletter/contacts_imported", "Contacts stored from CSV uploads", stats.UnitDimensionless)
	GenerationLatency = stats.Float64("newsletter/generation_latency", "LLM request latency", stats.UnitMilliseconds)
)

// NewsletterViews aggregate the newsletter measures
var NewsletterViews = []*view.View{
	{
		Name:        "newsletter/emails_sent_total",
		Measure:     EmailsSent,
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{KeyProvider},
	},
	{
		Name:        "newsletter/emails_failed_total",
		Measure:     EmailsFailed,
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{KeyProvider},
	},
	{
		Name:        "newsletter/contacts_imported_total",
		Measure:     ContactsImported,
		Aggregation: view.Sum(),
	},
	{
		Name:        "newsletter/generation_latency",
		Measure:     GenerationLatency,
		Aggregation: view.Distribution(100, 500, 1000, 2500, 5000, 10000, 20000, 40000, 60000),
		TagKeys:     []tag.Key{KeyProvider, KeyStep},
	},
}

// RecordDelivery records the counters of one newsletter send
func RecordDelivery(ctx context.Context, provider string, sent, failed int) {
	ctx, err := tag.New(ctx, tag.Upsert(KeyProvider, provider))
	if err != nil {
		return
	}
	stats.Record(ctx, EmailsSent.M(int64(sent)), EmailsFailed.M(int64(failed)))
}

// RecordContactsImported records the number of contacts stored by an upload
func RecordContactsImported(ctx context.Context, count int) {
	stats.Record(ctx, ContactsImported.M(int64(count)))
}

// RecordGenerationLatency records how long one LLM call took
func RecordGenerationLatency(ctx context.Context, provider, step string, d time.Duration) {
	ctx, err := tag.New(ctx, tag.Upsert(KeyProvider, provider), tag.Upsert(KeyStep, step))
	if err != nil {
		return
	}
	stats.Record(ctx, GenerationLatency.M(float64(d)/float64(time.Millisecond)))
}
