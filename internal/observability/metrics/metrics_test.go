package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("dependency", "tax"),
		attribute.String("listing_id", "456"),
		attribute.String("outcome", "degraded"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "dependency" && attrs[1].Key != "dependency" {
		t.Fatalf("expected dependency to be retained")
	}
	if attrs[0].Key != "outcome" && attrs[1].Key != "outcome" {
		t.Fatalf("expected outcome to be retained")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordInvoice(ctx, "success")
	m.RecordTaxLookup(ctx, "api", "success")
	m.RecordUpstreamCall(ctx, "listing", "error")
	m.RecordRateLimitAllowed(ctx, "/create_pdf")
	m.RecordRateLimitDenied(ctx, "/create_pdf", "limit")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	m.RecordInvoice(context.Background(), "success")
}

func TestUpstreamCallsAreExported(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(Config{ServiceName: "invoicefill"}, provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordUpstreamCall(ctx, "tax", "degraded")
	m.RecordUpstreamCall(ctx, "tax", "degraded")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "invoicefill_upstream_calls_total" {
				continue
			}
			sum, ok := md.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), total)
}
