package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"

	"github.com/adminhub/backend/internal/infrastructure/config"
)

func TestNewMeterProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled metrics return a no-op provider", func(t *testing.T) {
		mp, err := NewMeterProvider(ctx, config.TelemetryConfig{Enabled: false}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, mp.IsEnabled())
		assert.NotNil(t, mp.Meter("test"))
	})

	t.Run("metrics stay off when only the master switch is on", func(t *testing.T) {
		cfg := config.TelemetryConfig{Enabled: true, MetricsEnabled: false}
		mp, err := NewMeterProvider(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, mp.IsEnabled())
	})

	t.Run("shutdown on a no-op provider is safe", func(t *testing.T) {
		mp, err := NewMeterProvider(ctx, config.TelemetryConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.NoError(t, mp.Shutdown(ctx))
		assert.NoError(t, mp.ForceFlush(ctx))
	})
}

// collect drains the reader and returns all metrics by name.
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func TestInstrumentHelpers(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	counter, err := NewCounter(meter, "requests_total", "Requests served", "{request}")
	require.NoError(t, err)
	histogram, err := NewHistogram(meter, HistogramOpts{
		Name:        "request_duration_seconds",
		Description: "Request latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	require.NoError(t, err)
	gauge, err := NewGauge(meter, "active_sessions", "Active sessions", "{session}")
	require.NoError(t, err)

	counter.Inc(ctx)
	counter.Add(ctx, 2)
	histogram.RecordDuration(ctx, 30*time.Millisecond)
	gauge.Record(ctx, 7)

	metrics := collect(t, reader)

	sum, ok := metrics["requests_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)

	hist, ok := metrics["request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)

	g, ok := metrics["active_sessions"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, g.DataPoints, 1)
	assert.Equal(t, int64(7), g.DataPoints[0].Value)
}
