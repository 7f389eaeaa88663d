package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type noteRow struct {
	ID   uint
	Name string
}

func newDBMetricsFixture(t *testing.T) (*DBMetrics, *sdkmetric.ManualReader, *gorm.DB) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("db.client")

	metrics, err := NewDBMetrics(meter, DefaultDBMetricsConfig(), zap.NewNop())
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&noteRow{}))
	require.NoError(t, db.Use(&dbMetricsPlugin{metrics: metrics}))

	return metrics, reader, db
}

func TestDBMetricsPlugin_RecordsQueries(t *testing.T) {
	ctx := context.Background()
	_, reader, db := newDBMetricsFixture(t)

	require.NoError(t, db.WithContext(ctx).Create(&noteRow{Name: "first"}).Error)
	var rows []noteRow
	require.NoError(t, db.WithContext(ctx).Find(&rows).Error)

	metrics := collect(t, reader)

	total, ok := metrics["db_query_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range total.DataPoints {
		if op, found := dp.Attributes.Value(attribute.Key("db.operation")); found {
			counts[op.AsString()] += dp.Value
		}
	}
	assert.Equal(t, int64(1), counts["INSERT"])
	assert.Equal(t, int64(1), counts["SELECT"])

	duration, ok := metrics["db_query_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.NotEmpty(t, duration.DataPoints)
}

func TestDBMetrics_SlowQueryCounter(t *testing.T) {
	ctx := context.Background()
	metrics, reader, _ := newDBMetricsFixture(t)

	metrics.RecordQuery(ctx, "select", "notes", 300*time.Millisecond)
	metrics.RecordQuery(ctx, "select", "notes", time.Millisecond)

	byName := collect(t, reader)
	slow, ok := byName["db_slow_query_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, slow.DataPoints, 1)
	assert.Equal(t, int64(1), slow.DataPoints[0].Value)
}

func TestDBMetrics_PoolStatsLifecycle(t *testing.T) {
	metrics, reader, db := newDBMetricsFixture(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	metrics.StartPoolStats(context.Background(), sqlDB)
	metrics.Stop()
	// A second Stop must not panic or block.
	metrics.Stop()

	byName := collect(t, reader)
	_, ok := byName["db_pool_connections_max"].Data.(metricdata.Gauge[int64])
	assert.True(t, ok)
}

func TestOperationFromSQL(t *testing.T) {
	cases := map[string]string{
		"select * from notes":      "SELECT",
		"  INSERT INTO notes ...":  "INSERT",
		"update notes set name=?":  "UPDATE",
		"DELETE FROM notes":        "DELETE",
		"PRAGMA foreign_keys = ON": "OTHER",
	}
	for sql, want := range cases {
		assert.Equal(t, want, operationFromSQL(sql), "sql %q", sql)
	}
}

func TestRegisterDBMetrics_DisabledPaths(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	t.Run("config off", func(t *testing.T) {
		mp := &MeterProvider{log: zap.NewNop()}
		got, err := RegisterDBMetrics(db, mp, DBMetricsConfig{Enabled: false}, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("no-op meter provider", func(t *testing.T) {
		mp := &MeterProvider{log: zap.NewNop()}
		got, err := RegisterDBMetrics(db, mp, DefaultDBMetricsConfig(), zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
