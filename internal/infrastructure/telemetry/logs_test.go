package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adminhub/backend/internal/infrastructure/config"
)

func TestNewLoggerProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled export returns a no-op provider", func(t *testing.T) {
		lp, err := NewLoggerProvider(ctx, config.TelemetryConfig{Enabled: false}, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, lp.IsEnabled())
	})

	t.Run("logs stay off when only the master switch is on", func(t *testing.T) {
		cfg := config.TelemetryConfig{Enabled: true, LogsEnabled: false}
		lp, err := NewLoggerProvider(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, lp.IsEnabled())
	})

	t.Run("bridge hands back the base logger when disabled", func(t *testing.T) {
		lp, err := NewLoggerProvider(ctx, config.TelemetryConfig{}, zap.NewNop())
		require.NoError(t, err)

		base := zap.NewNop()
		assert.Same(t, base, lp.BridgeZap(base, "adminhub", "info"))
	})

	t.Run("shutdown on a no-op provider is safe", func(t *testing.T) {
		lp, err := NewLoggerProvider(ctx, config.TelemetryConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.NoError(t, lp.Shutdown(ctx))
		assert.NoError(t, lp.ForceFlush(ctx))
	})
}

func TestMinLevelCore(t *testing.T) {
	observed, entries := observer.New(zapcore.DebugLevel)
	log := zap.New(&minLevelCore{Core: observed, minLevel: zapcore.WarnLevel})

	log.Debug("dropped")
	log.Info("dropped too")
	log.Warn("kept")
	log.Error("kept as well")

	require.Equal(t, 2, entries.Len())
	assert.Equal(t, "kept", entries.All()[0].Message)
	assert.Equal(t, "kept as well", entries.All()[1].Message)
}

func TestMinLevelCore_WithKeepsFilter(t *testing.T) {
	observed, entries := observer.New(zapcore.DebugLevel)
	log := zap.New(&minLevelCore{Core: observed, minLevel: zapcore.WarnLevel}).
		With(zap.String("component", "persistence"))

	log.Info("dropped")
	log.Warn("kept")

	require.Equal(t, 1, entries.Len())
	assert.Equal(t, "persistence", entries.All()[0].ContextMap()["component"])
}

func TestParseBridgeLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for input, want := range cases {
		assert.Equal(t, want, parseBridgeLevel(input), "level %q", input)
	}
}
