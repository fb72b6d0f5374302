package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestManager_GetLogger_Cached(t *testing.T) {
	m := NewManager(ManagerConfig{EnableConsole: false})

	a := m.GetLogger("metadata")
	b := m.GetLogger("metadata")
	c := m.GetLogger("converter")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "metadata", a.Module())
}

func TestManager_GetLogger_Concurrent(t *testing.T) {
	m := NewManager(ManagerConfig{})

	const workers = 32
	got := make([]*CtxZapLogger, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = m.GetLogger("codec")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
}

func TestManager_FileOutput(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(ManagerConfig{
		EnableFile: true,
		BaseLogDir: dir,
		Level:      "debug",
	})

	m.GetLogger("enum").Info("registered", zap.String("type", "color.Color"))
	m.CloseAll()

	data, err := os.ReadFile(filepath.Join(dir, "enum", "enum.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"registered"`)
	assert.Contains(t, string(data), `"module":"enum"`)
	assert.Contains(t, string(data), `"type":"color.Color"`)
}

func TestManager_CloseAll_ResetsLoggers(t *testing.T) {
	m := NewManager(ManagerConfig{})
	before := m.GetLogger("codec")
	m.CloseAll()
	after := m.GetLogger("codec")

	assert.NotSame(t, before, after)
}

func TestGetLogger_Global(t *testing.T) {
	assert.Same(t, GetLogger("global-test"), GetLogger("global-test"))
}

func TestCtxZapLogger_EnrichFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := DefaultManagerConfig()
	cfg.AppName = "codec-test"
	l := &CtxZapLogger{base: zap.New(core), module: "test", config: &cfg}

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	l.InfoCtx(ctx, "with trace")
	l.Debug("without trace")

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "codec-test", first["app_name"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", first["trace_id"])

	second := entries[1].ContextMap()
	assert.NotContains(t, second, "trace_id")
}

func TestCtxZapLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewCtxZapLogger(zap.New(core), "converter").With(zap.String("type", "Color"))

	l.Warn("no converter")
	l.Debug("filtered out")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "converter", fields["module"])
	assert.Equal(t, "Color", fields["type"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		l := Nop()
		l.Info("x")
		l.ErrorCtx(context.Background(), "y")
	})
}
