package exchange

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogMetricsCollector(t *testing.T) {
	var buf bytes.Buffer
	c := NewLogMetricsCollector(debugLogger(&buf))

	c.RecordFetchDuration(250 * time.Millisecond)
	c.RecordQuote(SourceLive)
	c.RecordError("fetch")

	out := buf.String()
	assert.Contains(t, out, "component=exchange_metrics")
	assert.Contains(t, out, "duration_ms=250")
	assert.Contains(t, out, "source=live")
	assert.Contains(t, out, "operation=fetch")
}

func TestLogMetricsCollector_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewLogMetricsCollector(log).RecordQuote(SourceCache)
	assert.Empty(t, buf.String())
}

func TestProvider_ReportsFallbackToMetrics(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	src := new(MockSource)
	store := new(MockStore)
	store.On("Load", ctx, "EUR").Return(nil, ErrSnapshotNotFound)
	src.On("Latest", mock.Anything, "EUR").Return(nil, errors.New("timeout"))

	p := NewProvider(src, store, Config{}, quietLogger(), NewLogMetricsCollector(debugLogger(&buf)))
	p.now = func() time.Time { return now }

	q := p.Rates(ctx)
	require.Equal(t, SourceFallback, q.Source)

	out := buf.String()
	assert.Contains(t, out, "operation=fetch")
	assert.Contains(t, out, "source=fallback")
}
