package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu    sync.Mutex
	tags  []string
	posts []map[string]interface{}
	err   error
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, message.(map[string]interface{}))
	return f.err
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := New(Config{Level: "warn", Format: "json", Writer: &buf})
	require.NoError(t, err)
	require.NoError(t, closer())

	log.Info("hidden")
	log.Warn("rate fetch failed", "base", "EUR")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"rate fetch failed"`)
	assert.Contains(t, out, `"base":"EUR"`)
}

func TestNew_FluentRequiresTag(t *testing.T) {
	_, _, err := New(Config{FluentEnabled: true, FluentHost: "localhost", FluentPort: 24224})
	assert.Error(t, err)
}

func TestFluentHandler(t *testing.T) {
	fp := &fakePoster{}
	log := slog.New(NewFluentHandler(fp, slog.LevelInfo)).With("component", "exchange")

	log.Debug("dropped")
	log.WithGroup("req").Warn("fallback rates used",
		"currency", "USD",
		"error", errors.New("timeout"),
		"took", 1500*time.Millisecond,
	)

	require.Len(t, fp.posts, 1)
	assert.Equal(t, "warn", fp.tags[0])

	post := fp.posts[0]
	assert.Equal(t, "fallback rates used", post["message"])
	assert.Equal(t, "warn", post["level"])
	assert.Equal(t, "exchange", post["component"])
	assert.Equal(t, "USD", post["req.currency"])
	assert.Equal(t, "timeout", post["req.error"])
	assert.Equal(t, "1.5s", post["req.took"])
	assert.NotEmpty(t, post["timestamp"])
}

func TestMultiHandler(t *testing.T) {
	var buf bytes.Buffer
	fp := &fakePoster{err: errors.New("unreachable")}

	h := NewMultiHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		NewFluentHandler(fp, slog.LevelError),
	)
	log := slog.New(h).With("service", "casacalc")

	log.Debug("console only")
	log.Error("both")

	assert.Contains(t, buf.String(), "console only")
	assert.Contains(t, buf.String(), "both")
	require.Len(t, fp.posts, 1)
	assert.Equal(t, "both", fp.posts[0]["message"])
	assert.Equal(t, "casacalc", fp.posts[0]["service"])
}
