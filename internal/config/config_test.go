package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CASA_TEST_STR", "value")
	t.Setenv("CASA_TEST_EMPTY", "")

	assert.Equal(t, "value", GetEnv("CASA_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CASA_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CASA_TEST_MISSING", "fallback"))
}

func TestTypedEnv(t *testing.T) {
	tests := []struct {
		name string
		set  string
		run  func() any
		want any
	}{
		{"int", "42", func() any { return GetIntEnv("CASA_TEST_VAL", 7) }, 42},
		{"int invalid", "abc", func() any { return GetIntEnv("CASA_TEST_VAL", 7) }, 7},
		{"bool", "true", func() any { return GetBoolEnv("CASA_TEST_VAL", false) }, true},
		{"bool invalid", "maybe", func() any { return GetBoolEnv("CASA_TEST_VAL", false) }, false},
		{"duration", "2m", func() any { return GetDurationEnv("CASA_TEST_VAL", time.Second) }, 2 * time.Minute},
		{"duration negative", "-2m", func() any { return GetDurationEnv("CASA_TEST_VAL", time.Second) }, time.Second},
		{"list", " a, ,b ", func() any { return GetListEnv("CASA_TEST_VAL", nil) }, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CASA_TEST_VAL", tt.set)
			assert.Equal(t, tt.want, tt.run())
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RATES_REFRESH_INTERVAL", "")
	t.Setenv("RATE_CACHE_BACKEND", "")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.Rates.RefreshInterval)
	assert.Equal(t, 10*time.Second, cfg.Rates.FetchTimeout)
	assert.Equal(t, "memory", cfg.RateCacheBackend)
	assert.Equal(t, 15*time.Minute, cfg.AdminTokenTTL)
}
