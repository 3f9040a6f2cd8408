package exchange

import (
	"log/slog"
	"time"
)

// MetricsCollector receives rate provider events.
type MetricsCollector interface {
	RecordFetchDuration(time.Duration)
	RecordQuote(source string)
	RecordError(operation string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordFetchDuration(time.Duration) {}
func (n *NoopMetricsCollector) RecordQuote(string)                {}
func (n *NoopMetricsCollector) RecordError(string)                {}

// LogMetricsCollector reports provider events as debug log records.
type LogMetricsCollector struct {
	logger *slog.Logger
}

func NewLogMetricsCollector(logger *slog.Logger) *LogMetricsCollector {
	return &LogMetricsCollector{logger: logger.With("component", "exchange_metrics")}
}

func (c *LogMetricsCollector) RecordFetchDuration(d time.Duration) {
	c.logger.Debug("rate fetch finished", "duration_ms", d.Milliseconds())
}

func (c *LogMetricsCollector) RecordQuote(source string) {
	c.logger.Debug("rate quote served", "source", source)
}

func (c *LogMetricsCollector) RecordError(operation string) {
	c.logger.Debug("rate provider error", "operation", operation)
}
