package telemetry

import (
	"context"

	"taskapp/internal/core/port"
)

// NoopMetrics discards every measurement. Used when metrics are disabled and in tests.
type NoopMetrics struct{}

func NewNoopMetrics() port.Metrics {
	return NoopMetrics{}
}

func (NoopMetrics) RecordAuthOperation(context.Context, string, string) {}

func (NoopMetrics) RecordTaskOperation(context.Context, string, string) {}
