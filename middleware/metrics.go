package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/nsweeting/authex/token"
)

// instruments holds the verification metrics.
type instruments struct {
	total        metric.Int64Counter
	failures     metric.Int64Counter
	durationHist metric.Float64Histogram
}

// newInstruments creates the verification instruments on the given meter.
func newInstruments(meter metric.Meter) (*instruments, error) {
	total, err := meter.Int64Counter(
		"authex.verify.total",
		metric.WithDescription("Total number of token verifications"),
		metric.WithUnit("{verification}"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"authex.verify.failures",
		metric.WithDescription("Total number of failed token verifications"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"authex.verify.duration_ms",
		metric.WithDescription("Token verification duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &instruments{
		total:        total,
		failures:     failures,
		durationHist: durationHist,
	}, nil
}

// noopInstruments never fails to build: the noop meter accepts any
// instrument registration.
func noopInstruments() *instruments {
	ins, _ := newInstruments(noop.NewMeterProvider().Meter("authex"))
	return ins
}

// record registers one verification outcome. Failed verifications are
// attributed with the stable failure reason vocabulary.
func (m *instruments) record(ctx context.Context, duration time.Duration, err error) {
	m.total.Add(ctx, 1)
	if err != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("authex.reason", token.Reason(err)),
		))
	}
	m.durationHist.Record(ctx, float64(duration.Nanoseconds())/1e6)
}
