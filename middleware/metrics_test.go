package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/nsweeting/authex"
	"github.com/nsweeting/authex/middleware"
	"github.com/nsweeting/authex/token"
)

func TestAuthenticate_Metrics(t *testing.T) {
	auth := newTestAuth(t, authex.Config{})
	valid := signedToken(t, auth, token.WithSubject("user-1"))
	expired := signedToken(t, auth, token.WithTTL(-time.Minute))

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	handler := middleware.AuthenticateWithConfig(auth, middleware.Config{
		Meter: provider.Meter("authex-test"),
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tok := range []string{valid, expired} {
		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	total := findSum(t, rm, "authex.verify.total")
	if got := sumValues(total); got != 2 {
		t.Errorf("authex.verify.total = %d, want 2", got)
	}

	failures := findSum(t, rm, "authex.verify.failures")
	if got := sumValues(failures); got != 1 {
		t.Errorf("authex.verify.failures = %d, want 1", got)
	}
	for _, dp := range failures.DataPoints {
		v, ok := dp.Attributes.Value(attribute.Key("authex.reason"))
		if !ok || v.AsString() != "expired" {
			t.Errorf("failure reason attribute = %v, want expired", v.AsString())
		}
	}
}

func findSum(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %q has data type %T, want Sum[int64]", name, m.Data)
			}
			return sum
		}
	}
	t.Fatalf("metric %q not recorded", name)
	return metricdata.Sum[int64]{}
}

func sumValues(s metricdata.Sum[int64]) int64 {
	var total int64
	for _, dp := range s.DataPoints {
		total += dp.Value
	}
	return total
}

func TestAuthenticate_Tracing(t *testing.T) {
	auth := newTestAuth(t, authex.Config{})
	expired := signedToken(t, auth, token.WithTTL(-time.Minute))

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	handler := middleware.AuthenticateWithConfig(auth, middleware.Config{
		Tracer: provider.Tracer("authex-test"),
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "authex.verify" {
		t.Errorf("span name = %q, want authex.verify", span.Name())
	}
	if span.Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", span.Status().Code)
	}
	if span.Status().Description != "expired" {
		t.Errorf("span status description = %q, want expired", span.Status().Description)
	}
}
