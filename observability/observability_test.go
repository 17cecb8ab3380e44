package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/todoapi/component"
	"github.com/kbukum/todoapi/logger"
)

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, "localhost:4318", cfg.Endpoint)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, 15*time.Second, cfg.MetricInterval)
	require.NoError(t, cfg.Validate())

	cfg.SampleRate = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Config{Enabled: true, SampleRate: 0.5}
	assert.Error(t, cfg.Validate(), "endpoint required when enabled")
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestNewResource(t *testing.T) {
	res, err := newResource(Config{ServiceName: "todoapi", ServiceVersion: "1.2.3", Environment: "staging"})
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "todoapi", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
	assert.Equal(t, "staging", attrs["deployment.environment"])
}

// withRecorder installs an in-memory tracer provider for the test.
func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestSetSpanError(t *testing.T) {
	rec := withRecorder(t)

	ctx, span := StartSpan(context.Background(), "op")
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOperationContext(t *testing.T) {
	rec := withRecorder(t)
	metrics, reader := newTestMetrics(t)

	oc := NewOperationContext("identity", "login", "req-1", "", metrics)
	ctx, span := oc.StartSpanForOperation(context.Background(), "identity.Login")
	oc.EndOperation(ctx, span, "invalid_credentials", errors.New("bad password"))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "identity.Login", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "identity", attrs[AttrServiceName])
	assert.Equal(t, "login", attrs[AttrOperationName])
	assert.Equal(t, "req-1", attrs[AttrRequestID])
	assert.Equal(t, "invalid_credentials", attrs[AttrStatus])
	assert.NotContains(t, attrs, AttrUserID)

	got := collect(t, reader)
	sum, ok := got["operation.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
	status, _ := sum.DataPoints[0].Attributes.Value("status")
	assert.Equal(t, "invalid_credentials", status.AsString())
}

func TestOperationContextSuccessKeepsStatusUnset(t *testing.T) {
	rec := withRecorder(t)

	oc := NewOperationContext("identity", "register", "", "7", nil)
	ctx, span := oc.StartSpanForOperation(context.Background(), "identity.Register")
	oc.EndOperation(ctx, span, "ok", nil)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestMetricsRecordRequest(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	ctx := context.Background()

	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "/users/me", "GET", 401, 3*time.Millisecond)
	metrics.RecordError(ctx, "unauthorized", "http")

	got := collect(t, reader)
	assert.Contains(t, got, "http.server.request.total")
	assert.Contains(t, got, "http.server.request.duration")
	assert.Contains(t, got, "error.total")

	active, ok := got["http.server.request.active"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, active.DataPoints, 1)
	assert.Equal(t, int64(0), active.DataPoints[0].Value)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordRequestStart(ctx)
		m.RecordRequestEnd(ctx, "/", "GET", 200, time.Millisecond)
		m.RecordOperation(ctx, "s", "o", "ok", time.Millisecond)
		m.RecordError(ctx, "t", "c")
	})
}

func TestComponentDisabled(t *testing.T) {
	c := NewComponent(Config{}, logger.Nop())
	ctx := context.Background()

	require.NoError(t, c.Start(ctx))
	assert.Equal(t, "observability", c.Name())
	assert.Equal(t, component.StatusHealthy, c.Health(ctx).Status)
	assert.Equal(t, "export disabled", c.Health(ctx).Message)
	assert.Equal(t, "disabled", c.Describe().Details)
	require.NoError(t, c.Stop(ctx))
}
