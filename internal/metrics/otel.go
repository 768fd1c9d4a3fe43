package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "shotclock"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx              context.Context
	frames           metric.Int64Counter
	frameLatencyMs   metric.Float64Histogram
	framesDropped    metric.Int64Counter
	transitions      metric.Int64Counter
	shots            metric.Int64Counter
	rounds           metric.Int64Counter
	roundScore       metric.Int64Histogram
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	socketClients    metric.Int64UpDownCounter
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("shotclock")
	inst := &otelInstruments{ctx: context.Background()}

	var err error
	if inst.frames, err = meter.Int64Counter("frames_evaluated_total"); err != nil {
		return nil, err
	}
	if inst.frameLatencyMs, err = meter.Float64Histogram("frame_eval_duration_ms"); err != nil {
		return nil, err
	}
	if inst.framesDropped, err = meter.Int64Counter("frames_dropped_total"); err != nil {
		return nil, err
	}
	if inst.transitions, err = meter.Int64Counter("phase_transitions_total"); err != nil {
		return nil, err
	}
	if inst.shots, err = meter.Int64Counter("shots_total"); err != nil {
		return nil, err
	}
	if inst.rounds, err = meter.Int64Counter("rounds_completed_total"); err != nil {
		return nil, err
	}
	if inst.roundScore, err = meter.Int64Histogram("round_score"); err != nil {
		return nil, err
	}
	if inst.requests, err = meter.Int64Counter("http_requests_total"); err != nil {
		return nil, err
	}
	if inst.requestLatencyMs, err = meter.Float64Histogram("http_request_duration_ms"); err != nil {
		return nil, err
	}
	if inst.socketClients, err = meter.Int64UpDownCounter("ws_clients"); err != nil {
		return nil, err
	}
	return inst, nil
}

func (o *otelInstruments) recordFrame(phase string, idle bool, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrPhase, phase),
		attribute.Bool(AttrIdle, idle),
	}
	o.frames.Add(o.ctx, 1, metric.WithAttributes(attrs...))
	o.frameLatencyMs.Record(o.ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordDropped(n int64) {
	if o == nil {
		return
	}
	o.framesDropped.Add(o.ctx, n)
}

func (o *otelInstruments) recordTransition(from, to string) {
	if o == nil {
		return
	}
	o.transitions.Add(o.ctx, 1, metric.WithAttributes(
		attribute.String(AttrFrom, from),
		attribute.String(AttrTo, to),
	))
}

func (o *otelInstruments) recordShot(tier string, points int) {
	if o == nil {
		return
	}
	o.shots.Add(o.ctx, 1, metric.WithAttributes(
		attribute.String(AttrTier, tier),
		attribute.Int(AttrPoints, points),
	))
}

func (o *otelInstruments) recordRound(tier string, score int) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrTier, tier))
	o.rounds.Add(o.ctx, 1, attrs)
	o.roundScore.Record(o.ctx, int64(score), attrs)
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.requests.Add(o.ctx, 1, metric.WithAttributes(attrs...))
	o.requestLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordSocketClients(role string, delta int64) {
	if o == nil {
		return
	}
	o.socketClients.Add(o.ctx, delta, metric.WithAttributes(attribute.String(AttrRole, role)))
}
