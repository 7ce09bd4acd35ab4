package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	decisions       metric.Int64Counter
	cacheHits       metric.Int64Counter
	cacheMisses     metric.Int64Counter
	usageIncrements metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "planguard"
	}
	meter := provider.Meter(name)

	decisions, err := meter.Int64Counter("entitlement_decisions_total",
		metric.WithDescription("Entitlement decisions by feature and result."))
	if err != nil {
		return nil, err
	}
	cacheHits, err := meter.Int64Counter("entitlement_cache_hits_total",
		metric.WithDescription("Entitlement facade cache hits."))
	if err != nil {
		return nil, err
	}
	cacheMisses, err := meter.Int64Counter("entitlement_cache_misses_total",
		metric.WithDescription("Entitlement facade cache misses."))
	if err != nil {
		return nil, err
	}
	usageIncrements, err := meter.Int64Counter("usage_increments_total",
		metric.WithDescription("Usage increments applied by feature."))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		decisions:       decisions,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		usageIncrements: usageIncrements,
	}, nil
}

func (m *Metrics) RecordDecision(ctx context.Context, featureCode string, allowed bool) {
	if m == nil {
		return
	}
	m.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("feature_code", featureCode),
		attribute.Bool("allowed", allowed),
	))
}

func (m *Metrics) RecordCacheHit(ctx context.Context, featureCode string) {
	if m == nil {
		return
	}
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("feature_code", featureCode)))
}

func (m *Metrics) RecordCacheMiss(ctx context.Context, featureCode string) {
	if m == nil {
		return
	}
	m.cacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("feature_code", featureCode)))
}

func (m *Metrics) RecordUsageIncrement(ctx context.Context, featureCode string, quantity int64) {
	if m == nil {
		return
	}
	m.usageIncrements.Add(ctx, quantity, metric.WithAttributes(attribute.String("feature_code", featureCode)))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported metrics exporter protocol %q", protocol)
	}
}
