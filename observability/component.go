package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/todoapi/component"
	"github.com/kbukum/todoapi/logger"
)

const componentName = "observability"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component owns the tracer and meter providers.
type Component struct {
	cfg Config
	log *logger.Logger
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

// NewComponent creates the observability component. Nothing is exported
// until Start, and only when cfg.Enabled is set.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	return &Component{cfg: cfg, log: log.WithComponent(componentName)}
}

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start installs the OTLP providers when export is enabled.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.log.Debug("OTLP export disabled")
		return nil
	}

	tp, err := InitTracer(ctx, c.cfg)
	if err != nil {
		return fmt.Errorf("observability: tracer: %w", err)
	}
	mp, err := InitMeter(ctx, c.cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("observability: meter: %w", err)
	}
	c.tp, c.mp = tp, mp

	c.log.Info("OTLP export enabled", logger.Fields(
		"endpoint", c.cfg.Endpoint,
		"sample_rate", c.cfg.SampleRate,
		"metric_interval", c.cfg.MetricInterval.String(),
	))
	return nil
}

// Stop flushes and shuts down the providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		errs = append(errs, c.tp.Shutdown(ctx))
	}
	if c.mp != nil {
		errs = append(errs, c.mp.Shutdown(ctx))
	}
	c.tp, c.mp = nil, nil
	return errors.Join(errs...)
}

// Health reports whether export is active.
func (c *Component) Health(_ context.Context) component.Health {
	msg := "export disabled"
	if c.tp != nil {
		msg = "exporting to " + c.cfg.Endpoint
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy, Message: msg}
}

// Describe returns summary info for the startup log.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp http %s sample=%.2f", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Name: "OpenTelemetry", Type: "observability", Details: details}
}
