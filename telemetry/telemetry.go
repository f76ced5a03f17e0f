// Package telemetry wires structured logging and OpenTelemetry for the
// execai binaries, and provides instrumenting decorators for the execai
// service interfaces.
//
// Everything is written to rotated files under a single directory because
// the chat console owns the terminal.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// ServiceName identifies execai in logs, traces and metrics.
const ServiceName = "execai"

const (
	logFile     = "execai.log"
	traceFile   = "execai_traces.log"
	metricsFile = "execai_metrics.log"

	metricInterval = 10 * time.Second
)

func rotated(dir, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// ParseLevel parses a log level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parse log level: %w", err)
	}
	return l, nil
}

// NewLogger returns a JSON logger writing to a rotated execai.log in dir.
// Close the returned closer on exit.
func NewLogger(dir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	w := rotated(dir, logFile)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With("service", ServiceName)
	return logger, w, nil
}

// Telemetry holds the tracer and meter used by the decorators.
type Telemetry struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	// providers flush before files close.
	providers []func(context.Context) error
	files     []io.Closer
}

// Setup configures tracing and metrics exporters writing pretty-printed
// JSON to rotated files in dir.
func Setup(ctx context.Context, dir, version string) (*Telemetry, error) {
	return setup(ctx, dir, version, newMetricExporter)
}

func newMetricExporter(w io.Writer) (sdkmetric.Exporter, error) {
	return stdoutmetric.New(
		stdoutmetric.WithWriter(w),
		stdoutmetric.WithPrettyPrint(),
	)
}

// setup builds the providers. Everything opened before a failure is shut
// down again.
func setup(ctx context.Context, dir, version string, metricExporter func(io.Writer) (sdkmetric.Exporter, error)) (_ *Telemetry, err error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create telemetry directory: %w", err)
	}

	t := &Telemetry{}
	defer func() {
		if err != nil {
			err = errors.Join(err, t.Shutdown(ctx))
		}
	}()

	traces := rotated(dir, traceFile)
	t.files = append(t.files, traces)
	traceExporter, err := stdouttrace.New(
		stdouttrace.WithWriter(traces),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	t.providers = append(t.providers, tp.Shutdown)

	metrics := rotated(dir, metricsFile)
	t.files = append(t.files, metrics)
	exporter, err := metricExporter(metrics)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricInterval))),
		sdkmetric.WithResource(res),
	)
	t.providers = append(t.providers, mp.Shutdown)

	t.Tracer = tp.Tracer(ServiceName)
	t.Meter = mp.Meter(ServiceName)
	return t, nil
}

// Shutdown flushes pending spans and metrics and closes the output files.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.providers {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range t.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
