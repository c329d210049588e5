package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the portal's custom instruments. A zero-value Metrics is
// valid and silently drops all recordings.
type Metrics struct {
	// Advisory operation metrics
	AdvisoryDuration metric.Float64Histogram
	AdvisoryRequests metric.Int64Counter
	AdvisoryDegraded metric.Int64Counter

	// Business metrics
	ApplicationsSubmitted metric.Int64Counter
	ApplicationsDecided   metric.Int64Counter
	NotificationsRead     metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}
	var err error

	om.metrics.AdvisoryDuration, err = meter.Float64Histogram(
		"campusworks_advisory_duration_seconds",
		metric.WithDescription("Time spent serving advisory requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create advisory duration metric: %w", err)
	}

	om.metrics.AdvisoryRequests, err = meter.Int64Counter(
		"campusworks_advisory_requests_total",
		metric.WithDescription("Total number of advisory requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create advisory request count metric: %w", err)
	}

	om.metrics.AdvisoryDegraded, err = meter.Int64Counter(
		"campusworks_advisory_degraded_total",
		metric.WithDescription("Advisory requests answered with a static fallback"),
	)
	if err != nil {
		return fmt.Errorf("failed to create advisory degraded count metric: %w", err)
	}

	om.metrics.ApplicationsSubmitted, err = meter.Int64Counter(
		"campusworks_applications_submitted_total",
		metric.WithDescription("Total number of job applications submitted"),
	)
	if err != nil {
		return fmt.Errorf("failed to create applications submitted metric: %w", err)
	}

	om.metrics.ApplicationsDecided, err = meter.Int64Counter(
		"campusworks_applications_decided_total",
		metric.WithDescription("Total number of application decisions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create applications decided metric: %w", err)
	}

	om.metrics.NotificationsRead, err = meter.Int64Counter(
		"campusworks_notifications_read_total",
		metric.WithDescription("Total number of notifications marked read"),
	)
	if err != nil {
		return fmt.Errorf("failed to create notifications read metric: %w", err)
	}

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"campusworks_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// TrackAdvisory records duration, request count and degraded count for one
// advisory use case. Degraded responses are counted, not errored: the
// service never fails the caller.
func (m *Metrics) TrackAdvisory(ctx context.Context, useCase string, start time.Time, degraded bool) {
	attrs := metric.WithAttributes(
		attribute.String("use_case", useCase),
		attribute.Bool("degraded", degraded),
	)
	if m.AdvisoryDuration != nil {
		m.AdvisoryDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
	if m.AdvisoryRequests != nil {
		m.AdvisoryRequests.Add(ctx, 1, attrs)
	}
	if degraded && m.AdvisoryDegraded != nil {
		m.AdvisoryDegraded.Add(ctx, 1, metric.WithAttributes(attribute.String("use_case", useCase)))
	}
}

// RecordBusinessMetric bumps the counter for one workflow event type.
func (m *Metrics) RecordBusinessMetric(ctx context.Context, metricType string, success bool, attributes ...attribute.KeyValue) {
	attrs := append([]attribute.KeyValue{attribute.Bool("success", success)}, attributes...)
	opts := metric.WithAttributes(attrs...)

	switch metricType {
	case "application_submitted":
		if m.ApplicationsSubmitted != nil {
			m.ApplicationsSubmitted.Add(ctx, 1, opts)
		}
	case "application_decided":
		if m.ApplicationsDecided != nil {
			m.ApplicationsDecided.Add(ctx, 1, opts)
		}
	case "notification_read":
		if m.NotificationsRead != nil {
			m.NotificationsRead.Add(ctx, 1, opts)
		}
	case "rate_limit_hit":
		if m.RateLimitHits != nil {
			m.RateLimitHits.Add(ctx, 1, opts)
		}
	}
}
