// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides Prometheus metrics for the MoneyGuy API.
//
// # Description
//
// Metrics cover HTTP traffic plus the domain operations worth alerting
// on: assistant conversations (by outcome), tool executions, alert
// generation, and report rendering.
//
// # Integration
//
// Metrics are exposed via the /metrics endpoint. Attach Middleware()
// to the router to record per-route traffic.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal
// locking.
package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "moneyguy"

const apiSubsystem = "api"

// ChatOutcome labels one assistant conversation turn for metrics.
type ChatOutcome string

const (
	// ChatOutcomeOK is a normally answered turn.
	ChatOutcomeOK ChatOutcome = "ok"

	// ChatOutcomeFallback is a turn answered with the canned fallback
	// after a provider failure.
	ChatOutcomeFallback ChatOutcome = "fallback"

	// ChatOutcomeQuota is a turn rejected by the daily limit.
	ChatOutcomeQuota ChatOutcome = "quota"
)

// APIMetrics holds every Prometheus metric of the server. Initialize
// once at startup via InitMetrics().
type APIMetrics struct {
	// RequestsTotal counts HTTP requests by route and status code.
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures request latency by route.
	RequestDurationSeconds *prometheus.HistogramVec

	// ChatMessagesTotal counts assistant turns by outcome.
	ChatMessagesTotal *prometheus.CounterVec

	// ToolCallsTotal counts assistant tool executions by tool and status.
	ToolCallsTotal *prometheus.CounterVec

	// AlertsGeneratedTotal counts generated alerts by type.
	AlertsGeneratedTotal *prometheus.CounterVec

	// ReportsGeneratedTotal counts rendered reports by format.
	ReportsGeneratedTotal *prometheus.CounterVec

	// ActiveChatStreams tracks open chat WebSockets.
	ActiveChatStreams prometheus.Gauge
}

// DefaultMetrics is the singleton instance, set by InitMetrics().
var DefaultMetrics *APIMetrics

var initOnce sync.Once

// InitMetrics registers the metrics on the default registry. Safe to
// call more than once; later calls return the existing instance.
func InitMetrics() *APIMetrics {
	initOnce.Do(func() {
		DefaultMetrics = newMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// newMetrics builds the metric set on the given registerer. Tests pass
// an isolated registry.
func newMetrics(reg prometheus.Registerer) *APIMetrics {
	factory := promauto.With(reg)
	return &APIMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: apiSubsystem,
				Name:      "requests_total",
				Help:      "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),

		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: apiSubsystem,
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"route"},
		),

		ChatMessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: apiSubsystem,
				Name:      "chat_messages_total",
				Help:      "Assistant conversation turns by outcome",
			},
			[]string{"outcome"},
		),

		ToolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: apiSubsystem,
				Name:      "tool_calls_total",
				Help:      "Assistant tool executions by tool and status",
			},
			[]string{"tool", "status"},
		),

		AlertsGeneratedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: apiSubsystem,
				Name:      "alerts_generated_total",
				Help:      "Generated smart alerts by type",
			},
			[]string{"type"},
		),

		ReportsGeneratedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: apiSubsystem,
				Name:      "reports_generated_total",
				Help:      "Rendered reports by format",
			},
			[]string{"format"},
		),

		ActiveChatStreams: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: apiSubsystem,
				Name:      "active_chat_streams",
				Help:      "Open chat WebSocket connections",
			},
		),
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

// RecordChatMessage records one assistant turn.
func (m *APIMetrics) RecordChatMessage(outcome ChatOutcome) {
	m.ChatMessagesTotal.WithLabelValues(string(outcome)).Inc()
}

// RecordToolCall records one assistant tool execution.
func (m *APIMetrics) RecordToolCall(tool string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ToolCallsTotal.WithLabelValues(tool, status).Inc()
}

// RecordAlerts records a batch of generated alerts by type.
func (m *APIMetrics) RecordAlerts(types []string) {
	for _, t := range types {
		m.AlertsGeneratedTotal.WithLabelValues(t).Inc()
	}
}

// RecordReport records one rendered report.
func (m *APIMetrics) RecordReport(format string) {
	m.ReportsGeneratedTotal.WithLabelValues(format).Inc()
}

// StreamStarted increments the open-stream gauge.
func (m *APIMetrics) StreamStarted() {
	m.ActiveChatStreams.Inc()
}

// StreamEnded decrements the open-stream gauge.
func (m *APIMetrics) StreamEnded() {
	m.ActiveChatStreams.Dec()
}

// Middleware records request count and latency per route. Uses the
// route template, not the raw path, so ids don't explode cardinality.
func (m *APIMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDurationSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
