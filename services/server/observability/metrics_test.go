// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestMetrics builds metrics on an isolated registry to avoid
// conflicts with the global one across tests.
func newTestMetrics(t *testing.T) *APIMetrics {
	t.Helper()
	return newMetrics(prometheus.NewRegistry())
}

// =============================================================================
// Counter Helpers
// =============================================================================

func TestRecordChatMessage(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordChatMessage(ChatOutcomeOK)
	m.RecordChatMessage(ChatOutcomeOK)
	m.RecordChatMessage(ChatOutcomeQuota)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ChatMessagesTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ChatMessagesTotal.WithLabelValues("quota")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ChatMessagesTotal.WithLabelValues("fallback")))
}

func TestRecordToolCall(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordToolCall("addTransaction", true)
	m.RecordToolCall("addTransaction", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("addTransaction", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("addTransaction", "error")))
}

func TestRecordAlertsAndReports(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordAlerts([]string{"BUDGET_EXCEEDED", "BUDGET_EXCEEDED", "ACHIEVEMENT"})
	m.RecordReport("EXCEL")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AlertsGeneratedTotal.WithLabelValues("BUDGET_EXCEEDED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AlertsGeneratedTotal.WithLabelValues("ACHIEVEMENT")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReportsGeneratedTotal.WithLabelValues("EXCEL")))
}

func TestStreamGauge(t *testing.T) {
	m := newTestMetrics(t)

	m.StreamStarted()
	m.StreamStarted()
	m.StreamEnded()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ActiveChatStreams))
}

// =============================================================================
// HTTP Middleware
// =============================================================================

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	m := newTestMetrics(t)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/transactions/:id", func(c *gin.Context) {
		c.Status(200)
	})

	req := httptest.NewRequest("GET", "/api/transactions/0b9fa1b2-0000-0000-0000-000000000000", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/api/transactions/:id", "200")))
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	m := newTestMetrics(t)

	router := gin.New()
	router.Use(m.Middleware())

	req := httptest.NewRequest("GET", "/nope", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.RequestsTotal.WithLabelValues("unmatched", "404")))
}

func TestInitMetrics_Singleton(t *testing.T) {
	first := InitMetrics()
	second := InitMetrics()
	require.Same(t, first, second)
}
