// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "time"

// MetricFormat tells the UI how to render a metric value.
type MetricFormat string

const (
	FormatCurrency MetricFormat = "currency"
	FormatPercent  MetricFormat = "percentage"
	FormatCount    MetricFormat = "number"
	FormatDayCount MetricFormat = "days"
)

// Trend is the direction hint attached to a metric.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// DashboardMetric is one headline number on the dashboard.
type DashboardMetric struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Value  float64      `json:"value"`
	Format MetricFormat `json:"format"`
	Trend  Trend        `json:"trend,omitempty"`
	Color  string       `json:"color,omitempty"`
}

// ChartType selects the rendering shape for a chart series.
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
)

// ChartConfig carries the axis/series hints the front end expects.
type ChartConfig struct {
	XKey        string   `json:"xKey,omitempty"`
	YKey        string   `json:"yKey,omitempty"`
	CategoryKey string   `json:"categoryKey,omitempty"`
	ValueKey    string   `json:"valueKey,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

// Chart is one chart-ready series with its config.
type Chart struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Type   ChartType   `json:"type"`
	Data   any         `json:"data"`
	Config ChartConfig `json:"config"`
}

// CashFlowPoint is one day of the cumulative cash-flow trend.
type CashFlowPoint struct {
	Date       string  `json:"date"`
	Income     float64 `json:"income"`
	Expenses   float64 `json:"expenses"`
	Net        float64 `json:"net"`
	Cumulative float64 `json:"cumulative"`
}

// CategorySlice is one slice of the expense distribution pie.
type CategorySlice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// BudgetBar is one bar of the budget progress chart. Percentage is capped
// at 100 for display; Status uses the chart's own good/warning/over scale.
type BudgetBar struct {
	Category   string  `json:"category"`
	Budgeted   float64 `json:"budgeted"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// GoalBar is one bar of the goal progress chart.
type GoalBar struct {
	Goal     string  `json:"goal"`
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
}

// MonthBucket is one month of the income-vs-expenses comparison.
type MonthBucket struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// Insight is a templated narrative observation.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Actionable  string `json:"actionable"`
	Priority    string `json:"priority"`
}

// PeriodInfo describes the resolved analysis window.
type PeriodInfo struct {
	Type  string    `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// DashboardPayload is the full dashboard response body.
type DashboardPayload struct {
	Period   PeriodInfo        `json:"period"`
	Metrics  []DashboardMetric `json:"metrics"`
	Charts   []Chart           `json:"charts"`
	Insights []Insight         `json:"insights"`
	Alerts   []Alert           `json:"alerts"`
	Summary  string            `json:"summary"`
}
