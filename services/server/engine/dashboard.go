// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

const maxDashboardAlerts = 5

// BuildDashboard assembles the full dashboard payload for one period.
// Metrics, charts, and insights are computed from the transactions
// inside the resolved window; budget charts and compliance use each
// budget's own window against the full snapshot. The supplied alerts
// are the user's active alerts; the payload carries the top five.
func BuildDashboard(snap Snapshot, period string, alerts []datatypes.Alert) datatypes.DashboardPayload {
	window := ResolveWindow(period, snap.Now)

	var filtered []datatypes.Transaction
	for _, t := range snap.Transactions {
		if InWindow(t.Date, window) {
			filtered = append(filtered, t)
		}
	}

	metrics := keyMetrics(filtered, snap)
	insights := buildInsights(filtered, snap.Goals)

	if len(alerts) > maxDashboardAlerts {
		alerts = alerts[:maxDashboardAlerts]
	}

	return datatypes.DashboardPayload{
		Period:   window,
		Metrics:  metrics,
		Charts:   buildCharts(filtered, snap),
		Insights: insights,
		Alerts:   alerts,
		Summary:  executiveSummary(metrics, insights),
	}
}

func keyMetrics(filtered []datatypes.Transaction, snap Snapshot) []datatypes.DashboardMetric {
	income := sumAmounts(filtered, func(t datatypes.Transaction) bool {
		return t.Type == datatypes.TransactionIncome
	}).InexactFloat64()
	expenses := sumAmounts(filtered, func(t datatypes.Transaction) bool {
		return t.Type == datatypes.TransactionExpense
	}).InexactFloat64()

	net := income - expenses
	savingsRate := 0.0
	if income > 0 {
		savingsRate = net / income * 100
	}

	compliance := 100.0
	if len(snap.Budgets) > 0 {
		within := 0
		for _, b := range snap.Budgets {
			if BudgetPercentage(SpentForBudget(b, snap.Transactions), b.Amount) <= 100 {
				within++
			}
		}
		compliance = float64(within) / float64(len(snap.Budgets)) * 100
	}

	goalProgress := 0.0
	if len(snap.Goals) > 0 {
		for _, g := range snap.Goals {
			goalProgress += GoalProgressPct(g)
		}
		goalProgress /= float64(len(snap.Goals))
	}

	return []datatypes.DashboardMetric{
		{
			ID:     "net-cash-flow",
			Title:  "Flujo de Caja Neto",
			Value:  net,
			Format: datatypes.FormatCurrency,
			Trend:  trendFor(net, 0, 0),
			Color:  colorFor(net, 0, 0),
		},
		{
			ID:     "savings-rate",
			Title:  "Tasa de Ahorro",
			Value:  savingsRate,
			Format: datatypes.FormatPercent,
			Trend:  trendFor(savingsRate, 20, 10),
			Color:  colorFor(savingsRate, 20, 10),
		},
		{
			ID:     "budget-compliance",
			Title:  "Cumplimiento Presupuestario",
			Value:  compliance,
			Format: datatypes.FormatPercent,
			Trend:  trendFor(compliance, 80, 60),
			Color:  colorFor(compliance, 80, 60),
		},
		{
			ID:     "goal-progress",
			Title:  "Progreso de Metas",
			Value:  goalProgress,
			Format: datatypes.FormatPercent,
			Trend:  trendFor(goalProgress, 70, 40),
			Color:  colorFor(goalProgress, 70, 40),
		},
		{
			ID:     "total-income",
			Title:  "Ingresos del Período",
			Value:  income,
			Format: datatypes.FormatCurrency,
			Color:  "#3B82F6",
		},
		{
			ID:     "total-expenses",
			Title:  "Gastos del Período",
			Value:  expenses,
			Format: datatypes.FormatCurrency,
			Color:  "#EF4444",
		},
	}
}

// trendFor buckets a value against an up/neutral boundary pair.
func trendFor(v, up, neutral float64) datatypes.Trend {
	switch {
	case v > up:
		return datatypes.TrendUp
	case v > neutral:
		return datatypes.TrendNeutral
	default:
		return datatypes.TrendDown
	}
}

func colorFor(v, up, neutral float64) string {
	switch {
	case v > up:
		return "#10B981"
	case v > neutral:
		return "#F59E0B"
	default:
		return "#EF4444"
	}
}

func buildCharts(filtered []datatypes.Transaction, snap Snapshot) []datatypes.Chart {
	charts := []datatypes.Chart{
		{
			ID:    "cash-flow-trend",
			Title: "Tendencia de Flujo de Caja",
			Type:  datatypes.ChartLine,
			Data:  cashFlowSeries(filtered),
			Config: datatypes.ChartConfig{
				XKey:   "date",
				YKey:   "cumulative",
				Colors: []string{"#3B82F6"},
			},
		},
		{
			ID:    "expense-distribution",
			Title: "Distribución de Gastos por Categoría",
			Type:  datatypes.ChartPie,
			Data:  categorySlices(filtered, 8),
			Config: datatypes.ChartConfig{
				CategoryKey: "category",
				ValueKey:    "amount",
				Colors:      []string{"#EF4444", "#F59E0B", "#10B981", "#3B82F6", "#8B5CF6", "#EC4899"},
			},
		},
	}

	if len(snap.Budgets) > 0 {
		charts = append(charts, datatypes.Chart{
			ID:    "budget-progress",
			Title: "Estado de Presupuestos",
			Type:  datatypes.ChartBar,
			Data:  budgetBars(snap),
			Config: datatypes.ChartConfig{
				XKey:   "category",
				YKey:   "percentage",
				Colors: []string{"#10B981", "#F59E0B", "#EF4444"},
			},
		})
	}

	if len(snap.Goals) > 0 {
		charts = append(charts, datatypes.Chart{
			ID:    "goals-progress",
			Title: "Progreso de Metas Financieras",
			Type:  datatypes.ChartBar,
			Data:  goalBars(snap.Goals),
			Config: datatypes.ChartConfig{
				XKey:   "goal",
				YKey:   "progress",
				Colors: []string{"#8B5CF6"},
			},
		})
	}

	charts = append(charts, datatypes.Chart{
		ID:    "income-vs-expenses",
		Title: "Ingresos vs Gastos por Mes",
		Type:  datatypes.ChartBar,
		Data:  monthBuckets(filtered),
		Config: datatypes.ChartConfig{
			XKey:   "month",
			Colors: []string{"#10B981", "#EF4444"},
		},
	})

	return charts
}

// cashFlowSeries folds transactions into daily income/expense totals
// and a running cumulative net, oldest day first.
func cashFlowSeries(txns []datatypes.Transaction) []datatypes.CashFlowPoint {
	type flow struct{ income, expenses float64 }
	daily := make(map[string]*flow)
	for _, t := range txns {
		day := t.Date.Format("2006-01-02")
		f := daily[day]
		if f == nil {
			f = &flow{}
			daily[day] = f
		}
		if t.Type == datatypes.TransactionIncome {
			f.income += t.Amount.InexactFloat64()
		} else {
			f.expenses += t.Amount.InexactFloat64()
		}
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]datatypes.CashFlowPoint, 0, len(days))
	cumulative := 0.0
	for _, day := range days {
		f := daily[day]
		net := f.income - f.expenses
		cumulative += net
		points = append(points, datatypes.CashFlowPoint{
			Date:       day,
			Income:     f.income,
			Expenses:   f.expenses,
			Net:        net,
			Cumulative: cumulative,
		})
	}
	return points
}

// categorySlices returns the top expense categories by amount.
func categorySlices(txns []datatypes.Transaction, limit int) []datatypes.CategorySlice {
	totals := make(map[string]float64)
	for _, t := range txns {
		if t.Type != datatypes.TransactionExpense {
			continue
		}
		totals[categoryName(t)] += t.Amount.InexactFloat64()
	}

	slices := make([]datatypes.CategorySlice, 0, len(totals))
	for name, amount := range totals {
		slices = append(slices, datatypes.CategorySlice{Category: name, Amount: amount})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Amount != slices[j].Amount {
			return slices[i].Amount > slices[j].Amount
		}
		return slices[i].Category < slices[j].Category
	})
	if len(slices) > limit {
		slices = slices[:limit]
	}
	return slices
}

// budgetBars caps the display percentage at 100; the status string
// still reflects the uncapped value.
func budgetBars(snap Snapshot) []datatypes.BudgetBar {
	bars := make([]datatypes.BudgetBar, 0, len(snap.Budgets))
	for _, b := range snap.Budgets {
		spent := SpentForBudget(b, snap.Transactions)
		pct := BudgetPercentage(spent, b.Amount)

		status := "good"
		if pct > 100 {
			status = "over"
		} else if pct > 80 {
			status = "warning"
		}

		bars = append(bars, datatypes.BudgetBar{
			Category:   budgetLabel(b),
			Budgeted:   b.Amount.InexactFloat64(),
			Spent:      spent.InexactFloat64(),
			Percentage: math.Min(pct, 100),
			Status:     status,
		})
	}
	return bars
}

func goalBars(goals []datatypes.Goal) []datatypes.GoalBar {
	bars := make([]datatypes.GoalBar, 0, len(goals))
	for _, g := range goals {
		progress := GoalProgressPct(g)

		status := "needs-attention"
		switch {
		case g.IsCompleted:
			status = "completed"
		case progress > 80:
			status = "near-complete"
		case progress > 50:
			status = "on-track"
		}

		bars = append(bars, datatypes.GoalBar{
			Goal:     g.Title,
			Target:   g.TargetAmount.InexactFloat64(),
			Current:  g.CurrentAmount.InexactFloat64(),
			Progress: math.Min(progress, 100),
			Status:   status,
		})
	}
	if len(bars) > 5 {
		bars = bars[:5]
	}
	return bars
}

// monthBuckets groups transactions by calendar month, oldest first.
func monthBuckets(txns []datatypes.Transaction) []datatypes.MonthBucket {
	type flow struct{ income, expenses float64 }
	monthly := make(map[string]*flow)
	for _, t := range txns {
		key := t.Date.Format("2006-01")
		f := monthly[key]
		if f == nil {
			f = &flow{}
			monthly[key] = f
		}
		if t.Type == datatypes.TransactionIncome {
			f.income += t.Amount.InexactFloat64()
		} else {
			f.expenses += t.Amount.InexactFloat64()
		}
	}

	keys := make([]string, 0, len(monthly))
	for key := range monthly {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]datatypes.MonthBucket, 0, len(keys))
	for _, key := range keys {
		f := monthly[key]
		ts, _ := time.Parse("2006-01", key)
		buckets = append(buckets, datatypes.MonthBucket{
			Month:    monthLabel(ts),
			Income:   f.income,
			Expenses: f.expenses,
			Net:      f.income - f.expenses,
		})
	}
	return buckets
}

func buildInsights(filtered []datatypes.Transaction, goals []datatypes.Goal) []datatypes.Insight {
	var insights []datatypes.Insight

	if top := topExpenseCategory(filtered); top != nil {
		insights = append(insights, datatypes.Insight{
			Type:        "spending-pattern",
			Title:       "Mayor Categoría de Gasto",
			Description: fmt.Sprintf("Tu mayor gasto es en %s con %.2f€", top.Category, top.Amount),
			Actionable:  fmt.Sprintf("Considera revisar tus gastos en %s para posibles ahorros", top.Category),
			Priority:    "medium",
		})
	}

	if day, amount, ok := topSpendingWeekday(filtered); ok {
		insights = append(insights, datatypes.Insight{
			Type:        "temporal-pattern",
			Title:       "Patrón Temporal de Gastos",
			Description: fmt.Sprintf("Gastas más los %ss (%.2f€)", day, amount),
			Actionable:  fmt.Sprintf("Planifica mejor tus gastos para los %ss", day),
			Priority:    "low",
		})
	}

	var active []datatypes.Goal
	for _, g := range goals {
		if !g.IsCompleted {
			active = append(active, g)
		}
	}
	if len(active) > 0 {
		avg := 0.0
		for _, g := range active {
			avg += GoalProgressPct(g)
		}
		avg /= float64(len(active))

		actionable := "Buen progreso en tus metas financieras"
		if avg < 50 {
			actionable = "Considera aumentar las contribuciones a tus metas"
		}
		priority := "low"
		if avg < 30 {
			priority = "high"
		}
		insights = append(insights, datatypes.Insight{
			Type:        "goal-performance",
			Title:       "Progreso de Metas",
			Description: fmt.Sprintf("Progreso promedio de metas: %.1f%%", avg),
			Actionable:  actionable,
			Priority:    priority,
		})
	}

	return insights
}

func topExpenseCategory(txns []datatypes.Transaction) *datatypes.CategorySlice {
	slices := categorySlices(txns, 1)
	if len(slices) == 0 {
		return nil
	}
	return &slices[0]
}

func topSpendingWeekday(txns []datatypes.Transaction) (string, float64, bool) {
	var totals [7]float64
	any := false
	for _, t := range txns {
		if t.Type != datatypes.TransactionExpense {
			continue
		}
		totals[int(t.Date.Weekday())] += t.Amount.InexactFloat64()
		any = true
	}
	if !any {
		return "", 0, false
	}
	best := 0
	for i := 1; i < 7; i++ {
		if totals[i] > totals[best] {
			best = i
		}
	}
	return weekdayName(time.Weekday(best)), totals[best], true
}

// executiveSummary writes the one-paragraph verdict shown at the top of
// the dashboard.
func executiveSummary(metrics []datatypes.DashboardMetric, insights []datatypes.Insight) string {
	var net, savingsRate float64
	for _, m := range metrics {
		switch m.ID {
		case "net-cash-flow":
			net = m.Value
		case "savings-rate":
			savingsRate = m.Value
		}
	}

	summary := ""
	if net > 0 {
		summary += fmt.Sprintf("Flujo de caja positivo de %.2f€. ", net)
	} else if net < 0 {
		summary += fmt.Sprintf("Déficit de %.2f€ este período. ", math.Abs(net))
	}

	if savingsRate > 20 {
		summary += "Excelente tasa de ahorro. "
	} else if savingsRate > 10 {
		summary += "Tasa de ahorro moderada. "
	} else {
		summary += "Considera mejorar tu tasa de ahorro. "
	}

	high := 0
	for _, i := range insights {
		if i.Priority == "high" {
			high++
		}
	}
	if high > 0 {
		summary += fmt.Sprintf("%d área(s) requieren atención inmediata.", high)
	} else {
		summary += "Situación financiera estable."
	}
	return summary
}
