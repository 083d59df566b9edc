// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// ReportConfig selects what a report run analyzes.
type ReportConfig struct {
	Type     datatypes.ReportType
	Period   datatypes.ReportPeriod
	UserName string
}

var reportTypeNames = map[datatypes.ReportType]string{
	datatypes.ReportMonthlySummary:   "Resumen Mensual",
	datatypes.ReportBudgetAnalysis:   "Análisis de Presupuestos",
	datatypes.ReportGoalProgress:     "Progreso de Metas",
	datatypes.ReportSpendingAnalysis: "Análisis de Gastos",
	datatypes.ReportExecutiveSummary: "Resumen Ejecutivo",
}

// ReportTypeName returns the display name for a report type.
func ReportTypeName(t datatypes.ReportType) string {
	if name, ok := reportTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// ReportTitle names a report run after its type and the current month.
func ReportTitle(t datatypes.ReportType, snap Snapshot) string {
	return fmt.Sprintf("%s - %s %d", ReportTypeName(t),
		spanishMonths[snap.Now.Month()-1], snap.Now.Year())
}

// BuildReport computes the full data payload behind a report artifact.
// Transactions are restricted to the configured period; budget
// utilization is measured against those period transactions filtered
// by the budget's category, so a report over January shows January
// spend even for a quarterly budget.
func BuildReport(snap Snapshot, cfg ReportConfig) datatypes.ReportPayload {
	var period []datatypes.Transaction
	for _, t := range snap.Transactions {
		if !t.Date.Before(cfg.Period.Start) && !t.Date.After(cfg.Period.End) {
			period = append(period, t)
		}
	}

	metrics := reportMetrics(period, snap)
	analysis := analysisByType(period, snap, cfg.Type)

	return datatypes.ReportPayload{
		Metadata: datatypes.ReportMetadata{
			ReportType:  cfg.Type,
			GeneratedAt: snap.Now,
			Period:      cfg.Period,
			UserName:    cfg.UserName,
		},
		Summary:         reportSummary(metrics),
		Metrics:         metrics,
		Analysis:        analysis,
		Recommendations: reportRecommendations(metrics),
	}
}

func reportMetrics(period []datatypes.Transaction, snap Snapshot) datatypes.ReportMetrics {
	income := sumAmounts(period, func(t datatypes.Transaction) bool {
		return t.Type == datatypes.TransactionIncome
	}).InexactFloat64()
	expenses := sumAmounts(period, func(t datatypes.Transaction) bool {
		return t.Type == datatypes.TransactionExpense
	}).InexactFloat64()

	net := income - expenses
	savingsRate := 0.0
	if income > 0 {
		savingsRate = net / income * 100
	}
	avgSize := 0.0
	if len(period) > 0 {
		avgSize = (income + expenses) / float64(len(period))
	}

	budgets := make([]datatypes.BudgetMetric, 0, len(snap.Budgets))
	for _, b := range snap.Budgets {
		spent := sumAmounts(period, func(t datatypes.Transaction) bool {
			if t.Type != datatypes.TransactionExpense {
				return false
			}
			if b.CategoryID != nil {
				return t.CategoryID != nil && *t.CategoryID == *b.CategoryID
			}
			return true
		}).InexactFloat64()

		budgeted := b.Amount.InexactFloat64()
		utilization := 0.0
		if budgeted > 0 {
			utilization = spent / budgeted * 100
		}
		budgets = append(budgets, datatypes.BudgetMetric{
			Category:    budgetLabel(b),
			Budgeted:    budgeted,
			Spent:       spent,
			Remaining:   budgeted - spent,
			Utilization: utilization,
		})
	}

	goals := make([]datatypes.GoalMetric, 0, len(snap.Goals))
	for _, g := range snap.Goals {
		goals = append(goals, datatypes.GoalMetric{
			Title:       g.Title,
			Target:      g.TargetAmount.InexactFloat64(),
			Current:     g.CurrentAmount.InexactFloat64(),
			Progress:    GoalProgressPct(g),
			IsCompleted: g.IsCompleted,
			Deadline:    g.TargetDate,
		})
	}

	return datatypes.ReportMetrics{
		Financial: datatypes.FinancialMetrics{
			TotalIncome:            income,
			TotalExpenses:          expenses,
			NetCashFlow:            net,
			SavingsRate:            savingsRate,
			TransactionCount:       len(period),
			AverageTransactionSize: avgSize,
		},
		Budgets:    budgets,
		Goals:      goals,
		Categories: categoryTotals(period),
	}
}

func categoryTotals(txns []datatypes.Transaction) []datatypes.CategoryTotal {
	slices := categorySlices(txns, len(txns))
	totals := make([]datatypes.CategoryTotal, 0, len(slices))
	for _, s := range slices {
		totals = append(totals, datatypes.CategoryTotal{Category: s.Category, Amount: s.Amount})
	}
	return totals
}

func analysisByType(period []datatypes.Transaction, snap Snapshot, typ datatypes.ReportType) []datatypes.Insight {
	switch typ {
	case datatypes.ReportBudgetAnalysis:
		return budgetAnalysis(period, snap)
	case datatypes.ReportGoalProgress:
		return goalAnalysis(snap)
	case datatypes.ReportSpendingAnalysis:
		return spendingAnalysis(period)
	case datatypes.ReportExecutiveSummary:
		return executiveAnalysis(period, snap)
	default:
		return monthlySummaryAnalysis(period, snap)
	}
}

func monthlySummaryAnalysis(period []datatypes.Transaction, snap Snapshot) []datatypes.Insight {
	return append([]datatypes.Insight{
		{
			Type:        "summary",
			Title:       "Actividad del Período",
			Description: fmt.Sprintf("Procesadas %d transacciones, %d presupuestos activos, %d metas financieras", len(period), len(snap.Budgets), len(snap.Goals)),
			Actionable:  "Revisa el detalle por categoría para identificar ahorros",
			Priority:    "low",
		},
	}, buildInsights(period, snap.Goals)...)
}

func budgetAnalysis(period []datatypes.Transaction, snap Snapshot) []datatypes.Insight {
	metrics := reportMetrics(period, snap)
	within := 0
	var insights []datatypes.Insight
	for _, b := range metrics.Budgets {
		if b.Utilization <= 100 {
			within++
			continue
		}
		insights = append(insights, datatypes.Insight{
			Type:        "budget-overrun",
			Title:       fmt.Sprintf("Presupuesto excedido: %s", b.Category),
			Description: fmt.Sprintf("Gastado %.2f€ de %.2f€ (%.1f%%)", b.Spent, b.Budgeted, b.Utilization),
			Actionable:  fmt.Sprintf("Ajusta el límite de %s o reduce el gasto", b.Category),
			Priority:    "high",
		})
	}

	compliance := 100.0
	if len(metrics.Budgets) > 0 {
		compliance = float64(within) / float64(len(metrics.Budgets)) * 100
	}
	return append([]datatypes.Insight{
		{
			Type:        "budget-compliance",
			Title:       "Cumplimiento General",
			Description: fmt.Sprintf("%.0f%% de los presupuestos dentro del límite", compliance),
			Actionable:  "Revisa los presupuestos con alta utilización",
			Priority:    "medium",
		},
	}, insights...)
}

func goalAnalysis(snap Snapshot) []datatypes.Insight {
	total := len(snap.Goals)
	completed := 0
	for _, g := range snap.Goals {
		if g.IsCompleted {
			completed++
		}
	}
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
	}

	insights := []datatypes.Insight{
		{
			Type:        "goal-summary",
			Title:       "Estado de Metas",
			Description: fmt.Sprintf("%d metas en total, %d completadas (%.0f%%)", total, completed, completionRate),
			Actionable:  "Aumenta las contribuciones mensuales a metas prioritarias",
			Priority:    "medium",
		},
	}

	for _, g := range snap.Goals {
		if g.IsCompleted {
			continue
		}
		progress := GoalProgressPct(g)
		if progress >= 50 {
			continue
		}
		insights = append(insights, datatypes.Insight{
			Type:        "goal-behind",
			Title:       fmt.Sprintf("Meta rezagada: %s", g.Title),
			Description: fmt.Sprintf("Progreso del %.0f%% hacia %.2f€", progress, g.TargetAmount.InexactFloat64()),
			Actionable:  fmt.Sprintf("Programa aportes periódicos para %q", g.Title),
			Priority:    "high",
		})
	}
	return insights
}

func spendingAnalysis(period []datatypes.Transaction) []datatypes.Insight {
	var expenses []datatypes.Transaction
	for _, t := range period {
		if t.Type == datatypes.TransactionExpense {
			expenses = append(expenses, t)
		}
	}

	total := sumAmounts(expenses, func(datatypes.Transaction) bool { return true }).InexactFloat64()
	avg := 0.0
	if len(expenses) > 0 {
		avg = total / float64(len(expenses))
	}

	insights := []datatypes.Insight{
		{
			Type:        "spending-total",
			Title:       "Gasto Total del Período",
			Description: fmt.Sprintf("%.2f€ en %d transacciones (%.2f€ de media)", total, len(expenses), avg),
			Actionable:  "Compara con períodos anteriores para detectar desviaciones",
			Priority:    "medium",
		},
	}

	if day, amount, ok := topSpendingWeekday(expenses); ok {
		insights = append(insights, datatypes.Insight{
			Type:        "temporal-pattern",
			Title:       "Patrón Temporal de Gastos",
			Description: fmt.Sprintf("Gastas más los %ss (%.2f€)", day, amount),
			Actionable:  fmt.Sprintf("Planifica mejor tus gastos para los %ss", day),
			Priority:    "low",
		})
	}

	for _, s := range categorySlices(expenses, 3) {
		insights = append(insights, datatypes.Insight{
			Type:        "top-category",
			Title:       fmt.Sprintf("Categoría destacada: %s", s.Category),
			Description: fmt.Sprintf("%.2f€ gastados en %s", s.Amount, s.Category),
			Actionable:  fmt.Sprintf("Evalúa un presupuesto para %s", s.Category),
			Priority:    "low",
		})
	}
	return insights
}

func executiveAnalysis(period []datatypes.Transaction, snap Snapshot) []datatypes.Insight {
	metrics := reportMetrics(period, snap)
	f := metrics.Financial

	health := "Saludable"
	priority := "low"
	if f.NetCashFlow < 0 {
		health = "En riesgo"
		priority = "high"
	}

	overBudget := 0
	for _, b := range metrics.Budgets {
		if b.Utilization > 100 {
			overBudget++
		}
	}

	return []datatypes.Insight{
		{
			Type:        "executive-health",
			Title:       "Salud del Flujo de Caja",
			Description: fmt.Sprintf("%s: flujo neto de %.2f€ con tasa de ahorro del %.1f%%", health, f.NetCashFlow, f.SavingsRate),
			Actionable:  "Optimiza la asignación presupuestaria",
			Priority:    priority,
		},
		{
			Type:        "executive-budgets",
			Title:       "Adherencia Presupuestaria",
			Description: fmt.Sprintf("%d de %d presupuestos excedidos", overBudget, len(metrics.Budgets)),
			Actionable:  "Acelera el progreso en metas de alta prioridad",
			Priority:    "medium",
		},
	}
}

func reportSummary(metrics datatypes.ReportMetrics) string {
	f := metrics.Financial
	direction := "positivo"
	if f.NetCashFlow < 0 {
		direction = "negativo"
	}
	return fmt.Sprintf("Análisis del período muestra un flujo de caja %s de %.2f€ con una tasa de ahorro del %.1f%%. Se procesaron %d transacciones durante el período analizado.",
		direction, f.NetCashFlow, f.SavingsRate, f.TransactionCount)
}

func reportRecommendations(metrics datatypes.ReportMetrics) []string {
	var recs []string
	if metrics.Financial.SavingsRate < 10 {
		recs = append(recs, "Considera aumentar tu tasa de ahorro al 20% de tus ingresos")
	}
	for _, b := range metrics.Budgets {
		if b.Utilization > 100 {
			recs = append(recs, "Revisa los presupuestos que han excedido sus límites")
			break
		}
	}
	for _, g := range metrics.Goals {
		if !g.IsCompleted && g.Progress < 50 {
			recs = append(recs, "Acelera el progreso en metas con bajo avance")
			break
		}
	}
	return recs
}
