// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "time"

// ReportPeriod is the date window a report covers.
type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FinancialMetrics are the headline totals of a report.
type FinancialMetrics struct {
	TotalIncome            float64 `json:"totalIncome"`
	TotalExpenses          float64 `json:"totalExpenses"`
	NetCashFlow            float64 `json:"netCashFlow"`
	SavingsRate            float64 `json:"savingsRate"`
	TransactionCount       int     `json:"transactionCount"`
	AverageTransactionSize float64 `json:"averageTransactionSize"`
}

// BudgetMetric is one budget's utilization inside a report.
type BudgetMetric struct {
	Category    string  `json:"category"`
	Budgeted    float64 `json:"budgeted"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Utilization float64 `json:"utilization"`
}

// GoalMetric is one goal's progress inside a report.
type GoalMetric struct {
	Title       string     `json:"title"`
	Target      float64    `json:"target"`
	Current     float64    `json:"current"`
	Progress    float64    `json:"progress"`
	IsCompleted bool       `json:"isCompleted"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// CategoryTotal is one category's expense total inside a report.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ReportMetrics groups every metric family of a report.
type ReportMetrics struct {
	Financial  FinancialMetrics `json:"financial"`
	Budgets    []BudgetMetric   `json:"budgets"`
	Goals      []GoalMetric     `json:"goals"`
	Categories []CategoryTotal  `json:"categories"`
}

// ReportPayload is the complete data behind a rendered report artifact.
type ReportPayload struct {
	Metadata        ReportMetadata `json:"metadata"`
	Summary         string         `json:"summary"`
	Metrics         ReportMetrics  `json:"metrics"`
	Analysis        []Insight      `json:"analysis"`
	Recommendations []string       `json:"recommendations"`
}

// ReportMetadata identifies a report run.
type ReportMetadata struct {
	ReportType  ReportType   `json:"reportType"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Period      ReportPeriod `json:"period"`
	UserName    string       `json:"userName"`
}

// FinancialSummary is the aggregate the assistant embeds in its system
// prompt and returns from the getFinancialSummary tool.
type FinancialSummary struct {
	TotalIncome      float64         `json:"totalIncome"`
	TotalExpenses    float64         `json:"totalExpenses"`
	NetCashFlow      float64         `json:"netCashFlow"`
	SavingsRate      float64         `json:"savingsRate"`
	TransactionCount int             `json:"transactionCount"`
	TopCategories    []CategoryTotal `json:"topCategories"`
	ActiveBudgets    int             `json:"activeBudgets"`
	TotalBudgeted    float64         `json:"totalBudgeted"`
	TotalSpent       float64         `json:"totalSpent"`
	OverBudgetCount  int             `json:"overBudgetCount"`
	ActiveGoals      int             `json:"activeGoals"`
	CompletedGoals   int             `json:"completedGoals"`
	OverallProgress  float64         `json:"overallProgress"`
}
