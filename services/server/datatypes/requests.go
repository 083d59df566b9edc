// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"github.com/shopspring/decimal"
)

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TransactionRequest creates or replaces a transaction. Category is a free
// name resolved (or created) best-effort; an empty name leaves the
// transaction uncategorized.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date        string          `json:"date"` // RFC 3339 or 2006-01-02; empty means now
}

// BudgetRequest creates a budget.
type BudgetRequest struct {
	Category  string          `json:"category" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Period    BudgetPeriod    `json:"period" binding:"required,oneof=WEEKLY MONTHLY QUARTERLY YEARLY"`
	StartDate string          `json:"startDate" binding:"required"`
	EndDate   string          `json:"endDate" binding:"required"`
}

// GoalRequest creates a goal.
type GoalRequest struct {
	Title         string           `json:"title" binding:"required"`
	Description   string           `json:"description"`
	TargetAmount  decimal.Decimal  `json:"targetAmount" binding:"required,dgt0"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Deadline      string           `json:"deadline"` // optional target date
}

// GoalProgressRequest appends a progress ledger entry.
type GoalProgressRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dge0"`
	Note   string          `json:"note"`
}

// ChatRequest is one user turn of the assistant conversation.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// MarkAlertsReadRequest flags alerts as read.
type MarkAlertsReadRequest struct {
	AlertIDs []string `json:"alertIds" binding:"required,min=1"`
}

// ReportRequest configures a report run.
type ReportRequest struct {
	Type   ReportType   `json:"type" binding:"required,oneof=monthly_summary budget_analysis goal_progress spending_analysis executive_summary"`
	Format ReportFormat `json:"format" binding:"required,oneof=PDF EXCEL JSON"`
	Start  string       `json:"start" binding:"required"`
	End    string       `json:"end" binding:"required"`
}

// ReminderRequest schedules a reminder.
type ReminderRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	RemindAt    string `json:"remindAt" binding:"required"`
}
