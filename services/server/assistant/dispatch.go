// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AleutianAI/MoneyGuy/services/llm"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
)

// snapshotPage bounds how much history the tools load per call. Budget
// windows need the full set; alert rules with a bounded lookback page
// it down themselves.
const snapshotPage = 0

// dispatch executes one tool call and returns its result as JSON. A
// failed call is reported back to the model as an error object instead
// of aborting the conversation, so the model can explain or retry.
func (a *Assistant) dispatch(ctx context.Context, user *datatypes.User, call llm.ToolCall) string {
	result, err := a.execute(ctx, user, call)
	if err != nil {
		a.log.Warn("assistant tool call failed",
			"tool", call.Name, "user_id", user.ID, "error", err)
		return toolJSON(map[string]string{"error": err.Error()})
	}
	return result
}

func (a *Assistant) execute(ctx context.Context, user *datatypes.User, call llm.ToolCall) (string, error) {
	switch call.Name {
	case "addTransaction":
		return a.addTransaction(ctx, user, call.Arguments)
	case "getTransactions":
		return a.getTransactions(ctx, user, call.Arguments)
	case "addBudget":
		return a.addBudget(ctx, user, call.Arguments)
	case "getBudgets":
		return a.getBudgets(ctx, user)
	case "addGoal":
		return a.addGoal(ctx, user, call.Arguments)
	case "getGoals":
		return a.getGoals(ctx, user)
	case "getFinancialSummary":
		return a.getFinancialSummary(ctx, user)
	case "getSmartAlerts":
		return a.getSmartAlerts(ctx, user)
	case "generateDashboard":
		return a.generateDashboard(ctx, user, call.Arguments)
	case "generateReport":
		return a.generateReport(ctx, user, call.Arguments)
	case "updateGoalProgress":
		return a.updateGoalProgress(ctx, user, call.Arguments)
	case "getSpendingInsights":
		return a.getSpendingInsights(ctx, user, call.Arguments)
	case "createScheduledReminder":
		return a.createScheduledReminder(ctx, user, call.Arguments)
	default:
		return "", fmt.Errorf("unknown tool %q", call.Name)
	}
}

// =============================================================================
// Mutating Tools
// =============================================================================

func (a *Assistant) addTransaction(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	var args struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Type        string  `json:"type"`
		Date        string  `json:"date"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("addTransaction arguments: %w", err)
	}
	if args.Amount <= 0 {
		return "", fmt.Errorf("amount must be greater than 0")
	}
	txType := datatypes.TransactionType(args.Type)
	if txType != datatypes.TransactionIncome && txType != datatypes.TransactionExpense {
		return "", fmt.Errorf("type must be INCOME or EXPENSE")
	}

	date := time.Now().UTC()
	if args.Date != "" {
		parsed, err := parseDate(args.Date)
		if err != nil {
			return "", err
		}
		date = parsed
	}

	txn := &datatypes.Transaction{
		UserID:      user.ID,
		Amount:      decimal.NewFromFloat(args.Amount),
		Description: args.Description,
		CategoryID:  a.store.ResolveCategory(ctx, user.ID, args.Category, txType),
		Type:        txType,
		Date:        date,
	}
	if err := a.store.CreateTransaction(ctx, txn); err != nil {
		return "", err
	}
	return toolJSON(txn), nil
}

func (a *Assistant) addBudget(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	var args struct {
		Category  string  `json:"category"`
		Amount    float64 `json:"amount"`
		Period    string  `json:"period"`
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("addBudget arguments: %w", err)
	}
	if args.Amount <= 0 {
		return "", fmt.Errorf("amount must be greater than 0")
	}
	start, err := parseDate(args.StartDate)
	if err != nil {
		return "", err
	}
	end, err := parseDate(args.EndDate)
	if err != nil {
		return "", err
	}

	budget := &datatypes.Budget{
		UserID:     user.ID,
		CategoryID: a.store.ResolveCategory(ctx, user.ID, args.Category, datatypes.TransactionExpense),
		Name:       args.Category + " Budget",
		Amount:     decimal.NewFromFloat(args.Amount),
		Period:     datatypes.BudgetPeriod(args.Period),
		StartDate:  start,
		EndDate:    end,
	}
	if err := a.store.CreateBudget(ctx, budget); err != nil {
		return "", err
	}
	return toolJSON(budget), nil
}

func (a *Assistant) addGoal(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	var args struct {
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		TargetAmount float64 `json:"targetAmount"`
		TargetDate   string  `json:"targetDate"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("addGoal arguments: %w", err)
	}
	if args.TargetAmount <= 0 {
		return "", fmt.Errorf("targetAmount must be greater than 0")
	}

	goal := &datatypes.Goal{
		UserID:       user.ID,
		Title:        args.Title,
		Description:  args.Description,
		TargetAmount: decimal.NewFromFloat(args.TargetAmount),
	}
	if args.TargetDate != "" {
		deadline, err := parseDate(args.TargetDate)
		if err != nil {
			return "", err
		}
		goal.TargetDate = &deadline
	}
	if err := a.store.CreateGoal(ctx, goal); err != nil {
		return "", err
	}
	return toolJSON(goal), nil
}

func (a *Assistant) updateGoalProgress(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	var args struct {
		GoalID string  `json:"goalId"`
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("updateGoalProgress arguments: %w", err)
	}
	goalID, err := uuid.Parse(args.GoalID)
	if err != nil {
		return "", fmt.Errorf("goalId is not a valid uuid")
	}
	if args.Amount < 0 {
		return "", fmt.Errorf("amount cannot be negative")
	}

	entry := &datatypes.GoalProgress{Amount: decimal.NewFromFloat(args.Amount)}
	if args.Note != "" {
		entry.Note = &args.Note
	}
	goal, err := a.store.AddGoalProgress(ctx, user.ID, goalID, entry)
	if err != nil {
		return "", err
	}
	return toolJSON(engine.ClassifyGoal(*goal, time.Now().UTC())), nil
}

func (a *Assistant) createScheduledReminder(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	var args struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		RemindAt    string `json:"remindAt"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("createScheduledReminder arguments: %w", err)
	}
	remindAt, err := parseDate(args.RemindAt)
	if err != nil {
		return "", err
	}

	reminder := &datatypes.Reminder{
		UserID:      user.ID,
		Title:       args.Title,
		Description: args.Description,
		RemindAt:    remindAt,
	}
	if err := a.store.CreateReminder(ctx, reminder); err != nil {
		return "", err
	}
	return toolJSON(reminder), nil
}

// =============================================================================
// Read-only Tools
// =============================================================================

func (a *Assistant) getTransactions(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	var args struct {
		Limit int `json:"limit"`
	}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return "", fmt.Errorf("getTransactions arguments: %w", err)
		}
	}
	txns, err := a.store.ListTransactions(ctx, user.ID, args.Limit)
	if err != nil {
		return "", err
	}
	return toolJSON(txns), nil
}

func (a *Assistant) getBudgets(ctx context.Context, user *datatypes.User) (string, error) {
	snap, err := a.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		return "", err
	}
	classified := engine.ClassifyBudgets(snap.Budgets, snap.Transactions, engine.DefaultStatusPolicy())
	return toolJSON(classified), nil
}

func (a *Assistant) getGoals(ctx context.Context, user *datatypes.User) (string, error) {
	goals, err := a.store.ListGoals(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return toolJSON(engine.ClassifyGoals(goals, time.Now().UTC())), nil
}

func (a *Assistant) getFinancialSummary(ctx context.Context, user *datatypes.User) (string, error) {
	snap, err := a.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		return "", err
	}
	return toolJSON(engine.Summarize(snap)), nil
}

func (a *Assistant) getSmartAlerts(ctx context.Context, user *datatypes.User) (string, error) {
	snap, err := a.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		return "", err
	}
	alerts := a.alerts.Generate(user.ID, snap)
	if err := a.store.UpsertAlerts(ctx, alerts); err != nil {
		return "", err
	}
	active, err := a.store.ActiveAlerts(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return toolJSON(active), nil
}

func (a *Assistant) generateDashboard(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	payload, err := a.buildDashboard(ctx, user, rawArgs)
	if err != nil {
		return "", err
	}
	return toolJSON(payload), nil
}

func (a *Assistant) getSpendingInsights(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	payload, err := a.buildDashboard(ctx, user, rawArgs)
	if err != nil {
		return "", err
	}
	return toolJSON(payload.Insights), nil
}

func (a *Assistant) buildDashboard(ctx context.Context, user *datatypes.User, rawArgs string) (datatypes.DashboardPayload, error) {
	var args struct {
		Period string `json:"period"`
	}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return datatypes.DashboardPayload{}, fmt.Errorf("dashboard arguments: %w", err)
		}
	}
	snap, err := a.store.LoadSnapshot(ctx, user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		return datatypes.DashboardPayload{}, err
	}
	active, err := a.store.ActiveAlerts(ctx, user.ID)
	if err != nil {
		return datatypes.DashboardPayload{}, err
	}
	return engine.BuildDashboard(snap, args.Period, active), nil
}

func (a *Assistant) generateReport(ctx context.Context, user *datatypes.User, rawArgs string) (string, error) {
	var args struct {
		Type   string `json:"type"`
		Period string `json:"period"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("generateReport arguments: %w", err)
	}

	now := time.Now().UTC()
	snap, err := a.store.LoadSnapshot(ctx, user.ID, now, snapshotPage)
	if err != nil {
		return "", err
	}
	window := engine.ResolveWindow(args.Period, now)
	payload := engine.BuildReport(snap, engine.ReportConfig{
		Type:     datatypes.ReportType(args.Type),
		Period:   datatypes.ReportPeriod{Start: window.Start, End: window.End},
		UserName: user.FirstName + " " + user.LastName,
	})
	return toolJSON(payload), nil
}

// =============================================================================
// Helpers
// =============================================================================

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want RFC 3339 or YYYY-MM-DD", s)
}

func toolJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return `{"error":"result serialization failed"}`
	}
	return string(raw)
}
