// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package assistant

import "github.com/AleutianAI/MoneyGuy/services/llm"

// toolDefinitions declares every function the assistant may call. The
// dispatch switch in dispatch.go must cover exactly these names.
func toolDefinitions() []llm.ToolDefinition {
	return []llm.ToolDefinition{
		{
			Name:        "addTransaction",
			Description: "Record a new income or expense transaction for the user.",
			Parameters: schema(map[string]any{
				"amount":      prop("number", "Transaction amount, strictly positive"),
				"description": prop("string", "What the transaction was for"),
				"category":    prop("string", "Free-form category name, e.g. Comida"),
				"type":        enumProp("Transaction direction", "INCOME", "EXPENSE"),
				"date":        prop("string", "Transaction date (RFC 3339 or YYYY-MM-DD); defaults to now"),
			}, "amount", "description", "type"),
		},
		{
			Name:        "getTransactions",
			Description: "List the user's transactions, newest first.",
			Parameters: schema(map[string]any{
				"limit": prop("integer", "Maximum number of transactions to return; 0 means all"),
			}),
		},
		{
			Name:        "addBudget",
			Description: "Create a spending budget for a category over a date window.",
			Parameters: schema(map[string]any{
				"category":  prop("string", "Expense category the budget caps"),
				"amount":    prop("number", "Budget ceiling, strictly positive"),
				"period":    enumProp("Budget cadence", "WEEKLY", "MONTHLY", "QUARTERLY", "YEARLY"),
				"startDate": prop("string", "Window start (RFC 3339 or YYYY-MM-DD)"),
				"endDate":   prop("string", "Window end (RFC 3339 or YYYY-MM-DD)"),
			}, "category", "amount", "period", "startDate", "endDate"),
		},
		{
			Name:        "getBudgets",
			Description: "List the user's budgets with spent, remaining, percentage and status.",
			Parameters:  schema(nil),
		},
		{
			Name:        "addGoal",
			Description: "Create a savings goal.",
			Parameters: schema(map[string]any{
				"title":        prop("string", "Goal title"),
				"description":  prop("string", "Optional details"),
				"targetAmount": prop("number", "Amount to save, strictly positive"),
				"targetDate":   prop("string", "Optional deadline (RFC 3339 or YYYY-MM-DD)"),
			}, "title", "targetAmount"),
		},
		{
			Name:        "getGoals",
			Description: "List the user's savings goals with progress and status.",
			Parameters:  schema(nil),
		},
		{
			Name:        "getFinancialSummary",
			Description: "Aggregate totals: income, expenses, savings rate, budgets, goals.",
			Parameters:  schema(nil),
		},
		{
			Name:        "getSmartAlerts",
			Description: "Regenerate and return the user's smart alerts.",
			Parameters:  schema(nil),
		},
		{
			Name:        "generateDashboard",
			Description: "Build the full dashboard payload for a period.",
			Parameters: schema(map[string]any{
				"period": enumProp("Analysis window", "weekly", "monthly", "quarterly", "yearly"),
			}),
		},
		{
			Name:        "generateReport",
			Description: "Compute a report payload for the current period.",
			Parameters: schema(map[string]any{
				"type": enumProp("Report kind",
					"monthly_summary", "budget_analysis", "goal_progress",
					"spending_analysis", "executive_summary"),
				"period": enumProp("Analysis window", "weekly", "monthly", "quarterly", "yearly"),
			}, "type"),
		},
		{
			Name:        "updateGoalProgress",
			Description: "Add a contribution toward a savings goal.",
			Parameters: schema(map[string]any{
				"goalId": prop("string", "UUID of the goal"),
				"amount": prop("number", "Contribution amount, non-negative"),
				"note":   prop("string", "Optional note for the ledger entry"),
			}, "goalId", "amount"),
		},
		{
			Name:        "getSpendingInsights",
			Description: "Derive spending insights (top category, weekday pattern, goal pace) for a period.",
			Parameters: schema(map[string]any{
				"period": enumProp("Analysis window", "weekly", "monthly", "quarterly", "yearly"),
			}),
		},
		{
			Name:        "createScheduledReminder",
			Description: "Schedule a reminder for the user.",
			Parameters: schema(map[string]any{
				"title":       prop("string", "Reminder title"),
				"description": prop("string", "Optional details"),
				"remindAt":    prop("string", "When to remind (RFC 3339 or YYYY-MM-DD)"),
			}, "title", "remindAt"),
		},
	}
}

func schema(props map[string]any, required ...string) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}

func enumProp(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}
