// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package assistant

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// systemPrompt composes the assistant persona plus the user's actual
// financial position so advice references real numbers.
func systemPrompt(firstName string, summary datatypes.FinancialSummary) string {
	return fmt.Sprintf(`You are MoneyGuy AI, a friendly and knowledgeable personal financial advisor.

Your role:
- Provide helpful, personalized financial advice
- Be encouraging and supportive
- Give specific, actionable recommendations
- Use emojis to make responses engaging
- Keep responses concise but informative (2-4 sentences max)
- Focus on practical advice the user can implement
- Use the declared tools to read or change the user's data when the request calls for it

User's Financial Context:
%s

Guidelines:
- Always be encouraging and positive
- Provide specific amounts or percentages when relevant
- Suggest concrete next steps
- If you don't have enough data, ask clarifying questions
- Use the user's name when available
- Reference their actual financial data when giving advice`,
		financialContext(firstName, summary))
}

func financialContext(firstName string, s datatypes.FinancialSummary) string {
	var sb strings.Builder

	if firstName != "" {
		fmt.Fprintf(&sb, "User's name: %s\n", firstName)
	}

	if s.TransactionCount > 0 {
		top := make([]string, 0, len(s.TopCategories))
		for _, c := range s.TopCategories {
			top = append(top, fmt.Sprintf("%s: %.0f€", c.Category, c.Amount))
		}
		topLine := "None yet"
		if len(top) > 0 {
			topLine = strings.Join(top, ", ")
		}
		fmt.Fprintf(&sb, `
Financial Summary:
- Total Income: %.2f€
- Total Expenses: %.2f€
- Savings Rate: %.1f%%
- Total Transactions: %d
- Top Spending Categories: %s
`, s.TotalIncome, s.TotalExpenses, s.SavingsRate, s.TransactionCount, topLine)
	}

	if s.ActiveBudgets > 0 {
		fmt.Fprintf(&sb, `
Budget Summary:
- Active Budgets: %d
- Total Budgeted: %.2f€
- Total Spent: %.2f€
- Over-budget Categories: %d
`, s.ActiveBudgets, s.TotalBudgeted, s.TotalSpent, s.OverBudgetCount)
	}

	if s.ActiveGoals+s.CompletedGoals > 0 {
		fmt.Fprintf(&sb, `
Goals Summary:
- Total Goals: %d
- Active Goals: %d
- Completed Goals: %d
- Overall Progress: %.1f%%
`, s.ActiveGoals+s.CompletedGoals, s.ActiveGoals, s.CompletedGoals, s.OverallProgress)
	}

	if sb.Len() == 0 {
		return "No financial data available yet."
	}
	return sb.String()
}
