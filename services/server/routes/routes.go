// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/MoneyGuy/pkg/extensions"
	"github.com/AleutianAI/MoneyGuy/services/server/handlers"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
)

// SetupRoutes maps the API onto the router. The auth pair is public;
// everything else under /api runs behind bearer auth.
func SetupRoutes(router *gin.Engine, h *handlers.Handler, provider extensions.AuthProvider, users middleware.UserLoader) error {
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", middleware.AuthMiddleware(provider, users))
	{
		authed.GET("/transactions", h.ListTransactions)
		authed.POST("/transactions", h.CreateTransaction)
		authed.GET("/transactions/:id", h.GetTransaction)
		authed.PUT("/transactions/:id", h.UpdateTransaction)
		authed.DELETE("/transactions/:id", h.DeleteTransaction)

		authed.GET("/budgets", h.ListBudgets)
		authed.POST("/budgets", h.CreateBudget)
		authed.GET("/budgets/:id", h.GetBudget)
		authed.PUT("/budgets/:id", h.UpdateBudget)
		authed.DELETE("/budgets/:id", h.DeleteBudget)

		authed.GET("/goals", h.ListGoals)
		authed.POST("/goals", h.CreateGoal)
		authed.PUT("/goals/:id", h.UpdateGoal)
		authed.DELETE("/goals/:id", h.DeleteGoal)
		authed.PUT("/goals/:id/progress", h.AddGoalProgress)
		authed.GET("/goals/:id/progress", h.GoalProgressHistory)

		authed.GET("/alerts", h.ListAlerts)
		authed.POST("/alerts/read", h.MarkAlertsRead)

		authed.GET("/dashboard", h.Dashboard)

		authed.POST("/chat", h.Chat)
		authed.GET("/chat", h.ChatHistory)
		authed.GET("/chat/ws", h.ChatStream)

		authed.POST("/reports", h.CreateReport)
		authed.GET("/reports", h.ListReports)
		authed.GET("/reports/:id/download", h.DownloadReport)

		authed.GET("/reminders", h.ListReminders)
		authed.POST("/reminders", h.CreateReminder)
		authed.POST("/reminders/:id/complete", h.CompleteReminder)
	}

	return nil
}
