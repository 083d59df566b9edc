// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/engine"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
)

// ListBudgets returns every budget with its derived spend, remaining
// amount, percentage and status.
func (h *Handler) ListBudgets(c *gin.Context) {
	user := middleware.GetUser(c)

	snap, err := h.store.LoadSnapshot(c.Request.Context(), user.ID, time.Now().UTC(), snapshotPage)
	if err != nil {
		h.failErr(c, err)
		return
	}
	classified := engine.ClassifyBudgets(snap.Budgets, snap.Transactions, h.status)
	okMsg(c, 200, classified, "Budgets retrieved successfully")
}

// CreateBudget creates a budget. Budget categories are always expense
// categories; the budget is named after its category.
func (h *Handler) CreateBudget(c *gin.Context) {
	user := middleware.GetUser(c)

	var req datatypes.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	if end.Before(start) {
		fail(c, 400, "endDate must not be before startDate")
		return
	}

	budget := &datatypes.Budget{
		UserID:     user.ID,
		CategoryID: h.store.ResolveCategory(c.Request.Context(), user.ID, req.Category, datatypes.TransactionExpense),
		Name:       req.Category + " Budget",
		Amount:     req.Amount,
		Period:     req.Period,
		StartDate:  start,
		EndDate:    end,
	}
	if err := h.store.CreateBudget(c.Request.Context(), budget); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 201, budget, "Budget created successfully")
}

// GetBudget returns one budget with derived status.
func (h *Handler) GetBudget(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	budget, err := h.store.BudgetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}
	txns, err := h.store.ListTransactions(c.Request.Context(), user.ID, snapshotPage)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, engine.ClassifyBudget(*budget, txns, h.status))
}

// budgetUpdate carries the optional fields of a partial update.
type budgetUpdate struct {
	Amount    *decimal.Decimal        `json:"amount"`
	Period    *datatypes.BudgetPeriod `json:"period"`
	StartDate *string                 `json:"startDate"`
	EndDate   *string                 `json:"endDate"`
}

// UpdateBudget applies a partial update to a budget's amount or window.
func (h *Handler) UpdateBudget(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	var req budgetUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	budget, err := h.store.BudgetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			fail(c, 400, "amount must be greater than 0")
			return
		}
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		budget.Period = *req.Period
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			fail(c, 400, err.Error())
			return
		}
		budget.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			fail(c, 400, err.Error())
			return
		}
		budget.EndDate = end
	}
	if budget.EndDate.Before(budget.StartDate) {
		fail(c, 400, "endDate must not be before startDate")
		return
	}

	if err := h.store.UpdateBudget(c.Request.Context(), budget); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 200, budget, "Budget updated successfully")
}

// DeleteBudget removes one budget.
func (h *Handler) DeleteBudget(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	if err := h.store.DeleteBudget(c.Request.Context(), user.ID, id); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 200, nil, "Budget deleted successfully")
}
