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

// ListGoals returns every goal with derived progress and days left.
func (h *Handler) ListGoals(c *gin.Context) {
	user := middleware.GetUser(c)

	goals, err := h.store.ListGoals(c.Request.Context(), user.ID)
	if err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 200, engine.ClassifyGoals(goals, time.Now().UTC()), "Goals retrieved successfully")
}

// CreateGoal creates a savings goal, optionally pre-funded.
func (h *Handler) CreateGoal(c *gin.Context) {
	user := middleware.GetUser(c)

	var req datatypes.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	goal := &datatypes.Goal{
		UserID:       user.ID,
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
	}
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			fail(c, 400, "currentAmount must not be negative")
			return
		}
		goal.CurrentAmount = *req.CurrentAmount
		goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	}
	if req.Deadline != "" {
		deadline, err := parseDate(req.Deadline)
		if err != nil {
			fail(c, 400, err.Error())
			return
		}
		goal.TargetDate = &deadline
	}

	if err := h.store.CreateGoal(c.Request.Context(), goal); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 201, goal, "Goal created successfully")
}

// goalUpdate carries the optional fields of a partial update.
type goalUpdate struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	Deadline     *string          `json:"deadline"`
}

// UpdateGoal applies a partial update. Raising or lowering the target
// re-evaluates completion against the current amount.
func (h *Handler) UpdateGoal(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	var req goalUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	goal, err := h.store.GoalByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			fail(c, 400, "targetAmount must be greater than 0")
			return
		}
		goal.TargetAmount = *req.TargetAmount
		goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			goal.TargetDate = nil
		} else {
			deadline, err := parseDate(*req.Deadline)
			if err != nil {
				fail(c, 400, err.Error())
				return
			}
			goal.TargetDate = &deadline
		}
	}

	if err := h.store.UpdateGoal(c.Request.Context(), goal); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 200, goal, "Goal updated successfully")
}

// DeleteGoal removes a goal and its progress ledger.
func (h *Handler) DeleteGoal(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	if err := h.store.DeleteGoal(c.Request.Context(), user.ID, id); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 200, nil, "Goal deleted successfully")
}

// AddGoalProgress appends a contribution to the goal's ledger and bumps
// the saved amount. Reaching the target latches completion.
func (h *Handler) AddGoalProgress(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	var req datatypes.GoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	entry := &datatypes.GoalProgress{Amount: req.Amount}
	if req.Note != "" {
		entry.Note = &req.Note
	}
	goal, err := h.store.AddGoalProgress(c.Request.Context(), user.ID, id, entry)
	if err != nil {
		h.failErr(c, err)
		return
	}

	msg := "Progreso actualizado exitosamente"
	if goal.IsCompleted {
		msg = "🎉 ¡Felicidades! Has completado tu meta"
	}
	okMsg(c, 200, engine.ClassifyGoal(*goal, time.Now().UTC()), msg)
}

// GoalProgressHistory returns the goal's contribution ledger, newest
// first.
func (h *Handler) GoalProgressHistory(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	history, err := h.store.GoalProgressHistory(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, history)
}
