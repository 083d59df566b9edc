// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
	"github.com/AleutianAI/MoneyGuy/services/server/middleware"
)

// ListTransactions returns the user's transactions newest first.
// ?limit= bounds the page; absent or zero returns everything.
func (h *Handler) ListTransactions(c *gin.Context) {
	user := middleware.GetUser(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fail(c, 400, "invalid limit")
			return
		}
		limit = n
	}

	txns, err := h.store.ListTransactions(c.Request.Context(), user.ID, limit)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, txns)
}

// CreateTransaction records a transaction. The category name is
// resolved best-effort; a failed resolution leaves the row
// uncategorized rather than failing the request.
func (h *Handler) CreateTransaction(c *gin.Context) {
	user := middleware.GetUser(c)

	var req datatypes.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			fail(c, 400, err.Error())
			return
		}
		date = parsed
	}

	txn := &datatypes.Transaction{
		UserID:      user.ID,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  h.store.ResolveCategory(c.Request.Context(), user.ID, req.Category, req.Type),
		Type:        req.Type,
		Date:        date,
	}
	if err := h.store.CreateTransaction(c.Request.Context(), txn); err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 201, txn)
}

// GetTransaction returns one transaction by id.
func (h *Handler) GetTransaction(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	txn, err := h.store.TransactionByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, txn)
}

// transactionUpdate carries the optional fields of a partial update.
type transactionUpdate struct {
	Amount      *decimal.Decimal           `json:"amount"`
	Description *string                    `json:"description"`
	Category    *string                    `json:"category"`
	Type        *datatypes.TransactionType `json:"type"`
	Date        *string                    `json:"date"`
}

// UpdateTransaction applies a partial update. Only fields present in
// the body change; setting category to an empty string clears it.
func (h *Handler) UpdateTransaction(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	var req transactionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	txn, err := h.store.TransactionByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			fail(c, 400, "amount must be greater than 0")
			return
		}
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Type != nil {
		if *req.Type != datatypes.TransactionIncome && *req.Type != datatypes.TransactionExpense {
			fail(c, 400, "invalid transaction type")
			return
		}
		txn.Type = *req.Type
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			fail(c, 400, err.Error())
			return
		}
		txn.Date = parsed
	}
	if req.Category != nil {
		txn.CategoryID = h.store.ResolveCategory(c.Request.Context(), user.ID, *req.Category, txn.Type)
		txn.Category = nil
	}

	if err := h.store.UpdateTransaction(c.Request.Context(), txn); err != nil {
		h.failErr(c, err)
		return
	}

	updated, err := h.store.TransactionByID(c.Request.Context(), user.ID, id)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, updated)
}

// DeleteTransaction removes one transaction.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	user := middleware.GetUser(c)
	id, err := idParam(c)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	if err := h.store.DeleteTransaction(c.Request.Context(), user.ID, id); err != nil {
		h.failErr(c, err)
		return
	}
	okMsg(c, 200, nil, "Transaction deleted successfully")
}
