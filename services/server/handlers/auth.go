// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/MoneyGuy/services/server/auth"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// Register creates an account and returns a session token so the
// client can sign in immediately.
func (h *Handler) Register(c *gin.Context) {
	var req datatypes.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.failErr(c, err)
		return
	}

	user := &datatypes.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.failErr(c, err)
		return
	}

	token, err := h.jwt.Issue(user)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 201, gin.H{"token": token, "user": user})
}

// Login exchanges credentials for a bearer token. Unknown emails and
// wrong passwords share one message.
func (h *Handler) Login(c *gin.Context) {
	var req datatypes.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, err.Error())
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		fail(c, 401, "invalid email or password")
		return
	}

	token, err := h.jwt.Issue(user)
	if err != nil {
		h.failErr(c, err)
		return
	}
	ok(c, 200, gin.H{"token": token, "user": user})
}
