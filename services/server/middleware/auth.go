// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package middleware provides HTTP middleware for the MoneyGuy server.
//
// # Authentication Flow
//
// The auth middleware extracts a bearer token from the Authorization
// header, validates it with the configured AuthProvider, resolves the
// account row behind the token, and stores both in the Gin context for
// downstream handlers.
//
//	Request
//	   │
//	   ▼
//	AuthMiddleware
//	   │
//	   ├─► Extract token from "Authorization: Bearer <token>"
//	   │
//	   ├─► provider.Validate(ctx, token)
//	   │
//	   ├─► users.UserByID(ctx, subject)
//	   │
//	   └─► Store AuthInfo + User in context
//	           │
//	           ▼
//	       Handler (retrieves via GetUser)
//
// A token whose subject no longer maps to an account is rejected the
// same way as an invalid token; the per-user scoping in the store then
// guarantees handlers can never touch another user's rows.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/MoneyGuy/pkg/extensions"
	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

// =============================================================================
// Context Keys
// =============================================================================

const (
	authInfoKey = "moneyguy_auth_info"
	userKey     = "moneyguy_user"
)

// UserLoader resolves the account behind a validated token subject.
// *store.Store satisfies it.
type UserLoader interface {
	UserByID(ctx context.Context, id uuid.UUID) (*datatypes.User, error)
}

// =============================================================================
// Context Helpers
// =============================================================================

// SetAuthInfo stores the authenticated identity in the Gin context.
func SetAuthInfo(c *gin.Context, info *extensions.AuthInfo) {
	c.Set(authInfoKey, info)
}

// GetAuthInfo retrieves the authenticated identity, or nil when the
// request did not pass the auth middleware.
func GetAuthInfo(c *gin.Context) *extensions.AuthInfo {
	if info, exists := c.Get(authInfoKey); exists {
		if authInfo, ok := info.(*extensions.AuthInfo); ok {
			return authInfo
		}
	}
	return nil
}

// SetUser stores the resolved account row in the Gin context.
func SetUser(c *gin.Context, user *datatypes.User) {
	c.Set(userKey, user)
}

// GetUser retrieves the account behind the request, or nil when the
// request did not pass the auth middleware.
func GetUser(c *gin.Context) *datatypes.User {
	if v, exists := c.Get(userKey); exists {
		if user, ok := v.(*datatypes.User); ok {
			return user
		}
	}
	return nil
}

// =============================================================================
// Auth Middleware
// =============================================================================

// AuthMiddleware authenticates every request on the group it is
// attached to. Token validation and account resolution failures both
// abort with 401; handlers behind the middleware can assume GetUser
// returns a live account.
func AuthMiddleware(provider extensions.AuthProvider, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)

		authInfo, err := provider.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, extensions.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "unauthorized",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication failed",
			})
			return
		}

		userID, err := uuid.Parse(authInfo.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		user, err := users.UserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}

		SetAuthInfo(c, authInfo)
		SetUser(c, user)
		c.Next()
	}
}

// =============================================================================
// Helper Functions
// =============================================================================

// extractBearerToken parses "Authorization: Bearer <token>". The
// scheme is case-insensitive per RFC 7235; a missing or malformed
// header yields the empty string.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
